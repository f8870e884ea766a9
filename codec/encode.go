package codec

import (
	"fmt"
	"reflect"

	"github.com/quickwritereader/xpacket/access"
	"github.com/quickwritereader/xpacket/schema"
	"github.com/quickwritereader/xpacket/types"
)

// Encode writes rec into dst in schema order and returns the number of
// bytes written. rec is never modified.
//
// In Unchecked mode dst must hold MaxWireSize bytes (or the exact size of
// rec for unbounded records); a short buffer panics. In Checked mode every
// failure is reported as a *FieldError and the returned count is the
// offset of the failing field.
func (c *Codec[T]) Encode(dst []byte, rec *T) (int, error) {
	return c.encode(&c.cfg, dst, rec)
}

func (c *Codec[T]) encode(cfg *config, dst []byte, rec *T) (int, error) {
	if rec == nil {
		return 0, fmt.Errorf("%s %s: %w", c.rec.Name(), c.rec.EncodeFuncName(), ErrNilRecord)
	}
	p := access.NewPutAccess(dst, cfg.checked())
	rv := reflect.ValueOf(rec).Elem()

	for i := range c.steps {
		s := &c.steps[i]
		start := p.Position()
		if err := s.encode(cfg, &p, s.fieldValue(rv)); err != nil {
			return start, c.fieldError(c.rec.EncodeFuncName(), s, start, err)
		}
	}
	return p.Position(), nil
}

func (c *Codec[T]) fieldError(op string, s *step, offset int, err error) *FieldError {
	return &FieldError{
		Record:   c.rec.Name(),
		Op:       op,
		Field:    s.field.Name,
		Position: s.pos,
		Offset:   offset,
		Err:      err,
	}
}

func encodeScalar(w types.Width) encodeFunc {
	return func(_ *config, p *access.PutAccess, v reflect.Value) error {
		return p.PutScalar(uint32(v.Uint()), w)
	}
}

func encodeFixedArray(w types.Width, n int) encodeFunc {
	if w == types.Width8 {
		return func(_ *config, p *access.PutAccess, v reflect.Value) error {
			return p.PutBytes(v.Bytes())
		}
	}
	return func(_ *config, p *access.PutAccess, v reflect.Value) error {
		for i := 0; i < n; i++ {
			if err := p.PutScalar(uint32(v.Index(i).Uint()), w); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	}
}

func encodeIndirectScalar(w types.Width) encodeFunc {
	return func(c *config, p *access.PutAccess, v reflect.Value) error {
		if c.checked() && v.IsNil() {
			return ErrNilReference
		}
		return p.PutScalar(uint32(v.Elem().Uint()), w)
	}
}

// checkBorrowed verifies a borrowed slice against the schema length n.
// Unchecked codecs skip it and let indexing fail instead.
func checkBorrowed(c *config, v reflect.Value, n int) error {
	if !c.checked() {
		return nil
	}
	if v.IsNil() {
		return ErrNilReference
	}
	if v.Len() < n {
		return fmt.Errorf("%w: have %d elements, need %d", ErrShortArray, v.Len(), n)
	}
	return nil
}

func encodeIndirectArray(w types.Width, n int) encodeFunc {
	if w == types.Width8 {
		return func(c *config, p *access.PutAccess, v reflect.Value) error {
			if err := checkBorrowed(c, v, n); err != nil {
				return err
			}
			return p.PutBytes(v.Bytes()[:n])
		}
	}
	return func(c *config, p *access.PutAccess, v reflect.Value) error {
		if err := checkBorrowed(c, v, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			if err := p.PutScalar(uint32(v.Index(i).Uint()), w); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		return nil
	}
}

func encodeEmbeddedString(n int) encodeFunc {
	return func(c *config, p *access.PutAccess, v reflect.Value) error {
		written, err := p.PutCString(v.Bytes(), n)
		if err != nil {
			return err
		}
		if c.wireTerminator && written < n {
			return p.PutByte(0)
		}
		return nil
	}
}

func encodeIndirectString(c *config, p *access.PutAccess, v reflect.Value) error {
	if c.checked() && v.IsNil() {
		return ErrNilReference
	}
	if _, err := p.PutCString(v.Bytes(), -1); err != nil {
		return err
	}
	if c.wireTerminator {
		return p.PutByte(0)
	}
	return nil
}

func encodeCustom(h schema.Hooks) encodeFunc {
	return func(_ *config, p *access.PutAccess, v reflect.Value) error {
		n, err := h.Encode(p.Tail(), v.Interface())
		if err != nil {
			return err
		}
		if n < 0 || n > p.Available() {
			return fmt.Errorf("%w: reported %d, available %d", ErrHookOverrun, n, p.Available())
		}
		return p.Skip(n)
	}
}
