package codec

import (
	"fmt"
	"reflect"

	"github.com/quickwritereader/xpacket/access"
	"github.com/quickwritereader/xpacket/schema"
	"github.com/quickwritereader/xpacket/types"
)

// Decode fills rec from src and returns the number of bytes consumed.
// Indirect fields must already reference storage: pointers are written
// through and borrowed slices are filled in place.
func (c *Codec[T]) Decode(src []byte, rec *T) (int, error) {
	if rec == nil {
		return 0, fmt.Errorf("%s %s: %w", c.rec.Name(), c.rec.DecodeFuncName(), ErrNilRecord)
	}
	g := access.NewGetAccess(src, c.cfg.checked())
	rv := reflect.ValueOf(rec).Elem()

	for i := range c.steps {
		s := &c.steps[i]
		start := g.Position()
		if err := s.decode(&c.cfg, &g, s.fieldValue(rv)); err != nil {
			return start, c.fieldError(c.rec.DecodeFuncName(), s, start, err)
		}
	}
	return g.Position(), nil
}

func decodeScalar(w types.Width) decodeFunc {
	return func(_ *config, g *access.GetAccess, v reflect.Value) error {
		x, err := g.GetScalar(w)
		if err != nil {
			return err
		}
		v.SetUint(uint64(x))
		return nil
	}
}

func decodeFixedArray(w types.Width, n int) decodeFunc {
	if w == types.Width8 {
		return func(_ *config, g *access.GetAccess, v reflect.Value) error {
			return g.GetBytes(v.Bytes())
		}
	}
	return func(_ *config, g *access.GetAccess, v reflect.Value) error {
		for i := 0; i < n; i++ {
			x, err := g.GetScalar(w)
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			v.Index(i).SetUint(uint64(x))
		}
		return nil
	}
}

func decodeIndirectScalar(w types.Width) decodeFunc {
	return func(c *config, g *access.GetAccess, v reflect.Value) error {
		if c.checked() && v.IsNil() {
			return ErrNilReference
		}
		x, err := g.GetScalar(w)
		if err != nil {
			return err
		}
		v.Elem().SetUint(uint64(x))
		return nil
	}
}

func decodeIndirectArray(w types.Width, n int) decodeFunc {
	if w == types.Width8 {
		return func(c *config, g *access.GetAccess, v reflect.Value) error {
			if err := checkBorrowed(c, v, n); err != nil {
				return err
			}
			return g.GetBytes(v.Bytes()[:n])
		}
	}
	return func(c *config, g *access.GetAccess, v reflect.Value) error {
		if err := checkBorrowed(c, v, n); err != nil {
			return err
		}
		for i := 0; i < n; i++ {
			x, err := g.GetScalar(w)
			if err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
			v.Index(i).SetUint(uint64(x))
		}
		return nil
	}
}

// terminate writes a NUL after the n copied bytes when dst has room.
func terminate(c *config, dst []byte, n int) {
	if !c.rawStrings && n < len(dst) {
		dst[n] = 0
	}
}

func decodeEmbeddedString(n int) decodeFunc {
	return func(c *config, g *access.GetAccess, v reflect.Value) error {
		dst := v.Bytes()
		copied, err := g.GetCString(dst, n, c.wireTerminator)
		if err != nil {
			return err
		}
		terminate(c, dst, copied)
		return nil
	}
}

func decodeIndirectString(c *config, g *access.GetAccess, v reflect.Value) error {
	if c.checked() && v.IsNil() {
		return ErrNilReference
	}
	dst := v.Bytes()
	copied, err := g.GetCString(dst, -1, c.wireTerminator)
	if err != nil {
		return err
	}
	terminate(c, dst, copied)
	return nil
}

func decodeCustom(h schema.Hooks) decodeFunc {
	return func(_ *config, g *access.GetAccess, v reflect.Value) error {
		n, err := h.Decode(g.Tail(), v.Addr().Interface())
		if err != nil {
			return err
		}
		if n < 0 || n > g.Remaining() {
			return fmt.Errorf("%w: reported %d, remaining %d", ErrHookOverrun, n, g.Remaining())
		}
		return g.Skip(n)
	}
}
