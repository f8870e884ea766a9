package codec

import (
	"bytes"
	"errors"
	"fmt"
	"reflect"

	"github.com/quickwritereader/xpacket/access"
	"github.com/quickwritereader/xpacket/types"
	"github.com/quickwritereader/xpacket/utils"
)

// maxMarshalSize stops Marshal from growing its scratch buffer forever when
// a custom hook keeps reporting ErrBufferTooSmall.
const maxMarshalSize = 1 << 24

var scratch = utils.NewBufferPool()

// Marshal encodes rec into a freshly allocated slice of exactly the wire
// size. It always runs checked, whatever the codec mode, and grows its
// pooled scratch buffer when an unbounded field does not fit.
func (c *Codec[T]) Marshal(rec *T) ([]byte, error) {
	buf, n, err := c.encodeScratch(rec)
	if err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, buf[:n])
	scratch.Release(buf)
	return out, nil
}

func (c *Codec[T]) encodeScratch(rec *T) ([]byte, int, error) {
	cfg := c.cfg
	cfg.mode = Checked

	size, bounded := c.MaxWireSize()
	if !bounded {
		size = max(2*c.rec.MinWireSize(), utils.BufferSizeClass[2])
	}
	buf := scratch.Acquire(max(size, 1))
	for {
		n, err := c.encode(&cfg, buf, rec)
		if err == nil {
			return buf, n, nil
		}
		if !errors.Is(err, access.ErrBufferTooSmall) || len(buf) >= maxMarshalSize {
			scratch.Release(buf)
			return nil, 0, err
		}
		buf = scratch.Grow(buf, 2*len(buf))
	}
}

// WireSize returns the exact number of bytes Encode writes for rec. Records
// with custom fields are measured by encoding into a pooled scratch buffer.
func (c *Codec[T]) WireSize(rec *T) (int, error) {
	if rec == nil {
		return 0, fmt.Errorf("%s WireSize: %w", c.rec.Name(), ErrNilRecord)
	}
	if c.hasCustom {
		buf, n, err := c.encodeScratch(rec)
		if err != nil {
			return 0, err
		}
		scratch.Release(buf)
		return n, nil
	}

	rv := reflect.ValueOf(rec).Elem()
	total := 0
	for i := range c.steps {
		s := &c.steps[i]
		n, err := c.fieldSize(s, s.fieldValue(rv))
		if err != nil {
			return 0, c.fieldError("WireSize", s, total, err)
		}
		total += n
	}
	return total, nil
}

func (c *Codec[T]) fieldSize(s *step, v reflect.Value) (int, error) {
	f := s.field
	switch f.Kind {
	case types.KindEmbeddedString:
		b := v.Bytes()
		n := bytes.IndexByte(b, 0)
		if n < 0 {
			return f.Length, nil
		}
		if c.cfg.wireTerminator {
			n++
		}
		return n, nil

	case types.KindIndirectString:
		if v.IsNil() {
			return 0, ErrNilReference
		}
		n := bytes.IndexByte(v.Bytes(), 0)
		if n < 0 {
			return 0, access.ErrUnterminatedString
		}
		if c.cfg.wireTerminator {
			n++
		}
		return n, nil

	case types.KindIndirectScalar:
		if v.IsNil() {
			return 0, ErrNilReference
		}

	case types.KindIndirectArray:
		if err := checkBorrowed(&config{mode: Checked}, v, f.Length); err != nil {
			return 0, err
		}
	}
	return f.MaxSize(), nil
}

// Unmarshal decodes src into a new record. Records with indirect fields
// have no storage to decode into and fail with ErrIndirectAlloc.
func (c *Codec[T]) Unmarshal(src []byte) (*T, int, error) {
	for i := range c.steps {
		s := &c.steps[i]
		if s.field.Kind.IsIndirect() {
			return nil, 0, c.fieldError(c.rec.DecodeFuncName(), s, 0, ErrIndirectAlloc)
		}
	}
	rec := new(T)
	n, err := c.Decode(src, rec)
	if err != nil {
		return nil, n, err
	}
	return rec, n, nil
}
