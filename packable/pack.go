// Package packable supplies ready-made hooks for Custom fields: typed
// values that write and read their own wire form, framed msgpack and JSON
// payloads, and BCP 47 language tags.
package packable

import (
	"errors"
	"fmt"
	"math"

	"github.com/quickwritereader/xpacket/access"
	"github.com/quickwritereader/xpacket/schema"
)

var (
	ErrValueType     = errors.New("unexpected value type")
	ErrFrameTooLarge = errors.New("payload exceeds frame limit")
)

// Packable is a value that knows its own wire form. Write and Read take
// and return buffer positions. Read belongs on the pointer receiver.
type Packable interface {
	ValueSize() int
	Write(buf []byte, pos int) int
	Read(buf []byte, pos int) (int, error)
}

// Of adapts the Packable type T into hooks for a Custom field whose Go
// field has type T.
func Of[T any, P interface {
	*T
	Packable
}]() schema.Hooks {
	return schema.Hooks{
		Encode: func(dst []byte, value any) (int, error) {
			v, ok := value.(T)
			if !ok {
				return 0, fmt.Errorf("%w: %T", ErrValueType, value)
			}
			p := P(&v)
			if size := p.ValueSize(); size > len(dst) {
				return 0, fmt.Errorf("%w: need %d bytes, have %d", access.ErrBufferTooSmall, size, len(dst))
			}
			return p.Write(dst, 0), nil
		},
		Decode: func(src []byte, ptr any) (int, error) {
			v, ok := ptr.(*T)
			if !ok {
				return 0, fmt.Errorf("%w: %T", ErrValueType, ptr)
			}
			return P(v).Read(src, 0)
		},
	}
}

// Sized is Of with a known upper bound, so records using it keep a static
// MaxWireSize.
func Sized[T any, P interface {
	*T
	Packable
}](maxSize int) schema.Hooks {
	h := Of[T, P]()
	h.MaxSize = maxSize
	return h
}

const frameHeader = 2

// writeFrame writes payload behind a big-endian uint16 length.
func writeFrame(dst []byte, payload []byte) (int, error) {
	if len(payload) > math.MaxUint16 {
		return 0, fmt.Errorf("%w: %d bytes", ErrFrameTooLarge, len(payload))
	}
	total := frameHeader + len(payload)
	if total > len(dst) {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", access.ErrBufferTooSmall, total, len(dst))
	}
	pos := access.WriteUint16(dst, 0, uint16(len(payload)))
	return access.WriteBytes(dst, pos, payload), nil
}

// readFrame returns the payload of the frame at the start of src and the
// size of the whole frame.
func readFrame(src []byte) ([]byte, int, error) {
	if len(src) < frameHeader {
		return nil, 0, fmt.Errorf("%w: frame header", access.ErrUnexpectedEOF)
	}
	size, pos := access.ReadUint16(src, 0)
	end := pos + int(size)
	if end > len(src) {
		return nil, 0, fmt.Errorf("%w: frame of %d bytes, have %d", access.ErrUnexpectedEOF, size, len(src)-pos)
	}
	return src[pos:end], end, nil
}
