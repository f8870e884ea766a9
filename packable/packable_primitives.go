package packable

import (
	"math"

	"github.com/quickwritereader/xpacket/access"
)

func need(buf []byte, pos, n int) error {
	if len(buf)-pos < n {
		return access.ErrUnexpectedEOF
	}
	return nil
}

// PackBool is a one-byte boolean; any non-zero byte reads as true.
type PackBool bool

func (p PackBool) ValueSize() int { return 1 }
func (p PackBool) Write(buf []byte, pos int) int {
	return access.WriteBool(buf, pos, bool(p))
}
func (p *PackBool) Read(buf []byte, pos int) (int, error) {
	if err := need(buf, pos, 1); err != nil {
		return pos, err
	}
	*p = buf[pos] != 0
	return pos + 1, nil
}

// PackInt8 implements Packable for int8.
type PackInt8 int8

func (p PackInt8) ValueSize() int { return 1 }
func (p PackInt8) Write(buf []byte, pos int) int {
	return access.WriteUint8(buf, pos, uint8(p))
}
func (p *PackInt8) Read(buf []byte, pos int) (int, error) {
	if err := need(buf, pos, 1); err != nil {
		return pos, err
	}
	v, next := access.ReadUint8(buf, pos)
	*p = PackInt8(v)
	return next, nil
}

// PackInt16 implements Packable for int16, two's complement big-endian.
type PackInt16 int16

func (p PackInt16) ValueSize() int { return 2 }
func (p PackInt16) Write(buf []byte, pos int) int {
	return access.WriteUint16(buf, pos, uint16(p))
}
func (p *PackInt16) Read(buf []byte, pos int) (int, error) {
	if err := need(buf, pos, 2); err != nil {
		return pos, err
	}
	v, next := access.ReadUint16(buf, pos)
	*p = PackInt16(v)
	return next, nil
}

// PackInt32 implements Packable for int32.
type PackInt32 int32

func (p PackInt32) ValueSize() int { return 4 }
func (p PackInt32) Write(buf []byte, pos int) int {
	return access.WriteUint32(buf, pos, uint32(p))
}
func (p *PackInt32) Read(buf []byte, pos int) (int, error) {
	if err := need(buf, pos, 4); err != nil {
		return pos, err
	}
	v, next := access.ReadUint32(buf, pos)
	*p = PackInt32(v)
	return next, nil
}

// PackFloat32 implements Packable for float32 as its IEEE 754 bits.
type PackFloat32 float32

func (p PackFloat32) ValueSize() int { return 4 }
func (p PackFloat32) Write(buf []byte, pos int) int {
	return access.WriteUint32(buf, pos, math.Float32bits(float32(p)))
}
func (p *PackFloat32) Read(buf []byte, pos int) (int, error) {
	if err := need(buf, pos, 4); err != nil {
		return pos, err
	}
	v, next := access.ReadUint32(buf, pos)
	*p = PackFloat32(math.Float32frombits(v))
	return next, nil
}

// PackFloat64 implements Packable for float64 as two big-endian words,
// high word first.
type PackFloat64 float64

func (p PackFloat64) ValueSize() int { return 8 }
func (p PackFloat64) Write(buf []byte, pos int) int {
	bits := math.Float64bits(float64(p))
	pos = access.WriteUint32(buf, pos, uint32(bits>>32))
	return access.WriteUint32(buf, pos, uint32(bits))
}
func (p *PackFloat64) Read(buf []byte, pos int) (int, error) {
	if err := need(buf, pos, 8); err != nil {
		return pos, err
	}
	hi, next := access.ReadUint32(buf, pos)
	lo, next := access.ReadUint32(buf, next)
	*p = PackFloat64(math.Float64frombits(uint64(hi)<<32 | uint64(lo)))
	return next, nil
}
