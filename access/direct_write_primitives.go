package access

import (
	"encoding/binary"

	"github.com/quickwritereader/xpacket/types"
	"golang.org/x/exp/constraints"
)

// WriteScalar writes the low w bits of v most significant byte first and
// returns the new position. The byte loop emits shifts w-8, w-16, ..., 0.
func WriteScalar[T constraints.Unsigned](buffer []byte, pos int, v T, w types.Width) int {
	for shift := int(w) - 8; shift >= 0; shift -= 8 {
		buffer[pos] = byte(v >> shift)
		pos++
	}
	return pos
}

// ReadScalar rebuilds a w-bit value from big-endian bytes. The result
// starts at zero so no residual bits of a previous value survive.
func ReadScalar[T constraints.Unsigned](buffer []byte, pos int, w types.Width) (T, int) {
	var v T
	for shift := int(w) - 8; shift >= 0; shift -= 8 {
		v |= T(buffer[pos]) << shift
		pos++
	}
	return v, pos
}

// WriteUint8 writes a uint8 value to the buffer.
func WriteUint8(buffer []byte, pos int, v uint8) int {
	buffer[pos] = v
	return pos + 1
}

// WriteUint16 writes a big-endian uint16 value to the buffer.
func WriteUint16(buffer []byte, pos int, v uint16) int {
	binary.BigEndian.PutUint16(buffer[pos:], v)
	return pos + 2
}

// WriteUint32 writes a big-endian uint32 value to the buffer.
func WriteUint32(buffer []byte, pos int, v uint32) int {
	binary.BigEndian.PutUint32(buffer[pos:], v)
	return pos + 4
}

// WriteBool writes a boolean value as a single byte to the buffer.
func WriteBool(buffer []byte, pos int, v bool) int {
	var b byte
	if v {
		b = 1
	}
	buffer[pos] = b
	return pos + 1
}

// WriteBytes writes a byte slice to the buffer.
func WriteBytes(buffer []byte, pos int, b []byte) int {
	copy(buffer[pos:], b)
	return pos + len(b)
}

func ReadUint8(buffer []byte, pos int) (uint8, int) {
	return buffer[pos], pos + 1
}

func ReadUint16(buffer []byte, pos int) (uint16, int) {
	return binary.BigEndian.Uint16(buffer[pos:]), pos + 2
}

func ReadUint32(buffer []byte, pos int) (uint32, int) {
	return binary.BigEndian.Uint32(buffer[pos:]), pos + 4
}
