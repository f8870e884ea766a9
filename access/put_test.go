package access

import (
	"testing"

	"github.com/quickwritereader/xpacket/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPutAccess_ExplicitByteMatch(t *testing.T) {
	buf := make([]byte, 16)
	put := NewPutAccess(buf, true)

	require.NoError(t, put.PutScalar(0x1234, types.Width16))     // 2 bytes
	require.NoError(t, put.PutScalar(0xAB, types.Width8))        // 1 byte
	require.NoError(t, put.PutScalar(0xDEADBEEF, types.Width32)) // 4 bytes
	n, err := put.PutCString([]byte("go\x00xx"), 5)             // 2 bytes, NUL not written
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	expected := []byte{
		0x12, 0x34,
		0xAB,
		0xDE, 0xAD, 0xBE, 0xEF,
		'g', 'o',
	}

	require.Equal(t, len(expected), put.Position(), "Length mismatch")
	for i := range expected {
		assert.Equalf(t, expected[i], buf[i], "Byte %d mismatch", i)
	}
}

func TestPutAccess_ZeroScalar(t *testing.T) {
	buf := []byte{0xFF, 0xFF}
	put := NewPutAccess(buf, false)
	require.NoError(t, put.PutScalar(0, types.Width16))
	assert.Equal(t, []byte{0x00, 0x00}, buf)
}

func TestPutAccess_CStringBounds(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		limit  int
		expect string
	}{
		{"terminator before bound", "ab\x00xxxxx", 8, "ab"},
		{"bound before terminator", "abcdef", 3, "abc"},
		{"exactly bound", "abc", 3, "abc"},
		{"unbounded", "hello\x00world", -1, "hello"},
		{"empty", "\x00abc", 4, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := make([]byte, 16)
			put := NewPutAccess(buf, true)
			n, err := put.PutCString([]byte(tc.src), tc.limit)
			require.NoError(t, err)
			assert.Equal(t, len(tc.expect), n)
			assert.Equal(t, tc.expect, string(buf[:put.Position()]))
		})
	}
}

func TestPutAccess_CheckedErrors(t *testing.T) {
	put := NewPutAccess(make([]byte, 3), true)
	require.NoError(t, put.PutScalar(1, types.Width16))

	err := put.PutScalar(1, types.Width16)
	require.ErrorIs(t, err, ErrBufferTooSmall)
	assert.Equal(t, 2, put.Position(), "failed write must not move the cursor")

	_, err = put.PutCString([]byte("abc"), -1)
	assert.ErrorIs(t, err, ErrUnterminatedString)

	_, err = put.PutCString([]byte("abc\x00"), -1)
	assert.ErrorIs(t, err, ErrBufferTooSmall)

	assert.ErrorIs(t, put.Skip(2), ErrBufferTooSmall)
	require.NoError(t, put.PutByte(0x7F))
	assert.Equal(t, 0, put.Available())
}

func TestPutAccess_UncheckedOverrunPanics(t *testing.T) {
	buf := make([]byte, 4, 64)
	put := NewPutAccess(buf, false)
	require.NoError(t, put.PutScalar(1, types.Width32))

	assert.Panics(t, func() { _ = put.PutScalar(1, types.Width8) })

	put = NewPutAccess(make([]byte, 2), false)
	assert.Panics(t, func() { _, _ = put.PutCString([]byte("abcd\x00"), -1) },
		"capacity is clipped to the buffer length")
	assert.Panics(t, func() { _, _ = put.PutCString([]byte("ab"), -1) },
		"unterminated indirect string")
}

func TestWriteScalarGeneric(t *testing.T) {
	buf := make([]byte, 7)
	pos := WriteScalar(buf, 0, uint8(0x01), types.Width8)
	pos = WriteScalar(buf, pos, uint16(0x0203), types.Width16)
	pos = WriteScalar(buf, pos, uint32(0x04050607), types.Width32)
	assert.Equal(t, 7, pos)
	assert.Equal(t, []byte{1, 2, 3, 4, 5, 6, 7}, buf)

	v16, pos := ReadScalar[uint16](buf, 1, types.Width16)
	assert.Equal(t, uint16(0x0203), v16)
	assert.Equal(t, 3, pos)

	direct := make([]byte, 7)
	p := WriteUint8(direct, 0, 0x01)
	p = WriteUint16(direct, p, 0x0203)
	p = WriteUint32(direct, p, 0x04050607)
	assert.Equal(t, 7, p)
	assert.Equal(t, buf, direct)
}
