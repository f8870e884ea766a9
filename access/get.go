package access

import (
	"fmt"

	"github.com/quickwritereader/xpacket/types"
)

// GetAccess is the read cursor mirroring PutAccess.
type GetAccess struct {
	buf      []byte // full source buffer
	position int    // current read position
	checked  bool
}

func NewGetAccess(buf []byte, checked bool) GetAccess {
	return GetAccess{
		buf:     buf,
		checked: checked,
	}
}

// Position returns the number of bytes consumed so far.
func (g *GetAccess) Position() int {
	return g.position
}

func (g *GetAccess) Checked() bool {
	return g.checked
}

func (g *GetAccess) Remaining() int {
	return len(g.buf) - g.position
}

// Tail exposes the unread part of the source, used by custom hooks.
func (g *GetAccess) Tail() []byte {
	return g.buf[g.position:]
}

func (g *GetAccess) ensure(n int) error {
	if g.checked && n > len(g.buf)-g.position {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrUnexpectedEOF, n, g.position, len(g.buf)-g.position)
	}
	return nil
}

// Skip advances the cursor over n bytes consumed through Tail.
func (g *GetAccess) Skip(n int) error {
	if err := g.ensure(n); err != nil {
		return err
	}
	g.position += n
	return nil
}

// GetScalar reads a w-bit big-endian value.
func (g *GetAccess) GetScalar(w types.Width) (uint32, error) {
	if err := g.ensure(w.Bytes()); err != nil {
		return 0, err
	}
	var v uint32
	v, g.position = ReadScalar[uint32](g.buf, g.position, w)
	return v, nil
}

// GetCString copies source bytes into dst until a NUL in the source, limit
// bytes (when limit >= 0) or the end of the source, whichever comes first.
// The end of the source always ends the string: a trailing string field is
// delimited by the payload end. When eatNul is set a NUL that stopped the
// copy is consumed as well. It returns the number of bytes copied.
//
// A destination shorter than the string is ErrBufferTooSmall in checked
// mode and an index panic otherwise.
func (g *GetAccess) GetCString(dst []byte, limit int, eatNul bool) (int, error) {
	n := 0
	for (limit < 0 || n < limit) && g.position < len(g.buf) && g.buf[g.position] != 0 {
		if g.checked && n == len(dst) {
			return n, fmt.Errorf("%w: string longer than %d byte destination at offset %d",
				ErrBufferTooSmall, len(dst), g.position)
		}
		dst[n] = g.buf[g.position]
		g.position++
		n++
	}
	if eatNul && g.position < len(g.buf) && g.buf[g.position] == 0 && (limit < 0 || n < limit) {
		g.position++
	}
	return n, nil
}

// GetBytes fills dst with the next len(dst) source bytes.
func (g *GetAccess) GetBytes(dst []byte) error {
	if err := g.ensure(len(dst)); err != nil {
		return err
	}
	g.position += copy(dst, g.buf[g.position:g.position+len(dst)])
	return nil
}
