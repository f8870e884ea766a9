package access

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/quickwritereader/xpacket/types"
)

var (
	ErrBufferTooSmall     = errors.New("buffer too small")
	ErrUnexpectedEOF      = errors.New("unexpected end of source buffer")
	ErrUnterminatedString = errors.New("unterminated string")
)

// PutAccess is a write cursor over a caller-provided buffer. It never
// allocates or grows the buffer.
//
// In checked mode every write verifies the remaining capacity first and
// reports ErrBufferTooSmall. In unchecked mode nothing is verified and an
// overrun surfaces as a runtime index panic.
type PutAccess struct {
	buf      []byte // destination, cap clipped to len
	position int    // current write position
	checked  bool
}

func NewPutAccess(buf []byte, checked bool) PutAccess {
	return PutAccess{
		buf:     buf[:len(buf):len(buf)],
		checked: checked,
	}
}

// Position returns the number of bytes written so far.
func (p *PutAccess) Position() int {
	return p.position
}

func (p *PutAccess) Checked() bool {
	return p.checked
}

// Available returns the capacity left after the cursor.
func (p *PutAccess) Available() int {
	return len(p.buf) - p.position
}

// Tail exposes the unwritten part of the buffer, used by custom hooks
// that write directly at the cursor.
func (p *PutAccess) Tail() []byte {
	return p.buf[p.position:]
}

func (p *PutAccess) ensure(n int) error {
	if p.checked && n > len(p.buf)-p.position {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
			ErrBufferTooSmall, n, p.position, len(p.buf)-p.position)
	}
	return nil
}

// Skip advances the cursor over n bytes already written through Tail.
func (p *PutAccess) Skip(n int) error {
	if err := p.ensure(n); err != nil {
		return err
	}
	p.position += n
	return nil
}

// PutScalar writes the w-bit value v in big-endian order.
func (p *PutAccess) PutScalar(v uint32, w types.Width) error {
	if err := p.ensure(w.Bytes()); err != nil {
		return err
	}
	p.position = WriteScalar(p.buf, p.position, v, w)
	return nil
}

// PutByte writes a single raw byte.
func (p *PutAccess) PutByte(b byte) error {
	if err := p.ensure(1); err != nil {
		return err
	}
	p.buf[p.position] = b
	p.position++
	return nil
}

// PutCString writes the characters of s preceding its first NUL. A
// non-negative limit bounds the scan to limit bytes; a negative limit scans
// until the NUL is found. The NUL itself is never written. It returns the
// number of characters written.
func (p *PutAccess) PutCString(s []byte, limit int) (int, error) {
	if limit >= 0 && limit < len(s) {
		s = s[:limit]
	}
	n := bytes.IndexByte(s, 0)
	if n < 0 {
		switch {
		case limit >= 0:
			n = len(s)
		case p.checked:
			return 0, fmt.Errorf("%w: no NUL within %d bytes", ErrUnterminatedString, len(s))
		default:
			panic(fmt.Errorf("%w: no NUL within %d bytes", ErrUnterminatedString, len(s)))
		}
	}
	if err := p.ensure(n); err != nil {
		return 0, err
	}
	p.position += copy(p.buf[p.position:p.position+n], s[:n])
	return n, nil
}

// PutBytes writes b verbatim; for 8-bit elements this is the big-endian
// encoding of the whole run.
func (p *PutAccess) PutBytes(b []byte) error {
	if err := p.ensure(len(b)); err != nil {
		return err
	}
	p.position += copy(p.buf[p.position:p.position+len(b)], b)
	return nil
}
