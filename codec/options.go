package codec

import "fmt"

// Mode selects whether encode and decode verify buffer capacity and
// borrowed references.
type Mode int

const (
	// Unchecked performs no capacity or reference checks. Callers size
	// buffers from MaxWireSize; an overrun panics.
	Unchecked Mode = iota
	// Checked verifies every step and reports failures as *FieldError.
	Checked
)

func (m Mode) String() string {
	switch m {
	case Unchecked:
		return "unchecked"
	case Checked:
		return "checked"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

type config struct {
	mode           Mode
	wireTerminator bool
	rawStrings     bool
}

func (c *config) checked() bool { return c.mode == Checked }

type Option func(*config)

func WithMode(m Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithWireTerminator writes a 0x00 after every string that does not fill
// its bound (always after an indirect string) and consumes it on decode.
// Strings become self-delimiting at the cost of one byte; the default wire
// format carries no terminator.
func WithWireTerminator() Option {
	return func(c *config) { c.wireTerminator = true }
}

// WithRawStringDecode leaves string destinations untouched past the copied
// characters. By default decode writes one NUL after them when the
// destination has room.
func WithRawStringDecode() Option {
	return func(c *config) { c.rawStrings = true }
}
