package schema

import (
	"fmt"

	"github.com/quickwritereader/xpacket/types"
)

type ErrorCode int

const (
	ErrUnknown            ErrorCode = iota
	ErrMissingField                 // empty record or field without a name
	ErrDuplicateName                // two fields share a name
	ErrUnsupportedType              // unknown kind or element width outside 8/16/32
	ErrNonPositiveLength            // bounded field with length <= 0
	ErrUnexpectedLength             // length given for a kind that takes none
	ErrMissingHooks                 // custom field without encode/decode hooks
	ErrInvalidDescription           // JSON/YAML description could not be read
)

// String implements fmt.Stringer
func (e ErrorCode) String() string {
	switch e {
	case ErrUnknown:
		return "ErrUnknown"
	case ErrMissingField:
		return "ErrMissingField"
	case ErrDuplicateName:
		return "ErrDuplicateName"
	case ErrUnsupportedType:
		return "ErrUnsupportedType"
	case ErrNonPositiveLength:
		return "ErrNonPositiveLength"
	case ErrUnexpectedLength:
		return "ErrUnexpectedLength"
	case ErrMissingHooks:
		return "ErrMissingHooks"
	case ErrInvalidDescription:
		return "ErrInvalidDescription"
	default:
		return fmt.Sprintf("ErrorCode(%d)", int(e))
	}
}

// Error lets a bare code be used as an errors.Is target.
func (e ErrorCode) Error() string {
	return e.String()
}

type SchemaError struct {
	Code     ErrorCode
	Record   string
	Field    string
	Position int
	InnerErr error
}

func formatError(code ErrorCode, record string, field string, pos int, inner error) string {
	if inner != nil {
		return fmt.Sprintf("%s %s:%s#%d { %s }", record, code, field, pos, inner)
	}
	return fmt.Sprintf("%s %s:%s#%d", record, code, field, pos)
}

func (v *SchemaError) Error() string {
	return formatError(v.Code, v.Record, v.Field, v.Position, v.InnerErr)
}

func (v *SchemaError) Unwrap() error {
	return v.InnerErr
}

// Is matches a bare ErrorCode against the error's code.
func (v *SchemaError) Is(target error) bool {
	code, ok := target.(ErrorCode)
	return ok && code == v.Code
}

func NewSchemaError(code ErrorCode, record, field string, pos int, inner error) *SchemaError {
	return &SchemaError{Code: code, Record: record, Field: field, Position: pos, InnerErr: inner}
}

type WidthErrorDetails struct {
	Kind  types.Kind
	Width types.Width
}

func (e WidthErrorDetails) Error() string {
	if e.Kind.HasElem() {
		return fmt.Sprintf("%s element must be uint8, uint16 or uint32, got %s", e.Kind, e.Width)
	}
	return fmt.Sprintf("%s takes no element type, got %s", e.Kind, e.Width)
}

type LengthErrorDetails struct {
	Kind   types.Kind
	Length int
}

func (e LengthErrorDetails) Error() string {
	if e.Kind.HasLength() {
		return fmt.Sprintf("%s length %d <= 0", e.Kind, e.Length)
	}
	return fmt.Sprintf("%s takes no length, got %d", e.Kind, e.Length)
}

type DuplicateErrorDetails struct {
	FirstPosition int
}

func (e DuplicateErrorDetails) Error() string {
	return fmt.Sprintf("first declared at #%d", e.FirstPosition)
}
