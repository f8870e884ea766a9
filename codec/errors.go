package codec

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNilRecord     = errors.New("nil record")
	ErrNilReference  = errors.New("nil indirect reference")
	ErrShortArray    = errors.New("indirect array shorter than schema length")
	ErrHookOverrun   = errors.New("custom hook reported more bytes than available")
	ErrNotStruct     = errors.New("record type is not a struct")
	ErrIndirectAlloc = errors.New("cannot allocate indirect storage")
)

// FieldError reports a runtime failure at one field of a record.
type FieldError struct {
	Record   string
	Op       string // EncodeFuncName or DecodeFuncName of the record
	Field    string
	Position int // field position in the schema
	Offset   int // buffer offset where the field starts
	Err      error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s %s: field %q #%d at offset %d: %v",
		e.Record, e.Op, e.Field, e.Position, e.Offset, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// BindError reports a schema field that cannot be bound to the Go record
// type passed to Compile.
type BindError struct {
	Record  string
	Field   string
	GoType  reflect.Type
	GoField string
	Reason  string
}

func (e *BindError) Error() string {
	if e.GoField == "" {
		return fmt.Sprintf("%s: field %q has no counterpart in %v: %s", e.Record, e.Field, e.GoType, e.Reason)
	}
	return fmt.Sprintf("%s: field %q cannot bind to %v.%s: %s", e.Record, e.Field, e.GoType, e.GoField, e.Reason)
}
