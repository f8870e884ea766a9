package schema

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// Record is a validated, immutable record schema: an ordered, non-empty
// list of uniquely named fields. Only NewRecord produces one, so every
// Record in a program has passed Validate.
type Record struct {
	name      string
	fields    *fieldSet
	qualified bool
}

type RecordOption func(*Record)

// WithQualifiedNames makes EncodeFuncName/DecodeFuncName carry the record
// name ("EncodeMsg") instead of the bare overload-style name ("Encode").
func WithQualifiedNames(on bool) RecordOption {
	return func(r *Record) { r.qualified = on }
}

// Validate checks a field list at definition time. It reports the first
// violation as a *SchemaError.
func Validate(name string, fields []Field) error {
	_, err := buildFieldSet(name, fields)
	return err
}

func buildFieldSet(name string, fields []Field) (*fieldSet, error) {
	if len(fields) == 0 {
		return nil, NewSchemaError(ErrMissingField, name, "", -1, nil)
	}
	set := newFieldSet(len(fields))
	for pos, f := range fields {
		if code, inner := f.check(); code != ErrUnknown {
			return nil, NewSchemaError(code, name, f.Name, pos, inner)
		}
		if first, ok := set.add(f); !ok {
			return nil, NewSchemaError(ErrDuplicateName, name, f.Name, pos,
				DuplicateErrorDetails{FirstPosition: first})
		}
	}
	return set, nil
}

// NewRecord validates fields and returns the record schema.
func NewRecord(name string, fields []Field, opts ...RecordOption) (*Record, error) {
	set, err := buildFieldSet(name, fields)
	if err != nil {
		return nil, err
	}
	r := &Record{name: name, fields: set}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// MustRecord is NewRecord for schemas declared as package-level values.
func MustRecord(name string, fields []Field, opts ...RecordOption) *Record {
	r, err := NewRecord(name, fields, opts...)
	if err != nil {
		panic(err)
	}
	return r
}

func (r *Record) Name() string { return r.name }

func (r *Record) Qualified() bool { return r.qualified }

func (r *Record) Len() int { return r.fields.len() }

func (r *Record) Field(pos int) Field { return r.fields.at(pos) }

// Fields returns a copy of the fields in declaration order.
func (r *Record) Fields() []Field { return r.fields.values() }

func (r *Record) FieldNames() []string { return r.fields.names() }

// Lookup returns the field with the given name and its position.
func (r *Record) Lookup(name string) (Field, int, bool) {
	return r.fields.get(name)
}

func (r *Record) All() iter.Seq2[int, Field] {
	return r.fields.all()
}

// MaxWireSize returns the largest encoded size of the record and true, or
// -1 and false when a field is unbounded.
func (r *Record) MaxWireSize() (int, bool) {
	total := 0
	for _, f := range r.fields.all() {
		n := f.MaxSize()
		if n < 0 {
			return -1, false
		}
		total += n
	}
	return total, true
}

// MinWireSize returns the encoded size with every string empty and every
// custom field contributing nothing.
func (r *Record) MinWireSize() int {
	total := 0
	for _, f := range r.fields.all() {
		if f.IsFixed() {
			total += f.MaxSize()
		}
	}
	return total
}

func (r *Record) EncodeFuncName() string { return r.funcName("Encode") }

func (r *Record) DecodeFuncName() string { return r.funcName("Decode") }

func (r *Record) funcName(verb string) string {
	if !r.qualified || r.name == "" {
		return verb
	}
	return verb + exported(r.name)
}

// exported turns "sensor_msg" into "SensorMsg".
func exported(name string) string {
	var sb strings.Builder
	for _, part := range strings.FieldsFunc(name, func(c rune) bool {
		return !unicode.IsLetter(c) && !unicode.IsDigit(c)
	}) {
		first, size := utf8.DecodeRuneInString(part)
		sb.WriteRune(unicode.ToUpper(first))
		sb.WriteString(part[size:])
	}
	return sb.String()
}

func (r *Record) String() string {
	var sb strings.Builder
	sb.WriteString(r.name)
	sb.WriteString(" {")
	for i, f := range r.fields.all() {
		if i > 0 {
			sb.WriteString(";")
		}
		sb.WriteString(" ")
		sb.WriteString(f.String())
	}
	sb.WriteString(" }")
	return sb.String()
}

// MarshalJSON writes the record's description (see Describe).
func (r *Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Describe())
}
