// Package codec compiles a schema.Record into the matched Encode/Decode pair
// of one Go record type.
//
// The record type is an ordinary struct whose exported fields are bound to
// schema fields by the `xpacket:"name"` tag, by Go field name, or by the
// name with underscores dropped, case-insensitively ("opt_str" → OptStr).
// Field types follow the kind:
//
//	Scalar W          uintW
//	FixedArray W, N   [N]uintW
//	IndirectScalar W  *uintW
//	IndirectArray W,N []uintW (borrowed, len >= N)
//	EmbeddedString N  [N]byte
//	IndirectString    []byte (borrowed, NUL-terminated)
//	Custom            any type, handled by the field's hooks
//
// Binding happens once in Compile; Encode and Decode only walk the
// precomputed steps.
package codec

import (
	"reflect"
	"strings"

	"github.com/quickwritereader/xpacket/access"
	"github.com/quickwritereader/xpacket/schema"
	"github.com/quickwritereader/xpacket/types"
)

const tagName = "xpacket"

type encodeFunc func(c *config, p *access.PutAccess, v reflect.Value) error
type decodeFunc func(c *config, g *access.GetAccess, v reflect.Value) error

// step is one field of the compiled record.
type step struct {
	field  schema.Field
	pos    int   // position in the schema
	index  []int // struct field index
	encode encodeFunc
	decode decodeFunc
}

// Codec is the compiled encode/decode pair of record type T. It holds no
// mutable state and is safe for concurrent use on distinct records and
// buffers.
type Codec[T any] struct {
	rec       *schema.Record
	steps     []step
	cfg       config
	hasCustom bool
}

// Compile binds rec to the struct type T. Schema validity is guaranteed by
// schema.NewRecord; Compile reports *BindError when a field has no fitting
// counterpart in T.
func Compile[T any](rec *schema.Record, opts ...Option) (*Codec[T], error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return nil, &BindError{Record: rec.Name(), GoType: rt, Reason: ErrNotStruct.Error()}
	}

	c := &Codec[T]{rec: rec, cfg: cfg, steps: make([]step, 0, rec.Len())}
	bound := make(map[string]string, rec.Len())
	candidates := bindableFields(rt)

	for pos, f := range rec.All() {
		sf, ok := lookupField(candidates, f.Name)
		if !ok {
			return nil, &BindError{Record: rec.Name(), Field: f.Name, GoType: rt, Reason: "no matching struct field"}
		}
		if other, taken := bound[sf.Name]; taken {
			return nil, &BindError{Record: rec.Name(), Field: f.Name, GoType: rt, GoField: sf.Name,
				Reason: "already bound to field " + other}
		}
		bound[sf.Name] = f.Name

		s := step{field: f, pos: pos, index: sf.Index}
		if reason := bindStep(&s, sf.Type); reason != "" {
			return nil, &BindError{Record: rec.Name(), Field: f.Name, GoType: rt, GoField: sf.Name, Reason: reason}
		}
		if f.Kind == types.KindCustom {
			c.hasCustom = true
		}
		c.steps = append(c.steps, s)
	}
	return c, nil
}

// MustCompile is Compile for codecs declared as package-level values.
func MustCompile[T any](rec *schema.Record, opts ...Option) *Codec[T] {
	c, err := Compile[T](rec, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Codec[T]) Schema() *schema.Record { return c.rec }

func (c *Codec[T]) Name() string { return c.rec.Name() }

func (c *Codec[T]) Mode() Mode { return c.cfg.mode }

// MaxWireSize is the record's static maximum plus one terminator byte per
// bounded string when WithWireTerminator is set.
func (c *Codec[T]) MaxWireSize() (int, bool) {
	size, ok := c.rec.MaxWireSize()
	if !ok || !c.cfg.wireTerminator {
		return size, ok
	}
	for _, s := range c.steps {
		if s.field.Kind == types.KindEmbeddedString {
			size++
		}
	}
	return size, true
}

// bindableFields returns the exported, settable fields of t, including
// fields promoted through embedded structs (not embedded pointers).
func bindableFields(t reflect.Type) []reflect.StructField {
	var out []reflect.StructField
	for _, sf := range reflect.VisibleFields(t) {
		if sf.Anonymous || !sf.IsExported() || sf.Tag.Get(tagName) == "-" {
			continue
		}
		if throughPointer(t, sf.Index) {
			continue
		}
		out = append(out, sf)
	}
	return out
}

func throughPointer(t reflect.Type, index []int) bool {
	for i := 1; i < len(index); i++ {
		if t.FieldByIndex(index[:i]).Type.Kind() == reflect.Pointer {
			return true
		}
	}
	return false
}

// lookupField matches a schema name by tag, then Go name, then the name
// with underscores removed, case-insensitively.
func lookupField(fields []reflect.StructField, name string) (reflect.StructField, bool) {
	for _, sf := range fields {
		if tag, _, _ := strings.Cut(sf.Tag.Get(tagName), ","); tag == name {
			return sf, true
		}
	}
	for _, sf := range fields {
		if sf.Tag.Get(tagName) == "" && sf.Name == name {
			return sf, true
		}
	}
	folded := strings.ReplaceAll(name, "_", "")
	for _, sf := range fields {
		if sf.Tag.Get(tagName) == "" && strings.EqualFold(sf.Name, folded) {
			return sf, true
		}
	}
	return reflect.StructField{}, false
}

func uintKind(w types.Width) reflect.Kind {
	switch w {
	case types.Width8:
		return reflect.Uint8
	case types.Width16:
		return reflect.Uint16
	case types.Width32:
		return reflect.Uint32
	}
	return reflect.Invalid
}

// bindStep checks the Go type against the field kind and selects the
// step's encode/decode functions. It returns a reason on mismatch.
func bindStep(s *step, t reflect.Type) string {
	f := s.field
	elem := uintKind(f.Elem)

	switch f.Kind {
	case types.KindScalar:
		if t.Kind() != elem {
			return "want " + f.Elem.String()
		}
		s.encode, s.decode = encodeScalar(f.Elem), decodeScalar(f.Elem)

	case types.KindFixedArray:
		if t.Kind() != reflect.Array || t.Len() != f.Length || t.Elem().Kind() != elem {
			return "want [" + itoa(f.Length) + "]" + f.Elem.String()
		}
		s.encode, s.decode = encodeFixedArray(f.Elem, f.Length), decodeFixedArray(f.Elem, f.Length)

	case types.KindIndirectScalar:
		if t.Kind() != reflect.Pointer || t.Elem().Kind() != elem {
			return "want *" + f.Elem.String()
		}
		s.encode, s.decode = encodeIndirectScalar(f.Elem), decodeIndirectScalar(f.Elem)

	case types.KindIndirectArray:
		if t.Kind() != reflect.Slice || t.Elem().Kind() != elem {
			return "want []" + f.Elem.String()
		}
		s.encode, s.decode = encodeIndirectArray(f.Elem, f.Length), decodeIndirectArray(f.Elem, f.Length)

	case types.KindEmbeddedString:
		if t.Kind() != reflect.Array || t.Len() != f.Length || t.Elem().Kind() != reflect.Uint8 {
			return "want [" + itoa(f.Length) + "]byte"
		}
		s.encode, s.decode = encodeEmbeddedString(f.Length), decodeEmbeddedString(f.Length)

	case types.KindIndirectString:
		if t.Kind() != reflect.Slice || t.Elem().Kind() != reflect.Uint8 {
			return "want []byte"
		}
		s.encode, s.decode = encodeIndirectString, decodeIndirectString

	case types.KindCustom:
		s.encode, s.decode = encodeCustom(f.Hooks), decodeCustom(f.Hooks)

	default:
		return "unsupported kind " + f.Kind.String()
	}
	return ""
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var b [20]byte
	i := len(b)
	for ; n > 0; n /= 10 {
		i--
		b[i] = byte('0' + n%10)
	}
	return string(b[i:])
}

// fieldValue resolves the bound struct field of record value rv.
func (s *step) fieldValue(rv reflect.Value) reflect.Value {
	if len(s.index) == 1 {
		return rv.Field(s.index[0])
	}
	return rv.FieldByIndex(s.index)
}
