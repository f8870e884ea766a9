package schema

import (
	"fmt"

	"github.com/quickwritereader/xpacket/types"
)

// EncodeFunc writes value at the start of dst and returns the number of
// bytes written. dst is the unwritten remainder of the destination buffer.
type EncodeFunc func(dst []byte, value any) (int, error)

// DecodeFunc reads from the start of src into the field behind ptr and
// returns the number of bytes consumed.
type DecodeFunc func(src []byte, ptr any) (int, error)

// Hooks is the user-supplied codec of a Custom field. The engine treats the
// field as opaque and only advances its cursor by what the hooks report.
type Hooks struct {
	Encode EncodeFunc
	Decode DecodeFunc
	// MaxSize bounds the bytes a single encode may produce; 0 means unknown.
	MaxSize int
}

// Field is one named, typed unit of a record schema.
type Field struct {
	Kind   types.Kind
	Elem   types.Width
	Name   string
	Length int
	Hooks  Hooks
	// Codec is the registry name the hooks were resolved from, if any.
	Codec string
}

func Scalar(name string, w types.Width) Field {
	return Field{Kind: types.KindScalar, Elem: w, Name: name}
}

func FixedArray(name string, w types.Width, n int) Field {
	return Field{Kind: types.KindFixedArray, Elem: w, Name: name, Length: n}
}

func IndirectScalar(name string, w types.Width) Field {
	return Field{Kind: types.KindIndirectScalar, Elem: w, Name: name}
}

func IndirectArray(name string, w types.Width, n int) Field {
	return Field{Kind: types.KindIndirectArray, Elem: w, Name: name, Length: n}
}

func EmbeddedString(name string, n int) Field {
	return Field{Kind: types.KindEmbeddedString, Name: name, Length: n}
}

func IndirectString(name string) Field {
	return Field{Kind: types.KindIndirectString, Name: name}
}

func Custom(name string, hooks Hooks) Field {
	return Field{Kind: types.KindCustom, Name: name, Hooks: hooks}
}

// CustomCodec builds a Custom field whose hooks come from the codec
// registry (see RegisterCodecType).
func CustomCodec(name, codec string) (Field, error) {
	hooks, ok := LookupCodecType(codec)
	if !ok {
		return Field{}, NewSchemaError(ErrMissingHooks, "", name, -1,
			fmt.Errorf("codec %q is not registered", codec))
	}
	f := Custom(name, hooks)
	f.Codec = codec
	return f, nil
}

// MaxSize returns the largest number of bytes the field can occupy on the
// wire, or -1 when it is unbounded.
func (f Field) MaxSize() int {
	switch f.Kind {
	case types.KindScalar, types.KindIndirectScalar:
		return f.Elem.Bytes()
	case types.KindFixedArray, types.KindIndirectArray:
		return f.Length * f.Elem.Bytes()
	case types.KindEmbeddedString:
		return f.Length
	case types.KindCustom:
		if f.Hooks.MaxSize > 0 {
			return f.Hooks.MaxSize
		}
	}
	return -1
}

// IsFixed reports whether every value of the field has the same wire size.
func (f Field) IsFixed() bool {
	return f.Kind.HasElem()
}

func (f Field) String() string {
	switch {
	case f.Kind.HasElem() && f.Kind.HasLength():
		return fmt.Sprintf("%s %s[%d] %s", f.Kind, f.Elem, f.Length, f.Name)
	case f.Kind.HasElem():
		return fmt.Sprintf("%s %s %s", f.Kind, f.Elem, f.Name)
	case f.Kind.HasLength():
		return fmt.Sprintf("%s[%d] %s", f.Kind, f.Length, f.Name)
	case f.Codec != "":
		return fmt.Sprintf("%s(%s) %s", f.Kind, f.Codec, f.Name)
	default:
		return fmt.Sprintf("%s %s", f.Kind, f.Name)
	}
}

// check returns the code and detail of the first shape rule the field
// breaks, or ErrUnknown and nil when the field is well formed.
func (f Field) check() (ErrorCode, error) {
	switch {
	case f.Name == "":
		return ErrMissingField, nil
	case !f.Kind.Valid():
		return ErrUnsupportedType, fmt.Errorf("unknown kind %d", uint8(f.Kind))
	case f.Kind.HasElem() && !f.Elem.Valid(), !f.Kind.HasElem() && f.Elem != types.WidthNone:
		return ErrUnsupportedType, WidthErrorDetails{Kind: f.Kind, Width: f.Elem}
	case f.Kind.HasLength() && f.Length <= 0:
		return ErrNonPositiveLength, LengthErrorDetails{Kind: f.Kind, Length: f.Length}
	case !f.Kind.HasLength() && f.Length != 0:
		return ErrUnexpectedLength, LengthErrorDetails{Kind: f.Kind, Length: f.Length}
	case f.Kind == types.KindCustom && (f.Hooks.Encode == nil || f.Hooks.Decode == nil):
		return ErrMissingHooks, nil
	}
	return ErrUnknown, nil
}
