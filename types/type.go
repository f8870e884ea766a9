package types

import (
	"fmt"
	"strings"
)

// Kind is the shape of a schema field: how it is laid out in memory and
// how its bytes are visited on the wire.
type Kind uint8

const (
	KindInvalid        Kind = 0
	KindScalar         Kind = 1 // single unsigned integer
	KindFixedArray     Kind = 2 // N unsigned integers stored in the record
	KindIndirectScalar Kind = 3 // unsigned integer in borrowed storage
	KindIndirectArray  Kind = 4 // N unsigned integers in borrowed storage
	KindEmbeddedString Kind = 5 // NUL-terminated chars bounded by N, stored in the record
	KindIndirectString Kind = 6 // NUL-terminated chars in borrowed storage, unbounded
	KindCustom         Kind = 7 // opaque, delegated to user hooks
)

// String returns the human-readable name of the kind
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindFixedArray:
		return "array"
	case KindIndirectScalar:
		return "ptr"
	case KindIndirectArray:
		return "ptrArray"
	case KindEmbeddedString:
		return "string"
	case KindIndirectString:
		return "ptrString"
	case KindCustom:
		return "custom"
	default:
		return "invalid"
	}
}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	return k >= KindScalar && k <= KindCustom
}

// HasElem reports whether fields of this kind carry an element width.
func (k Kind) HasElem() bool {
	switch k {
	case KindScalar, KindFixedArray, KindIndirectScalar, KindIndirectArray:
		return true
	}
	return false
}

// HasLength reports whether fields of this kind require a positive bound.
func (k Kind) HasLength() bool {
	switch k {
	case KindFixedArray, KindIndirectArray, KindEmbeddedString:
		return true
	}
	return false
}

func (k Kind) IsIndirect() bool {
	switch k {
	case KindIndirectScalar, KindIndirectArray, KindIndirectString:
		return true
	}
	return false
}

func (k Kind) IsString() bool {
	return k == KindEmbeddedString || k == KindIndirectString
}

// ParseKind maps a schema description name onto a Kind. Both the short
// names returned by String and the long descriptive names are accepted,
// case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scalar", "var":
		return KindScalar, nil
	case "array", "fixedarray":
		return KindFixedArray, nil
	case "ptr", "indirectscalar":
		return KindIndirectScalar, nil
	case "ptrarray", "indirectarray":
		return KindIndirectArray, nil
	case "string", "embeddedstring":
		return KindEmbeddedString, nil
	case "ptrstring", "indirectstring":
		return KindIndirectString, nil
	case "custom":
		return KindCustom, nil
	}
	return KindInvalid, fmt.Errorf("unknown field kind %q", s)
}

// Width is the bit width of an unsigned integer element.
type Width uint8

const (
	WidthNone Width = 0
	Width8    Width = 8
	Width16   Width = 16
	Width32   Width = 32
)

func (w Width) String() string {
	switch w {
	case Width8:
		return "uint8"
	case Width16:
		return "uint16"
	case Width32:
		return "uint32"
	case WidthNone:
		return "none"
	default:
		return fmt.Sprintf("Width(%d)", uint8(w))
	}
}

// Valid reports whether w is one of the supported fixed widths.
func (w Width) Valid() bool {
	return w == Width8 || w == Width16 || w == Width32
}

// Bytes returns the wire size of one element.
func (w Width) Bytes() int {
	return int(w) >> 3
}

// ParseWidth accepts "uint8", "u8" or "8" style names.
func ParseWidth(s string) (Width, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uint8", "u8", "8", "byte":
		return Width8, nil
	case "uint16", "u16", "16":
		return Width16, nil
	case "uint32", "u32", "32":
		return Width32, nil
	case "":
		return WidthNone, nil
	}
	return WidthNone, fmt.Errorf("unsupported element type %q", s)
}
