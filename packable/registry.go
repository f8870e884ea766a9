package packable

import (
	"sync"

	"github.com/quickwritereader/xpacket/schema"
)

// Codec names registered by RegisterDefaults, usable as the "codec" of a
// custom field in JSON or YAML schema descriptions.
const (
	CodecBool     = "bool"
	CodecInt8     = "int8"
	CodecInt16    = "int16"
	CodecInt32    = "int32"
	CodecFloat32  = "float32"
	CodecFloat64  = "float64"
	CodecMap      = "map"
	CodecMsgpack  = "msgpack"
	CodecJSON     = "json"
	CodecLanguage = "lang"
)

var registerOnce sync.Once

// RegisterDefaults adds the hooks of this package to the schema codec
// registry. It is safe to call more than once.
func RegisterDefaults() {
	registerOnce.Do(func() {
		schema.RegisterCodecType(CodecBool, Sized[PackBool](1))
		schema.RegisterCodecType(CodecInt8, Sized[PackInt8](1))
		schema.RegisterCodecType(CodecInt16, Sized[PackInt16](2))
		schema.RegisterCodecType(CodecInt32, Sized[PackInt32](4))
		schema.RegisterCodecType(CodecFloat32, Sized[PackFloat32](4))
		schema.RegisterCodecType(CodecFloat64, Sized[PackFloat64](8))
		schema.RegisterCodecType(CodecMap, Map())
		schema.RegisterCodecType(CodecMsgpack, Msgpack())
		schema.RegisterCodecType(CodecJSON, JSON())
		schema.RegisterCodecType(CodecLanguage, LanguageTag())
	})
}
