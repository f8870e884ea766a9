package packable

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/language"

	"github.com/quickwritereader/xpacket/access"
	"github.com/quickwritereader/xpacket/schema"
)

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// Msgpack returns hooks that store any Go value as msgpack behind a
// big-endian uint16 length. Decode unmarshals into the field pointer.
func Msgpack() schema.Hooks {
	return schema.Hooks{
		Encode: func(dst []byte, value any) (int, error) {
			payload, err := msgpack.Marshal(value)
			if err != nil {
				return 0, fmt.Errorf("msgpack: %w", err)
			}
			return writeFrame(dst, payload)
		},
		Decode: func(src []byte, ptr any) (int, error) {
			payload, n, err := readFrame(src)
			if err != nil {
				return 0, err
			}
			if err := msgpack.Unmarshal(payload, ptr); err != nil {
				return 0, fmt.Errorf("msgpack: %w", err)
			}
			return n, nil
		},
	}
}

// JSON is Msgpack with a JSON payload.
func JSON() schema.Hooks {
	return schema.Hooks{
		Encode: func(dst []byte, value any) (int, error) {
			payload, err := jsonAPI.Marshal(value)
			if err != nil {
				return 0, fmt.Errorf("json: %w", err)
			}
			return writeFrame(dst, payload)
		},
		Decode: func(src []byte, ptr any) (int, error) {
			payload, n, err := readFrame(src)
			if err != nil {
				return 0, err
			}
			if err := jsonAPI.Unmarshal(payload, ptr); err != nil {
				return 0, fmt.Errorf("json: %w", err)
			}
			return n, nil
		},
	}
}

const maxTagLength = 255

// LanguageTag returns hooks for a language.Tag field, written as a uint8
// length and the canonical BCP 47 form. Decode rejects malformed tags.
func LanguageTag() schema.Hooks {
	return schema.Hooks{
		Encode: func(dst []byte, value any) (int, error) {
			tag, ok := value.(language.Tag)
			if !ok {
				return 0, fmt.Errorf("%w: %T", ErrValueType, value)
			}
			s := tag.String()
			if len(s) > maxTagLength {
				return 0, fmt.Errorf("%w: tag of %d bytes", ErrFrameTooLarge, len(s))
			}
			if 1+len(s) > len(dst) {
				return 0, fmt.Errorf("%w: need %d bytes, have %d", access.ErrBufferTooSmall, 1+len(s), len(dst))
			}
			pos := access.WriteUint8(dst, 0, uint8(len(s)))
			return access.WriteBytes(dst, pos, []byte(s)), nil
		},
		Decode: func(src []byte, ptr any) (int, error) {
			tag, ok := ptr.(*language.Tag)
			if !ok {
				return 0, fmt.Errorf("%w: %T", ErrValueType, ptr)
			}
			s, n, err := readShortString(src, 0)
			if err != nil {
				return 0, err
			}
			parsed, err := language.Parse(s)
			if err != nil {
				return 0, fmt.Errorf("language tag %q: %w", s, err)
			}
			*tag = parsed
			return n, nil
		},
		MaxSize: 1 + maxTagLength,
	}
}
