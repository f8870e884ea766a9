package packable

import (
	"errors"
	"testing"

	"github.com/quickwritereader/xpacket/access"
	"github.com/quickwritereader/xpacket/codec"
	"github.com/quickwritereader/xpacket/schema"
	"github.com/quickwritereader/xpacket/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type reading struct {
	Seqn    uint16
	Temp    PackInt16
	Ratio   PackFloat64
	Online  PackBool
	Station uint8
}

func readingRecord() *schema.Record {
	return schema.MustRecord("reading", []schema.Field{
		schema.Scalar("seqn", types.Width16),
		schema.Custom("temp", Sized[PackInt16](2)),
		schema.Custom("ratio", Of[PackFloat64]()),
		schema.Custom("online", Of[PackBool]()),
		schema.Scalar("station", types.Width8),
	})
}

func TestPackable_ExplicitByteMatch(t *testing.T) {
	c := codec.MustCompile[reading](readingRecord())
	in := reading{Seqn: 1, Temp: -2, Ratio: 1.5, Online: true, Station: 0x7F}

	buf := make([]byte, 32)
	n, err := c.Encode(buf, &in)
	require.NoError(t, err)

	expected := []byte{
		0x00, 0x01, // seqn
		0xFF, 0xFE, // temp -2
		0x3F, 0xF8, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // ratio 1.5
		0x01, // online
		0x7F, // station
	}
	require.Equal(t, len(expected), n, "Length mismatch")
	for i := range expected {
		assert.Equalf(t, expected[i], buf[i], "Byte %d mismatch", i)
	}

	var out reading
	m, err := c.Decode(buf[:n], &out)
	require.NoError(t, err)
	assert.Equal(t, n, m)
	assert.Equal(t, in, out)
}

func TestPackable_Primitives(t *testing.T) {
	type prims struct {
		A PackInt8
		B PackInt32
		C PackFloat32
	}
	c := codec.MustCompile[prims](schema.MustRecord("prims", []schema.Field{
		schema.Custom("a", Sized[PackInt8](1)),
		schema.Custom("b", Sized[PackInt32](4)),
		schema.Custom("c", Sized[PackFloat32](4)),
	}))

	size, bounded := c.MaxWireSize()
	require.True(t, bounded)
	assert.Equal(t, 9, size)

	in := prims{A: -1, B: -100000, C: 0.25}
	wire, err := c.Marshal(&in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xFE, 0x79, 0x60, 0x3E, 0x80, 0x00, 0x00}, wire)

	out, n, err := c.Unmarshal(wire)
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, &in, out)
}

func TestPackable_ShortBuffers(t *testing.T) {
	c := codec.MustCompile[reading](readingRecord(), codec.WithMode(codec.Checked))
	in := reading{Ratio: 2}

	_, err := c.Encode(make([]byte, 6), &in)
	require.ErrorIs(t, err, access.ErrBufferTooSmall)
	var fe *codec.FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "ratio", fe.Field)

	var out reading
	_, err = c.Decode([]byte{0x00, 0x01, 0xFF}, &out)
	require.ErrorIs(t, err, access.ErrUnexpectedEOF)
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "temp", fe.Field)
}

func TestPackable_WrongGoType(t *testing.T) {
	type wrong struct {
		Temp int16
	}
	c := codec.MustCompile[wrong](schema.MustRecord("wrong", []schema.Field{
		schema.Custom("temp", Of[PackInt16]()),
	}))
	_, err := c.Encode(make([]byte, 4), &wrong{Temp: 1})
	assert.ErrorIs(t, err, ErrValueType)
	_, err = c.Decode([]byte{0, 1}, &wrong{})
	assert.ErrorIs(t, err, ErrValueType)
}

func TestPackMapSorted(t *testing.T) {
	type tagged struct {
		Seqn uint8
		Meta PackMapSorted
	}
	c := codec.MustCompile[tagged](schema.MustRecord("tagged", []schema.Field{
		schema.Scalar("seqn", types.Width8),
		schema.Custom("meta", Map()),
	}))

	in := tagged{Seqn: 5, Meta: PackMapSorted{"role": "admin", "user": "alice"}}
	wire, err := c.Marshal(&in)
	require.NoError(t, err)

	expected := []byte{
		0x05,                         // seqn
		0x02,                         // entries
		0x04, 'r', 'o', 'l', 'e',     // sorted first
		0x05, 'a', 'd', 'm', 'i', 'n',
		0x04, 'u', 's', 'e', 'r',
		0x05, 'a', 'l', 'i', 'c', 'e',
	}
	assert.Equal(t, expected, wire)

	again, err := c.Marshal(&in)
	require.NoError(t, err)
	assert.Equal(t, wire, again, "key order is deterministic")

	var out tagged
	n, err := c.Decode(wire, &out)
	require.NoError(t, err)
	assert.Equal(t, len(wire), n)
	assert.Equal(t, in, out)

	long := make([]byte, 300)
	in.Meta = PackMapSorted{"k": string(long)}
	_, err = c.Marshal(&in)
	assert.ErrorIs(t, err, ErrFrameTooLarge)
}

type sensorMeta struct {
	Model string   `msgpack:"model" json:"model"`
	Tags  []string `msgpack:"tags" json:"tags"`
}

type envelope struct {
	Seqn uint16
	Meta sensorMeta
	Hops uint8
}

func TestEncodedPayloads(t *testing.T) {
	for _, tc := range []struct {
		name  string
		hooks schema.Hooks
	}{
		{"msgpack", Msgpack()},
		{"json", JSON()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := codec.MustCompile[envelope](schema.MustRecord("envelope", []schema.Field{
				schema.Scalar("seqn", types.Width16),
				schema.Custom("meta", tc.hooks),
				schema.Scalar("hops", types.Width8),
			}))

			in := envelope{Seqn: 0x0102, Meta: sensorMeta{Model: "bme280", Tags: []string{"indoor", "lab"}}, Hops: 3}
			wire, err := c.Marshal(&in)
			require.NoError(t, err)

			assert.Equal(t, []byte{0x01, 0x02}, wire[:2])
			frame := int(wire[2])<<8 | int(wire[3])
			assert.Equal(t, len(wire), 2+2+frame+1, "uint16 frame length covers the payload")
			assert.Equal(t, byte(3), wire[len(wire)-1])

			var out envelope
			n, err := c.Decode(wire, &out)
			require.NoError(t, err)
			assert.Equal(t, len(wire), n)
			assert.Equal(t, in, out)

			_, err = c.Decode(wire[:5], &out)
			assert.ErrorIs(t, err, access.ErrUnexpectedEOF)
		})
	}
}

func TestJSONPayload_IsReadable(t *testing.T) {
	n, err := JSON().Encode(make([]byte, 64), sensorMeta{Model: "x"})
	require.NoError(t, err)
	assert.Equal(t, 2+len(`{"model":"x","tags":null}`), n)
}

func TestLanguageTag(t *testing.T) {
	type localized struct {
		Lang language.Tag
		Code uint8
	}
	c := codec.MustCompile[localized](schema.MustRecord("localized", []schema.Field{
		schema.Custom("lang", LanguageTag()),
		schema.Scalar("code", types.Width8),
	}))

	in := localized{Lang: language.MustParse("pt-BR"), Code: 9}
	wire, err := c.Marshal(&in)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x05, 'p', 't', '-', 'B', 'R', 0x09}, wire)

	out, n, err := c.Unmarshal(wire)
	require.NoError(t, err)
	assert.Equal(t, 7, n)
	assert.Equal(t, in.Lang, out.Lang)
	assert.Equal(t, uint8(9), out.Code)

	_, _, err = c.Unmarshal([]byte{0x03, '!', '!', '!', 0x00})
	assert.Error(t, err)
}

func TestRegisterDefaults(t *testing.T) {
	RegisterDefaults()
	RegisterDefaults()

	names := schema.RegisteredCodecTypes()
	for _, name := range []string{CodecBool, CodecInt8, CodecInt16, CodecInt32, CodecFloat32,
		CodecFloat64, CodecMap, CodecMsgpack, CodecJSON, CodecLanguage} {
		assert.Contains(t, names, name)
	}

	rec, err := schema.ParseYAML([]byte(`
name: status
fields:
  - {name: seqn, kind: scalar, type: uint16}
  - {name: online, kind: custom, codec: bool}
  - {name: lang, kind: custom, codec: lang}
`))
	require.NoError(t, err)

	type status struct {
		Seqn   uint16
		Online PackBool
		Lang   language.Tag
	}
	c := codec.MustCompile[status](rec)
	wire, err := c.Marshal(&status{Seqn: 2, Online: true, Lang: language.English})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x02, 0x01, 0x02, 'e', 'n'}, wire)
}
