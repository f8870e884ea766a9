package usage

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	goccyjson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"
	"golang.org/x/text/language"

	"github.com/quickwritereader/xpacket/codec"
	"github.com/quickwritereader/xpacket/packable"
	"github.com/quickwritereader/xpacket/schema"
)

// msgSchema mixes every field kind; the language tag goes through a
// registered custom codec.
const msgSchema = `{
	"name": "msg",
	"qualified": true,
	"fields": [
		{"name": "seqn", "kind": "scalar", "type": "uint16"},
		{"name": "hops", "kind": "scalar", "type": "uint8"},
		{"name": "arr", "kind": "array", "type": "uint8", "length": 8},
		{"name": "str", "kind": "string", "length": 32},
		{"name": "p_seqn", "kind": "ptr", "type": "uint8"},
		{"name": "long_arr", "kind": "ptrArray", "type": "uint32", "length": 8},
		{"name": "lang", "kind": "custom", "codec": "lang"},
		{"name": "opt_str", "kind": "ptrString"}
	]
}`

type Msg struct {
	Seqn    uint16       `json:"seqn" msgpack:"seqn"`
	Hops    uint8        `json:"hops" msgpack:"hops"`
	Arr     [8]uint8     `json:"arr" msgpack:"arr"`
	Str     [32]byte     `json:"str" msgpack:"str"`
	PSeqn   *uint8       `json:"p_seqn" msgpack:"p_seqn"`
	LongArr []uint32     `json:"long_arr" msgpack:"long_arr"`
	Lang    language.Tag `json:"-" msgpack:"-"`
	OptStr  []byte       `json:"opt_str" msgpack:"opt_str"`
}

func cstr(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return string(b[:i])
	}
	return string(b)
}

func TestUsage_MsgRoundTrip(t *testing.T) {
	packable.RegisterDefaults()

	rec, err := schema.ParseJSON([]byte(msgSchema))
	require.NoError(t, err)
	fmt.Fprintln(os.Stdout, "schema:", rec)

	c, err := codec.Compile[Msg](rec, codec.WithMode(codec.Checked), codec.WithWireTerminator())
	require.NoError(t, err)

	pSeqn := uint8(42)
	in := Msg{
		Seqn:    0x1234,
		Hops:    3,
		Arr:     [8]uint8{1, 2, 3, 4, 5, 6, 7, 8},
		PSeqn:   &pSeqn,
		LongArr: []uint32{10, 20, 30, 40, 50, 60, 70, 80},
		Lang:    language.MustParse("de-CH"),
		OptStr:  []byte("optional\x00"),
	}
	copy(in.Str[:], "hello, world")

	wire, err := c.Marshal(&in)
	require.NoError(t, err)

	size, err := c.WireSize(&in)
	require.NoError(t, err)
	assert.Equal(t, len(wire), size)

	out := Msg{
		PSeqn:   new(uint8),
		LongArr: make([]uint32, 8),
		OptStr:  make([]byte, 32),
	}
	n, err := c.Decode(wire, &out)
	require.NoError(t, err)
	assert.Equal(t, len(wire), n)

	assert.Equal(t, in.Seqn, out.Seqn)
	assert.Equal(t, in.Hops, out.Hops)
	assert.Equal(t, in.Arr, out.Arr)
	assert.Equal(t, "hello, world", cstr(out.Str[:]))
	assert.Equal(t, pSeqn, *out.PSeqn)
	assert.Equal(t, in.LongArr, out.LongArr)
	assert.Equal(t, in.Lang, out.Lang)
	assert.Equal(t, "optional", cstr(out.OptStr))

	mp, err := msgpack.Marshal(&in)
	require.NoError(t, err)
	js, err := goccyjson.Marshal(&in)
	require.NoError(t, err)

	fmt.Fprintln(os.Stdout, "xpacket size:", len(wire),
		"\nmsgpack size:", len(mp),
		"\njson size:   ", len(js))
	assert.Less(t, len(wire), len(mp))
	assert.Less(t, len(wire), len(js))
}

func TestUsage_DescribeRoundTrip(t *testing.T) {
	packable.RegisterDefaults()

	rec, err := schema.ParseJSON([]byte(msgSchema))
	require.NoError(t, err)

	doc, err := goccyjson.Marshal(rec.Describe())
	require.NoError(t, err)

	again, err := schema.ParseJSON(doc)
	require.NoError(t, err)
	assert.Equal(t, rec.String(), again.String())
	assert.Equal(t, "EncodeMsg", again.EncodeFuncName())
}
