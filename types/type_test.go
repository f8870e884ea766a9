package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_StringParseRoundTrip(t *testing.T) {
	for k := KindScalar; k <= KindCustom; k++ {
		parsed, err := ParseKind(k.String())
		require.NoError(t, err, "kind %d", k)
		assert.Equal(t, k, parsed)
	}
}

func TestKind_LongNames(t *testing.T) {
	cases := map[string]Kind{
		"fixedArray":     KindFixedArray,
		"IndirectScalar": KindIndirectScalar,
		"indirectArray":  KindIndirectArray,
		"embeddedString": KindEmbeddedString,
		"indirectString": KindIndirectString,
	}
	for name, expect := range cases {
		k, err := ParseKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, expect, k, name)
	}

	_, err := ParseKind("float")
	assert.Error(t, err)
}

func TestKind_Shape(t *testing.T) {
	assert.True(t, KindScalar.HasElem())
	assert.False(t, KindScalar.HasLength())
	assert.True(t, KindIndirectArray.HasElem())
	assert.True(t, KindIndirectArray.HasLength())
	assert.True(t, KindIndirectArray.IsIndirect())
	assert.False(t, KindEmbeddedString.HasElem())
	assert.True(t, KindEmbeddedString.HasLength())
	assert.False(t, KindIndirectString.HasLength())
	assert.True(t, KindIndirectString.IsString())
	assert.False(t, KindCustom.HasElem())
	assert.False(t, KindInvalid.Valid())
	assert.Equal(t, "invalid", Kind(42).String())
}

func TestWidth(t *testing.T) {
	cases := []struct {
		in    string
		width Width
		bytes int
	}{
		{"uint8", Width8, 1},
		{"u16", Width16, 2},
		{"32", Width32, 4},
		{"byte", Width8, 1},
	}
	for _, tc := range cases {
		w, err := ParseWidth(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.width, w)
		assert.Equal(t, tc.bytes, w.Bytes())
		assert.True(t, w.Valid())
	}

	_, err := ParseWidth("uint64")
	assert.Error(t, err)
	assert.False(t, Width(64).Valid())
	assert.Equal(t, "Width(64)", Width(64).String())
}
