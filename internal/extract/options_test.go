package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVariants(t *testing.T) {
	sels, bad := ParseVariants("/World/chair{modelingVariant=B}  /World/table{lod=high} junk /x{a} {a=b} /y{=b}")
	assert.Equal(t, []VariantSelection{
		{Path: "/World/chair", Set: "modelingVariant", Variant: "B"},
		{Path: "/World/table", Set: "lod", Variant: "high"},
	}, sels)
	assert.Equal(t, []string{"junk", "/x{a}", "{a=b}", "/y{=b}"}, bad)
	assert.Equal(t, "/World/chair{modelingVariant=B}", sels[0].String())

	sels, bad = ParseVariants("")
	assert.Empty(t, sels)
	assert.Empty(t, bad)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"chair", "table"}, SplitList(" chair, ,table,"))
	assert.Nil(t, SplitList(""))
}

func TestLoadMode(t *testing.T) {
	for _, m := range []LoadMode{LoadSpecified, LoadAll, LoadFirstFound} {
		got, err := ParseLoadMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseLoadMode("ALL")
	require.NoError(t, err)
	assert.Equal(t, LoadAll, got)

	_, err = ParseLoadMode("some")
	assert.Error(t, err)
	assert.Equal(t, "LoadMode(9)", LoadMode(9).String())
}
