package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttributeGetDefault(t *testing.T) {
	a := NewAttribute(TypeIntArray, []int32{1, 2, 3})

	v, ok := a.Ints(DefaultTime())
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 3}, v)

	v, ok = a.Ints(12)
	require.True(t, ok)
	assert.Equal(t, []int32{1, 2, 3}, v)
	assert.Equal(t, 0, a.NumTimeSamples())
}

func TestAttributeGetSamples(t *testing.T) {
	a := &Attribute{TypeName: TypePoint3fArray}
	a.SetSample(10, [][3]float32{{10, 0, 0}})
	a.SetSample(1, [][3]float32{{1, 0, 0}})
	a.SetSample(5, [][3]float32{{5, 0, 0}})

	require.Equal(t, 3, a.NumTimeSamples())
	assert.Equal(t, Time(1), a.Samples()[0].Time)

	tests := []struct {
		name string
		t    Time
		want float32
	}{
		{"earliest", Earliest, 1},
		{"before range", -4, 1},
		{"exact", 5, 5},
		{"after range", 99, 10},
		{"blend", 3, 3},
		{"blend upper", 7.5, 7.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, ok := a.Vec3s(tt.t)
			require.True(t, ok)
			assert.InDelta(t, tt.want, v[0][0], 1e-5)
		})
	}

	_, ok := a.Vec3s(DefaultTime())
	assert.False(t, ok, "default time ignores samples")
}

func TestAttributeHeldValues(t *testing.T) {
	a := &Attribute{TypeName: TypeIntArray}
	a.SetSample(1, []int32{1})
	a.SetSample(3, []int32{3})

	v, ok := a.Ints(2)
	require.True(t, ok)
	assert.Equal(t, []int32{1}, v, "int arrays are held, not blended")

	p := &Attribute{TypeName: TypePoint3fArray}
	p.SetSample(1, [][3]float32{{0, 0, 0}})
	p.SetSample(3, [][3]float32{{1, 1, 1}, {2, 2, 2}})
	pts, ok := p.Vec3s(2)
	require.True(t, ok)
	assert.Len(t, pts, 1, "mismatched lengths hold the lower sample")
}

func TestAttributeSetSampleReplaces(t *testing.T) {
	a := &Attribute{}
	a.SetSample(1, "a")
	a.SetSample(1, "b")
	require.Equal(t, 1, a.NumTimeSamples())
	tok, ok := a.Token(1)
	require.True(t, ok)
	assert.Equal(t, "b", tok)
}

func TestAttributeWrongType(t *testing.T) {
	a := NewAttribute(TypeFloatArray, []float32{1})
	_, ok := a.Ints(DefaultTime())
	assert.False(t, ok)

	var missing *Attribute
	_, ok = missing.Floats(Earliest)
	assert.False(t, ok)
	assert.Equal(t, 0, missing.NumTimeSamples())
}

func TestPrimvarComputeFlattened(t *testing.T) {
	pv := NewPrimvar("u_map1", TypeFloatArray, Vertex, []float32{0.1, 0.2}).
		WithIndices([]int32{1, 0, 1})

	require.True(t, pv.IsIndexed())
	v, ok := pv.ComputeFlattened(Earliest)
	require.True(t, ok)
	assert.Equal(t, []float32{0.2, 0.1, 0.2}, v)

	bad := NewPrimvar("st", TypeTexCoord2fArray, FaceVarying, [][2]float32{{0, 0}}).
		WithIndices([]int32{0, 3})
	_, ok = bad.ComputeFlattened(Earliest)
	assert.False(t, ok, "out of range index fails flattening")

	plain := NewPrimvar("st", TypeTexCoord2fArray, FaceVarying, [][2]float32{{0, 1}})
	assert.False(t, plain.IsIndexed())
	v, ok = plain.ComputeFlattened(Earliest)
	require.True(t, ok)
	assert.Equal(t, [][2]float32{{0, 1}}, v)
}
