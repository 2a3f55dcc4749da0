package mesh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshnorm/pkg/scene"
)

func TestExpand(t *testing.T) {
	topo := twoTrianglesTopology()

	tests := []struct {
		name    string
		interp  scene.Interpolation
		indices []int32
		want    []int32
		wantErr error
	}{
		{"vertex unindexed maps through vertex ids", scene.Vertex, nil, []int32{0, 1, 2, 2, 1, 3}, nil},
		{"vertex indexed", scene.Vertex, []int32{3, 2, 1, 0}, []int32{3, 2, 1, 1, 2, 0}, nil},
		{"face varying unindexed", scene.FaceVarying, nil, []int32{0, 1, 2, 3, 4, 5}, nil},
		{"face varying indexed", scene.FaceVarying, []int32{5, 4, 3, 2, 1, 0}, []int32{5, 4, 3, 2, 1, 0}, nil},
		{"vertex index table too short", scene.Vertex, []int32{0, 1}, nil, ErrIndexOutOfRange},
		{"uniform", scene.Uniform, nil, nil, ErrInterpolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Expand(tt.interp, tt.indices, topo)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, topo.CornerCount())
		})
	}
}

func TestExpandDoesNotAlias(t *testing.T) {
	in := []int32{0, 1, 2, 3, 4, 5}
	out, err := Expand(scene.FaceVarying, in, twoTrianglesTopology())
	require.NoError(t, err)
	out[0] = 9
	assert.Equal(t, int32(0), in[0])
}

func TestNormalIndices(t *testing.T) {
	topo := twoTrianglesTopology()

	// One normal per point.
	assert.Equal(t, []int32{0, 1, 2, 2, 1, 3}, NormalIndices(4, topo))
	// One normal per corner.
	assert.Equal(t, []int32{0, 1, 2, 3, 4, 5}, NormalIndices(6, topo))
}

func TestValidateIndices(t *testing.T) {
	tests := []struct {
		name      string
		indices   []int32
		numValues int
		corners   int
		wantErr   error
	}{
		{"ok", []int32{0, 1, 1}, 2, 3, nil},
		{"short", []int32{0, 1}, 2, 3, ErrIndexCountMismatch},
		{"long", []int32{0, 1, 0, 1}, 2, 3, ErrIndexCountMismatch},
		{"negative", []int32{0, -1, 1}, 2, 3, ErrIndexOutOfRange},
		{"past end", []int32{0, 2, 1}, 2, 3, ErrIndexOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateIndices(tt.indices, tt.numValues, tt.corners)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestReadTopology(t *testing.T) {
	t.Run("static", func(t *testing.T) {
		topo, err := ReadTopology(newTwoTriangles())
		require.NoError(t, err)
		assert.Equal(t, twoTrianglesTopology(), topo)
		assert.Equal(t, 2, topo.FaceCount())
		assert.Equal(t, 6, topo.CornerCount())
	})

	t.Run("time sampled reads earliest", func(t *testing.T) {
		n := newTwoTriangles()
		idx := &scene.Attribute{TypeName: scene.TypeIntArray}
		idx.SetSample(5, []int32{3, 2, 1, 1, 2, 0})
		idx.SetSample(2, []int32{0, 1, 2, 2, 1, 3})
		n.SetAttribute(scene.AttrFaceVertexIndices, idx)

		assert.Equal(t, scene.Earliest, TopologyTime(n))
		topo, err := ReadTopology(n)
		require.NoError(t, err)
		assert.Equal(t, []int32{0, 1, 2, 2, 1, 3}, topo.VertexIndices)
	})

	t.Run("counts sampled while indices are static", func(t *testing.T) {
		n := newTwoTriangles()
		counts := &scene.Attribute{TypeName: scene.TypeIntArray}
		counts.SetSample(1, []int32{3, 3})
		n.SetAttribute(scene.AttrFaceVertexCounts, counts)

		_, err := ReadTopology(n)
		assert.True(t, errors.Is(err, ErrMissingTopology), "got %v", err)
	})

	tests := []struct {
		name    string
		mutate  func(n *scene.Node)
		wantErr error
	}{
		{"no indices", func(n *scene.Node) {
			n.SetAttribute(scene.AttrFaceVertexIndices, nil)
		}, ErrMissingTopology},
		{"no counts", func(n *scene.Node) {
			n.SetAttribute(scene.AttrFaceVertexCounts, nil)
		}, ErrMissingTopology},
		{"sum mismatch", func(n *scene.Node) {
			n.SetAttribute(scene.AttrFaceVertexCounts, scene.NewAttribute(scene.TypeIntArray, []int32{3, 4}))
		}, ErrInconsistentTopology},
		{"negative count", func(n *scene.Node) {
			n.SetAttribute(scene.AttrFaceVertexCounts, scene.NewAttribute(scene.TypeIntArray, []int32{9, -3}))
		}, ErrInconsistentTopology},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTwoTriangles()
			tt.mutate(n)
			_, err := ReadTopology(n)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}
