package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/meshnorm/pkg/scene"
)

func TestExtractSubdiv(t *testing.T) {
	tests := []struct {
		name       string
		scheme     string
		boundary   string
		fvli       string
		wantScheme string
		wantIB     int
		wantFVLI   int
		wantPropag bool
	}{
		{"none ignores boundary tags", scene.TokenNone, scene.TokenEdgeOnly, scene.TokenBoundaries, "", 0, 0, false},
		{"unset scheme", "", scene.TokenEdgeOnly, scene.TokenBoundaries, "", 0, 0, false},
		{"unknown scheme", "sqrt3", scene.TokenEdgeOnly, scene.TokenBoundaries, "", 0, 0, false},
		{"catmull clark edge and corner", scene.TokenCatmullClark, scene.TokenEdgeAndCorner, scene.TokenAll, scene.TokenCatmullClark, 1, 0, false},
		{"loop corners plus one", scene.TokenLoop, scene.TokenNone, scene.TokenCornersPlus1, scene.TokenLoop, 0, 1, false},
		{"loop corners plus two", scene.TokenLoop, scene.TokenNone, scene.TokenCornersPlus2, scene.TokenLoop, 0, 1, true},
		{"bilinear fv none", scene.TokenBilinear, scene.TokenEdgeOnly, scene.TokenNone, scene.TokenBilinear, 2, 2, false},
		{"boundaries", scene.TokenCatmullClark, "", scene.TokenBoundaries, scene.TokenCatmullClark, 0, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := newTwoTriangles()
			if tt.scheme != "" {
				setToken(n, scene.AttrSubdivisionScheme, tt.scheme)
			}
			if tt.boundary != "" {
				setToken(n, scene.AttrInterpolateBoundary, tt.boundary)
			}
			setToken(n, scene.AttrFaceVaryingLinearInterpolation, tt.fvli)

			s := ExtractSubdiv(n)
			assert.Equal(t, tt.wantScheme, s.Scheme)
			assert.Equal(t, tt.wantScheme != "", s.IsSubdivisionMesh())
			assert.Equal(t, tt.wantIB, s.InterpolateBoundary)
			assert.Equal(t, tt.wantFVLI, s.FaceVaryingLinearInterpolation)
			assert.Equal(t, tt.wantPropag, s.PropagateCorner)
		})
	}
}

func TestExtractSubdivTagsOnPolygonMesh(t *testing.T) {
	n := newTwoTriangles()
	setToken(n, scene.AttrSubdivisionScheme, scene.TokenNone)
	n.SetAttribute(scene.AttrCornerIndices, scene.NewAttribute(scene.TypeIntArray, []int32{3}))
	n.SetAttribute(scene.AttrCornerSharpnesses, scene.NewAttribute(scene.TypeFloatArray, []float32{10}))
	n.SetAttribute(scene.AttrHoleIndices, scene.NewAttribute(scene.TypeIntArray, []int32{1}))

	s := ExtractSubdiv(n)
	assert.False(t, s.IsSubdivisionMesh())
	assert.Equal(t, []int32{3}, s.CornerIndices)
	assert.Equal(t, []float32{10}, s.CornerSharpness)
	assert.Equal(t, []int32{1}, s.HoleIndices)
	assert.Nil(t, s.CreaseIndices)
}
