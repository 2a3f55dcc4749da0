package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/meshnorm/pkg/scene"

	pmath "github.com/Faultbox/meshnorm/pkg/math"
)

type fixedTransform pmath.Mat4

func (f fixedTransform) LocalToWorld(scene.Time) pmath.Mat4 { return pmath.Mat4(f) }

func TestWorldTransform(t *testing.T) {
	node := fixedTransform(pmath.Translate(1, 2, 3))

	m, ok := WorldTransform(node, nil, 1)
	assert.True(t, ok)
	assert.Equal(t, pmath.Translate(1, 2, 3), m)

	m, ok = WorldTransform(node, fixedTransform(pmath.Translate(1, 0, 0)), 1)
	assert.True(t, ok)
	want := pmath.Translate(0, 2, 3)
	assert.InDeltaSlice(t, want[:], m[:], 1e-12)

	m, ok = WorldTransform(node, fixedTransform(pmath.Scale(0, 1, 1)), 1)
	assert.False(t, ok)
	assert.Equal(t, pmath.Translate(1, 2, 3), m)
}

func TestTransformPoints(t *testing.T) {
	pts := [][3]float32{{1, 0, 0}, {0, 1, 0}}
	TransformPoints(pts, pmath.Identity())
	assert.Equal(t, [][3]float32{{1, 0, 0}, {0, 1, 0}}, pts)

	TransformPoints(pts, pmath.Scale(2, 3, 4).Mul(pmath.Translate(0, 0, 1)))
	assert.Equal(t, [][3]float32{{2, 0, 1}, {0, 3, 1}}, pts)
}

func TestConvertZUpToYUp(t *testing.T) {
	pts := [][3]float32{{1, 2, 3}, {0, 0, 1}}
	ConvertZUpToYUp(pts)
	assert.Equal(t, [][3]float32{{1, 3, -2}, {0, 1, 0}}, pts)
}
