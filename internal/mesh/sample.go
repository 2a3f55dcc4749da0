package mesh

import (
	"fmt"

	"github.com/Faultbox/meshnorm/pkg/scene"

	pmath "github.com/Faultbox/meshnorm/pkg/math"
)

// WorldTransform returns the matrix applied to a node's points at time t.
// With a reference the result is relative to it: points go through the
// node's local-to-world matrix, then through the reference's inverse.
// It reports false when the reference matrix is singular, in which case
// the reference is ignored.
func WorldTransform(n Transformer, ref Transformer, t scene.Time) (pmath.Mat4, bool) {
	m := n.LocalToWorld(t)
	if ref == nil {
		return m, true
	}
	inv, ok := ref.LocalToWorld(t).Inverse()
	if !ok {
		return m, false
	}
	return m.Mul(inv), true
}

// TransformPoints applies m to every point in place. Identity is a no-op.
func TransformPoints(points [][3]float32, m pmath.Mat4) {
	if m.IsIdentity() {
		return
	}
	for i, p := range points {
		points[i] = m.TransformPoint32(p)
	}
}

// ConvertZUpToYUp remaps (x, y, z) to (x, z, -y) in place.
func ConvertZUpToYUp(points [][3]float32) {
	for i, p := range points {
		points[i] = [3]float32{p[0], p[2], -p[1]}
	}
}

// readPoints returns a copy of a node's points at a frame.
func readPoints(n Node, frame int) ([][3]float32, error) {
	pts, ok := n.Attribute(scene.AttrPoints).Vec3s(scene.Time(frame))
	if !ok {
		return nil, fmt.Errorf("%w: frame %d of %s", ErrMissingPoints, frame, n.Path())
	}
	return append([][3]float32(nil), pts...), nil
}

// sampleFrame reads, transforms and converts the points of one frame.
func (m *Mesh) sampleFrame(n Node, frame int, opts *Options) ([][3]float32, error) {
	points, err := readPoints(n, frame)
	if err != nil {
		return nil, err
	}

	t := scene.Time(frame)
	xf, ok := WorldTransform(n, opts.Reference, t)
	if !ok {
		m.report(SeverityWarning, CodeSingularReference,
			"reference transform at frame %d is singular, exporting world space", frame)
	}
	TransformPoints(points, xf)

	if opts.ConformYUp && !opts.SourceUpY {
		ConvertZUpToYUp(points)
	}
	return points, nil
}
