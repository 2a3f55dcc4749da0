package mesh

import (
	"slices"

	"github.com/Faultbox/meshnorm/pkg/scene"
)

var interpolateBoundaryCodes = map[string]int{
	scene.TokenNone:          0,
	scene.TokenEdgeAndCorner: 1,
	scene.TokenEdgeOnly:      2,
}

var faceVaryingLinearInterpolationCodes = map[string]int{
	scene.TokenAll:          0,
	scene.TokenCornersPlus1: 1,
	scene.TokenNone:         2,
	scene.TokenBoundaries:   3,
	scene.TokenCornersPlus2: 1,
}

// ExtractSubdiv reads the subdivision tags of a node. Missing data gives
// empty arrays and a plain polygon mesh; it never fails.
func ExtractSubdiv(n Node) Subdiv {
	var s Subdiv
	t := scene.Earliest

	s.CreaseIndices = readInts(n, scene.AttrCreaseIndices)
	s.CreaseLengths = readInts(n, scene.AttrCreaseLengths)
	s.CreaseSharpness = readFloats(n, scene.AttrCreaseSharpnesses)
	s.CornerIndices = readInts(n, scene.AttrCornerIndices)
	s.CornerSharpness = readFloats(n, scene.AttrCornerSharpnesses)
	s.HoleIndices = readInts(n, scene.AttrHoleIndices)

	scheme, _ := n.Attribute(scene.AttrSubdivisionScheme).Token(t)
	switch scheme {
	case scene.TokenCatmullClark, scene.TokenLoop, scene.TokenBilinear:
		s.Scheme = scheme
	default:
		return s
	}

	if tok, ok := n.Attribute(scene.AttrInterpolateBoundary).Token(t); ok {
		s.InterpolateBoundary = interpolateBoundaryCodes[tok]
	}
	if tok, ok := n.Attribute(scene.AttrFaceVaryingLinearInterpolation).Token(t); ok {
		s.FaceVaryingLinearInterpolation = faceVaryingLinearInterpolationCodes[tok]
		s.PropagateCorner = tok == scene.TokenCornersPlus2
	}
	return s
}

func readInts(n Node, name string) []int32 {
	v, _ := n.Attribute(name).Ints(scene.Earliest)
	return slices.Clone(v)
}

func readFloats(n Node, name string) []float32 {
	v, _ := n.Attribute(name).Floats(scene.Earliest)
	return slices.Clone(v)
}
