// Package scene provides an in-memory, time-sampled scene description:
// a hierarchy of nodes carrying attributes, primvars and transforms.
// It is the read side consumed by the mesh normalization engine.
package scene

import (
	"math"
	"strings"
)

// Time is a scene time code, in frames.
type Time float64

// Earliest selects the first authored time sample of an attribute.
const Earliest Time = -math.MaxFloat64

// DefaultTime selects the non-time-varying default value of an attribute.
func DefaultTime() Time {
	return Time(math.NaN())
}

// IsDefault reports whether t is the default time code.
func (t Time) IsDefault() bool {
	return math.IsNaN(float64(t))
}

// Interpolation describes how a primvar's values map onto a mesh.
type Interpolation string

// Interpolation classes.
const (
	Constant    Interpolation = "constant"
	Uniform     Interpolation = "uniform"
	Varying     Interpolation = "varying"
	Vertex      Interpolation = "vertex"
	FaceVarying Interpolation = "faceVarying"
)

// ValueType is the declared type name of an attribute's values.
type ValueType string

// Supported value types.
const (
	TypeIntArray        ValueType = "int[]"
	TypeFloatArray      ValueType = "float[]"
	TypeFloat2Array     ValueType = "float2[]"
	TypeTexCoord2fArray ValueType = "texCoord2f[]"
	TypeFloat3Array     ValueType = "float3[]"
	TypePoint3fArray    ValueType = "point3f[]"
	TypeNormal3fArray   ValueType = "normal3f[]"
	TypeToken           ValueType = "token"
	TypeString          ValueType = "string"
)

// Mesh schema attribute names.
const (
	AttrPoints                         = "points"
	AttrNormals                        = "normals"
	AttrFaceVertexCounts               = "faceVertexCounts"
	AttrFaceVertexIndices              = "faceVertexIndices"
	AttrCreaseIndices                  = "creaseIndices"
	AttrCreaseLengths                  = "creaseLengths"
	AttrCreaseSharpnesses              = "creaseSharpnesses"
	AttrCornerIndices                  = "cornerIndices"
	AttrCornerSharpnesses              = "cornerSharpnesses"
	AttrHoleIndices                    = "holeIndices"
	AttrSubdivisionScheme              = "subdivisionScheme"
	AttrInterpolateBoundary            = "interpolateBoundary"
	AttrFaceVaryingLinearInterpolation = "faceVaryingLinearInterpolation"
	AttrVisibility                     = "visibility"
)

// Tokens used by mesh and imageable attributes.
const (
	TokenNone          = "none"
	TokenCatmullClark  = "catmullClark"
	TokenLoop          = "loop"
	TokenBilinear      = "bilinear"
	TokenEdgeAndCorner = "edgeAndCorner"
	TokenEdgeOnly      = "edgeOnly"
	TokenAll           = "all"
	TokenCornersOnly   = "cornersOnly"
	TokenCornersPlus1  = "cornersPlus1"
	TokenCornersPlus2  = "cornersPlus2"
	TokenBoundaries    = "boundaries"
	TokenInvisible     = "invisible"
	TokenInherited     = "inherited"
)

// Node type names.
const (
	TypeMesh  = "Mesh"
	TypeXform = "Xform"
	TypeScope = "Scope"
)

// Stage is the root of a scene.
type Stage struct {
	// UpAxis is "Y" or "Z".
	UpAxis string

	roots []*Node
}

// NewStage creates an empty stage with the given up axis.
func NewStage(upAxis string) *Stage {
	return &Stage{UpAxis: strings.ToUpper(upAxis)}
}

// IsUpY reports whether the stage is authored Y-up. An unset axis counts as Y.
func (s *Stage) IsUpY() bool {
	return s.UpAxis != "Z"
}

// AddRoot adds a top-level node.
func (s *Stage) AddRoot(n *Node) *Node {
	n.parent = nil
	s.roots = append(s.roots, n)
	return n
}

// Roots returns the top-level nodes.
func (s *Stage) Roots() []*Node {
	return s.roots
}

// Traverse walks the stage depth-first in pre-order. Returning false from
// fn skips the node's children. Children are listed when a node is
// reached, so variant selections made in fn take effect immediately.
func (s *Stage) Traverse(fn func(n *Node) bool) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if !fn(n) {
			return
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	for _, r := range s.roots {
		walk(r)
	}
}

// Find returns the node at an absolute path such as "/World/chair/geo".
func (s *Stage) Find(path string) *Node {
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) == 0 || parts[0] == "" {
		return nil
	}

	var cur *Node
	candidates := s.roots
	for _, name := range parts {
		cur = nil
		for _, c := range candidates {
			if c.name == name {
				cur = c
				break
			}
		}
		if cur == nil {
			return nil
		}
		candidates = cur.Children()
	}
	return cur
}
