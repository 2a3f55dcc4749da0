// Package mesh normalizes polygon meshes read from a scene into flat,
// face-varying buffers: one position table per sampled frame, a shared
// vertex index buffer, and UV and normal tables whose index arrays have
// exactly one entry per face corner.
package mesh

import (
	"github.com/Faultbox/meshnorm/pkg/scene"

	pmath "github.com/Faultbox/meshnorm/pkg/math"
)

// Node is the scene capability the engine reads a mesh from.
// *scene.Node satisfies it.
type Node interface {
	Transformer
	Path() string
	TypeName() string
	IsMesh() bool
	ParentName() string
	Attribute(name string) *scene.Attribute
	Primvar(name string) *scene.Primvar
	NormalsInterpolation() scene.Interpolation
}

// Transformer provides a node's composed transform at a given time.
type Transformer interface {
	LocalToWorld(t scene.Time) pmath.Mat4
}

// State is the construction state of a mesh.
type State int

// Construction states, in order. Invalid is terminal.
const (
	Uninitialized State = iota
	TopologyLoaded
	AttributesResolved
	FramesSampled
	Ready
	Invalid
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case TopologyLoaded:
		return "topology-loaded"
	case AttributesResolved:
		return "attributes-resolved"
	case FramesSampled:
		return "frames-sampled"
	case Ready:
		return "ready"
	case Invalid:
		return "invalid"
	}
	return "unknown"
}

// Topology is the polygon structure of a mesh.
type Topology struct {
	// FaceCounts holds the number of corners of each face.
	FaceCounts []int32
	// VertexIndices holds one point index per face corner.
	VertexIndices []int32
}

// FaceCount returns the number of faces.
func (t Topology) FaceCount() int { return len(t.FaceCounts) }

// CornerCount returns the number of face corners.
func (t Topology) CornerCount() int { return len(t.VertexIndices) }

// FaceVarying is an attribute table with one index per face corner.
type FaceVarying[T any] struct {
	Values  []T
	Indices []int32
}

// Frame is the point table sampled at one frame.
type Frame struct {
	Number int
	Points [][3]float32
}

// Subdiv holds subdivision surface tags. Only the crease, corner and hole
// arrays are filled for meshes that are not subdivision surfaces.
type Subdiv struct {
	// Scheme is catmullClark, loop or bilinear; empty for plain polygon meshes.
	Scheme string

	// InterpolateBoundary: none=0, edgeAndCorner=1, edgeOnly=2.
	InterpolateBoundary int
	// FaceVaryingLinearInterpolation: all=0, cornersPlus1/cornersPlus2=1,
	// none=2, boundaries=3.
	FaceVaryingLinearInterpolation int
	// PropagateCorner is set by cornersPlus2.
	PropagateCorner bool

	CreaseIndices   []int32
	CreaseLengths   []int32
	CreaseSharpness []float32
	CornerIndices   []int32
	CornerSharpness []float32
	HoleIndices     []int32
}

// IsSubdivisionMesh reports whether the mesh declares a subdivision scheme.
func (s Subdiv) IsSubdivisionMesh() bool {
	return s.Scheme != ""
}
