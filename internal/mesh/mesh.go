package mesh

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	pmath "github.com/Faultbox/meshnorm/pkg/math"
)

// ForcePtex is the mapping scheme that skips UV sets entirely.
const ForcePtex = "Force Ptex"

// Options controls how a mesh is built.
type Options struct {
	// UVSet names the UV set to read. Empty skips UVs.
	UVSet string
	// MappingScheme ForcePtex skips UVs as well.
	MappingScheme string
	// Frames lists the frames to sample points at. Duplicates collapse.
	Frames []int
	// Reference makes exported points relative to its transform.
	Reference Transformer
	// ConformYUp converts Z-up sources to Y-up.
	ConformYUp bool
	// SourceUpY tells whether the source is already Y-up.
	SourceUpY bool
	// ReadFloat2AsUV accepts float2[] primvars as UV sets.
	ReadFloat2AsUV bool
	// StrictIndices rejects out of range vertex indices instead of clamping.
	StrictIndices bool
	// Logger receives diagnostics. Nil discards them.
	Logger *zap.Logger
}

// Mesh is a normalized mesh. It is immutable once built.
type Mesh struct {
	path           string
	selectionGroup string
	state          State
	err            error

	topo          Topology
	frames        []Frame
	uvs           *FaceVarying[[2]float32]
	normals       *FaceVarying[[3]float32]
	subdiv        Subdiv
	faceSelection []int32

	diagnostics []Diagnostic
	log         *zap.Logger
}

// Build reads a node into a mesh. It never fails outright: a node that
// cannot be read yields an Invalid mesh whose Err tells why.
func Build(n Node, opts Options) *Mesh {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Mesh{
		path: n.Path(),
		log:  logger.With(zap.String("path", n.Path())),
	}

	if !n.IsMesh() {
		m.fail(CodeNotMesh, fmt.Errorf("%w: %s is a %q", ErrNotMesh, n.Path(), n.TypeName()))
		return m
	}
	m.selectionGroup = n.ParentName()

	// Topology
	topo, err := ReadTopology(n)
	if err != nil {
		code := CodeMissingTopology
		if errors.Is(err, ErrInconsistentTopology) {
			code = CodeInconsistentTopology
		}
		m.fail(code, err)
		return m
	}
	if topo.CornerCount() == 0 {
		m.fail(CodeMissingTopology, fmt.Errorf("%w: %s has no faces", ErrMissingTopology, n.Path()))
		return m
	}
	m.topo = topo
	m.faceSelection = identity(topo.FaceCount())
	m.state = TopologyLoaded

	// Points. Vertex indices are clamped before attributes expand through them.
	frames := uniqueFrames(opts.Frames)
	if len(frames) == 0 {
		m.fail(CodeNoFrames, ErrNoFrames)
		return m
	}
	sampled := make([]Frame, 0, len(frames))
	for i, frame := range frames {
		points, err := m.sampleFrame(n, frame, &opts)
		if err != nil {
			m.fail(CodeMissingPoints, err)
			return m
		}
		if i == 0 {
			if len(points) == 0 {
				m.fail(CodeMissingPoints, fmt.Errorf("%w: frame %d of %s has no points",
					ErrMissingPoints, frame, n.Path()))
				return m
			}
			if err := m.checkVertexIndices(len(points), opts.StrictIndices); err != nil {
				m.fail(CodeIndexOutOfRange, err)
				return m
			}
		} else if want := len(sampled[0].Points); len(points) != want {
			m.fail(CodeMissingPoints, fmt.Errorf("%w: frame %d has %d points, frame %d has %d",
				ErrMissingPoints, frame, len(points), frames[0], want))
			return m
		}
		sampled = append(sampled, Frame{Number: frame, Points: points})
	}

	// Optional attributes
	if opts.UVSet != "" && opts.MappingScheme != ForcePtex {
		m.resolveUVs(n, &opts)
	}
	m.resolveNormals(n)
	m.state = AttributesResolved

	m.frames = sampled
	m.state = FramesSampled

	m.subdiv = ExtractSubdiv(n)
	m.state = Ready

	m.log.Debug("mesh built",
		zap.Int("faces", topo.FaceCount()),
		zap.Int("corners", topo.CornerCount()),
		zap.Int("frames", len(m.frames)),
		zap.Bool("uvs", m.HasUVs()),
		zap.Bool("normals", m.HasNormals()),
		zap.Bool("subdiv", m.subdiv.IsSubdivisionMesh()))
	return m
}

func (m *Mesh) resolveUVs(n Node, opts *Options) {
	r, err := ResolveUV(n, opts.UVSet, opts.ReadFloat2AsUV)
	if err != nil {
		code := CodeUVSetUnsupported
		if errors.Is(err, ErrAttributeNotFound) {
			code = CodeUVSetMissing
		}
		m.report(SeverityWarning, code, "uv set %q not used: %v", opts.UVSet, err)
		return
	}
	uvs, err := expandAttribute(r, m.topo, nil)
	if err != nil {
		m.report(SeverityWarning, CodeUVSetDropped, "uv set %q dropped: %v", opts.UVSet, err)
		return
	}
	m.uvs = uvs
}

func (m *Mesh) resolveNormals(n Node) {
	r, err := ResolveNormals(n)
	if err != nil {
		if errors.Is(err, ErrAttributeNotFound) {
			return
		}
		m.report(SeverityWarning, CodeNormalsUnsupported, "normals ignored: %v", err)
		return
	}
	normals, err := expandAttribute(r, m.topo, NormalIndices)
	if err != nil {
		m.report(SeverityWarning, CodeNormalsDropped, "normals dropped: %v", err)
		return
	}
	m.normals = normals
}

// checkVertexIndices clamps vertex indices outside [0, numPoints) to 0,
// or rejects them when strict.
func (m *Mesh) checkVertexIndices(numPoints int, strict bool) error {
	clamped := 0
	first := -1
	for i, vi := range m.topo.VertexIndices {
		if vi >= 0 && int(vi) < numPoints {
			continue
		}
		if strict {
			return fmt.Errorf("%w: vertex index %d at corner %d, %d points",
				ErrIndexOutOfRange, vi, i, numPoints)
		}
		if first < 0 {
			first = i
		}
		m.topo.VertexIndices[i] = 0
		clamped++
	}
	if clamped > 0 {
		m.report(SeverityWarning, CodeIndexClamped,
			"clamped %d out of range vertex indices to 0 (first at corner %d, %d points)",
			clamped, first, numPoints)
	}
	return nil
}

// fail marks the mesh Invalid and drops every buffer.
func (m *Mesh) fail(code string, err error) {
	m.report(SeverityError, code, "%v", err)
	m.err = err
	m.state = Invalid
	m.topo = Topology{}
	m.frames = nil
	m.uvs = nil
	m.normals = nil
	m.subdiv = Subdiv{}
	m.faceSelection = nil
}

func uniqueFrames(frames []int) []int {
	out := append([]int(nil), frames...)
	sort.Ints(out)
	n := 0
	for i, f := range out {
		if i > 0 && f == out[n-1] {
			continue
		}
		out[n] = f
		n++
	}
	return out[:n]
}

// State returns the construction state.
func (m *Mesh) State() State { return m.state }

// Err returns the error that made the mesh Invalid, if any.
func (m *Mesh) Err() error { return m.err }

// Path returns the path of the source node.
func (m *Mesh) Path() string { return m.path }

// Diagnostics returns everything reported while building the mesh.
func (m *Mesh) Diagnostics() []Diagnostic { return m.diagnostics }

// HasGeometry reports whether frames were sampled and the mesh has both
// points and vertex indices.
func (m *Mesh) HasGeometry() bool {
	framesSampled := m.state == FramesSampled || m.state == Ready
	return framesSampled && len(m.frames) > 0 && len(m.frames[0].Points) > 0 &&
		len(m.topo.VertexIndices) > 0
}

// HasUVs reports whether a UV set was resolved.
func (m *Mesh) HasUVs() bool { return m.uvs != nil }

// HasNormals reports whether normals were resolved.
func (m *Mesh) HasNormals() bool { return m.normals != nil }

// IsSubdivisionMesh reports whether the mesh declares a subdivision scheme.
func (m *Mesh) IsSubdivisionMesh() bool { return m.subdiv.IsSubdivisionMesh() }

// Topology returns face counts and vertex indices.
func (m *Mesh) Topology() Topology { return m.topo }

// FaceCounts returns the number of corners of each face.
func (m *Mesh) FaceCounts() []int32 { return m.topo.FaceCounts }

// VertexIndices returns one point index per face corner.
func (m *Mesh) VertexIndices() []int32 { return m.topo.VertexIndices }

// Frames returns the sampled frames in ascending order.
func (m *Mesh) Frames() []Frame { return m.frames }

// FrameNumbers returns the sampled frame numbers in ascending order.
func (m *Mesh) FrameNumbers() []int {
	out := make([]int, len(m.frames))
	for i, f := range m.frames {
		out[i] = f.Number
	}
	return out
}

// Points returns the points of a frame, falling back to the first sampled
// frame when that frame was not sampled. It returns nil for a mesh with no
// frames.
func (m *Mesh) Points(frame int) [][3]float32 {
	if len(m.frames) == 0 {
		return nil
	}
	i := sort.Search(len(m.frames), func(i int) bool { return m.frames[i].Number >= frame })
	if i < len(m.frames) && m.frames[i].Number == frame {
		return m.frames[i].Points
	}
	return m.frames[0].Points
}

// Bounds returns the axis-aligned bounds of a frame's points.
func (m *Mesh) Bounds(frame int) pmath.Box3 {
	return pmath.BoundsOf(m.Points(frame))
}

// UVs returns the UV table, or nil.
func (m *Mesh) UVs() *FaceVarying[[2]float32] { return m.uvs }

// Normals returns the normal table, or nil.
func (m *Mesh) Normals() *FaceVarying[[3]float32] { return m.normals }

// Subdiv returns the subdivision tags.
func (m *Mesh) Subdiv() Subdiv { return m.subdiv }

// FaceSelectionIndices returns 0..faceCount-1 for selection grouping.
func (m *Mesh) FaceSelectionIndices() []int32 { return m.faceSelection }

// SelectionGroupName returns the name selection groups are made under:
// the parent node's name.
func (m *Mesh) SelectionGroupName() string { return m.selectionGroup }
