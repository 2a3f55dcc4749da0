// Package host turns normalized meshes into host geometry entities: named
// objects holding role-tagged buffers, per-frame vertex overrides and
// selection groups.
package host

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// ErrNoGeometry is returned when adding a mesh that has no geometry.
var ErrNoGeometry = errors.New("mesh has no geometry")

// Role identifies what a buffer holds.
type Role string

// Buffer roles.
const (
	RoleFaceVertexCounts Role = "face-vertex-counts"
	RoleVertices         Role = "vertices"
	RoleVertexIndices    Role = "vertex-indices"
	RoleUV0              Role = "uv0"
	RoleUV0Indices       Role = "uv0-indices"
	RoleNormals          Role = "normals"
	RoleNormalIndices    Role = "normal-indices"
	RoleCreaseIndices    Role = "crease-indices"
	RoleCreaseLengths    Role = "crease-lengths"
	RoleCreaseSharpness  Role = "crease-sharpness"
	RoleCornerIndices    Role = "corner-indices"
	RoleCornerSharpness  Role = "corner-sharpness"
	RoleHoleIndices      Role = "hole-indices"
)

// Kind is the element type of a buffer.
type Kind uint8

// Buffer kinds.
const (
	KindU32   Kind = 1
	KindFloat Kind = 2
)

func (k Kind) String() string {
	switch k {
	case KindU32:
		return "u32"
	case KindFloat:
		return "float"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Buffer is a flat data buffer. Exactly one of U32 and Float is set,
// according to Kind.
type Buffer struct {
	Role  Role
	Kind  Kind
	U32   []uint32
	Float []float32
}

// Len returns the number of elements.
func (b *Buffer) Len() int {
	if b.Kind == KindU32 {
		return len(b.U32)
	}
	return len(b.Float)
}

// FrameOverride replaces the vertices buffer at one frame.
type FrameOverride struct {
	Frame    int
	Vertices []float32
}

// SubdivSettings are the subdivision surface settings of an object.
type SubdivSettings struct {
	Scheme                         string
	InterpolateBoundary            int
	FaceVaryingLinearInterpolation int
	PropagateCorner                bool
}

// SelectionGroup names a set of faces of an object.
type SelectionGroup struct {
	Name        string
	FaceIndices []uint32
}

// Object is one mesh of an entity.
type Object struct {
	Label          string
	FaceCount      int
	Buffers        []Buffer
	Frames         []FrameOverride
	Subdiv         SubdivSettings
	SelectionGroup *SelectionGroup
}

// Buffer returns the buffer with the given role, or nil.
func (o *Object) Buffer(role Role) *Buffer {
	for i := range o.Buffers {
		if o.Buffers[i].Role == role {
			return &o.Buffers[i]
		}
	}
	return nil
}

// Entity is a geometry entity: a named set of objects with metadata.
type Entity struct {
	ID       uuid.UUID
	Name     string
	Metadata map[string]string
	Objects  []*Object
}

// NewEntity creates an empty entity with a fresh time-ordered ID.
func NewEntity(name string) *Entity {
	return &Entity{
		ID:       uuid.Must(uuid.NewV7()),
		Name:     name,
		Metadata: make(map[string]string),
	}
}

// SetMetadata merges metadata into the entity.
func (e *Entity) SetMetadata(md map[string]string) {
	for k, v := range md {
		e.Metadata[k] = v
	}
}

// MetadataKeys returns the metadata keys in sorted order.
func (e *Entity) MetadataKeys() []string {
	keys := make([]string, 0, len(e.Metadata))
	for k := range e.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FaceCount returns the total number of faces over all objects.
func (e *Entity) FaceCount() int {
	n := 0
	for _, o := range e.Objects {
		n += o.FaceCount
	}
	return n
}
