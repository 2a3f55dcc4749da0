package host

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/Faultbox/meshnorm/pkg/formats"
)

// Encode converts the entity to its MGEO cache representation.
func (e *Entity) Encode() *formats.MGEO {
	m := &formats.MGEO{
		Version:  formats.MGEOVersion{Major: formats.MGEOVersionMajor, Minor: formats.MGEOVersionMinor},
		ID:       [16]byte(e.ID),
		Name:     e.Name,
		Metadata: e.Metadata,
		Objects:  make([]formats.MGEOObject, 0, len(e.Objects)),
	}
	for _, o := range e.Objects {
		obj := formats.MGEOObject{
			Label:     o.Label,
			FaceCount: uint32(o.FaceCount),
			Subdiv: formats.MGEOSubdiv{
				Scheme:                         o.Subdiv.Scheme,
				InterpolateBoundary:            int32(o.Subdiv.InterpolateBoundary),
				FaceVaryingLinearInterpolation: int32(o.Subdiv.FaceVaryingLinearInterpolation),
				PropagateCorner:                o.Subdiv.PropagateCorner,
			},
		}
		if g := o.SelectionGroup; g != nil {
			obj.SelectionGroup = &formats.MGEOSelectionGroup{Name: g.Name, FaceIndices: g.FaceIndices}
		}
		for _, b := range o.Buffers {
			obj.Buffers = append(obj.Buffers, formats.MGEOBuffer{
				Role:  string(b.Role),
				Kind:  formats.MGEOBufferKind(b.Kind),
				U32:   b.U32,
				Float: b.Float,
			})
		}
		for _, f := range o.Frames {
			obj.Frames = append(obj.Frames, formats.MGEOFrame{Frame: int32(f.Frame), Vertices: f.Vertices})
		}
		m.Objects = append(m.Objects, obj)
	}
	return m
}

// Decode builds an entity from an MGEO cache.
func Decode(m *formats.MGEO) *Entity {
	e := &Entity{
		ID:       uuid.UUID(m.ID),
		Name:     m.Name,
		Metadata: make(map[string]string, len(m.Metadata)),
	}
	e.SetMetadata(m.Metadata)
	for _, obj := range m.Objects {
		o := &Object{
			Label:     obj.Label,
			FaceCount: int(obj.FaceCount),
			Subdiv: SubdivSettings{
				Scheme:                         obj.Subdiv.Scheme,
				InterpolateBoundary:            int(obj.Subdiv.InterpolateBoundary),
				FaceVaryingLinearInterpolation: int(obj.Subdiv.FaceVaryingLinearInterpolation),
				PropagateCorner:                obj.Subdiv.PropagateCorner,
			},
		}
		if g := obj.SelectionGroup; g != nil {
			o.SelectionGroup = &SelectionGroup{Name: g.Name, FaceIndices: g.FaceIndices}
		}
		for _, b := range obj.Buffers {
			o.Buffers = append(o.Buffers, Buffer{Role: Role(b.Role), Kind: Kind(b.Kind), U32: b.U32, Float: b.Float})
		}
		for _, f := range obj.Frames {
			o.Frames = append(o.Frames, FrameOverride{Frame: int(f.Frame), Vertices: f.Vertices})
		}
		e.Objects = append(e.Objects, o)
	}
	return e
}

// WriteCache writes the entity as an MGEO cache.
func (e *Entity) WriteCache(w io.Writer) error {
	return formats.WriteMGEO(w, e.Encode())
}

// SaveCache writes the entity to an MGEO file.
func (e *Entity) SaveCache(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating cache file: %w", err)
	}
	if err := e.WriteCache(f); err != nil {
		f.Close()
		return fmt.Errorf("writing cache file: %w", err)
	}
	return f.Close()
}

// LoadCache reads an entity from an MGEO file.
func LoadCache(path string) (*Entity, error) {
	m, err := formats.ParseMGEOFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(m), nil
}
