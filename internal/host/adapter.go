package host

import (
	"fmt"

	"github.com/Faultbox/meshnorm/internal/mesh"
)

// AddMesh copies a mesh's buffers into a new object of the entity.
//
// Vertices hold the first sampled frame; every frame gets an override
// only when more than one was sampled. UV and normal buffers are added
// when present, crease buffers only when there are crease indices.
func (e *Entity) AddMesh(m *mesh.Mesh, label string) (*Object, error) {
	if !m.HasGeometry() {
		return nil, fmt.Errorf("%w: %s", ErrNoGeometry, m.Path())
	}

	frames := m.Frames()
	o := &Object{
		Label:     label,
		FaceCount: len(m.FaceCounts()),
	}

	o.addU32(RoleFaceVertexCounts, m.FaceCounts())
	o.addFloat(RoleVertices, flattenVec3(frames[0].Points))
	o.addU32(RoleVertexIndices, m.VertexIndices())

	if uvs := m.UVs(); uvs != nil {
		o.addFloat(RoleUV0, flattenVec2(uvs.Values))
		o.addU32(RoleUV0Indices, uvs.Indices)
	}
	if normals := m.Normals(); normals != nil {
		o.addFloat(RoleNormals, flattenVec3(normals.Values))
		o.addU32(RoleNormalIndices, normals.Indices)
	}

	sd := m.Subdiv()
	if len(sd.CreaseIndices) > 0 {
		o.addU32(RoleCreaseIndices, sd.CreaseIndices)
		o.addU32(RoleCreaseLengths, sd.CreaseLengths)
		o.addFloat(RoleCreaseSharpness, sd.CreaseSharpness)
	}
	if len(sd.CornerIndices) > 0 {
		o.addU32(RoleCornerIndices, sd.CornerIndices)
		o.addFloat(RoleCornerSharpness, sd.CornerSharpness)
	}
	if len(sd.HoleIndices) > 0 {
		o.addU32(RoleHoleIndices, sd.HoleIndices)
	}
	o.Subdiv = SubdivSettings{
		Scheme:                         sd.Scheme,
		InterpolateBoundary:            sd.InterpolateBoundary,
		FaceVaryingLinearInterpolation: sd.FaceVaryingLinearInterpolation,
		PropagateCorner:                sd.PropagateCorner,
	}

	if len(frames) > 1 {
		for _, f := range frames {
			o.Frames = append(o.Frames, FrameOverride{Frame: f.Number, Vertices: flattenVec3(f.Points)})
		}
	}

	o.SelectionGroup = &SelectionGroup{
		Name:        m.SelectionGroupName(),
		FaceIndices: toU32(m.FaceSelectionIndices()),
	}

	e.Objects = append(e.Objects, o)
	return o, nil
}

func (o *Object) addU32(role Role, v []int32) {
	o.Buffers = append(o.Buffers, Buffer{Role: role, Kind: KindU32, U32: toU32(v)})
}

func (o *Object) addFloat(role Role, v []float32) {
	o.Buffers = append(o.Buffers, Buffer{Role: role, Kind: KindFloat, Float: append([]float32(nil), v...)})
}

func toU32(v []int32) []uint32 {
	out := make([]uint32, len(v))
	for i, x := range v {
		out[i] = uint32(x)
	}
	return out
}

func flattenVec3(v [][3]float32) []float32 {
	out := make([]float32, 0, len(v)*3)
	for _, p := range v {
		out = append(out, p[0], p[1], p[2])
	}
	return out
}

func flattenVec2(v [][2]float32) []float32 {
	out := make([]float32, 0, len(v)*2)
	for _, p := range v {
		out = append(out, p[0], p[1])
	}
	return out
}
