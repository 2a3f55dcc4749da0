package host

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshnorm/internal/mesh"
	"github.com/Faultbox/meshnorm/pkg/scene"
)

func newQuad() *scene.Node {
	model := scene.NewNode("chair", scene.TypeXform).SetKind("component")
	model.SetMetadata(MetaProd, "show01")
	grp := model.AddChild(scene.NewNode("geo", scene.TypeXform))
	n := grp.AddChild(scene.NewNode("seat", scene.TypeMesh))
	n.SetAttribute(scene.AttrFaceVertexCounts, scene.NewAttribute(scene.TypeIntArray, []int32{4}))
	n.SetAttribute(scene.AttrFaceVertexIndices, scene.NewAttribute(scene.TypeIntArray, []int32{0, 1, 2, 3}))
	pts := &scene.Attribute{TypeName: scene.TypePoint3fArray}
	pts.SetSample(1, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	pts.SetSample(2, [][3]float32{{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1}})
	n.SetAttribute(scene.AttrPoints, pts)
	n.SetPrimvar(scene.NewPrimvar("st", scene.TypeTexCoord2fArray, scene.Vertex,
		[][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}))
	return n
}

func TestNewEntity(t *testing.T) {
	a, b := NewEntity("chair"), NewEntity("chair")
	assert.NotEqual(t, uuid.Nil, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, uuid.Version(7), a.ID.Version())
	assert.Empty(t, a.Objects)
}

func TestAddMeshSingleFrame(t *testing.T) {
	m := mesh.Build(newQuad(), mesh.Options{UVSet: "st", Frames: []int{1}})
	require.True(t, m.HasGeometry())

	e := NewEntity("chair")
	o, err := e.AddMesh(m, "/chair/geo/seat")
	require.NoError(t, err)
	require.Len(t, e.Objects, 1)
	assert.Same(t, o, e.Objects[0])

	assert.Equal(t, "/chair/geo/seat", o.Label)
	assert.Equal(t, 1, o.FaceCount)
	assert.Equal(t, 1, e.FaceCount())
	assert.Empty(t, o.Frames, "no overrides for a single frame")

	assert.Equal(t, []uint32{4}, o.Buffer(RoleFaceVertexCounts).U32)
	assert.Equal(t, []uint32{0, 1, 2, 3}, o.Buffer(RoleVertexIndices).U32)
	assert.Equal(t, []float32{0, 0, 0, 1, 0, 0, 1, 1, 0, 0, 1, 0}, o.Buffer(RoleVertices).Float)
	assert.Equal(t, KindFloat, o.Buffer(RoleVertices).Kind)
	assert.Equal(t, 12, o.Buffer(RoleVertices).Len())

	require.NotNil(t, o.Buffer(RoleUV0))
	assert.Equal(t, []float32{0, 0, 1, 0, 1, 1, 0, 1}, o.Buffer(RoleUV0).Float)
	assert.Equal(t, []uint32{0, 1, 2, 3}, o.Buffer(RoleUV0Indices).U32)

	assert.Nil(t, o.Buffer(RoleNormals))
	assert.Nil(t, o.Buffer(RoleCreaseIndices))

	require.NotNil(t, o.SelectionGroup)
	assert.Equal(t, "geo", o.SelectionGroup.Name)
	assert.Equal(t, []uint32{0}, o.SelectionGroup.FaceIndices)
}

func TestAddMeshFrames(t *testing.T) {
	m := mesh.Build(newQuad(), mesh.Options{Frames: []int{2, 1}})
	e := NewEntity("chair")
	o, err := e.AddMesh(m, "seat")
	require.NoError(t, err)

	assert.Nil(t, o.Buffer(RoleUV0))
	require.Len(t, o.Frames, 2)
	assert.Equal(t, 1, o.Frames[0].Frame)
	assert.Equal(t, 2, o.Frames[1].Frame)
	assert.Equal(t, float32(1), o.Frames[1].Vertices[2])
	// The base buffer holds the first frame.
	assert.Equal(t, o.Frames[0].Vertices, o.Buffer(RoleVertices).Float)
}

func TestAddMeshSubdiv(t *testing.T) {
	n := newQuad()
	n.SetAttribute(scene.AttrSubdivisionScheme, scene.NewAttribute(scene.TypeToken, scene.TokenCatmullClark))
	n.SetAttribute(scene.AttrCreaseIndices, scene.NewAttribute(scene.TypeIntArray, []int32{0, 1}))
	n.SetAttribute(scene.AttrCreaseLengths, scene.NewAttribute(scene.TypeIntArray, []int32{2}))
	n.SetAttribute(scene.AttrCreaseSharpnesses, scene.NewAttribute(scene.TypeFloatArray, []float32{3}))
	n.SetAttribute(scene.AttrHoleIndices, scene.NewAttribute(scene.TypeIntArray, []int32{0}))
	a := n.SetAttribute(scene.AttrNormals, scene.NewAttribute(scene.TypeNormal3fArray,
		[][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}))
	a.Interpolation = scene.Vertex

	e := NewEntity("chair")
	o, err := e.AddMesh(mesh.Build(n, mesh.Options{Frames: []int{1}}), "seat")
	require.NoError(t, err)

	assert.Equal(t, scene.TokenCatmullClark, o.Subdiv.Scheme)
	assert.Equal(t, []uint32{0, 1}, o.Buffer(RoleCreaseIndices).U32)
	assert.Equal(t, []uint32{2}, o.Buffer(RoleCreaseLengths).U32)
	assert.Equal(t, []float32{3}, o.Buffer(RoleCreaseSharpness).Float)
	assert.Equal(t, []uint32{0}, o.Buffer(RoleHoleIndices).U32)
	assert.Nil(t, o.Buffer(RoleCornerIndices))

	require.NotNil(t, o.Buffer(RoleNormals))
	assert.Equal(t, 12, o.Buffer(RoleNormals).Len())
	assert.Equal(t, []uint32{0, 1, 2, 3}, o.Buffer(RoleNormalIndices).U32)
}

func TestAddMeshInvalid(t *testing.T) {
	m := mesh.Build(scene.NewNode("xf", scene.TypeXform), mesh.Options{Frames: []int{1}})
	e := NewEntity("chair")
	_, err := e.AddMesh(m, "xf")
	assert.True(t, errors.Is(err, ErrNoGeometry))
	assert.Empty(t, e.Objects)
}

func TestModelData(t *testing.T) {
	model := newQuad().Parent().Parent()
	md := NewModelData(model, "st")

	e := NewEntity(md.InstanceName)
	e.SetMetadata(md.Metadata())

	assert.Equal(t, "chair", e.Name)
	assert.Equal(t, []string{MetaFullPath, MetaInstanceName, MetaLabel, MetaModelName, MetaProd, MetaUVSet}, e.MetadataKeys())
	assert.Equal(t, "/chair", e.Metadata[MetaFullPath])
	assert.Equal(t, "show01", e.Metadata[MetaProd])
	assert.Equal(t, "st", e.Metadata[MetaUVSet])
}
