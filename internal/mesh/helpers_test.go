package mesh

import (
	"github.com/Faultbox/meshnorm/pkg/scene"
)

var twoTriangles = [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}}

// newTwoTriangles builds two triangles sharing an edge under a "geo" group:
// faceCounts [3 3], vertexIndices [0 1 2 2 1 3].
func newTwoTriangles() *scene.Node {
	parent := scene.NewNode("geo", scene.TypeXform)
	n := parent.AddChild(scene.NewNode("tris", scene.TypeMesh))
	n.SetAttribute(scene.AttrFaceVertexCounts, scene.NewAttribute(scene.TypeIntArray, []int32{3, 3}))
	n.SetAttribute(scene.AttrFaceVertexIndices, scene.NewAttribute(scene.TypeIntArray, []int32{0, 1, 2, 2, 1, 3}))
	n.SetAttribute(scene.AttrPoints, scene.NewAttribute(scene.TypePoint3fArray, twoTriangles))
	return n
}

func twoTrianglesTopology() Topology {
	return Topology{
		FaceCounts:    []int32{3, 3},
		VertexIndices: []int32{0, 1, 2, 2, 1, 3},
	}
}

func setToken(n *scene.Node, name, value string) {
	n.SetAttribute(name, scene.NewAttribute(scene.TypeToken, value))
}
