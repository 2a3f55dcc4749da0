package mesh

import (
	"fmt"

	"github.com/Faultbox/meshnorm/pkg/scene"
)

// TopologyTime picks the time topology is read at: the earliest sample when
// the face vertex indices are time sampled, the default value otherwise.
func TopologyTime(n Node) scene.Time {
	if n.Attribute(scene.AttrFaceVertexIndices).NumTimeSamples() >= 1 {
		return scene.Earliest
	}
	return scene.DefaultTime()
}

// ReadTopology reads the face vertex counts and indices of a mesh node.
// Vertex indices are not range checked here; that needs the point count.
func ReadTopology(n Node) (Topology, error) {
	t := TopologyTime(n)

	indices, ok := n.Attribute(scene.AttrFaceVertexIndices).Ints(t)
	if !ok {
		return Topology{}, fmt.Errorf("%w: no face vertex indices on %s", ErrMissingTopology, n.Path())
	}
	counts, ok := n.Attribute(scene.AttrFaceVertexCounts).Ints(t)
	if !ok {
		return Topology{}, fmt.Errorf("%w: no face vertex counts on %s", ErrMissingTopology, n.Path())
	}

	corners := 0
	for i, c := range counts {
		if c < 0 {
			return Topology{}, fmt.Errorf("%w: face %d has %d vertices", ErrInconsistentTopology, i, c)
		}
		corners += int(c)
	}
	if corners != len(indices) {
		return Topology{}, fmt.Errorf("%w: face counts sum to %d, have %d vertex indices",
			ErrInconsistentTopology, corners, len(indices))
	}

	return Topology{
		FaceCounts:    append([]int32(nil), counts...),
		VertexIndices: append([]int32(nil), indices...),
	}, nil
}
