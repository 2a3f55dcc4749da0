package mesh

import (
	"fmt"

	"github.com/Faultbox/meshnorm/pkg/scene"
)

// Expand returns face-varying indices for an attribute: exactly one entry
// per corner of topo.
//
// Face-varying attributes keep their own indices, or map each corner to
// itself when unindexed. Vertex attributes are broadcast: every corner
// takes the entry of the point it references, looked up through indices
// when present.
func Expand(interp scene.Interpolation, indices []int32, topo Topology) ([]int32, error) {
	switch interp {
	case scene.FaceVarying:
		if indices != nil {
			return append([]int32(nil), indices...), nil
		}
		return identity(topo.CornerCount()), nil

	case scene.Vertex:
		out := make([]int32, 0, topo.CornerCount())
		g := 0
		for _, count := range topo.FaceCounts {
			for k := int32(0); k < count; k++ {
				vertexID := topo.VertexIndices[g]
				g++
				if indices == nil {
					out = append(out, vertexID)
					continue
				}
				if vertexID < 0 || int(vertexID) >= len(indices) {
					return nil, fmt.Errorf("%w: corner %d references point %d, %d indices",
						ErrIndexOutOfRange, g-1, vertexID, len(indices))
				}
				out = append(out, indices[vertexID])
			}
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInterpolation, interp)
}

// NormalIndices synthesizes indices for unindexed vertex normals. A table
// with one normal per point (max vertex index + 1 entries) maps through the
// vertex indices; any other size is taken as one normal per corner.
func NormalIndices(numNormals int, topo Topology) []int32 {
	maxIndex := int32(0)
	for _, vi := range topo.VertexIndices {
		if vi > maxIndex {
			maxIndex = vi
		}
	}
	if numNormals == int(maxIndex)+1 {
		return append([]int32(nil), topo.VertexIndices...)
	}
	return identity(topo.CornerCount())
}

// ValidateIndices checks a face-varying index array against the corner
// count and the size of the table it indexes.
func ValidateIndices(indices []int32, numValues, corners int) error {
	if len(indices) != corners {
		return fmt.Errorf("%w: %d indices, %d corners", ErrIndexCountMismatch, len(indices), corners)
	}
	for i, idx := range indices {
		if idx < 0 || int(idx) >= numValues {
			return fmt.Errorf("%w: index %d at corner %d, %d values", ErrIndexOutOfRange, idx, i, numValues)
		}
	}
	return nil
}

// expandAttribute turns a resolved attribute into a validated face-varying
// table.
func expandAttribute[T any](r *Resolved[T], topo Topology, synthesize func(int, Topology) []int32) (*FaceVarying[T], error) {
	indices := r.Indices
	if indices == nil && r.Interpolation == scene.Vertex && synthesize != nil {
		indices = synthesize(len(r.Values), topo)
	} else {
		var err error
		if indices, err = Expand(r.Interpolation, r.Indices, topo); err != nil {
			return nil, err
		}
	}
	if err := ValidateIndices(indices, len(r.Values), topo.CornerCount()); err != nil {
		return nil, err
	}
	return &FaceVarying[T]{
		Values:  append([]T(nil), r.Values...),
		Indices: indices,
	}, nil
}

func identity(n int) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(i)
	}
	return out
}
