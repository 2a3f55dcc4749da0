package mesh

import (
	"fmt"

	"github.com/Faultbox/meshnorm/pkg/scene"
)

// Encoding tells how a UV set is stored on the node.
type Encoding int

const (
	// Packed is a single two-component primvar named after the set.
	Packed Encoding = iota
	// Split is a pair of float primvars named u_<set> and v_<set>.
	Split
)

func (e Encoding) String() string {
	if e == Split {
		return "split"
	}
	return "packed"
}

// Resolved is a raw attribute as found on the node, before expansion.
// Indices is nil when the attribute is unindexed.
type Resolved[T any] struct {
	Name          string
	Encoding      Encoding
	Interpolation scene.Interpolation
	Values        []T
	Indices       []int32
}

// IsIndexed reports whether the attribute carries its own index array.
func (r *Resolved[T]) IsIndexed() bool {
	return r.Indices != nil
}

func expandable(interp scene.Interpolation) bool {
	return interp == scene.Vertex || interp == scene.FaceVarying
}

// ResolveUV locates a UV set on a node. The packed encoding is tried
// first, then the split u_/v_ pair. Errors are never fatal to the mesh.
func ResolveUV(n Node, name string, readFloat2 bool) (*Resolved[[2]float32], error) {
	if pv := n.Primvar(name); pv != nil {
		return resolvePackedUV(pv, readFloat2)
	}

	u, v := n.Primvar("u_"+name), n.Primvar("v_"+name)
	if u == nil || v == nil {
		return nil, fmt.Errorf("%w: uv set %q", ErrAttributeNotFound, name)
	}
	return resolveSplitUV(name, u, v)
}

func resolvePackedUV(pv *scene.Primvar, readFloat2 bool) (*Resolved[[2]float32], error) {
	typ := pv.TypeName()
	if typ != scene.TypeTexCoord2fArray && !(readFloat2 && typ == scene.TypeFloat2Array) {
		return nil, fmt.Errorf("%w: uv set %q is %s", ErrUnsupportedType, pv.Name, typ)
	}
	if !expandable(pv.Interpolation) {
		return nil, fmt.Errorf("%w: uv set %q is %s", ErrInterpolation, pv.Name, pv.Interpolation)
	}

	values, ok := pv.Values.Vec2s(scene.Earliest)
	if !ok {
		return nil, fmt.Errorf("%w: uv set %q", ErrUnreadable, pv.Name)
	}
	r := &Resolved[[2]float32]{
		Name:          pv.Name,
		Encoding:      Packed,
		Interpolation: pv.Interpolation,
		Values:        values,
	}
	if pv.IsIndexed() {
		if r.Indices, ok = pv.GetIndices(scene.Earliest); !ok {
			return nil, fmt.Errorf("%w: indices of uv set %q", ErrUnreadable, pv.Name)
		}
	}
	return r, nil
}

// resolveSplitUV flattens each channel through its own indices and zips
// them into an unindexed table.
func resolveSplitUV(name string, u, v *scene.Primvar) (*Resolved[[2]float32], error) {
	for _, pv := range []*scene.Primvar{u, v} {
		if pv.TypeName() != scene.TypeFloatArray {
			return nil, fmt.Errorf("%w: %q is %s", ErrUnsupportedType, pv.Name, pv.TypeName())
		}
		if !expandable(pv.Interpolation) {
			return nil, fmt.Errorf("%w: %q is %s", ErrInterpolation, pv.Name, pv.Interpolation)
		}
	}
	if u.Interpolation != v.Interpolation {
		return nil, fmt.Errorf("%w: uv set %q mixes %s and %s",
			ErrSplitUVMismatch, name, u.Interpolation, v.Interpolation)
	}

	uu, err := flattenFloats(u)
	if err != nil {
		return nil, err
	}
	vv, err := flattenFloats(v)
	if err != nil {
		return nil, err
	}
	if len(uu) != len(vv) {
		return nil, fmt.Errorf("%w: uv set %q has %d u and %d v values",
			ErrSplitUVMismatch, name, len(uu), len(vv))
	}

	values := make([][2]float32, len(uu))
	for i := range uu {
		values[i] = [2]float32{uu[i], vv[i]}
	}
	return &Resolved[[2]float32]{
		Name:          name,
		Encoding:      Split,
		Interpolation: u.Interpolation,
		Values:        values,
	}, nil
}

func flattenFloats(pv *scene.Primvar) ([]float32, error) {
	flat, ok := pv.ComputeFlattened(scene.Earliest)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnreadable, pv.Name)
	}
	vals, ok := flat.([]float32)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnreadable, pv.Name)
	}
	return vals, nil
}

// ResolveNormals locates the normals of a node. A normals primvar takes
// precedence over the normals attribute.
func ResolveNormals(n Node) (*Resolved[[3]float32], error) {
	r := &Resolved[[3]float32]{Name: scene.AttrNormals, Encoding: Packed}

	if pv := n.Primvar(scene.AttrNormals); pv != nil {
		values, ok := pv.Values.Vec3s(scene.Earliest)
		if !ok {
			return nil, fmt.Errorf("%w: normals primvar", ErrUnreadable)
		}
		r.Values = values
		r.Interpolation = pv.Interpolation
		if pv.IsIndexed() {
			if r.Indices, ok = pv.GetIndices(scene.Earliest); !ok {
				return nil, fmt.Errorf("%w: normals primvar indices", ErrUnreadable)
			}
		}
	} else {
		a := n.Attribute(scene.AttrNormals)
		if a == nil {
			return nil, fmt.Errorf("%w: normals", ErrAttributeNotFound)
		}
		values, ok := a.Vec3s(scene.Earliest)
		if !ok {
			return nil, fmt.Errorf("%w: normals attribute", ErrUnreadable)
		}
		r.Values = values
		r.Interpolation = n.NormalsInterpolation()
	}

	if !expandable(r.Interpolation) {
		return nil, fmt.Errorf("%w: normals are %s", ErrInterpolation, r.Interpolation)
	}
	return r, nil
}
