package math

import "github.com/chewxy/math32"

// Vec3 is a single precision 3D vector, the element type of point buffers.
type Vec3 [3]float32

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{v[0] - other[0], v[1] - other[1], v[2] - other[2]}
}

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min [3]float32
	Max [3]float32
}

// EmptyBox returns a box that any point will expand.
func EmptyBox() Box3 {
	return Box3{
		Min: [3]float32{math32.Inf(1), math32.Inf(1), math32.Inf(1)},
		Max: [3]float32{math32.Inf(-1), math32.Inf(-1), math32.Inf(-1)},
	}
}

// BoundsOf returns the bounding box of the given points.
// An empty slice yields an empty box.
func BoundsOf(points [][3]float32) Box3 {
	b := EmptyBox()
	for _, p := range points {
		b = b.ExpandByPoint(p)
	}
	return b
}

// ExpandByPoint grows the box to include p.
func (b Box3) ExpandByPoint(p [3]float32) Box3 {
	for i := 0; i < 3; i++ {
		b.Min[i] = math32.Min(b.Min[i], p[i])
		b.Max[i] = math32.Max(b.Max[i], p[i])
	}
	return b
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Size returns the extent of the box along each axis.
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return Vec3(b.Max).Sub(Vec3(b.Min))
}
