package math

import (
	"math"
	"testing"
)

func TestBoundsOf(t *testing.T) {
	b := BoundsOf([][3]float32{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}})
	if b.Min != [3]float32{-1, -2, 0} {
		t.Errorf("Min = %v", b.Min)
	}
	if b.Max != [3]float32{1, 4, 5} {
		t.Errorf("Max = %v", b.Max)
	}
	if got := b.Size(); got != (Vec3{2, 6, 5}) {
		t.Errorf("Size = %v", got)
	}
}

func TestBoundsOfEmpty(t *testing.T) {
	b := BoundsOf(nil)
	if !b.IsEmpty() {
		t.Error("bounds of no points should be empty")
	}
	if b.Size() != (Vec3{}) {
		t.Errorf("empty box size should be zero, got %v", b.Size())
	}
}

// axisAngle returns the rotation of angle radians about a unit axis.
func axisAngle(axis [3]float64, angle float64) Quat {
	s := math.Sin(angle / 2)
	return Quat{X: axis[0] * s, Y: axis[1] * s, Z: axis[2] * s, W: math.Cos(angle / 2)}
}

func TestQuatToMat4(t *testing.T) {
	q := axisAngle([3]float64{0, 0, 1}, math.Pi/2)
	got := q.ToMat4().TransformPoint([3]float64{1, 0, 0})
	if !nearPoint(got, [3]float64{0, 1, 0}) {
		t.Errorf("quat z=90: got %v, want (0, 1, 0)", got)
	}
	if !nearMat(QuatIdentity().ToMat4(), Identity(), 1e-12) {
		t.Error("identity quaternion should give identity matrix")
	}
}

func TestQuatSlerp(t *testing.T) {
	q1 := QuatIdentity()
	q2 := axisAngle([3]float64{0, 1, 0}, math.Pi/2)

	if r := q1.Slerp(q2, 0); math.Abs(r.W-q1.W) > 0.001 {
		t.Errorf("Slerp at t=0 should equal q1, got %v", r)
	}
	if r := q1.Slerp(q2, 1); math.Abs(r.W-q2.W) > 0.001 {
		t.Errorf("Slerp at t=1 should equal q2, got %v", r)
	}

	mid := q1.Slerp(q2, 0.5)
	want := axisAngle([3]float64{0, 1, 0}, math.Pi/4)
	if math.Abs(mid.W-want.W) > 0.001 || math.Abs(mid.Y-want.Y) > 0.001 {
		t.Errorf("Slerp at t=0.5: got %v, want %v", mid, want)
	}
}
