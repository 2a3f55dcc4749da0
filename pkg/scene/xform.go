package scene

import (
	"sort"

	pmath "github.com/Faultbox/meshnorm/pkg/math"
)

// XformSample is a local transform authored at one time.
// The transform is scale, then rotation, then translation; an explicit
// Matrix replaces all three.
type XformSample struct {
	Time      Time
	Translate [3]float64
	RotateXYZ [3]float64 // degrees
	Scale     *[3]float64
	Orient    *pmath.Quat
	Matrix    *pmath.Mat4
}

// Xform is a node's local transform, optionally animated.
type Xform struct {
	// ResetXformStack ignores the parent transforms.
	ResetXformStack bool

	samples []XformSample
}

// NewXform creates a transform from samples. A single sample is static.
func NewXform(samples ...XformSample) *Xform {
	x := &Xform{}
	for _, s := range samples {
		x.SetSample(s)
	}
	return x
}

// Translation creates a static translation.
func Translation(x, y, z float64) *Xform {
	return NewXform(XformSample{Translate: [3]float64{x, y, z}})
}

// MatrixXform creates a static transform from an explicit matrix.
func MatrixXform(m pmath.Mat4) *Xform {
	return NewXform(XformSample{Matrix: &m})
}

// SetSample adds or replaces a sample.
func (x *Xform) SetSample(s XformSample) {
	i := sort.Search(len(x.samples), func(i int) bool { return x.samples[i].Time >= s.Time })
	if i < len(x.samples) && x.samples[i].Time == s.Time {
		x.samples[i] = s
		return
	}
	x.samples = append(x.samples, XformSample{})
	copy(x.samples[i+1:], x.samples[i:])
	x.samples[i] = s
}

// NumTimeSamples returns the number of authored samples.
func (x *Xform) NumTimeSamples() int {
	return len(x.samples)
}

// Matrix returns the local transform at time t.
func (x *Xform) Matrix(t Time) pmath.Mat4 {
	if len(x.samples) == 0 {
		return pmath.Identity()
	}
	first, last := x.samples[0], x.samples[len(x.samples)-1]
	if len(x.samples) == 1 || t.IsDefault() || t <= first.Time {
		return first.matrix()
	}
	if t >= last.Time {
		return last.matrix()
	}

	i := sort.Search(len(x.samples), func(i int) bool { return x.samples[i].Time >= t })
	hi := x.samples[i]
	if hi.Time == t {
		return hi.matrix()
	}
	lo := x.samples[i-1]
	alpha := float64((t - lo.Time) / (hi.Time - lo.Time))
	return lo.blend(hi, alpha)
}

func (s XformSample) scale() [3]float64 {
	if s.Scale == nil {
		return [3]float64{1, 1, 1}
	}
	return *s.Scale
}

func (s XformSample) rotation() pmath.Mat4 {
	if s.Orient != nil {
		return s.Orient.ToMat4()
	}
	return pmath.RotateXYZ(s.RotateXYZ)
}

func (s XformSample) matrix() pmath.Mat4 {
	if s.Matrix != nil {
		return *s.Matrix
	}
	sc := s.scale()
	return pmath.Scale(sc[0], sc[1], sc[2]).
		Mul(s.rotation()).
		Mul(pmath.Translate(s.Translate[0], s.Translate[1], s.Translate[2]))
}

// blend interpolates components: translation, scale and euler angles
// linearly, orientations spherically. Explicit matrices blend element-wise.
func (s XformSample) blend(o XformSample, alpha float64) pmath.Mat4 {
	if s.Matrix != nil || o.Matrix != nil {
		return s.matrix().Lerp(o.matrix(), alpha)
	}

	lerp3 := func(a, b [3]float64) [3]float64 {
		return [3]float64{
			a[0] + alpha*(b[0]-a[0]),
			a[1] + alpha*(b[1]-a[1]),
			a[2] + alpha*(b[2]-a[2]),
		}
	}

	sc := lerp3(s.scale(), o.scale())
	out := XformSample{
		Translate: lerp3(s.Translate, o.Translate),
		RotateXYZ: lerp3(s.RotateXYZ, o.RotateXYZ),
		Scale:     &sc,
	}
	if s.Orient != nil && o.Orient != nil {
		q := s.Orient.Slerp(*o.Orient, alpha)
		out.Orient = &q
	}
	return out.matrix()
}
