package scene

import "sort"

// Sample is a value authored at a specific time.
type Sample struct {
	Time  Time
	Value any
}

// Attribute holds a default value and optional time samples.
// Values are one of []int32, []float32, [][2]float32, [][3]float32 or string.
type Attribute struct {
	TypeName ValueType

	// Interpolation is attribute metadata; only meaningful for normals.
	Interpolation Interpolation

	Default any
	samples []Sample
}

// NewAttribute creates an attribute with a default value.
func NewAttribute(typeName ValueType, value any) *Attribute {
	return &Attribute{TypeName: typeName, Default: value}
}

// SetSample authors a value at time t, replacing any sample already there.
func (a *Attribute) SetSample(t Time, value any) *Attribute {
	i := sort.Search(len(a.samples), func(i int) bool { return a.samples[i].Time >= t })
	if i < len(a.samples) && a.samples[i].Time == t {
		a.samples[i].Value = value
		return a
	}
	a.samples = append(a.samples, Sample{})
	copy(a.samples[i+1:], a.samples[i:])
	a.samples[i] = Sample{Time: t, Value: value}
	return a
}

// NumTimeSamples returns the number of authored time samples.
func (a *Attribute) NumTimeSamples() int {
	if a == nil {
		return 0
	}
	return len(a.samples)
}

// Samples returns the authored time samples in time order.
func (a *Attribute) Samples() []Sample {
	if a == nil {
		return nil
	}
	return a.samples
}

// Get resolves the attribute's value at time t.
//
// The default time reads the default value only. Any other time reads the
// time samples when there are some (clamping outside the authored range and
// blending float arrays of equal length in between), and the default otherwise.
func (a *Attribute) Get(t Time) (any, bool) {
	if a == nil {
		return nil, false
	}
	if t.IsDefault() || len(a.samples) == 0 {
		return a.Default, a.Default != nil
	}

	first, last := a.samples[0], a.samples[len(a.samples)-1]
	if t <= first.Time {
		return first.Value, true
	}
	if t >= last.Time {
		return last.Value, true
	}

	i := sort.Search(len(a.samples), func(i int) bool { return a.samples[i].Time >= t })
	hi := a.samples[i]
	if hi.Time == t {
		return hi.Value, true
	}
	lo := a.samples[i-1]
	alpha := float32((t - lo.Time) / (hi.Time - lo.Time))
	return lerpValue(lo.Value, hi.Value, alpha), true
}

// lerpValue blends float arrays of matching length and holds the lower
// sample for everything else.
func lerpValue(lo, hi any, alpha float32) any {
	switch a := lo.(type) {
	case []float32:
		b, ok := hi.([]float32)
		if !ok || len(a) != len(b) {
			return lo
		}
		out := make([]float32, len(a))
		for i := range a {
			out[i] = a[i] + alpha*(b[i]-a[i])
		}
		return out
	case [][3]float32:
		b, ok := hi.([][3]float32)
		if !ok || len(a) != len(b) {
			return lo
		}
		out := make([][3]float32, len(a))
		for i := range a {
			for k := 0; k < 3; k++ {
				out[i][k] = a[i][k] + alpha*(b[i][k]-a[i][k])
			}
		}
		return out
	}
	return lo
}

// Ints resolves an int[] value.
func (a *Attribute) Ints(t Time) ([]int32, bool) {
	v, ok := a.Get(t)
	if !ok {
		return nil, false
	}
	out, ok := v.([]int32)
	return out, ok
}

// Floats resolves a float[] value.
func (a *Attribute) Floats(t Time) ([]float32, bool) {
	v, ok := a.Get(t)
	if !ok {
		return nil, false
	}
	out, ok := v.([]float32)
	return out, ok
}

// Vec2s resolves a float2[] or texCoord2f[] value.
func (a *Attribute) Vec2s(t Time) ([][2]float32, bool) {
	v, ok := a.Get(t)
	if !ok {
		return nil, false
	}
	out, ok := v.([][2]float32)
	return out, ok
}

// Vec3s resolves a float3[], point3f[] or normal3f[] value.
func (a *Attribute) Vec3s(t Time) ([][3]float32, bool) {
	v, ok := a.Get(t)
	if !ok {
		return nil, false
	}
	out, ok := v.([][3]float32)
	return out, ok
}

// Token resolves a token or string value.
func (a *Attribute) Token(t Time) (string, bool) {
	v, ok := a.Get(t)
	if !ok {
		return "", false
	}
	out, ok := v.(string)
	return out, ok
}

// Primvar is a named attribute with interpolation and optional indexing.
type Primvar struct {
	Name          string
	Interpolation Interpolation
	Values        *Attribute
	Indices       *Attribute
}

// NewPrimvar creates a primvar with default values and no indices.
func NewPrimvar(name string, typeName ValueType, interp Interpolation, values any) *Primvar {
	return &Primvar{
		Name:          name,
		Interpolation: interp,
		Values:        NewAttribute(typeName, values),
	}
}

// WithIndices sets a default index array and returns the primvar.
func (p *Primvar) WithIndices(indices []int32) *Primvar {
	p.Indices = NewAttribute(TypeIntArray, indices)
	return p
}

// TypeName returns the declared type of the primvar's values.
func (p *Primvar) TypeName() ValueType {
	if p == nil || p.Values == nil {
		return ""
	}
	return p.Values.TypeName
}

// IsIndexed reports whether the primvar has authored indices.
func (p *Primvar) IsIndexed() bool {
	return p != nil && p.Indices != nil && (p.Indices.Default != nil || p.Indices.NumTimeSamples() > 0)
}

// GetIndices resolves the primvar's index array at time t.
func (p *Primvar) GetIndices(t Time) ([]int32, bool) {
	if !p.IsIndexed() {
		return nil, false
	}
	return p.Indices.Ints(t)
}

// ComputeFlattened resolves the values at time t with indices applied.
// It fails when an index is out of range.
func (p *Primvar) ComputeFlattened(t Time) (any, bool) {
	v, ok := p.Values.Get(t)
	if !ok {
		return nil, false
	}
	indices, indexed := p.GetIndices(t)
	if !indexed {
		return v, true
	}

	switch vals := v.(type) {
	case []float32:
		return flatten(vals, indices)
	case [][2]float32:
		return flatten(vals, indices)
	case [][3]float32:
		return flatten(vals, indices)
	case []int32:
		return flatten(vals, indices)
	}
	return nil, false
}

func flatten[T any](vals []T, indices []int32) (any, bool) {
	out := make([]T, len(indices))
	for i, idx := range indices {
		if idx < 0 || int(idx) >= len(vals) {
			return nil, false
		}
		out[i] = vals[idx]
	}
	return out, true
}
