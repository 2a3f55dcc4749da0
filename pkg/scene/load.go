package scene

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	pmath "github.com/Faultbox/meshnorm/pkg/math"
)

// Scene document errors.
var (
	ErrUnknownValueType = errors.New("unknown value type")
	ErrInvalidValue     = errors.New("invalid attribute value")
	ErrInvalidTime      = errors.New("invalid time code")
)

// document is the YAML layout of a scene file.
type document struct {
	UpAxis string    `yaml:"upAxis"`
	Nodes  []nodeDoc `yaml:"nodes"`
}

type nodeDoc struct {
	Name        string                   `yaml:"name"`
	Type        string                   `yaml:"type"`
	Kind        string                   `yaml:"kind"`
	Visibility  string                   `yaml:"visibility"`
	Metadata    map[string]string        `yaml:"metadata"`
	Xform       *xformDoc                `yaml:"xform"`
	Attributes  map[string]attrDoc       `yaml:"attributes"`
	Primvars    map[string]primvarDoc    `yaml:"primvars"`
	VariantSets map[string]variantSetDoc `yaml:"variantSets"`
	Children    []nodeDoc                `yaml:"children"`
}

type xformSampleDoc struct {
	Translate *[3]float64  `yaml:"translate"`
	RotateXYZ *[3]float64  `yaml:"rotateXYZ"`
	Scale     *[3]float64  `yaml:"scale"`
	Orient    *[4]float64  `yaml:"orient"` // w, x, y, z
	Matrix    *[16]float64 `yaml:"matrix"`
}

type xformDoc struct {
	xformSampleDoc  `yaml:",inline"`
	ResetXformStack bool                      `yaml:"resetXformStack"`
	Samples         map[string]xformSampleDoc `yaml:"samples"`
}

type attrDoc struct {
	Type          string               `yaml:"type"`
	Interpolation string               `yaml:"interpolation"`
	Value         yaml.Node            `yaml:"value"`
	Samples       map[string]yaml.Node `yaml:"samples"`
}

type primvarDoc struct {
	Type          string               `yaml:"type"`
	Interpolation string               `yaml:"interpolation"`
	Value         yaml.Node            `yaml:"value"`
	Samples       map[string]yaml.Node `yaml:"samples"`
	Indices       yaml.Node            `yaml:"indices"`
}

type variantSetDoc struct {
	Selection string               `yaml:"selection"`
	Variants  map[string][]nodeDoc `yaml:"variants"`
}

// Load reads a YAML scene document from disk.
func Load(path string) (*Stage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML scene document.
func Parse(data []byte) (*Stage, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding scene: %w", err)
	}

	stage := NewStage(doc.UpAxis)
	for i := range doc.Nodes {
		n, err := buildNode(&doc.Nodes[i], "")
		if err != nil {
			return nil, err
		}
		stage.AddRoot(n)
	}
	return stage, nil
}

func buildNode(d *nodeDoc, parentPath string) (*Node, error) {
	path := parentPath + "/" + d.Name
	n := NewNode(d.Name, d.Type)
	n.kind = d.Kind
	for k, v := range d.Metadata {
		n.metadata[k] = v
	}

	if d.Visibility != "" {
		n.SetAttribute(AttrVisibility, NewAttribute(TypeToken, d.Visibility))
	}

	if d.Xform != nil {
		x, err := buildXform(d.Xform)
		if err != nil {
			return nil, fmt.Errorf("%s xform: %w", path, err)
		}
		n.xform = x
	}

	for name, ad := range d.Attributes {
		a, err := buildAttribute(ValueType(ad.Type), &ad.Value, ad.Samples)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", path, name, err)
		}
		a.Interpolation = Interpolation(ad.Interpolation)
		n.SetAttribute(name, a)
	}

	for name, pd := range d.Primvars {
		values, err := buildAttribute(ValueType(pd.Type), &pd.Value, pd.Samples)
		if err != nil {
			return nil, fmt.Errorf("%s primvar %s: %w", path, name, err)
		}
		interp := Interpolation(pd.Interpolation)
		if interp == "" {
			interp = Constant
		}
		pv := &Primvar{Name: name, Interpolation: interp, Values: values}
		if !pd.Indices.IsZero() {
			var idx []int32
			if err := pd.Indices.Decode(&idx); err != nil {
				return nil, fmt.Errorf("%s primvar %s indices: %w: %v", path, name, ErrInvalidValue, err)
			}
			pv.Indices = NewAttribute(TypeIntArray, idx)
		}
		n.SetPrimvar(pv)
	}

	for i := range d.Children {
		c, err := buildNode(&d.Children[i], path)
		if err != nil {
			return nil, err
		}
		n.AddChild(c)
	}

	for set, vd := range d.VariantSets {
		for variant, docs := range vd.Variants {
			children := make([]*Node, 0, len(docs))
			for i := range docs {
				c, err := buildNode(&docs[i], path)
				if err != nil {
					return nil, err
				}
				children = append(children, c)
			}
			n.AddVariant(set, variant, children...)
		}
		if vd.Selection != "" {
			n.SetVariantSelection(set, vd.Selection)
		}
	}

	return n, nil
}

func buildXform(d *xformDoc) (*Xform, error) {
	x := &Xform{ResetXformStack: d.ResetXformStack}
	if len(d.Samples) == 0 {
		x.SetSample(d.xformSampleDoc.sample(0))
		return x, nil
	}
	for key, sd := range d.Samples {
		t, err := parseTime(key)
		if err != nil {
			return nil, err
		}
		x.SetSample(sd.sample(t))
	}
	return x, nil
}

func (d xformSampleDoc) sample(t Time) XformSample {
	s := XformSample{Time: t, Scale: d.Scale}
	if d.Translate != nil {
		s.Translate = *d.Translate
	}
	if d.RotateXYZ != nil {
		s.RotateXYZ = *d.RotateXYZ
	}
	if d.Orient != nil {
		s.Orient = &pmath.Quat{W: d.Orient[0], X: d.Orient[1], Y: d.Orient[2], Z: d.Orient[3]}
	}
	if d.Matrix != nil {
		m := pmath.Mat4(*d.Matrix)
		s.Matrix = &m
	}
	return s
}

func buildAttribute(typ ValueType, value *yaml.Node, samples map[string]yaml.Node) (*Attribute, error) {
	a := &Attribute{TypeName: typ}
	if !value.IsZero() {
		v, err := decodeValue(typ, value)
		if err != nil {
			return nil, err
		}
		a.Default = v
	}
	for key, node := range samples {
		t, err := parseTime(key)
		if err != nil {
			return nil, err
		}
		v, err := decodeValue(typ, &node)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", key, err)
		}
		a.SetSample(t, v)
	}
	return a, nil
}

// decodeValue decodes a YAML value according to its declared type.
func decodeValue(typ ValueType, node *yaml.Node) (any, error) {
	var (
		out any
		err error
	)
	switch typ {
	case TypeIntArray:
		out, err = decodeAs[[]int32](node)
	case TypeFloatArray:
		out, err = decodeAs[[]float32](node)
	case TypeFloat2Array, TypeTexCoord2fArray:
		out, err = decodeAs[[][2]float32](node)
	case TypeFloat3Array, TypePoint3fArray, TypeNormal3fArray:
		out, err = decodeAs[[][3]float32](node)
	case TypeToken, TypeString:
		out, err = decodeAs[string](node)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownValueType, typ)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidValue, typ, err)
	}
	return out, nil
}

func decodeAs[T any](node *yaml.Node) (T, error) {
	var v T
	err := node.Decode(&v)
	return v, err
}

func parseTime(s string) (Time, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTime, s)
	}
	return Time(f), nil
}
