package scene

import (
	"sort"

	pmath "github.com/Faultbox/meshnorm/pkg/math"
)

// Model kinds. Nodes of these kinds are models; a model groups gprims.
var modelKinds = map[string]bool{
	"model":     true,
	"group":     true,
	"assembly":  true,
	"component": true,
}

// Node is a prim in the scene hierarchy.
type Node struct {
	name     string
	typeName string
	kind     string

	attributes  map[string]*Attribute
	primvars    map[string]*Primvar
	xform       *Xform
	variantSets map[string]*VariantSet
	metadata    map[string]string

	parent   *Node
	children []*Node
}

// VariantSet holds alternative child hierarchies, one of which is selected.
type VariantSet struct {
	Selection string
	Variants  map[string][]*Node
}

// NewNode creates a node of the given type.
func NewNode(name, typeName string) *Node {
	return &Node{
		name:       name,
		typeName:   typeName,
		attributes: make(map[string]*Attribute),
		primvars:   make(map[string]*Primvar),
		metadata:   make(map[string]string),
	}
}

// Name returns the node's name.
func (n *Node) Name() string { return n.name }

// TypeName returns the node's schema type, e.g. "Mesh".
func (n *Node) TypeName() string { return n.typeName }

// Kind returns the node's model kind, if any.
func (n *Node) Kind() string { return n.kind }

// SetKind sets the model kind.
func (n *Node) SetKind(kind string) *Node {
	n.kind = kind
	return n
}

// IsMesh reports whether the node is a polygon mesh.
func (n *Node) IsMesh() bool { return n.typeName == TypeMesh }

// IsModel reports whether the node's kind makes it a model.
func (n *Node) IsModel() bool { return modelKinds[n.kind] }

// Parent returns the parent node, or nil for a root.
func (n *Node) Parent() *Node { return n.parent }

// ParentName returns the parent's name, or "" for a root.
func (n *Node) ParentName() string {
	if n.parent == nil {
		return ""
	}
	return n.parent.name
}

// Path returns the absolute path of the node.
func (n *Node) Path() string {
	if n.parent == nil {
		return "/" + n.name
	}
	return n.parent.Path() + "/" + n.name
}

// AddChild appends a child and returns it.
func (n *Node) AddChild(child *Node) *Node {
	child.parent = n
	n.children = append(n.children, child)
	return child
}

// Children returns the node's children followed by those of each selected
// variant, in variant set name order.
func (n *Node) Children() []*Node {
	if len(n.variantSets) == 0 {
		return n.children
	}

	out := append([]*Node(nil), n.children...)
	names := make([]string, 0, len(n.variantSets))
	for name := range n.variantSets {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		vs := n.variantSets[name]
		out = append(out, vs.Variants[vs.Selection]...)
	}
	return out
}

// AddVariant adds the children of one variant of a variant set.
// The first variant added becomes the selection.
func (n *Node) AddVariant(set, variant string, children ...*Node) {
	if n.variantSets == nil {
		n.variantSets = make(map[string]*VariantSet)
	}
	vs, ok := n.variantSets[set]
	if !ok {
		vs = &VariantSet{Selection: variant, Variants: make(map[string][]*Node)}
		n.variantSets[set] = vs
	}
	for _, c := range children {
		c.parent = n
	}
	vs.Variants[variant] = append(vs.Variants[variant], children...)
}

// VariantSet returns the named variant set, or nil.
func (n *Node) VariantSet(set string) *VariantSet {
	return n.variantSets[set]
}

// SetVariantSelection selects a variant. It reports false when the set or
// variant does not exist.
func (n *Node) SetVariantSelection(set, variant string) bool {
	vs, ok := n.variantSets[set]
	if !ok {
		return false
	}
	if _, ok := vs.Variants[variant]; !ok {
		return false
	}
	vs.Selection = variant
	return true
}

// Attribute returns the named attribute, or nil.
func (n *Node) Attribute(name string) *Attribute {
	return n.attributes[name]
}

// SetAttribute adds or replaces an attribute and returns it.
func (n *Node) SetAttribute(name string, a *Attribute) *Attribute {
	n.attributes[name] = a
	return a
}

// Primvar returns the named primvar, or nil.
func (n *Node) Primvar(name string) *Primvar {
	return n.primvars[name]
}

// SetPrimvar adds or replaces a primvar.
func (n *Node) SetPrimvar(p *Primvar) *Primvar {
	n.primvars[p.Name] = p
	return p
}

// Primvars returns all primvars sorted by name.
func (n *Node) Primvars() []*Primvar {
	out := make([]*Primvar, 0, len(n.primvars))
	for _, p := range n.primvars {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Metadata returns the node's string metadata.
func (n *Node) Metadata() map[string]string {
	return n.metadata
}

// SetMetadata sets a metadata entry.
func (n *Node) SetMetadata(key, value string) {
	n.metadata[key] = value
}

// NormalsInterpolation returns the interpolation of the normals attribute,
// which defaults to vertex.
func (n *Node) NormalsInterpolation() Interpolation {
	if a := n.attributes[AttrNormals]; a != nil && a.Interpolation != "" {
		return a.Interpolation
	}
	return Vertex
}

// IsInvisible reports whether the node's own visibility is "invisible" at t.
func (n *Node) IsInvisible(t Time) bool {
	a := n.attributes[AttrVisibility]
	if a == nil {
		return false
	}
	tok, ok := a.Token(t)
	if !ok && a.NumTimeSamples() > 0 {
		tok, ok = a.Token(Earliest)
	}
	return ok && tok == TokenInvisible
}

// SetXform sets the node's local transform.
func (n *Node) SetXform(x *Xform) *Node {
	n.xform = x
	return n
}

// Xform returns the node's local transform, or nil.
func (n *Node) Xform() *Xform {
	return n.xform
}

// LocalTransform returns the node's own transform at time t.
func (n *Node) LocalTransform(t Time) pmath.Mat4 {
	if n.xform == nil {
		return pmath.Identity()
	}
	return n.xform.Matrix(t)
}

// LocalToWorld composes the node's transform with its ancestors' at time t.
func (n *Node) LocalToWorld(t Time) pmath.Mat4 {
	local := n.LocalTransform(t)
	if n.parent == nil || (n.xform != nil && n.xform.ResetXformStack) {
		return local
	}
	return local.Mul(n.parent.LocalToWorld(t))
}
