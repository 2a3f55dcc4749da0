package mesh

import "errors"

// Fatal mesh errors. A mesh that hits one of these is Invalid.
var (
	ErrNotMesh              = errors.New("not a mesh")
	ErrMissingTopology      = errors.New("missing topology")
	ErrInconsistentTopology = errors.New("inconsistent topology")
	ErrMissingPoints        = errors.New("missing points")
	ErrNoFrames             = errors.New("no frames requested")
)

// Attribute errors. These drop the attribute and leave the mesh usable.
var (
	ErrAttributeNotFound  = errors.New("attribute not found")
	ErrUnsupportedType    = errors.New("unsupported attribute type")
	ErrInterpolation      = errors.New("unsupported interpolation")
	ErrUnreadable         = errors.New("attribute values unreadable")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrIndexCountMismatch = errors.New("index count does not match corner count")
	ErrSplitUVMismatch    = errors.New("u and v channels disagree")
)
