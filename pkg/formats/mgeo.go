// MGEO (mesh geometry cache) format reader and writer.
package formats

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
)

// MGEO format errors.
var (
	ErrInvalidMGEOMagic       = errors.New("invalid MGEO magic: expected 'MGEO'")
	ErrUnsupportedMGEOVersion = errors.New("unsupported MGEO version")
	ErrTruncatedMGEOData      = errors.New("truncated MGEO data")
	ErrInvalidMGEOBufferKind  = errors.New("invalid MGEO buffer kind")
	ErrMGEOStringTooLong      = errors.New("MGEO string too long")
)

const mgeoMagic = "MGEO"

// MGEO version written by WriteMGEO.
const (
	MGEOVersionMajor = 1
	MGEOVersionMinor = 0
)

// MGEOVersion is an MGEO format version.
type MGEOVersion struct {
	Major uint8
	Minor uint8
}

// String returns the version as "major.minor".
func (v MGEOVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// MGEOBufferKind is the element type of a buffer.
type MGEOBufferKind uint8

const (
	MGEOKindU32   MGEOBufferKind = 1 // uint32 elements
	MGEOKindFloat MGEOBufferKind = 2 // float32 elements
)

// MGEOBuffer is a role-tagged data buffer.
type MGEOBuffer struct {
	Role  string
	Kind  MGEOBufferKind
	U32   []uint32
	Float []float32
}

// Len returns the number of elements.
func (b *MGEOBuffer) Len() int {
	if b.Kind == MGEOKindU32 {
		return len(b.U32)
	}
	return len(b.Float)
}

// MGEOFrame replaces an object's vertices at one frame.
type MGEOFrame struct {
	Frame    int32
	Vertices []float32
}

// MGEOSelectionGroup is a named face set.
type MGEOSelectionGroup struct {
	Name        string
	FaceIndices []uint32
}

// MGEOSubdiv holds subdivision settings.
type MGEOSubdiv struct {
	Scheme                         string
	InterpolateBoundary            int32
	FaceVaryingLinearInterpolation int32
	PropagateCorner                bool
}

// MGEOObject is one mesh.
type MGEOObject struct {
	Label          string
	FaceCount      uint32
	SelectionGroup *MGEOSelectionGroup
	Subdiv         MGEOSubdiv
	Buffers        []MGEOBuffer
	Frames         []MGEOFrame
}

// Buffer returns the buffer with the given role, or nil.
func (o *MGEOObject) Buffer(role string) *MGEOBuffer {
	for i := range o.Buffers {
		if o.Buffers[i].Role == role {
			return &o.Buffers[i]
		}
	}
	return nil
}

// MGEO is a decoded geometry cache: one entity and its objects.
type MGEO struct {
	Version  MGEOVersion
	ID       [16]byte
	Name     string
	Metadata map[string]string
	Objects  []MGEOObject
}

// ParseMGEO decodes MGEO data.
func ParseMGEO(data []byte) (*MGEO, error) {
	if len(data) < 6 {
		return nil, ErrTruncatedMGEOData
	}
	r := &mgeoReader{r: bytes.NewReader(data)}

	// Read magic
	magic := make([]byte, 4)
	r.read(magic)
	if string(magic) != mgeoMagic {
		return nil, ErrInvalidMGEOMagic
	}

	// Read version
	m := &MGEO{}
	r.read(&m.Version.Major)
	r.read(&m.Version.Minor)
	if m.Version.Major != MGEOVersionMajor {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedMGEOVersion, m.Version)
	}

	r.read(m.ID[:])
	m.Name = r.string()

	// Metadata
	count := r.count(4)
	m.Metadata = make(map[string]string, count)
	for i := 0; i < count && r.err == nil; i++ {
		k := r.string()
		m.Metadata[k] = r.string()
	}

	// Objects
	count = r.count(4)
	for i := 0; i < count && r.err == nil; i++ {
		obj, err := parseMGEOObject(r)
		if err != nil {
			return nil, fmt.Errorf("object %d: %w", i, err)
		}
		m.Objects = append(m.Objects, obj)
	}

	if r.err != nil {
		return nil, r.err
	}
	return m, nil
}

func parseMGEOObject(r *mgeoReader) (MGEOObject, error) {
	var o MGEOObject
	o.Label = r.string()
	r.read(&o.FaceCount)

	var hasGroup uint8
	r.read(&hasGroup)
	if hasGroup != 0 {
		g := &MGEOSelectionGroup{Name: r.string()}
		g.FaceIndices = make([]uint32, r.count(4))
		r.read(g.FaceIndices)
		o.SelectionGroup = g
	}

	var propagate uint8
	o.Subdiv.Scheme = r.string()
	r.read(&o.Subdiv.InterpolateBoundary)
	r.read(&o.Subdiv.FaceVaryingLinearInterpolation)
	r.read(&propagate)
	o.Subdiv.PropagateCorner = propagate != 0

	count := r.count(1)
	for i := 0; i < count && r.err == nil; i++ {
		b := MGEOBuffer{Role: r.string()}
		r.read(&b.Kind)
		switch b.Kind {
		case MGEOKindU32:
			b.U32 = make([]uint32, r.count(4))
			r.read(b.U32)
		case MGEOKindFloat:
			b.Float = make([]float32, r.count(4))
			r.read(b.Float)
		default:
			if r.err == nil {
				return o, fmt.Errorf("%w: %d in buffer %q", ErrInvalidMGEOBufferKind, b.Kind, b.Role)
			}
		}
		o.Buffers = append(o.Buffers, b)
	}

	count = r.count(4)
	for i := 0; i < count && r.err == nil; i++ {
		var f MGEOFrame
		r.read(&f.Frame)
		f.Vertices = make([]float32, r.count(4))
		r.read(f.Vertices)
		o.Frames = append(o.Frames, f)
	}
	return o, r.err
}

// ParseMGEOFile reads and decodes an MGEO file.
func ParseMGEOFile(path string) (*MGEO, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading MGEO file: %w", err)
	}
	return ParseMGEO(data)
}

// mgeoReader reads little-endian values and keeps the first error.
type mgeoReader struct {
	r   *bytes.Reader
	err error
}

func (r *mgeoReader) read(v any) {
	if r.err != nil {
		return
	}
	if err := binary.Read(r.r, binary.LittleEndian, v); err != nil {
		r.err = ErrTruncatedMGEOData
	}
}

func (r *mgeoReader) string() string {
	var n uint16
	r.read(&n)
	if r.err != nil {
		return ""
	}
	if int(n) > r.r.Len() {
		r.err = ErrTruncatedMGEOData
		return ""
	}
	buf := make([]byte, n)
	r.read(buf)
	return string(buf)
}

// count reads an element count and checks that the remaining data can hold
// that many elements of elemSize bytes.
func (r *mgeoReader) count(elemSize int) int {
	var n uint32
	r.read(&n)
	if r.err != nil {
		return 0
	}
	if uint64(n)*uint64(elemSize) > uint64(r.r.Len()) {
		r.err = ErrTruncatedMGEOData
		return 0
	}
	return int(n)
}

// WriteMGEO encodes m. Metadata is written in key order.
func WriteMGEO(w io.Writer, m *MGEO) error {
	mw := &mgeoWriter{w: w}

	mw.write([]byte(mgeoMagic))
	mw.write(uint8(MGEOVersionMajor))
	mw.write(uint8(MGEOVersionMinor))
	mw.write(m.ID[:])
	mw.string(m.Name)

	keys := make([]string, 0, len(m.Metadata))
	for k := range m.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	mw.write(uint32(len(keys)))
	for _, k := range keys {
		mw.string(k)
		mw.string(m.Metadata[k])
	}

	mw.write(uint32(len(m.Objects)))
	for i := range m.Objects {
		writeMGEOObject(mw, &m.Objects[i])
	}
	return mw.err
}

func writeMGEOObject(w *mgeoWriter, o *MGEOObject) {
	w.string(o.Label)
	w.write(o.FaceCount)

	if g := o.SelectionGroup; g != nil {
		w.write(uint8(1))
		w.string(g.Name)
		w.write(uint32(len(g.FaceIndices)))
		w.write(g.FaceIndices)
	} else {
		w.write(uint8(0))
	}

	w.string(o.Subdiv.Scheme)
	w.write(o.Subdiv.InterpolateBoundary)
	w.write(o.Subdiv.FaceVaryingLinearInterpolation)
	if o.Subdiv.PropagateCorner {
		w.write(uint8(1))
	} else {
		w.write(uint8(0))
	}

	w.write(uint32(len(o.Buffers)))
	for i := range o.Buffers {
		b := &o.Buffers[i]
		w.string(b.Role)
		w.write(b.Kind)
		switch b.Kind {
		case MGEOKindU32:
			w.write(uint32(len(b.U32)))
			w.write(b.U32)
		case MGEOKindFloat:
			w.write(uint32(len(b.Float)))
			w.write(b.Float)
		default:
			if w.err == nil {
				w.err = fmt.Errorf("%w: %d in buffer %q", ErrInvalidMGEOBufferKind, b.Kind, b.Role)
			}
		}
	}

	w.write(uint32(len(o.Frames)))
	for _, f := range o.Frames {
		w.write(f.Frame)
		w.write(uint32(len(f.Vertices)))
		w.write(f.Vertices)
	}
}

// mgeoWriter writes little-endian values and keeps the first error.
type mgeoWriter struct {
	w   io.Writer
	err error
}

func (w *mgeoWriter) write(v any) {
	if w.err != nil {
		return
	}
	w.err = binary.Write(w.w, binary.LittleEndian, v)
}

func (w *mgeoWriter) string(s string) {
	if len(s) > math.MaxUint16 {
		if w.err == nil {
			w.err = fmt.Errorf("%w: %d bytes", ErrMGEOStringTooLong, len(s))
		}
		return
	}
	w.write(uint16(len(s)))
	w.write([]byte(s))
}
