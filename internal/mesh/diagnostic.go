package mesh

import (
	"fmt"

	"go.uber.org/zap"
)

// Severity ranks a diagnostic.
type Severity int

// Diagnostic severities.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	}
	return "unknown"
}

// Diagnostic codes.
const (
	CodeNotMesh              = "not-mesh"
	CodeMissingTopology      = "missing-topology"
	CodeInconsistentTopology = "inconsistent-topology"
	CodeMissingPoints        = "missing-points"
	CodeNoFrames             = "no-frames"
	CodeIndexClamped         = "index-clamped"
	CodeIndexOutOfRange      = "index-out-of-range"
	CodeUVSetMissing         = "uv-set-missing"
	CodeUVSetUnsupported     = "uv-set-unsupported"
	CodeUVSetDropped         = "uv-set-dropped"
	CodeNormalsUnsupported   = "normals-unsupported"
	CodeNormalsDropped       = "normals-dropped"
	CodeSingularReference    = "singular-reference"
)

// Diagnostic is a message recorded while building a mesh.
type Diagnostic struct {
	Severity Severity
	Code     string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%s] %s: %s", d.Severity, d.Code, d.Message)
}

// report records a diagnostic and logs it.
func (m *Mesh) report(sev Severity, code, format string, args ...any) {
	d := Diagnostic{Severity: sev, Code: code, Message: fmt.Sprintf(format, args...)}
	m.diagnostics = append(m.diagnostics, d)

	fields := []zap.Field{zap.String("code", code)}
	switch sev {
	case SeverityError:
		m.log.Error(d.Message, fields...)
	case SeverityWarning:
		m.log.Warn(d.Message, fields...)
	default:
		m.log.Debug(d.Message, fields...)
	}
}
