// Package extract runs an extraction pass over a scene: it picks the
// models and meshes to load, normalizes each mesh and collects them into
// a host entity.
package extract

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/meshnorm/internal/mesh"
)

// LoadMode selects which models a pass loads.
type LoadMode int

const (
	// LoadSpecified loads the models named in Options.Models. An empty
	// list loads every model.
	LoadSpecified LoadMode = iota
	// LoadAll loads every model.
	LoadAll
	// LoadFirstFound loads only the first model reached.
	LoadFirstFound
)

var loadModeNames = map[LoadMode]string{
	LoadSpecified:  "specified",
	LoadAll:        "all",
	LoadFirstFound: "first",
}

func (m LoadMode) String() string {
	if s, ok := loadModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("LoadMode(%d)", int(m))
}

// ParseLoadMode parses "specified", "all" or "first".
func ParseLoadMode(s string) (LoadMode, error) {
	for m, name := range loadModeNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown load mode %q", s)
}

// Options controls an extraction pass.
type Options struct {
	// Mesh is passed to mesh.Build. Reference, SourceUpY and Logger are
	// set by the pass.
	Mesh mesh.Options
	// Source names the scene file in log lines and entity names.
	Source string
	// LoadMode and Models select the models to load.
	LoadMode LoadMode
	Models   []string
	// Gprims restricts loading to meshes with these names or full paths.
	Gprims []string
	// Variants holds selections like "/World/chair{modelingVariant=B}",
	// separated by spaces.
	Variants string
	// IncludeInvisible keeps invisible subtrees.
	IncludeInvisible bool
	// KeepCentered makes points relative to the enclosing model.
	KeepCentered bool
	// SelectionGroups adds a face selection group to every object.
	SelectionGroups bool
	// Filter selects mesh paths by substring.
	Filter mesh.Filter
	// Workers is the number of meshes built at once. Values below 2 build
	// sequentially.
	Workers int
	// Logger receives pass and mesh logs. Nil discards them.
	Logger *zap.Logger
}

// VariantSelection selects a variant of a variant set on the node at Path.
type VariantSelection struct {
	Path    string
	Set     string
	Variant string
}

func (v VariantSelection) String() string {
	return fmt.Sprintf("%s{%s=%s}", v.Path, v.Set, v.Variant)
}

// ParseVariants parses space separated variant selections such as
// "/World/chair{modelingVariant=B}". Malformed entries are returned
// separately.
func ParseVariants(s string) (sels []VariantSelection, bad []string) {
	for _, tok := range strings.Fields(s) {
		sel, ok := parseVariant(tok)
		if !ok {
			bad = append(bad, tok)
			continue
		}
		sels = append(sels, sel)
	}
	return sels, bad
}

func parseVariant(tok string) (VariantSelection, bool) {
	open := strings.IndexByte(tok, '{')
	if open <= 0 || !strings.HasPrefix(tok, "/") || !strings.HasSuffix(tok, "}") {
		return VariantSelection{}, false
	}
	set, variant, ok := strings.Cut(tok[open+1:len(tok)-1], "=")
	if !ok || set == "" || variant == "" || strings.ContainsAny(set+variant, "{}=") {
		return VariantSelection{}, false
	}
	return VariantSelection{Path: tok[:open], Set: set, Variant: variant}, true
}

// SplitList splits a comma separated list, dropping empty entries.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
