package extract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Faultbox/meshnorm/internal/mesh"
	"github.com/Faultbox/meshnorm/pkg/scene"
)

// DefaultUVSet is listed first when a scene offers it.
const DefaultUVSet = "map1"

// UVSetCount is a UV set and the number of meshes offering it.
type UVSetCount struct {
	Name   string
	Meshes int
}

// Discovery is what a pre-scan of a stage found.
type Discovery struct {
	// UVSets is ordered DefaultUVSet first, then by name.
	UVSets []UVSetCount
	// Nodes is the number of nodes traversed.
	Nodes int
	// Meshes is the number of mesh nodes passing the filter.
	Meshes int
}

// Discover scans every node of a stage for the UV sets its meshes offer.
func Discover(stage *scene.Stage, filter mesh.Filter, readFloat2 bool) Discovery {
	var d Discovery
	counts := make(map[string]int)

	stage.Traverse(func(n *scene.Node) bool {
		d.Nodes++
		if mesh.IsValidNode(n, filter) {
			d.Meshes++
			for _, name := range scene.UVSets(n, readFloat2) {
				counts[name]++
			}
		}
		return true
	})

	for name, c := range counts {
		d.UVSets = append(d.UVSets, UVSetCount{Name: name, Meshes: c})
	}
	sort.Slice(d.UVSets, func(i, j int) bool {
		a, b := d.UVSets[i].Name, d.UVSets[j].Name
		if (a == DefaultUVSet) != (b == DefaultUVSet) {
			return a == DefaultUVSet
		}
		return a < b
	})
	return d
}

// Choices formats the UV sets as "name (meshes/nodes)" entries.
func (d Discovery) Choices() []string {
	out := make([]string, len(d.UVSets))
	for i, uv := range d.UVSets {
		out[i] = fmt.Sprintf("%s (%d/%d)", uv.Name, uv.Meshes, d.Nodes)
	}
	return out
}

// UVSetFromChoice returns the UV set name of a formatted choice, dropping
// everything from the first space.
func UVSetFromChoice(choice string) string {
	name, _, _ := strings.Cut(strings.TrimSpace(choice), " ")
	return name
}
