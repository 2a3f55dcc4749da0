package mesh

import "strings"

// Filter selects mesh paths by substring.
type Filter struct {
	// Require lists substrings of which at least one must occur in the path.
	// An empty list requires nothing.
	Require []string
	// Ignore lists substrings that exclude a path.
	Ignore []string
}

// Match reports whether path passes the filter.
func (f Filter) Match(path string) bool {
	if len(f.Require) > 0 {
		found := false
		for _, s := range f.Require {
			if strings.Contains(path, s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	for _, s := range f.Ignore {
		if strings.Contains(path, s) {
			return false
		}
	}
	return true
}

// IsValidNode reports whether a node is a mesh that passes the filter.
func IsValidNode(n Node, f Filter) bool {
	return n.IsMesh() && f.Match(n.Path())
}
