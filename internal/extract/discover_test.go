package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Faultbox/meshnorm/internal/mesh"
)

func TestDiscover(t *testing.T) {
	d := Discover(loadRoom(t), mesh.Filter{}, false)

	// World chair seat hidden legsA table top broken
	assert.Equal(t, 8, d.Nodes)
	assert.Equal(t, 5, d.Meshes)
	assert.Equal(t, []UVSetCount{{Name: "map1", Meshes: 2}, {Name: "st", Meshes: 2}}, d.UVSets)
	assert.Equal(t, []string{"map1 (2/8)", "st (2/8)"}, d.Choices())
}

func TestDiscoverFilter(t *testing.T) {
	d := Discover(loadRoom(t), mesh.Filter{Require: []string{"/World/table"}}, false)
	assert.Equal(t, 8, d.Nodes)
	assert.Equal(t, 2, d.Meshes)
	assert.Equal(t, []UVSetCount{{Name: "st", Meshes: 1}}, d.UVSets)
}

func TestDiscoverDefaultFirst(t *testing.T) {
	d := Discovery{Nodes: 3}
	d.UVSets = []UVSetCount{{Name: "a", Meshes: 1}, {Name: DefaultUVSet, Meshes: 1}}
	// Choices keeps the stored order; Discover does the sorting.
	assert.Equal(t, []string{"a (1/3)", "map1 (1/3)"}, d.Choices())
}

func TestUVSetFromChoice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"map1 (2/8)", "map1"},
		{"st", "st"},
		{"  st (1/3)", "st"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, UVSetFromChoice(tt.in), tt.in)
	}
}
