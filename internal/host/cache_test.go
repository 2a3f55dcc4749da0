package host

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshnorm/internal/mesh"
	"github.com/Faultbox/meshnorm/pkg/formats"
)

func newQuadEntity(t *testing.T) *Entity {
	t.Helper()
	m := mesh.Build(newQuad(), mesh.Options{UVSet: "st", Frames: []int{1, 2}})
	e := NewEntity("chair")
	e.SetMetadata(map[string]string{MetaModelName: "chair", MetaUVSet: "st"})
	_, err := e.AddMesh(m, "/chair/geo/seat")
	require.NoError(t, err)
	return e
}

func TestCacheRoundTrip(t *testing.T) {
	want := newQuadEntity(t)

	var buf bytes.Buffer
	require.NoError(t, want.WriteCache(&buf))

	m, err := formats.ParseMGEO(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, formats.MGEOVersion{Major: 1, Minor: 0}, m.Version)

	got := Decode(m)
	assert.Equal(t, want, got)
}

func TestSaveLoadCache(t *testing.T) {
	e := newQuadEntity(t)
	path := filepath.Join(t.TempDir(), "chair.mgeo")
	require.NoError(t, e.SaveCache(path))

	got, err := LoadCache(path)
	require.NoError(t, err)
	assert.Equal(t, e.ID, got.ID)
	assert.Equal(t, e.FaceCount(), got.FaceCount())
	require.Len(t, got.Objects, 1)
	assert.Len(t, got.Objects[0].Frames, 2)
	assert.Equal(t, KindU32, got.Objects[0].Buffer(RoleUV0Indices).Kind)
}

func TestLoadCacheMissing(t *testing.T) {
	_, err := LoadCache(filepath.Join(t.TempDir(), "missing.mgeo"))
	assert.Error(t, err)
}

func TestSaveCacheBadPath(t *testing.T) {
	e := newQuadEntity(t)
	err := e.SaveCache(filepath.Join(t.TempDir(), "no", "such", "dir", "x.mgeo"))
	assert.Error(t, err)
}
