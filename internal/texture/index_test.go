package texture

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte{0}, 0o644))
	}
}

func TestIndexResolvesByStem(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "Wood_Planks.png", "sub/stone.jpg")

	idx := BuildIndex(dir)
	assert.Equal(t, 2, idx.Len())

	assert.Equal(t, filepath.Join(dir, "Wood_Planks.png"), idx.Resolve("wood_planks"))
	// Lookup ignores case, directories and the referenced extension.
	assert.Equal(t, filepath.Join(dir, "Wood_Planks.png"), idx.Resolve(`models\WOOD_PLANKS.tga`))
	assert.Equal(t, filepath.Join(dir, "sub", "stone.jpg"), idx.Resolve("textures/Stone.png"))
}

func TestIndexPrefersAlphaCapable(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a/brick.jpg", "b/brick.png", "c/brick.bmp")

	idx := BuildIndex(dir)
	assert.Equal(t, filepath.Join(dir, "b", "brick.png"), idx.Resolve("brick"))
}

func TestIndexSkipsUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "notes.txt", "mesh.obj", "tile.png")

	idx := BuildIndex(dir)
	assert.Equal(t, 1, idx.Len())
}

func TestResolvePassthrough(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "grass.png")
	idx := BuildIndex(dir)

	// URLs and existing paths skip the stem lookup.
	assert.Equal(t, "http://host/grass.png", idx.Resolve("http://host/grass.png"))
	direct := filepath.Join(dir, "grass.png")
	assert.Equal(t, direct, idx.Resolve(direct))

	// Unknown names come back unchanged and fail soft at decode time.
	assert.Equal(t, "nosuch.png", idx.Resolve("nosuch.png"))
}

func TestBuildIndexMultipleDirs(t *testing.T) {
	dir1 := t.TempDir()
	dir2 := t.TempDir()
	writeFiles(t, dir1, "floor.jpg")
	writeFiles(t, dir2, "wall.tga")

	idx := BuildIndex(dir1, dir2, filepath.Join(dir1, "missing"))
	assert.Equal(t, 2, idx.Len())
	assert.Equal(t, filepath.Join(dir2, "wall.tga"), idx.Resolve("WALL"))
}
