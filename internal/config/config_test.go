package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"materials": "mats.yaml",
		"search_dirs": ["textures", "extra"],
		"render_size": 128,
		"shape": "plane",
		"plane_tiles": 2.5
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "mats.yaml", cfg.Materials)
	assert.Equal(t, []string{"textures", "extra"}, cfg.SearchDirs)
	assert.Equal(t, 128, cfg.RenderSize)
	assert.Equal(t, "plane", cfg.Shape)
	assert.Equal(t, 2.5, cfg.PlaneTiles)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.Equal(t, "materials.yaml", cfg.Materials)
	assert.Equal(t, []string{"."}, cfg.SearchDirs)
	assert.Equal(t, "previews", cfg.OutputDir)
	assert.Equal(t, 256, cfg.RenderSize)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Equal(t, "sphere", cfg.Shape)
	assert.Equal(t, 1.0, cfg.PlaneTiles)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
}

func TestResolveFlagPriority(t *testing.T) {
	cfg := Config{
		Materials:  "from_file.yaml",
		OutputDir:  "file_out",
		RenderSize: 128,
		Workers:    3,
	}
	cfg.Resolve(Flags{
		Materials: "from_flag.yaml",
		Size:      512,
		Shape:     "plane",
	})

	// Flags win where set, file values survive where not.
	assert.Equal(t, "from_flag.yaml", cfg.Materials)
	assert.Equal(t, 512, cfg.RenderSize)
	assert.Equal(t, "plane", cfg.Shape)
	assert.Equal(t, "file_out", cfg.OutputDir)
	assert.Equal(t, 3, cfg.Workers)
}
