package config

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	Materials  string   `json:"materials"`
	SearchDirs []string `json:"search_dirs"`
	OutputDir  string   `json:"output_dir"`

	// Render settings
	RenderSize  int     `json:"render_size"`
	Supersample int     `json:"supersample"`
	Shape       string  `json:"shape"`
	PlaneTiles  float64 `json:"plane_tiles"`
	Workers     int     `json:"workers"`
}

// Load reads a JSON config file. Fields not set in the file keep their
// zero values until Resolve fills them.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI flag overrides, then fills any remaining empty
// fields with defaults.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.Materials != "" {
		c.Materials = flags.Materials
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if len(flags.SearchDirs) > 0 {
		c.SearchDirs = flags.SearchDirs
	}
	if flags.Size > 0 {
		c.RenderSize = flags.Size
	}
	if flags.Shape != "" {
		c.Shape = flags.Shape
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	// Defaults
	if c.Materials == "" {
		c.Materials = "materials.yaml"
	}
	if len(c.SearchDirs) == 0 {
		c.SearchDirs = []string{"."}
	}
	if c.OutputDir == "" {
		c.OutputDir = "previews"
	}
	if c.RenderSize <= 0 {
		c.RenderSize = 256
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Shape == "" {
		c.Shape = "sphere"
	}
	if c.PlaneTiles <= 0 {
		c.PlaneTiles = 1
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Materials  string
	OutputDir  string
	SearchDirs []string
	Size       int
	Shape      string
	Workers    int
}
