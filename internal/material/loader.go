package material

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// file matches the materials YAML schema.
type file struct {
	Materials []Definition `yaml:"materials"`
}

// Load reads a materials file and returns the raw definitions.
func Load(path string) ([]Definition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("material: read %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("material: parse %s: %w", path, err)
	}
	return f.Materials, nil
}
