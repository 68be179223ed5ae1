package batch

import (
	"encoding/json"
	"os"

	"matball-renderer/internal/material"
)

// ManifestEntry describes one rendered material in the output manifest.
type ManifestEntry struct {
	Name        string `json:"name"`
	Image       string `json:"image,omitempty"`
	Transparent bool   `json:"transparent"`
	Error       string `json:"error,omitempty"`
}

// WriteManifest writes manifest.json next to the rendered previews. The
// transparency flag comes from the decoded textures, so it is only
// meaningful after the render pass has run.
func WriteManifest(path string, mats []*material.Material, results []Result) error {
	entries := make([]ManifestEntry, len(mats))
	for i, m := range mats {
		entries[i] = ManifestEntry{
			Name:        m.Name,
			Transparent: materialTransparent(m),
		}
		if i < len(results) {
			entries[i].Image = results[i].Image
			if !results[i].Success {
				entries[i].Error = results[i].Error
			}
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func materialTransparent(m *material.Material) bool {
	if m.Opacity != nil {
		return true
	}
	return m.Diffuse != nil && m.Diffuse.Transparent()
}
