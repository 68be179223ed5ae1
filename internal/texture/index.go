package texture

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Index maps lowercase texture stems to filesystem paths, so materials can
// reference textures by bare name regardless of directory or container.
// When one stem exists in several containers the alpha-capable format wins.
type Index struct {
	entries map[string]string // stem.lower() -> full path
}

// Lower rank wins when one stem resolves to several files. PNG and TGA
// carry alpha, so they beat JPEG for the same stem.
var extRank = map[string]int{
	".png":  0,
	".tga":  1,
	".tif":  2,
	".tiff": 2,
	".bmp":  3,
	".jpg":  4,
	".jpeg": 4,
}

// BuildIndex scans the given directories recursively for texture files.
// Unreadable directories are skipped.
func BuildIndex(dirs ...string) *Index {
	idx := &Index{entries: make(map[string]string)}

	for _, dir := range dirs {
		filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			ext := strings.ToLower(filepath.Ext(path))
			rank, known := extRank[ext]
			if !known {
				return nil
			}
			stem := strings.ToLower(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))

			existing, exists := idx.entries[stem]
			if exists && extRank[strings.ToLower(filepath.Ext(existing))] <= rank {
				return nil
			}
			idx.entries[stem] = path
			return nil
		})
	}

	return idx
}

// Resolve maps a texture reference to a loadable source. URLs and paths
// that already exist pass through untouched; everything else is looked up
// by stem. Unknown names return unchanged, so a missing texture fails soft
// at decode time instead of here.
func (idx *Index) Resolve(name string) string {
	if strings.Contains(name, "://") {
		return name
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}

	// Strip any path prefix (e.g. "wood/planks.jpg" or "wood\\planks.jpg").
	base := strings.ReplaceAll(name, "\\", "/")
	base = filepath.Base(base)
	stem := strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))

	if path, ok := idx.entries[stem]; ok {
		return path
	}
	return name
}

// Len returns the number of indexed textures.
func (idx *Index) Len() int {
	return len(idx.entries)
}
