package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"

	"matball-renderer/internal/material"
	"matball-renderer/internal/postprocess"
	"matball-renderer/internal/raster"
)

// Config holds the shared resources for one batch run.
type Config struct {
	OutputDir   string
	RenderSize  int
	Supersample int
	Shape       raster.Shape
	PlaneTiles  float32
	Light       raster.LightConfig
	Workers     int
}

// Result holds the outcome of rendering one material.
type Result struct {
	Name    string
	Image   string
	Success bool
	Error   string
}

// Run renders all materials using a worker pool and writes one WebP per
// material into the output directory.
func Run(cfg Config, mats []*material.Material) []Result {
	total := len(mats)
	results := make([]Result, total)
	var processed atomic.Int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				p := processed.Load()
				if p > 0 {
					elapsed := time.Since(start).Seconds()
					rate := float64(p) / elapsed
					fmt.Printf("  [%d/%d] %.1f materials/sec\n", p, total, rate)
				}
			}
		}
	}()

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = renderMaterial(cfg, mats[idx])
				processed.Add(1)
			}
		}()
	}

	for i := range mats {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func renderMaterial(cfg Config, mat *material.Material) Result {
	fb := raster.RenderPreview(mat, raster.Options{
		Size:  cfg.RenderSize * cfg.Supersample,
		Shape: cfg.Shape,
		Tiles: cfg.PlaneTiles,
		Light: cfg.Light,
	})
	img := fb.ToNRGBA()
	if cfg.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.RenderSize)
	}

	name := FileName(mat.Name)
	outPath := filepath.Join(cfg.OutputDir, name)
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return Result{Name: mat.Name, Error: err.Error()}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return Result{Name: mat.Name, Error: err.Error()}
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		return Result{Name: mat.Name, Image: name, Error: fmt.Sprintf("WebP encode: %v", err)}
	}

	return Result{Name: mat.Name, Image: name, Success: true}
}

// FileName maps a material name to its output file: lowercased, with
// anything path-hostile flattened to underscores.
func FileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	if b.Len() == 0 {
		return "material.webp"
	}
	return b.String() + ".webp"
}
