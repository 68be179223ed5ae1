package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"matball-renderer/internal/batch"
	"matball-renderer/internal/config"
	"matball-renderer/internal/material"
	"matball-renderer/internal/raster"
	"matball-renderer/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	materials := flag.String("materials", "", "Path to materials YAML file (default: materials.yaml)")
	outputDir := flag.String("out", "", "Output directory (default: previews)")
	dirs := flag.String("dirs", "", "Comma-separated texture search directories (default: .)")
	size := flag.Int("size", 0, "Preview edge in pixels (default: 256)")
	shape := flag.String("shape", "", "Preview shape: sphere or plane (default: sphere)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	testN := flag.Int("test", 0, "Render only first N materials for testing")
	only := flag.String("only", "", "Render only the material with this name")
	verbose := flag.Bool("v", false, "Verbose texture logging")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Materials:  *materials,
		OutputDir:  *outputDir,
		SearchDirs: splitDirs(*dirs),
		Size:       *size,
		Shape:      *shape,
		Workers:    *workers,
	})

	shapeVal, ok := raster.ParseShape(cfg.Shape)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown shape %q (want sphere or plane)\n", cfg.Shape)
		os.Exit(1)
	}

	// Load material definitions
	defs, err := material.Load(cfg.Materials)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading materials: %v\n", err)
		os.Exit(1)
	}

	// Validation report; errors abort, warnings just print.
	issues := material.Validate(defs)
	hardErrors := 0
	for _, is := range issues {
		name := is.Material
		if name == "" {
			name = "<unnamed>"
		}
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", is.Level, name, is.Message)
		if is.Level == material.IssueError {
			hardErrors++
		}
	}
	if hardErrors > 0 {
		fmt.Fprintf(os.Stderr, "Error: %d invalid material definition(s)\n", hardErrors)
		os.Exit(1)
	}

	// Filter by name
	if *only != "" {
		var filtered []material.Definition
		for _, d := range defs {
			if d.Name == *only {
				filtered = append(filtered, d)
			}
		}
		defs = filtered
	}

	// Limit for testing
	if *testN > 0 && *testN < len(defs) {
		defs = defs[:*testN]
	}

	if len(defs) == 0 {
		fmt.Println("No materials to render.")
		os.Exit(0)
	}

	// Fail on an unusable output directory before any rendering starts.
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	// Build texture index and cache
	texIndex := texture.BuildIndex(cfg.SearchDirs...)
	texCache := texture.NewCache(texture.DefaultRegistry(), texIndex, log)
	fmt.Printf("Textures: %d indexed\n", texIndex.Len())

	mats := make([]*material.Material, len(defs))
	for i, d := range defs {
		mats[i] = material.Build(d, texCache)
	}

	// Print summary
	mode := ""
	if *only != "" {
		mode = fmt.Sprintf(" (only %q)", *only)
	} else if *testN > 0 {
		mode = fmt.Sprintf(" (TEST: first %d)", *testN)
	}

	fmt.Printf("Material Ball Renderer → WebP%s\n", mode)
	fmt.Printf("Materials: %d, Workers: %d\n", len(mats), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	// Run batch
	batchCfg := batch.Config{
		OutputDir:   cfg.OutputDir,
		RenderSize:  cfg.RenderSize,
		Supersample: cfg.Supersample,
		Shape:       shapeVal,
		PlaneTiles:  float32(cfg.PlaneTiles),
		Light:       raster.DefaultLightConfig(),
		Workers:     cfg.Workers,
	}

	results := batch.Run(batchCfg, mats)

	elapsed := time.Since(start)
	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	// Count results
	success, failed := 0, 0
	var errors []batch.Result
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed++
			errors = append(errors, r)
		}
	}

	fmt.Printf("Rendered: %d/%d\n", success, len(mats))

	if len(errors) > 0 {
		fmt.Printf("\nFailed (%d):\n", failed)
		limit := 20
		if len(errors) < limit {
			limit = len(errors)
		}
		for _, e := range errors[:limit] {
			fmt.Printf("  %s: %s\n", e.Name, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, mats, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		os.Exit(1)
	}
}

func splitDirs(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			out = append(out, d)
		}
	}
	return out
}
