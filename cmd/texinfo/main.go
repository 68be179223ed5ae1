package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/transform"
	"github.com/h2non/filetype"

	"matball-renderer/internal/bitmap"
	"matball-renderer/internal/texture"
)

func main() {
	linear := flag.Bool("linear", false, "Treat texel values as linear (skip gamma 2.2 expansion)")
	dump := flag.String("dump", "", "Dump sampled channels as PNG: pixel, opacity or alpha")
	dumpSize := flag.Int("dumpsize", 256, "Edge of the dump grid in pixels")
	out := flag.String("o", "", "Dump output path (default: <stem>_<mode>.png)")
	thumb := flag.String("thumb", "", "Write a thumbnail PNG to this path")
	thumbSize := flag.Int("thumbsize", 128, "Thumbnail edge in pixels")
	verbose := flag.Bool("v", false, "Verbose texture logging")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Usage: texinfo [flags] <texture file or URL>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	src := flag.Arg(0)

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	tex := texture.New(src, *linear, texture.DefaultRegistry(), log)
	bm := tex.Bitmap() // forces the decode

	fmt.Printf("Source:      %s\n", tex.Source())
	fmt.Printf("Container:   %s\n", containerType(src))
	if tex.Loaded() {
		fmt.Println("Decoded:     yes")
	} else {
		fmt.Println("Decoded:     no (black fallback)")
	}
	fmt.Printf("Dimensions:  %dx%d\n", bm.Width(), bm.Height())
	fmt.Printf("Transparent: %v\n", tex.Transparent())

	exit := 0

	if *dump != "" {
		path := *out
		if path == "" {
			path = stem(src) + "_" + *dump + ".png"
		}
		if err := writeDump(tex, *dump, *dumpSize, path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit = 1
		} else {
			fmt.Printf("Dump:        %s\n", path)
		}
	}

	if *thumb != "" {
		if err := writeThumb(bm, *thumbSize, *thumb); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit = 1
		} else {
			fmt.Printf("Thumbnail:   %s\n", *thumb)
		}
	}

	os.Exit(exit)
}

// containerType sniffs the on-disk container with magic numbers, which can
// disagree with the extension the decoder was picked by.
func containerType(src string) string {
	if strings.Contains(src, "://") {
		return "unknown (remote source)"
	}
	f, err := os.Open(src)
	if err != nil {
		return "unknown"
	}
	defer f.Close()

	head := make([]byte, 261)
	n, _ := io.ReadFull(f, head)
	kind, err := filetype.Match(head[:n])
	if err != nil || kind == filetype.Unknown {
		return "unknown"
	}
	return fmt.Sprintf("%s (%s)", kind.Extension, kind.MIME.Value)
}

// writeDump re-samples the texture on an n-by-n grid through the same
// entry points the renderer uses and writes the result as PNG.
func writeDump(tex *texture.Texture, mode string, n int, path string) error {
	switch mode {
	case "pixel", "opacity", "alpha":
	default:
		return fmt.Errorf("unknown dump mode %q (want pixel, opacity or alpha)", mode)
	}

	img := image.NewNRGBA(image.Rect(0, 0, n, n))
	for py := 0; py < n; py++ {
		v := (float32(py) + 0.5) / float32(n)
		for px := 0; px < n; px++ {
			u := (float32(px) + 0.5) / float32(n)

			var r, g, b uint8
			switch mode {
			case "opacity":
				c := tex.Opacity(u, v)
				r, g, b = quant(c.R), quant(c.G), quant(c.B)
			case "alpha":
				a := tex.OpacityAlpha(u, v)
				r, g, b = quant(a), quant(a), quant(a)
			default:
				c := tex.Pixel(u, v)
				r, g, b = quant(c.R), quant(c.G), quant(c.B)
			}

			i := img.PixOffset(px, py)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 255
		}
	}
	return writePNG(path, img)
}

func writeThumb(bm bitmap.Bitmap, size int, path string) error {
	rgba, ok := bm.(*bitmap.RGBA8)
	if !ok {
		return fmt.Errorf("no decoded bitmap to thumbnail")
	}
	img := transform.Resize(rgba.Image(), size, size, transform.Linear)
	return writePNG(path, img)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func quant(v float32) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(v*255 + 0.5)
}

func stem(src string) string {
	base := filepath.Base(strings.ReplaceAll(src, "\\", "/"))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
