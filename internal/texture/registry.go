package texture

import (
	"image/jpeg"
	"image/png"
	"strings"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"matball-renderer/internal/bitmap"
)

// Registry maps file extensions to bitmap decoders. Hosts populate it once
// at startup; after that lookups never mutate it, so a built registry is
// safe to share across goroutines.
type Registry struct {
	decoders map[string]bitmap.Decoder
}

func NewRegistry() *Registry {
	return &Registry{decoders: make(map[string]bitmap.Decoder)}
}

// Register binds an extension (without the dot, case-insensitive) to a
// decoder, replacing any previous binding.
func (r *Registry) Register(ext string, dec bitmap.Decoder) {
	r.decoders[strings.ToLower(ext)] = dec
}

// Lookup returns the decoder bound to an extension, or nil.
func (r *Registry) Lookup(ext string) bitmap.Decoder {
	return r.decoders[strings.ToLower(ext)]
}

// DefaultRegistry wires the built-in container formats.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register("png", bitmap.ImageDecoder{Fn: png.Decode})
	r.Register("jpg", bitmap.ImageDecoder{Fn: jpeg.Decode})
	r.Register("jpeg", bitmap.ImageDecoder{Fn: jpeg.Decode})
	r.Register("tga", bitmap.ImageDecoder{Fn: tga.Decode})
	r.Register("bmp", bitmap.ImageDecoder{Fn: bmp.Decode})
	r.Register("tif", bitmap.ImageDecoder{Fn: tiff.Decode})
	r.Register("tiff", bitmap.ImageDecoder{Fn: tiff.Decode})
	return r
}
