// Package bitmap holds decoded texture pixels: the read-only Bitmap
// interface, the byte-backed buffer behind it, and the container decoders
// that produce one from a file or URL.
package bitmap

import "matball-renderer/internal/colorf"

// Bitmap is a decoded width x height texel grid. Implementations are
// immutable after construction and safe for concurrent reads.
type Bitmap interface {
	Width() int
	Height() int
	// ColorAt returns the linear-light color of the texel at (x, y).
	ColorAt(x, y int) colorf.RGB
	// AlphaAt returns the texel's coverage in [0, 1].
	AlphaAt(x, y int) float32
}

// Black is the fallback bitmap substituted when a texture cannot be
// decoded: a single black, fully transparent texel. Sampling it always
// succeeds, so a broken texture path degrades to flat black instead of
// taking the render down.
type Black struct{}

func (Black) Width() int                  { return 1 }
func (Black) Height() int                 { return 1 }
func (Black) ColorAt(x, y int) colorf.RGB { return colorf.Black }
func (Black) AlphaAt(x, y int) float32    { return 0 }
