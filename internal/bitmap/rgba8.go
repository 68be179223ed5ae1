package bitmap

import (
	"image"
	"image/draw"

	"github.com/chewxy/math32"

	"matball-renderer/internal/colorf"
)

// Channel lookup tables, one entry per stored byte value. Color channels of
// sRGB-authored textures go through the 2.2 gamma curve; linear data
// (height fields, normal maps) and alpha use the identity ramp.
var (
	srgbToLinear [256]float32
	linearRamp   [256]float32
)

func init() {
	for i := range srgbToLinear {
		srgbToLinear[i] = math32.Pow(float32(i)/255, 2.2)
		linearRamp[i] = float32(i) / 255
	}
}

// RGBA8 is a byte-backed bitmap in non-premultiplied RGBA layout. Color
// reads go through a per-channel lookup table, so sampling does no
// conversion math beyond the blend itself.
type RGBA8 struct {
	w, h int
	pix  []uint8 // NRGBA interleaved, len = w*h*4
	lut  *[256]float32
}

// FromImage copies a decoded image into an RGBA8 buffer. When linear is
// set the stored channels are taken as linear light and the gamma
// conversion is skipped.
func FromImage(src image.Image, linear bool) *RGBA8 {
	n := toNRGBA(src)
	b := &RGBA8{
		w:   n.Rect.Dx(),
		h:   n.Rect.Dy(),
		pix: n.Pix,
		lut: &srgbToLinear,
	}
	if linear {
		b.lut = &linearRamp
	}
	return b
}

func (b *RGBA8) Width() int  { return b.w }
func (b *RGBA8) Height() int { return b.h }

func (b *RGBA8) ColorAt(x, y int) colorf.RGB {
	i := (y*b.w + x) * 4
	return colorf.RGB{
		R: b.lut[b.pix[i]],
		G: b.lut[b.pix[i+1]],
		B: b.lut[b.pix[i+2]],
	}
}

func (b *RGBA8) AlphaAt(x, y int) float32 {
	return linearRamp[b.pix[(y*b.w+x)*4+3]]
}

// Image copies the stored bytes back into an image, for tools that
// re-encode or resize the decoded pixels.
func (b *RGBA8) Image() *image.NRGBA {
	n := image.NewNRGBA(image.Rect(0, 0, b.w, b.h))
	copy(n.Pix, b.pix)
	return n
}

// toNRGBA converts any decoded image to non-premultiplied RGBA with a
// zero-origin, tightly packed pixel slice.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok && n.Rect.Min == (image.Point{}) && n.Stride == 4*n.Rect.Dx() {
		return n
	}
	r := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, r.Dx(), r.Dy()))
	draw.Draw(dst, dst.Rect, src, r.Min, draw.Src)
	return dst
}
