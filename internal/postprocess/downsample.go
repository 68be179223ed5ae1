package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales a rendered frame down to target x target with
// Catmull-Rom filtering over premultiplied alpha. Filtering straight alpha
// would bleed the transparent black background into the silhouette and
// draw a dark halo around it. Frames already at or under the target pass
// through unchanged.
func Downsample(img *image.NRGBA, target int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= target && b.Dy() <= target {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, target, target))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premultiply(img), b, draw.Src, nil)
	return unpremultiply(dst)
}

func premultiply(img *image.NRGBA) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := uint32(img.Pix[si+3])
			out.Pix[di] = uint8((uint32(img.Pix[si])*a + 127) / 255)
			out.Pix[di+1] = uint8((uint32(img.Pix[si+1])*a + 127) / 255)
			out.Pix[di+2] = uint8((uint32(img.Pix[si+2])*a + 127) / 255)
			out.Pix[di+3] = uint8(a)
		}
	}
	return out
}

func unpremultiply(img *image.RGBA) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := out.PixOffset(x, y)
			a := uint32(img.Pix[si+3])
			if a > 0 {
				out.Pix[di] = clamp8(uint32(img.Pix[si]) * 255 / a)
				out.Pix[di+1] = clamp8(uint32(img.Pix[si+1]) * 255 / a)
				out.Pix[di+2] = clamp8(uint32(img.Pix[si+2]) * 255 / a)
			}
			out.Pix[di+3] = uint8(a)
		}
	}
	return out
}

func clamp8(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}
