package raster

import "image"

// FrameBuffer holds the render target as one flat RGBA slice for cache
// locality in the pixel loop.
type FrameBuffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, len = W*H*4
}

// NewFrameBuffer allocates a zeroed (fully transparent) buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*4),
	}
}

// SetRGBA writes one pixel. Coordinates are not bounds-checked.
func (fb *FrameBuffer) SetRGBA(x, y int, r, g, b, a uint8) {
	i := (y*fb.Width + x) * 4
	fb.Pix[i] = r
	fb.Pix[i+1] = g
	fb.Pix[i+2] = b
	fb.Pix[i+3] = a
}

// ToNRGBA copies the buffer into an image for encoding.
func (fb *FrameBuffer) ToNRGBA() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Pix)
	return img
}
