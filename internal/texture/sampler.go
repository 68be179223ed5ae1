package texture

import "github.com/chewxy/math32"

// texelBlend holds the four wrapped texel indices and blend weights of one
// filtered lookup. The 00 texel is the lower-left of the cell, 11 its
// wrapped diagonal neighbor.
type texelBlend struct {
	ix0, iy0, ix1, iy1 int
	k00, k01, k10, k11 float32
}

// blendAt computes a tiled lookup at (x, y). Coordinates wrap via their
// fractional part, the continuous range spans [0, w-1], and the +1
// neighbors wrap modulo the size so the last column and row blend with the
// first. The cell offsets are smoothstep-eased before the bilinear weights
// are built, which keeps the filter continuous across texel centers.
func blendAt(w, h int, x, y float32) texelBlend {
	// Wrap into [0, 1) floor-style, so the int conversions below stay in
	// range for any finite coordinate; converting a float beyond the int
	// range is unspecified. NaN lands on the origin.
	x -= math32.Floor(x)
	if math32.IsNaN(x) {
		x = 0
	}
	y -= math32.Floor(y)
	if math32.IsNaN(y) {
		y = 0
	}

	dx := x * float32(w-1)
	dy := y * float32(h-1)
	ix0 := int(dx)
	iy0 := int(dy)

	u := dx - float32(ix0)
	v := dy - float32(iy0)
	u = u * u * (3 - 2*u)
	v = v * v * (3 - 2*v)

	return texelBlend{
		ix0: ix0,
		iy0: iy0,
		ix1: (ix0 + 1) % w,
		iy1: (iy0 + 1) % h,
		k00: (1 - u) * (1 - v),
		k01: (1 - u) * v,
		k10: u * (1 - v),
		k11: u * v,
	}
}
