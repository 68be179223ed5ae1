package raster

import (
	"math"

	"github.com/chewxy/math32"

	"matball-renderer/internal/material"
	"matball-renderer/internal/mathutil"
	"matball-renderer/internal/shading"
)

// Shape selects the preview geometry.
type Shape int

const (
	// ShapeSphere is the classic material ball: an orthographic sphere
	// with spherical UVs.
	ShapeSphere Shape = iota
	// ShapePlane is a camera-facing quad that tiles the texture.
	ShapePlane
)

// ParseShape maps a config string to a Shape; the empty string means
// sphere. The second result reports whether the name was recognized.
func ParseShape(s string) (Shape, bool) {
	switch s {
	case "", "sphere":
		return ShapeSphere, true
	case "plane":
		return ShapePlane, true
	}
	return ShapeSphere, false
}

// Options control one preview render.
type Options struct {
	Size  int // square edge in pixels
	Shape Shape
	Tiles float32 // plane mode: texture repeats across the quad
	Light LightConfig
}

// sphereRadius is the ball size in normalized device coordinates, leaving
// a margin around the silhouette.
const sphereRadius = 0.92

// RenderPreview shades one material onto the preview shape. Pixels off the
// geometry stay fully transparent.
func RenderPreview(mat *material.Material, opts Options) *FrameBuffer {
	fb := NewFrameBuffer(opts.Size, opts.Size)
	switch opts.Shape {
	case ShapePlane:
		renderPlane(fb, mat, &opts)
	default:
		renderSphere(fb, mat, &opts)
	}
	return fb
}

func renderSphere(fb *FrameBuffer, mat *material.Material, opts *Options) {
	size := float32(opts.Size)
	up := mathutil.Vec3{0, 1, 0}

	for py := 0; py < opts.Size; py++ {
		ny := 1 - 2*(float32(py)+0.5)/size
		for px := 0; px < opts.Size; px++ {
			nx := 2*(float32(px)+0.5)/size - 1
			rr := nx*nx + ny*ny
			if rr > sphereRadius*sphereRadius {
				continue
			}
			nz := math32.Sqrt(sphereRadius*sphereRadius - rr)
			n := mathutil.Vec3{nx, ny, nz}.Scale(1 / sphereRadius)

			// Spherical UVs, seam at the back.
			u := 0.5 + math32.Atan2(n[0], n[2])/(2*math.Pi)
			v := 0.5 - math32.Asin(n[1])/math.Pi

			st := shading.State{
				U:      u,
				V:      v,
				Point:  mathutil.Vec3{nx, ny, nz},
				Normal: n,
				Basis:  sphereBasis(n, up),
			}
			shadePixel(fb, px, py, mat, &st, &opts.Light)
		}
	}
}

// sphereBasis aligns the tangent frame with the spherical UV mapping; near
// the poles the east tangent degenerates and a generic frame takes over.
func sphereBasis(n, up mathutil.Vec3) mathutil.OrthoNormalBasis {
	if math32.Abs(n[1]) > 0.999 {
		return mathutil.MakeBasisFromW(n)
	}
	return mathutil.MakeBasisFromWV(n, up)
}

func renderPlane(fb *FrameBuffer, mat *material.Material, opts *Options) {
	size := float32(opts.Size)
	tiles := opts.Tiles
	if tiles <= 0 {
		tiles = 1
	}
	basis := mathutil.OrthoNormalBasis{
		U: mathutil.Vec3{1, 0, 0},
		V: mathutil.Vec3{0, 1, 0},
		W: mathutil.Vec3{0, 0, 1},
	}

	for py := 0; py < opts.Size; py++ {
		v := tiles * (float32(py) + 0.5) / size
		for px := 0; px < opts.Size; px++ {
			st := shading.State{
				U:      tiles * (float32(px) + 0.5) / size,
				V:      v,
				Normal: basis.W,
				Basis:  basis,
			}
			shadePixel(fb, px, py, mat, &st, &opts.Light)
		}
	}
}

func shadePixel(fb *FrameBuffer, px, py int, mat *material.Material, st *shading.State, lc *LightConfig) {
	for _, mod := range mat.Modifiers {
		mod.Modify(st)
	}

	base := mat.Color
	if mat.Diffuse != nil {
		base = mat.Diffuse.Pixel(st.U, st.V)
	}
	shade := lc.ComputeShade(st.Normal)
	c := lc.Tonemap(base.Scale(shade))

	a := coverageAt(mat, st.U, st.V)
	fb.SetRGBA(px, py,
		uint8(c.R*255+0.5),
		uint8(c.G*255+0.5),
		uint8(c.B*255+0.5),
		uint8(a*255+0.5))
}

// coverageAt returns the sample's alpha: the dedicated opacity mask when
// the material has one, else the diffuse texture's own alpha when it
// carries transparency, else fully opaque.
func coverageAt(mat *material.Material, u, v float32) float32 {
	switch {
	case mat.Opacity != nil:
		return mat.Opacity.OpacityAlpha(u, v)
	case mat.Diffuse != nil && mat.Diffuse.Transparent():
		return mat.Diffuse.OpacityAlpha(u, v)
	default:
		return 1
	}
}
