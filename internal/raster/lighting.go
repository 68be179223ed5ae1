package raster

import (
	"github.com/chewxy/math32"

	"matball-renderer/internal/colorf"
	"matball-renderer/internal/mathutil"
)

// LightConfig holds precomputed lighting parameters for the preview
// shading.
type LightConfig struct {
	LightDir mathutil.Vec3
	RimDir   mathutil.Vec3
	ViewDir  mathutil.Vec3
	HalfMain mathutil.Vec3 // precomputed half-vector for Blinn-Phong
	Ambient  float32
	Hemi     float32
	Direct   float32
	Rim      float32
	SpecInt  float32
	SpecPow  float32
	Exposure float32
	InvGamma float32
}

// DefaultLightConfig returns a three-light studio setup: key from the
// upper left, cool rim from behind, hemisphere fill.
func DefaultLightConfig() LightConfig {
	lightDir := mathutil.Vec3{180, 260, 140}.Normalize()
	rimDir := mathutil.Vec3{-160, 130, -210}.Normalize()
	viewDir := mathutil.Vec3{0, -110, -400}.Normalize()

	halfMain := lightDir.Sub(viewDir).Normalize()

	return LightConfig{
		LightDir: lightDir,
		RimDir:   rimDir,
		ViewDir:  viewDir,
		HalfMain: halfMain,
		Ambient:  0.55,
		Hemi:     0.50,
		Direct:   1.50,
		Rim:      0.60,
		SpecInt:  0.45,
		SpecPow:  12.0,
		Exposure: 1.05,
		InvGamma: 1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a shading normal.
func (lc *LightConfig) ComputeShade(normal mathutil.Vec3) float32 {
	// Lambertian (abs for double-sided)
	ndlMain := math32.Abs(normal.Dot(lc.LightDir))
	ndlRim := math32.Abs(normal.Dot(lc.RimDir))

	// Hemisphere fill
	hemi := (1.0-math32.Abs(normal[1]))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	// Blinn-Phong specular
	ndh := normal.Dot(lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math32.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + spec
}

// ACESTonemap applies the ACES filmic curve to a linear value.
func ACESTonemap(x float32) float32 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// Tonemap maps a linear shaded color to display space: exposure, ACES
// filmic curve, then gamma encode. Channels clamp to [0, 1].
func (lc *LightConfig) Tonemap(c colorf.RGB) colorf.RGB {
	return colorf.RGB{
		R: lc.encode(c.R),
		G: lc.encode(c.G),
		B: lc.encode(c.B),
	}
}

func (lc *LightConfig) encode(v float32) float32 {
	v = ACESTonemap(v * lc.Exposure)
	if v <= 0 {
		return 0
	}
	v = math32.Pow(v, lc.InvGamma)
	if v > 1 {
		return 1
	}
	return v
}
