package raster

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matball-renderer/internal/colorf"
	"matball-renderer/internal/material"
	"matball-renderer/internal/mathutil"
	"matball-renderer/internal/texture"
)

func solidMaterial(c colorf.RGB) *material.Material {
	return &material.Material{Name: "solid", Color: c}
}

func texturedMaterial(t *testing.T, img image.Image) *material.Material {
	t.Helper()
	path := filepath.Join(t.TempDir(), "diffuse.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cache := texture.NewCache(texture.DefaultRegistry(), nil, nil)
	return &material.Material{Name: "textured", Diffuse: cache.Texture(path, false)}
}

func pixelAt(fb *FrameBuffer, x, y int) (r, g, b, a uint8) {
	i := (y*fb.Width + x) * 4
	return fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2], fb.Pix[i+3]
}

func TestRenderSphereCoverage(t *testing.T) {
	fb := RenderPreview(solidMaterial(colorf.RGB{R: 0.8, G: 0.2, B: 0.2}), Options{
		Size:  64,
		Shape: ShapeSphere,
		Light: DefaultLightConfig(),
	})

	// Center is on the ball and lit; corners stay transparent.
	_, _, _, a := pixelAt(fb, 32, 32)
	assert.EqualValues(t, 255, a)
	r, _, _, _ := pixelAt(fb, 32, 32)
	assert.Greater(t, r, uint8(0))

	for _, p := range [][2]int{{0, 0}, {63, 0}, {0, 63}, {63, 63}} {
		_, _, _, a := pixelAt(fb, p[0], p[1])
		assert.EqualValues(t, 0, a, "corner (%d, %d)", p[0], p[1])
	}
}

func TestRenderSphereShadingVaries(t *testing.T) {
	fb := RenderPreview(solidMaterial(colorf.RGB{R: 0.5, G: 0.5, B: 0.5}), Options{
		Size:  64,
		Shape: ShapeSphere,
		Light: DefaultLightConfig(),
	})

	// The key light sits upper-left, so the upper half outshines the
	// lower half on a gray ball.
	upper, _, _, _ := pixelAt(fb, 24, 16)
	lower, _, _, _ := pixelAt(fb, 24, 48)
	assert.NotEqual(t, upper, lower)
}

func TestRenderPlaneChecker(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 0, 255})
	img.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 255})

	fb := RenderPreview(texturedMaterial(t, img), Options{
		Size:  4,
		Shape: ShapePlane,
		Tiles: 1,
		Light: DefaultLightConfig(),
	})

	// A flat plane has uniform shading, so brightness follows the
	// texture: near the white texel vs. near the black one.
	bright, _, _, aBright := pixelAt(fb, 0, 0)
	dark, _, _, aDark := pixelAt(fb, 3, 0)
	assert.Greater(t, bright, dark)
	assert.EqualValues(t, 255, aBright)
	assert.EqualValues(t, 255, aDark)
}

func TestRenderPlaneDiffuseAlpha(t *testing.T) {
	// A diffuse texture with holes drives per-pixel coverage.
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{255, 0, 0, 0})

	fb := RenderPreview(texturedMaterial(t, img), Options{
		Size:  8,
		Shape: ShapePlane,
		Tiles: 1,
		Light: DefaultLightConfig(),
	})

	_, _, _, left := pixelAt(fb, 0, 0)
	_, _, _, right := pixelAt(fb, 7, 0)
	assert.Greater(t, left, right)
	assert.Less(t, right, uint8(128))
}

func TestRenderPlaneOpacityMask(t *testing.T) {
	// An explicit mask wins over the opaque diffuse.
	diffuse := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	diffuse.SetNRGBA(0, 0, color.NRGBA{0, 255, 0, 255})

	mask := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	mask.SetNRGBA(0, 0, color.NRGBA{255, 255, 255, 64})

	dir := t.TempDir()
	for name, img := range map[string]*image.NRGBA{"d.png": diffuse, "m.png": mask} {
		f, err := os.Create(filepath.Join(dir, name))
		require.NoError(t, err)
		require.NoError(t, png.Encode(f, img))
		require.NoError(t, f.Close())
	}

	cache := texture.NewCache(texture.DefaultRegistry(), nil, nil)
	mat := &material.Material{
		Name:    "masked",
		Diffuse: cache.Texture(filepath.Join(dir, "d.png"), false),
		Opacity: cache.Texture(filepath.Join(dir, "m.png"), false),
	}

	fb := RenderPreview(mat, Options{Size: 4, Shape: ShapePlane, Light: DefaultLightConfig()})
	_, _, _, a := pixelAt(fb, 2, 2)
	assert.EqualValues(t, 64, a)
}

func TestComputeShade(t *testing.T) {
	lc := DefaultLightConfig()

	facing := lc.ComputeShade(mathutil.Vec3{0, 0, 1})
	assert.Greater(t, facing, lc.Ambient, "facing normal must pick up fill light")

	// Different normals shade differently.
	side := lc.ComputeShade(mathutil.Vec3{1, 0, 0})
	assert.NotEqual(t, facing, side)
}

func TestACESTonemap(t *testing.T) {
	assert.InDelta(t, 0, ACESTonemap(0), 1e-6)
	assert.InDelta(t, 0.8038, ACESTonemap(1), 1e-3)

	// Monotonic and bounded for highlights.
	prev := float32(0)
	for _, x := range []float32{0.1, 0.5, 1, 2, 4, 8} {
		v := ACESTonemap(x)
		assert.Greater(t, v, prev)
		prev = v
	}
	assert.Less(t, prev, float32(1.04))
}

func TestTonemapClamps(t *testing.T) {
	lc := DefaultLightConfig()

	c := lc.Tonemap(colorf.RGB{R: 50, G: 0.5, B: 0})
	assert.EqualValues(t, 1, c.R)
	assert.Greater(t, c.G, float32(0))
	assert.Less(t, c.G, float32(1))
	assert.EqualValues(t, 0, c.B)
}

func TestFrameBufferToNRGBA(t *testing.T) {
	fb := NewFrameBuffer(2, 2)
	fb.SetRGBA(1, 0, 10, 20, 30, 40)

	img := fb.ToNRGBA()
	assert.Equal(t, color.NRGBA{10, 20, 30, 40}, img.NRGBAAt(1, 0))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 0))
}

func TestParseShape(t *testing.T) {
	s, ok := ParseShape("")
	assert.True(t, ok)
	assert.Equal(t, ShapeSphere, s)

	s, ok = ParseShape("plane")
	assert.True(t, ok)
	assert.Equal(t, ShapePlane, s)

	_, ok = ParseShape("torus")
	assert.False(t, ok)
}
