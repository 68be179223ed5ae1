// Package texture provides lazily decoded 2D textures with tiled,
// smoothstep-filtered sampling, plus the registry, search index and cache
// around them. A Texture is created unloaded; the first sampling call
// decodes the source, and a failed decode pins a 1x1 transparent black
// fallback so every later lookup still answers.
package texture

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"matball-renderer/internal/bitmap"
	"matball-renderer/internal/colorf"
	"matball-renderer/internal/mathutil"
)

// Load states. A texture transitions away from unloaded exactly once and
// never returns, so the decode runs at most once per instance.
const (
	stateUnloaded int32 = iota
	stateLoaded
	stateFailed
)

// Opacity thresholds: filtered alpha below the floor reads as fully
// transparent, above the ceiling as fully opaque.
const (
	alphaFloor   = 0.005
	alphaCeiling = 0.995
)

// Texture is a lazily decoded 2D image sampled in tiled UV space. All
// methods are safe for concurrent use; concurrent first samples block until
// one of them has finished the decode.
type Texture struct {
	source string
	linear bool

	reg *Registry
	log *slog.Logger

	mu          sync.Mutex
	state       atomic.Int32
	pixels      bitmap.Bitmap
	transparent bool
}

// New creates an unloaded texture. Nothing is read until the first sampling
// call. The registry supplies decoders by extension; linear marks sources
// whose channels are already linear light. A nil logger silences load
// diagnostics.
func New(source string, linear bool, reg *Registry, log *slog.Logger) *Texture {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Texture{
		source: source,
		linear: linear,
		reg:    reg,
		log:    log.With("module", "tex"),
	}
}

// Source returns the path or URL the texture decodes from.
func (t *Texture) Source() string { return t.source }

func (t *Texture) ensureLoaded() {
	if t.state.Load() != stateUnloaded {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Load() != stateUnloaded {
		return
	}
	t.load()
}

// load runs the one-shot decode transition. Callers hold t.mu. The state
// store is the last write, so the lock-free fast path in ensureLoaded only
// observes a fully published bitmap.
func (t *Texture) load() {
	t.log.Info("reading texture bitmap", "source", t.source)

	dec := t.reg.Lookup(sourceExtension(t.source))
	if dec == nil {
		dec = t.sniffDecoder()
	}

	var pixels bitmap.Bitmap
	if dec != nil {
		decoded, err := dec.Decode(t.source, t.linear)
		switch {
		case errors.Is(err, bitmap.ErrFormat):
			t.log.Error("texture format error",
				"source", t.source,
				"ext", sourceExtension(t.source),
				"err", err)
		case err != nil:
			t.log.Error("texture read error", "source", t.source, "err", err)
		case decoded.Width() == 0 || decoded.Height() == 0:
			t.log.Error("texture decoded empty", "source", t.source)
		default:
			pixels = decoded
		}
	}

	if pixels == nil {
		t.log.Error("bitmap reading failed", "source", t.source)
		t.pixels = bitmap.Black{}
		t.state.Store(stateFailed)
		return
	}

	t.transparent = scanTransparency(pixels)
	t.log.Debug("texture bitmap ready",
		"source", t.source,
		"width", pixels.Width(),
		"height", pixels.Height(),
		"transparent", t.transparent)
	t.pixels = pixels
	t.state.Store(stateLoaded)
}

// sniffDecoder picks a decoder from the leading magic bytes when the source
// extension has no binding. JPEG streams open with 0xFF 0xD8; everything
// else is assumed PNG. Best effort: any error selects no decoder and the
// load falls through to the failure path.
func (t *Texture) sniffDecoder() bitmap.Decoder {
	rc, err := bitmap.Open(t.source)
	if err != nil {
		return nil
	}
	var magic [2]byte
	_, err = io.ReadFull(rc, magic[:])
	rc.Close()
	if err != nil {
		return nil
	}
	if magic[0] == 0xFF && magic[1] == 0xD8 {
		return t.reg.Lookup("jpg")
	}
	return t.reg.Lookup("png")
}

// sourceExtension returns the lowercased text after the final dot of the
// last path segment, or "" when there is none.
func sourceExtension(source string) string {
	base := source
	if i := strings.LastIndexAny(base, "/\\"); i >= 0 {
		base = base[i+1:]
	}
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return strings.ToLower(base[i+1:])
}

// scanTransparency reports whether any texel is not fully opaque.
func scanTransparency(bm bitmap.Bitmap) bool {
	for x := 0; x < bm.Width(); x++ {
		for y := 0; y < bm.Height(); y++ {
			if bm.AlphaAt(x, y) < 1 {
				return true
			}
		}
	}
	return false
}

// Bitmap returns the decoded texel grid, triggering the load on first use.
// After a failed load this is the fallback buffer, never nil.
func (t *Texture) Bitmap() bitmap.Bitmap {
	t.ensureLoaded()
	return t.pixels
}

// Loaded reports whether the decode succeeded. It triggers the load.
func (t *Texture) Loaded() bool {
	t.ensureLoaded()
	return t.state.Load() == stateLoaded
}

// Transparent reports whether any texel has alpha below 1. The scan ran
// once at load time; a texture on the fallback buffer reports false.
func (t *Texture) Transparent() bool {
	t.ensureLoaded()
	return t.transparent
}

// Pixel returns the filtered color at (x, y). The texture tiles the unit
// square in both directions.
func (t *Texture) Pixel(x, y float32) colorf.RGB {
	bm := t.Bitmap()
	tb := blendAt(bm.Width(), bm.Height(), x, y)
	c := bm.ColorAt(tb.ix0, tb.iy0).Scale(tb.k00)
	c = c.MAdd(tb.k01, bm.ColorAt(tb.ix0, tb.iy1))
	c = c.MAdd(tb.k10, bm.ColorAt(tb.ix1, tb.iy0))
	c = c.MAdd(tb.k11, bm.ColorAt(tb.ix1, tb.iy1))
	return c
}

// Opacity returns the coverage color at (x, y) for opacity-mask shading:
// black when the filtered alpha is under the transparency floor, white when
// over the opacity ceiling, and otherwise the complement of the
// alpha-weighted color blend.
func (t *Texture) Opacity(x, y float32) colorf.RGB {
	bm := t.Bitmap()
	tb := blendAt(bm.Width(), bm.Height(), x, y)

	a00 := bm.AlphaAt(tb.ix0, tb.iy0)
	a01 := bm.AlphaAt(tb.ix0, tb.iy1)
	a10 := bm.AlphaAt(tb.ix1, tb.iy0)
	a11 := bm.AlphaAt(tb.ix1, tb.iy1)

	alpha := tb.k00*a00 + tb.k01*a01 + tb.k10*a10 + tb.k11*a11
	if alpha < alphaFloor {
		return colorf.Black
	}
	if alpha > alphaCeiling {
		return colorf.White
	}

	c := bm.ColorAt(tb.ix0, tb.iy0).Scale(tb.k00 * (1 - a00))
	c = c.MAdd(tb.k01*(1-a01), bm.ColorAt(tb.ix0, tb.iy1))
	c = c.MAdd(tb.k10*(1-a10), bm.ColorAt(tb.ix1, tb.iy0))
	c = c.MAdd(tb.k11*(1-a11), bm.ColorAt(tb.ix1, tb.iy1))
	return c.Complement()
}

// OpacityAlpha returns the filtered alpha at (x, y) in [0, 1].
func (t *Texture) OpacityAlpha(x, y float32) float32 {
	bm := t.Bitmap()
	tb := blendAt(bm.Width(), bm.Height(), x, y)
	return tb.k00*bm.AlphaAt(tb.ix0, tb.iy0) +
		tb.k01*bm.AlphaAt(tb.ix0, tb.iy1) +
		tb.k10*bm.AlphaAt(tb.ix1, tb.iy0) +
		tb.k11*bm.AlphaAt(tb.ix1, tb.iy1)
}

// Normal derives a world-space normal from the color at (x, y): channels
// remap from [0, 1] to [-1, 1] and transform through the tangent frame.
func (t *Texture) Normal(x, y float32, basis mathutil.OrthoNormalBasis) mathutil.Vec3 {
	c := t.Pixel(x, y)
	return basis.Transform(mathutil.Vec3{
		2*c.R - 1,
		2*c.G - 1,
		2*c.B - 1,
	}).Normalize()
}

// Bump derives a perturbed normal from the luminance gradient around
// (x, y), stepping one texel in each direction and scaling the height
// differences.
func (t *Texture) Bump(x, y float32, basis mathutil.OrthoNormalBasis, scale float32) mathutil.Vec3 {
	bm := t.Bitmap()
	dx := 1 / float32(bm.Width())
	dy := 1 / float32(bm.Height())
	b0 := t.Pixel(x, y).Luminance()
	bx := t.Pixel(x+dx, y).Luminance()
	by := t.Pixel(x, y+dy).Luminance()
	return basis.Transform(mathutil.Vec3{
		scale * (b0 - bx),
		scale * (b0 - by),
		1,
	}).Normalize()
}
