package shading

import (
	"matball-renderer/internal/mathutil"
	"matball-renderer/internal/texture"
)

// BumpMapping perturbs the shading normal with the luminance gradient of a
// height texture.
type BumpMapping struct {
	tex   *texture.Texture
	scale float32
}

func NewBumpMapping() *BumpMapping {
	return &BumpMapping{scale: 1}
}

// Update configures the modifier. The height texture is fetched in linear
// space; an absent scale keeps the previous value. It reports whether the
// modifier is active — callers must not invoke Modify after a false return.
func (m *BumpMapping) Update(p Params, src TextureSource) bool {
	if p.Texture != "" {
		m.tex = src.Texture(p.Texture, true)
	}
	if p.Scale != nil {
		m.scale = *p.Scale
	}
	return m.tex != nil
}

// Modify replaces the state's normal with the bump-perturbed one and
// rebuilds the tangent frame around it.
func (m *BumpMapping) Modify(state *State) {
	state.Normal = m.tex.Bump(state.U, state.V, state.Basis, m.scale)
	state.Basis = mathutil.MakeBasisFromW(state.Normal)
}
