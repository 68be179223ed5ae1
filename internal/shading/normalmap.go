package shading

import (
	"matball-renderer/internal/mathutil"
	"matball-renderer/internal/texture"
)

// NormalMap replaces the shading normal with one decoded from a
// tangent-space normal texture.
type NormalMap struct {
	tex *texture.Texture
}

func NewNormalMap() *NormalMap {
	return &NormalMap{}
}

// Update configures the modifier; the normal texture is fetched in linear
// space so its channels are not gamma-bent. It reports whether the
// modifier is active.
func (m *NormalMap) Update(p Params, src TextureSource) bool {
	if p.Texture != "" {
		m.tex = src.Texture(p.Texture, true)
	}
	return m.tex != nil
}

func (m *NormalMap) Modify(state *State) {
	state.Normal = m.tex.Normal(state.U, state.V, state.Basis)
	state.Basis = mathutil.MakeBasisFromW(state.Normal)
}
