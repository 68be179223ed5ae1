// Package shading carries per-sample state through the modifier chain and
// implements the modifiers that rewrite it before lighting runs.
package shading

import (
	"matball-renderer/internal/mathutil"
	"matball-renderer/internal/texture"
)

// State is everything a modifier may read or rewrite for one shading
// sample: the surface UV, the shading normal and the tangent frame built
// around it.
type State struct {
	U, V   float32
	Point  mathutil.Vec3
	Normal mathutil.Vec3
	Basis  mathutil.OrthoNormalBasis
}

// Modifier adjusts shading state in place, once per sample.
type Modifier interface {
	Modify(state *State)
}

// TextureSource hands out shared texture instances by name. The texture
// cache implements it; tests substitute their own.
type TextureSource interface {
	Texture(name string, linear bool) *texture.Texture
}

// Params configures a modifier from a material definition. Zero values
// leave the corresponding setting untouched.
type Params struct {
	Texture string
	Scale   *float32
}
