package material

import (
	"matball-renderer/internal/colorf"
	"matball-renderer/internal/shading"
	"matball-renderer/internal/texture"
)

// Definition is one material entry from a materials file.
type Definition struct {
	Name      string        `yaml:"name"`
	Diffuse   DiffuseDef    `yaml:"diffuse"`
	Opacity   OpacityDef    `yaml:"opacity"`
	Modifiers []ModifierDef `yaml:"modifiers"`
}

// DiffuseDef sets the base color: a texture reference or a solid color.
type DiffuseDef struct {
	Texture string      `yaml:"texture"`
	Color   *[3]float32 `yaml:"color"`
}

// OpacityDef optionally overrides coverage with a dedicated mask texture.
type OpacityDef struct {
	Texture string `yaml:"texture"`
}

// ModifierDef configures one entry of the modifier chain.
type ModifierDef struct {
	Type    string   `yaml:"type"`
	Texture string   `yaml:"texture"`
	Scale   *float32 `yaml:"scale"`
}

// Material is a render-ready material: shared texture references plus the
// active modifier chain.
type Material struct {
	Name      string
	Diffuse   *texture.Texture // nil for solid-color materials
	Color     colorf.RGB
	Opacity   *texture.Texture // nil without an explicit mask
	Modifiers []shading.Modifier
}

// defaultColor is the base gray used when a definition sets neither a
// texture nor a color.
var defaultColor = colorf.RGB{R: 0.8, G: 0.8, B: 0.8}

// Build resolves a definition against a texture source. Texture references
// stay lazy: nothing is decoded here. Modifiers that fail to configure are
// dropped from the chain, so Modify is never called on an inactive one.
func Build(def Definition, src shading.TextureSource) *Material {
	m := &Material{Name: def.Name, Color: defaultColor}

	switch {
	case def.Diffuse.Texture != "":
		m.Diffuse = src.Texture(def.Diffuse.Texture, false)
	case def.Diffuse.Color != nil:
		c := *def.Diffuse.Color
		m.Color = colorf.RGB{R: c[0], G: c[1], B: c[2]}
	}
	if def.Opacity.Texture != "" {
		m.Opacity = src.Texture(def.Opacity.Texture, false)
	}

	for _, md := range def.Modifiers {
		p := shading.Params{Texture: md.Texture, Scale: md.Scale}
		var mod configurable
		switch md.Type {
		case "bump":
			mod = shading.NewBumpMapping()
		case "normalmap":
			mod = shading.NewNormalMap()
		default:
			continue
		}
		if mod.Update(p, src) {
			m.Modifiers = append(m.Modifiers, mod)
		}
	}
	return m
}

// configurable is the update half of the modifier lifecycle.
type configurable interface {
	shading.Modifier
	Update(p shading.Params, src shading.TextureSource) bool
}
