package material

import "fmt"

// IssueLevel represents severity of a validation issue.
type IssueLevel string

const (
	// IssueError marks a definition that cannot render as written.
	IssueError IssueLevel = "error"
	// IssueWarning marks a definition that renders but probably not as
	// intended.
	IssueWarning IssueLevel = "warning"
)

// Issue represents one finding from material validation.
type Issue struct {
	Level    IssueLevel `json:"level" yaml:"level"`
	Code     string     `json:"code,omitempty" yaml:"code,omitempty"`
	Message  string     `json:"message" yaml:"message"`
	Material string     `json:"material,omitempty" yaml:"material,omitempty"`
}

var knownModifierTypes = map[string]struct{}{
	"bump":      {},
	"normalmap": {},
}

// Validate checks material definitions for mistakes that would otherwise
// fail soft or silently at render time.
func Validate(defs []Definition) []Issue {
	var out []Issue

	seen := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		if def.Name == "" {
			out = append(out, Issue{Level: IssueError, Code: "no_name", Message: "material without a name"})
		} else if _, ok := seen[def.Name]; ok {
			out = append(out, Issue{Level: IssueError, Code: "duplicate_name", Message: "duplicate material name", Material: def.Name})
		} else {
			seen[def.Name] = struct{}{}
		}

		out = append(out, validateDefinition(def)...)
	}
	return out
}

func validateDefinition(def Definition) []Issue {
	var out []Issue

	if def.Diffuse.Texture == "" && def.Diffuse.Color == nil {
		out = append(out, Issue{Level: IssueWarning, Code: "no_diffuse", Message: "neither diffuse texture nor color set, default gray is used", Material: def.Name})
	}
	if def.Diffuse.Texture != "" && def.Diffuse.Color != nil {
		out = append(out, Issue{Level: IssueWarning, Code: "diffuse_conflict", Message: "diffuse texture and color both set, color is ignored", Material: def.Name})
	}
	if def.Diffuse.Color != nil {
		for _, v := range def.Diffuse.Color {
			if v < 0 || v > 1 {
				out = append(out, Issue{Level: IssueError, Code: "color_range", Message: "diffuse color components must be in [0, 1]", Material: def.Name})
				break
			}
		}
	}

	for _, md := range def.Modifiers {
		if _, ok := knownModifierTypes[md.Type]; !ok {
			out = append(out, Issue{Level: IssueError, Code: "unknown_modifier", Message: fmt.Sprintf("unknown modifier type %q", md.Type), Material: def.Name})
			continue
		}
		if md.Texture == "" {
			out = append(out, Issue{Level: IssueError, Code: "modifier_no_texture", Message: md.Type + " modifier without a texture is dropped", Material: def.Name})
		}
		if md.Type == "normalmap" && md.Scale != nil {
			out = append(out, Issue{Level: IssueWarning, Code: "scale_ignored", Message: "normalmap ignores scale", Material: def.Name})
		}
		if md.Type == "bump" && md.Scale != nil && *md.Scale == 0 {
			out = append(out, Issue{Level: IssueWarning, Code: "zero_scale", Message: "bump scale 0 flattens the effect", Material: def.Name})
		}
	}
	return out
}
