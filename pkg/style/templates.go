package style

// Suggested holds the text attributes a template recommends.
type Suggested struct {
	FontSize  float64   `json:"fontSize" toml:"font_size"`
	Color     string    `json:"color" toml:"color"`
	TextAlign TextAlign `json:"textAlign" toml:"text_align"`
}

// Template is a named, pre-baked partial style. Templates are read-only.
type Template struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Background string    `json:"background"` // CSS gradient expression
	Suggested  Suggested `json:"suggestedStyle"`
}

// Patch returns the patch that applies t over a style.
func (t Template) Patch() Patch {
	return TemplatePatch(t)
}

// TemplatePatch returns the patch that selecting t applies: the template
// background plus its suggested text attributes.
func TemplatePatch(t Template) Patch {
	return Patch{
		BackgroundType:  Ptr(BackgroundTemplate),
		BackgroundValue: Ptr(t.Background),
		FontSize:        Ptr(t.Suggested.FontSize),
		Color:           Ptr(t.Suggested.Color),
		TextAlign:       Ptr(t.Suggested.TextAlign),
	}
}

var templates = []Template{
	{
		ID:         "template-1",
		Name:       "Sunset Gradient",
		Background: "linear-gradient(135deg, #667eea 0%, #764ba2 100%)",
		Suggested:  Suggested{FontSize: 72, Color: "#ffffff", TextAlign: AlignCenter},
	},
	{
		ID:         "template-2",
		Name:       "Ocean Blue",
		Background: "linear-gradient(135deg, #0093E9 0%, #80D0C7 100%)",
		Suggested:  Suggested{FontSize: 68, Color: "#ffffff", TextAlign: AlignCenter},
	},
	{
		ID:         "template-3",
		Name:       "Forest Green",
		Background: "linear-gradient(135deg, #134E5E 0%, #71B280 100%)",
		Suggested:  Suggested{FontSize: 70, Color: "#ffffff", TextAlign: AlignCenter},
	},
	{
		ID:         "template-4",
		Name:       "Warm Sunrise",
		Background: "linear-gradient(135deg, #F093FB 0%, #F5576C 100%)",
		Suggested:  Suggested{FontSize: 74, Color: "#ffffff", TextAlign: AlignCenter},
	},
	{
		ID:         "template-5",
		Name:       "Royal Purple",
		Background: "linear-gradient(135deg, #5B247A 0%, #1BCEDF 100%)",
		Suggested:  Suggested{FontSize: 66, Color: "#ffffff", TextAlign: AlignCenter},
	},
	{
		ID:         "template-6",
		Name:       "Golden Hour",
		Background: "linear-gradient(135deg, #F4C430 0%, #FF6B6B 100%)",
		Suggested:  Suggested{FontSize: 76, Color: "#1a1a1a", TextAlign: AlignCenter},
	},
}

// Templates returns a copy of the built-in templates.
func Templates() []Template {
	out := make([]Template, len(templates))
	copy(out, templates)
	return out
}

// FindTemplate looks up a built-in template by ID.
func FindTemplate(id string) (Template, bool) {
	for _, t := range templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// GradientPreset is a named gradient offered by the gradient picker.
type GradientPreset struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

var gradientPresets = []GradientPreset{
	{Name: "Purple Dream", Value: "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"},
	{Name: "Ocean", Value: "linear-gradient(135deg, #0093E9 0%, #80D0C7 100%)"},
	{Name: "Sunset", Value: "linear-gradient(135deg, #F4C430 0%, #FF6B6B 100%)"},
	{Name: "Forest", Value: "linear-gradient(135deg, #134E5E 0%, #71B280 100%)"},
	{Name: "Pink Bliss", Value: "linear-gradient(135deg, #F093FB 0%, #F5576C 100%)"},
	{Name: "Cool Sky", Value: "linear-gradient(135deg, #5B247A 0%, #1BCEDF 100%)"},
}

// GradientPresets returns a copy of the built-in gradient presets.
func GradientPresets() []GradientPreset {
	out := make([]GradientPreset, len(gradientPresets))
	copy(out, gradientPresets)
	return out
}
