package style

// Patch is a partial BannerStyle. A nil field is absent and leaves the
// corresponding style field untouched; a non-nil field replaces it entirely.
type Patch struct {
	Text          *string    `json:"text,omitempty" toml:"text,omitempty"`
	FontFamily    *string    `json:"fontFamily,omitempty" toml:"font_family,omitempty"`
	FontSize      *float64   `json:"fontSize,omitempty" toml:"font_size,omitempty"`
	Color         *string    `json:"color,omitempty" toml:"color,omitempty"`
	TextAlign     *TextAlign `json:"textAlign,omitempty" toml:"text_align,omitempty"`
	LetterSpacing *float64   `json:"letterSpacing,omitempty" toml:"letter_spacing,omitempty"`
	LineHeight    *float64   `json:"lineHeight,omitempty" toml:"line_height,omitempty"`

	ShadowEnabled *bool    `json:"shadowEnabled,omitempty" toml:"shadow_enabled,omitempty"`
	ShadowX       *float64 `json:"shadowX,omitempty" toml:"shadow_x,omitempty"`
	ShadowY       *float64 `json:"shadowY,omitempty" toml:"shadow_y,omitempty"`
	ShadowBlur    *float64 `json:"shadowBlur,omitempty" toml:"shadow_blur,omitempty"`
	ShadowColor   *string  `json:"shadowColor,omitempty" toml:"shadow_color,omitempty"`

	BackgroundType  *BackgroundType `json:"backgroundType,omitempty" toml:"background_type,omitempty"`
	BackgroundValue *string         `json:"backgroundValue,omitempty" toml:"background_value,omitempty"`
	BackgroundColor *string         `json:"backgroundColor,omitempty" toml:"background_color,omitempty"`
}

// Ptr returns a pointer to v. It keeps patch literals short:
//
//	style.Patch{FontSize: style.Ptr(72.0)}
func Ptr[T any](v T) *T { return &v }

// Apply merges p into current and returns the result.
//
// Apply performs no validation: out-of-range sizes and malformed colors pass
// through unchanged. Clamping is the job of the input control.
func Apply(current BannerStyle, p Patch) BannerStyle {
	next := current
	set(&next.Text, p.Text)
	set(&next.FontFamily, p.FontFamily)
	set(&next.FontSize, p.FontSize)
	set(&next.Color, p.Color)
	set(&next.TextAlign, p.TextAlign)
	set(&next.LetterSpacing, p.LetterSpacing)
	set(&next.LineHeight, p.LineHeight)
	set(&next.ShadowEnabled, p.ShadowEnabled)
	set(&next.ShadowX, p.ShadowX)
	set(&next.ShadowY, p.ShadowY)
	set(&next.ShadowBlur, p.ShadowBlur)
	set(&next.ShadowColor, p.ShadowColor)
	set(&next.BackgroundType, p.BackgroundType)
	set(&next.BackgroundValue, p.BackgroundValue)
	set(&next.BackgroundColor, p.BackgroundColor)
	return next
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// Merge returns a patch holding the fields of p overlaid with the fields of q.
func (p Patch) Merge(q Patch) Patch {
	out := p
	setPtr(&out.Text, q.Text)
	setPtr(&out.FontFamily, q.FontFamily)
	setPtr(&out.FontSize, q.FontSize)
	setPtr(&out.Color, q.Color)
	setPtr(&out.TextAlign, q.TextAlign)
	setPtr(&out.LetterSpacing, q.LetterSpacing)
	setPtr(&out.LineHeight, q.LineHeight)
	setPtr(&out.ShadowEnabled, q.ShadowEnabled)
	setPtr(&out.ShadowX, q.ShadowX)
	setPtr(&out.ShadowY, q.ShadowY)
	setPtr(&out.ShadowBlur, q.ShadowBlur)
	setPtr(&out.ShadowColor, q.ShadowColor)
	setPtr(&out.BackgroundType, q.BackgroundType)
	setPtr(&out.BackgroundValue, q.BackgroundValue)
	setPtr(&out.BackgroundColor, q.BackgroundColor)
	return out
}

func setPtr[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// Fields returns the JSON names of the fields present in p, in declaration order.
func (p Patch) Fields() []string {
	var names []string
	add := func(present bool, name string) {
		if present {
			names = append(names, name)
		}
	}
	add(p.Text != nil, "text")
	add(p.FontFamily != nil, "fontFamily")
	add(p.FontSize != nil, "fontSize")
	add(p.Color != nil, "color")
	add(p.TextAlign != nil, "textAlign")
	add(p.LetterSpacing != nil, "letterSpacing")
	add(p.LineHeight != nil, "lineHeight")
	add(p.ShadowEnabled != nil, "shadowEnabled")
	add(p.ShadowX != nil, "shadowX")
	add(p.ShadowY != nil, "shadowY")
	add(p.ShadowBlur != nil, "shadowBlur")
	add(p.ShadowColor != nil, "shadowColor")
	add(p.BackgroundType != nil, "backgroundType")
	add(p.BackgroundValue != nil, "backgroundValue")
	add(p.BackgroundColor != nil, "backgroundColor")
	return names
}

// IsEmpty reports whether p names no fields.
func (p Patch) IsEmpty() bool {
	return len(p.Fields()) == 0
}

// GradientPatch switches the background to the given CSS gradient.
func GradientPatch(value string) Patch {
	return Patch{
		BackgroundType:  Ptr(BackgroundGradient),
		BackgroundValue: Ptr(value),
	}
}

// PatternPatch switches the background to the named tiling pattern.
func PatternPatch(key string) Patch {
	return Patch{
		BackgroundType:  Ptr(BackgroundPattern),
		BackgroundValue: Ptr(key),
	}
}

// SolidPatch switches the background to a flat color. The color is written to
// both BackgroundColor and BackgroundValue.
func SolidPatch(color string) Patch {
	return Patch{
		BackgroundType:  Ptr(BackgroundSolid),
		BackgroundColor: Ptr(color),
		BackgroundValue: Ptr(color),
	}
}

// ImagePatch switches the background to a custom image given as a data URI.
func ImagePatch(dataURI string) Patch {
	return Patch{
		BackgroundType:  Ptr(BackgroundCustom),
		BackgroundValue: Ptr(dataURI),
	}
}
