package style

// TextAlign is the horizontal alignment of the text block.
type TextAlign string

// Text alignments.
const (
	AlignLeft   TextAlign = "left"
	AlignCenter TextAlign = "center"
	AlignRight  TextAlign = "right"
)

// BackgroundType discriminates how BackgroundValue is interpreted.
//
// Consumers must branch on the type before reading BackgroundValue. Values
// outside the known set are representable and are painted as solid.
type BackgroundType string

// Background types.
const (
	BackgroundGradient BackgroundType = "gradient"
	BackgroundSolid    BackgroundType = "solid"
	BackgroundCustom   BackgroundType = "custom"
	BackgroundPattern  BackgroundType = "pattern"
	BackgroundTemplate BackgroundType = "template"
)

// BackgroundTypes lists the known background types in display order.
var BackgroundTypes = []BackgroundType{
	BackgroundGradient,
	BackgroundPattern,
	BackgroundSolid,
	BackgroundCustom,
	BackgroundTemplate,
}

// BannerStyle describes everything needed to render one banner.
//
// BannerStyle is a value type. Updates never mutate a style in place; they
// produce a new value through [Apply].
type BannerStyle struct {
	Text          string    `json:"text" toml:"text"`
	FontFamily    string    `json:"fontFamily" toml:"font_family"`
	FontSize      float64   `json:"fontSize" toml:"font_size"`
	Color         string    `json:"color" toml:"color"`
	TextAlign     TextAlign `json:"textAlign" toml:"text_align"`
	LetterSpacing float64   `json:"letterSpacing" toml:"letter_spacing"`
	LineHeight    float64   `json:"lineHeight" toml:"line_height"`

	ShadowEnabled bool    `json:"shadowEnabled" toml:"shadow_enabled"`
	ShadowX       float64 `json:"shadowX" toml:"shadow_x"`
	ShadowY       float64 `json:"shadowY" toml:"shadow_y"`
	ShadowBlur    float64 `json:"shadowBlur" toml:"shadow_blur"`
	ShadowColor   string  `json:"shadowColor" toml:"shadow_color"`

	BackgroundType  BackgroundType `json:"backgroundType" toml:"background_type"`
	BackgroundValue string         `json:"backgroundValue" toml:"background_value"`
	BackgroundColor string         `json:"backgroundColor" toml:"background_color"`
}

// Defaults used when a session starts.
const (
	DefaultText            = "Your banner text here"
	DefaultFontFamily      = "Go"
	DefaultFontSize        = 64.0
	DefaultColor           = "#ffffff"
	DefaultLineHeight      = 1.4
	DefaultGradient        = "linear-gradient(135deg, #667eea 0%, #764ba2 100%)"
	DefaultBackgroundColor = "#667eea"
	DefaultShadowColor     = "rgba(0, 0, 0, 0.5)"
)

// Default returns the style a new session starts with.
func Default() BannerStyle {
	return BannerStyle{
		Text:            DefaultText,
		FontFamily:      DefaultFontFamily,
		FontSize:        DefaultFontSize,
		Color:           DefaultColor,
		TextAlign:       AlignCenter,
		LetterSpacing:   0,
		LineHeight:      DefaultLineHeight,
		ShadowEnabled:   false,
		ShadowX:         2,
		ShadowY:         2,
		ShadowBlur:      4,
		ShadowColor:     DefaultShadowColor,
		BackgroundType:  BackgroundGradient,
		BackgroundValue: DefaultGradient,
		BackgroundColor: DefaultBackgroundColor,
	}
}

// With returns a copy of s with the fields named in p replaced.
func (s BannerStyle) With(p Patch) BannerStyle {
	return Apply(s, p)
}

// IsKnownBackground reports whether t is one of the known background types.
func IsKnownBackground(t BackgroundType) bool {
	for _, k := range BackgroundTypes {
		if k == t {
			return true
		}
	}
	return false
}

// ParseAlign converts s to a TextAlign. Unknown values report false.
func ParseAlign(s string) (TextAlign, bool) {
	switch TextAlign(s) {
	case AlignLeft, AlignCenter, AlignRight:
		return TextAlign(s), true
	}
	return "", false
}
