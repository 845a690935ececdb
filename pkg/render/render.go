package render

import (
	"unicode/utf8"

	"github.com/matzehuels/bannersmith/pkg/background"
	"github.com/matzehuels/bannersmith/pkg/style"
)

// Design resolution and text block geometry.
const (
	DefaultWidth        = 1920
	DefaultHeight       = 1080
	DefaultPadding      = 48
	DefaultMaxTextWidth = 896
)

// Measurer measures text for wrapping and baseline placement.
// *fonts.Registry implements it.
type Measurer interface {
	// Advance returns the advance width in px of s set in family at size.
	Advance(family string, size float64, s string) float64
	// Metrics returns the ascent and descent in px of family at size.
	Metrics(family string, size float64) (ascent, descent float64)
}

// Options configures Render.
type Options struct {
	Width  float64
	Height float64
	// Padding insets the text area from the canvas edges. Zero selects
	// DefaultPadding; a negative value disables padding.
	Padding      float64
	MaxTextWidth float64

	// Placeholder is displayed when the style text is empty.
	Placeholder string

	// Measurer defaults to an average-advance approximation.
	Measurer Measurer
}

func (o *Options) setDefaults() {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Height <= 0 {
		o.Height = DefaultHeight
	}
	if o.Padding < 0 {
		o.Padding = 0
	} else if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.MaxTextWidth <= 0 {
		o.MaxTextWidth = DefaultMaxTextWidth
	}
	if o.Measurer == nil {
		o.Measurer = approxMeasurer{}
	}
}

// Render derives the visual tree of s. It is pure and synchronous; calling
// it twice with the same inputs yields equal trees.
func Render(s style.BannerStyle, opts Options) *Tree {
	opts.setDefaults()

	content, placeholder := s.Text, false
	if content == "" {
		content, placeholder = opts.Placeholder, true
	}

	blockW := min(opts.MaxTextWidth, opts.Width-2*opts.Padding)
	if blockW < 0 {
		blockW = 0
	}

	m := spacedMeasurer{Measurer: opts.Measurer, family: s.FontFamily, size: s.FontSize, spacing: s.LetterSpacing}
	wrapped := wrap(content, blockW, m)

	lineBox := s.FontSize * s.LineHeight
	blockH := lineBox * float64(len(wrapped))
	box := Rect{
		X: (opts.Width - blockW) / 2,
		Y: (opts.Height - blockH) / 2,
		W: blockW,
		H: blockH,
	}

	ascent, descent := opts.Measurer.Metrics(s.FontFamily, s.FontSize)
	halfLeading := (lineBox - (ascent + descent)) / 2

	lines := make([]Line, len(wrapped))
	for i, text := range wrapped {
		w := m.width(text)
		lines[i] = Line{
			Text:     text,
			X:        alignX(s.TextAlign, box, w),
			Baseline: box.Y + float64(i)*lineBox + halfLeading + ascent,
			Width:    w,
		}
	}

	t := &Tree{
		Width:      opts.Width,
		Height:     opts.Height,
		Background: background.Resolve(s),
		Text: TextBlock{
			Content:       content,
			Placeholder:   placeholder,
			Family:        s.FontFamily,
			Size:          s.FontSize,
			Color:         s.Color,
			Align:         s.TextAlign,
			LetterSpacing: s.LetterSpacing,
			LineHeight:    s.LineHeight,
			Box:           box,
			Lines:         lines,
		},
	}
	if s.ShadowEnabled {
		t.Text.Shadow = &Shadow{X: s.ShadowX, Y: s.ShadowY, Blur: s.ShadowBlur, Color: s.ShadowColor}
	}
	return t
}

func alignX(a style.TextAlign, box Rect, w float64) float64 {
	switch a {
	case style.AlignLeft:
		return box.X
	case style.AlignRight:
		return box.X + box.W - w
	}
	return box.X + (box.W-w)/2
}

// spacedMeasurer adds letter spacing after every character, as CSS does.
type spacedMeasurer struct {
	Measurer
	family  string
	size    float64
	spacing float64
}

func (m spacedMeasurer) width(s string) float64 {
	return m.Advance(m.family, m.size, s) + m.spacing*float64(utf8.RuneCountInString(s))
}

// approxMeasurer estimates text with a fixed average advance.
type approxMeasurer struct{}

func (approxMeasurer) Advance(_ string, size float64, s string) float64 {
	return 0.55 * size * float64(utf8.RuneCountInString(s))
}

func (approxMeasurer) Metrics(_ string, size float64) (float64, float64) {
	return 0.8 * size, 0.2 * size
}
