package render

import (
	"github.com/matzehuels/bannersmith/pkg/background"
	"github.com/matzehuels/bannersmith/pkg/style"
)

// Tree is the visual tree of one banner at design resolution. It is the
// single source both the live preview and every export sink draw from.
type Tree struct {
	Width      float64          `json:"width"`
	Height     float64          `json:"height"`
	Background background.Paint `json:"background"`
	Text       TextBlock        `json:"text"`
}

// TextBlock is the laid-out text of a banner.
type TextBlock struct {
	// Content is the text as displayed, before wrapping.
	Content     string `json:"content"`
	Placeholder bool   `json:"placeholder,omitempty"`

	Family        string          `json:"family"`
	Size          float64         `json:"size"`
	Color         string          `json:"color"`
	Align         style.TextAlign `json:"align"`
	LetterSpacing float64         `json:"letterSpacing"`
	LineHeight    float64         `json:"lineHeight"`

	// Box is the text block rectangle. Lines may overflow it vertically.
	Box   Rect   `json:"box"`
	Lines []Line `json:"lines"`

	Shadow *Shadow `json:"shadow,omitempty"`
}

// Line is one wrapped line. X is the left edge of the ink box after
// alignment and Baseline is the y of the alphabetic baseline.
type Line struct {
	Text     string  `json:"text"`
	X        float64 `json:"x"`
	Baseline float64 `json:"baseline"`
	Width    float64 `json:"width"`
}

// Shadow is a drop shadow applied to the text.
type Shadow struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Blur  float64 `json:"blur"`
	Color string  `json:"color"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// TextContent returns the text content of the tree as a DOM would report it.
// A placeholder counts as content.
func (t *Tree) TextContent() string {
	if t == nil {
		return ""
	}
	return t.Text.Content
}
