// Package background resolves the background sub-state of a banner style
// into a concrete paint.
//
// [Resolve] is total: every combination of background type and value,
// including types outside the known set, maps to exactly one [Paint].
// Unknown types and unknown pattern keys fall back to the solid
// BackgroundColor.
package background

import (
	"fmt"
	"strings"

	"github.com/matzehuels/bannersmith/pkg/style"
)

// Kind is the kind of paint a background resolves to.
type Kind string

const (
	KindSolid    Kind = "solid"
	KindGradient Kind = "gradient"
	KindImage    Kind = "image"
	KindPattern  Kind = "pattern"
)

// Image placement applied to custom backgrounds.
const (
	SizeCover      = "cover"
	PositionCenter = "center"
)

// Paint is a resolved background. Only the fields relevant to Kind are set.
type Paint struct {
	Kind Kind `json:"kind"`

	// Color is the flat fill for KindSolid.
	Color string `json:"color,omitempty"`

	// Gradient is the CSS background shorthand for KindGradient, passed
	// through unmodified.
	Gradient string `json:"gradient,omitempty"`

	// Image is the image source for KindImage, placed per Size and Position.
	Image    string `json:"image,omitempty"`
	Size     string `json:"size,omitempty"`
	Position string `json:"position,omitempty"`

	// Pattern is set for KindPattern.
	Pattern *Pattern `json:"pattern,omitempty"`
}

// Resolve maps the background fields of s to a Paint.
func Resolve(s style.BannerStyle) Paint {
	switch s.BackgroundType {
	case style.BackgroundGradient, style.BackgroundTemplate:
		return Paint{Kind: KindGradient, Gradient: s.BackgroundValue}
	case style.BackgroundCustom:
		return Paint{
			Kind:     KindImage,
			Image:    s.BackgroundValue,
			Size:     SizeCover,
			Position: PositionCenter,
		}
	case style.BackgroundPattern:
		if p, ok := LookupPattern(s.BackgroundValue); ok {
			return Paint{Kind: KindPattern, Pattern: &p}
		}
	}
	return Paint{Kind: KindSolid, Color: s.BackgroundColor}
}

// CSS renders p as CSS declarations, one per line.
func (p Paint) CSS() string {
	var b strings.Builder
	switch p.Kind {
	case KindGradient:
		fmt.Fprintf(&b, "background: %s;", p.Gradient)
	case KindImage:
		fmt.Fprintf(&b, "background-image: url(%s);\n", p.Image)
		fmt.Fprintf(&b, "background-size: %s;\n", p.Size)
		fmt.Fprintf(&b, "background-position: %s;", p.Position)
	case KindPattern:
		fmt.Fprintf(&b, "background-color: %s;\n", p.Pattern.BackgroundColor)
		fmt.Fprintf(&b, "background-image: %s;\n", p.Pattern.Image())
		fmt.Fprintf(&b, "background-size: %gpx %gpx;", p.Pattern.TileSize, p.Pattern.TileSize)
	default:
		fmt.Fprintf(&b, "background-color: %s;", p.Color)
	}
	return b.String()
}

// String returns a short description of p for logs.
func (p Paint) String() string {
	switch p.Kind {
	case KindGradient:
		return "gradient " + p.Gradient
	case KindImage:
		if len(p.Image) > 32 {
			return "image " + p.Image[:32] + "..."
		}
		return "image " + p.Image
	case KindPattern:
		return "pattern " + p.Pattern.Key
	}
	return "solid " + p.Color
}
