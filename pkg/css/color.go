package css

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/gorilla/css/scanner"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/matzehuels/bannersmith/pkg/errors"
)

// Transparent is the CSS "transparent" keyword.
var Transparent = color.NRGBA{}

// ParseColor parses a CSS color value.
//
// Supported forms are hex (#rgb, #rgba, #rrggbb, #rrggbbaa), the rgb() and
// rgba() functions in both comma and space syntax, named colors and the
// transparent keyword. Matching is case-insensitive.
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "empty color")
	case v == "transparent":
		return Transparent, nil
	case strings.HasPrefix(v, "#"):
		return parseHex(v)
	case strings.HasPrefix(v, "rgb"):
		return parseRGBFunc(v)
	}
	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "unknown color %q", s)
}

// MustParseColor is like ParseColor but falls back to fallback on error.
func MustParseColor(s string, fallback color.NRGBA) color.NRGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}

func parseHex(v string) (color.NRGBA, error) {
	var alpha uint8 = 255
	switch len(v) {
	case 4, 7:
	case 5:
		a, err := strconv.ParseUint(v[4:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid hex color %q", v)
		}
		alpha = uint8(a * 17)
		v = v[:4]
	case 9:
		a, err := strconv.ParseUint(v[7:], 16, 8)
		if err != nil {
			return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid hex color %q", v)
		}
		alpha = uint8(a)
		v = v[:7]
	default:
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid hex color %q", v)
	}

	c, err := colorful.Hex(v)
	if err != nil {
		return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid hex color %q", v)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha}, nil
}

func parseRGBFunc(v string) (color.NRGBA, error) {
	toks := tokenize(v)
	if len(toks) == 0 || toks[0].Type != scanner.TokenFunction {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q", v)
	}
	name := strings.TrimSuffix(toks[0].Value, "(")
	if name != "rgb" && name != "rgba" {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "unsupported color function %q", name)
	}

	args, rest, err := functionArgs(toks[1:])
	if err != nil || len(rest) != 0 {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q", v)
	}

	var comps []*scanner.Token
	for _, arg := range args {
		for _, t := range arg {
			if t.Type == scanner.TokenChar && t.Value == "/" {
				continue
			}
			comps = append(comps, t)
		}
	}
	if len(comps) != 3 && len(comps) != 4 {
		return color.NRGBA{}, errors.New(errors.ErrCodeInvalidInput, "color %q needs 3 or 4 components", v)
	}

	var ch [3]uint8
	for i := 0; i < 3; i++ {
		f, err := channel(comps[i])
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", v)
		}
		ch[i] = f
	}
	alpha := uint8(255)
	if len(comps) == 4 {
		a, err := alphaValue(comps[3])
		if err != nil {
			return color.NRGBA{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", v)
		}
		alpha = a
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: alpha}, nil
}

func channel(t *scanner.Token) (uint8, error) {
	switch t.Type {
	case scanner.TokenNumber:
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return 0, err
		}
		return clampByte(f), nil
	case scanner.TokenPercentage:
		f, err := strconv.ParseFloat(strings.TrimSuffix(t.Value, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(f * 255 / 100), nil
	}
	return 0, fmt.Errorf("unexpected %q", t.Value)
}

func alphaValue(t *scanner.Token) (uint8, error) {
	switch t.Type {
	case scanner.TokenNumber:
		f, err := strconv.ParseFloat(t.Value, 64)
		if err != nil {
			return 0, err
		}
		return clampByte(f * 255), nil
	case scanner.TokenPercentage:
		f, err := strconv.ParseFloat(strings.TrimSuffix(t.Value, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(f * 255 / 100), nil
	}
	return 0, fmt.Errorf("unexpected %q", t.Value)
}

func clampByte(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, f))))
}

// Hex formats c as #rrggbb, dropping alpha.
func Hex(c color.NRGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Opacity returns the alpha of c in [0, 1].
func Opacity(c color.NRGBA) float64 {
	return float64(c.A) / 255
}
