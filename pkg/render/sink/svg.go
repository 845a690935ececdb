package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"github.com/matzehuels/bannersmith/pkg/background"
	"github.com/matzehuels/bannersmith/pkg/css"
	"github.com/matzehuels/bannersmith/pkg/fonts"
	"github.com/matzehuels/bannersmith/pkg/render"
)

// FontSource resolves font families for embedding and painting.
// *fonts.Registry implements it.
type FontSource interface {
	ResolveOrFallback(family string) fonts.Handle
}

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	scale float64
	fonts FontSource
}

// WithSVGScale sets the factor applied to the width and height attributes.
// The viewBox stays at design resolution.
func WithSVGScale(s float64) SVGOption {
	return func(r *svgRenderer) { r.scale = s }
}

// WithSVGFonts embeds the text face as an @font-face data URI so the file
// renders the same without the font installed.
func WithSVGFonts(src FontSource) SVGOption {
	return func(r *svgRenderer) { r.fonts = src }
}

// RenderSVG serializes the tree as a standalone SVG document.
func RenderSVG(t *render.Tree, opts ...SVGOption) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("svg: nil tree")
	}
	r := svgRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 {
		return nil, fmt.Errorf("svg: invalid scale %v", r.scale)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(t.Width), num(t.Height), num(t.Width*r.scale), num(t.Height*r.scale))

	buf.WriteString("  <defs>\n")
	family := r.renderFontFace(&buf, t.Text.Family)
	renderBackgroundDefs(&buf, t)
	renderShadowDefs(&buf, t.Text.Shadow)
	buf.WriteString("  </defs>\n")

	renderBackground(&buf, t)
	renderText(&buf, t.Text, family)

	buf.WriteString("</svg>\n")
	return buf.Bytes(), nil
}

// renderFontFace embeds the face for family and returns the name the text
// should reference.
func (r *svgRenderer) renderFontFace(buf *bytes.Buffer, family string) string {
	if r.fonts == nil {
		return family
	}
	h := r.fonts.ResolveOrFallback(family)
	if h.URL == "" {
		return family
	}
	fmt.Fprintf(buf, "    <style>@font-face { font-family: '%s'; src: url('%s') format('%s'); }</style>\n",
		escapeXML(h.Family), h.URL, cssFontFormat(h.Format))
	return h.Family
}

func cssFontFormat(f fonts.Format) string {
	switch f {
	case fonts.FormatOTF:
		return "opentype"
	case fonts.FormatWOFF:
		return "woff"
	case fonts.FormatWOFF2:
		return "woff2"
	}
	return "truetype"
}

func renderBackgroundDefs(buf *bytes.Buffer, t *render.Tree) {
	switch t.Background.Kind {
	case background.KindGradient:
		g, err := css.ParseLinearGradient(t.Background.Gradient)
		if err != nil {
			return
		}
		x1, y1, x2, y2 := g.Line(t.Width, t.Height)
		fmt.Fprintf(buf, `    <linearGradient id="bg-gradient" gradientUnits="userSpaceOnUse" x1="%s" y1="%s" x2="%s" y2="%s">`+"\n",
			num(x1), num(y1), num(x2), num(y2))
		for _, s := range g.Stops {
			fmt.Fprintf(buf, `      <stop offset="%s" stop-color="%s"%s/>`+"\n",
				num(s.Offset), css.Hex(s.Color), opacityAttr("stop-opacity", s.Color))
		}
		buf.WriteString("    </linearGradient>\n")

	case background.KindPattern:
		p := t.Background.Pattern
		fmt.Fprintf(buf, `    <pattern id="bg-pattern" patternUnits="userSpaceOnUse" width="%s" height="%s">`+"\n",
			num(p.TileSize), num(p.TileSize))
		for _, l := range p.Layers {
			c := css.MustParseColor(l.Color, css.Transparent)
			fill := fmt.Sprintf(`fill="%s"%s`, css.Hex(c), opacityAttr("fill-opacity", c))
			switch l.Kind {
			case background.LayerDot:
				fmt.Fprintf(buf, `      <circle cx="%s" cy="%s" r="%s" %s/>`+"\n",
					num(p.TileSize/2), num(p.TileSize/2), num(l.Size), fill)
			case background.LayerHLine:
				fmt.Fprintf(buf, `      <rect x="0" y="0" width="%s" height="%s" %s/>`+"\n",
					num(p.TileSize), num(l.Size), fill)
			case background.LayerVLine:
				fmt.Fprintf(buf, `      <rect x="0" y="0" width="%s" height="%s" %s/>`+"\n",
					num(l.Size), num(p.TileSize), fill)
			}
		}
		buf.WriteString("    </pattern>\n")
	}
}

func renderShadowDefs(buf *bytes.Buffer, s *render.Shadow) {
	if s == nil {
		return
	}
	c := css.MustParseColor(s.Color, color.NRGBA{A: 128})
	fmt.Fprintf(buf, `    <filter id="text-shadow" x="-50%%" y="-50%%" width="200%%" height="200%%">`+"\n")
	fmt.Fprintf(buf, `      <feDropShadow dx="%s" dy="%s" stdDeviation="%s" flood-color="%s" flood-opacity="%s"/>`+"\n",
		num(s.X), num(s.Y), num(s.Blur/2), css.Hex(c), num(css.Opacity(c)))
	buf.WriteString("    </filter>\n")
}

func renderBackground(buf *bytes.Buffer, t *render.Tree) {
	w, h := num(t.Width), num(t.Height)
	bg := t.Background
	switch bg.Kind {
	case background.KindGradient:
		if _, err := css.ParseLinearGradient(bg.Gradient); err != nil {
			return
		}
		fmt.Fprintf(buf, `  <rect width="%s" height="%s" fill="url(#bg-gradient)"/>`+"\n", w, h)
	case background.KindImage:
		fmt.Fprintf(buf, `  <image href="%s" x="0" y="0" width="%s" height="%s" preserveAspectRatio="xMidYMid slice"/>`+"\n",
			escapeXML(bg.Image), w, h)
	case background.KindPattern:
		c := css.MustParseColor(bg.Pattern.BackgroundColor, css.Transparent)
		fmt.Fprintf(buf, `  <rect width="%s" height="%s" fill="%s"%s/>`+"\n", w, h, css.Hex(c), opacityAttr("fill-opacity", c))
		fmt.Fprintf(buf, `  <rect width="%s" height="%s" fill="url(#bg-pattern)"/>`+"\n", w, h)
	default:
		c, err := css.ParseColor(bg.Color)
		if err != nil {
			return
		}
		fmt.Fprintf(buf, `  <rect width="%s" height="%s" fill="%s"%s/>`+"\n", w, h, css.Hex(c), opacityAttr("fill-opacity", c))
	}
}

func renderText(buf *bytes.Buffer, tb render.TextBlock, family string) {
	c := css.MustParseColor(tb.Color, color.NRGBA{A: 255})

	fmt.Fprintf(buf, `  <g font-family="'%s'" font-size="%s" fill="%s"%s`,
		escapeXML(family), num(tb.Size), css.Hex(c), opacityAttr("fill-opacity", c))
	if tb.LetterSpacing != 0 {
		fmt.Fprintf(buf, ` letter-spacing="%s"`, num(tb.LetterSpacing))
	}
	if tb.Shadow != nil {
		buf.WriteString(` filter="url(#text-shadow)"`)
	}
	buf.WriteString(">\n")

	for _, l := range tb.Lines {
		if l.Text == "" {
			continue
		}
		fmt.Fprintf(buf, `    <text x="%s" y="%s" xml:space="preserve">%s</text>`+"\n",
			num(l.X), num(l.Baseline), escapeXML(l.Text))
	}
	buf.WriteString("  </g>\n")
}

func opacityAttr(name string, c color.NRGBA) string {
	if c.A == 255 {
		return ""
	}
	return fmt.Sprintf(` %s="%s"`, name, num(css.Opacity(c)))
}

// num formats v compactly with at most two decimals.
func num(v float64) string {
	r := math.Round(v*100) / 100
	if r == 0 {
		r = 0 // normalizes -0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
