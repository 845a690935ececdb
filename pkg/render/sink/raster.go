package sink

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"math"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	// Registers WebP with image.Decode for uploaded backgrounds.
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/bannersmith/pkg/background"
	"github.com/matzehuels/bannersmith/pkg/css"
	"github.com/matzehuels/bannersmith/pkg/fonts"
	"github.com/matzehuels/bannersmith/pkg/render"
)

// DefaultJPEGQuality is the quality used for lossy exports.
const DefaultJPEGQuality = 95

// RasterOption configures raster rendering.
type RasterOption func(*rasterRenderer)

type rasterRenderer struct {
	scale   float64
	fonts   FontSource
	quality int
}

// WithScale sets the pixel ratio (default 1). Output dimensions are the
// design resolution times the scale.
func WithScale(s float64) RasterOption {
	return func(r *rasterRenderer) { r.scale = s }
}

// WithFonts sets the source of font faces. The default resolves built-in
// families only.
func WithFonts(src FontSource) RasterOption {
	return func(r *rasterRenderer) { r.fonts = src }
}

// WithJPEGQuality sets the JPEG quality (1-100).
func WithJPEGQuality(q int) RasterOption {
	return func(r *rasterRenderer) { r.quality = q }
}

func newRasterRenderer(opts ...RasterOption) (rasterRenderer, error) {
	r := rasterRenderer{scale: 1, quality: DefaultJPEGQuality}
	for _, opt := range opts {
		opt(&r)
	}
	if r.scale <= 0 || math.IsNaN(r.scale) || math.IsInf(r.scale, 0) {
		return r, fmt.Errorf("raster: invalid scale %v", r.scale)
	}
	if r.quality < 1 || r.quality > 100 {
		return r, fmt.Errorf("raster: invalid jpeg quality %d", r.quality)
	}
	if r.fonts == nil {
		r.fonts = fonts.NewRegistry()
	}
	return r, nil
}

// RenderRaster paints the tree into an image of design size × scale.
func RenderRaster(t *render.Tree, opts ...RasterOption) (image.Image, error) {
	r, err := newRasterRenderer(opts...)
	if err != nil {
		return nil, err
	}
	return r.paint(t)
}

func (r rasterRenderer) paint(t *render.Tree) (image.Image, error) {
	if t == nil {
		return nil, fmt.Errorf("raster: nil tree")
	}
	w := int(math.Round(t.Width * r.scale))
	h := int(math.Round(t.Height * r.scale))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("raster: empty canvas %dx%d", w, h)
	}

	dc := gg.NewContext(w, h)
	if err := r.paintBackground(dc, t.Background, w, h); err != nil {
		return nil, err
	}
	if err := r.paintText(dc, t.Text, w, h); err != nil {
		return nil, err
	}
	return dc.Image(), nil
}

func (r rasterRenderer) paintBackground(dc *gg.Context, bg background.Paint, w, h int) error {
	fw, fh := float64(w), float64(h)
	switch bg.Kind {
	case background.KindGradient:
		g, err := css.ParseLinearGradient(bg.Gradient)
		if err != nil {
			// An unparseable background paints nothing, as in a browser.
			return nil
		}
		x0, y0, x1, y1 := g.Line(fw, fh)
		grad := gg.NewLinearGradient(x0, y0, x1, y1)
		for _, s := range g.Stops {
			grad.AddColorStop(s.Offset, s.Color)
		}
		dc.SetFillStyle(grad)
		dc.DrawRectangle(0, 0, fw, fh)
		dc.Fill()

	case background.KindImage:
		img, err := decodeImageSource(bg.Image)
		if err != nil {
			return err
		}
		dc.DrawImage(imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos), 0, 0)

	case background.KindPattern:
		r.paintPattern(dc, bg.Pattern, fw, fh)

	default:
		c, err := css.ParseColor(bg.Color)
		if err != nil {
			return nil
		}
		dc.SetColor(c)
		dc.DrawRectangle(0, 0, fw, fh)
		dc.Fill()
	}
	return nil
}

func (r rasterRenderer) paintPattern(dc *gg.Context, p *background.Pattern, w, h float64) {
	dc.SetColor(css.MustParseColor(p.BackgroundColor, css.Transparent))
	dc.DrawRectangle(0, 0, w, h)
	dc.Fill()

	tile := p.TileSize * r.scale
	if tile <= 0 {
		return
	}
	for _, l := range p.Layers {
		dc.SetColor(css.MustParseColor(l.Color, css.Transparent))
		size := l.Size * r.scale
		switch l.Kind {
		case background.LayerDot:
			for y := tile / 2; y < h+tile; y += tile {
				for x := tile / 2; x < w+tile; x += tile {
					dc.DrawCircle(x, y, size)
				}
			}
		case background.LayerHLine:
			for y := 0.0; y < h; y += tile {
				dc.DrawRectangle(0, y, w, size)
			}
		case background.LayerVLine:
			for x := 0.0; x < w; x += tile {
				dc.DrawRectangle(x, 0, size, h)
			}
		}
		dc.Fill()
	}
}

func (r rasterRenderer) paintText(dc *gg.Context, tb render.TextBlock, w, h int) error {
	handle := r.fonts.ResolveOrFallback(tb.Family)
	face, err := fonts.NewFace(handle.Font, tb.Size*r.scale)
	if err != nil {
		return err
	}
	defer face.Close()

	if tb.Shadow != nil {
		layer := gg.NewContext(w, h)
		layer.SetFontFace(face)
		layer.SetColor(css.MustParseColor(tb.Shadow.Color, color.NRGBA{A: 128}))
		r.drawLines(layer, tb, tb.Shadow.X*r.scale, tb.Shadow.Y*r.scale)
		shadow := imaging.Blur(layer.Image(), tb.Shadow.Blur*r.scale/2)
		dc.DrawImage(shadow, 0, 0)
	}

	dc.SetFontFace(face)
	dc.SetColor(css.MustParseColor(tb.Color, color.NRGBA{A: 255}))
	r.drawLines(dc, tb, 0, 0)
	return nil
}

func (r rasterRenderer) drawLines(dc *gg.Context, tb render.TextBlock, dx, dy float64) {
	spacing := tb.LetterSpacing * r.scale
	for _, l := range tb.Lines {
		x := l.X*r.scale + dx
		y := l.Baseline*r.scale + dy
		if spacing == 0 {
			dc.DrawString(l.Text, x, y)
			continue
		}
		for _, c := range l.Text {
			s := string(c)
			dc.DrawString(s, x, y)
			adv, _ := dc.MeasureString(s)
			x += adv + spacing
		}
	}
}

// decodeImageSource decodes a data URI into an image.
func decodeImageSource(src string) (image.Image, error) {
	data, err := decodeDataURI(src)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode background image: %w", err)
	}
	return img, nil
}

func decodeDataURI(src string) ([]byte, error) {
	if !strings.HasPrefix(src, "data:") {
		return nil, fmt.Errorf("unsupported image source %.32q: only data URIs can be rasterized", src)
	}
	meta, payload, ok := strings.Cut(src[len("data:"):], ",")
	if !ok {
		return nil, fmt.Errorf("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("malformed data URI: %w", err)
	}
	return []byte(s), nil
}
