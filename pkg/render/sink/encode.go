package sink

import (
	"bytes"
	"image"
	"image/color"

	"github.com/disintegration/imaging"

	"github.com/matzehuels/bannersmith/pkg/render"
)

// RenderPNG renders the tree as PNG at the configured scale.
func RenderPNG(t *render.Tree, opts ...RasterOption) ([]byte, error) {
	r, err := newRasterRenderer(opts...)
	if err != nil {
		return nil, err
	}
	img, err := r.paint(t)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderJPEG renders the tree as JPEG. Transparent areas are flattened onto
// white since JPEG has no alpha channel.
func RenderJPEG(t *render.Tree, opts ...RasterOption) ([]byte, error) {
	r, err := newRasterRenderer(opts...)
	if err != nil {
		return nil, err
	}
	img, err := r.paint(t)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(r.quality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
