package fonts

import (
	"context"
	"fmt"

	tdfont "github.com/tdewolff/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
)

// Format is a font file format, named by its file extension.
type Format string

const (
	FormatTTF   Format = "ttf"
	FormatOTF   Format = "otf"
	FormatWOFF  Format = "woff"
	FormatWOFF2 Format = "woff2"
)

// ValidFormats lists the accepted upload formats.
var ValidFormats = map[Format]bool{
	FormatTTF:   true,
	FormatOTF:   true,
	FormatWOFF:  true,
	FormatWOFF2: true,
}

// Loader makes an uploaded face available for measurement and painting.
//
// Load must not return until the face is usable: a nil error is the
// readiness signal. Implementations should give up when ctx is done.
type Loader interface {
	Load(ctx context.Context, family string, format Format, data []byte) (*opentype.Font, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, family string, format Format, data []byte) (*opentype.Font, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, family string, format Format, data []byte) (*opentype.Font, error) {
	return f(ctx, family, format, data)
}

// probeText exercises glyph lookup for Latin and Bengali text.
const probeText = "Hello বাংলা"

// OpenTypeLoader parses TrueType and OpenType data in process. WOFF and WOFF2
// uploads are first converted to SFNT.
type OpenTypeLoader struct{}

// Load implements Loader.
func (OpenTypeLoader) Load(ctx context.Context, family string, format Format, data []byte) (*opentype.Font, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sfnt := data
	if format == FormatWOFF || format == FormatWOFF2 {
		converted, err := tdfont.ToSFNT(data)
		if err != nil {
			return nil, fmt.Errorf("convert %s: %w", format, err)
		}
		sfnt = converted
	}

	f, err := opentype.Parse(sfnt)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// A face that cannot be built or measured is not ready.
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, fmt.Errorf("face: %w", err)
	}
	defer face.Close()
	if font.MeasureString(face, probeText) <= 0 {
		return nil, fmt.Errorf("face %q has no usable glyphs", family)
	}
	return f, nil
}
