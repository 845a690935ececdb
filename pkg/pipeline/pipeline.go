// Package pipeline turns a rendered banner into a downloadable file.
//
// The export pipeline validates the request, snapshots the [render.Tree],
// hands it to the matching sink and only then passes the finished
// [Artifact] to a [Downloader]. A failed export never produces a file.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache.NewMemoryCache(), nil, logger)
//	runner.Downloader = pipeline.NewDirDownloader(".")
//	art, err := runner.Export(ctx, tree, pipeline.Options{Format: "png", Scale: 2})
//	if errors.Is(err, errors.ErrCodeEmptyBanner) {
//	    // Ask the user to type something first
//	}
//	fmt.Println(art.Filename) // banner-1700000000000.png
//
// # Formats
//
// PNG and JPEG are rasterized in pure Go at scale × the design resolution;
// JPEG uses quality 95 and is flattened onto white. SVG is serialized with
// the design viewBox and scaled width/height attributes, embedding the text
// face so the file is self-contained.
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bannersmith/pkg/errors"
)

// Format constants for export formats.
const (
	FormatPNG  = "png"
	FormatJPEG = "jpeg"
	FormatSVG  = "svg"
)

// Defaults applied by ValidateAndSetDefaults.
const (
	DefaultFormat = FormatPNG
	DefaultScale  = 2

	// DefaultFilenamePrefix is followed by the Unix time in milliseconds.
	DefaultFilenamePrefix = "banner-"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatJPEG: true,
	FormatSVG:  true,
}

// ValidScales is the set of supported pixel ratios.
var ValidScales = map[int]bool{
	1: true,
	2: true,
	4: true,
}

// mediaTypes maps formats to the MIME types artifacts are served with.
var mediaTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatJPEG: "image/jpeg",
	FormatSVG:  "image/svg+xml",
}

// Options configures one export.
type Options struct {
	// Format is one of png, jpeg or svg (default png).
	Format string `json:"format,omitempty" toml:"format"`
	// Scale is the pixel ratio, one of 1, 2 or 4 (default 2).
	Scale int `json:"scale,omitempty" toml:"scale"`
	// Filename is the base name without extension
	// (default banner-<unix millis>).
	Filename string `json:"filename,omitempty" toml:"filename"`
	// Refresh bypasses the artifact cache.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	Logger *log.Logger `json:"-" toml:"-"`
}

// Artifact is a fully encoded export.
type Artifact struct {
	// Filename is "<name>.<format>".
	Filename  string `json:"filename"`
	MediaType string `json:"mediaType"`
	Data      []byte `json:"-"`
	// Width and Height are the output dimensions in pixels.
	Width  int `json:"width"`
	Height int `json:"height"`
	// Cached reports whether the data came from the artifact cache.
	Cached bool `json:"cached"`
}

// ParseFormat normalizes a user-supplied format name. "jpg" is accepted as
// an alias for jpeg.
func ParseFormat(s string) string {
	f := strings.ToLower(strings.TrimSpace(s))
	if f == "jpg" {
		return FormatJPEG
	}
	return f
}

// ValidateFormat checks that a format is supported.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupportedExportFormat,
			"unsupported export format %q (must be one of: png, jpeg, svg)", format)
	}
	return nil
}

// ValidateScale checks that a scale is supported.
func ValidateScale(scale int) error {
	if !ValidScales[scale] {
		return errors.New(errors.ErrCodeInvalidExportScale,
			"invalid export scale %d (must be one of: 1, 2, 4)", scale)
	}
	return nil
}

// DefaultFilename returns the base name used when none is given.
func DefaultFilename(now time.Time) string {
	return fmt.Sprintf("%s%d", DefaultFilenamePrefix, now.UnixMilli())
}

// ValidateAndSetDefaults fills in the default format and scale, then
// validates all fields. The filename is left empty for the runner to fill
// from its clock.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Filename != "" {
		if err := errors.ValidateFilename(o.Filename); err != nil {
			return err
		}
	}
	return nil
}

// MediaType returns the MIME type for a format.
func MediaType(format string) string {
	return mediaTypes[format]
}
