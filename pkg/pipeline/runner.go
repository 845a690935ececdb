package pipeline

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bannersmith/pkg/cache"
	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/fonts"
	"github.com/matzehuels/bannersmith/pkg/observability"
	"github.com/matzehuels/bannersmith/pkg/render"
	"github.com/matzehuels/bannersmith/pkg/render/sink"
)

// Runner executes exports with caching.
//
// The Runner holds no per-export state. Multiple goroutines can safely use
// the same Runner with different trees and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Fonts resolves text faces for painting and embedding.
	Fonts sink.FontSource
	// Downloader receives finished artifacts. A nil Downloader leaves
	// delivery to the caller.
	Downloader Downloader
	// Now is the clock for default file names.
	Now func() time.Time
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		Fonts:  fonts.NewRegistry(),
		Now:    time.Now,
	}
}

// Export encodes the tree in the requested format and scale and hands the
// result to the Downloader.
//
// A nil tree or one whose text content is empty or whitespace fails with
// EMPTY_BANNER before anything is rendered. Sink and delivery failures are
// reported as EXPORT_FAILED with the cause attached.
func (r *Runner) Export(ctx context.Context, t *render.Tree, opts Options) (art *Artifact, err error) {
	if strings.TrimSpace(t.TextContent()) == "" {
		return nil, errors.New(errors.ErrCodeEmptyBanner, "banner has no text to export")
	}
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Filename == "" {
		opts.Filename = DefaultFilename(r.now())
	}

	start := time.Now()
	observability.Export().OnExportStart(ctx, opts.Format, opts.Scale)
	defer func() {
		size := 0
		if art != nil {
			size = len(art.Data)
		}
		observability.Export().OnExportComplete(ctx, opts.Format, opts.Scale, size, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "export cancelled")
	}

	art = &Artifact{
		Filename:  opts.Filename + "." + opts.Format,
		MediaType: MediaType(opts.Format),
		Width:     int(math.Round(t.Width * float64(opts.Scale))),
		Height:    int(math.Round(t.Height * float64(opts.Scale))),
	}

	data, hit, err := r.encodeWithCache(ctx, t, opts)
	if err != nil {
		art = nil
		return nil, err
	}
	art.Data = data
	art.Cached = hit

	opts.Logger.Debug("encoded banner",
		"file", art.Filename,
		"bytes", len(data),
		"size", []int{art.Width, art.Height},
		"cached", hit,
		"duration", time.Since(start))

	if r.Downloader != nil {
		if err := r.Downloader.Download(ctx, art); err != nil {
			art = nil
			return nil, errors.Wrap(errors.ErrCodeExportFailed, err, "failed to save export")
		}
	}
	return art, nil
}

// encodeWithCache returns the encoded tree and whether it came from cache.
func (r *Runner) encodeWithCache(ctx context.Context, t *render.Tree, opts Options) ([]byte, bool, error) {
	treeHash, err := cache.HashJSON(t)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeExportFailed, err, "failed to snapshot banner")
	}
	key := r.Keyer.ArtifactKey(treeHash, cache.ArtifactKeyOpts{Format: opts.Format, Scale: opts.Scale})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	data, err := r.encode(t, opts)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeExportFailed, err, "failed to export banner as %s", opts.Format)
	}

	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		opts.Logger.Warn("failed to cache artifact", "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}
	return data, false, nil
}

func (r *Runner) encode(t *render.Tree, opts Options) ([]byte, error) {
	scale := float64(opts.Scale)
	switch opts.Format {
	case FormatPNG:
		return sink.RenderPNG(t, sink.WithScale(scale), sink.WithFonts(r.Fonts))
	case FormatJPEG:
		return sink.RenderJPEG(t, sink.WithScale(scale), sink.WithFonts(r.Fonts), sink.WithJPEGQuality(sink.DefaultJPEGQuality))
	case FormatSVG:
		return sink.RenderSVG(t, sink.WithSVGScale(scale), sink.WithSVGFonts(r.Fonts))
	default:
		return nil, errors.New(errors.ErrCodeUnsupportedExportFormat, "unsupported export format %q", opts.Format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
