// Package session owns the state of one banner editing session.
//
// A [Session] holds the current [style.BannerStyle], the font registry and
// the export runner. It is the single entry point UI collaborators (the CLI,
// the terminal editor) call into: they apply patches, upload fonts and
// background images, read the render tree for the preview, and request
// exports.
//
// Every update replaces the style as a whole value under a mutex, so a
// failed operation never leaves the style half-changed, and an export
// renders whatever tree the style describes at the moment it is requested.
//
// # Usage
//
//	s := session.New(session.WithLogger(logger))
//	s.ApplyPatch(style.Patch{Text: style.Ptr("Hello")})
//	if _, err := s.UploadFont(ctx, f, "Brand-Bold.woff2"); err != nil {
//	    // Show a notification; the style is unchanged
//	}
//	art, err := s.RequestExport(ctx, "png", 2)
package session

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/matzehuels/bannersmith/pkg/cache"
	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/fonts"
	"github.com/matzehuels/bannersmith/pkg/pipeline"
	"github.com/matzehuels/bannersmith/pkg/render"
	"github.com/matzehuels/bannersmith/pkg/style"
)

// DefaultPlaceholder is shown in the preview while the text is empty.
const DefaultPlaceholder = "Type your banner text here..."

// MaxImageBytes bounds background uploads.
const MaxImageBytes = 20 << 20

// FontEntry is one family offered by the font picker.
type FontEntry struct {
	Family      string `json:"family"`
	DisplayName string `json:"displayName"`
	Custom      bool   `json:"custom"`
}

// Option configures a Session.
type Option func(*Session)

// WithRegistry sets the font registry. Sessions get a fresh one by default.
func WithRegistry(r *fonts.Registry) Option {
	return func(s *Session) {
		if r != nil {
			s.fonts = r
		}
	}
}

// WithRunner sets the export runner. The default runner caches artifacts
// in memory under a key scoped to the session.
func WithRunner(r *pipeline.Runner) Option {
	return func(s *Session) {
		if r != nil {
			s.runner = r
		}
	}
}

// WithStyle sets the initial style (default style.Default()).
func WithStyle(st style.BannerStyle) Option {
	return func(s *Session) { s.style = st }
}

// WithPlaceholder sets the preview placeholder.
func WithPlaceholder(text string) Option {
	return func(s *Session) { s.placeholder = text }
}

// WithCanvas overrides the design resolution.
func WithCanvas(width, height float64) Option {
	return func(s *Session) {
		s.width, s.height = width, height
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// Session is one editing session. It is safe for concurrent use.
type Session struct {
	id          string
	placeholder string
	width       float64
	height      float64
	logger      *log.Logger
	fonts       *fonts.Registry
	runner      *pipeline.Runner

	mu    sync.RWMutex
	style style.BannerStyle
}

// New starts a session with the default style.
func New(opts ...Option) *Session {
	s := &Session{
		id:          uuid.NewString(),
		placeholder: DefaultPlaceholder,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
		style:       style.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.fonts == nil {
		s.fonts = fonts.NewRegistry(fonts.WithLogger(s.logger))
	}
	if s.runner == nil {
		keyer := cache.NewScopedKeyer(nil, "session:"+s.id+":")
		s.runner = pipeline.NewRunner(cache.NewMemoryCache(), keyer, s.logger)
	}
	s.runner.Fonts = s.fonts
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Registry returns the session's font registry.
func (s *Session) Registry() *fonts.Registry { return s.fonts }

// Style returns the current style.
func (s *Session) Style() style.BannerStyle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.style
}

// Fonts lists the built-in families followed by uploads in registration
// order.
func (s *Session) Fonts() []FontEntry {
	builtins := fonts.Builtins()
	custom := s.fonts.Fonts()
	out := make([]FontEntry, 0, len(builtins)+len(custom))
	for _, f := range builtins {
		out = append(out, FontEntry{Family: f, DisplayName: f})
	}
	for _, f := range custom {
		out = append(out, FontEntry{Family: f.Family, DisplayName: f.DisplayName, Custom: true})
	}
	return out
}

// Tree renders the current style.
func (s *Session) Tree() *render.Tree {
	return render.Render(s.Style(), render.Options{
		Width:       s.width,
		Height:      s.height,
		Placeholder: s.placeholder,
		Measurer:    s.fonts,
	})
}

// ApplyPatch merges p into the current style and returns the result.
func (s *Session) ApplyPatch(p style.Patch) style.BannerStyle {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = style.Apply(s.style, p)
	s.logger.Debug("applied style patch", "fields", p.Fields())
	return s.style
}

// SelectTemplate applies the template's background and suggested text
// styling.
func (s *Session) SelectTemplate(t style.Template) style.BannerStyle {
	return s.ApplyPatch(style.TemplatePatch(t))
}

// SelectTemplateID applies the template with the given id.
func (s *Session) SelectTemplateID(id string) (style.BannerStyle, error) {
	t, ok := style.FindTemplate(id)
	if !ok {
		return s.Style(), errors.New(errors.ErrCodeInvalidInput, "unknown template %q", id)
	}
	return s.SelectTemplate(t), nil
}

// UploadFont registers a font file and selects it. On failure the style is
// unchanged.
func (s *Session) UploadFont(ctx context.Context, r io.Reader, filename string) (fonts.CustomFont, error) {
	cf, err := s.fonts.Register(ctx, r, filename)
	if err != nil {
		return fonts.CustomFont{}, err
	}
	s.ApplyPatch(style.Patch{FontFamily: style.Ptr(cf.Family)})
	return cf, nil
}

// UploadBackgroundImage reads an image and makes it the background. The
// content must sniff as image/*; the file name and extension are ignored.
func (s *Session) UploadBackgroundImage(ctx context.Context, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := io.ReadAll(io.LimitReader(r, MaxImageBytes+1))
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidImage, err, "failed to read image")
	}
	if len(data) > MaxImageBytes {
		return errors.New(errors.ErrCodeInvalidImage, "image exceeds %d MiB", MaxImageBytes>>20)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	mt := mimetype.Detect(data)
	mediaType, _, _ := strings.Cut(mt.String(), ";")
	if !strings.HasPrefix(mediaType, "image/") {
		return errors.New(errors.ErrCodeInvalidImage, "unsupported background file type %s", mediaType)
	}

	var uri bytes.Buffer
	uri.WriteString("data:" + mediaType + ";base64,")
	enc := base64.NewEncoder(base64.StdEncoding, &uri)
	enc.Write(data)
	enc.Close()

	s.ApplyPatch(style.ImagePatch(uri.String()))
	s.logger.Debug("background image uploaded", "type", mediaType, "bytes", len(data))
	return nil
}

// RequestExport exports the current tree and returns the artifact.
func (s *Session) RequestExport(ctx context.Context, format string, scale int) (*pipeline.Artifact, error) {
	return s.Export(ctx, pipeline.Options{Format: format, Scale: scale})
}

// Export exports the current tree with full control over the options.
func (s *Session) Export(ctx context.Context, opts pipeline.Options) (*pipeline.Artifact, error) {
	return s.runner.Export(ctx, s.Tree(), opts)
}

// Close releases the export cache.
func (s *Session) Close() error {
	return s.runner.Close()
}
