package fonts

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/observability"
)

// CustomFont describes a registered upload.
type CustomFont struct {
	// Family is the generated, registry-unique font family name.
	Family string `json:"family"`
	// URL is the font data as a data URI.
	URL string `json:"url"`
	// DisplayName is the upload file name without its extension.
	DisplayName string `json:"displayName"`
	Format      Format `json:"format"`
}

// Handle is a resolved font family.
type Handle struct {
	Family  string
	Builtin bool
	// URL is the data URI the family can be embedded from.
	URL    string
	Format Format
	Font   *opentype.Font
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLoader sets the loader used to make uploads usable.
// The default is OpenTypeLoader.
func WithLoader(l Loader) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.loader = l
		}
	}
}

// WithClock sets the time source used for family names.
func WithClock(now func() time.Time) RegistryOption {
	return func(r *Registry) {
		if now != nil {
			r.now = now
		}
	}
}

// WithLogger sets the registry logger.
func WithLogger(l *log.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// Registry holds the fonts usable by one editing session: the built-in
// families plus every successful upload. It is safe for concurrent use.
type Registry struct {
	loader Loader
	now    func() time.Time
	logger *log.Logger

	mu     sync.RWMutex
	seq    uint64
	custom []CustomFont
	loaded map[string]*opentype.Font

	measure measureFaces
}

// NewRegistry creates an empty registry. Built-in families are parsed
// lazily on first use.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		loader: OpenTypeLoader{},
		now:    time.Now,
		logger: log.New(io.Discard),
		loaded: make(map[string]*opentype.Font),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FormatOf returns the font format named by the extension of filename.
// Matching is case-insensitive.
func FormatOf(filename string) (Format, bool) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	f := Format(ext)
	return f, ValidFormats[f]
}

// DisplayName strips a font extension from filename.
func DisplayName(filename string) string {
	if _, ok := FormatOf(filename); !ok {
		return filename
	}
	return strings.TrimSuffix(filename, filepath.Ext(filename))
}

// sanitize replaces every character outside [A-Za-z0-9] with an underscore.
func sanitize(s string) string {
	var b strings.Builder
	for _, c := range s {
		if c < 0x80 && (c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			b.WriteRune(c)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// Register reads an uploaded font, encodes it as a data URI and loads it.
//
// Files whose extension is not ttf, woff, woff2 or otf fail with
// INVALID_FONT_FORMAT before r is read. Read failures report FONT_READ_ERROR
// and loader failures FONT_LOAD_FAILED. Register returns only after the
// loader has signalled that the face is usable.
func (reg *Registry) Register(ctx context.Context, r io.Reader, filename string) (cf CustomFont, err error) {
	start := time.Now()
	observability.Font().OnFontRegisterStart(ctx, filename)
	defer func() {
		observability.Font().OnFontRegisterComplete(ctx, filename, cf.Family, time.Since(start), err)
	}()

	format, ok := FormatOf(filename)
	if !ok {
		return CustomFont{}, errors.New(errors.ErrCodeInvalidFontFormat,
			"unsupported font file %q: use .ttf, .otf, .woff or .woff2", filename)
	}

	family := reg.nextFamily(filename)

	data, err := io.ReadAll(r)
	if err != nil {
		return CustomFont{}, errors.Wrap(errors.ErrCodeFontRead, err, "failed to read font file %q", filename)
	}
	url := DataURI(format, data)

	reg.logger.Debug("loading font", "file", filename, "family", family, "bytes", len(data))
	f, err := reg.loader.Load(ctx, family, format, data)
	if err != nil {
		return CustomFont{}, errors.Wrap(errors.ErrCodeFontLoad, err, "failed to load font %q", filename)
	}

	cf = CustomFont{
		Family:      family,
		URL:         url,
		DisplayName: DisplayName(filename),
		Format:      format,
	}

	reg.mu.Lock()
	reg.custom = append(reg.custom, cf)
	if f != nil {
		reg.loaded[family] = f
	}
	reg.mu.Unlock()

	reg.logger.Info("registered font", "family", family, "name", cf.DisplayName)
	return cf, nil
}

func (reg *Registry) nextFamily(filename string) string {
	reg.mu.Lock()
	reg.seq++
	seq := reg.seq
	reg.mu.Unlock()
	return fmt.Sprintf("CustomFont_%s_%d_%d", sanitize(DisplayName(filename)), reg.now().UnixMilli(), seq)
}

// Fonts returns the registered custom fonts in registration order.
func (reg *Registry) Fonts() []CustomFont {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	out := make([]CustomFont, len(reg.custom))
	copy(out, reg.custom)
	return out
}

// Families returns every resolvable family: built-ins first, then uploads.
func (reg *Registry) Families() []string {
	names := Builtins()
	for _, cf := range reg.Fonts() {
		names = append(names, cf.Family)
	}
	return names
}

// Resolve returns the handle for family, or FONT_NOT_FOUND.
func (reg *Registry) Resolve(family string) (Handle, error) {
	if b := lookupBuiltin(family); b != nil {
		f, err := reg.builtinFont(b)
		if err != nil {
			return Handle{}, err
		}
		url, _ := BuiltinDataURI(family)
		return Handle{Family: family, Builtin: true, URL: url, Format: FormatTTF, Font: f}, nil
	}

	reg.mu.RLock()
	defer reg.mu.RUnlock()
	for _, cf := range reg.custom {
		if cf.Family == family {
			return Handle{Family: family, URL: cf.URL, Format: cf.Format, Font: reg.loaded[family]}, nil
		}
	}
	return Handle{}, errors.New(errors.ErrCodeFontNotFound, "font family %q is not registered", family)
}

// ResolveOrFallback resolves family and falls back to FallbackFamily.
func (reg *Registry) ResolveOrFallback(family string) Handle {
	h, err := reg.Resolve(family)
	if err == nil && h.Font != nil {
		return h
	}
	h, _ = reg.Resolve(FallbackFamily)
	return h
}

func (reg *Registry) builtinFont(b *builtin) (*opentype.Font, error) {
	reg.mu.RLock()
	f, ok := reg.loaded[b.family]
	reg.mu.RUnlock()
	if ok {
		return f, nil
	}

	f, err := opentype.Parse(b.ttf)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "failed to parse built-in font %q", b.family)
	}
	reg.mu.Lock()
	reg.loaded[b.family] = f
	reg.mu.Unlock()
	return f, nil
}

// Face returns a new face for family at size px. Faces are not safe for
// concurrent use; callers own the returned value and should close it.
func (reg *Registry) Face(family string, size float64) (font.Face, error) {
	h, err := reg.Resolve(family)
	if err != nil {
		return nil, err
	}
	return NewFace(h.Font, size)
}

// NewFace builds an unhinted face for f at size px.
func NewFace(f *opentype.Font, size float64) (font.Face, error) {
	if f == nil {
		return nil, errors.New(errors.ErrCodeFontLoad, "font has no parsed face")
	}
	if size <= 0 {
		size = 1
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingNone})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFontLoad, err, "failed to create face")
	}
	return face, nil
}
