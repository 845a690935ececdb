package pipeline

import (
	"bytes"
	"context"
	stderrors "errors"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/bannersmith/pkg/cache"
	"github.com/matzehuels/bannersmith/pkg/errors"
	"github.com/matzehuels/bannersmith/pkg/observability"
	"github.com/matzehuels/bannersmith/pkg/render"
	"github.com/matzehuels/bannersmith/pkg/style"
)

type recordingHooks struct {
	mu       sync.Mutex
	started  []string
	finished []error
}

func (h *recordingHooks) OnExportStart(_ context.Context, format string, _ int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.started = append(h.started, format)
}

func (h *recordingHooks) OnExportComplete(_ context.Context, _ string, _ int, _ int, _ time.Duration, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.finished = append(h.finished, err)
}

func newTestRunner(t *testing.T) (*Runner, *MemoryDownloader) {
	t.Helper()
	r := NewRunner(nil, nil, nil)
	r.Now = func() time.Time { return time.UnixMilli(1700000000000) }
	d := &MemoryDownloader{}
	r.Downloader = d
	return r, d
}

// smallTree keeps raster tests fast.
func smallTree(p style.Patch) *render.Tree {
	return render.Render(style.Apply(style.Default(), p), render.Options{Width: 160, Height: 90, Padding: 8, MaxTextWidth: 140})
}

func TestExportEndToEndPNG(t *testing.T) {
	r, d := newTestRunner(t)
	s := style.Apply(style.Default(), style.Patch{Text: style.Ptr("Hello")}.Merge(style.SolidPatch("#112233")))

	art, err := r.Export(context.Background(), render.Render(s, render.Options{}), Options{Format: "png", Scale: 2})
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(art.Filename, ".png"), art.Filename)
	assert.Equal(t, "banner-1700000000000.png", art.Filename)
	assert.Equal(t, "image/png", art.MediaType)
	assert.Equal(t, 3840, art.Width)
	assert.Equal(t, 2160, art.Height)

	cfg, err := png.DecodeConfig(bytes.NewReader(art.Data))
	require.NoError(t, err)
	assert.Equal(t, 3840, cfg.Width)
	assert.Equal(t, 2160, cfg.Height)

	require.Len(t, d.Artifacts(), 1)
	assert.Same(t, art, d.Artifacts()[0])
}

func TestExportEmptyBanner(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetExportHooks(hooks)
	t.Cleanup(observability.Reset)

	r, d := newTestRunner(t)
	for name, tree := range map[string]*render.Tree{
		"nil tree":   nil,
		"whitespace": smallTree(style.Patch{Text: style.Ptr("  \n\t ")}),
	} {
		t.Run(name, func(t *testing.T) {
			_, err := r.Export(context.Background(), tree, Options{})
			assert.True(t, errors.Is(err, errors.ErrCodeEmptyBanner), "err = %v", err)
		})
	}
	assert.Empty(t, d.Artifacts(), "no download for empty banners")
	assert.Empty(t, hooks.started, "nothing is rendered for empty banners")
}

func TestExportPlaceholderCountsAsText(t *testing.T) {
	r, _ := newTestRunner(t)
	s := style.Apply(style.Default(), style.Patch{Text: style.Ptr("")})
	tree := render.Render(s, render.Options{Width: 160, Height: 90, Placeholder: "Your text here"})
	require.True(t, tree.Text.Placeholder)

	_, err := r.Export(context.Background(), tree, Options{Format: "svg", Scale: 1})
	assert.NoError(t, err)
}

func TestExportInvalidOptions(t *testing.T) {
	r, d := newTestRunner(t)
	tree := smallTree(style.Patch{Text: style.Ptr("Hi")})

	_, err := r.Export(context.Background(), tree, Options{Format: "gif"})
	assert.True(t, errors.Is(err, errors.ErrCodeUnsupportedExportFormat), "err = %v", err)

	_, err = r.Export(context.Background(), tree, Options{Scale: 3})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidExportScale), "err = %v", err)

	assert.Empty(t, d.Artifacts())
}

func TestExportSinkFailure(t *testing.T) {
	hooks := &recordingHooks{}
	observability.SetExportHooks(hooks)
	t.Cleanup(observability.Reset)

	r, d := newTestRunner(t)
	tree := smallTree(style.Patch{Text: style.Ptr("Hi")}.Merge(style.ImagePatch("https://example.com/remote.png")))

	art, err := r.Export(context.Background(), tree, Options{Format: "png", Scale: 1})
	assert.Nil(t, art)
	assert.True(t, errors.Is(err, errors.ErrCodeExportFailed), "err = %v", err)
	assert.NotNil(t, stderrors.Unwrap(err), "cause is kept for diagnostics")
	assert.Empty(t, d.Artifacts())

	require.Len(t, hooks.finished, 1)
	assert.Error(t, hooks.finished[0])
}

func TestExportDownloaderFailure(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Downloader = DownloaderFunc(func(context.Context, *Artifact) error {
		return stderrors.New("disk full")
	})

	_, err := r.Export(context.Background(), smallTree(style.Patch{Text: style.Ptr("Hi")}), Options{Format: "svg"})
	assert.True(t, errors.Is(err, errors.ErrCodeExportFailed), "err = %v", err)
}

func TestExportCancelled(t *testing.T) {
	r, d := newTestRunner(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Export(ctx, smallTree(style.Patch{Text: style.Ptr("Hi")}), Options{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, d.Artifacts())
}

func TestExportFormats(t *testing.T) {
	r, _ := newTestRunner(t)
	tree := smallTree(style.Patch{Text: style.Ptr("Hi")})

	art, err := r.Export(context.Background(), tree, Options{Format: "jpeg", Scale: 4, Filename: "promo"})
	require.NoError(t, err)
	assert.Equal(t, "promo.jpeg", art.Filename)
	img, err := jpeg.Decode(bytes.NewReader(art.Data))
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 360, img.Bounds().Dy())

	art, err = r.Export(context.Background(), tree, Options{Format: "svg", Scale: 2, Filename: "promo"})
	require.NoError(t, err)
	assert.Equal(t, "promo.svg", art.Filename)
	assert.Equal(t, "image/svg+xml", art.MediaType)
	assert.Contains(t, string(art.Data), `width="320" height="180"`)
}

func TestExportCache(t *testing.T) {
	r, _ := newTestRunner(t)
	r.Cache = cache.NewMemoryCache()
	tree := smallTree(style.Patch{Text: style.Ptr("Hi")})

	first, err := r.Export(context.Background(), tree, Options{Format: "png", Scale: 1})
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := r.Export(context.Background(), tree, Options{Format: "png", Scale: 1})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Data, second.Data)

	other, err := r.Export(context.Background(), tree, Options{Format: "png", Scale: 2})
	require.NoError(t, err)
	assert.False(t, other.Cached, "scale is part of the key")

	refreshed, err := r.Export(context.Background(), tree, Options{Format: "png", Scale: 1, Refresh: true})
	require.NoError(t, err)
	assert.False(t, refreshed.Cached)
}

func TestDirDownloader(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	d := NewDirDownloader(dir)
	a := &Artifact{Filename: "banner.png", Data: []byte("data")}

	require.NoError(t, d.Download(context.Background(), a))
	got, err := os.ReadFile(d.Path(a))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary files are renamed away")
	assert.Equal(t, "banner.png", entries[0].Name())

	err = d.Download(context.Background(), &Artifact{Filename: "../banner.png"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFilename), "err = %v", err)
}
