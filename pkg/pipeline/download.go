package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/bannersmith/pkg/errors"
)

// Downloader delivers a finished artifact to the user.
type Downloader interface {
	Download(ctx context.Context, a *Artifact) error
}

// DownloaderFunc adapts a function to the Downloader interface.
type DownloaderFunc func(ctx context.Context, a *Artifact) error

// Download calls f.
func (f DownloaderFunc) Download(ctx context.Context, a *Artifact) error {
	return f(ctx, a)
}

// DirDownloader saves artifacts into a directory under their file name.
// Files appear atomically: data is written to a temporary file in the same
// directory and renamed into place.
type DirDownloader struct {
	Dir string
}

// NewDirDownloader creates a downloader writing to dir.
func NewDirDownloader(dir string) *DirDownloader {
	return &DirDownloader{Dir: dir}
}

// Path returns where the artifact is or would be saved.
func (d *DirDownloader) Path(a *Artifact) string {
	return filepath.Join(d.Dir, a.Filename)
}

// Download writes the artifact.
func (d *DirDownloader) Download(ctx context.Context, a *Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := errors.ValidateFilename(a.Filename); err != nil {
		return err
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return writeFileAtomic(d.Path(a), a.Data)
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(name)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		os.Remove(name)
		return err
	}
	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return err
	}
	return nil
}

// MemoryDownloader collects artifacts in memory.
type MemoryDownloader struct {
	mu        sync.Mutex
	artifacts []*Artifact
}

// Download records the artifact.
func (d *MemoryDownloader) Download(_ context.Context, a *Artifact) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.artifacts = append(d.artifacts, a)
	return nil
}

// Artifacts returns the recorded artifacts in delivery order.
func (d *MemoryDownloader) Artifacts() []*Artifact {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]*Artifact(nil), d.artifacts...)
}
