// Package cache stores rendered export artifacts.
//
// A banner export is a pure function of its render tree, the output format
// and the pixel ratio, so identical requests can be served from a cache
// instead of rasterizing a 3840×2160 canvas again. The package provides the
// [Cache] interface, a [Keyer] that derives keys from those inputs, and three
// backends:
//
//   - [MemoryCache]: in-process, used by editing sessions
//   - [FileCache]: on-disk, used by the CLI between invocations
//   - [NullCache]: caching disabled
//
// # Usage
//
//	c := cache.NewMemoryCache()
//	key := cache.NewDefaultKeyer().ArtifactKey(cache.Hash(treeJSON), cache.ArtifactKeyOpts{
//	    Format: "png",
//	    Scale:  2,
//	})
//	if data, ok, _ := c.Get(ctx, key); ok {
//	    return data
//	}
package cache

import (
	"context"
	"time"
)

// TTLArtifact is how long an exported artifact stays cached.
const TTLArtifact = 24 * time.Hour

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value for key. The second result reports whether the
	// key was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// ArtifactKeyOpts are the export parameters that distinguish artifacts of
// the same tree.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Scale  int    `json:"scale"`
}

// Keyer derives cache keys.
type Keyer interface {
	// ArtifactKey returns the key for an export of the tree with the given
	// content hash.
	ArtifactKey(treeHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces unscoped keys of the form "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(treeHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", treeHash, opts)
}
