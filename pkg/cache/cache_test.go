package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0)
	c := NewMemoryCache(WithNow(func() time.Time { return now }))

	if err := c.Set(ctx, "a", []byte("png bytes"), time.Minute); err != nil {
		t.Fatal(err)
	}
	data, hit, err := c.Get(ctx, "a")
	if err != nil || !hit || string(data) != "png bytes" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	// Returned slices are copies.
	data[0] = 'X'
	again, _, _ := c.Get(ctx, "a")
	if string(again) != "png bytes" {
		t.Errorf("cached value mutated through returned slice: %q", again)
	}

	now = now.Add(2 * time.Minute)
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("expired entry should miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be dropped, Len = %d", c.Len())
	}

	if err := c.Set(ctx, "forever", []byte("x"), 0); err != nil {
		t.Fatal(err)
	}
	now = now.Add(365 * 24 * time.Hour)
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero ttl should not expire")
	}

	c.Delete(ctx, "forever")
	if _, hit, _ := c.Get(ctx, "forever"); hit {
		t.Error("deleted entry should miss")
	}
}

func TestMemoryCacheEviction(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(WithMaxEntries(2))

	c.Set(ctx, "a", []byte("1"), 0)
	c.Set(ctx, "b", []byte("2"), 0)
	c.Set(ctx, "a", []byte("1'"), 0) // refresh moves a to the back
	c.Set(ctx, "c", []byte("3"), 0)

	if _, hit, _ := c.Get(ctx, "b"); hit {
		t.Error("oldest entry b should be evicted")
	}
	for _, k := range []string{"a", "c"} {
		if _, hit, _ := c.Get(ctx, k); !hit {
			t.Errorf("%s should be kept", k)
		}
	}
	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}

	c.Close()
	if c.Len() != 0 {
		t.Error("Close should drop entries")
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(filepath.Join(dir, "artifacts"))
	if err != nil {
		t.Fatal(err)
	}

	key := NewDefaultKeyer().ArtifactKey(Hash([]byte("tree")), ArtifactKeyOpts{Format: "png", Scale: 2})
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Fatal("empty cache should miss")
	}
	if err := c.Set(ctx, key, []byte{0x89, 'P', 'N', 'G'}, TTLArtifact); err != nil {
		t.Fatal(err)
	}

	// A second cache on the same directory sees the entry.
	c2, _ := NewFileCache(c.Dir())
	data, hit, err := c2.Get(ctx, key)
	if err != nil || !hit || string(data) != "\x89PNG" {
		t.Fatalf("Get = %q, %v, %v", data, hit, err)
	}

	// No temporary files are left next to the entry.
	entries, _ := os.ReadDir(filepath.Dir(c.path(key)))
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".entry-") {
			t.Errorf("leftover temp file %s", e.Name())
		}
	}

	c.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	if _, hit, _ := c.Get(ctx, key); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path(key)); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}

	if err := c.Delete(ctx, "missing"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	os.MkdirAll(filepath.Dir(path), 0o755)
	os.WriteFile(path, []byte("{not json"), 0o644)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v", hit, err)
	}

	c.Set(ctx, "k", []byte("v"), 0)
	c.Set(ctx, "k2", []byte("v"), 0)
	if n := c.Len(); n != 2 {
		t.Errorf("Len() = %d, want 2", n)
	}
	if err := c.Clear(); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("Clear should remove entries")
	}
	if n := c.Len(); n != 0 {
		t.Errorf("Len() after Clear = %d, want 0", n)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}

	type tree struct {
		Text  string
		Scale int
	}
	j1, err := HashJSON(tree{"Hello", 2})
	if err != nil {
		t.Fatal(err)
	}
	j2, _ := HashJSON(tree{"Hello", 2})
	j3, _ := HashJSON(tree{"Hello", 4})
	if j1 != j2 || j1 == j3 {
		t.Error("HashJSON should follow value equality")
	}
	if _, err := HashJSON(func() {}); err == nil {
		t.Error("HashJSON should fail on unencodable values")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	png2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Scale: 2})
	png4 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Scale: 4})
	svg2 := k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "svg", Scale: 2})
	other := k.ArtifactKey("hash456", ArtifactKeyOpts{Format: "png", Scale: 2})

	if !strings.HasPrefix(png2, "artifact:") {
		t.Errorf("unexpected key %s", png2)
	}
	seen := map[string]bool{}
	for _, key := range []string{png2, png4, svg2, other} {
		if seen[key] {
			t.Errorf("duplicate key %s", key)
		}
		seen[key] = true
	}
	if png2 != k.ArtifactKey("hash123", ArtifactKeyOpts{Format: "png", Scale: 2}) {
		t.Error("ArtifactKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "session:123:")
	opts := ArtifactKeyOpts{Format: "jpeg", Scale: 1}

	got := scoped.ArtifactKey("h", opts)
	if got != "session:123:"+inner.ArtifactKey("h", opts) {
		t.Errorf("ScopedKeyer ArtifactKey unexpected: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	scoped := NewScopedKeyer(nil, "prefix:")
	got := scoped.ArtifactKey("h", ArtifactKeyOpts{})
	if !strings.HasPrefix(got, "prefix:artifact:") {
		t.Errorf("Unexpected key with nil inner: %s", got)
	}
}
