package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/anchorage/pkg/observability"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || hit || data != nil {
		t.Errorf("Get() = %q, %v, %v, want miss", data, hit, err)
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}

	if _, hit, _ := c.Get(ctx, "solve:abc"); hit {
		t.Error("Get() on empty cache should miss")
	}
	if err := c.Set(ctx, "solve:abc", []byte("frames"), time.Hour); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	data, hit, err := c.Get(ctx, "solve:abc")
	if err != nil || !hit || string(data) != "frames" {
		t.Errorf("Get() = %q, %v, %v, want frames hit", data, hit, err)
	}

	if err := c.Delete(ctx, "solve:abc"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "solve:abc"); hit {
		t.Error("Get() after Delete should miss")
	}
	if err := c.Delete(ctx, "never-set"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil || n != 3 {
		t.Errorf("Clear() = %d, %v, want 3", n, err)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get() after Clear should miss")
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("Clear() should keep the directory: %v", err)
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	tests := []struct {
		name string
		a, b string
	}{
		{
			"solve format",
			k.SolveKey("h", SolveKeyOpts{Format: "toml"}),
			k.SolveKey("h", SolveKeyOpts{Format: "yaml"}),
		},
		{
			"solve strict",
			k.SolveKey("h", SolveKeyOpts{Format: "toml"}),
			k.SolveKey("h", SolveKeyOpts{Format: "toml", Strict: true}),
		},
		{
			"solve scene",
			k.SolveKey("h1", SolveKeyOpts{}),
			k.SolveKey("h2", SolveKeyOpts{}),
		},
		{
			"artifact format",
			k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg"}),
			k.ArtifactKey("h", ArtifactKeyOpts{Format: "txt"}),
		},
		{
			"artifact scale",
			k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", Scale: 1}),
			k.ArtifactKey("h", ArtifactKeyOpts{Format: "svg", Scale: 2}),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.a == tt.b {
				t.Errorf("keys should differ: %s", tt.a)
			}
		})
	}

	if got := k.SolveKey("h", SolveKeyOpts{}); got != k.SolveKey("h", SolveKeyOpts{}) {
		t.Error("SolveKey should be deterministic")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "tenant:acme:")

	got := scoped.SolveKey("h", SolveKeyOpts{})
	if want := "tenant:acme:" + inner.SolveKey("h", SolveKeyOpts{}); got != want {
		t.Errorf("SolveKey() = %s, want %s", got, want)
	}
	if !strings.HasPrefix(scoped.ArtifactKey("h", ArtifactKeyOpts{}), "tenant:acme:artifact:") {
		t.Error("ArtifactKey() should be prefixed")
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(nilInner.SolveKey("h", SolveKeyOpts{}), "p:solve:") {
		t.Error("nil inner keyer should fall back to DefaultKeyer")
	}
}

func TestKeyType(t *testing.T) {
	k := NewScopedKeyer(nil, "tenant:x:")
	tests := []struct {
		key  string
		want string
	}{
		{NewDefaultKeyer().SolveKey("h", SolveKeyOpts{}), "solve"},
		{k.ArtifactKey("h", ArtifactKeyOpts{}), "artifact"},
		{"plain", "other"},
		{"tenant:x:layout:abc", "other"},
	}
	for _, tt := range tests {
		if got := KeyType(tt.key); got != tt.want {
			t.Errorf("KeyType(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

type cacheRecorder struct {
	observability.NoopCacheHooks
	hits, misses, sets []string
}

func (r *cacheRecorder) OnCacheHit(_ context.Context, kt string)  { r.hits = append(r.hits, kt) }
func (r *cacheRecorder) OnCacheMiss(_ context.Context, kt string) { r.misses = append(r.misses, kt) }
func (r *cacheRecorder) OnCacheSet(_ context.Context, kt string, _ int) {
	r.sets = append(r.sets, kt)
}

func TestObserved(t *testing.T) {
	rec := &cacheRecorder{}
	observability.SetCacheHooks(rec)
	t.Cleanup(observability.Reset)

	ctx := context.Background()
	fc, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := Observed(fc)
	if Observed(c) != c {
		t.Error("Observed should not wrap twice")
	}

	key := NewDefaultKeyer().SolveKey("h", SolveKeyOpts{})
	_, _, _ = c.Get(ctx, key)
	_ = c.Set(ctx, key, []byte("x"), 0)
	_, _, _ = c.Get(ctx, key)

	if len(rec.misses) != 1 || len(rec.sets) != 1 || len(rec.hits) != 1 {
		t.Fatalf("hooks = %d misses, %d sets, %d hits, want 1 each", len(rec.misses), len(rec.sets), len(rec.hits))
	}
	if rec.hits[0] != "solve" {
		t.Errorf("key type = %q, want solve", rec.hits[0])
	}
}

func TestNewRedisCache(t *testing.T) {
	if _, err := NewRedisCache(context.Background(), RedisConfig{}); err == nil {
		t.Error("NewRedisCache() without an address should fail")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRedisCache(ctx, RedisConfig{Addr: "127.0.0.1:1"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("NewRedisCache() with a cancelled context error = %v, want context.Canceled", err)
	}
}

var errPermanent = errors.New("permanent failure")

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(ErrNetwork)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != ErrNetwork.Error() {
		t.Errorf("Error() = %s, want %s", err, ErrNetwork)
	}
	if IsRetryable(errPermanent) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d, want nil/1", err, calls)
	}

	calls = 0
	err := RetryWithBackoff(ctx, func() error { calls++; return errPermanent })
	if err != errPermanent || calls != 1 {
		t.Errorf("non-retryable: err=%v calls=%d, want errPermanent/1", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(ErrNetwork)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err=%v calls=%d, want nil/2", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error { return Retryable(ErrNetwork) })
	if err != context.Canceled {
		t.Errorf("RetryWithBackoff() = %v, want context.Canceled", err)
	}
}
