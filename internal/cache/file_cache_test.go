package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(t *testing.T, ttl time.Duration) (*FileCache, *fakeClock) {
	t.Helper()
	c, err := NewFileCache(t.TempDir(), ttl)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	clock := &fakeClock{t: time.Date(2026, 10, 17, 9, 0, 0, 0, time.UTC)}
	c.now = clock.now
	return c, clock
}

func TestNewFileCache(t *testing.T) {
	dir := t.TempDir()

	cache, err := NewFileCache(dir, time.Minute)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if cache.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", cache.Dir(), dir)
	}
}

func TestFileCache_SetAndGet(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	key := "http://localhost:8080/api/stations"
	value := []byte(`{"data":[]}`)

	if err := cache.Set(key, value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := cache.Get(key)
	if !ok {
		t.Fatal("Get() returned false, want true")
	}
	if string(got) != string(value) {
		t.Errorf("Get() = %q, want %q", got, value)
	}
}

func TestFileCache_GetMissing(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	if _, ok := cache.Get("non-existent-key"); ok {
		t.Error("Get() returned true for non-existent key")
	}
}

func TestFileCache_Delete(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	key := "http://localhost:8080/api/stations"

	if err := cache.Set(key, []byte("stations")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Delete(key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := cache.Get(key); ok {
		t.Error("Get() returned true after Delete()")
	}
	if err := cache.Delete(key); err != nil {
		t.Errorf("Delete() of a missing entry error = %v", err)
	}
}

func TestFileCache_Expiration(t *testing.T) {
	cache, clock := newTestCache(t, time.Minute)
	key := "http://localhost:8080/api/stations"

	if err := cache.Set(key, []byte("stations")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, ok := cache.Get(key); !ok {
		t.Error("Get() returned false immediately after Set()")
	}

	clock.t = clock.t.Add(2 * time.Minute)
	if _, ok := cache.Get(key); ok {
		t.Error("Get() returned true for expired key")
	}

	// expired entries are removed on read
	if _, err := os.Stat(cache.keyToFilename(key)); !os.IsNotExist(err) {
		t.Error("expired entry was not removed")
	}
}

func TestFileCache_CorruptEntryDropped(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	key := "http://localhost:8080/api/stations"

	if err := os.WriteFile(cache.keyToFilename(key), []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, ok := cache.Get(key); ok {
		t.Error("Get() returned true for corrupt entry")
	}
	if _, err := os.Stat(cache.keyToFilename(key)); !os.IsNotExist(err) {
		t.Error("corrupt entry was not removed")
	}
}

func TestFileCache_HashKey(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	key1 := "http://localhost:8080/api/stations"
	key2 := "http://staging:8080/api/stations"

	if err := cache.Set(key1, []byte("data1")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Set(key2, []byte("data2")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	data1, ok1 := cache.Get(key1)
	data2, ok2 := cache.Get(key2)
	if !ok1 || !ok2 {
		t.Error("Failed to retrieve one or both keys")
	}
	if string(data1) != "data1" || string(data2) != "data2" {
		t.Error("Data mismatch")
	}
}

func TestFileCache_NoTempFilesLeft(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	for i := 0; i < 3; i++ {
		if err := cache.Set("key", []byte("value")); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}

	files, _ := os.ReadDir(cache.Dir())
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if !strings.HasSuffix(files[0].Name(), ".json") {
		t.Errorf("unexpected file %s", files[0].Name())
	}
}

func TestFileCache_CreateDirectory(t *testing.T) {
	nestedDir := filepath.Join(t.TempDir(), "nested", "cache", "dir")

	cache, err := NewFileCache(nestedDir, time.Minute)
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	if _, err := os.Stat(nestedDir); os.IsNotExist(err) {
		t.Error("Cache directory was not created")
	}
	if err := cache.Set("test", []byte("data")); err != nil {
		t.Errorf("Set() error = %v", err)
	}
}

func TestDefaultCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	if got := DefaultCacheDir(); got != filepath.Join("/tmp/xdg", "orrs") {
		t.Errorf("DefaultCacheDir() = %q", got)
	}
}

func TestFileCache_Clear(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)

	keys := []string{"key1", "key2", "key3"}
	for _, key := range keys {
		if err := cache.Set(key, []byte("data")); err != nil {
			t.Fatalf("Set() error = %v", err)
		}
	}
	// files that are not entries are left alone
	other := filepath.Join(cache.Dir(), "notes.txt")
	if err := os.WriteFile(other, []byte("keep"), 0600); err != nil {
		t.Fatal(err)
	}

	removed, err := cache.Clear()
	if err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("Clear() removed %d, want 3", removed)
	}
	for _, key := range keys {
		if _, ok := cache.Get(key); ok {
			t.Errorf("key %q still present after Clear()", key)
		}
	}
	if _, err := os.Stat(other); err != nil {
		t.Error("Clear() removed a non-entry file")
	}
}

func TestFileCache_ClearMissingDir(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	if err := os.RemoveAll(cache.Dir()); err != nil {
		t.Fatal(err)
	}

	if _, err := cache.Clear(); err == nil {
		t.Error("Clear() on a missing dir should fail")
	}
}

func TestFileCache_Prune(t *testing.T) {
	cache, clock := newTestCache(t, time.Minute)

	if err := cache.Set("old", []byte("old")); err != nil {
		t.Fatal(err)
	}
	clock.t = clock.t.Add(50 * time.Second)
	if err := cache.Set("fresh", []byte("fresh")); err != nil {
		t.Fatal(err)
	}
	clock.t = clock.t.Add(20 * time.Second)

	removed, err := cache.Prune()
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}
	if _, ok := cache.Get("fresh"); !ok {
		t.Error("fresh entry was pruned")
	}
}

func TestFileCache_Stats(t *testing.T) {
	cache, clock := newTestCache(t, time.Minute)

	if err := cache.Set("a", []byte("aaaa")); err != nil {
		t.Fatal(err)
	}
	if err := cache.Set("b", []byte("bbbb")); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cache.Dir(), "broken.json"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	st, err := cache.Stats()
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if st.Entries != 3 || st.Expired != 1 {
		t.Errorf("Stats() = %+v, want 3 entries with 1 expired", st)
	}
	if st.Bytes <= 0 {
		t.Errorf("Stats().Bytes = %d", st.Bytes)
	}

	clock.t = clock.t.Add(time.Hour)
	st, _ = cache.Stats()
	if st.Expired != 3 {
		t.Errorf("Stats().Expired = %d, want 3", st.Expired)
	}
}
