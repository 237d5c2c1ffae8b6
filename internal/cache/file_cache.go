// Package cache stores API responses on disk so repeated station lookups do
// not hit the reservation backend.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/orrs-rail/orrs-cli/internal/logging"
)

const entryExt = ".json"

// FileCache implements a file-based cache with TTL
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// cacheEntry represents a cached item with expiration
type cacheEntry struct {
	Key       string    `json:"key"`
	Data      []byte    `json:"data"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Stats describes the cache directory.
type Stats struct {
	Dir     string
	Entries int
	Expired int
	Bytes   int64
}

// NewFileCache creates a new file cache
func NewFileCache(dir string, ttl time.Duration) (*FileCache, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}

	return &FileCache{
		dir: dir,
		ttl: ttl,
		now: time.Now,
	}, nil
}

// DefaultCacheDir returns the default cache directory
func DefaultCacheDir() string {
	if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
		return filepath.Join(xdgCache, "orrs")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "orrs-cache")
	}

	return filepath.Join(home, ".cache", "orrs")
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

// keyToFilename converts a cache key (URL) to a filename
func (c *FileCache) keyToFilename(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+entryExt)
}

// Get retrieves a value from the cache
func (c *FileCache) Get(key string) ([]byte, bool) {
	filename := c.keyToFilename(key)

	entry, err := readEntry(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			logging.Debug("dropping unreadable cache entry", zap.String("file", filename), zap.Error(err))
			_ = os.Remove(filename)
		}
		return nil, false
	}

	if c.now().After(entry.ExpiresAt) {
		_ = os.Remove(filename)
		return nil, false
	}

	return entry.Data, true
}

// Set stores a value in the cache. The entry is written to a temporary file
// and renamed into place so readers never see a partial entry.
func (c *FileCache) Set(key string, value []byte) error {
	data, err := json.Marshal(cacheEntry{
		Key:       key,
		Data:      value,
		ExpiresAt: c.now().Add(c.ttl),
	})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, "entry-*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), c.keyToFilename(key))
}

// Delete removes the entry for key. A missing entry is not an error.
func (c *FileCache) Delete(key string) error {
	if err := os.Remove(c.keyToFilename(key)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Clear removes all cache entries and returns how many were removed.
func (c *FileCache) Clear() (int, error) {
	removed := 0
	err := c.walk(func(filename string, _ *cacheEntry, _ int64) {
		if os.Remove(filename) == nil {
			removed++
		}
	})
	return removed, err
}

// Prune removes expired and unreadable entries and returns how many were removed.
func (c *FileCache) Prune() (int, error) {
	now := c.now()
	removed := 0
	err := c.walk(func(filename string, entry *cacheEntry, _ int64) {
		if entry != nil && !now.After(entry.ExpiresAt) {
			return
		}
		if os.Remove(filename) == nil {
			removed++
		}
	})
	return removed, err
}

// Stats counts the entries in the cache directory.
func (c *FileCache) Stats() (Stats, error) {
	now := c.now()
	st := Stats{Dir: c.dir}
	err := c.walk(func(_ string, entry *cacheEntry, size int64) {
		st.Entries++
		st.Bytes += size
		if entry == nil || now.After(entry.ExpiresAt) {
			st.Expired++
		}
	})
	return st, err
}

// walk calls fn for every entry file. entry is nil when the file could not be decoded.
func (c *FileCache) walk(fn func(filename string, entry *cacheEntry, size int64)) error {
	files, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != entryExt {
			continue
		}
		filename := filepath.Join(c.dir, f.Name())

		var size int64
		if info, err := f.Info(); err == nil {
			size = info.Size()
		}
		entry, err := readEntry(filename)
		if err != nil {
			entry = nil
		}
		fn(filename, entry, size)
	}
	return nil
}

func readEntry(filename string) (*cacheEntry, error) {
	// #nosec G304 -- filename is derived from a hash of the cache key or from ReadDir
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
