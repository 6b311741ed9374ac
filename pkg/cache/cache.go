package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"
)

// Cache stores opaque byte values by key.
// A miss is reported as (nil, false, nil); errors are reserved for backend
// failures.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// NullCache never stores anything. It backs --no-cache.
type NullCache struct{}

// NewNullCache returns a cache that misses on every lookup.
func NewNullCache() Cache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error)        { return nil, false, nil }
func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (*NullCache) Delete(context.Context, string) error                     { return nil }
func (*NullCache) Close() error                                             { return nil }

// Key types reported to the cache hooks and used as key prefixes.
const (
	KeyTypeImports = "imports"
)

// ImportsTTL bounds how long extracted import lists are kept. Entries are
// keyed by file content, so they never go stale; the TTL only reclaims space.
const ImportsTTL = 30 * 24 * time.Hour

// ImportsKey returns the key for the import specifiers extracted from a
// source file with the given content and grammar.
func ImportsKey(language string, content []byte) string {
	return hashKey(KeyTypeImports, language, Hash(content))
}

// DefaultDir returns the directory used by the file cache:
// $XDG_CACHE_HOME/modgraph, falling back to the user cache directory.
func DefaultDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, "modgraph"), nil
	}
	base, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "modgraph"), nil
}

// Hash returns the hex SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey returns "prefix:" followed by a digest of parts. Parts are separated
// by a NUL byte so ("ab", "c") and ("a", "bc") differ.
func hashKey(prefix string, parts ...string) string {
	h := sha256.New()
	for i, p := range parts {
		if i > 0 {
			h.Write([]byte{0})
		}
		h.Write([]byte(p))
	}
	return prefix + ":" + hex.EncodeToString(h.Sum(nil))
}
