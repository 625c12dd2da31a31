// internal/cache/store.go
//
// Response cache for catalog API calls.
// Characteristics:
//   - Values are opaque byte slices (raw JSON bodies) with a per-entry TTL.
//   - Implementations: in-memory map (memory.go), Redis (redis.go), SQLite (sqlite.go).
//   - A miss is (nil, false, nil); errors are reserved for backend failures.

package cache

import (
	"context"
	"encoding/hex"
	"time"

	"golang.org/x/crypto/blake2b"
)

// Store defines the persistence interface for cached responses.
type Store interface {
	// Get returns the cached value for key, if present and not expired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores val under key for ttl. A ttl <= 0 stores nothing.
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error

	// Close releases backend resources.
	Close() error
}

// KeyPrefix namespaces cache keys in shared backends.
const KeyPrefix = "catalog:"

// Key derives a fixed-length cache key from the request parts.
func Key(parts ...string) string {
	h, _ := blake2b.New256(nil)
	for _, p := range parts {
		_, _ = h.Write([]byte(p))
		_, _ = h.Write([]byte{0})
	}
	return KeyPrefix + hex.EncodeToString(h.Sum(nil))
}
