// internal/cache/memory.go
//
// In-memory implementation of the cache Store.
// Characteristics:
//   - Entries keyed by string in a map, each with an absolute expiry.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Expired entries are dropped lazily on Get and swept on Set.
//   - State is lost when the process restarts.

package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	val     []byte
	expires time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu      sync.RWMutex // guards entries
	entries map[string]entry
	now     func() time.Time
	sets    int // Set calls since the last sweep
}

// sweepEvery bounds how many writes happen between full expiry sweeps.
const sweepEvery = 256

// NewMemory constructs a new in-memory Store.
func NewMemory() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{entries: make(map[string]entry), now: now}
}

// Get looks up key and reports a miss for absent or expired entries.
func (m *memory) Get(ctx context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if now := m.now(); !now.Before(e.expires) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && !now.Before(cur.expires) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, false, nil
	}
	return e.val, true, nil
}

// Set adds or replaces the entry for key.
func (m *memory) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	now := m.now()
	cp := append([]byte(nil), val...)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{val: cp, expires: now.Add(ttl)}
	m.sets++
	if m.sets >= sweepEvery {
		m.sets = 0
		for k, e := range m.entries {
			if !now.Before(e.expires) {
				delete(m.entries, k)
			}
		}
	}
	return nil
}

// Close is a no-op for the memory store.
func (m *memory) Close() error { return nil }

// Len returns the number of stored entries, expired or not.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}
