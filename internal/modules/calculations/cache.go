// Package calculations provides an optional memoization layer around the
// pure engine components. The engine itself never caches; callers that
// evaluate the same snapshot repeatedly can wrap calls in a Cache keyed by a
// canonical serialization of the inputs. The cache is not authoritative:
// concurrent identical calls may race to populate an entry and any writer
// wins, which is safe because every cached computation is deterministic.
package calculations

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

// Cache memoizes computation results under deterministic input keys. Safe
// for concurrent use.
type Cache struct {
	mu      sync.Mutex
	entries map[string]any
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]any)}
}

// Key derives a deterministic cache key from an operation name and its
// inputs by hashing their canonical msgpack serialization. Inputs that
// msgpack cannot encode return an error rather than a degenerate key.
func Key(operation string, inputs ...any) (string, error) {
	h := sha256.New()
	h.Write([]byte(operation))
	for _, input := range inputs {
		encoded, err := msgpack.Marshal(input)
		if err != nil {
			return "", fmt.Errorf("encoding cache key input: %w", err)
		}
		h.Write(encoded)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Get returns the cached value for key, if any.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	return value, ok
}

// Set stores value under key, replacing any existing entry. Concurrent
// writers for the same key are allowed; the last one wins.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// GetOrCompute returns the cached value for key or computes, stores and
// returns it. compute may run more than once for the same key under
// concurrent access.
func (c *Cache) GetOrCompute(key string, compute func() any) any {
	if value, ok := c.Get(key); ok {
		return value
	}
	value := compute()
	c.Set(key, value)
	return value
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]any)
}
