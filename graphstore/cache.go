package graphstore

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Cache is a byte cache for stored graph payloads. Implementations back
// the store's read path; use MemCache for a process-local cache or
// implement the interface over a shared backend such as Redis or
// Memcached.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns nil, nil if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value in the cache with an optional TTL.
	// If ttl is 0, the value should not expire.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache.
	Delete(ctx context.Context, key string) error

	// DeletePrefix removes all values with the given prefix.
	DeletePrefix(ctx context.Context, prefix string) error

	// Clear removes all values from the cache.
	Clear(ctx context.Context) error
}

// Cache key layout for catalog entries. Lookups by record ID and by graph
// name are cached under separate scopes so name changes can invalidate one
// scope without touching the other.
const (
	cacheKeyPrefix  = "causal_graphs:"
	cacheIDPrefix   = cacheKeyPrefix + "id:"
	cacheNamePrefix = cacheKeyPrefix + "name:"
)

func idKey(id uuid.UUID) string {
	return cacheIDPrefix + id.String()
}

func nameKey(name string) string {
	return cacheNamePrefix + name
}

// MemCache is a process-local Cache backed by a map. It is safe for
// concurrent use. Expired entries are dropped lazily on access.
type MemCache struct {
	mu      sync.RWMutex
	entries map[string]memEntry
}

type memEntry struct {
	value []byte
	// expiresAt is the zero time for entries without a TTL.
	expiresAt time.Time
}

// NewMemCache creates an empty in-memory cache.
func NewMemCache() *MemCache {
	return &MemCache{entries: make(map[string]memEntry)}
}

// Get implements Cache.
func (c *MemCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}
	return e.value, nil
}

// Set implements Cache.
func (c *MemCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := memEntry{value: value}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// Delete implements Cache.
func (c *MemCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// DeletePrefix implements Cache.
func (c *MemCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
	return nil
}

// Clear implements Cache.
func (c *MemCache) Clear(_ context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memEntry)
	c.mu.Unlock()
	return nil
}

// Len returns the number of live entries, counting entries whose TTL has
// passed but which have not been dropped yet.
func (c *MemCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ Cache = (*MemCache)(nil)
