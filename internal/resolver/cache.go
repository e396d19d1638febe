package resolver

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/lbds137/tzurot/internal/model"
)

// Cache is the TTL- and size-bounded resolution cache. Entries are keyed
// exclusively by canonical id: names, slugs, and aliases are ambiguous and
// mutable, so they never key the cache. Values always represent the
// unfiltered view; access-filtered resolutions are never stored (see the
// service's caching rules).
type Cache struct {
	lru     *expirable.LRU[string, *model.ResolvedPersonality]
	maxSize int
	ttl     time.Duration
}

// CacheStats is a point-in-time snapshot of the cache's bounds and fill.
type CacheStats struct {
	Size    int           `json:"size"`
	MaxSize int           `json:"max_size"`
	TTL     time.Duration `json:"ttl"`
}

// NewCache creates a cache bounded to maxSize entries with the given TTL.
// Whichever bound triggers first evicts: oldest entries fall out at
// capacity, expired entries on TTL.
func NewCache(maxSize int, ttl time.Duration) *Cache {
	return &Cache{
		lru:     expirable.NewLRU[string, *model.ResolvedPersonality](maxSize, nil, ttl),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Get returns the cached value for a canonical id, if present and fresh.
func (c *Cache) Get(id string) (*model.ResolvedPersonality, bool) {
	return c.lru.Get(id)
}

// Set stores a resolved personality under its canonical id.
func (c *Cache) Set(id string, value *model.ResolvedPersonality) {
	c.lru.Add(id, value)
}

// Delete removes one entry. Safe to call for absent ids.
func (c *Cache) Delete(id string) {
	c.lru.Remove(id)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.lru.Purge()
}

// Stats reports the cache's current size and configured bounds.
func (c *Cache) Stats() CacheStats {
	return CacheStats{
		Size:    c.lru.Len(),
		MaxSize: c.maxSize,
		TTL:     c.ttl,
	}
}
