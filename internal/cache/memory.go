package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache holds rendered segments in process memory. It serves short
// CLI runs on its own and fronts the disk layer in LayeredCache.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a memory cache. Expired segments are purged in
// the background about once per TTL window, at most once a minute.
func NewMemoryCache(defaultTTL time.Duration) *MemoryCache {
	cleanup := defaultTTL
	if cleanup < time.Minute {
		cleanup = time.Minute
	}
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanup),
	}
}

// Get returns the cached rendering for a key
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	if val, found := c.cache.Get(key); found {
		return val.([]byte), true
	}
	return nil, false
}

// Set stores a rendering under the given TTL; zero means the default
func (c *MemoryCache) Set(key string, value []byte, ttl time.Duration) error {
	c.cache.Set(key, value, ttl)
	return nil
}

// Delete removes one key
func (c *MemoryCache) Delete(key string) error {
	c.cache.Delete(key)
	return nil
}

// Clear drops every cached segment
func (c *MemoryCache) Clear() error {
	c.cache.Flush()
	return nil
}
