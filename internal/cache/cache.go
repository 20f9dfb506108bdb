package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache keys
const (
	KeyRadarrTags       = "radarr:tags"
	KeyCandidatePreview = "radarr:candidate_preview"
)

// TTLs per key class. Previews are cheap to recompute but hit Radarr twice,
// so they get a short TTL and are invalidated after every run.
const (
	TagsTTL    = 5 * time.Minute
	PreviewTTL = 5 * time.Minute
)

// Cache wraps go-cache with typed helpers
type Cache struct {
	store *gocache.Cache
}

// New creates a new cache instance
func New() *Cache {
	return &Cache{
		store: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Get retrieves a value from the cache
func (c *Cache) Get(key string) (interface{}, bool) {
	return c.store.Get(key)
}

// Set stores a value in the cache with the given TTL
func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.store.Set(key, value, ttl)
}

// Delete removes a key from the cache
func (c *Cache) Delete(key string) {
	c.store.Delete(key)
}

// Flush clears the entire cache
func (c *Cache) Flush() {
	c.store.Flush()
}

// GetOrSet retrieves a cached value, computing and storing it on a miss.
func (c *Cache) GetOrSet(key string, ttl time.Duration, fn func() (interface{}, error)) (interface{}, error) {
	if val, found := c.Get(key); found {
		return val, nil
	}

	val, err := fn()
	if err != nil {
		return nil, err
	}

	c.Set(key, val, ttl)
	return val, nil
}
