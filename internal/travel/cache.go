package travel

import (
	"strings"
	"time"
)

// Cache stores resolved routes with a TTL. It is a plain value threaded
// through by the caller and persisted alongside the processed-shows
// snapshot; nothing here touches global state.
type Cache struct {
	Routes   map[string]*Route    `json:"routes"`    // "FROM|TO" → route
	CachedAt map[string]time.Time `json:"cached_at"` // key → cache time
	TTL      time.Duration        `json:"-"`         // not serialized
}

// DefaultTTL is how long a cached route stays valid. Road networks don't
// change much; 30 days keeps API usage down across runs.
const DefaultTTL = 30 * 24 * time.Hour

// NewCache creates an empty route cache with the default TTL.
func NewCache() *Cache {
	return &Cache{
		Routes:   make(map[string]*Route),
		CachedAt: make(map[string]time.Time),
		TTL:      DefaultTTL,
	}
}

// Get retrieves a route from cache if present and not expired.
func (c *Cache) Get(from, to string) *Route {
	key := cacheKey(from, to)

	route, exists := c.Routes[key]
	if !exists {
		return nil
	}

	cachedTime, hasTime := c.CachedAt[key]
	if !hasTime || time.Since(cachedTime) > c.TTL {
		delete(c.Routes, key)
		delete(c.CachedAt, key)
		return nil
	}

	return route
}

// Set stores a route in the cache.
func (c *Cache) Set(from, to string, route *Route) {
	key := cacheKey(from, to)
	c.Routes[key] = route
	c.CachedAt[key] = time.Now()
}

// Size returns the number of cached routes.
func (c *Cache) Size() int {
	return len(c.Routes)
}

// cacheKey normalizes postcodes so "yo8 9na" and "YO89NA" share an entry.
func cacheKey(from, to string) string {
	norm := func(s string) string {
		return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	}
	return norm(from) + "|" + norm(to)
}
