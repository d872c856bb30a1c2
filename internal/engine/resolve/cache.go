package resolve

import (
	"strings"
	"sync"
)

// cacheKey identifies a repeat query: same persona, same normalized input.
type cacheKey struct {
	personaID string
	input     string
}

// Cache stores sanitized remote responses for the session. Append-only:
// entries are written once after a tier-1 success and never evicted.
type Cache struct {
	mu      sync.RWMutex
	entries map[cacheKey]string
}

// NewCache returns an empty response cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey]string)}
}

// Get looks up the cached response for a normalized input.
func (c *Cache) Get(personaID, normalized string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	text, ok := c.entries[cacheKey{personaID, normalized}]
	return text, ok
}

// Put records a sanitized response. Existing entries are kept as-is so a
// repeat query keeps returning the answer the user already saw.
func (c *Cache) Put(personaID, normalized, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := cacheKey{personaID, normalized}
	if _, ok := c.entries[key]; ok {
		return
	}
	c.entries[key] = text
}

// Len reports the number of cached responses.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Normalize produces the cache-key form of user input: lowercased, trimmed,
// with internal whitespace runs collapsed to single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}
