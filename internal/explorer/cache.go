package explorer

import "github.com/smileynet/learnpath/internal/backend"

// ResourceCache stores fetched resource bundles keyed by subtopic title.
// Presence of an entry means the subtopic is expanded.
// It is not safe for concurrent use; callers must synchronize externally
// or confine access to a single goroutine (e.g., the Bubble Tea update loop).
type ResourceCache struct {
	entries map[string]backend.ResourceBundle
}

// NewResourceCache creates an empty cache.
func NewResourceCache() *ResourceCache {
	return &ResourceCache{entries: make(map[string]backend.ResourceBundle)}
}

// Has reports whether a bundle is cached for title.
func (c *ResourceCache) Has(title string) bool {
	_, ok := c.entries[title]
	return ok
}

// Get returns the cached bundle for title, or false on miss.
func (c *ResourceCache) Get(title string) (backend.ResourceBundle, bool) {
	b, ok := c.entries[title]
	return b, ok
}

// Set stores a bundle, replacing any existing entry.
func (c *ResourceCache) Set(title string, bundle backend.ResourceBundle) {
	c.entries[title] = bundle
}

// ClearOne removes the entry for title, if present.
func (c *ResourceCache) ClearOne(title string) {
	delete(c.entries, title)
}

// ClearAll empties the cache.
func (c *ResourceCache) ClearAll() {
	c.entries = make(map[string]backend.ResourceBundle)
}

// Len returns the number of cached bundles.
func (c *ResourceCache) Len() int {
	return len(c.entries)
}
