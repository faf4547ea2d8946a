package surface

import (
	"sync"

	"github.com/jonwraymond/codemode/catalog"
)

// Cache memoizes generated surfaces keyed by catalog fingerprint. The key is
// the catalog's content hash, so two equal catalogs share an entry and any
// change to a catalog misses. Invalidation is explicit; there is no
// first-call-wins behavior to get stuck on.
//
// Contract:
// - Concurrency: safe for concurrent use.
type Cache struct {
	gen     Generator
	mu      sync.RWMutex
	entries map[string]Surface
}

// NewCache creates a cache that generates missing entries with gen.
func NewCache(gen Generator) *Cache {
	return &Cache{
		gen:     gen,
		entries: make(map[string]Surface),
	}
}

// Get returns the surface for the catalog, generating and storing it on a
// miss.
func (c *Cache) Get(cat *catalog.Catalog) Surface {
	key := cat.Fingerprint()

	c.mu.RLock()
	s, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return s
	}

	// Generation is pure; a racing duplicate produces an identical value.
	s = c.gen.Generate(cat)

	c.mu.Lock()
	c.entries[key] = s
	c.mu.Unlock()
	return s
}

// Invalidate drops the entry for the given catalog fingerprint.
func (c *Cache) Invalidate(fingerprint string) {
	c.mu.Lock()
	delete(c.entries, fingerprint)
	c.mu.Unlock()
}

// Reset drops all entries.
func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]Surface)
	c.mu.Unlock()
}

// Len returns the number of cached surfaces.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
