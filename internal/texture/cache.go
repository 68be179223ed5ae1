package texture

import (
	"log/slog"
	"sync"
)

// cacheKey identifies one decoded texture. The same file can be cached
// twice, once per color-space interpretation.
type cacheKey struct {
	path   string
	linear bool
}

// Cache hands out shared Texture instances so repeated references to one
// file share a single lazy decode. Safe for concurrent use.
type Cache struct {
	reg   *Registry
	index *Index
	log   *slog.Logger

	mu    sync.RWMutex
	items map[cacheKey]*Texture
}

// NewCache creates a cache. The index may be nil, in which case names are
// used as sources directly.
func NewCache(reg *Registry, index *Index, log *slog.Logger) *Cache {
	return &Cache{
		reg:   reg,
		index: index,
		log:   log,
		items: make(map[cacheKey]*Texture),
	}
}

// Texture resolves a name through the index and returns the shared
// instance for it, creating an unloaded one on first request. The returned
// texture decodes itself on first sample.
func (c *Cache) Texture(name string, linear bool) *Texture {
	path := name
	if c.index != nil {
		path = c.index.Resolve(name)
	}
	key := cacheKey{path: path, linear: linear}

	// Fast path: read lock
	c.mu.RLock()
	tex := c.items[key]
	c.mu.RUnlock()
	if tex != nil {
		return tex
	}

	// Write lock with double-check
	c.mu.Lock()
	defer c.mu.Unlock()
	if tex := c.items[key]; tex != nil {
		return tex
	}
	tex = New(path, linear, c.reg, c.log)
	c.items[key] = tex
	return tex
}

// Len returns the number of cached textures.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
