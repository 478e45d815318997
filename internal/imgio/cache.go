package imgio

import (
	"image"
	"sync"
)

// Cache is a concurrency-safe decoded-photo cache keyed by path. A
// failed decode is cached as nil so the batch workers do not retry a
// broken file.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img *image.NRGBA
	err error
}

// NewCache creates a cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches a photo by stem or filename.
func (c *Cache) Resolve(name string) (*image.NRGBA, error) {
	path, ok := c.index.ResolvePath(name)
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	// Fast path: read lock
	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img, entry.err
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := Load(path)

	// Write lock with double-check
	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img, entry.err
	}
	c.items[path] = &cacheEntry{img: img, err: err}
	c.mu.Unlock()

	return img, err
}

// NotFoundError reports a photo reference with no indexed file.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "imgio: no photo indexed for " + e.Name
}
