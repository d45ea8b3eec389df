package catalog

import (
	"os"
	"sync"
	"time"

	"github.com/trusteddatanow/catalog/internal/domain"
)

// Cache serves the catalog from memory, reloading when the file's mtime
// changes. The maintenance jobs rewrite the file atomically, so a reload
// always observes a complete document.
type Cache struct {
	store *Store

	mu        sync.Mutex
	modTime   time.Time
	resources []*domain.Resource
}

// NewCache wraps a store with an mtime-checked in-memory copy.
func NewCache(store *Store) *Cache {
	return &Cache{store: store}
}

// Get returns the current catalog, reloading it if the file changed.
// Callers must not mutate the returned slice or its records.
func (c *Cache) Get() ([]*domain.Resource, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	info, err := os.Stat(c.store.Path())
	if err != nil {
		return nil, &ReadError{Path: c.store.Path(), Err: err}
	}

	if c.resources != nil && info.ModTime().Equal(c.modTime) {
		return c.resources, nil
	}

	resources, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	c.resources = resources
	c.modTime = info.ModTime()
	return resources, nil
}
