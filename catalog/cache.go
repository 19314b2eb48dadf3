package catalog

import (
	"sync"
	"sync/atomic"

	"github.com/OmGaler/kp-pesach-orders/models"
	"github.com/OmGaler/kp-pesach-orders/search"
)

// Snapshot bundles a parsed catalog with everything derived from it.
// Snapshots are immutable, so any number of requests can read one
// concurrently without locking.
type Snapshot struct {
	Categories []models.Category
	Products   map[string]models.Product
	Index      *search.Index
}

// Cache lazily builds and holds the current catalog snapshot. Refresh
// replaces the snapshot atomically; in-flight readers keep whichever
// snapshot they already loaded.
type Cache struct {
	load func() ([]models.Category, error)

	mu   sync.Mutex
	snap atomic.Pointer[Snapshot]
}

func NewCache(load func() ([]models.Category, error)) *Cache {
	return &Cache{load: load}
}

// Get returns the current snapshot, building it on first use.
func (c *Cache) Get() (*Snapshot, error) {
	if snap := c.snap.Load(); snap != nil {
		return snap, nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if snap := c.snap.Load(); snap != nil {
		return snap, nil
	}
	return c.refreshLocked()
}

// Refresh rebuilds the snapshot from the loader and swaps it in.
func (c *Cache) Refresh() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshLocked()
}

func (c *Cache) refreshLocked() (*Snapshot, error) {
	categories, err := c.load()
	if err != nil {
		return nil, err
	}
	snap := &Snapshot{
		Categories: categories,
		Products:   BuildProductIndex(categories),
		Index:      search.BuildIndex(categories),
	}
	c.snap.Store(snap)
	return snap, nil
}
