package resolve

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/handiism/workparts/internal/model"
)

// FetchFunc fetches one work by id, returning the node and any non-fatal
// warnings attached to the lookup.
type FetchFunc func(ctx context.Context, id string) (*model.Work, []string, error)

// Cache memoizes id → resolved work for the lifetime of a run.
//
// Entries are never evicted: albums are bounded in size, so the number of
// distinct works a run touches stays small. Concurrent fetches of the same
// id are collapsed by a singleflight group; a redundant fetch would be
// harmless (the service is authoritative and nodes are immutable) but
// there is no reason to spend rate-limit budget on one.
//
// Lookup failures are not cached: a later track referencing the same id
// gets a fresh chance, mirroring how transient outages clear up mid-run.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	group   singleflight.Group
}

type cacheEntry struct {
	work     *model.Work
	warnings []string
}

// NewCache creates an empty run cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Lookup returns the cached node for id, if present.
func (c *Cache) Lookup(id string) (*model.Work, []string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	return e.work, e.warnings, ok
}

// Len returns the number of cached nodes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetOrFetch returns the cached node for id or fetches and caches it.
//
// The warnings stored with a node are returned to every caller, so each
// track whose chain passes through an ambiguous work records the same
// warning.
func (c *Cache) GetOrFetch(ctx context.Context, id string, fetch FetchFunc) (*model.Work, []string, error) {
	if work, warns, ok := c.Lookup(id); ok {
		return work, warns, nil
	}

	v, err, _ := c.group.Do(id, func() (any, error) {
		// Re-check under the group: a concurrent caller may have
		// completed between our Lookup and Do.
		if work, warns, ok := c.Lookup(id); ok {
			return cacheEntry{work: work, warnings: warns}, nil
		}

		work, warns, err := fetch(ctx, id)
		if err != nil {
			return cacheEntry{}, err
		}

		e := cacheEntry{work: work, warnings: warns}
		c.mu.Lock()
		c.entries[id] = e
		c.mu.Unlock()
		return e, nil
	})
	if err != nil {
		return nil, nil, err
	}

	e := v.(cacheEntry)
	return e.work, e.warnings, nil
}
