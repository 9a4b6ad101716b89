package cache

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrNoPopulate is returned by Get on a cache constructed without a populate function.
var ErrNoPopulate = errors.New("cache: no populate function")

// Invalidator is implemented by every cache in this package.
type Invalidator interface {
	// InvalidateCache marks all cached values stale so the next access
	// re-runs the populate function.
	InvalidateCache()
}

// Stats is a snapshot of cache counters.
type Stats struct {
	// Hits counts accesses served from the cache.
	Hits int64
	// Misses counts accesses that had to run the populate function.
	Misses int64
	// Populations counts successful populate calls.
	Populations int64
	// Failures counts populate calls that returned an error.
	Failures int64
}

// StatsProvider is implemented by caches that expose counters.
type StatsProvider interface {
	Stats() Stats
}

type counters struct {
	hits        atomic.Int64
	misses      atomic.Int64
	populations atomic.Int64
	failures    atomic.Int64
}

func (c *counters) record(err error) {
	if err != nil {
		c.failures.Add(1)
		return
	}
	c.populations.Add(1)
}

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Populations: c.populations.Load(),
		Failures:    c.failures.Load(),
	}
}

// Group invalidates a set of caches together.
// The zero value is ready to use.
type Group struct {
	mu      sync.Mutex
	members []Invalidator
}

// Add registers caches with the group.
func (g *Group) Add(caches ...Invalidator) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, c := range caches {
		if c != nil {
			g.members = append(g.members, c)
		}
	}
}

// Len returns the number of registered caches.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.members)
}

// InvalidateCache invalidates every registered cache.
func (g *Group) InvalidateCache() {
	g.mu.Lock()
	members := append([]Invalidator(nil), g.members...)
	g.mu.Unlock()

	for _, c := range members {
		c.InvalidateCache()
	}
}
