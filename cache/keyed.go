package cache

import (
	"iter"
	"sync"
)

// Keyed maps keys to lazily computed values.
//
// Lookups go through a sync.Map and never block. Population is serialized by
// one mutex for the whole cache, so populate calls for different keys run one
// after another.
type Keyed[K comparable, V any] struct {
	mu       sync.Mutex
	populate func(K) (V, error)
	values   sync.Map // K -> V

	stats counters
}

// NewKeyed creates a Keyed cache populated on demand by populate.
func NewKeyed[K comparable, V any](populate func(K) (V, error)) *Keyed[K, V] {
	return &Keyed[K, V]{populate: populate}
}

func (c *Keyed[K, V]) load(key K) (V, bool) {
	v, ok := c.values.Load(key)
	if !ok {
		var zero V
		return zero, false
	}
	return as[V](v), true
}

// as converts a stored entry back to its type. A nil interface stored for an
// interface-typed K or V comes back as the zero value instead of panicking.
func as[T any](x any) T {
	t, _ := x.(T)
	return t
}

// Get returns the value for key, populating it if absent.
// A populate error is returned and the key stays unset.
func (c *Keyed[K, V]) Get(key K) (V, error) {
	if v, ok := c.load(key); ok {
		c.stats.hits.Add(1)
		return v, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.load(key); ok {
		c.stats.hits.Add(1)
		return v, nil
	}

	c.stats.misses.Add(1)

	var zero V
	if c.populate == nil {
		return zero, ErrNoPopulate
	}

	v, err := c.populate(key)
	c.stats.record(err)
	if err != nil {
		return zero, err
	}

	c.values.Store(key, v)

	return v, nil
}

// Set stores v for key, replacing any cached value, without running the
// populate function or taking the population lock.
func (c *Keyed[K, V]) Set(key K, v V) {
	c.values.Store(key, v)
}

// TryGetExisting returns the cached value for key. It never populates.
func (c *Keyed[K, V]) TryGetExisting(key K) (V, bool) {
	return c.load(key)
}

// TryGet is like Get but reports a populate failure as false instead of
// returning the error.
func (c *Keyed[K, V]) TryGet(key K) (V, bool) {
	v, err := c.Get(key)
	if err != nil {
		var zero V
		return zero, false
	}
	return v, true
}

// Remove deletes key and returns the value it held, if any.
func (c *Keyed[K, V]) Remove(key K) (V, bool) {
	v, ok := c.values.LoadAndDelete(key)
	if !ok {
		var zero V
		return zero, false
	}
	return as[V](v), true
}

// Len returns the number of cached entries. Under concurrent mutation the
// count is approximate.
func (c *Keyed[K, V]) Len() int {
	n := 0
	c.values.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// All yields the cached entries. The traversal does not block writers and
// may or may not observe entries added or removed while it runs.
func (c *Keyed[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		c.values.Range(func(k, v any) bool {
			return yield(as[K](k), as[V](v))
		})
	}
}

// Values yields the cached values with the same consistency as All.
func (c *Keyed[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		c.values.Range(func(_, v any) bool {
			return yield(as[V](v))
		})
	}
}

// Clear removes all entries.
func (c *Keyed[K, V]) Clear() {
	c.values.Clear()
}

// InvalidateCache removes all entries; it is the same as Clear.
func (c *Keyed[K, V]) InvalidateCache() {
	c.Clear()
}

// Stats returns the cache counters.
func (c *Keyed[K, V]) Stats() Stats {
	return c.stats.snapshot()
}
