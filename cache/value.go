package cache

import (
	"iter"
	"sync"
	"sync/atomic"
)

// Value lazily computes and memoizes a single value.
//
// Value locks on itself and therefore must not be copied after first use;
// use Shared when the cache has to live inside a struct that is copied.
type Value[T any] struct {
	mu       sync.Mutex
	populate func() (T, error)

	// slot is written before cached is set, so a reader that observes
	// cached == true always finds a non-nil slot.
	slot   atomic.Pointer[T]
	cached atomic.Bool

	stats counters
}

// NewValue creates a Value populated on demand by populate.
func NewValue[T any](populate func() (T, error)) *Value[T] {
	return &Value[T]{populate: populate}
}

// Get returns the cached value, running the populate function if the value
// is not cached. At most one populate call runs at a time.
func (v *Value[T]) Get() (T, error) {
	if v.cached.Load() {
		v.stats.hits.Add(1)
		return *v.slot.Load(), nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.cached.Load() {
		v.stats.hits.Add(1)
		return *v.slot.Load(), nil
	}

	v.stats.misses.Add(1)

	var zero T
	if v.populate == nil {
		return zero, ErrNoPopulate
	}

	val, err := v.populate()
	v.stats.record(err)
	if err != nil {
		return zero, err
	}

	v.slot.Store(&val)
	v.cached.Store(true)

	return val, nil
}

// MustGet is like Get but panics if the populate function fails.
func (v *Value[T]) MustGet() T {
	val, err := v.Get()
	if err != nil {
		panic(err)
	}
	return val
}

// Set stores val and marks the cache populated without running the
// populate function. Set does not take the population lock; when it races
// with a populate call the last writer wins.
func (v *Value[T]) Set(val T) {
	v.slot.Store(&val)
	v.cached.Store(true)
}

// Cached reports whether a value is currently cached.
func (v *Value[T]) Cached() bool {
	return v.cached.Load()
}

// InvalidateCache marks the value stale. The old value is kept until the
// next Get replaces it.
func (v *Value[T]) InvalidateCache() {
	v.cached.Store(false)
}

// All yields the cached value, or nothing when no value is cached.
// It never triggers population.
func (v *Value[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if !v.cached.Load() {
			return
		}
		yield(*v.slot.Load())
	}
}

// Stats returns the cache counters.
func (v *Value[T]) Stats() Stats {
	return v.stats.snapshot()
}
