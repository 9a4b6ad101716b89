package cache

import (
	"iter"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Shared is the value-semantics variant of Value.
//
// A Shared may be copied. The population lock is a handle owned outside the
// payload: copies share it (and the populate function) but each copy keeps
// its own slot and cached flag. Copying a Shared while another goroutine is
// calling Get or Set on it is a data race.
//
// The zero value has no populate function; Get returns ErrNoPopulate.
type Shared[T any] struct {
	lock     *sync.Mutex
	populate func() (T, error)

	cached uint32
	slot   unsafe.Pointer // *T
}

// NewShared creates a Shared populated on demand by populate.
func NewShared[T any](populate func() (T, error)) Shared[T] {
	return Shared[T]{
		lock:     new(sync.Mutex),
		populate: populate,
	}
}

func (s *Shared[T]) load() T {
	return *(*T)(atomic.LoadPointer(&s.slot))
}

func (s *Shared[T]) store(val T) {
	atomic.StorePointer(&s.slot, unsafe.Pointer(&val))
	atomic.StoreUint32(&s.cached, 1)
}

// Get returns the cached value, running the populate function under the
// shared lock if the value is not cached.
func (s *Shared[T]) Get() (T, error) {
	if atomic.LoadUint32(&s.cached) == 1 {
		return s.load(), nil
	}

	var zero T
	if s.lock == nil || s.populate == nil {
		return zero, ErrNoPopulate
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	if atomic.LoadUint32(&s.cached) == 1 {
		return s.load(), nil
	}

	val, err := s.populate()
	if err != nil {
		return zero, err
	}
	s.store(val)

	return val, nil
}

// Set stores val and marks the cache populated without taking the lock.
func (s *Shared[T]) Set(val T) {
	s.store(val)
}

// Cached reports whether a value is currently cached.
func (s *Shared[T]) Cached() bool {
	return atomic.LoadUint32(&s.cached) == 1
}

// InvalidateCache marks the value stale.
func (s *Shared[T]) InvalidateCache() {
	atomic.StoreUint32(&s.cached, 0)
}

// All yields the cached value, or nothing when no value is cached.
func (s *Shared[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		if atomic.LoadUint32(&s.cached) != 1 {
			return
		}
		yield(s.load())
	}
}
