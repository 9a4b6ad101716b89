// Package cache provides lazily populated memoization caches.
//
// Three cache shapes share one contract: a populate function, fixed at
// construction, computes a value on first access; the result is stored and
// served without recomputation until the cache is explicitly invalidated.
//
// # Value (single value, reference semantics)
//
//	types := cache.NewValue(func() ([]TypeInfo, error) {
//	    return parseTypes(cur.Duplicate())
//	})
//	ts, err := types.Get()
//
// Value uses double-checked initialization: an unlocked check of the cached
// flag, then the instance's own mutex, a recheck and the populate call. A
// Value must not be copied after first use.
//
// # Shared (single value, value semantics)
//
// Shared may be embedded and copied by value. Its lock is a separate handle
// created by NewShared, so every copy serializes population on the same lock
// while keeping its own slot.
//
// # Keyed
//
//	symbols := cache.NewKeyed(func(rva uint32) (Symbol, error) {
//	    return lookupSymbol(rva)
//	})
//	sym, err := symbols.Get(0x1000)
//
// Lookups are lock-free. Population is guarded by a single mutex shared by all
// keys, so populate calls for different keys never overlap.
//
// # Errors
//
// A populate error is returned to the caller that triggered it and is never
// cached: the entry stays unpopulated and the next access retries.
//
// # Eviction
//
// There is none. Entries leave the cache only through InvalidateCache, Clear
// or Remove.
package cache
