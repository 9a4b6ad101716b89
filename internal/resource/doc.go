// Package resource implements the Controller for mapped-memory and IO limits.
//
// The Controller provides centralized management of two resource types:
//
//   - Memory: Track and limit the bytes of address space held by open mapped
//     regions (non-blocking, fail-fast)
//   - IO: Rate-limit page prefetching so warming a large file does not starve
//     foreground readers
//
// # Architecture
//
//	┌───────────────────────────────────────────┐
//	│                Controller                 │
//	├─────────────────────┬─────────────────────┤
//	│  Mapped Memory      │  IO Rate Limiter    │
//	│  (fail-fast)        │  (token bucket)     │
//	├─────────────────────┼─────────────────────┤
//	│  AcquireMemory      │  AcquireIO          │
//	│  ReleaseMemory      │  TryAcquireIO       │
//	│  MemoryUsage        │                     │
//	└─────────────────────┴─────────────────────┘
//
// # Memory Management
//
// Memory tracking uses a weighted semaphore for hard limits and atomic counters
// for usage tracking. AcquireMemory is non-blocking and returns immediately
// with ErrMemoryLimitExceeded if the limit would be exceeded:
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30, // 1GB of mappings
//	})
//
//	if err := rc.AcquireMemory(size); err != nil {
//	    // ErrMemoryLimitExceeded - caller decides retry/backoff
//	}
//	defer rc.ReleaseMemory(size)
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 * 1024 * 1024, // 100MB/s
//	})
//
//	if err := rc.AcquireIO(ctx, pageSize); err != nil {
//	    return err
//	}
//
// # Nil Safety
//
// All methods handle nil Controller gracefully - they become no-ops.
// This allows optional resource limiting without nil checks everywhere.
package resource
