// Package binkit provides read-only, zero-copy access to binary files and
// lazily populated caches for the values parsed out of them.
//
// # Quick Start
//
//	f, err := binkit.Open("image.bin")
//	if err != nil {
//		return err
//	}
//	defer f.Close()
//
//	c, _ := f.CursorAt(0x3C)
//	offset, _ := c.ReadUint32()
//
// # Building Blocks
//
// The facade composes packages that can also be used on their own:
//
//   - mmap: read-only memory-mapped regions with a closed-state check on every access
//   - cursor: little-endian positional reader over any byte source
//   - cache: exactly-once lazy caches (Value, Shared, Keyed)
//   - inflate: transparent zstd, lz4, gzip and s2 decompression
//
// A typical parser keeps a cache.Keyed whose populate function decodes a
// record through a cursor duplicated from the file's cursor:
//
//	records := cache.NewKeyed(func(off int64) (Record, error) {
//		c, err := f.CursorAt(off)
//		if err != nil {
//			return Record{}, err
//		}
//		return parseRecord(c)
//	})
//
// # Observability
//
// Open accepts WithLogger for structured slog output and WithMetricsCollector
// for operation metrics. NewPrometheusCollector exports them to Prometheus,
// and NewCacheCollector exports cache.Stats of any cache.
//
// # Resource Limits
//
// A Budget shared between files caps the total mapped bytes and throttles
// prefetch IO:
//
//	budget := binkit.NewBudget(1<<30, 64<<20)
//	f, err := binkit.Open(path, binkit.WithBudget(budget))
package binkit
