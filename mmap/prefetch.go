package mmap

import (
	"context"
	"os"
	"sync/atomic"
)

// prefetchSink keeps the page-touching loads observable.
var prefetchSink atomic.Uint32

// Prefetch faults the mapped file into memory by reading one byte per page.
// When the region was opened with a resource controller, page reads are
// throttled by its IO limit. It returns the number of bytes covered.
func (r *Region) Prefetch(ctx context.Context) (int64, error) {
	data, err := r.Data()
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0, nil
	}

	_ = osAdvise(data, AccessWillNeed)

	page := os.Getpagesize()

	var (
		sink    byte
		covered int64
	)
	for off := 0; off < len(data); off += page {
		n := min(page, len(data)-off)
		if err := r.rc.AcquireIO(ctx, n); err != nil {
			return covered, err
		}
		if err := ctx.Err(); err != nil {
			return covered, err
		}
		if r.closed.Load() {
			return covered, ErrClosed
		}
		sink ^= data[off]
		covered += int64(n)
	}
	prefetchSink.Store(uint32(sink))

	return covered, nil
}
