package binkit

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems, or use
// PrometheusCollector.
type MetricsCollector interface {
	// RecordOpen is called after each Open. size is the mapped or
	// decompressed length, err is nil if successful.
	RecordOpen(size int64, duration time.Duration, err error)

	// RecordClose is called once per File when it is closed.
	RecordClose(size int64, duration time.Duration, err error)

	// RecordPrefetch is called after each Prefetch with the bytes covered.
	RecordPrefetch(bytes int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordOpen(int64, time.Duration, error)     {}
func (NoopMetricsCollector) RecordClose(int64, time.Duration, error)    {}
func (NoopMetricsCollector) RecordPrefetch(int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	OpenCount      atomic.Int64
	OpenErrors     atomic.Int64
	OpenTotalNanos atomic.Int64
	OpenBytes      atomic.Int64
	CloseCount     atomic.Int64
	CloseErrors    atomic.Int64
	ClosedBytes    atomic.Int64
	PrefetchCount  atomic.Int64
	PrefetchErrors atomic.Int64
	PrefetchBytes  atomic.Int64
	PrefetchNanos  atomic.Int64
}

// RecordOpen implements MetricsCollector.
func (b *BasicMetricsCollector) RecordOpen(size int64, duration time.Duration, err error) {
	b.OpenCount.Add(1)
	b.OpenTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.OpenErrors.Add(1)
		return
	}
	b.OpenBytes.Add(size)
}

// RecordClose implements MetricsCollector.
func (b *BasicMetricsCollector) RecordClose(size int64, duration time.Duration, err error) {
	b.CloseCount.Add(1)
	b.ClosedBytes.Add(size)
	if err != nil {
		b.CloseErrors.Add(1)
	}
}

// RecordPrefetch implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPrefetch(bytes int64, duration time.Duration, err error) {
	b.PrefetchCount.Add(1)
	b.PrefetchBytes.Add(bytes)
	b.PrefetchNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.PrefetchErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		OpenCount:      b.OpenCount.Load(),
		OpenErrors:     b.OpenErrors.Load(),
		OpenAvgNanos:   b.getAvgOpenNanos(),
		OpenBytes:      b.OpenBytes.Load(),
		CloseCount:     b.CloseCount.Load(),
		CloseErrors:    b.CloseErrors.Load(),
		LiveBytes:      b.OpenBytes.Load() - b.ClosedBytes.Load(),
		PrefetchCount:  b.PrefetchCount.Load(),
		PrefetchErrors: b.PrefetchErrors.Load(),
		PrefetchBytes:  b.PrefetchBytes.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgOpenNanos() int64 {
	count := b.OpenCount.Load()
	if count == 0 {
		return 0
	}
	return b.OpenTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	OpenCount      int64
	OpenErrors     int64
	OpenAvgNanos   int64
	OpenBytes      int64
	CloseCount     int64
	CloseErrors    int64
	LiveBytes      int64
	PrefetchCount  int64
	PrefetchErrors int64
	PrefetchBytes  int64
}
