package binkit

import (
	"log/slog"

	"github.com/hupe1980/binkit/internal/fs"
	"github.com/hupe1980/binkit/mmap"
)

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	budget           *Budget
	access           mmap.AccessPattern
	decompress       bool
	decompressLimit  int64
	fs               fs.FileSystem
}

// Option configures Open.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &binkit.BasicMetricsCollector{}
//	f, _ := binkit.Open(path, binkit.WithMetricsCollector(metrics))
//	// ... use f ...
//	stats := metrics.GetStats()
//	fmt.Printf("Opens: %d, Avg latency: %dns\n", stats.OpenCount, stats.OpenAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := binkit.NewJSONLogger(slog.LevelInfo)
//	f, _ := binkit.Open(path, binkit.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithBudget charges the mapping against b. Files sharing a budget share
// its limits.
func WithBudget(b *Budget) Option {
	return func(o *options) {
		o.budget = b
	}
}

// WithAccessPattern applies an access hint to the mapping.
func WithAccessPattern(p mmap.AccessPattern) Option {
	return func(o *options) {
		o.access = p
	}
}

// WithDecompression makes Open decode zstd, lz4, gzip and s2 files into
// memory. limit caps the decompressed size; zero means no cap.
// Uncompressed files are still served from the mapping.
func WithDecompression(limit int64) Option {
	return func(o *options) {
		o.decompress = true
		o.decompressLimit = limit
	}
}

func withFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		o.fs = fsys
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		access:           mmap.AccessDefault,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}

func (o *options) mapOptions() []mmap.Option {
	opts := []mmap.Option{
		mmap.WithResourceController(o.budget.controller()),
	}
	if o.access != mmap.AccessDefault {
		opts = append(opts, mmap.WithAccessPattern(o.access))
	}
	if o.fs != nil {
		opts = append(opts, mmap.WithFileSystem(o.fs))
	}
	return opts
}
