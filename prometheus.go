package binkit

import (
	"time"

	"github.com/hupe1980/binkit/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "binkit"

// PrometheusCollector is a MetricsCollector backed by Prometheus metrics.
type PrometheusCollector struct {
	opens          *prometheus.CounterVec
	openDuration   prometheus.Histogram
	closes         *prometheus.CounterVec
	liveBytes      prometheus.Gauge
	prefetchBytes  prometheus.Counter
	prefetchErrors prometheus.Counter
}

var _ MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheusCollector registers the file metrics with reg.
// A nil reg registers with prometheus.DefaultRegisterer.
func NewPrometheusCollector(reg prometheus.Registerer) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &PrometheusCollector{
		opens: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "file_opens_total",
			Help:      "Total number of file opens by result.",
		}, []string{"result"}),
		openDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "file_open_duration_seconds",
			Help:      "Time spent mapping and decoding files.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		closes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "file_closes_total",
			Help:      "Total number of file closes by result.",
		}, []string{"result"}),
		liveBytes: f.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "live_bytes",
			Help:      "Bytes held by open files.",
		}),
		prefetchBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "prefetch_bytes_total",
			Help:      "Bytes faulted in by prefetch.",
		}),
		prefetchErrors: f.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "prefetch_errors_total",
			Help:      "Prefetch passes that stopped early.",
		}),
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// RecordOpen implements MetricsCollector.
func (p *PrometheusCollector) RecordOpen(size int64, duration time.Duration, err error) {
	p.opens.WithLabelValues(result(err)).Inc()
	p.openDuration.Observe(duration.Seconds())
	if err == nil {
		p.liveBytes.Add(float64(size))
	}
}

// RecordClose implements MetricsCollector.
func (p *PrometheusCollector) RecordClose(size int64, _ time.Duration, err error) {
	p.closes.WithLabelValues(result(err)).Inc()
	p.liveBytes.Sub(float64(size))
}

// RecordPrefetch implements MetricsCollector.
func (p *PrometheusCollector) RecordPrefetch(bytes int64, _ time.Duration, err error) {
	p.prefetchBytes.Add(float64(bytes))
	if err != nil {
		p.prefetchErrors.Inc()
	}
}

type cacheCollector struct {
	stats cache.StatsProvider

	hits        *prometheus.Desc
	misses      *prometheus.Desc
	populations *prometheus.Desc
	failures    *prometheus.Desc
}

// NewCacheCollector exports the Stats of a cache as counters labeled with
// name. Register the result with a prometheus.Registerer.
func NewCacheCollector(name string, stats cache.StatsProvider) prometheus.Collector {
	labels := prometheus.Labels{"cache": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "cache", metric),
			help, nil, labels,
		)
	}
	return &cacheCollector{
		stats:       stats,
		hits:        desc("hits_total", "Lookups served from the cache."),
		misses:      desc("misses_total", "Lookups that required population."),
		populations: desc("populations_total", "Successful populate calls."),
		failures:    desc("failures_total", "Populate calls that returned an error."),
	}
}

func (c *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hits
	ch <- c.misses
	ch <- c.populations
	ch <- c.failures
}

func (c *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	s := c.stats.Stats()
	ch <- prometheus.MustNewConstMetric(c.hits, prometheus.CounterValue, float64(s.Hits))
	ch <- prometheus.MustNewConstMetric(c.misses, prometheus.CounterValue, float64(s.Misses))
	ch <- prometheus.MustNewConstMetric(c.populations, prometheus.CounterValue, float64(s.Populations))
	ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(s.Failures))
}
