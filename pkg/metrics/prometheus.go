// Package metrics provides Prometheus metrics for the Futbolai
// reconciliation pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the reconciliation
// pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Resolution pipeline
	resolutions       *prometheus.CounterVec
	resolutionLatency prometheus.Histogram
	validationScore   prometheus.Histogram
	mergeFieldWins    *prometheus.CounterVec

	// Source adapters
	adapterFetches      *prometheus.CounterVec
	adapterFetchLatency *prometheus.HistogramVec

	// Cache stores
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheEvictions *prometheus.CounterVec
	cacheSize      *prometheus.GaugeVec

	// Warmup pipeline
	warmupQueueSize prometheus.Gauge
	warmupResolved  prometheus.Counter
	workerCount     prometheus.Gauge
	workerErrors    prometheus.Counter

	// HTTP boundary
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "futbolai",
		subsystem:        "pipeline",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.resolutions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "resolutions_total",
			Help:      "Total resolutions by outcome (resolved, cache_hit, failed)",
		},
		[]string{"outcome"},
	)

	m.resolutionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "resolution_latency_milliseconds",
		Help:      "End-to-end resolution latency in milliseconds",
		Buckets:   []float64{1, 5, 10, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	m.validationScore = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_score",
		Help:      "Distribution of validator confidence scores",
		Buckets:   []float64{0, 10, 25, 50, 70, 85, 95, 100},
	})

	m.mergeFieldWins = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "merge_field_wins_total",
			Help:      "Fields won per source during reconciliation",
		},
		[]string{"source"},
	)

	m.adapterFetches = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "adapter_fetches_total",
			Help:      "Adapter fetches by adapter and outcome (ok, absent, error, disabled)",
		},
		[]string{"adapter", "outcome"},
	)

	m.adapterFetchLatency = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "adapter_fetch_latency_milliseconds",
			Help:      "Adapter fetch latency in milliseconds",
			Buckets:   []float64{1, 5, 10, 50, 100, 250, 500, 1000, 2500, 5000, 8000},
		},
		[]string{"adapter"},
	)

	m.cacheHits = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_hits_total",
			Help:      "Cache hits per store",
		},
		[]string{"store"},
	)

	m.cacheMisses = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_misses_total",
			Help:      "Cache misses per store, stale entries included",
		},
		[]string{"store"},
	)

	m.cacheEvictions = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_evictions_total",
			Help:      "Entries actively evicted by the sweeper per store",
		},
		[]string{"store"},
	)

	m.cacheSize = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cache_size",
			Help:      "Current entry count per store",
		},
		[]string{"store"},
	)

	m.warmupQueueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warmup_queue_size",
		Help:      "Subjects waiting in the warmup queue",
	})

	m.warmupResolved = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "warmup_resolved_total",
		Help:      "Subjects resolved into cache by the warmup workers",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Active warmup workers",
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Warmup worker failures",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)
}

// RecordResolution increments the resolution counter for an outcome.
func RecordResolution(outcome string) {
	globalManager.resolutions.WithLabelValues(outcome).Inc()
}

// RecordResolutionLatency records end-to-end resolution latency.
func RecordResolutionLatency(latencyMs float64) {
	globalManager.resolutionLatency.Observe(latencyMs)
}

// RecordValidationScore records a validator confidence score.
func RecordValidationScore(score int) {
	globalManager.validationScore.Observe(float64(score))
}

// RecordMergeFieldWin counts a field won by a source during merge.
func RecordMergeFieldWin(source string) {
	globalManager.mergeFieldWins.WithLabelValues(source).Inc()
}

// RecordAdapterFetch counts one adapter fetch with its outcome.
func RecordAdapterFetch(adapter, outcome string) {
	globalManager.adapterFetches.WithLabelValues(adapter, outcome).Inc()
}

// RecordAdapterFetchLatency records one adapter fetch duration.
func RecordAdapterFetchLatency(adapter string, latencyMs float64) {
	globalManager.adapterFetchLatency.WithLabelValues(adapter).Observe(latencyMs)
}

// RecordCacheHit counts a cache hit for the named store.
func RecordCacheHit(store string) {
	globalManager.cacheHits.WithLabelValues(store).Inc()
}

// RecordCacheMiss counts a cache miss for the named store.
func RecordCacheMiss(store string) {
	globalManager.cacheMisses.WithLabelValues(store).Inc()
}

// RecordCacheEvictions counts sweeper evictions for the named store.
func RecordCacheEvictions(store string, n int) {
	globalManager.cacheEvictions.WithLabelValues(store).Add(float64(n))
}

// UpdateCacheSize sets the current entry count for the named store.
func UpdateCacheSize(store string, size int) {
	globalManager.cacheSize.WithLabelValues(store).Set(float64(size))
}

// UpdateWarmupQueueSize sets the warmup queue depth.
func UpdateWarmupQueueSize(size int) {
	globalManager.warmupQueueSize.Set(float64(size))
}

// RecordWarmupResolved counts one warmed-up subject.
func RecordWarmupResolved() {
	globalManager.warmupResolved.Inc()
}

// UpdateWorkerCount sets the active warmup worker gauge.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerError counts one warmup worker failure.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest counts one HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records one HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
