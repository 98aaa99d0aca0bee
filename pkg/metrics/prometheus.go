// Package metrics provides Prometheus metrics for the benchgraph service.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every metric the service exports.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Rendering
	renders       *prometheus.CounterVec
	renderLatency prometheus.Histogram
	datasetSize   prometheus.Histogram
	navigations   *prometheus.CounterVec

	// Benchmark history
	benchmarksTotal     prometheus.Gauge
	dataPointsTotal     prometheus.Gauge
	snapshotPublishes   prometheus.Counter
	snapshotLastUnix    prometheus.Gauge
	snapshotDurationMs  prometheus.Histogram
	repositoryQueryTime prometheus.Histogram

	// Source loading
	sourceLoads       *prometheus.CounterVec
	sourceLoadLatency prometheus.Histogram

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Errors
	errorsByComponent *prometheus.CounterVec
	errorsByType      *prometheus.CounterVec
	errorsByEndpoint  *prometheus.CounterVec
	errorLatency      *prometheus.HistogramVec

	// System
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // metrics registry

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "benchgraph",
		subsystem:        "",
		histogramBuckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 1000},
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string, buckets []float64) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels, Buckets: buckets,
	}
}

func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every collector
	auto := promauto.With(m.registry)

	m.renders = auto.NewCounterVec(m.counterOpts("renders_total",
		"Total number of chart renders by outcome"), []string{"outcome"})
	m.renderLatency = auto.NewHistogram(m.histogramOpts("render_latency_milliseconds",
		"Chart render latency in milliseconds", m.histogramBuckets))
	m.datasetSize = auto.NewHistogram(m.histogramOpts("dataset_points",
		"Number of commits per rendered dataset", prometheus.ExponentialBuckets(1, 4, 8)))
	m.navigations = auto.NewCounterVec(m.counterOpts("navigations_total",
		"Click navigations by result (opened, ignored)"), []string{"result"})

	m.benchmarksTotal = auto.NewGauge(m.gaugeOpts("benchmarks",
		"Number of (platform, benchmark) histories currently loaded"))
	m.dataPointsTotal = auto.NewGauge(m.gaugeOpts("data_points",
		"Number of measurements currently loaded"))
	m.snapshotPublishes = auto.NewCounter(m.counterOpts("snapshot_publishes_total",
		"Total number of benchmark snapshots published"))
	m.snapshotLastUnix = auto.NewGauge(m.gaugeOpts("snapshot_last_unix",
		"Unix timestamp of the last snapshot publish"))
	m.snapshotDurationMs = auto.NewHistogram(m.histogramOpts("snapshot_publish_duration_milliseconds",
		"Snapshot publish duration in milliseconds", m.histogramBuckets))
	m.repositoryQueryTime = auto.NewHistogram(m.histogramOpts("repository_query_latency_milliseconds",
		"Repository query latency in milliseconds", m.histogramBuckets))

	m.sourceLoads = auto.NewCounterVec(m.counterOpts("source_loads_total",
		"Benchmark data loads by source and status"), []string{"source", "status"})
	m.sourceLoadLatency = auto.NewHistogram(m.histogramOpts("source_load_latency_milliseconds",
		"Benchmark data load latency in milliseconds", prometheus.ExponentialBuckets(1, 4, 9)))

	m.httpRequests = auto.NewCounterVec(m.counterOpts("http_requests_total",
		"Total number of HTTP requests by endpoint and method"), []string{"endpoint", "method", "status_code"})
	m.httpRequestDuration = auto.NewHistogramVec(m.histogramOpts("http_request_duration_milliseconds",
		"HTTP request duration in milliseconds", m.histogramBuckets), []string{"endpoint", "method", "status_code"})

	m.errorsByComponent = auto.NewCounterVec(m.counterOpts("errors_by_component_total",
		"Total number of errors by component"), []string{"component", "error_type"})
	m.errorsByType = auto.NewCounterVec(m.counterOpts("errors_by_type_total",
		"Total number of errors by type"), []string{"error_type", "severity"})
	m.errorsByEndpoint = auto.NewCounterVec(m.counterOpts("errors_by_endpoint_total",
		"Total number of errors by endpoint"), []string{"endpoint", "method", "error_type"})
	m.errorLatency = auto.NewHistogramVec(m.histogramOpts("error_latency_milliseconds",
		"Latency of operations that resulted in errors", m.histogramBuckets), []string{"component", "error_type"})

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes",
		"System memory usage in bytes"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count",
		"Number of goroutines"))
	m.systemGCPauseTime = auto.NewHistogram(m.histogramOpts("system_gc_pause_time_milliseconds",
		"GC pause time in milliseconds", []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}))
}

// Manager methods.

// RecordRender counts a render with outcome "ok" or "error".
func (m *Manager) RecordRender(outcome string, latencyMs float64, points int) {
	m.renders.WithLabelValues(outcome).Inc()
	m.renderLatency.Observe(latencyMs)
	m.datasetSize.Observe(float64(points))
}

// RecordNavigation counts a click resolution.
func (m *Manager) RecordNavigation(opened bool) {
	result := "ignored"
	if opened {
		result = "opened"
	}
	m.navigations.WithLabelValues(result).Inc()
}

// RecordSourceLoad counts a data load and its latency.
func (m *Manager) RecordSourceLoad(source, status string, latencyMs float64) {
	m.sourceLoads.WithLabelValues(source, status).Inc()
	m.sourceLoadLatency.Observe(latencyMs)
}

// RecordSnapshotPublish records a snapshot swap.
func (m *Manager) RecordSnapshotPublish(durationMs float64, at time.Time) {
	m.snapshotPublishes.Inc()
	m.snapshotDurationMs.Observe(durationMs)
	m.snapshotLastUnix.Set(float64(at.Unix()))
}

// Package-level helpers backed by the global manager.

// RecordRender counts a render with outcome "ok" or "error".
func RecordRender(outcome string, latencyMs float64, points int) {
	globalManager.RecordRender(outcome, latencyMs, points)
}

// RecordNavigation counts a click resolution.
func RecordNavigation(opened bool) {
	globalManager.RecordNavigation(opened)
}

// RecordSourceLoad counts a data load and its latency.
func RecordSourceLoad(source, status string, latencyMs float64) {
	globalManager.RecordSourceLoad(source, status, latencyMs)
}

// RecordSnapshotPublish records a snapshot swap.
func RecordSnapshotPublish(durationMs float64, at time.Time) {
	globalManager.RecordSnapshotPublish(durationMs, at)
}

// UpdateBenchmarksTotal sets the number of loaded histories.
func UpdateBenchmarksTotal(n int) {
	globalManager.benchmarksTotal.Set(float64(n))
}

// UpdateDataPointsTotal sets the number of loaded measurements.
func UpdateDataPointsTotal(n int) {
	globalManager.dataPointsTotal.Set(float64(n))
}

// RecordRepositoryQueryLatency records repository query latency.
func RecordRepositoryQueryLatency(latencyMs float64) {
	globalManager.repositoryQueryTime.Observe(latencyMs)
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorsByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorsByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}

// Register adds c to the registry exported on /healthz. A collector that is
// already registered is accepted as is.
func Register(c prometheus.Collector) error {
	if err := customRegistry.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRegister, err)
	}
	return nil
}
