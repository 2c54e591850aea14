// Package metrics provides Prometheus metrics for the medal pipeline service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      prometheus.Labels
	registry         prometheus.Registerer

	// Pipeline runs
	pipelineRuns     *prometheus.CounterVec
	pipelineDuration prometheus.Histogram
	datasetRows      *prometheus.GaugeVec
	fetchDuration    *prometheus.HistogramVec

	// Data quality
	rowsDropped     *prometheus.CounterVec
	medalDuplicates prometheus.Counter
	codesReconciled *prometheus.CounterVec
	joinMisses      *prometheus.CounterVec
	demography      *prometheus.CounterVec

	// Snapshot store
	snapshotBuckets   prometheus.Gauge
	snapshotCountries prometheus.Gauge
	snapshotLastUnix  prometheus.Gauge

	// Refresh queue and workers
	queueSize         prometheus.Gauge
	queueCapacity     prometheus.Gauge
	queueEnqueued     prometheus.Counter
	queueRejected     prometheus.Counter
	workerCount       prometheus.Gauge
	workerActive      prometheus.Gauge
	workerJobDuration prometheus.Histogram
	workerErrors      prometheus.Counter

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Exports and errors
	exports              *prometheus.CounterVec
	errorRateByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "medals",
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

func (m *Manager) counter(name, help string) prometheus.Counter {
	return promauto.With(m.registry).NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) counterVec(name, help string, labels ...string) *prometheus.CounterVec {
	return promauto.With(m.registry).NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) gauge(name, help string) prometheus.Gauge {
	return promauto.With(m.registry).NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	})
}

func (m *Manager) gaugeVec(name, help string, labels ...string) *prometheus.GaugeVec {
	return promauto.With(m.registry).NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
	}, labels)
}

func (m *Manager) histogram(name, help string) prometheus.Histogram {
	return promauto.With(m.registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	})
}

func (m *Manager) histogramVec(name, help string, labels ...string) *prometheus.HistogramVec {
	return promauto.With(m.registry).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace, Subsystem: m.subsystem, Name: name, Help: help, ConstLabels: m.constLabels,
		Buckets: m.histogramBuckets,
	}, labels)
}

func (m *Manager) initializeMetrics() {
	m.pipelineRuns = m.counterVec("runs_total", "Pipeline runs by outcome", "status")
	m.pipelineDuration = m.histogram("run_duration_seconds", "Duration of a full pipeline run")
	m.datasetRows = m.gaugeVec("dataset_rows", "Rows loaded per source dataset in the last run", "dataset")
	m.fetchDuration = m.histogramVec("fetch_duration_seconds", "Time to fetch and decode a source dataset", "dataset")

	m.rowsDropped = m.counterVec("rows_dropped_total", "Result rows dropped during normalization", "reason")
	m.medalDuplicates = m.counter("medal_duplicates_total", "Team medal rows skipped because already counted")
	m.codesReconciled = m.counterVec("codes_reconciled_total", "Auxiliary dataset codes by reconciliation outcome", "dataset", "outcome")
	m.joinMisses = m.counterVec("join_misses_total", "Entries left without a value by a join", "field")
	m.demography = m.counterVec("demography_merge_total", "Entries by demography merge outcome", "outcome")

	m.snapshotBuckets = m.gauge("snapshot_buckets", "Year-season buckets in the latest snapshot")
	m.snapshotCountries = m.gauge("snapshot_countries", "Country entries in the latest snapshot")
	m.snapshotLastUnix = m.gauge("snapshot_last_unix", "Build time of the latest snapshot")

	m.queueSize = m.gauge("queue_size", "Refresh jobs waiting in the queue")
	m.queueCapacity = m.gauge("queue_capacity", "Refresh queue capacity")
	m.queueEnqueued = m.counter("queue_enqueued_total", "Refresh jobs accepted")
	m.queueRejected = m.counter("queue_rejected_total", "Refresh jobs rejected because the queue was full")
	m.workerCount = m.gauge("worker_count", "Refresh workers running")
	m.workerActive = m.gauge("worker_active", "Refresh workers currently building")
	m.workerJobDuration = m.histogram("worker_job_duration_seconds", "Duration of refresh jobs")
	m.workerErrors = m.counter("worker_errors_total", "Refresh jobs that failed")

	m.httpRequests = m.counterVec("http_requests_total", "HTTP requests", "endpoint", "method", "status_code")
	m.httpRequestDuration = m.histogramVec("http_request_duration_seconds", "HTTP request duration", "endpoint", "method", "status_code")

	m.exports = m.counterVec("exports_total", "Snapshot exports by format and outcome", "format", "status")
	m.errorRateByComponent = m.counterVec("errors_total", "Errors by component and type", "component", "type")
}

// RecordPipelineRun counts a pipeline run and observes its duration.
func RecordPipelineRun(status string, seconds float64) {
	globalManager.pipelineRuns.WithLabelValues(status).Inc()
	globalManager.pipelineDuration.Observe(seconds)
}

// UpdateDatasetRows sets the number of rows loaded for a dataset.
func UpdateDatasetRows(dataset string, rows int) {
	globalManager.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// RecordFetchDuration observes the fetch time of a dataset.
func RecordFetchDuration(dataset string, seconds float64) {
	globalManager.fetchDuration.WithLabelValues(dataset).Observe(seconds)
}

// RecordRowsDropped adds n rows dropped for reason.
func RecordRowsDropped(reason string, n int) {
	globalManager.rowsDropped.WithLabelValues(reason).Add(float64(n))
}

// RecordMedalDuplicates adds n skipped team medal rows.
func RecordMedalDuplicates(n int) {
	globalManager.medalDuplicates.Add(float64(n))
}

// RecordCodesReconciled adds n codes of a dataset with the given outcome.
func RecordCodesReconciled(dataset, outcome string, n int) {
	globalManager.codesReconciled.WithLabelValues(dataset, outcome).Add(float64(n))
}

// RecordJoinMisses adds n entries left nil by a join on field.
func RecordJoinMisses(field string, n int) {
	globalManager.joinMisses.WithLabelValues(field).Add(float64(n))
}

// RecordDemographyMerge adds n entries with a demography merge outcome.
func RecordDemographyMerge(outcome string, n int) {
	globalManager.demography.WithLabelValues(outcome).Add(float64(n))
}

// UpdateSnapshot sets the snapshot gauges.
func UpdateSnapshot(buckets, countries int, builtAtUnix int64) {
	globalManager.snapshotBuckets.Set(float64(buckets))
	globalManager.snapshotCountries.Set(float64(countries))
	globalManager.snapshotLastUnix.Set(float64(builtAtUnix))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// RecordQueueEnqueue increments the accepted jobs counter.
func RecordQueueEnqueue() {
	globalManager.queueEnqueued.Inc()
}

// RecordQueueRejected increments the rejected jobs counter.
func RecordQueueRejected() {
	globalManager.queueRejected.Inc()
}

// UpdateWorkerCount sets the number of running workers.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// AddWorkerActive adjusts the number of busy workers by delta.
func AddWorkerActive(delta int) {
	globalManager.workerActive.Add(float64(delta))
}

// RecordWorkerJob observes a refresh job duration.
func RecordWorkerJob(seconds float64) {
	globalManager.workerJobDuration.Observe(seconds)
}

// RecordWorkerError increments the failed jobs counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records an HTTP request duration in seconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, seconds float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(seconds)
}

// RecordExport counts a snapshot export.
func RecordExport(format, status string) {
	globalManager.exports.WithLabelValues(format, status).Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
