// Package metrics provides Prometheus collectors for the persistence core and API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// DatastoreMetrics contains Prometheus metrics for unit-of-work and seed operations.
type DatastoreMetrics struct {
	registry *prometheus.Registry

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	errorsTotal       *prometheus.CounterVec

	pendingChanges prometheus.Histogram
	rowsAffected   prometheus.Histogram
	tableRowsGauge *prometheus.GaugeVec

	collectors []prometheus.Collector
}

// NewDatastoreMetrics creates and registers new datastore metrics
func NewDatastoreMetrics(registry *prometheus.Registry) (*DatastoreMetrics, error) {
	m := &DatastoreMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *DatastoreMetrics) initMetrics() {
	m.operationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokereview_datastore_operations_total",
			Help: "Total number of datastore operations by outcome",
		},
		[]string{"operation", "status"}, // status: committed, noop, rollback, success, skipped
	)

	m.operationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pokereview_datastore_operation_duration_seconds",
			Help:    "Time taken for datastore operations",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount15),
		},
		[]string{"operation"},
	)

	m.errorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokereview_datastore_errors_total",
			Help: "Total number of failed datastore operations by error category",
		},
		[]string{"operation", "error_type"},
	)

	m.pendingChanges = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pokereview_session_pending_changes",
			Help:    "Number of staged changes flushed per session save",
			Buckets: prometheus.ExponentialBuckets(1, BucketFactor2, BucketCount8),
		},
	)

	m.rowsAffected = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pokereview_session_rows_affected",
			Help:    "Rows affected per committed session save",
			Buckets: prometheus.ExponentialBuckets(1, BucketFactor2, BucketCount8),
		},
	)

	m.tableRowsGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pokereview_table_rows",
			Help: "Row count per table as observed after seeding",
		},
		[]string{"table"},
	)

	m.collectors = []prometheus.Collector{
		m.operationsTotal,
		m.operationDuration,
		m.errorsTotal,
		m.pendingChanges,
		m.rowsAffected,
		m.tableRowsGauge,
	}
}

// Describe implements the Collector interface
func (m *DatastoreMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *DatastoreMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RecordOperation implements Recorder.
func (m *DatastoreMetrics) RecordOperation(operation, status string) {
	m.operationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordDuration implements Recorder.
func (m *DatastoreMetrics) RecordDuration(operation string, seconds float64) {
	m.operationDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordError implements Recorder.
func (m *DatastoreMetrics) RecordError(operation, errorType string) {
	m.errorsTotal.WithLabelValues(operation, errorType).Inc()
}

// RecordSaveSize records how many staged changes a save flushed and how many rows they touched.
func (m *DatastoreMetrics) RecordSaveSize(pending int, rows int64) {
	m.pendingChanges.Observe(float64(pending))
	m.rowsAffected.Observe(float64(rows))
}

// UpdateTableRowCount sets the row count gauge for a table.
func (m *DatastoreMetrics) UpdateTableRowCount(table string, rows int64) {
	m.tableRowsGauge.WithLabelValues(table).Set(float64(rows))
}
