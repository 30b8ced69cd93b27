package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics contains Prometheus metrics for API request handling
type HTTPMetrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	inFlight        prometheus.Gauge

	collectors []prometheus.Collector
}

// NewHTTPMetrics creates and registers new HTTP metrics
func NewHTTPMetrics(registry *prometheus.Registry) (*HTTPMetrics, error) {
	m := &HTTPMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *HTTPMetrics) initMetrics() {
	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pokereview_http_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "code"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pokereview_http_request_duration_seconds",
			Help:    "API request latency",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount15),
		},
		[]string{"method", "route"},
	)

	m.inFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "pokereview_http_requests_in_flight",
			Help: "Number of API requests currently being served",
		},
	)

	m.collectors = []prometheus.Collector{
		m.requestsTotal,
		m.requestDuration,
		m.inFlight,
	}
}

// Describe implements the Collector interface
func (m *HTTPMetrics) Describe(ch chan<- *prometheus.Desc) {
	for _, collector := range m.collectors {
		collector.Describe(ch)
	}
}

// Collect implements the Collector interface
func (m *HTTPMetrics) Collect(ch chan<- prometheus.Metric) {
	for _, collector := range m.collectors {
		collector.Collect(ch)
	}
}

// RequestStarted marks a request as in flight.
func (m *HTTPMetrics) RequestStarted() {
	m.inFlight.Inc()
}

// RecordRequest records a finished request.
func (m *HTTPMetrics) RecordRequest(method, route, code string, seconds float64) {
	m.inFlight.Dec()
	m.requestsTotal.WithLabelValues(method, route, code).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(seconds)
}
