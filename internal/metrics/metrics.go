// Package metrics exposes Prometheus metrics for the validation
// service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the Prometheus instruments for validation outcomes
// and inbound HTTP traffic.
type Collector struct {
	registry        *prometheus.Registry
	validationTotal *prometheus.CounterVec
	overridesIssued prometheus.Counter
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

// NewCollector constructs a collector with its own registry.
func NewCollector() (*Collector, error) {
	registry := prometheus.NewRegistry()

	validationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gps_attendance",
		Subsystem: "validation",
		Name:      "verdicts_total",
		Help:      "Validation verdicts by code.",
	}, []string{"code"})

	overridesIssued := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "gps_attendance",
		Subsystem: "validation",
		Name:      "overrides_issued_total",
		Help:      "Administrator GPS overrides created.",
	})

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "gps_attendance",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Latency distribution for inbound HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "gps_attendance",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of inbound HTTP requests.",
	}, []string{"method", "path", "status"})

	for _, collector := range []prometheus.Collector{validationTotal, overridesIssued, requestDuration, requestTotal} {
		if err := registry.Register(collector); err != nil {
			return nil, err
		}
	}

	return &Collector{
		registry:        registry,
		validationTotal: validationTotal,
		overridesIssued: overridesIssued,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
	}, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordVerdict counts one validation outcome.
func (c *Collector) RecordVerdict(code string) {
	c.validationTotal.WithLabelValues(code).Inc()
}

// RecordOverrideIssued counts one created override.
func (c *Collector) RecordOverrideIssued() {
	c.overridesIssued.Inc()
}

// ObserveRequest records one completed HTTP request.
func (c *Collector) ObserveRequest(method, path, status string, duration time.Duration) {
	c.requestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
	c.requestTotal.WithLabelValues(method, path, status).Inc()
}
