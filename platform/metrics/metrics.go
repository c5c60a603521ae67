// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	Validations     *prometheus.CounterVec
	GeocodeRequests *prometheus.CounterVec
	GeocodeLatency  prometheus.Histogram
	CacheLookups    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. Passing a fresh
// prometheus.NewRegistry() keeps tests independent of the global registry.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Validations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_address_validations_total",
			Help: "Address validations by result source, confidence and validity",
		}, []string{"source", "confidence", "valid"}),
		GeocodeRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_geocode_requests_total",
			Help: "Outbound geocode requests by outcome",
		}, []string{"outcome"}),
		GeocodeLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "intake_geocode_request_duration_seconds",
			Help:    "Latency of outbound geocode requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "intake_geocode_cache_lookups_total",
			Help: "Geocode cache lookups by result",
		}, []string{"result"}),
	}
}

// ObserveValidation records the outcome of one validation.
func (m *Metrics) ObserveValidation(source, confidence string, valid bool) {
	if m == nil {
		return
	}
	validLabel := "false"
	if valid {
		validLabel = "true"
	}
	m.Validations.WithLabelValues(source, confidence, validLabel).Inc()
}

// ObserveGeocode records one outbound request and its duration.
func (m *Metrics) ObserveGeocode(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.GeocodeRequests.WithLabelValues(outcome).Inc()
	m.GeocodeLatency.Observe(elapsed.Seconds())
}

// ObserveCache records a cache hit, miss or error.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}
