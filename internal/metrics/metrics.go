// Package metrics registers the Prometheus collectors of the ContentSage API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "contentsage"

var (
	// HTTPRequestsTotal counts HTTP requests by method, route and status code.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"method", "path"},
	)

	// GenerationsTotal counts completed generations. source is "backend" or "template".
	GenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "total",
			Help:      "Total number of content generations",
		},
		[]string{"backend", "source", "kind"},
	)

	GenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "generation",
			Name:      "duration_seconds",
			Help:      "Time spent generating content, fallback included",
			Buckets:   []float64{0.05, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"backend"},
	)

	// BackendFailuresTotal counts backend calls that triggered a fallback.
	BackendFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "failures_total",
			Help:      "Backend failures by reason",
		},
		[]string{"backend", "reason"},
	)

	BackendSwitchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "switches_total",
			Help:      "Backend switch attempts by target and result",
		},
		[]string{"backend", "result"},
	)

	// BackendAvailable tracks whether each backend is usable (1) or not (0).
	BackendAvailable = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "available",
			Help:      "Whether a backend is available (1) or not (0)",
		},
		[]string{"backend"},
	)

	// CircuitState exposes breaker state per backend: 0 closed, 1 open, 2 half-open.
	CircuitState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "backend",
			Name:      "circuit_state",
			Help:      "Circuit breaker state per backend",
		},
		[]string{"backend"},
	)
)

// SetAvailable records backend availability as a 0/1 gauge.
func SetAvailable(backend string, ok bool) {
	v := 0.0
	if ok {
		v = 1
	}
	BackendAvailable.WithLabelValues(backend).Set(v)
}
