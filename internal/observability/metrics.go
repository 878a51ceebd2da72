package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	httpRequestsTotal    *prometheus.CounterVec
	httpLatencySeconds   *prometheus.HistogramVec
	httpErrorsTotal      *prometheus.CounterVec
	sweepDurationSeconds prometheus.Histogram
	sweepFlagsTotal      *prometheus.CounterVec
	sweepErrorsTotal     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors for the API and the
// delay sweep.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gestor_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "gestor_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		httpErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gestor_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		sweepDurationSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gestor_delay_sweep_duration_seconds",
			Help:    "Duration of a full delay evaluation sweep.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		})

		sweepFlagsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gestor_delay_flags_total",
			Help: "Delay flags flipped by the sweep, by entity and direction.",
		}, []string{"entity", "direction"})

		sweepErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gestor_delay_sweep_errors_total",
			Help: "Per-entity errors contained during a delay sweep.",
		}, []string{"entity"})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			httpErrorsTotal,
			sweepDurationSeconds,
			sweepFlagsTotal,
			sweepErrorsTotal,
		)
	})
}

// HTTPRequests exposes the counter for served requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for served requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// HTTPErrors exposes the counter for error responses.
func HTTPErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return httpErrorsTotal
}

// SweepDuration exposes the delay sweep duration histogram.
func SweepDuration() prometheus.Histogram {
	RegisterMetrics()
	return sweepDurationSeconds
}

// SweepFlags exposes the counter for delay flag flips.
func SweepFlags() *prometheus.CounterVec {
	RegisterMetrics()
	return sweepFlagsTotal
}

// SweepErrors exposes the counter for contained per-entity sweep errors.
func SweepErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return sweepErrorsTotal
}
