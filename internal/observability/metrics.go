// Package observability holds the Prometheus metrics collector and the
// OpenTelemetry tracing setup for the bodygraph service.
package observability

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Global collector instance for singleton pattern
	globalCollector *Collector
	collectorMutex  sync.Mutex
)

// Collector holds all Prometheus metrics for the application
type Collector struct {
	registry *prometheus.Registry

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Chart metrics
	ChartsComputed     prometheus.Counter
	SolverIterations   prometheus.Histogram
	SolverNonConverged prometheus.Counter

	// External collaborator metrics
	GeocodeCacheHits   prometheus.Counter
	GeocodeCacheMisses prometheus.Counter
	EphemerisCalls     *prometheus.CounterVec
	EphemerisDuration  prometheus.Histogram
}

// NewCollector creates a new metrics collector with the given namespace.
// A process-wide singleton avoids duplicate registration in tests.
func NewCollector(namespace string) *Collector {
	collectorMutex.Lock()
	defer collectorMutex.Unlock()

	if globalCollector != nil {
		return globalCollector
	}

	registry := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	chartsComputed := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "charts_computed_total",
			Help:      "Total number of bodygraphs computed",
		},
	)

	solverIterations := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "design_solver_iterations",
			Help:      "Newton iterations taken by the design-time solver",
			Buckets:   []float64{1, 2, 3, 4, 5, 8, 12, 20},
		},
	)

	solverNonConverged := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "design_solver_non_converged_total",
			Help:      "Solver runs that hit the iteration cap without converging",
		},
	)

	geocodeCacheHits := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_hits_total",
			Help:      "Geocode lookups served from the on-disk cache",
		},
	)

	geocodeCacheMisses := prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_misses_total",
			Help:      "Geocode lookups that had to call the remote service",
		},
	)

	ephemerisCalls := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ephemeris_calls_total",
			Help:      "Calls to the ephemeris provider",
		},
		[]string{"body", "status"},
	)

	ephemerisDuration := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ephemeris_call_duration_seconds",
			Help:      "Ephemeris provider call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	registry.MustRegister(
		httpRequests, httpDuration,
		chartsComputed, solverIterations, solverNonConverged,
		geocodeCacheHits, geocodeCacheMisses,
		ephemerisCalls, ephemerisDuration,
	)

	globalCollector = &Collector{
		registry:           registry,
		HTTPRequests:       httpRequests,
		HTTPDuration:       httpDuration,
		ChartsComputed:     chartsComputed,
		SolverIterations:   solverIterations,
		SolverNonConverged: solverNonConverged,
		GeocodeCacheHits:   geocodeCacheHits,
		GeocodeCacheMisses: geocodeCacheMisses,
		EphemerisCalls:     ephemerisCalls,
		EphemerisDuration:  ephemerisDuration,
	}
	return globalCollector
}

// Handler exposes the collector's registry for the /metrics endpoint.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
