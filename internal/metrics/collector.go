// Package metrics exposes rent's prometheus metrics.
//
// A Collector owns its own registry, so several collectors (one per test,
// for instance) never clash over global registration. It implements
// fairsplit.Observer and is handed to the engine directly.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Zedonkay/rent/internal/fairsplit"
)

// DefaultNamespace prefixes every metric name.
const DefaultNamespace = "rent"

// Submission outcomes.
const (
	OutcomeAccepted  = "accepted"
	OutcomeInvalid   = "invalid"
	OutcomeDuplicate = "duplicate"
	OutcomeFull      = "full"
	OutcomeError     = "error"
)

// Collector records engine, round and HTTP metrics.
type Collector struct {
	registry *prometheus.Registry

	splits        *prometheus.CounterVec
	lpChecks      *prometheus.CounterVec
	splitDuration prometheus.Histogram
	submissions   *prometheus.CounterVec
	engineErrors  *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewCollector creates a collector registered on a fresh registry.
// An empty namespace selects DefaultNamespace.
func NewCollector(namespace string) *Collector {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		splits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "splits_total",
				Help:      "Computed rent splits by method.",
			},
			[]string{"method"},
		),
		lpChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "exact_lp_checks_total",
				Help:      "Per-assignment LP feasibility checks in the exact search.",
			},
			[]string{"feasible"},
		),
		splitDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "split_duration_seconds",
				Help:      "Time to compute a split, including fallback.",
				Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
			},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "submissions_total",
				Help:      "Valuation submissions by outcome.",
			},
			[]string{"outcome"},
		),
		engineErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "engine_errors_total",
				Help:      "Engine errors by error code.",
			},
			[]string{"code"},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP API requests by route and status code.",
			},
			[]string{"route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP API request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	registry.MustRegister(
		c.splits,
		c.lpChecks,
		c.splitDuration,
		c.submissions,
		c.engineErrors,
		c.httpRequests,
		c.httpDuration,
	)
	return c
}

// Registry returns the collector's registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveFeasibilityCheck counts one LP feasibility check.
func (c *Collector) ObserveFeasibilityCheck(feasible bool) {
	c.lpChecks.WithLabelValues(strconv.FormatBool(feasible)).Inc()
}

// ObserveSplit counts a computed split and records its duration.
func (c *Collector) ObserveSplit(method fairsplit.Method, elapsed time.Duration) {
	c.splits.WithLabelValues(string(method)).Inc()
	c.splitDuration.Observe(elapsed.Seconds())
}

// ObserveError counts an engine error.
func (c *Collector) ObserveError(code fairsplit.ErrorCode) {
	c.engineErrors.WithLabelValues(string(code)).Inc()
}

// RecordSubmission counts a submission attempt with the given outcome.
func (c *Collector) RecordSubmission(outcome string) {
	c.submissions.WithLabelValues(outcome).Inc()
}

// RecordRequest counts one HTTP request.
func (c *Collector) RecordRequest(route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
			ErrorHandling:     promhttp.ContinueOnError,
		},
	)
}

var _ fairsplit.Observer = (*Collector)(nil)
