// Package metrics provides Prometheus metrics for the lead adapter.
package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Default histogram buckets for API latency.
var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// Metrics holds all Prometheus metric collectors for the adapter.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	RequestsInFlight prometheus.Gauge

	SubmissionsTotal *prometheus.CounterVec
	RejectionsTotal  *prometheus.CounterVec

	ClassicDuration  *prometheus.HistogramVec
	ClassicResponses *prometheus.CounterVec
}

// New creates a Metrics instance with a custom registry and all collectors registered.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := &Metrics{
		Registry: reg,

		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadconduit_classic_http_requests_total",
			Help: "Total inbound HTTP requests.",
		}, []string{"method", "status_code", "path_prefix"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leadconduit_classic_http_request_duration_seconds",
			Help:    "Inbound HTTP request latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method", "status_code", "path_prefix"}),

		RequestsInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "leadconduit_classic_http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed.",
		}),

		SubmissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadconduit_classic_submissions_total",
			Help: "Total normalized lead submissions by reply outcome.",
		}, []string{"outcome"}),

		RejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadconduit_classic_rejections_total",
			Help: "Total submissions rejected during normalization by status code.",
		}, []string{"status_code"}),

		ClassicDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "leadconduit_classic_upstream_request_duration_seconds",
			Help:    "LeadConduit Classic call latency in seconds.",
			Buckets: defaultBuckets,
		}, []string{"method"}),

		ClassicResponses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "leadconduit_classic_upstream_responses_total",
			Help: "Total LeadConduit Classic responses by method and status code.",
		}, []string{"method", "status_code"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestsInFlight,
		m.SubmissionsTotal,
		m.RejectionsTotal,
		m.ClassicDuration,
		m.ClassicResponses,
	)

	return m
}

// knownMethods lists the allowed HTTP method label values (bounded cardinality).
var knownMethods = map[string]bool{
	"GET": true, "POST": true, "PUT": true, "DELETE": true,
	"PATCH": true, "HEAD": true, "OPTIONS": true,
}

// NormalizeMethod returns a bounded HTTP method label for Prometheus metrics.
// Non-standard methods are mapped to "other" to prevent cardinality explosion.
func NormalizeMethod(method string) string {
	if knownMethods[method] {
		return method
	}
	return "other"
}

// knownPrefixes lists the allowed path label values (bounded cardinality).
var knownPrefixes = []string{"/flows", "/integration", "/healthz", "/status", "/metrics"}

// NormalizePath returns a bounded path label for Prometheus metrics.
func NormalizePath(path string) string {
	for _, prefix := range knownPrefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") || strings.HasPrefix(path, prefix+"?") {
			return prefix
		}
	}
	return "other"
}

// knownOutcomes lists the allowed reply outcome label values.
var knownOutcomes = map[string]bool{
	"success": true, "failure": true, "error": true,
}

// NormalizeOutcome returns a bounded outcome label. Classic may return
// arbitrary result text, which is mapped to "other".
func NormalizeOutcome(outcome string) string {
	if knownOutcomes[outcome] {
		return outcome
	}
	return "other"
}
