// Package metrics exposes Prometheus instruments for upstream calls, range fan-outs and the HTTP facade.
// A nil *Recorder is valid and records nothing, so components can take one unconditionally.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "nba_totals"

// Outcome labels for upstream calls.
const (
	OutcomeOK        = "ok"
	OutcomeNotFound  = "not_found"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeStatus    = "status_error"
)

// Recorder owns a registry and the instruments registered on it.
type Recorder struct {
	registry *prometheus.Registry

	upstreamCalls   *prometheus.CounterVec
	upstreamLatency *prometheus.HistogramVec
	rangeSeasons    *prometheus.CounterVec
	staleResults    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

// NewRecorder builds a Recorder on a fresh registry.
func NewRecorder() *Recorder {
	return NewRecorderWithRegistry(prometheus.NewRegistry())
}

// NewRecorderWithRegistry registers all instruments on reg. It panics on duplicate registration,
// which only happens when the same registry is reused for two recorders.
func NewRecorderWithRegistry(reg *prometheus.Registry) *Recorder {
	r := &Recorder{
		registry: reg,
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Upstream requests by call shape and outcome.",
		}, []string{"call", "outcome"}),
		upstreamLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Upstream request latency by call shape.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"call"}),
		rangeSeasons: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "range_seasons_total",
			Help:      "Seasons resolved by range fetches, split by present/absent.",
		}, []string{"result"}),
		staleResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stale_results_dropped_total",
			Help:      "Results discarded because a newer request superseded them.",
		}, []string{"slice"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served by route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(r.upstreamCalls, r.upstreamLatency, r.rangeSeasons, r.staleResults, r.httpRequests, r.httpLatency)
	return r
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// RecordUpstreamCall counts one upstream request and observes its latency.
func (r *Recorder) RecordUpstreamCall(call, outcome string, took time.Duration) {
	if r == nil {
		return
	}
	r.upstreamCalls.WithLabelValues(call, outcome).Inc()
	r.upstreamLatency.WithLabelValues(call).Observe(took.Seconds())
}

// RecordRange counts the present and absent seasons of one range fetch.
func (r *Recorder) RecordRange(present, absent int) {
	if r == nil {
		return
	}
	r.rangeSeasons.WithLabelValues("present").Add(float64(present))
	r.rangeSeasons.WithLabelValues("absent").Add(float64(absent))
}

// RecordStale counts a result dropped by the generation guard.
func (r *Recorder) RecordStale(slice string) {
	if r == nil {
		return
	}
	r.staleResults.WithLabelValues(slice).Inc()
}

// RecordHTTPRequest tracks one served request.
func (r *Recorder) RecordHTTPRequest(method, route string, status int, took time.Duration) {
	if r == nil {
		return
	}
	r.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.httpLatency.WithLabelValues(method, route).Observe(took.Seconds())
}
