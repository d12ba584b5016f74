// Package metrics provides the Prometheus collectors shared by every module.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// OperationMetrics records service operation outcomes.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, d time.Duration)
}

// ScoringMetrics records live scoring activity.
type ScoringMetrics interface {
	RecordRuns(ctx context.Context, half string, runs int)
	RecordTransition(ctx context.Context, action, from, to string)
}

// RelayMetrics records live feed frames forwarded to NATS.
type RelayMetrics interface {
	RecordRelayed(ctx context.Context, result string)
}

// Registry bundles the collectors registered on one prometheus.Registry.
type Registry struct {
	reg *prometheus.Registry

	opAttempts  *prometheus.CounterVec
	opSuccesses *prometheus.CounterVec
	opFailures  *prometheus.CounterVec
	opDuration  *prometheus.HistogramVec

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	runs        *prometheus.CounterVec
	transitions *prometheus.CounterVec
	relayed     *prometheus.CounterVec
}

// NewRegistry creates collectors on a fresh registry.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{
		reg: reg,
		opAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dugout",
			Name:      "operation_attempts_total",
			Help:      "Service operations started.",
		}, []string{"service", "operation"}),
		opSuccesses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dugout",
			Name:      "operation_success_total",
			Help:      "Service operations completed without infrastructure error.",
		}, []string{"service", "operation"}),
		opFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dugout",
			Name:      "operation_failure_total",
			Help:      "Service operations that returned an infrastructure error or panicked.",
		}, []string{"service", "operation"}),
		opDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dugout",
			Name:      "operation_duration_seconds",
			Help:      "Service operation latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "operation"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dugout",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "dugout",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dugout",
			Name:      "runs_recorded_total",
			Help:      "Runs recorded through live scoring.",
		}, []string{"half"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dugout",
			Name:      "game_transitions_total",
			Help:      "Game state transitions by action.",
		}, []string{"action", "from", "to"}),
		relayed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dugout",
			Name:      "livefeed_frames_total",
			Help:      "Game state frames relayed to NATS by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		r.opAttempts, r.opSuccesses, r.opFailures, r.opDuration,
		r.httpRequests, r.httpDuration,
		r.runs, r.transitions, r.relayed,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return r
}

// Prometheus returns the underlying registry.
func (r *Registry) Prometheus() *prometheus.Registry { return r.reg }

// Handler serves the registry in the Prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

func (r *Registry) RecordOperationAttempt(_ context.Context, operation, service string) {
	r.opAttempts.WithLabelValues(service, operation).Inc()
}

func (r *Registry) RecordOperationSuccess(_ context.Context, operation, service string) {
	r.opSuccesses.WithLabelValues(service, operation).Inc()
}

func (r *Registry) RecordOperationFailure(_ context.Context, operation, service string) {
	r.opFailures.WithLabelValues(service, operation).Inc()
}

func (r *Registry) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	r.opDuration.WithLabelValues(service, operation).Observe(d.Seconds())
}

func (r *Registry) RecordRuns(_ context.Context, half string, runs int) {
	r.runs.WithLabelValues(half).Add(float64(runs))
}

func (r *Registry) RecordTransition(_ context.Context, action, from, to string) {
	r.transitions.WithLabelValues(action, from, to).Inc()
}

func (r *Registry) RecordRelayed(_ context.Context, result string) {
	r.relayed.WithLabelValues(result).Inc()
}

// Middleware records request counts and latency keyed by the chi route pattern.
func (r *Registry) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, req)

		route := "unmatched"
		if rctx := chi.RouteContext(req.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		r.httpRequests.WithLabelValues(req.Method, route, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(req.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Noop discards everything. Used in tests and when metrics are disabled.
type Noop struct{}

func NewNoop() Noop { return Noop{} }

func (Noop) RecordOperationAttempt(context.Context, string, string)                 {}
func (Noop) RecordOperationSuccess(context.Context, string, string)                 {}
func (Noop) RecordOperationFailure(context.Context, string, string)                 {}
func (Noop) RecordOperationDuration(context.Context, string, string, time.Duration) {}
func (Noop) RecordRuns(context.Context, string, int)                                {}
func (Noop) RecordTransition(context.Context, string, string, string)               {}
func (Noop) RecordRelayed(context.Context, string)                                  {}

var (
	_ OperationMetrics = (*Registry)(nil)
	_ ScoringMetrics   = (*Registry)(nil)
	_ OperationMetrics = Noop{}
	_ ScoringMetrics   = Noop{}
	_ RelayMetrics     = (*Registry)(nil)
	_ RelayMetrics     = Noop{}
)
