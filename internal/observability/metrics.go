// Package observability collects Prometheus metrics for the ledger service.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates the Prometheus registry and application counters.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	postedTotal     prometheus.Counter
	voidedTotal     prometheus.Counter
	syncPostedTotal prometheus.Counter
	syncFailedTotal prometheus.Counter
}

// NewMetrics initialises the registry and base metrics.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ledger_http_requests_total",
		Help: "HTTP requests by route and status code.",
	}, []string{"route", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ledger_http_request_duration_seconds",
		Help:    "HTTP request duration per route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	posted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_transactions_posted_total",
		Help: "Journal transactions committed.",
	})
	voided := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_transactions_voided_total",
		Help: "Journal transactions voided.",
	})
	syncPosted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_donation_sync_posted_total",
		Help: "Donations posted to the ledger by the sync adapter.",
	})
	syncFailed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "ledger_donation_sync_failed_total",
		Help: "Donations the sync adapter could not post.",
	})
	registry.MustRegister(requests, duration, posted, voided, syncPosted, syncFailed)
	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		postedTotal:     posted,
		voidedTotal:     voided,
		syncPostedTotal: syncPosted,
		syncFailedTotal: syncFailed,
	}
}

// Handler returns the http.Handler for the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records metrics for every HTTP request.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(&recorder, r)
		route := routePattern(r)
		m.requestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// TransactionPosted increments the posting counter.
func (m *Metrics) TransactionPosted() {
	if m != nil {
		m.postedTotal.Inc()
	}
}

// TransactionVoided increments the void counter.
func (m *Metrics) TransactionVoided() {
	if m != nil {
		m.voidedTotal.Inc()
	}
}

// DonationSynced increments the sync success counter.
func (m *Metrics) DonationSynced() {
	if m != nil {
		m.syncPostedTotal.Inc()
	}
}

// DonationSyncFailed increments the sync failure counter.
func (m *Metrics) DonationSyncFailed() {
	if m != nil {
		m.syncFailedTotal.Inc()
	}
}

// Registerer exposes the registry for custom metric registration.
func (m *Metrics) Registerer() prometheus.Registerer {
	if m == nil {
		return prometheus.DefaultRegisterer
	}
	return m.registry
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func routePattern(r *http.Request) string {
	if routeCtx := chi.RouteContext(r.Context()); routeCtx != nil {
		if pattern := routeCtx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unknown"
}
