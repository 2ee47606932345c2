// Package telemetry exposes Prometheus metrics for HTTP traffic and for the
// domain events operators watch: record upserts, TAT transitions, upstream
// voice calls and extraction fallbacks.
package telemetry

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "growit"

// Metrics owns a private registry. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests        *prometheus.CounterVec
	httpDuration        *prometheus.HistogramVec
	recordUpserts       *prometheus.CounterVec
	recordDeletes       *prometheus.CounterVec
	tatTransitions      *prometheus.CounterVec
	extractionFallbacks *prometheus.CounterVec
	upstreamDuration    *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		recordUpserts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_upserts_total",
			Help:      "Patient record upserts by category and outcome.",
		}, []string{"category", "outcome"}),
		recordDeletes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_deletes_total",
			Help:      "Patient records removed, by category.",
		}, []string{"category"}),
		tatTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tat_transitions_total",
			Help:      "TAT status changes by service type and target status.",
		}, []string{"service_type", "status"}),
		extractionFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "extraction_fallbacks_total",
			Help:      "LLM extractions answered with the canned fallback payload.",
		}, []string{"section", "reason"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of calls to the speech and LLM provider.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"operation", "outcome"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.recordUpserts,
		m.recordDeletes,
		m.tatTransitions,
		m.extractionFallbacks,
		m.upstreamDuration,
	)
	return m
}

// Registry exposes the registry so other collectors (e.g. pool stats) can join.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware records request counts and latency keyed by the route template,
// so /patients/:id does not explode into one series per patient.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if m == nil {
				return next(c)
			}
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if err != nil {
				if he, ok := err.(*echo.HTTPError); ok {
					status = he.Code
				} else if status < http.StatusBadRequest {
					status = http.StatusInternalServerError
				}
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			m.httpDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

func (m *Metrics) RecordUpsert(category string, created bool) {
	if m == nil {
		return
	}
	outcome := "updated"
	if created {
		outcome = "created"
	}
	m.recordUpserts.WithLabelValues(category, outcome).Inc()
}

func (m *Metrics) RecordDeletes(category string, n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.recordDeletes.WithLabelValues(category).Add(float64(n))
}

func (m *Metrics) TATTransition(serviceType, status string) {
	if m == nil {
		return
	}
	m.tatTransitions.WithLabelValues(serviceType, status).Inc()
}

func (m *Metrics) ExtractionFallback(section, reason string) {
	if m == nil {
		return
	}
	m.extractionFallbacks.WithLabelValues(section, reason).Inc()
}

func (m *Metrics) ObserveUpstream(operation string, d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.upstreamDuration.WithLabelValues(operation, outcome).Observe(d.Seconds())
}
