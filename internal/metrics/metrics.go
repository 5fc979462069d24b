// Package metrics exposes service counters for prometheus scraping.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "datamonitor"

// Metrics owns a private registry so tests can create as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Registry *prometheus.Registry

	measurementWrites *prometheus.CounterVec
	invalidWrites     prometheus.Counter
	exports           *prometheus.CounterVec
	logins            *prometheus.CounterVec
	seeded            prometheus.Counter
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		measurementWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurement_writes_total",
			Help:      "Measurement writes by action.",
		}, []string{"action"}),
		invalidWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurement_invalid_total",
			Help:      "Created or updated measurements that failed validation.",
		}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Generated exports by format and destination.",
		}, []string{"format", "destination"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "login_attempts_total",
			Help:      "Sign-in attempts by outcome.",
		}, []string{"outcome"}),
		seeded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "seeded_measurements_total",
			Help:      "Measurements inserted by the mock data generator.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.measurementWrites,
		m.invalidWrites,
		m.exports,
		m.logins,
		m.seeded,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

func (m *Metrics) MeasurementWritten(action string, valid bool) {
	if m == nil {
		return
	}
	m.measurementWrites.WithLabelValues(action).Inc()
	if !valid {
		m.invalidWrites.Inc()
	}
}

func (m *Metrics) Exported(format, destination string) {
	if m == nil {
		return
	}
	m.exports.WithLabelValues(format, destination).Inc()
}

func (m *Metrics) LoginAttempt(outcome string) {
	if m == nil {
		return
	}
	m.logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) Seeded(n int) {
	if m == nil {
		return
	}
	m.seeded.Add(float64(n))
}

func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(seconds)
}
