// Package metrics exposes Prometheus collectors for the calculator service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tjm_calculator"

// Outcome labels.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailure = "failure"
)

// Metrics groups the collectors registered on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	Calculations  *prometheus.CounterVec
	ValidationErr *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	RequiredRate  prometheus.Histogram
	HTTPDuration  *prometheus.HistogramVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		Calculations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "calculations_total",
			Help:      "Rate calculations by outcome.",
		}, []string{"outcome"}),
		ValidationErr: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_errors_total",
			Help:      "Validation failures by code.",
		}, []string{"code"}),
		Notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Email capture notifications by outcome.",
		}, []string{"outcome"}),
		RequiredRate: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "required_daily_rate_euros",
			Help:      "Distribution of computed required day rates.",
			Buckets:   []float64{100, 200, 300, 400, 500, 700, 1000, 1500},
		}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.Calculations,
		m.ValidationErr,
		m.Notifications,
		m.RequiredRate,
		m.HTTPDuration,
	)
	return m
}

// Registry returns the registry the collectors live on.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCalculation records a successful calculation.
func (m *Metrics) ObserveCalculation(requiredDailyRate float64) {
	m.Calculations.WithLabelValues(OutcomeSuccess).Inc()
	m.RequiredRate.Observe(requiredDailyRate)
}

// ObserveInvalid records a rejected calculation and each failing code.
func (m *Metrics) ObserveInvalid(codes []string) {
	m.Calculations.WithLabelValues(OutcomeInvalid).Inc()
	for _, code := range codes {
		m.ValidationErr.WithLabelValues(code).Inc()
	}
}

// ObserveNotification records the outcome of an email capture.
func (m *Metrics) ObserveNotification(err error) {
	if err != nil {
		m.Notifications.WithLabelValues(OutcomeFailure).Inc()
		return
	}
	m.Notifications.WithLabelValues(OutcomeSuccess).Inc()
}

// ObserveHTTP records a served request.
func (m *Metrics) ObserveHTTP(route string, status int, elapsed time.Duration) {
	m.HTTPDuration.WithLabelValues(route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
