package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/voltroute/backend/internal/readiness"
)

// Metrics groups all Prometheus instruments used across the application.
// Registered once at startup via New(); passed by pointer wherever needed.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CheckUp         *prometheus.GaugeVec
	CheckDuration   *prometheus.HistogramVec
}

// New registers all instruments with the given Prometheus registerer and
// returns the populated Metrics struct.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served, by route pattern.",
		}, []string{"route", "method", "code"}),

		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency, by route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),

		CheckUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "readiness_check_up",
			Help: "1 if the last run of the readiness check passed, 0 otherwise.",
		}, []string{"check"}),

		CheckDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "readiness_check_duration_seconds",
			Help:    "Latency of individual readiness checks.",
			Buckets: prometheus.DefBuckets,
		}, []string{"check"}),
	}

	reg.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.CheckUp,
		m.CheckDuration,
	)

	return m
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(route, method string, code int, latency time.Duration) {
	m.RequestsTotal.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
	m.RequestDuration.WithLabelValues(route, method).Observe(latency.Seconds())
}

// ReadinessHooks returns the callbacks expected by readiness.NewChecker.
func (m *Metrics) ReadinessHooks() readiness.Hooks {
	return readiness.Hooks{
		OnResult: func(name string, err error, latency time.Duration) {
			up := 1.0
			if err != nil {
				up = 0
			}
			m.CheckUp.WithLabelValues(name).Set(up)
			m.CheckDuration.WithLabelValues(name).Observe(latency.Seconds())
		},
	}
}
