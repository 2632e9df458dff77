package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the application counters exported next to the Go runtime
// and process collectors.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	LoginsTotal     *prometheus.CounterVec
}

// NewMetrics creates the soulbloom metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soulbloom_rpc_requests_total",
				Help: "Total number of gRPC requests by method and status code",
			},
			[]string{"method", "code"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "soulbloom_rpc_request_duration_seconds",
				Help:    "Duration of gRPC requests",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		LoginsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "soulbloom_logins_total",
				Help: "Login attempts by result",
			},
			[]string{"result"},
		),
	}

	reg.MustRegister(m.RequestsTotal, m.RequestDuration, m.LoginsTotal)
	return m
}

// ObserveRequest records one finished RPC.
func (m *Metrics) ObserveRequest(method, code string, d time.Duration) {
	m.RequestsTotal.WithLabelValues(method, code).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// ObserveLogin counts a login attempt; result is "ok", "failed" or "throttled".
func (m *Metrics) ObserveLogin(result string) {
	m.LoginsTotal.WithLabelValues(result).Inc()
}
