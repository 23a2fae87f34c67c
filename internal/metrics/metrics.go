// Package metrics exposes the Prometheus collectors of the quiz API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics groups the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestCounter     *prometheus.CounterVec
	RequestDuration    *prometheus.HistogramVec
	Generations        *prometheus.CounterVec
	GenerationDuration *prometheus.HistogramVec
	SessionsStarted    prometheus.Counter
	SessionsCompleted  *prometheus.CounterVec
	BankSize           *prometheus.GaugeVec

	gatherer prometheus.Gatherer
}

// New creates the collectors and registers them with reg.
func New(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		RequestCounter: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Duration of HTTP requests",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 30},
			},
			[]string{"method", "endpoint"},
		),
		Generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "question_generations_total",
				Help: "Question generation attempts by mode and outcome",
			},
			[]string{"mode", "outcome"},
		),
		GenerationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "question_generation_duration_seconds",
				Help:    "Time spent waiting for the completion provider",
				Buckets: []float64{1, 5, 10, 20, 40, 60, 120},
			},
			[]string{"provider"},
		),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "level_test_sessions_started_total",
			Help: "Level test sessions started or restarted",
		}),
		SessionsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "level_test_sessions_completed_total",
				Help: "Completed level test sessions by final level",
			},
			[]string{"final_level"},
		),
		BankSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "question_bank_size",
				Help: "Stored questions per level after the last save",
			},
			[]string{"level"},
		),
		gatherer: reg,
	}

	reg.MustRegister(
		m.RequestCounter,
		m.RequestDuration,
		m.Generations,
		m.GenerationDuration,
		m.SessionsStarted,
		m.SessionsCompleted,
		m.BankSize,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveRequest(method, endpoint, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestCounter.WithLabelValues(method, endpoint, status).Inc()
	m.RequestDuration.WithLabelValues(method, endpoint).Observe(seconds)
}

func (m *Metrics) ObserveGeneration(mode, outcome, provider string, seconds float64) {
	if m == nil {
		return
	}
	m.Generations.WithLabelValues(mode, outcome).Inc()
	if seconds > 0 {
		m.GenerationDuration.WithLabelValues(provider).Observe(seconds)
	}
}

func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.SessionsStarted.Inc()
}

func (m *Metrics) SessionCompleted(finalLevel string) {
	if m == nil {
		return
	}
	m.SessionsCompleted.WithLabelValues(finalLevel).Inc()
}

func (m *Metrics) SetBankSize(level string, n int) {
	if m == nil {
		return
	}
	m.BankSize.WithLabelValues(level).Set(float64(n))
}
