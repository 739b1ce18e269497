// Package metrics exposes Prometheus instrumentation for flashcard
// generation. Metrics implements generation.Observer and serves its own
// registry over HTTP.
package metrics

import (
	"context"
	"net/http"

	"github.com/phrazzld/flashcard-synth/internal/generation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "flashcards"

// GateStats is satisfied by resilience.Gate.
type GateStats interface {
	Limit() int64
	InFlight() int64
	Waiting() int64
}

// Metrics records pipeline outcomes.
type Metrics struct {
	registry           *prometheus.Registry
	generations        *prometheus.CounterVec
	cards              prometheus.Counter
	dropped            prometheus.Counter
	completionDuration *prometheus.HistogramVec
}

var _ generation.Observer = (*Metrics)(nil)

// New creates Metrics on a fresh registry that also carries the Go runtime
// and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Flashcard generation requests by outcome and completion failure kind.",
		}, []string{"status", "kind"}),
		cards: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cards_generated_total",
			Help:      "Validated flashcards returned to callers.",
		}),
		dropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cards_dropped_total",
			Help:      "Candidates rejected by validation.",
		}),
		completionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "completion_duration_seconds",
			Help:      "Latency of generation service calls.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 30, 60, 120},
		}, []string{"status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.generations,
		m.cards,
		m.dropped,
		m.completionDuration,
	)

	return m
}

// GenerationFinished implements generation.Observer.
func (m *Metrics) GenerationFinished(_ context.Context, outcome generation.Outcome) {
	m.generations.WithLabelValues(string(outcome.Status), string(outcome.CompletionKind)).Inc()

	if outcome.Cards > 0 {
		m.cards.Add(float64(outcome.Cards))
	}
	if outcome.Dropped > 0 {
		m.dropped.Add(float64(outcome.Dropped))
	}
	if outcome.CompletionDuration > 0 {
		m.completionDuration.WithLabelValues(string(outcome.Status)).
			Observe(outcome.CompletionDuration.Seconds())
	}
}

// RegisterGate publishes admission gate occupancy.
func (m *Metrics) RegisterGate(gate GateStats) {
	m.registry.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "completion_slots",
			Help:      "Configured concurrent generation service calls.",
		}, func() float64 { return float64(gate.Limit()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "completion_in_flight",
			Help:      "Generation service calls currently holding a slot.",
		}, func() float64 { return float64(gate.InFlight()) }),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "completion_waiting",
			Help:      "Requests waiting for a generation service slot.",
		}, func() float64 { return float64(gate.Waiting()) }),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
