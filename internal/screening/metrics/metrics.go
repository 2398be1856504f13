package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers the pre-registration decision as a whole. Blacklist and
// duplicate stages keep their own collectors.
type Metrics struct {
	// Decisions by outcome (allowed, blocked, error) and risk
	Decisions *prometheus.CounterVec

	// Decisions short-circuited by a blacklist match
	BlacklistBlocks prometheus.Counter

	DecisionLatency prometheus.Histogram
}

func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Decisions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "screening_preregistration_decisions_total",
			Help: "Pre-registration screening decisions by outcome and risk",
		}, []string{"outcome", "risk"}),
		BlacklistBlocks: f.NewCounter(prometheus.CounterOpts{
			Name: "screening_preregistration_blacklist_blocks_total",
			Help: "Registrations blocked by a blacklist match",
		}),
		DecisionLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "screening_preregistration_duration_seconds",
			Help:    "End-to-end pre-registration screening latency",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

func (m *Metrics) IncrementDecision(outcome, risk string) {
	if m != nil {
		m.Decisions.WithLabelValues(outcome, risk).Inc()
	}
}

func (m *Metrics) IncrementBlacklistBlock() {
	if m != nil {
		m.BlacklistBlocks.Inc()
	}
}

func (m *Metrics) ObserveLatency(d time.Duration) {
	if m != nil {
		m.DecisionLatency.Observe(d.Seconds())
	}
}
