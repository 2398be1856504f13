package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for duplicate detection.
type Metrics struct {
	// Candidates scored per detection run
	CandidatesEvaluated prometheus.Histogram

	// Review rows appended, by risk
	CandidatesPersisted *prometheus.CounterVec

	// Runs where the candidate cap cut the search short
	SearchTruncated prometheus.Counter

	DetectLatency prometheus.Histogram
}

// New registers duplicate detection metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer registers on reg; tests pass a fresh prometheus.NewRegistry().
func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		CandidatesEvaluated: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "screening_duplicate_candidates_evaluated",
			Help:    "Number of in-scope participants scored per detection run",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100, 250, 500},
		}),
		CandidatesPersisted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "screening_duplicate_candidates_persisted_total",
			Help: "Duplicate candidates appended to the review queue by risk",
		}, []string{"risk"}),
		SearchTruncated: f.NewCounter(prometheus.CounterOpts{
			Name: "screening_duplicate_search_truncated_total",
			Help: "Detection runs where the candidate cap was reached",
		}),
		DetectLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "screening_duplicate_detect_duration_seconds",
			Help:    "Duration of duplicate detection including search and persistence",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
}

func (m *Metrics) ObserveEvaluated(n int) {
	if m != nil {
		m.CandidatesEvaluated.Observe(float64(n))
	}
}

func (m *Metrics) IncrementPersisted(risk string) {
	if m != nil {
		m.CandidatesPersisted.WithLabelValues(risk).Inc()
	}
}

func (m *Metrics) IncrementTruncated() {
	if m != nil {
		m.SearchTruncated.Inc()
	}
}

func (m *Metrics) ObserveDetectLatency(d time.Duration) {
	if m != nil {
		m.DetectLatency.Observe(d.Seconds())
	}
}
