package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for blacklist screening.
type Metrics struct {
	ScreenOutcome  *prometheus.CounterVec
	EntriesLoaded  prometheus.Histogram
	ExpiredSkipped prometheus.Counter
	ScreenLatency  prometheus.Histogram
}

// New registers blacklist metrics on the default registry.
func New() *Metrics {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ScreenOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "screening_blacklist_screens_total",
			Help: "Blacklist screens by outcome",
		}, []string{"outcome"}), // outcome: "hit", "clear"
		EntriesLoaded: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "screening_blacklist_entries_loaded",
			Help:    "Active entries compared per screen",
			Buckets: []float64{0, 1, 10, 50, 100, 500, 1000, 5000},
		}),
		ExpiredSkipped: f.NewCounter(prometheus.CounterOpts{
			Name: "screening_blacklist_expired_skipped_total",
			Help: "Expired entries returned by a store and dropped before matching",
		}),
		ScreenLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "screening_blacklist_screen_duration_seconds",
			Help:    "Duration of blacklist screening including the entry load",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5},
		}),
	}
}

func (m *Metrics) IncrementOutcome(outcome string) {
	if m != nil {
		m.ScreenOutcome.WithLabelValues(outcome).Inc()
	}
}

func (m *Metrics) ObserveEntriesLoaded(n int) {
	if m != nil {
		m.EntriesLoaded.Observe(float64(n))
	}
}

func (m *Metrics) AddExpiredSkipped(n int) {
	if m != nil && n > 0 {
		m.ExpiredSkipped.Add(float64(n))
	}
}

func (m *Metrics) ObserveScreenLatency(d time.Duration) {
	if m != nil {
		m.ScreenLatency.Observe(d.Seconds())
	}
}
