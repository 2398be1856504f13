package rescreen

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Sweeps        *prometheus.CounterVec
	SweepDuration prometheus.Histogram
	Screened      prometheus.Counter
	Hits          prometheus.Counter
}

func NewMetrics() *Metrics {
	return NewMetricsWithRegisterer(prometheus.DefaultRegisterer)
}

func NewMetricsWithRegisterer(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Sweeps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "screening_rescreen_sweeps_total",
			Help: "Rescreen sweeps by outcome",
		}, []string{"outcome"}),
		SweepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "screening_rescreen_sweep_duration_seconds",
			Help:    "Duration of a full rescreen sweep",
			Buckets: []float64{.1, .5, 1, 5, 15, 60, 300},
		}),
		Screened: f.NewCounter(prometheus.CounterOpts{
			Name: "screening_rescreen_participants_total",
			Help: "Participants screened by the rescreen worker",
		}),
		Hits: f.NewCounter(prometheus.CounterOpts{
			Name: "screening_rescreen_hits_total",
			Help: "Participants matching a blacklist entry during rescreen",
		}),
	}
}

func (m *Metrics) ObserveSweep(d time.Duration, err error) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.Sweeps.WithLabelValues(outcome).Inc()
	m.SweepDuration.Observe(d.Seconds())
}

func (m *Metrics) IncScreened() {
	if m == nil {
		return
	}
	m.Screened.Inc()
}

func (m *Metrics) IncHit() {
	if m == nil {
		return
	}
	m.Hits.Inc()
}
