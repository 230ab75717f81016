package store

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeOK       = "ok"
	outcomeConflict = "conflict"
	outcomeError    = "error"
	outcomeHit      = "hit"
	outcomeMiss     = "miss"
)

// Metrics contains the store's prometheus collectors.
type Metrics struct {
	SavesTotal   *prometheus.CounterVec
	LoadsTotal   *prometheus.CounterVec
	SaveDuration prometheus.Histogram
}

// NewMetrics creates unregistered collectors for store operations.
func NewMetrics() *Metrics {
	return &Metrics{
		SavesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docstore",
				Subsystem: "store",
				Name:      "saves_total",
				Help:      "Total number of save attempts by outcome (ok, conflict, error)",
			},
			[]string{"outcome"},
		),
		LoadsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "docstore",
				Subsystem: "store",
				Name:      "loads_total",
				Help:      "Total number of load attempts by outcome (hit, miss, error)",
			},
			[]string{"outcome"},
		),
		SaveDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "docstore",
				Subsystem: "store",
				Name:      "save_duration_seconds",
				Help:      "Save duration in seconds, including rolled-back attempts",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// Register registers all collectors with the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.SavesTotal, m.LoadsTotal, m.SaveDuration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func (m *Metrics) observeSave(outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.SavesTotal.WithLabelValues(outcome).Inc()
	m.SaveDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) observeLoad(outcome string) {
	if m == nil {
		return
	}
	m.LoadsTotal.WithLabelValues(outcome).Inc()
}
