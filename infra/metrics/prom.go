package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/ouestbat/chantier/core/metrics"
)

// PromSink records planning results in Prometheus metrics.
type PromSink struct {
	runs       *prometheus.CounterVec
	items      *prometheus.CounterVec
	shortfalls prometheus.Counter
	duration   *prometheus.HistogramVec
}

// NewPromSink registers planning metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. Collectors
// already registered are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planning_runs_total",
		Help: "Total number of planning passes",
	}, []string{"outcome"})
	items := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planning_items_total",
		Help: "Total number of scheduled work items",
	}, []string{"kind", "source", "staffed"})
	shortfalls := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "planning_shortfalls_total",
		Help: "Total number of under-staffed items",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planning_item_duration_minutes",
		Help:    "Resolved work item durations",
		Buckets: []float64{30, 60, 120, 240, 480, 960},
	}, []string{"kind", "source"})

	s := &PromSink{runs: runs, items: items, shortfalls: shortfalls, duration: duration}
	for _, c := range []prometheus.Collector{runs, items, shortfalls, duration} {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); !ok {
				return nil, err
			}
		}
	}
	return s, nil
}

// RecordRun increments the run counter.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	outcome := "complete"
	if rec.Shortfalls > 0 {
		outcome = "shortfall"
	}
	s.runs.WithLabelValues(outcome).Inc()
	return nil
}

// RecordItems counts every placed item and observes its duration.
func (s *PromSink) RecordItems(recs []coremetrics.ItemRecord) error {
	for _, r := range recs {
		staffed := "true"
		if r.Assigned < r.Required {
			staffed = "false"
			s.shortfalls.Inc()
		}
		s.items.WithLabelValues(r.Kind, r.Source, staffed).Inc()
		s.duration.WithLabelValues(r.Kind, r.Source).Observe(float64(r.Duration))
	}
	return nil
}
