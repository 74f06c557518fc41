package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ouestbat/chantier/config"
	"github.com/ouestbat/chantier/core/assign"
	coremetrics "github.com/ouestbat/chantier/core/metrics"
	"github.com/ouestbat/chantier/core/model"
	"github.com/ouestbat/chantier/core/plan"
	"github.com/ouestbat/chantier/core/report"
	"github.com/ouestbat/chantier/core/template"
	"github.com/ouestbat/chantier/infra/logger"
	"github.com/ouestbat/chantier/infra/metrics"
	"github.com/ouestbat/chantier/infra/mqtt"
)

// Service wires the planning engine to its collaborators: metric sinks and
// the optional schedule publisher.
type Service struct {
	cfg       *config.Config
	log       logger.Logger
	sink      coremetrics.Sink
	publisher mqtt.Publisher
}

// Result is the complete output of one planning pass.
type Result struct {
	RunID    string
	Schedule []plan.ScheduledItem
	Report   report.Report
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink = metrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc := &Service{cfg: cfg, log: logg, sink: sink}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}
	return svc, nil
}

// Plan runs one full planning pass over the given collections. Cancelling
// ctx discards partial output; the engine holds no external resources.
func (s *Service) Plan(ctx context.Context, items []model.WorkItem, workers []model.Worker) (*Result, error) {
	began := time.Now()
	runID := uuid.NewString()

	idx := template.Build(items)
	sched, err := plan.New(s.cfg.Plan, s.log)
	if err != nil {
		return nil, err
	}
	schedule, err := sched.Run(items, idx)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ledger := assign.New(s.log).Assign(schedule, workers)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rep := report.Build(runID, schedule, workers, ledger, s.cfg.Plan.Hours)
	s.record(runID, schedule, rep, len(workers), time.Since(began))

	if s.publisher != nil {
		if err := s.publisher.PublishSchedule(runID, schedule); err != nil {
			// The schedule itself is good; the display just missed it.
			s.log.Errorf("publish schedule: %v", err)
		}
	}

	s.log.Infof("run %s: %d items, %d shortfalls in %s", runID, len(schedule), len(rep.Shortfalls), time.Since(began))
	return &Result{RunID: runID, Schedule: schedule, Report: rep}, nil
}

func (s *Service) record(runID string, schedule []plan.ScheduledItem, rep report.Report, workers int, elapsed time.Duration) {
	recs := make([]coremetrics.ItemRecord, 0, len(schedule))
	for _, si := range schedule {
		assigned := len(si.Workers)
		recs = append(recs, coremetrics.ItemRecord{
			RunID:    runID,
			ItemID:   si.ID,
			Name:     si.Name,
			Kind:     string(si.Kind),
			Zone:     si.Zone,
			Source:   string(si.Source),
			Duration: si.Duration,
			Required: si.Crew,
			Assigned: assigned,
			Start:    si.Start,
			End:      si.End,
		})
	}
	if err := s.sink.RecordItems(recs); err != nil {
		s.log.Errorf("record items: %v", err)
	}
	run := coremetrics.RunRecord{
		RunID:      runID,
		Items:      len(schedule),
		Shortfalls: len(rep.Shortfalls),
		Workers:    workers,
		SpanStart:  rep.SpanStart,
		SpanEnd:    rep.SpanEnd,
		Elapsed:    elapsed,
		Time:       time.Now(),
	}
	if err := s.sink.RecordRun(run); err != nil {
		s.log.Errorf("record run: %v", err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		s.publisher.Close()
	}
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}
