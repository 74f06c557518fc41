// Package report summarises a finished planning run: which items stayed
// under-staffed and how evenly the committed time spreads over the workforce.
package report

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/ouestbat/chantier/core/assign"
	"github.com/ouestbat/chantier/core/calendar"
	"github.com/ouestbat/chantier/core/model"
	"github.com/ouestbat/chantier/core/plan"
)

// ShortfallEntry names one under-staffed item.
type ShortfallEntry struct {
	ItemID   string `json:"item_id"`
	Name     string `json:"name"`
	Zone     string `json:"zone,omitempty"`
	Required int    `json:"required"`
	Assigned int    `json:"assigned"`
}

// WorkerLoad is the committed time of one worker over the run span.
type WorkerLoad struct {
	WorkerID    string  `json:"worker_id"`
	Minutes     int     `json:"minutes"`
	Utilization float64 `json:"utilization"` // committed share of the span's working time
}

// Report is the run summary handed to the caller next to the schedule.
type Report struct {
	RunID      string           `json:"run_id"`
	Items      int              `json:"items"`
	SpanStart  time.Time        `json:"span_start"`
	SpanEnd    time.Time        `json:"span_end"`
	Shortfalls []ShortfallEntry `json:"shortfalls,omitempty"`
	Loads      []WorkerLoad     `json:"loads"`
	MeanLoad   float64          `json:"mean_load_minutes"`
	StdDevLoad float64          `json:"stddev_load_minutes"`
}

// Build computes the summary of a staffed schedule. Worker order follows the
// input pool, including workers that received nothing.
func Build(runID string, schedule []plan.ScheduledItem, workers []model.Worker, ledger assign.Ledger, h calendar.Hours) Report {
	rep := Report{RunID: runID, Items: len(schedule)}
	for _, si := range schedule {
		if rep.SpanStart.IsZero() || si.Start.Before(rep.SpanStart) {
			rep.SpanStart = si.Start
		}
		if si.End.After(rep.SpanEnd) {
			rep.SpanEnd = si.End
		}
		if si.Shortfall != nil {
			rep.Shortfalls = append(rep.Shortfalls, ShortfallEntry{
				ItemID:   si.ID,
				Name:     si.Name,
				Zone:     si.Zone,
				Required: si.Shortfall.Required,
				Assigned: si.Shortfall.Assigned,
			})
		}
	}

	capacity := spanCapacityMinutes(rep.SpanStart, rep.SpanEnd, h)
	loads := make([]float64, 0, len(workers))
	for _, w := range workers {
		minutes := ledger.CommittedMinutes(w.ID)
		wl := WorkerLoad{WorkerID: w.ID, Minutes: minutes}
		if capacity > 0 {
			wl.Utilization = float64(minutes) / float64(capacity)
		}
		rep.Loads = append(rep.Loads, wl)
		loads = append(loads, float64(minutes))
	}
	if len(loads) > 0 {
		rep.MeanLoad = stat.Mean(loads, nil)
		rep.StdDevLoad = stat.StdDev(loads, nil)
	}
	return rep
}

// spanCapacityMinutes is the working time a single worker could supply over
// the schedule span: one lunch-less working day per calendar day.
func spanCapacityMinutes(start, end time.Time, h calendar.Hours) int {
	if start.IsZero() || !end.After(start) {
		return 0
	}
	days := 1
	for d := h.DayStartOn(start); d.Before(h.DayStartOn(end)); d = h.NextDayStart(d) {
		days++
	}
	perDay := (h.DayEnd-h.DayStart)*60 - 60
	if perDay < 0 {
		perDay = 0
	}
	return days * perDay
}
