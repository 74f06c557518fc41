package report

import (
	"math"
	"testing"
	"time"

	"github.com/ouestbat/chantier/core/assign"
	"github.com/ouestbat/chantier/core/calendar"
	"github.com/ouestbat/chantier/core/model"
	"github.com/ouestbat/chantier/core/plan"
)

func at(hour int) time.Time {
	return time.Date(2025, 3, 10, hour, 0, 0, 0, time.UTC)
}

func TestBuild(t *testing.T) {
	schedule := []plan.ScheduledItem{
		{ID: "1", Name: "Pose", Start: at(9), End: at(11), Crew: 1, Workers: []string{"w1"}},
		{ID: "2", Name: "Ferraille", Start: at(11), End: at(12), Crew: 2, Workers: []string{"w2"},
			Shortfall: &plan.Shortfall{Required: 2, Assigned: 1}},
	}
	workers := []model.Worker{{ID: "w1"}, {ID: "w2"}}
	ledger := assign.Ledger{
		"w1": {{Start: at(9), End: at(11)}},
		"w2": {{Start: at(11), End: at(12)}},
	}

	rep := Build("run-1", schedule, workers, ledger, calendar.DefaultHours)
	if rep.Items != 2 {
		t.Fatalf("items: %d", rep.Items)
	}
	if !rep.SpanStart.Equal(at(9)) || !rep.SpanEnd.Equal(at(12)) {
		t.Fatalf("span: %v - %v", rep.SpanStart, rep.SpanEnd)
	}
	if len(rep.Shortfalls) != 1 || rep.Shortfalls[0].Name != "Ferraille" {
		t.Fatalf("shortfalls: %+v", rep.Shortfalls)
	}
	if rep.MeanLoad != 90 {
		t.Fatalf("mean load: %v", rep.MeanLoad)
	}
	// Sample standard deviation of {120, 60}.
	if math.Abs(rep.StdDevLoad-42.426) > 0.01 {
		t.Fatalf("stddev load: %v", rep.StdDevLoad)
	}
	// One working day capacity is 480 minutes.
	if math.Abs(rep.Loads[0].Utilization-0.25) > 1e-9 {
		t.Fatalf("utilization: %v", rep.Loads[0].Utilization)
	}
}

func TestBuild_EmptySchedule(t *testing.T) {
	rep := Build("run-2", nil, []model.Worker{{ID: "w1"}}, assign.Ledger{}, calendar.DefaultHours)
	if rep.Items != 0 || len(rep.Shortfalls) != 0 {
		t.Fatalf("unexpected report: %+v", rep)
	}
	if rep.Loads[0].Minutes != 0 || rep.Loads[0].Utilization != 0 {
		t.Fatalf("idle worker load: %+v", rep.Loads[0])
	}
}
