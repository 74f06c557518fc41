package assign

import (
	"testing"
	"time"

	"github.com/ouestbat/chantier/core/constraint"
	"github.com/ouestbat/chantier/core/model"
	"github.com/ouestbat/chantier/core/plan"
	"github.com/ouestbat/chantier/infra/logger"
)

func at(hour, min int) time.Time {
	return time.Date(2025, 3, 10, hour, min, 0, 0, time.UTC)
}

func item(id string, start, end time.Time, crew int, params string) plan.ScheduledItem {
	return plan.ScheduledItem{
		ID:         id,
		Name:       id,
		Kind:       model.KindOperation,
		Start:      start,
		End:        end,
		Crew:       crew,
		Params:     params,
		Predicates: constraint.Parse(params),
		Zone:       "Z1",
		Coords:     "48.0,-1.7",
	}
}

func TestAssign_NearestWorkerWins(t *testing.T) {
	workers := []model.Worker{
		{ID: "far", Coords: "48.45,-1.7"},   // ~50 km north
		{ID: "near", Coords: "48.018,-1.7"}, // ~2 km north
	}
	schedule := []plan.ScheduledItem{item("A", at(9, 0), at(11, 0), 1, "")}
	New(logger.NopLogger{}).Assign(schedule, workers)
	if len(schedule[0].Workers) != 1 || schedule[0].Workers[0] != "near" {
		t.Fatalf("expected nearest worker, got %v", schedule[0].Workers)
	}
}

func TestAssign_MissingCoordinatesRankLast(t *testing.T) {
	workers := []model.Worker{
		{ID: "nowhere"},
		{ID: "far", Coords: "48.45,-1.7"},
	}
	schedule := []plan.ScheduledItem{item("A", at(9, 0), at(11, 0), 1, "")}
	New(logger.NopLogger{}).Assign(schedule, workers)
	if schedule[0].Workers[0] != "far" {
		t.Fatalf("worker without coordinates must rank last, got %v", schedule[0].Workers)
	}
}

func TestAssign_NoDoubleBooking(t *testing.T) {
	workers := []model.Worker{
		{ID: "w1", Coords: "48.018,-1.7"},
		{ID: "w2", Coords: "48.45,-1.7"},
	}
	schedule := []plan.ScheduledItem{
		item("A", at(9, 0), at(12, 0), 1, ""),
		item("B", at(10, 0), at(11, 0), 1, ""), // overlaps A
		item("C", at(14, 0), at(16, 0), 1, ""), // after A
	}
	New(logger.NopLogger{}).Assign(schedule, workers)
	if schedule[0].Workers[0] != "w1" {
		t.Fatalf("A: %v", schedule[0].Workers)
	}
	if schedule[1].Workers[0] != "w2" {
		t.Fatalf("B must not reuse w1 during A, got %v", schedule[1].Workers)
	}
	if schedule[2].Workers[0] != "w1" {
		t.Fatalf("C may reuse w1 after A, got %v", schedule[2].Workers)
	}
}

func TestAssign_BusyTimeRejected(t *testing.T) {
	workers := []model.Worker{
		{ID: "busy", Coords: "48.018,-1.7", Busy: "20250310:9-12"},
		{ID: "free", Coords: "48.45,-1.7"},
	}
	schedule := []plan.ScheduledItem{item("A", at(10, 0), at(11, 0), 1, "")}
	New(logger.NopLogger{}).Assign(schedule, workers)
	if schedule[0].Workers[0] != "free" {
		t.Fatalf("busy worker must be rejected, got %v", schedule[0].Workers)
	}
}

func TestAssign_ShortfallIsReportedNotFatal(t *testing.T) {
	workers := []model.Worker{{ID: "w1", Coords: "48.018,-1.7"}}
	schedule := []plan.ScheduledItem{item("A", at(9, 0), at(11, 0), 3, "")}
	New(logger.NopLogger{}).Assign(schedule, workers)
	si := schedule[0]
	if len(si.Workers) != 1 {
		t.Fatalf("partial assignment expected, got %v", si.Workers)
	}
	if si.Shortfall == nil || si.Shortfall.Required != 3 || si.Shortfall.Assigned != 1 {
		t.Fatalf("shortfall: %+v", si.Shortfall)
	}
}

func TestAssign_LedgerAccumulates(t *testing.T) {
	workers := []model.Worker{{ID: "w1"}}
	schedule := []plan.ScheduledItem{
		item("A", at(9, 0), at(10, 0), 1, ""),
		item("B", at(10, 0), at(11, 0), 1, ""),
	}
	ledger := New(logger.NopLogger{}).Assign(schedule, workers)
	if got := ledger.CommittedMinutes("w1"); got != 120 {
		t.Fatalf("committed minutes: %d", got)
	}
}

func TestSatisfies_RoleExact(t *testing.T) {
	preds := constraint.Parse(ParamRole + ":849(-)")
	if !Satisfies(preds, model.Worker{Role: "849"}) {
		t.Fatal("matching role rejected")
	}
	if Satisfies(preds, model.Worker{Role: "850"}) {
		t.Fatal("wrong role accepted")
	}
}

func TestSatisfies_LevelRange(t *testing.T) {
	preds := constraint.Parse(ParamLevel + ":(4-)")
	if !Satisfies(preds, model.Worker{Level: 5}) {
		t.Fatal("level 5 rejected")
	}
	if Satisfies(preds, model.Worker{Level: 3}) {
		t.Fatal("level 3 accepted")
	}
	if Satisfies(preds, model.Worker{}) {
		t.Fatal("unset level accepted for a range check")
	}
}

func TestSatisfies_GradeRequired(t *testing.T) {
	preds := constraint.Parse(ParamGrade + ":%(-)")
	if !Satisfies(preds, model.Worker{Grade: "N3P2"}) {
		t.Fatal("graded worker rejected")
	}
	if Satisfies(preds, model.Worker{}) {
		t.Fatal("ungraded worker accepted")
	}
}

func TestSatisfies_ExemptAndUnknownParamsSkip(t *testing.T) {
	preds := constraint.Parse(ParamDocState + ":849(-)," + ParamApproval + ":%(-),9999:(1-2)")
	if !Satisfies(preds, model.Worker{}) {
		t.Fatal("exempt and unmapped params must not reject workers")
	}
}
