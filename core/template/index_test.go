package template

import (
	"testing"

	"github.com/ouestbat/chantier/core/model"
)

func TestBuild_IndexesTemplateRowsOnly(t *testing.T) {
	items := []model.WorkItem{
		{Task: "Coffrage", Operation: "Pose", Status: model.StatusActive, Duration: 99, Crew: "9"},
		{Task: "Coffrage", Operation: "Pose", Status: "template", Duration: 10, Crew: "2", Params: "115:849(-)"},
		{Task: "Coffrage", Status: "", Duration: 30},
	}
	idx := Build(items)

	if d, ok := idx.Duration(model.KindOperation, "Pose"); !ok || d != 10 {
		t.Fatalf("operation duration: got %d, %v", d, ok)
	}
	if d, ok := idx.Duration(model.KindTask, "Coffrage"); !ok || d != 30 {
		t.Fatalf("task duration: got %d, %v", d, ok)
	}
	if c, ok := idx.Crew(model.KindOperation, "Pose"); !ok || c != 2 {
		t.Fatalf("crew hint: got %d, %v", c, ok)
	}
	if c, ok := idx.Constraint(model.KindOperation, "Pose"); !ok || c != "115:849(-)" {
		t.Fatalf("constraint: got %q, %v", c, ok)
	}
}

func TestBuild_FirstSeenWins(t *testing.T) {
	items := []model.WorkItem{
		{Task: "Coffrage", Operation: "Pose", Status: "template", Duration: 10},
		{Task: "Coffrage", Operation: "Pose", Status: "template", Duration: 99, Crew: "4"},
	}
	idx := Build(items)
	if d, _ := idx.Duration(model.KindOperation, "Pose"); d != 10 {
		t.Fatalf("later template must not overwrite, got %d", d)
	}
	// The crew hint was absent on the first row, so the second fills it.
	if c, ok := idx.Crew(model.KindOperation, "Pose"); !ok || c != 4 {
		t.Fatalf("crew hint: got %d, %v", c, ok)
	}
}

func TestBuild_SkipsEmptyValues(t *testing.T) {
	items := []model.WorkItem{
		{Task: "Coffrage", Status: "template", Duration: 0, Crew: "zero", Params: "  "},
		{Task: "", Status: "template", Duration: 10},
	}
	idx := Build(items)
	if _, ok := idx.Duration(model.KindTask, "Coffrage"); ok {
		t.Fatal("zero duration must not be indexed")
	}
	if _, ok := idx.Crew(model.KindTask, "Coffrage"); ok {
		t.Fatal("unparseable crew hint must not be indexed")
	}
	if _, ok := idx.Constraint(model.KindTask, "Coffrage"); ok {
		t.Fatal("blank constraint must not be indexed")
	}
	if _, ok := idx.Duration(model.KindTask, ""); ok {
		t.Fatal("nameless row must not be indexed")
	}
}
