package constraint

import "testing"

func TestParse_ExactValue(t *testing.T) {
	preds := Parse("115:849(-)")
	if len(preds) != 1 {
		t.Fatalf("expected 1 predicate, got %d", len(preds))
	}
	p := preds[0]
	if p.ID != "115" || p.Exact != "849" || p.Required || p.Min != nil || p.Max != nil {
		t.Fatalf("unexpected predicate: %+v", p)
	}
}

func TestParse_Range(t *testing.T) {
	preds := Parse("2673:(4-10)")
	if len(preds) != 1 {
		t.Fatalf("expected 1 predicate, got %d", len(preds))
	}
	p := preds[0]
	if p.Min == nil || *p.Min != 4 || p.Max == nil || *p.Max != 10 {
		t.Fatalf("unexpected bounds: %+v", p)
	}
}

func TestParse_OpenBounds(t *testing.T) {
	lo := Parse("2673:(4-)")[0]
	if lo.Min == nil || *lo.Min != 4 || lo.Max != nil {
		t.Fatalf("lower-only bound: %+v", lo)
	}
	hi := Parse("2673:(-10)")[0]
	if hi.Min != nil || hi.Max == nil || *hi.Max != 10 {
		t.Fatalf("upper-only bound: %+v", hi)
	}
}

func TestParse_RequiredMarker(t *testing.T) {
	p := Parse("2680:%(-)")[0]
	if !p.Required || p.Exact != "" {
		t.Fatalf("expected required marker, got %+v", p)
	}
}

func TestParse_SkipsMalformed(t *testing.T) {
	preds := Parse("nocolon,115:849(-),:(4-),116:")
	if len(preds) != 1 || preds[0].ID != "115" {
		t.Fatalf("expected only the valid pair, got %+v", preds)
	}
}

func TestParse_Empty(t *testing.T) {
	if preds := Parse(""); preds != nil {
		t.Fatalf("expected nil, got %+v", preds)
	}
}

func TestParse_RoundTrip(t *testing.T) {
	raw := "115:849(-),2673:(4-),2680:%(-)"
	preds := Parse(raw)
	got := ""
	for i, p := range preds {
		if i > 0 {
			got += ","
		}
		got += p.String()
	}
	if got != raw {
		t.Fatalf("round trip changed the string: %q -> %q", raw, got)
	}
}

func TestMerge_OperationWinsOnCollision(t *testing.T) {
	got := Merge("115:849(-),2673:(4-)", "115:850(-)")
	want := "2673:(4-),115:850(-)"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestMerge_EmptySides(t *testing.T) {
	if got := Merge("115:849(-)", ""); got != "115:849(-)" {
		t.Fatalf("task-only merge: %q", got)
	}
	if got := Merge("", "115:850(-)"); got != "115:850(-)" {
		t.Fatalf("operation-only merge: %q", got)
	}
	if got := Merge("", ""); got != "" {
		t.Fatalf("empty merge: %q", got)
	}
}
