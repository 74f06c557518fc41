// Package constraint implements the compact parameter mini-language attached
// to tasks and operations. A constraint string is a comma-separated list of
// ID:SPEC pairs where SPEC is one of:
//
//	849(-)   exact value match
//	(4-10)   numeric range, either bound optional
//	%(-)     required / filled marker
//
// Malformed pairs are skipped, never reported as errors.
package constraint

import (
	"strconv"
	"strings"
)

// Predicate is one parsed ID:SPEC pair.
type Predicate struct {
	ID       string
	Raw      string // the SPEC part, unchanged
	Exact    string // exact value to match, empty when not an exact predicate
	Min      *float64
	Max      *float64
	Required bool
}

// String re-emits the predicate in the source grammar.
func (p Predicate) String() string {
	return p.ID + ":" + p.Raw
}

// Parse decodes a constraint string into predicates. Pairs without a colon
// are skipped.
func Parse(raw string) []Predicate {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []Predicate
	for _, pair := range strings.Split(raw, ",") {
		id, spec, ok := strings.Cut(strings.TrimSpace(pair), ":")
		if !ok {
			continue
		}
		id = strings.TrimSpace(id)
		spec = strings.TrimSpace(spec)
		if id == "" || spec == "" {
			continue
		}
		p := Predicate{ID: id, Raw: spec}
		switch {
		case spec == "%(-)":
			p.Required = true
		case strings.HasPrefix(spec, "(") && strings.HasSuffix(spec, ")"):
			inner := spec[1 : len(spec)-1]
			lo, hi, ok := strings.Cut(inner, "-")
			if !ok {
				continue
			}
			p.Min = parseBound(lo)
			p.Max = parseBound(hi)
		case strings.HasSuffix(spec, "(-)"):
			value := spec[:len(spec)-len("(-)")]
			if value == "" {
				continue
			}
			p.Exact = value
		default:
			continue
		}
		out = append(out, p)
	}
	return out
}

func parseBound(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// Merge combines a task-level and an operation-level constraint string.
// Operation pairs win on id collision; surviving task pairs come first,
// followed by all operation pairs, rejoined in the source grammar.
func Merge(taskRaw, opRaw string) string {
	taskPreds := Parse(taskRaw)
	opPreds := Parse(opRaw)
	if len(opPreds) == 0 {
		return join(taskPreds)
	}
	override := make(map[string]struct{}, len(opPreds))
	for _, p := range opPreds {
		override[p.ID] = struct{}{}
	}
	var merged []Predicate
	for _, p := range taskPreds {
		if _, ok := override[p.ID]; ok {
			continue
		}
		merged = append(merged, p)
	}
	merged = append(merged, opPreds...)
	return join(merged)
}

func join(preds []Predicate) string {
	parts := make([]string, len(preds))
	for i, p := range preds {
		parts[i] = p.String()
	}
	return strings.Join(parts, ",")
}
