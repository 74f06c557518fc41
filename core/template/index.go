package template

import (
	"strconv"
	"strings"

	"github.com/ouestbat/chantier/core/model"
)

// Index holds the reusable values extracted from template rows: normative
// durations, crew-size hints and parameter constraints, keyed by task or
// operation name. It is read-only after construction.
type Index struct {
	durations   map[key]int
	crews       map[key]int
	constraints map[key]string
}

type key struct {
	kind model.Kind
	name string
}

// Build scans the full work item collection and indexes every non-active row.
// The first value seen for a name wins; later rows never overwrite it.
func Build(items []model.WorkItem) *Index {
	idx := &Index{
		durations:   make(map[key]int),
		crews:       make(map[key]int),
		constraints: make(map[key]string),
	}
	for _, it := range items {
		if it.Active() {
			continue
		}
		name := strings.TrimSpace(it.Name())
		if name == "" {
			continue
		}
		k := key{kind: it.Kind(), name: name}
		if it.Duration > 0 {
			if _, ok := idx.durations[k]; !ok {
				idx.durations[k] = it.Duration
			}
		}
		if crew, err := strconv.Atoi(strings.TrimSpace(it.Crew)); err == nil && crew > 0 {
			if _, ok := idx.crews[k]; !ok {
				idx.crews[k] = crew
			}
		}
		if c := strings.TrimSpace(it.Params); c != "" {
			if _, ok := idx.constraints[k]; !ok {
				idx.constraints[k] = c
			}
		}
	}
	return idx
}

// Duration returns the normative per-unit duration for the given name.
func (idx *Index) Duration(kind model.Kind, name string) (int, bool) {
	d, ok := idx.durations[key{kind: kind, name: name}]
	return d, ok
}

// Crew returns the crew-size hint for the given name.
func (idx *Index) Crew(kind model.Kind, name string) (int, bool) {
	c, ok := idx.crews[key{kind: kind, name: name}]
	return c, ok
}

// Constraint returns the raw parameter constraint string for the given name.
func (idx *Index) Constraint(kind model.Kind, name string) (string, bool) {
	c, ok := idx.constraints[key{kind: kind, name: name}]
	return c, ok
}
