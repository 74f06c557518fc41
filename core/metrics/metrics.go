package metrics

import "time"

// RunRecord summarises one planning pass.
type RunRecord struct {
	RunID      string
	Items      int
	Shortfalls int
	Workers    int
	SpanStart  time.Time // earliest scheduled start
	SpanEnd    time.Time // latest scheduled end
	Elapsed    time.Duration
	Time       time.Time
}

// ItemRecord represents one placed and staffed work item.
type ItemRecord struct {
	RunID    string
	ItemID   string
	Name     string
	Kind     string
	Zone     string
	Source   string // duration provenance
	Duration int    // minutes
	Required int
	Assigned int
	Start    time.Time
	End      time.Time
}

// Sink records planning results for observability purposes.
type Sink interface {
	RecordRun(rec RunRecord) error
	RecordItems(recs []ItemRecord) error
}
