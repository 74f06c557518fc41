package model

import (
	"strconv"
	"strings"
	"time"
)

// Kind discriminates task rows from operation rows in the flat work item feed.
type Kind string

const (
	KindTask      Kind = "task"
	KindOperation Kind = "operation"
)

// StatusActive marks the rows that are scheduled. The comparison is
// string-exact; any other status makes the row a template source.
const StatusActive = "active"

// WorkItem is one row of the flat planning feed. A row is a task when it
// carries no operation name, otherwise it is an operation of its owning task.
type WorkItem struct {
	ID        string
	Task      string // owning task name
	Operation string // operation name, empty on task rows
	Status    string
	StartDate time.Time // planned start date, zero when the row carries none
	Quantity  string    // raw quantity, parsed on demand
	Duration  int       // existing duration in minutes, 0 when unset
	DependsOn string    // name of the task/operation that must finish first
	Zone      string    // grip identifier
	Coords    string    // zone coordinates as "lat,lon"
	Params    string    // raw parameter constraint string
	Crew      string    // raw required worker count hint
}

// Kind reports whether the row is a task or an operation.
func (it WorkItem) Kind() Kind {
	if strings.TrimSpace(it.Operation) == "" {
		return KindTask
	}
	return KindOperation
}

// Name returns the display name of the row: the operation name for operation
// rows, the task name otherwise.
func (it WorkItem) Name() string {
	if it.Kind() == KindOperation {
		return it.Operation
	}
	return it.Task
}

// Active reports whether the row is scheduled in a run.
func (it WorkItem) Active() bool {
	return it.Status == StatusActive
}

// QuantityValue parses the raw quantity. Absent, zero or unparseable
// quantities count as one unit.
func (it WorkItem) QuantityValue() int {
	q, err := strconv.Atoi(strings.TrimSpace(it.Quantity))
	if err != nil || q <= 0 {
		return 1
	}
	return q
}
