package assign

import "github.com/ouestbat/chantier/core/model"

// Ledger records the intervals already committed to each worker during one
// staffing pass. It is run-scoped and single-writer: the assigner consults
// and mutates it strictly in schedule order.
type Ledger map[string][]model.Interval

// Commit appends an interval to the worker's record.
func (l Ledger) Commit(workerID string, iv model.Interval) {
	l[workerID] = append(l[workerID], iv)
}

// Overlaps reports whether the worker already holds a commitment crossing iv.
func (l Ledger) Overlaps(workerID string, iv model.Interval) bool {
	for _, held := range l[workerID] {
		if held.Overlaps(iv) {
			return true
		}
	}
	return false
}

// CommittedMinutes returns the total committed time of a worker.
func (l Ledger) CommittedMinutes(workerID string) int {
	total := 0
	for _, iv := range l[workerID] {
		total += int(iv.End.Sub(iv.Start).Minutes())
	}
	return total
}
