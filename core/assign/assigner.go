// Package assign staffs a computed schedule: for every placed item it filters
// the worker pool by constraint satisfaction and availability, ranks the
// survivors by distance to the item's zone and commits the nearest ones.
package assign

import (
	"math"
	"sort"

	"github.com/ouestbat/chantier/core/constraint"
	"github.com/ouestbat/chantier/core/logger"
	"github.com/ouestbat/chantier/core/model"
	"github.com/ouestbat/chantier/core/plan"
)

// Assigner performs the staffing pass. It holds no per-run state; each
// Assign call owns its ledger.
type Assigner struct {
	log logger.Logger
}

// New creates an Assigner.
func New(log logger.Logger) *Assigner {
	return &Assigner{log: log}
}

type candidate struct {
	worker model.Worker
	dist   float64
}

// Assign walks the schedule in order and fills the Workers list of every
// item in place. Items that cannot be fully staffed keep a partial list and
// get a Shortfall warning. The returned ledger maps worker ids to the
// intervals committed during this run.
func (a *Assigner) Assign(schedule []plan.ScheduledItem, workers []model.Worker) Ledger {
	ledger := make(Ledger)
	for i := range schedule {
		a.staff(&schedule[i], workers, ledger)
	}
	return ledger
}

func (a *Assigner) staff(item *plan.ScheduledItem, workers []model.Worker, ledger Ledger) {
	slot := item.Interval()
	loc, hasLoc := item.Location()

	var cands []candidate
	for _, w := range workers {
		if !Satisfies(item.Predicates, w) {
			continue
		}
		if overlapsAny(w.BusyIntervals(), slot) || ledger.Overlaps(w.ID, slot) {
			continue
		}
		cands = append(cands, candidate{worker: w, dist: distanceTo(loc, hasLoc, w)})
	}
	// Stable sort keeps input order between equal distances.
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })

	take := item.Crew
	if take > len(cands) {
		take = len(cands)
	}
	for _, c := range cands[:take] {
		ledger.Commit(c.worker.ID, slot)
		item.Workers = append(item.Workers, c.worker.ID)
	}
	if len(item.Workers) < item.Crew {
		item.Shortfall = &plan.Shortfall{Required: item.Crew, Assigned: len(item.Workers)}
		a.log.Warnf("item %s under-staffed: %d of %d workers", item.Name, len(item.Workers), item.Crew)
	}
}

func distanceTo(loc model.LatLon, hasLoc bool, w model.Worker) float64 {
	wloc, ok := w.Location()
	if !hasLoc || !ok {
		// Unknown positions rank last.
		return math.Inf(1)
	}
	return loc.DistanceKm(wloc)
}

func overlapsAny(busy []model.Interval, slot model.Interval) bool {
	for _, iv := range busy {
		if iv.Overlaps(slot) {
			return true
		}
	}
	return false
}

// Satisfies reports whether the worker passes every predicate. Predicates on
// exempt or unmapped parameter ids are skipped.
func Satisfies(preds []constraint.Predicate, w model.Worker) bool {
	for _, p := range preds {
		if !satisfies(p, w) {
			return false
		}
	}
	return true
}

func satisfies(p constraint.Predicate, w model.Worker) bool {
	if _, ok := exemptParams[p.ID]; ok {
		return true
	}
	attr, ok := workerAttrs[p.ID]
	if !ok {
		// Not a worker attribute; nothing to check against.
		return true
	}
	str, num, hasNum := attr(w)
	if p.Required {
		return str != ""
	}
	if p.Exact != "" {
		return str == p.Exact
	}
	if p.Min != nil || p.Max != nil {
		if !hasNum {
			return false
		}
		if p.Min != nil && num < *p.Min {
			return false
		}
		if p.Max != nil && num > *p.Max {
			return false
		}
	}
	return true
}
