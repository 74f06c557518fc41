package plan

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/ouestbat/chantier/core/calendar"
	"github.com/ouestbat/chantier/core/constraint"
	"github.com/ouestbat/chantier/core/duration"
	"github.com/ouestbat/chantier/core/logger"
	"github.com/ouestbat/chantier/core/model"
	"github.com/ouestbat/chantier/core/template"
)

// ErrNoStartDate signals that no active row carries a start date to seed the
// run. It is the only fatal condition of a planning pass.
var ErrNoStartDate = errors.New("no active work item carries a start date")

// Config defines the planning parameters of a run.
type Config struct {
	Hours           calendar.Hours `json:"hours"`
	DefaultDuration int            `json:"default_duration_minutes"`
	ShortItemMax    int            `json:"short_item_max_minutes"`
}

// SetDefaults applies the standard working day and thresholds.
func (c *Config) SetDefaults() {
	if c.Hours == (calendar.Hours{}) {
		c.Hours = calendar.DefaultHours
	}
	if c.DefaultDuration <= 0 {
		c.DefaultDuration = duration.DefaultMinutes
	}
	if c.ShortItemMax <= 0 {
		c.ShortItemMax = 240
	}
}

// Validate checks that the working day is coherent.
func (c Config) Validate() error {
	h := c.Hours
	if h.DayStart < 0 || h.DayEnd > 24 || h.DayStart >= h.DayEnd {
		return errors.New("working day bounds are inverted")
	}
	if h.LunchStart < h.DayStart || h.LunchStart+1 > h.DayEnd {
		return errors.New("lunch break falls outside the working day")
	}
	return nil
}

// ScheduledItem is one placed work item of the run output.
type ScheduledItem struct {
	ID         string
	Name       string
	Kind       model.Kind
	Duration   int // minutes
	Source     duration.Source
	Start      time.Time
	End        time.Time
	Params     string // merged constraint string
	Predicates []constraint.Predicate
	Crew       int // required worker count
	Zone       string
	Coords     string
	Workers    []string   // filled by the assigner, in commit order
	Shortfall  *Shortfall // set when the assigner could not staff the item
}

// Location parses the item's zone coordinates.
func (si ScheduledItem) Location() (model.LatLon, bool) {
	return model.ParseLatLon(si.Coords)
}

// Interval returns the occupied time span of the item.
func (si ScheduledItem) Interval() model.Interval {
	return model.Interval{Start: si.Start, End: si.End}
}

// Shortfall reports an under-staffed item. It is a warning, not an error.
type Shortfall struct {
	Required int
	Assigned int
}

// Scheduler performs the single forward placement pass over active work
// items. Items keep their input order; dependency resolution is an
// opportunistic lookup against already-placed items, not a graph build.
type Scheduler struct {
	cfg Config
	log logger.Logger
}

// New creates a Scheduler. The config is defaulted and must validate.
func New(cfg Config, log logger.Logger) (*Scheduler, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Scheduler{cfg: cfg, log: log}, nil
}

type nameKey struct {
	kind model.Kind
	name string
}

// runState carries the mutable per-run collections. It is created per Run
// call so concurrent runs stay independent.
type runState struct {
	global map[nameKey]time.Time
	zones  map[string]map[nameKey]time.Time
	cursor time.Time
	start  time.Time
}

// Run places every active item and returns the time-phased schedule. Worker
// assignment happens in a later pass; the Workers lists come back empty.
func (s *Scheduler) Run(items []model.WorkItem, idx *template.Index) ([]ScheduledItem, error) {
	seed, err := runSeed(items, s.cfg.Hours)
	if err != nil {
		return nil, err
	}
	st := &runState{
		global: make(map[nameKey]time.Time),
		zones:  make(map[string]map[nameKey]time.Time),
		cursor: seed,
		start:  seed,
	}

	var out []ScheduledItem
	for _, it := range items {
		if !it.Active() {
			continue
		}
		name := strings.TrimSpace(it.Name())
		if name == "" {
			continue
		}
		out = append(out, s.place(it, name, idx, st))
	}
	return out, nil
}

// runSeed returns the working-day start on the date of the first active item
// that carries a start date.
func runSeed(items []model.WorkItem, h calendar.Hours) (time.Time, error) {
	for _, it := range items {
		if it.Active() && !it.StartDate.IsZero() {
			return h.DayStartOn(it.StartDate), nil
		}
	}
	return time.Time{}, ErrNoStartDate
}

func (s *Scheduler) place(it model.WorkItem, name string, idx *template.Index, st *runState) ScheduledItem {
	h := s.cfg.Hours
	dur, src := duration.Resolve(it, idx, s.cfg.DefaultDuration)

	start := s.startFloor(it, st)
	if dur <= s.cfg.ShortItemMax && !calendar.FitsBeforeNextBreak(start, dur, h) {
		// Short items never span days; long ones may.
		start = h.NextDayStart(start)
	}
	end := calendar.Advance(start, dur, h)

	key := nameKey{kind: it.Kind(), name: name}
	st.global[key] = end
	if it.Zone != "" {
		zm := st.zones[it.Zone]
		if zm == nil {
			zm = make(map[nameKey]time.Time)
			st.zones[it.Zone] = zm
		}
		zm[key] = end
	} else {
		st.cursor = end
	}

	params := mergedParams(it, idx)
	s.log.Debugw("item placed", map[string]any{
		"item":  name,
		"zone":  it.Zone,
		"start": start,
		"end":   end,
		"src":   string(src),
	})
	return ScheduledItem{
		ID:         it.ID,
		Name:       name,
		Kind:       it.Kind(),
		Duration:   dur,
		Source:     src,
		Start:      start,
		End:        end,
		Params:     params,
		Predicates: constraint.Parse(params),
		Crew:       crewSize(it, idx),
		Zone:       it.Zone,
		Coords:     it.Coords,
	}
}

// startFloor resolves the earliest start of an item. A declared dependency
// wins when its completion is known, zone first then globally. Without one,
// zoned items start at the run seed while non-zoned items follow the global
// cursor.
func (s *Scheduler) startFloor(it model.WorkItem, st *runState) time.Time {
	if dep := strings.TrimSpace(it.DependsOn); dep != "" {
		key := nameKey{kind: it.Kind(), name: dep}
		if it.Zone != "" {
			if done, ok := st.zones[it.Zone][key]; ok {
				return done
			}
		}
		if done, ok := st.global[key]; ok {
			return done
		}
	}
	if it.Zone != "" {
		return st.start
	}
	return st.cursor
}

// crewSize resolves the required worker count: the row's own hint, then the
// template hint, then one.
func crewSize(it model.WorkItem, idx *template.Index) int {
	if n, err := strconv.Atoi(strings.TrimSpace(it.Crew)); err == nil && n > 0 {
		return n
	}
	if n, ok := idx.Crew(it.Kind(), it.Name()); ok {
		return n
	}
	return 1
}

// mergedParams combines the task-level and operation-level constraint
// strings for the item. Operation pairs replace colliding task pairs.
func mergedParams(it model.WorkItem, idx *template.Index) string {
	own := strings.TrimSpace(it.Params)
	if own == "" {
		if c, ok := idx.Constraint(it.Kind(), it.Name()); ok {
			own = c
		}
	}
	if it.Kind() == model.KindOperation {
		if taskC, ok := idx.Constraint(model.KindTask, it.Task); ok {
			return constraint.Merge(taskC, own)
		}
	}
	return constraint.Merge("", own)
}
