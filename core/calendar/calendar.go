package calendar

import "time"

// Hours defines the working day: work runs from DayStart to DayEnd with a one
// hour lunch break starting at LunchStart. All three are clock hours.
type Hours struct {
	DayStart   int `json:"day_start"`
	DayEnd     int `json:"day_end"`
	LunchStart int `json:"lunch_start"`
}

// DefaultHours is the working day used when the caller supplies none.
var DefaultHours = Hours{DayStart: 9, DayEnd: 18, LunchStart: 13}

// at returns the given clock hour on t's calendar day.
func (h Hours) at(t time.Time, hour int) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, t.Location())
}

// DayStartOn returns the start of the working day on t's calendar day.
func (h Hours) DayStartOn(t time.Time) time.Time {
	return h.at(t, h.DayStart)
}

// NextDayStart returns the start of the working day following t's calendar day.
func (h Hours) NextDayStart(t time.Time) time.Time {
	return h.at(t.AddDate(0, 0, 1), h.DayStart)
}

// clamp moves t forward to the nearest instant inside working time. It never
// moves backward.
func clamp(t time.Time, h Hours) time.Time {
	if t.Before(h.at(t, h.DayStart)) {
		return h.at(t, h.DayStart)
	}
	if !t.Before(h.at(t, h.DayEnd)) {
		return h.NextDayStart(t)
	}
	lunch := h.at(t, h.LunchStart)
	if !t.Before(lunch) && t.Before(lunch.Add(time.Hour)) {
		return lunch.Add(time.Hour)
	}
	return t
}

// Advance moves start forward by the given number of working minutes,
// skipping the lunch hour and non-working time. Advancing by zero minutes
// returns start unchanged. Sub-minute components of start are dropped so
// every segment is a whole number of minutes.
func Advance(start time.Time, minutes int, h Hours) time.Time {
	if minutes <= 0 {
		return start
	}
	t := start.Truncate(time.Minute)
	remaining := minutes
	for remaining > 0 {
		t = clamp(t, h)
		var segment int
		lunch := h.at(t, h.LunchStart)
		if t.Before(lunch) {
			segment = int(lunch.Sub(t) / time.Minute)
		} else {
			segment = int(h.at(t, h.DayEnd).Sub(t) / time.Minute)
		}
		step := remaining
		if segment < step {
			step = segment
		}
		t = t.Add(time.Duration(step) * time.Minute)
		remaining -= step
	}
	return t
}

// FitsBeforeNextBreak reports whether a duration started at start completes
// without crossing a day boundary. The lunch hour does not count as a break
// here; only running past DayEnd fails the check.
func FitsBeforeNextBreak(start time.Time, minutes int, h Hours) bool {
	t := clamp(start, h)
	if !sameDay(t, start) {
		// Already past the end of the day.
		return false
	}
	left := int(h.at(t, h.DayEnd).Sub(t) / time.Minute)
	if t.Before(h.at(t, h.LunchStart)) {
		left -= 60
	}
	return minutes <= left
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
