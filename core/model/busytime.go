package model

import (
	"strconv"
	"strings"
	"time"
)

// Interval is a half-open [Start, End) span of wall-clock time.
type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether the two intervals share any instant.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// ParseBusy decodes a compact busy-time list of the form
// "YYYYMMDD:startHour-endHour[,...]". Malformed slots are skipped.
func ParseBusy(raw string) []Interval {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	var out []Interval
	for _, slot := range strings.Split(raw, ",") {
		iv, ok := parseBusySlot(strings.TrimSpace(slot))
		if !ok {
			continue
		}
		out = append(out, iv)
	}
	return out
}

func parseBusySlot(slot string) (Interval, bool) {
	day, hours, ok := strings.Cut(slot, ":")
	if !ok {
		return Interval{}, false
	}
	date, err := time.Parse("20060102", day)
	if err != nil {
		return Interval{}, false
	}
	from, to, ok := strings.Cut(hours, "-")
	if !ok {
		return Interval{}, false
	}
	start, err := strconv.Atoi(from)
	if err != nil {
		return Interval{}, false
	}
	end, err := strconv.Atoi(to)
	if err != nil {
		return Interval{}, false
	}
	if start < 0 || start > 24 || end < 0 || end > 24 || end <= start {
		return Interval{}, false
	}
	return Interval{
		Start: date.Add(time.Duration(start) * time.Hour),
		End:   date.Add(time.Duration(end) * time.Hour),
	}, true
}
