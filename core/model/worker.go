package model

// Worker represents one member of the available workforce.
type Worker struct {
	ID    string
	Name  string
	Level float64 // numeric qualification level
	Role  string  // role code
	Grade string  // qualification label
	Busy  string  // busy-time specification, "YYYYMMDD:startHour-endHour[,...]"
	Coords string // coordinates as "lat,lon"
}

// Location parses the worker coordinates. The second return value is false
// when the worker has no usable position.
func (w Worker) Location() (LatLon, bool) {
	return ParseLatLon(w.Coords)
}

// BusyIntervals parses the busy-time specification, skipping malformed slots.
func (w Worker) BusyIntervals() []Interval {
	return ParseBusy(w.Busy)
}
