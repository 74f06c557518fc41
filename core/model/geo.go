package model

import (
	"math"
	"strconv"
	"strings"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371

// LatLon is a geographic position in decimal degrees.
type LatLon struct {
	Lat float64
	Lon float64
}

// ParseLatLon decodes a "lat,lon" pair. It returns false for empty or
// malformed input instead of an error; callers treat such positions as
// unknown.
func ParseLatLon(raw string) (LatLon, bool) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != 2 {
		return LatLon{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return LatLon{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return LatLon{}, false
	}
	return LatLon{Lat: lat, Lon: lon}, true
}

// DistanceKm returns the Haversine great-circle distance to q in kilometres.
func (p LatLon) DistanceKm(q LatLon) float64 {
	lat1 := p.Lat * math.Pi / 180
	lat2 := q.Lat * math.Pi / 180
	dLat := (q.Lat - p.Lat) * math.Pi / 180
	dLon := (q.Lon - p.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}
