package track

import (
	"time"
)

// RawPoint is a sample as delivered by an ingestion source, before ordering
// and distance accumulation.
type RawPoint struct {
	Lat  float64
	Lon  float64
	Alt  float64
	Time time.Time // zero when the source had no timestamp
}

// HasTime reports whether the sample carries a timestamp.
func (p RawPoint) HasTime() bool {
	return !p.Time.IsZero()
}

// GeoPoint is one sample of a built track.
type GeoPoint struct {
	Lat      float64
	Lon      float64
	Altitude float64   // meters
	Time     time.Time // zero when absent

	DistanceFromPrevious float64 // meters, 0 for the first point
	DistanceFromStart    float64 // meters, cumulative
}

// HasTime reports whether the point carries a timestamp.
func (p GeoPoint) HasTime() bool {
	return !p.Time.IsZero()
}

// Track is an ordered, distance-annotated sequence of points.
// It is immutable once built and can be shared between goroutines.
type Track struct {
	points []GeoPoint
}

// Len returns the number of points.
func (t Track) Len() int {
	return len(t.points)
}

// Empty reports whether the track has no points.
func (t Track) Empty() bool {
	return len(t.points) == 0
}

// At returns the i-th point.
func (t Track) At(i int) GeoPoint {
	return t.points[i]
}

// Points returns a copy of the points in track order.
func (t Track) Points() []GeoPoint {
	out := make([]GeoPoint, len(t.points))
	copy(out, t.points)
	return out
}

// First returns the first point. It panics on an empty track.
func (t Track) First() GeoPoint {
	return t.points[0]
}

// Last returns the last point. It panics on an empty track.
func (t Track) Last() GeoPoint {
	return t.points[len(t.points)-1]
}

// TotalDistance is the cumulative distance of the last point, in meters.
func (t Track) TotalDistance() float64 {
	if len(t.points) < 2 {
		return 0
	}
	return t.points[len(t.points)-1].DistanceFromStart
}

// HasTimestamps reports whether at least one point carries a timestamp.
func (t Track) HasTimestamps() bool {
	for _, p := range t.points {
		if p.HasTime() {
			return true
		}
	}
	return false
}

// AltitudeRange returns the minimum and maximum altitude. Both are 0 on an
// empty track; callers are expected to check Empty first.
func (t Track) AltitudeRange() (lo, hi float64) {
	if len(t.points) == 0 {
		return 0, 0
	}
	lo, hi = t.points[0].Altitude, t.points[0].Altitude
	for _, p := range t.points[1:] {
		lo = min(lo, p.Altitude)
		hi = max(hi, p.Altitude)
	}
	return lo, hi
}

// Raw converts the track back into raw samples in track order.
func (t Track) Raw() []RawPoint {
	out := make([]RawPoint, len(t.points))
	for i, p := range t.points {
		out[i] = RawPoint{Lat: p.Lat, Lon: p.Lon, Alt: p.Altitude, Time: p.Time}
	}
	return out
}
