package stats

import (
	"time"

	"github.com/paulmach/orb"

	"github.com/planbiir/gprofile/internal/track"
)

// Unit conversions used in reports.
const (
	FeetPerMeter  = 3.28084
	MetersPerMile = 1609.34
)

// Stats summarizes a built track.
type Stats struct {
	Count         int           `json:"count"`
	TotalDistance float64       `json:"total_distance_m"`
	MinAltitude   float64       `json:"min_altitude_m"`
	MaxAltitude   float64       `json:"max_altitude_m"`
	Duration      time.Duration `json:"duration_ns,omitempty"`
	Bounds        orb.Bound     `json:"bounds"`
}

// ElevationRange is the difference between the highest and lowest altitude.
func (s Stats) ElevationRange() float64 {
	return s.MaxAltitude - s.MinAltitude
}

// Summarize computes aggregate values for the track. On an empty track it
// returns a zero Stats; check Count before interpreting the altitudes.
func Summarize(tr track.Track) Stats {
	if tr.Empty() {
		return Stats{}
	}

	lo, hi := tr.AltitudeRange()
	s := Stats{
		Count:         tr.Len(),
		TotalDistance: tr.TotalDistance(),
		MinAltitude:   lo,
		MaxAltitude:   hi,
	}

	first, last := tr.First(), tr.Last()
	if first.HasTime() && last.HasTime() {
		s.Duration = last.Time.Sub(first.Time)
	}

	line := make(orb.LineString, tr.Len())
	for i := 0; i < tr.Len(); i++ {
		p := tr.At(i)
		line[i] = orb.Point{p.Lon, p.Lat}
	}
	s.Bounds = line.Bound()

	return s
}
