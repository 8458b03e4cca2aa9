package track

import (
	"math"
	"sort"
)

// EarthRadius is the mean earth radius in meters used for all distances.
const EarthRadius = 6371000

// Haversine returns the great-circle distance in meters between two
// lat/lon pairs given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	if lat1 == lat2 && lon1 == lon2 {
		return 0
	}

	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLatRad := (lat2 - lat1) * math.Pi / 180
	deltaLonRad := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLatRad/2)*math.Sin(deltaLatRad/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLonRad/2)*math.Sin(deltaLonRad/2)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadius * c
}

// Build orders the raw samples and annotates them with point-to-point and
// cumulative distances.
//
// Samples are sorted chronologically only when every one of them has a
// timestamp; otherwise the input order is kept as is. The sort is stable, so
// equal timestamps keep their input order. The input slice is not modified.
func Build(raw []RawPoint) Track {
	if len(raw) == 0 {
		return Track{}
	}

	ordered := make([]RawPoint, len(raw))
	copy(ordered, raw)

	if allTimestamped(ordered) {
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].Time.Before(ordered[j].Time)
		})
	}

	points := make([]GeoPoint, len(ordered))
	cumulative := 0.0
	for i, rp := range ordered {
		gp := GeoPoint{
			Lat:      rp.Lat,
			Lon:      rp.Lon,
			Altitude: rp.Alt,
			Time:     rp.Time,
		}
		if i > 0 {
			prev := ordered[i-1]
			gp.DistanceFromPrevious = Haversine(prev.Lat, prev.Lon, rp.Lat, rp.Lon)
			cumulative += gp.DistanceFromPrevious
		}
		gp.DistanceFromStart = cumulative
		points[i] = gp
	}

	return Track{points: points}
}

func allTimestamped(points []RawPoint) bool {
	for _, p := range points {
		if !p.HasTime() {
			return false
		}
	}
	return true
}
