// Package smooth removes barometric and GPS altitude noise before profiling.
package smooth

import (
	"math"
	"sort"

	"github.com/planbiir/gprofile/internal/track"
)

// Stats describes what a smoothing pass changed.
type Stats struct {
	Window        int     `json:"window"`
	Adjusted      int     `json:"adjusted_points"`
	MaxAdjustment float64 `json:"max_adjustment_m"`
}

// Elevation applies a sliding median filter of the given window to the
// track's altitudes and returns a new track. Positions, timestamps and order
// are unchanged. Windows below 3 or tracks under 3 points are returned as is.
// Even windows are widened by one.
func Elevation(tr track.Track, windowSize int) (track.Track, Stats) {
	stats := Stats{Window: windowSize}
	if tr.Len() < 3 || windowSize < 3 {
		return tr, stats
	}

	// Ensure window size is odd
	if windowSize%2 == 0 {
		windowSize++
	}
	stats.Window = windowSize
	half := windowSize / 2

	raw := tr.Raw()
	smoothed := make([]float64, len(raw))
	elevations := make([]float64, 0, windowSize)

	for i := range raw {
		elevations = elevations[:0]
		start := max(0, i-half)
		end := min(len(raw), i+half+1)

		for j := start; j < end; j++ {
			elevations = append(elevations, raw[j].Alt)
		}

		smoothed[i] = medianFloat(elevations)
	}

	for i := range raw {
		delta := math.Abs(smoothed[i] - raw[i].Alt)
		if delta > 0 {
			stats.Adjusted++
			stats.MaxAdjustment = max(stats.MaxAdjustment, delta)
		}
		raw[i].Alt = smoothed[i]
	}

	return track.Build(raw), stats
}

func medianFloat(values []float64) float64 {
	if len(values) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	if len(sorted)%2 == 0 {
		return (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	}
	return sorted[len(sorted)/2]
}
