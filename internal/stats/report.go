package stats

import (
	"fmt"
	"io"

	"github.com/planbiir/gprofile/internal/track"
)

// FormatDistance renders a distance with a primary and secondary unit:
// meters (feet) below one kilometer, kilometers (miles) above.
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.2f m (%.2f ft)", meters, meters*FeetPerMeter)
	}
	return fmt.Sprintf("%.2f km (%.2f miles)", meters/1000.0, meters/MetersPerMile)
}

// FormatAltitude renders an altitude in meters and feet.
func FormatAltitude(meters float64) string {
	return fmt.Sprintf("%.2f m (%.2f ft)", meters, meters*FeetPerMeter)
}

// WriteReport writes the human-readable statistics block.
func WriteReport(w io.Writer, s Stats) error {
	if s.Count == 0 {
		_, err := fmt.Fprintln(w, "No track points found.")
		return err
	}

	lines := []string{
		"=== Track Statistics ===",
		fmt.Sprintf("Total Points: %d", s.Count),
		"Total Distance: " + FormatDistance(s.TotalDistance),
		"Min Altitude: " + FormatAltitude(s.MinAltitude),
		"Max Altitude: " + FormatAltitude(s.MaxAltitude),
		"Elevation Range: " + FormatAltitude(s.ElevationRange()),
	}
	if s.Duration > 0 {
		lines = append(lines, fmt.Sprintf("Duration: %v", s.Duration))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// SampleIndices returns the indices printed in the sample table: every
// max(1, n/10)-th point.
func SampleIndices(n int) []int {
	step := max(1, n/10)
	var idx []int
	for i := 0; i < n; i += step {
		idx = append(idx, i)
	}
	return idx
}

// WriteSamples prints a short table of evenly spaced points.
func WriteSamples(w io.Writer, tr track.Track) error {
	header := "=== Sample Data Points ===\n" +
		"Distance (km) | Altitude (m) | Segment Distance (m)\n" +
		"---------------------------------------------------\n"
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}

	for _, i := range SampleIndices(tr.Len()) {
		p := tr.At(i)
		if _, err := fmt.Fprintf(w, "%12.3f | %12.2f | %20.2f\n",
			p.DistanceFromStart/1000.0, p.Altitude, p.DistanceFromPrevious); err != nil {
			return err
		}
	}
	return nil
}
