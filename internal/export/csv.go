// Package export writes a built track to the CSV and GeoJSON artifacts.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/planbiir/gprofile/internal/stats"
	"github.com/planbiir/gprofile/internal/track"
)

// CSVHeader is the first row of every profile CSV.
var CSVHeader = []string{"Distance_m", "Altitude_m", "Distance_km", "Altitude_ft"}

// WriteCSV writes one row per point in track order.
func WriteCSV(w io.Writer, tr track.Track) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for i := 0; i < tr.Len(); i++ {
		p := tr.At(i)
		row := []string{
			formatFloat(p.DistanceFromStart, 2),
			formatFloat(p.Altitude, 2),
			formatFloat(p.DistanceFromStart/1000.0, 3),
			formatFloat(p.Altitude*stats.FeetPerMeter, 2),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// SaveCSV writes the profile CSV to path.
func SaveCSV(path string, tr track.Track) error {
	return saveFile(path, func(w io.Writer) error {
		return WriteCSV(w, tr)
	})
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}

func saveFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
