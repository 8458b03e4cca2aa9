package export

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/planbiir/gprofile/internal/stats"
	"github.com/planbiir/gprofile/internal/track"
)

// FeatureCollection builds the GeoJSON form of a track: a LineString of the
// whole track followed by "start" and "end" Point features. The line is
// omitted for tracks with fewer than two points; an empty track yields an
// empty collection.
func FeatureCollection(tr track.Track, name string) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	if tr.Empty() {
		return fc
	}

	s := stats.Summarize(tr)

	if tr.Len() >= 2 {
		line := make(orb.LineString, tr.Len())
		altitudes := make([]float64, tr.Len())
		distances := make([]float64, tr.Len())
		for i := 0; i < tr.Len(); i++ {
			p := tr.At(i)
			line[i] = orb.Point{p.Lon, p.Lat}
			altitudes[i] = p.Altitude
			distances[i] = p.DistanceFromStart
		}

		f := geojson.NewFeature(line)
		f.BBox = geojson.NewBBox(s.Bounds)
		f.Properties["name"] = name
		f.Properties["points"] = s.Count
		f.Properties["total_distance_m"] = s.TotalDistance
		f.Properties["min_altitude_m"] = s.MinAltitude
		f.Properties["max_altitude_m"] = s.MaxAltitude
		f.Properties["altitudes_m"] = altitudes
		f.Properties["distances_m"] = distances
		if s.Duration > 0 {
			f.Properties["duration_s"] = s.Duration.Seconds()
		}
		fc.Append(f)
	}

	fc.Append(endpointFeature(tr.First(), "start"))
	fc.Append(endpointFeature(tr.Last(), "end"))
	return fc
}

func endpointFeature(p track.GeoPoint, role string) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{p.Lon, p.Lat})
	f.Properties["role"] = role
	f.Properties["altitude_m"] = p.Altitude
	f.Properties["distance_m"] = p.DistanceFromStart
	if p.HasTime() {
		f.Properties["time"] = p.Time.UTC().Format(time.RFC3339)
	}
	return f
}

// WriteGeoJSON writes the indented feature collection of tr to w.
func WriteGeoJSON(w io.Writer, tr track.Track, name string) error {
	data, err := json.MarshalIndent(FeatureCollection(tr, name), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal GeoJSON: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}

// SaveGeoJSON writes the feature collection of tr to path.
func SaveGeoJSON(path string, tr track.Track, name string) error {
	return saveFile(path, func(w io.Writer) error {
		return WriteGeoJSON(w, tr, name)
	})
}
