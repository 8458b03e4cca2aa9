package gpx

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseReader(t *testing.T) {
	gpxContent := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
	<trk>
		<name>Test Track</name>
		<trkseg>
			<trkpt lat="46.0" lon="7.0">
				<ele>1000</ele>
				<time>2025-01-01T10:00:00Z</time>
			</trkpt>
			<trkpt lat="46.001" lon="7.001">
				<ele>1005</ele>
				<time>2025-01-01T10:00:01Z</time>
			</trkpt>
		</trkseg>
	</trk>
</gpx>`

	file, err := ParseReader(strings.NewReader(gpxContent))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if file.Name != "Test Track" {
		t.Errorf("Expected name 'Test Track', got '%s'", file.Name)
	}

	if file.Tracks != 1 || file.Segments != 1 {
		t.Errorf("Expected 1 track and 1 segment, got %d and %d", file.Tracks, file.Segments)
	}

	if len(file.Points) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(file.Points))
	}

	// Check first point
	point := file.Points[0]
	if point.Lat != 46.0 || point.Lon != 7.0 {
		t.Errorf("Expected lat=46.0, lon=7.0, got lat=%f, lon=%f", point.Lat, point.Lon)
	}

	if point.Alt != 1000.0 {
		t.Errorf("Expected elevation=1000.0, got %f", point.Alt)
	}

	want := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	if !point.Time.Equal(want) {
		t.Errorf("Expected time %v, got %v", want, point.Time)
	}
}

func TestParseMultipleSegments(t *testing.T) {
	gpxContent := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
	<trk>
		<trkseg>
			<trkpt lat="46.0" lon="7.0"><ele>1000</ele></trkpt>
			<trkpt lat="46.001" lon="7.001"><ele>1001</ele></trkpt>
		</trkseg>
		<trkseg>
			<trkpt lat="46.002" lon="7.002"><ele>1002</ele></trkpt>
		</trkseg>
	</trk>
	<trk>
		<name>Second</name>
		<trkseg>
			<trkpt lat="46.003" lon="7.003"><ele>1003</ele></trkpt>
		</trkseg>
	</trk>
</gpx>`

	file, err := ParseReader(strings.NewReader(gpxContent))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if len(file.Points) != 4 {
		t.Fatalf("Expected 4 flattened points, got %d", len(file.Points))
	}

	// Document order is kept across segments and tracks
	for i, p := range file.Points {
		want := 1000.0 + float64(i)
		if p.Alt != want {
			t.Errorf("Point %d: expected elevation %f, got %f", i, want, p.Alt)
		}
	}

	if file.Segments != 3 {
		t.Errorf("Expected 3 segments, got %d", file.Segments)
	}

	if file.Name != "Second" {
		t.Errorf("Expected first named track 'Second', got '%s'", file.Name)
	}
}

func TestParseMissingFields(t *testing.T) {
	gpxContent := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
	<trk>
		<trkseg>
			<trkpt lat="46.0" lon="7.0"></trkpt>
			<trkpt lat="46.001" lon="7.001"><ele>1005</ele></trkpt>
		</trkseg>
	</trk>
</gpx>`

	file, err := ParseReader(strings.NewReader(gpxContent))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if file.MissingElevation != 1 {
		t.Errorf("Expected 1 point without elevation, got %d", file.MissingElevation)
	}

	if file.Points[0].Alt != 0 {
		t.Errorf("Expected missing elevation to read as 0, got %f", file.Points[0].Alt)
	}

	if file.Points[0].HasTime() || file.Points[1].HasTime() {
		t.Errorf("Expected points without timestamps")
	}
}

func TestParseRouteFallback(t *testing.T) {
	gpxContent := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
	<rte>
		<name>Planned</name>
		<rtept lat="46.0" lon="7.0"><ele>500</ele></rtept>
		<rtept lat="46.01" lon="7.0"><ele>550</ele></rtept>
	</rte>
</gpx>`

	file, err := ParseReader(strings.NewReader(gpxContent))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if !file.FromRoutes {
		t.Errorf("Expected route points to be used")
	}

	if len(file.Points) != 2 || file.Name != "Planned" {
		t.Errorf("Expected 2 points named 'Planned', got %d named '%s'", len(file.Points), file.Name)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	gpxContent := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1"></gpx>`

	file, err := ParseReader(strings.NewReader(gpxContent))
	if err != nil {
		t.Fatalf("ParseReader failed: %v", err)
	}

	if len(file.Points) != 0 {
		t.Errorf("Expected no points, got %d", len(file.Points))
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := ParseReader(strings.NewReader("this is not xml"))
	if err == nil {
		t.Fatal("Expected error for invalid GPX")
	}

	if !strings.Contains(err.Error(), "failed to parse GPX") {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ride.gpx")
	content := `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
	<trk><trkseg>
		<trkpt lat="46.0" lon="7.0"><ele>1000</ele></trkpt>
	</trkseg></trk>
</gpx>`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	file, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if len(file.Points) != 1 {
		t.Errorf("Expected 1 point, got %d", len(file.Points))
	}

	if _, err := Parse(filepath.Join(t.TempDir(), "missing.gpx")); err == nil {
		t.Error("Expected error for missing file")
	}
}
