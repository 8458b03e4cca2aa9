package track

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equatorPoints() []RawPoint {
	return []RawPoint{
		{Lat: 0, Lon: 0, Alt: 100},
		{Lat: 0, Lon: 0.01, Alt: 150},
		{Lat: 0, Lon: 0.02, Alt: 120},
	}
}

func TestHaversine(t *testing.T) {
	tests := []struct {
		name string
		lat1 float64
		lon1 float64
		lat2 float64
		lon2 float64
		want float64
		tol  float64
	}{
		{name: "same point", lat1: 46, lon1: 7, lat2: 46, lon2: 7, want: 0, tol: 0},
		{name: "0.1 degree north", lat1: 46.0, lon1: 7.0, lat2: 46.1, lon2: 7.0, want: 11119.5, tol: 1},
		{name: "equator 1 degree", lat1: 0, lon1: 0, lat2: 0, lon2: 1, want: 111194.9, tol: 1},
		{name: "London to Paris", lat1: 51.5074, lon1: -0.1278, lat2: 48.8566, lon2: 2.3522, want: 343500, tol: 1500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Haversine(tt.lat1, tt.lon1, tt.lat2, tt.lon2)
			assert.InDelta(t, tt.want, got, tt.tol)
		})
	}
}

func TestHaversineSymmetric(t *testing.T) {
	pairs := [][4]float64{
		{46.0, 7.0, 46.001, 7.001},
		{-33.86, 151.21, 51.5, -0.12},
		{0, 179.9, 0, -179.9},
	}
	for _, p := range pairs {
		ab := Haversine(p[0], p[1], p[2], p[3])
		ba := Haversine(p[2], p[3], p[0], p[1])
		assert.InDelta(t, ab, ba, 1e-6)
		assert.Zero(t, Haversine(p[0], p[1], p[0], p[1]))
	}
}

func TestBuildEmpty(t *testing.T) {
	tr := Build(nil)
	assert.True(t, tr.Empty())
	assert.Equal(t, 0, tr.Len())
	assert.Zero(t, tr.TotalDistance())
	assert.False(t, tr.HasTimestamps())
}

func TestBuildSinglePoint(t *testing.T) {
	tr := Build([]RawPoint{{Lat: 46, Lon: 7, Alt: 1000}})
	require.Equal(t, 1, tr.Len())
	assert.Zero(t, tr.At(0).DistanceFromPrevious)
	assert.Zero(t, tr.At(0).DistanceFromStart)
	assert.Zero(t, tr.TotalDistance())
}

func TestBuildEquatorScenario(t *testing.T) {
	tr := Build(equatorPoints())
	require.Equal(t, 3, tr.Len())

	segment := EarthRadius * 0.01 * math.Pi / 180

	assert.Zero(t, tr.At(0).DistanceFromPrevious)
	assert.Zero(t, tr.At(0).DistanceFromStart)
	assert.InDelta(t, segment, tr.At(1).DistanceFromPrevious, 1e-6)
	assert.InDelta(t, segment, tr.At(2).DistanceFromPrevious, 1e-6)
	assert.InDelta(t, 2*segment, tr.TotalDistance(), 1e-6)

	// Spherical approximation lands within a couple of meters of the
	// ellipsoidal ~1113.2 m figure.
	assert.InDelta(t, 1113.2, tr.At(1).DistanceFromPrevious, 2)
	assert.InDelta(t, 2226.4, tr.TotalDistance(), 4)

	lo, hi := tr.AltitudeRange()
	assert.Equal(t, 100.0, lo)
	assert.Equal(t, 150.0, hi)
}

func TestBuildCumulativeInvariant(t *testing.T) {
	raw := make([]RawPoint, 200)
	for i := range raw {
		raw[i] = RawPoint{
			Lat: 46.0 + float64(i)*0.0001,
			Lon: 7.0 + math.Sin(float64(i)/10)*0.001,
			Alt: 1000 + float64(i%17),
		}
	}

	tr := Build(raw)
	require.Equal(t, len(raw), tr.Len())
	assert.Zero(t, tr.At(0).DistanceFromStart)
	assert.Zero(t, tr.At(0).DistanceFromPrevious)

	for i := 1; i < tr.Len(); i++ {
		prev, cur := tr.At(i-1), tr.At(i)
		assert.GreaterOrEqual(t, cur.DistanceFromStart, prev.DistanceFromStart)
		assert.InDelta(t, prev.DistanceFromStart+cur.DistanceFromPrevious, cur.DistanceFromStart, 1e-9)
	}
}

func TestBuildKeepsOrderWithoutTimestamps(t *testing.T) {
	raw := []RawPoint{
		{Lat: 46.002, Lon: 7.0, Alt: 3},
		{Lat: 46.000, Lon: 7.0, Alt: 1},
		{Lat: 46.001, Lon: 7.0, Alt: 2},
	}

	tr := Build(raw)
	require.Equal(t, 3, tr.Len())
	for i, p := range tr.Points() {
		assert.Equal(t, raw[i].Lat, p.Lat)
		assert.Equal(t, raw[i].Alt, p.Altitude)
	}
}

func TestBuildSortsWhenAllTimestamped(t *testing.T) {
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	raw := []RawPoint{
		{Lat: 46.002, Lon: 7.0, Alt: 3, Time: base.Add(2 * time.Minute)},
		{Lat: 46.000, Lon: 7.0, Alt: 1, Time: base},
		{Lat: 46.001, Lon: 7.0, Alt: 2, Time: base.Add(time.Minute)},
		{Lat: 46.003, Lon: 7.0, Alt: 4, Time: base.Add(time.Minute)},
	}

	tr := Build(raw)
	require.Equal(t, 4, tr.Len())
	for i := 1; i < tr.Len(); i++ {
		assert.False(t, tr.At(i).Time.Before(tr.At(i-1).Time))
	}

	// Equal timestamps keep input order.
	assert.Equal(t, 2.0, tr.At(1).Altitude)
	assert.Equal(t, 4.0, tr.At(2).Altitude)
	assert.Equal(t, 3.0, tr.At(3).Altitude)
}

func TestBuildPartialTimestampsKeepsInputOrder(t *testing.T) {
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	raw := []RawPoint{
		{Lat: 46.002, Lon: 7.0, Alt: 3, Time: base.Add(2 * time.Minute)},
		{Lat: 46.000, Lon: 7.0, Alt: 1},
		{Lat: 46.001, Lon: 7.0, Alt: 2, Time: base},
	}

	tr := Build(raw)
	require.Equal(t, 3, tr.Len())
	assert.Equal(t, 3.0, tr.At(0).Altitude)
	assert.Equal(t, 1.0, tr.At(1).Altitude)
	assert.Equal(t, 2.0, tr.At(2).Altitude)
	assert.True(t, tr.HasTimestamps())
}

func TestBuildDoesNotModifyInput(t *testing.T) {
	base := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	raw := []RawPoint{
		{Lat: 1, Time: base.Add(time.Minute)},
		{Lat: 2, Time: base},
	}

	_ = Build(raw)
	assert.Equal(t, 1.0, raw[0].Lat)
	assert.Equal(t, 2.0, raw[1].Lat)
}

func TestTrackPointsIsCopy(t *testing.T) {
	tr := Build(equatorPoints())
	pts := tr.Points()
	pts[0].Altitude = -1
	assert.Equal(t, 100.0, tr.At(0).Altitude)
}

func TestTrackRawRoundTrip(t *testing.T) {
	tr := Build(equatorPoints())
	again := Build(tr.Raw())
	assert.Equal(t, tr.Points(), again.Points())
}
