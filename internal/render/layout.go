package render

import (
	"github.com/planbiir/gprofile/internal/track"
)

// Chart geometry.
const (
	Margin            = 60
	altitudeDivisions = 8
	distanceDivisions = 10
	maxAnnotations    = 15
	altitudePadding   = 0.1 // fraction of the altitude range added on each side

	labelOffset  = 10
	labelPadding = 2
)

// linearScale maps a data interval onto a pixel interval. A zero-width data
// interval maps every value to the start of the pixel interval.
type linearScale struct {
	dmin, dmax float64
	pmin, pmax float64
}

func (s linearScale) Map(v float64) float64 {
	if s.dmax == s.dmin {
		return s.pmin
	}
	return s.pmin + (v-s.dmin)/(s.dmax-s.dmin)*(s.pmax-s.pmin)
}

type distanceUnit struct {
	divisor    float64
	tickFormat string
	axisTitle  string
}

var (
	unitMeters     = distanceUnit{divisor: 1, tickFormat: "%.0f m", axisTitle: "Distance (meters)"}
	unitKilometers = distanceUnit{divisor: 1000, tickFormat: "%.1f km", axisTitle: "Distance (kilometers)"}
)

// unitFor picks meters for tracks shorter than a kilometer.
func unitFor(total float64) distanceUnit {
	if total < 1000 {
		return unitMeters
	}
	return unitKilometers
}

// layout holds everything derived from the track and canvas size that the
// drawing passes share.
type layout struct {
	width, height float64

	minDist, maxDist float64
	minAlt, maxAlt   float64

	x, y linearScale
	unit distanceUnit
}

func newLayout(tr track.Track, width, height float64) layout {
	lo, hi := tr.AltitudeRange()
	pad := (hi - lo) * altitudePadding

	l := layout{
		width:   width,
		height:  height,
		minDist: 0,
		maxDist: tr.TotalDistance(),
		minAlt:  lo - pad,
		maxAlt:  hi + pad,
		unit:    unitFor(tr.TotalDistance()),
	}
	l.x = linearScale{dmin: l.minDist, dmax: l.maxDist, pmin: Margin, pmax: width - Margin}
	l.y = linearScale{dmin: l.minAlt, dmax: l.maxAlt, pmin: height - Margin, pmax: Margin}
	return l
}

func (l layout) left() float64   { return Margin }
func (l layout) right() float64  { return l.width - Margin }
func (l layout) top() float64    { return Margin }
func (l layout) bottom() float64 { return l.height - Margin }

func (l layout) project(p track.GeoPoint) Point {
	return Point{X: l.x.Map(p.DistanceFromStart), Y: l.y.Map(p.Altitude)}
}

// ticks splits [lo, hi] into n equal divisions and returns the n+1 bounds.
func ticks(lo, hi float64, n int) []float64 {
	out := make([]float64, n+1)
	for i := 0; i <= n; i++ {
		out[i] = lo + (hi-lo)*float64(i)/float64(n)
	}
	return out
}

// annotationStride keeps the number of annotated points at or below
// maxAnnotations. It rounds n/maxAnnotations up rather than down, so 16 to 29
// points get a stride of 2 instead of annotating all but one of them.
func annotationStride(n int) int {
	return max(1, (n+maxAnnotations-1)/maxAnnotations)
}

func annotatedIndices(n int) []int {
	stride := annotationStride(n)
	var idx []int
	for i := 0; i < n; i += stride {
		idx = append(idx, i)
	}
	return idx
}

type labelBox struct {
	textX, baseline float64
	bgX, bgY        float64
	bgW, bgH        float64
}

// placeLabel positions a label of size tw x th centered above the point at
// (px, py), or below it when the box would cross the top margin.
func placeLabel(px, py, tw, th float64) labelBox {
	baseline := py - labelOffset
	if baseline-th-labelPadding < Margin {
		baseline = py + labelOffset + th
	}
	return labelBox{
		textX:    px - tw/2,
		baseline: baseline,
		bgX:      px - tw/2 - labelPadding,
		bgY:      baseline - th - labelPadding,
		bgW:      tw + 2*labelPadding,
		bgH:      th + 2*labelPadding,
	}
}
