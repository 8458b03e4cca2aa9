// Package render draws elevation profile charts onto an abstract Surface.
//
// Draw is the single layout routine. A Canvas rasterizes the commands with gg
// for PNG export; a Recorder keeps them as a command list.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"time"

	"github.com/planbiir/gprofile/internal/track"
)

// Defaults for exported charts.
const (
	DefaultWidth  = 1000
	DefaultHeight = 600
	DefaultTitle  = "Elevation Profile"
	NoDataMessage = "No data to display"

	titleBaseline      = 30
	timeLayout         = "3:04pm"
	altitudeTickFormat = "%.0f m"
)

// Marker sizes.
const (
	markerRadius    = 3.5
	endpointRadius  = 6
	endpointOutline = 2
)

var (
	gridColor     = color.RGBA{R: 200, G: 200, B: 200, A: 255}
	axisColor     = color.Black
	textColor     = color.Black
	curveColor    = color.RGBA{R: 70, G: 130, B: 180, A: 255}
	fillColor     = color.NRGBA{R: 70, G: 130, B: 180, A: 50}
	markerColor   = color.RGBA{R: 25, G: 25, B: 112, A: 255}
	labelBgColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 200}
	startColor    = color.RGBA{R: 46, G: 160, B: 67, A: 255}
	endColor      = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	outlineColor  = color.White
	titleColor    = color.Black
	axisLineWidth = 2.0
	curveWidth    = 2.0
)

// Options carries display parameters that are not part of the track.
type Options struct {
	// Location is used to format annotation times. Nil means time.Local.
	Location *time.Location
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// Draw renders the elevation profile of tr onto s. It only reads its
// arguments and keeps no state between calls, so drawing the same inputs on
// surfaces of the same size yields the same command sequence.
func Draw(s Surface, tr track.Track, title string, opts Options) {
	width, height := s.Size()
	w, h := float64(width), float64(height)

	if tr.Empty() {
		drawNoData(s, w, h)
		return
	}
	if title == "" {
		title = DefaultTitle
	}

	l := newLayout(tr, w, h)
	pts := make([]Point, tr.Len())
	for i := range pts {
		pts[i] = l.project(tr.At(i))
	}

	drawGrid(s, l)
	drawArea(s, l, pts)
	drawAxes(s, l)
	drawCurve(s, pts)
	drawAnnotations(s, l, tr, pts, opts.location())
	if tr.HasTimestamps() {
		drawEndpoints(s, pts[0], pts[len(pts)-1])
	}
	drawTitle(s, title, w)
	drawAxisTitles(s, l)
}

func drawNoData(s Surface, w, h float64) {
	s.SetColor(textColor)
	s.SetFont(FontLabel)
	tw, th := s.MeasureString(NoDataMessage)
	s.DrawText(NoDataMessage, (w-tw)/2, (h+th)/2)
}

func drawGrid(s Surface, l layout) {
	s.SetFont(FontLabel)

	for _, alt := range ticks(l.minAlt, l.maxAlt, altitudeDivisions) {
		y := l.y.Map(alt)
		s.SetColor(gridColor)
		s.SetLineWidth(1)
		s.DrawLine(l.left(), y, l.right(), y)

		label := fmt.Sprintf(altitudeTickFormat, alt)
		tw, th := s.MeasureString(label)
		s.SetColor(textColor)
		s.DrawText(label, l.left()-tw-10, y+th/2)
	}

	for _, d := range ticks(l.minDist, l.maxDist, distanceDivisions) {
		x := l.x.Map(d)
		s.SetColor(gridColor)
		s.SetLineWidth(1)
		s.DrawLine(x, l.top(), x, l.bottom())

		label := fmt.Sprintf(l.unit.tickFormat, d/l.unit.divisor)
		tw, th := s.MeasureString(label)
		s.SetColor(textColor)
		s.DrawText(label, x-tw/2, l.bottom()+th+8)
	}
}

// drawArea fills the region between the curve and the plot baseline.
func drawArea(s Surface, l layout, pts []Point) {
	poly := make([]Point, 0, len(pts)+2)
	poly = append(poly, Point{X: pts[0].X, Y: l.bottom()})
	poly = append(poly, pts...)
	poly = append(poly, Point{X: pts[len(pts)-1].X, Y: l.bottom()})

	s.SetColor(fillColor)
	s.FillPolygon(poly)
}

func drawAxes(s Surface, l layout) {
	s.SetColor(axisColor)
	s.SetLineWidth(axisLineWidth)
	s.DrawLine(l.left(), l.bottom(), l.right(), l.bottom())
	s.DrawLine(l.left(), l.top(), l.left(), l.bottom())
}

func drawCurve(s Surface, pts []Point) {
	s.SetColor(curveColor)
	s.SetLineWidth(curveWidth)
	s.StrokePolyline(pts)
}

func drawAnnotations(s Surface, l layout, tr track.Track, pts []Point, loc *time.Location) {
	idx := annotatedIndices(tr.Len())

	s.SetColor(markerColor)
	for _, i := range idx {
		s.FillCircle(pts[i].X, pts[i].Y, markerRadius)
	}

	s.SetFont(FontLabel)
	for _, i := range idx {
		p := tr.At(i)
		if !p.HasTime() {
			continue
		}
		label := annotationLabel(p, loc)
		tw, th := s.MeasureString(label)
		box := placeLabel(pts[i].X, pts[i].Y, tw, th)

		s.SetColor(labelBgColor)
		s.FillRect(box.bgX, box.bgY, box.bgW, box.bgH)
		s.SetColor(textColor)
		s.DrawText(label, box.textX, box.baseline)
	}
}

func annotationLabel(p track.GeoPoint, loc *time.Location) string {
	return fmt.Sprintf("%.0f m @ %s", p.Altitude, p.Time.In(loc).Format(timeLayout))
}

func drawEndpoints(s Surface, first, last Point) {
	for _, m := range []struct {
		at  Point
		col color.Color
	}{
		{first, startColor},
		{last, endColor},
	} {
		s.SetColor(m.col)
		s.FillCircle(m.at.X, m.at.Y, endpointRadius)
		s.SetColor(outlineColor)
		s.SetLineWidth(endpointOutline)
		s.StrokeCircle(m.at.X, m.at.Y, endpointRadius)
	}
}

func drawTitle(s Surface, title string, w float64) {
	s.SetColor(titleColor)
	s.SetFont(FontTitle)
	tw, _ := s.MeasureString(title)
	s.DrawText(title, (w-tw)/2, titleBaseline)
}

func drawAxisTitles(s Surface, l layout) {
	s.SetColor(textColor)
	s.SetFont(FontAxisTitle)

	tw, _ := s.MeasureString(l.unit.axisTitle)
	s.DrawText(l.unit.axisTitle, (l.width-tw)/2, l.height-10)

	s.DrawTextRotated("Altitude (meters)", 20, l.height/2, -90)
}

// Rasterize draws the chart onto a new off-screen canvas of the given size.
func Rasterize(tr track.Track, title string, width, height int, opts Options) (*image.RGBA, error) {
	c, err := NewCanvas(width, height)
	if err != nil {
		return nil, err
	}
	Draw(c, tr, title, opts)
	return c.Image(), nil
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode PNG: %w", err)
	}
	return nil
}

// SavePNG writes img to a PNG file at path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := EncodePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
