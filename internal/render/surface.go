package render

import (
	"image/color"
)

// Point is a pixel position on a surface.
type Point struct {
	X, Y float64
}

// Surface is the drawing target of the profile renderer. Coordinates are in
// pixels with the origin at the top-left corner. Text is drawn with its
// baseline at y.
type Surface interface {
	Size() (width, height int)

	SetColor(c color.Color)
	SetLineWidth(w float64)
	SetFont(style FontStyle)
	MeasureString(s string) (w, h float64)

	DrawLine(x1, y1, x2, y2 float64)
	StrokePolyline(pts []Point)
	FillPolygon(pts []Point)
	FillRect(x, y, w, h float64)
	FillCircle(x, y, r float64)
	StrokeCircle(x, y, r float64)
	DrawText(s string, x, y float64)
	// DrawTextRotated draws s centered on (x, y), rotated by degrees.
	DrawTextRotated(s string, x, y, degrees float64)
}
