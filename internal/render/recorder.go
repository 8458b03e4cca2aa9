package render

import (
	"fmt"
	"image/color"
)

// OpKind identifies a recorded drawing command.
type OpKind string

const (
	OpLine          OpKind = "line"
	OpPolyline      OpKind = "polyline"
	OpPolygon       OpKind = "polygon"
	OpRect          OpKind = "rect"
	OpCircle        OpKind = "circle"
	OpCircleOutline OpKind = "circle-outline"
	OpText          OpKind = "text"
	OpTextRotated   OpKind = "text-rotated"
)

// Op is one drawing command together with the state it was issued under.
type Op struct {
	Kind  OpKind
	Color color.Color
	Width float64 // line width
	Font  FontStyle

	Points []Point // line endpoints, polyline and polygon vertices
	X, Y   float64 // rect origin, circle center, text anchor
	W, H   float64 // rect size
	R      float64 // circle radius
	Angle  float64 // rotation in degrees
	Text   string
}

// Recorder is a Surface that keeps the command list instead of drawing it.
// Text is measured with the same faces a Canvas uses, so a recorded layout
// matches the rasterized one exactly.
type Recorder struct {
	width, height int
	faces         faceSet

	color color.Color
	lw    float64
	style FontStyle

	Ops []Op
}

// NewRecorder creates an empty recorder reporting the given size.
func NewRecorder(width, height int) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}
	faces, err := newFaceSet()
	if err != nil {
		return nil, err
	}
	return &Recorder{
		width:  width,
		height: height,
		faces:  faces,
		color:  color.Black,
		lw:     1,
		style:  FontLabel,
	}, nil
}

func (r *Recorder) Size() (int, int) {
	return r.width, r.height
}

func (r *Recorder) SetColor(c color.Color) { r.color = c }
func (r *Recorder) SetLineWidth(w float64) { r.lw = w }
func (r *Recorder) SetFont(style FontStyle) { r.style = style }

func (r *Recorder) MeasureString(s string) (float64, float64) {
	return r.faces.measure(r.style, s)
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float64) {
	r.record(Op{Kind: OpLine, Points: []Point{{x1, y1}, {x2, y2}}})
}

func (r *Recorder) StrokePolyline(pts []Point) {
	r.record(Op{Kind: OpPolyline, Points: append([]Point(nil), pts...)})
}

func (r *Recorder) FillPolygon(pts []Point) {
	r.record(Op{Kind: OpPolygon, Points: append([]Point(nil), pts...)})
}

func (r *Recorder) FillRect(x, y, w, h float64) {
	r.record(Op{Kind: OpRect, X: x, Y: y, W: w, H: h})
}

func (r *Recorder) FillCircle(x, y, radius float64) {
	r.record(Op{Kind: OpCircle, X: x, Y: y, R: radius})
}

func (r *Recorder) StrokeCircle(x, y, radius float64) {
	r.record(Op{Kind: OpCircleOutline, X: x, Y: y, R: radius})
}

func (r *Recorder) DrawText(s string, x, y float64) {
	r.record(Op{Kind: OpText, X: x, Y: y, Text: s})
}

func (r *Recorder) DrawTextRotated(s string, x, y, degrees float64) {
	r.record(Op{Kind: OpTextRotated, X: x, Y: y, Angle: degrees, Text: s})
}

func (r *Recorder) record(op Op) {
	op.Color = r.color
	op.Width = r.lw
	op.Font = r.style
	r.Ops = append(r.Ops, op)
}

// Filter returns the recorded ops of the given kind, in drawing order.
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns every drawn string, rotated or not, in drawing order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Ops {
		if op.Kind == OpText || op.Kind == OpTextRotated {
			out = append(out, op.Text)
		}
	}
	return out
}

// Replay issues the recorded commands on another surface.
func (r *Recorder) Replay(s Surface) {
	for _, op := range r.Ops {
		s.SetColor(op.Color)
		s.SetLineWidth(op.Width)
		s.SetFont(op.Font)

		switch op.Kind {
		case OpLine:
			s.DrawLine(op.Points[0].X, op.Points[0].Y, op.Points[1].X, op.Points[1].Y)
		case OpPolyline:
			s.StrokePolyline(op.Points)
		case OpPolygon:
			s.FillPolygon(op.Points)
		case OpRect:
			s.FillRect(op.X, op.Y, op.W, op.H)
		case OpCircle:
			s.FillCircle(op.X, op.Y, op.R)
		case OpCircleOutline:
			s.StrokeCircle(op.X, op.Y, op.R)
		case OpText:
			s.DrawText(op.Text, op.X, op.Y)
		case OpTextRotated:
			s.DrawTextRotated(op.Text, op.X, op.Y, op.Angle)
		}
	}
}
