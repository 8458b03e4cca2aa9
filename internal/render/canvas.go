package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
)

// Canvas is an off-screen raster surface backed by a gg context.
type Canvas struct {
	dc    *gg.Context
	faces faceSet
	style FontStyle
}

// NewCanvas creates a white canvas of the given size.
func NewCanvas(width, height int) (*Canvas, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid canvas size %dx%d", width, height)
	}

	faces, err := newFaceSet()
	if err != nil {
		return nil, err
	}

	dc := gg.NewContext(width, height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.SetFontFace(faces[FontLabel])

	return &Canvas{dc: dc, faces: faces, style: FontLabel}, nil
}

// Image returns the backing pixel buffer.
func (c *Canvas) Image() *image.RGBA {
	return c.dc.Image().(*image.RGBA)
}

func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

func (c *Canvas) SetColor(col color.Color) {
	c.dc.SetColor(col)
}

func (c *Canvas) SetLineWidth(w float64) {
	c.dc.SetLineWidth(w)
}

func (c *Canvas) SetFont(style FontStyle) {
	c.style = style
	c.dc.SetFontFace(c.faces[style])
}

func (c *Canvas) MeasureString(s string) (float64, float64) {
	return c.faces.measure(c.style, s)
}

func (c *Canvas) DrawLine(x1, y1, x2, y2 float64) {
	c.dc.DrawLine(x1, y1, x2, y2)
	c.dc.Stroke()
}

func (c *Canvas) StrokePolyline(pts []Point) {
	if len(pts) == 0 {
		return
	}
	c.tracePath(pts)
	c.dc.Stroke()
}

func (c *Canvas) FillPolygon(pts []Point) {
	if len(pts) < 3 {
		return
	}
	c.tracePath(pts)
	c.dc.ClosePath()
	c.dc.Fill()
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

func (c *Canvas) FillCircle(x, y, r float64) {
	c.dc.DrawCircle(x, y, r)
	c.dc.Fill()
}

func (c *Canvas) StrokeCircle(x, y, r float64) {
	c.dc.DrawCircle(x, y, r)
	c.dc.Stroke()
}

func (c *Canvas) DrawText(s string, x, y float64) {
	c.dc.DrawString(s, x, y)
}

func (c *Canvas) DrawTextRotated(s string, x, y, degrees float64) {
	c.dc.Push()
	c.dc.RotateAbout(gg.Radians(degrees), x, y)
	c.dc.DrawStringAnchored(s, x, y, 0.5, 0.5)
	c.dc.Pop()
}

func (c *Canvas) tracePath(pts []Point) {
	c.dc.NewSubPath()
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
}
