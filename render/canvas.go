package render

import (
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/plus3/emberfall/geom"
)

// Canvas is a software Surface backed by a gg context. It is used for headless frame
// snapshots where no window exists.
type Canvas struct {
	dc *gg.Context
}

// NewCanvas creates a canvas of the given pixel size.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{dc: gg.NewContext(width, height)}
}

// Clear fills the whole canvas with c.
func (c *Canvas) Clear(fill color.Color) {
	c.dc.SetColor(fill)
	c.dc.Clear()
}

func (c *Canvas) FillCircle(center geom.Vec2, radius float64, clr color.NRGBA) {
	if radius <= 0 || clr.A == 0 {
		return
	}
	c.dc.SetColor(clr)
	c.dc.DrawCircle(center.X, center.Y, radius)
	c.dc.Fill()
}

func (c *Canvas) StrokePolygon(points []geom.Vec2, width float64, clr color.NRGBA) {
	if len(points) < 2 || clr.A == 0 {
		return
	}
	c.dc.SetColor(clr)
	c.dc.SetLineWidth(width)
	c.dc.MoveTo(points[0].X, points[0].Y)
	for _, p := range points[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.dc.Stroke()
}

// Image returns the rasterized frame.
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the frame as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the frame as PNG to path.
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}
