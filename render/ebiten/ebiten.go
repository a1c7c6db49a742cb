// Package ebiten adapts an Ebiten screen image to the render.Surface interface.
package ebiten

import (
	"image/color"

	ebitengine "github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/emberfall/geom"
)

// Screen draws onto an Ebiten image using the vector package.
type Screen struct {
	Image     *ebitengine.Image
	AntiAlias bool
}

// NewScreen wraps dst. The wrapper is cheap and is normally created once per Draw call.
func NewScreen(dst *ebitengine.Image) *Screen {
	return &Screen{Image: dst, AntiAlias: true}
}

func (s *Screen) FillCircle(center geom.Vec2, radius float64, c color.NRGBA) {
	if radius <= 0 || c.A == 0 {
		return
	}
	vector.DrawFilledCircle(s.Image, float32(center.X), float32(center.Y), float32(radius), c, s.AntiAlias)
}

func (s *Screen) StrokePolygon(points []geom.Vec2, width float64, c color.NRGBA) {
	if len(points) < 2 || c.A == 0 {
		return
	}
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		vector.StrokeLine(s.Image, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), float32(width), c, s.AntiAlias)
	}
}

// FillRect draws an axis-aligned filled rectangle. Hosts use it for their own sprites.
func (s *Screen) FillRect(r geom.Rect, c color.NRGBA) {
	vector.DrawFilledRect(s.Image, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, s.AntiAlias)
}
