package obstacle

import (
	"image/color"

	"github.com/plus3/emberfall/geom"
	"github.com/plus3/emberfall/render"
)

const (
	// CoreRadius is the radius of the filled core circle before pulse scaling.
	CoreRadius = 20.0
	// OutlineSide is the side length of the rotating outline square before pulse scaling.
	OutlineSide = 40.0
	// OutlineWidth is the stroke width of the outline square.
	OutlineWidth = 3.0
)

// shape is the transform shared by the core circle and the outline square.
type shape struct {
	center   geom.Vec2
	rotation float64
	scale    float64
}

type core struct {
	shape
	fill color.NRGBA
}

func newCore(at geom.Vec2) core {
	return core{shape: shape{center: at, scale: 1}}
}

func (c *core) draw(s render.Surface) {
	s.FillCircle(c.center, CoreRadius*c.scale, c.fill)
}

// bounds ignores scale and rotation so collision stays stable while the core breathes.
func (c *core) bounds() geom.Rect {
	return geom.RectAround(c.center, CoreRadius)
}

type outline struct {
	shape
	stroke color.NRGBA
	points [4]geom.Vec2
}

func newOutline(at geom.Vec2) outline {
	return outline{shape: shape{center: at, scale: 1}}
}

func (o *outline) draw(s render.Surface) {
	half := OutlineSide / 2 * o.scale
	corners := [4]geom.Vec2{
		geom.V(-half, -half),
		geom.V(half, -half),
		geom.V(half, half),
		geom.V(-half, half),
	}
	for i, c := range corners {
		o.points[i] = o.center.Add(c.Rotate(o.rotation))
	}
	s.StrokePolygon(o.points[:], OutlineWidth, o.stroke)
}
