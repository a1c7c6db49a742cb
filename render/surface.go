// Package render defines the drawing surface the particle engine renders onto, along with a
// recording surface for tests and a software canvas for headless snapshots.
//
// The engine only ever needs two primitives: filled circles (particles and obstacle cores) and
// stroked polygons (obstacle outlines). Window-backed implementations live in subpackages so
// the simulation packages never depend on a graphics driver.
package render

import (
	"image/color"

	"github.com/plus3/emberfall/geom"
)

// Surface is a render target supplied by the host each frame.
type Surface interface {
	// FillCircle draws a filled circle centred on center.
	FillCircle(center geom.Vec2, radius float64, c color.NRGBA)
	// StrokePolygon draws the closed outline through points with the given stroke width.
	StrokePolygon(points []geom.Vec2, width float64, c color.NRGBA)
}

// OpKind identifies a recorded draw call.
type OpKind uint8

const (
	OpCircle OpKind = iota
	OpPolygon
)

func (k OpKind) String() string {
	switch k {
	case OpCircle:
		return "circle"
	case OpPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Op is a single recorded draw call.
type Op struct {
	Kind   OpKind
	Center geom.Vec2
	Radius float64
	Points []geom.Vec2
	Width  float64
	Color  color.NRGBA
}

// Recorder is a Surface that stores draw calls in order instead of rasterizing them.
type Recorder struct {
	ops []Op
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) FillCircle(center geom.Vec2, radius float64, c color.NRGBA) {
	r.ops = append(r.ops, Op{Kind: OpCircle, Center: center, Radius: radius, Color: c})
}

func (r *Recorder) StrokePolygon(points []geom.Vec2, width float64, c color.NRGBA) {
	pts := make([]geom.Vec2, len(points))
	copy(pts, points)
	r.ops = append(r.ops, Op{Kind: OpPolygon, Points: pts, Width: width, Color: c})
}

// Ops returns the recorded calls in draw order.
func (r *Recorder) Ops() []Op {
	return r.ops
}

// Len returns the number of recorded calls.
func (r *Recorder) Len() int {
	return len(r.ops)
}

// Count returns the number of recorded calls of the given kind.
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Reset discards all recorded calls, keeping the backing storage.
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}
