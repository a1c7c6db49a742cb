package particle

import (
	"image/color"

	"github.com/plus3/emberfall/geom"
)

// EmitterConfig describes the randomized spawn ranges and emission cadence of a System.
type EmitterConfig struct {
	Position         geom.Vec2 // spawn origin
	PositionVariance geom.Vec2 // per-axis +/- spread around Position
	Velocity         geom.Vec2 // base velocity in pixels per second
	VelocityVariance geom.Vec2 // per-axis +/- spread around Velocity
	StartColor       color.NRGBA
	EndColor         color.NRGBA // each channel is drawn uniformly between StartColor and EndColor
	MinSize          float64
	MaxSize          float64
	MinLifetime      float64
	MaxLifetime      float64
	EmissionRate     float64 // particles per second while emitting
	MaxParticles     int
	Continuous       bool
}

// DefaultEmitterConfig returns the configuration a new System starts with.
func DefaultEmitterConfig() EmitterConfig {
	return EmitterConfig{
		PositionVariance: geom.V(10, 10),
		Velocity:         geom.V(0, 100),
		VelocityVariance: geom.V(50, 50),
		StartColor:       color.NRGBA{R: 255, G: 100, B: 50, A: 255},
		EndColor:         color.NRGBA{R: 255, G: 200, B: 100, A: 0},
		MinSize:          2,
		MaxSize:          8,
		MinLifetime:      0.5,
		MaxLifetime:      2,
		EmissionRate:     20,
		MaxParticles:     500,
		Continuous:       true,
	}
}

// lifetime draws a particle lifetime. A reversed range is degenerate and yields 0, so the
// particle dies on its first update.
func (c *EmitterConfig) lifetime(rng Rand) float64 {
	if c.MaxLifetime < c.MinLifetime {
		return 0
	}
	return Uniform(rng, c.MinLifetime, c.MaxLifetime)
}

// emits reports whether continuous emission can produce anything at all.
func (c EmitterConfig) emits() bool {
	return c.Continuous && c.EmissionRate > 0 && c.MaxParticles > 0
}
