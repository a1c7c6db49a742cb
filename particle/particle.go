// Package particle implements the particle leaf and the pooled emitter that owns particles.
//
// A Particle decays purely from its life ratio: every colour channel is scaled by the ratio and
// its size shrinks toward half of its spawn size. Movement is selected separately through a
// Motion profile, so effect-specific movement never changes how particles fade.
package particle

import (
	"image/color"

	"github.com/plus3/emberfall/geom"
	"github.com/plus3/emberfall/render"
)

// FadeDuration is the remaining lifetime, in seconds, below which a particle starts fading out.
const FadeDuration = 0.3

// State is a particle's lifecycle stage. Transitions only go Active -> Fading -> Dead.
type State uint8

const (
	// Dead particles are inert. The zero Particle is dead until Init is called.
	Dead State = iota
	Active
	Fading
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Fading:
		return "fading"
	default:
		return "dead"
	}
}

// Particle is a single animated point.
type Particle struct {
	position      geom.Vec2
	velocity      geom.Vec2
	color         color.NRGBA
	baseColor     color.NRGBA
	size          float64
	baseSize      float64
	lifetime      float64
	maxLifetime   float64
	rotation      float64
	rotationSpeed float64
	state         State
	motion        Motion
}

// Init resets every field and makes the particle Active. A negative lifetime is treated as
// zero, so the particle dies on its first update.
func (p *Particle) Init(position, velocity geom.Vec2, lifetime float64, c color.NRGBA, size float64) {
	if !(lifetime > 0) {
		lifetime = 0
	}
	*p = Particle{
		position:    position,
		velocity:    velocity,
		color:       c,
		baseColor:   c,
		size:        size,
		baseSize:    size,
		lifetime:    lifetime,
		maxLifetime: lifetime,
		state:       Active,
	}
}

// Update advances the particle by dt seconds.
func (p *Particle) Update(dt float64) {
	p.Advance(dt, 0)
}

// Advance advances the particle by dt seconds. phase is forwarded to motion profiles that are
// driven by their owner's animation clock.
func (p *Particle) Advance(dt, phase float64) {
	if !p.IsAlive() {
		return
	}
	if !(dt > 0) {
		dt = 0
	}

	p.lifetime -= dt
	if p.lifetime <= 0 {
		p.lifetime = 0
		p.state = Dead
		return
	}

	if p.lifetime < FadeDuration && p.state == Active {
		p.state = Fading
	}

	motionTable[p.motion](p, dt, phase)
	p.decay()
}

func (p *Particle) decay() {
	r := p.LifeRatio()
	p.color = color.NRGBA{
		R: scaleChannel(p.baseColor.R, r),
		G: scaleChannel(p.baseColor.G, r),
		B: scaleChannel(p.baseColor.B, r),
		A: scaleChannel(p.baseColor.A, r),
	}
	p.size = p.baseSize * (0.5 + 0.5*r)
}

func scaleChannel(c uint8, r float64) uint8 {
	return uint8(float64(c) * r)
}

// Draw renders the particle as a filled circle. Fading particles have their alpha further
// scaled by the share of the fade window that remains.
func (p *Particle) Draw(s render.Surface) {
	if !p.IsAlive() {
		return
	}
	c := p.color
	if p.state == Fading {
		c.A = scaleChannel(c.A, p.lifetime/FadeDuration)
	}
	s.FillCircle(p.position, p.size, c)
}

// IsAlive reports whether the particle has not died yet.
func (p *Particle) IsAlive() bool {
	return p.state != Dead
}

// LifeRatio returns lifetime / maxLifetime in [0, 1].
func (p *Particle) LifeRatio() float64 {
	if p.maxLifetime <= 0 {
		return 0
	}
	return p.lifetime / p.maxLifetime
}

func (p *Particle) State() State              { return p.state }
func (p *Particle) Position() geom.Vec2       { return p.position }
func (p *Particle) Velocity() geom.Vec2       { return p.velocity }
func (p *Particle) Color() color.NRGBA        { return p.color }
func (p *Particle) BaseColor() color.NRGBA    { return p.baseColor }
func (p *Particle) Size() float64             { return p.size }
func (p *Particle) BaseSize() float64         { return p.baseSize }
func (p *Particle) Lifetime() float64         { return p.lifetime }
func (p *Particle) MaxLifetime() float64      { return p.maxLifetime }
func (p *Particle) Rotation() float64         { return p.rotation }
func (p *Particle) RotationSpeed() float64    { return p.rotationSpeed }
func (p *Particle) Motion() Motion            { return p.motion }
func (p *Particle) SetPosition(pos geom.Vec2) { p.position = pos }
func (p *Particle) SetVelocity(vel geom.Vec2) { p.velocity = vel }
func (p *Particle) SetRotation(deg float64)   { p.rotation = deg }

// SetRotationSpeed sets the spin in degrees per second.
func (p *Particle) SetRotationSpeed(degPerSec float64) {
	p.rotationSpeed = degPerSec
}

// SetMotion attaches a motion profile. Unknown values fall back to MotionDefault.
func (p *Particle) SetMotion(m Motion) {
	if !m.Valid() {
		m = MotionDefault
	}
	p.motion = m
}
