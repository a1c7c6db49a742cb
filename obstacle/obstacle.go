// Package obstacle implements the falling hazard entity: a core body dressed with trail, aura
// and collision particle layers, and the lifecycle that lets it finish its last burst after it
// has been destroyed.
//
// The host owns obstacles. Each frame it calls Update then Draw, signals collisions and hits
// through TriggerCollisionEffect, TriggerDestroyEffect and DestroyImmediately, and drops an
// obstacle once ShouldRemove reports true. Nothing in this package removes itself from a
// collection.
package obstacle

import (
	"image/color"
	"math"

	"github.com/plus3/emberfall/geom"
	"github.com/plus3/emberfall/particle"
	"github.com/plus3/emberfall/render"
)

// DestroyDuration is how long an obstacle keeps ticking after an ambient collision before it
// turns inactive.
const DestroyDuration = 0.3

const (
	collisionBurst = 30
	destroyBurst   = 80
)

// State is the externally visible lifecycle stage. It never returns to Live.
type State uint8

const (
	Live State = iota
	Destroying
	Removed
)

func (s State) String() string {
	switch s {
	case Live:
		return "live"
	case Destroying:
		return "destroying"
	default:
		return "removed"
	}
}

type options struct {
	rng      particle.Rand
	profiles Profiles
}

// Option customizes obstacle construction.
type Option func(*options)

// WithRand injects the generator used for type resolution, spin, pulse and every particle
// spawned by the obstacle.
func WithRand(rng particle.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithProfiles replaces the built-in profile table. Types missing from the table keep their
// built-in profile.
func WithProfiles(p Profiles) Option {
	return func(o *options) {
		o.profiles = p
	}
}

// Obstacle is a single falling hazard.
type Obstacle struct {
	position      geom.Vec2
	speed         float64
	rotation      float64
	rotationSpeed float64
	pulsePhase    float64
	pulseSpeed    float64
	scale         float64

	typ     Type
	profile Profile
	core    core
	outline outline

	trail     *particle.System
	aura      *particle.System
	collision *particle.System

	active       bool
	destroying   bool
	hitByBullet  bool
	destroyTimer float64

	rng      particle.Rand
	profiles Profiles
}

// New creates a live obstacle at (x, y) falling at speed pixels per second. Random is resolved
// once, here, to a concrete type.
func New(x, y, speed float64, typ Type, opts ...Option) *Obstacle {
	cfg := options{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.rng == nil {
		cfg.rng = particle.DefaultRand()
	}
	if cfg.profiles == nil {
		cfg.profiles = DefaultProfiles()
	}

	pos := geom.V(x, y)
	o := &Obstacle{
		position:  pos,
		speed:     speed,
		scale:     1,
		core:      newCore(pos),
		outline:   newOutline(pos),
		trail:     particle.NewSystem(cfg.rng),
		aura:      particle.NewSystem(cfg.rng),
		collision: particle.NewSystem(cfg.rng),
		active:    true,
		rng:       cfg.rng,
		profiles:  cfg.profiles,
	}
	o.typ = resolve(typ, o.rng)
	o.rotationSpeed = particle.Uniform(o.rng, -180, 180)
	o.pulseSpeed = particle.Uniform(o.rng, 1, 3)
	o.applyProfile()
	return o
}

// SetType switches the obstacle to another profile. Layers the new profile does not use are
// stopped; their live particles play out.
func (o *Obstacle) SetType(t Type) {
	o.typ = resolve(t, o.rng)
	o.applyProfile()
}

func (o *Obstacle) applyProfile() {
	o.profile = o.profiles.Lookup(o.typ)
	o.core.fill = o.profile.Core
	o.outline.stroke = o.profile.Outline
	o.setupEffect(o.trail, o.profile.Trail, o.profile.TrailSpeedFactor)
	o.setupEffect(o.aura, o.profile.Aura, 0)
}

func (o *Obstacle) setupEffect(sys *particle.System, effect *Effect, speedFactor float64) {
	if effect == nil {
		sys.Stop()
		return
	}
	cfg := effect.Emitter
	cfg.Position = o.position
	cfg.Velocity.Y -= o.speed * speedFactor
	sys.SetEmitter(cfg)
	sys.SetMotion(effect.Motion)
	if o.active && !o.destroying {
		sys.Start()
	}
}

// Update advances the obstacle by dt seconds.
//
// An inactive obstacle only drains its collision burst, unless it was hit by a bullet, in which
// case it is frozen. A destroying obstacle stops moving and counts down DestroyDuration while
// its particle layers keep animating.
func (o *Obstacle) Update(dt float64) {
	if !(dt > 0) {
		dt = 0
	}

	if !o.active {
		if !o.hitByBullet {
			o.collision.Update(dt)
		}
		return
	}

	if o.hitByBullet {
		o.active = false
		o.destroying = true
		o.stopEffects()
		return
	}

	if o.destroying {
		o.destroyTimer += dt
		if o.destroyTimer >= DestroyDuration {
			o.active = false
		}
		o.stopEffects()
	} else {
		o.fly(dt)
	}

	o.trail.SetPhase(o.pulsePhase)
	o.aura.SetPhase(o.pulsePhase)
	o.trail.Update(dt)
	o.aura.Update(dt)
	o.collision.Update(dt)

	o.trail.SetEmitterPosition(o.position)
	o.aura.SetEmitterPosition(o.position)
}

func (o *Obstacle) fly(dt float64) {
	o.position.Y += o.speed * dt
	o.position.X += math.Sin(o.pulsePhase*2) * o.profile.Swing * dt

	o.rotation += o.rotationSpeed * dt
	o.core.rotation = o.rotation
	o.outline.rotation = -o.rotation * 0.5

	o.pulsePhase += dt * o.pulseSpeed
	o.scale = 1 + 0.1*math.Sin(o.pulsePhase)
	o.core.scale = o.scale
	o.outline.scale = o.scale

	o.core.center = o.position
	o.outline.center = o.position
}

func (o *Obstacle) stopEffects() {
	o.trail.Stop()
	o.aura.Stop()
}

// TriggerCollisionEffect fires a one-shot burst in the core colour at the current position.
// Repeated calls stack. The burst stays where it was fired while the obstacle moves on.
func (o *Obstacle) TriggerCollisionEffect() {
	cfg := burstConfig(o.position, o.profile.Core, 20, 200, 3, 10, 0.2, 0.8, 50)
	o.collision.SetEmitter(cfg)
	o.collision.Burst(collisionBurst)
}

// TriggerDestroyEffect starts the ambient destruction sequence: the obstacle stops emitting,
// throws a large burst and turns inactive after DestroyDuration. It does nothing once the
// obstacle was hit by a bullet.
func (o *Obstacle) TriggerDestroyEffect() {
	if o.hitByBullet {
		return
	}
	o.destroying = true
	o.stopEffects()

	cfg := burstConfig(o.position, o.profile.Core, 30, 300, 5, 15, 0.5, 1.0, 100)
	o.collision.SetEmitter(cfg)
	o.collision.Burst(destroyBurst)
}

// DestroyImmediately handles a bullet hit. The obstacle becomes removable at once and never
// draws again.
func (o *Obstacle) DestroyImmediately() {
	o.hitByBullet = true
	o.active = false
	o.destroying = true
	o.stopEffects()
	o.TriggerCollisionEffect()
}

// ShouldRemove reports whether the host can drop the obstacle.
func (o *Obstacle) ShouldRemove() bool {
	if o.hitByBullet {
		return true
	}
	return !o.active && !o.collision.HasActive()
}

// State summarizes the lifecycle flags.
func (o *Obstacle) State() State {
	switch {
	case o.ShouldRemove():
		return Removed
	case o.destroying || !o.active:
		return Destroying
	default:
		return Live
	}
}

// Draw renders the obstacle back to front: aura, trail, outline, core, then collision
// particles. After an ambient destruction only the collision particles are drawn.
func (o *Obstacle) Draw(s render.Surface) {
	if o.hitByBullet {
		return
	}
	if !o.active {
		o.collision.Draw(s)
		return
	}
	o.aura.Draw(s)
	o.trail.Draw(s)
	o.outline.draw(s)
	o.core.draw(s)
	o.collision.Draw(s)
}

// Bounds is the core's axis-aligned rectangle, independent of pulse and rotation.
func (o *Obstacle) Bounds() geom.Rect {
	return o.core.bounds()
}

// IsOffScreen reports whether the core has fallen completely below a screen of the given height.
func (o *Obstacle) IsOffScreen(height float64) bool {
	return o.position.Y-CoreRadius > height
}

// SetSpeed changes the fall speed. The trail velocity follows the new speed.
func (o *Obstacle) SetSpeed(speed float64) {
	o.speed = speed
	if trail := o.profile.Trail; trail != nil {
		cfg := o.trail.Emitter()
		cfg.Velocity.Y = trail.Emitter.Velocity.Y - speed*o.profile.TrailSpeedFactor
		o.trail.SetEmitter(cfg)
	}
}

// AdjustSpeed multiplies the fall speed by mult.
func (o *Obstacle) AdjustSpeed(mult float64) {
	o.SetSpeed(o.speed * mult)
}

// ParticleCount is the number of live particles across all three layers.
func (o *Obstacle) ParticleCount() int {
	return o.trail.Len() + o.aura.Len() + o.collision.Len()
}

func (o *Obstacle) Position() geom.Vec2       { return o.position }
func (o *Obstacle) Speed() float64            { return o.speed }
func (o *Obstacle) Type() Type                { return o.typ }
func (o *Obstacle) Profile() Profile          { return o.profile }
func (o *Obstacle) Rotation() float64         { return o.rotation }
func (o *Obstacle) OutlineRotation() float64  { return o.outline.rotation }
func (o *Obstacle) Scale() float64            { return o.scale }
func (o *Obstacle) PulsePhase() float64       { return o.pulsePhase }
func (o *Obstacle) CoreColor() color.NRGBA    { return o.profile.Core }
func (o *Obstacle) OutlineColor() color.NRGBA { return o.profile.Outline }
func (o *Obstacle) Active() bool              { return o.active }
func (o *Obstacle) Destroying() bool          { return o.destroying }
func (o *Obstacle) HitByBullet() bool         { return o.hitByBullet }

// Trail, Aura and Collision expose the particle layers for inspection. Callers must not
// reconfigure them.
func (o *Obstacle) Trail() *particle.System     { return o.trail }
func (o *Obstacle) Aura() *particle.System      { return o.aura }
func (o *Obstacle) Collision() *particle.System { return o.collision }
