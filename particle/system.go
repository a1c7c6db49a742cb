package particle

import (
	"image/color"
	"iter"

	"github.com/plus3/emberfall/geom"
	"github.com/plus3/emberfall/render"
)

// RotationSpeedRange bounds the random spin, in degrees per second, given to spawned particles.
const RotationSpeedRange = 180.0

// System owns a bounded pool of particles and the emitter that spawns them.
//
// Particles are kept in insertion order so drawing is back-to-front by age. Spawns beyond
// MaxParticles are silently dropped.
type System struct {
	particles []*Particle
	config    EmitterConfig
	emitting  bool
	timer     float64
	motion    Motion
	phase     float64
	launched  int
	rng       Rand
}

// NewSystem creates an empty, idle system using DefaultEmitterConfig. A nil rng selects a
// randomly seeded generator.
func NewSystem(rng Rand) *System {
	if rng == nil {
		rng = DefaultRand()
	}
	return &System{
		config: DefaultEmitterConfig(),
		rng:    rng,
	}
}

// SetEmitter replaces the emitter configuration. Live particles are not affected.
func (s *System) SetEmitter(cfg EmitterConfig) {
	s.config = cfg
}

// Emitter returns the active emitter configuration.
func (s *System) Emitter() EmitterConfig {
	return s.config
}

// SetEmitterPosition moves the spawn origin.
func (s *System) SetEmitterPosition(pos geom.Vec2) {
	s.config.Position = pos
}

// SetMotion selects the motion profile attached to particles spawned from now on.
func (s *System) SetMotion(m Motion) {
	if !m.Valid() {
		m = MotionDefault
	}
	s.motion = m
}

// Motion returns the motion profile attached to new particles.
func (s *System) Motion() Motion {
	return s.motion
}

// SetPhase sets the animation phase forwarded to phase-driven motion profiles.
func (s *System) SetPhase(phase float64) {
	s.phase = phase
}

// Start enables continuous emission.
func (s *System) Start() {
	s.emitting = true
}

// Stop disables continuous emission. Existing particles keep living.
func (s *System) Stop() {
	s.emitting = false
}

// Emitting reports whether continuous emission is enabled.
func (s *System) Emitting() bool {
	return s.emitting
}

// Burst spawns up to n particles immediately and returns how many were spawned.
func (s *System) Burst(n int) int {
	spawned := 0
	for spawned < n && len(s.particles) < s.config.MaxParticles {
		s.particles = append(s.particles, s.spawn())
		spawned++
	}
	s.launched += spawned
	return spawned
}

func (s *System) spawn() *Particle {
	cfg := &s.config

	pos := geom.V(
		cfg.Position.X+s.spread(cfg.PositionVariance.X),
		cfg.Position.Y+s.spread(cfg.PositionVariance.Y),
	)
	vel := geom.V(
		cfg.Velocity.X+s.spread(cfg.VelocityVariance.X),
		cfg.Velocity.Y+s.spread(cfg.VelocityVariance.Y),
	)
	lifetime := cfg.lifetime(s.rng)
	size := Uniform(s.rng, cfg.MinSize, cfg.MaxSize)
	c := s.randomColor()

	p := &Particle{}
	p.Init(pos, vel, lifetime, c, size)
	p.SetRotationSpeed(Uniform(s.rng, -RotationSpeedRange, RotationSpeedRange))
	p.SetMotion(s.motion)
	return p
}

func (s *System) spread(variance float64) float64 {
	return Uniform(s.rng, -variance, variance)
}

func (s *System) randomColor() (c color.NRGBA) {
	start, end := s.config.StartColor, s.config.EndColor
	c.R = s.channel(start.R, end.R)
	c.G = s.channel(start.G, end.G)
	c.B = s.channel(start.B, end.B)
	c.A = s.channel(start.A, end.A)
	return c
}

func (s *System) channel(a, b uint8) uint8 {
	return uint8(Uniform(s.rng, float64(a), float64(b)))
}

// Update runs fixed-rate emission and then advances every particle, dropping the dead ones.
//
// Emission accumulates dt and spawns one particle per 1/EmissionRate seconds, catching up
// across slow frames instead of skipping spawns.
func (s *System) Update(dt float64) {
	if !(dt > 0) {
		dt = 0
	}
	if s.emitting && s.config.emits() {
		s.timer += dt
		interval := 1 / s.config.EmissionRate
		for s.timer >= interval && len(s.particles) < s.config.MaxParticles {
			s.Burst(1)
			s.timer -= interval
		}
		if len(s.particles) >= s.config.MaxParticles {
			// A full pool must not bank spawns for when it drains.
			s.timer = min(s.timer, interval)
		}
	}

	alive := s.particles[:0]
	for _, p := range s.particles {
		p.Advance(dt, s.phase)
		if p.IsAlive() {
			alive = append(alive, p)
		}
	}
	clear(s.particles[len(alive):])
	s.particles = alive
}

// Draw renders particles oldest first.
func (s *System) Draw(surface render.Surface) {
	for _, p := range s.particles {
		p.Draw(surface)
	}
}

// Clear drops every particle regardless of remaining lifetime.
func (s *System) Clear() {
	clear(s.particles)
	s.particles = s.particles[:0]
}

// Len returns the number of live particles.
func (s *System) Len() int {
	return len(s.particles)
}

// HasActive reports whether any particle is alive.
func (s *System) HasActive() bool {
	return len(s.particles) > 0
}

// Launched returns the total number of particles spawned since creation.
func (s *System) Launched() int {
	return s.launched
}

// Particles iterates the live particles oldest first. The particles remain owned by the
// system and must not be retained across updates.
func (s *System) Particles() iter.Seq[*Particle] {
	return func(yield func(*Particle) bool) {
		for _, p := range s.particles {
			if !yield(p) {
				return
			}
		}
	}
}
