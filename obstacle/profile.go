package obstacle

import (
	"image/color"
	"maps"

	"github.com/plus3/emberfall/geom"
	"github.com/plus3/emberfall/particle"
)

// Effect is a continuous particle effect: the emitter a system is configured with and the motion
// profile its particles follow.
type Effect struct {
	Emitter particle.EmitterConfig
	Motion  particle.Motion
}

// Profile is the per-type look and behavior of an obstacle.
type Profile struct {
	Core    color.NRGBA
	Outline color.NRGBA

	// Trail and Aura are nil when the type does not use that layer.
	Trail *Effect
	Aura  *Effect

	// TrailSpeedFactor lifts the trail velocity by speed*factor so faster obstacles leave
	// longer trails.
	TrailSpeedFactor float64
	// Swing is the horizontal sway amplitude in pixels per second.
	Swing float64
}

// Profiles maps every concrete type to its profile.
type Profiles map[Type]Profile

// Lookup returns the profile for t, falling back to the built-in profile when the table has no
// entry and to Fire for unknown types.
func (p Profiles) Lookup(t Type) Profile {
	if prof, ok := p[t]; ok {
		return prof
	}
	if !t.Concrete() {
		t = Fire
	}
	return builtinProfiles[t].clone()
}

// Clone returns a deep copy so callers may edit emitters without touching the source.
func (p Profiles) Clone() Profiles {
	out := maps.Clone(p)
	for t, prof := range out {
		out[t] = prof.clone()
	}
	return out
}

func (p Profile) clone() Profile {
	if p.Trail != nil {
		trail := *p.Trail
		p.Trail = &trail
	}
	if p.Aura != nil {
		aura := *p.Aura
		p.Aura = &aura
	}
	return p
}

// DefaultProfiles returns a fresh copy of the built-in profile table.
func DefaultProfiles() Profiles {
	out := make(Profiles, len(builtinProfiles))
	for t, prof := range builtinProfiles {
		out[Type(t)] = prof.clone()
	}
	return out
}

func rgba(r, g, b, a uint8) color.NRGBA {
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func continuous(variance, vel, velVariance geom.Vec2, start, end color.NRGBA, minSize, maxSize, minLife, maxLife, rate float64, maxParticles int) particle.EmitterConfig {
	return particle.EmitterConfig{
		PositionVariance: variance,
		Velocity:         vel,
		VelocityVariance: velVariance,
		StartColor:       start,
		EndColor:         end,
		MinSize:          minSize,
		MaxSize:          maxSize,
		MinLifetime:      minLife,
		MaxLifetime:      maxLife,
		EmissionRate:     rate,
		MaxParticles:     maxParticles,
		Continuous:       true,
	}
}

// builtinProfiles is the static per-type look, indexed by concrete Type.
var builtinProfiles = [...]Profile{
	Fire: {
		Core:    rgba(255, 100, 50, 200),
		Outline: rgba(255, 200, 100, 100),
		Trail: &Effect{
			Emitter: continuous(geom.V(5, 5), geom.V(0, 0), geom.V(20, 10),
				rgba(255, 150, 50, 255), rgba(255, 50, 0, 0), 3, 8, 0.3, 0.8, 30, 100),
			Motion: particle.MotionFlicker,
		},
		Aura: &Effect{
			Emitter: continuous(geom.V(25, 25), geom.V(0, 0), geom.V(10, 10),
				rgba(255, 200, 100, 100), rgba(255, 100, 0, 0), 1, 4, 0.5, 1.0, 40, 150),
		},
		TrailSpeedFactor: 0.3,
		Swing:            30,
	},
	Ice: {
		Core:    rgba(100, 200, 255, 200),
		Outline: rgba(150, 230, 255, 100),
		Trail: &Effect{
			Emitter: continuous(geom.V(3, 3), geom.V(0, -10), geom.V(5, 5),
				rgba(150, 230, 255, 200), rgba(100, 180, 255, 0), 2, 6, 0.5, 1.5, 20, 80),
			Motion: particle.MotionDrift,
		},
	},
	Electric: {
		Core:    rgba(150, 100, 255, 200),
		Outline: rgba(200, 150, 255, 100),
		Aura: &Effect{
			Emitter: continuous(geom.V(20, 20), geom.V(0, 0), geom.V(30, 30),
				rgba(200, 150, 255, 150), rgba(100, 50, 200, 0), 1, 3, 0.2, 0.5, 80, 200),
			Motion: particle.MotionArcPulse,
		},
		Swing: 20,
	},
	Poison: {
		Core:    rgba(100, 255, 100, 200),
		Outline: rgba(200, 255, 100, 100),
		Trail: &Effect{
			Emitter: continuous(geom.V(8, 8), geom.V(0, -5), geom.V(15, 5),
				rgba(100, 255, 100, 150), rgba(50, 150, 50, 0), 4, 10, 0.8, 1.5, 15, 60),
		},
	},
}

// burstConfig is the one-shot emitter used for collision and destruction bursts. Colours run
// from the core colour to the same colour fully transparent.
func burstConfig(at geom.Vec2, core color.NRGBA, variance, velVariance, minSize, maxSize, minLife, maxLife float64, maxParticles int) particle.EmitterConfig {
	faded := core
	faded.A = 0
	return particle.EmitterConfig{
		Position:         at,
		PositionVariance: geom.V(variance, variance),
		VelocityVariance: geom.V(velVariance, velVariance),
		StartColor:       core,
		EndColor:         faded,
		MinSize:          minSize,
		MaxSize:          maxSize,
		MinLifetime:      minLife,
		MaxLifetime:      maxLife,
		MaxParticles:     maxParticles,
	}
}
