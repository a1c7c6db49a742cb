package particle

import (
	"fmt"
	"math"
	"strings"
)

// Motion selects how a particle moves each tick. The set is closed: every value dispatches
// through a static function table, so behavior stays enumerable.
type Motion uint8

const (
	// MotionDefault integrates velocity and rotation speed.
	MotionDefault Motion = iota
	// MotionFlicker rises steadily while swaying sideways with the particle's life ratio.
	MotionFlicker
	// MotionDrift sinks slowly, ignoring the spawn velocity.
	MotionDrift
	// MotionArcPulse orbits quickly, steered by the owner's pulse phase.
	MotionArcPulse

	motionCount
)

var motionNames = [motionCount]string{
	MotionDefault:  "default",
	MotionFlicker:  "flicker",
	MotionDrift:    "drift",
	MotionArcPulse: "arcpulse",
}

type motionFunc func(p *Particle, dt, phase float64)

var motionTable = [motionCount]motionFunc{
	MotionDefault:  moveBallistic,
	MotionFlicker:  moveFlicker,
	MotionDrift:    moveDrift,
	MotionArcPulse: moveArcPulse,
}

// Valid reports whether m is one of the defined profiles.
func (m Motion) Valid() bool {
	return m < motionCount
}

func (m Motion) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Motion(%d)", uint8(m))
	}
	return motionNames[m]
}

// ParseMotion converts a profile name (case-insensitive) to a Motion. An empty name is the
// default profile.
func ParseMotion(name string) (Motion, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return MotionDefault, nil
	}
	for m, n := range motionNames {
		if n == name {
			return Motion(m), nil
		}
	}
	return MotionDefault, fmt.Errorf("unknown motion profile %q", name)
}

func moveBallistic(p *Particle, dt, _ float64) {
	p.position = p.position.Add(p.velocity.Scale(dt))
	p.rotation += p.rotationSpeed * dt
}

func moveFlicker(p *Particle, dt, _ float64) {
	p.position.X += math.Sin(p.LifeRatio()*10) * 10 * dt
	p.position.Y -= 50 * dt
}

func moveDrift(p *Particle, dt, _ float64) {
	p.position.Y += 20 * dt
}

func moveArcPulse(p *Particle, dt, phase float64) {
	t := phase * 5
	p.position.X += math.Sin(t) * 50 * dt
	p.position.Y += math.Cos(t) * 50 * dt
}
