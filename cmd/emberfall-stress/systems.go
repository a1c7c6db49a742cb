package main

import (
	"image/color"

	"github.com/plus3/emberfall/field"
	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/particle"
)

var backgroundColor = color.NRGBA{R: 30, G: 30, B: 46, A: 255}

// Populate places n obstacles at random positions across the whole field so the run starts
// under load instead of waiting for the spawner.
func Populate(f *field.Field, n int, speed *field.SpeedRange, rng particle.Rand, opts ...obstacle.Option) {
	opts = append([]obstacle.Option{obstacle.WithRand(rng)}, opts...)
	for range n {
		x := particle.Uniform(rng, 20, f.Width()-20)
		y := particle.Uniform(rng, field.SpawnY, f.Height())
		v := particle.Uniform(rng, speed.Min, speed.Max)
		f.Add(obstacle.New(x, y, v, obstacle.RandomType(rng), opts...))
	}
}

// HitSystem stands in for a player: at Rate hits per second it picks a live obstacle and
// either shoots it or collides with it, alternating between the two.
type HitSystem struct {
	Rate float64
	Rand particle.Rand

	budget float64
	Hits   int
}

func (s *HitSystem) Execute(frame *field.Frame) {
	if s.Rate <= 0 {
		return
	}
	s.budget += s.Rate * frame.DeltaTime
	for s.budget >= 1 {
		s.budget--
		target := s.pick(frame.Field)
		if target == nil {
			s.budget = 0
			return
		}
		if s.Hits%2 == 0 {
			target.DestroyImmediately()
		} else {
			target.TriggerCollisionEffect()
			target.TriggerDestroyEffect()
		}
		s.Hits++
	}
}

// pick returns a random live obstacle, or nil when none is left.
func (s *HitSystem) pick(f *field.Field) *obstacle.Obstacle {
	var live []*obstacle.Obstacle
	for _, o := range f.All() {
		if o.State() == obstacle.Live {
			live = append(live, o)
		}
	}
	if len(live) == 0 {
		return nil
	}
	return live[s.Rand.IntN(len(live))]
}

// PeakSystem records the largest particle count seen in any frame.
type PeakSystem struct {
	Particles int
}

func (s *PeakSystem) Execute(frame *field.Frame) {
	s.Particles = max(s.Particles, frame.Field.ParticleCount())
}
