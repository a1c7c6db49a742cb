package field

import (
	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/particle"
	"github.com/rs/zerolog"
)

// SpawnY is the vertical position new obstacles start at, just above the visible area.
const SpawnY = -50.0

// SpeedRange is the fall speed interval new obstacles draw from. The spawner reads it and the
// difficulty ramp widens it, so both share one instance.
type SpeedRange struct {
	Min, Max float64
}

// SpawnSystem drops a new obstacle at a random column every Interval seconds.
type SpawnSystem struct {
	Interval float64
	Radius   float64 // keeps spawns fully inside the horizontal bounds
	Speed    *SpeedRange
	Rand     particle.Rand
	Options  []obstacle.Option
	Logger   zerolog.Logger

	timer   float64
	Spawned int
}

func (s *SpawnSystem) Execute(frame *Frame) {
	if s.Interval <= 0 {
		return
	}
	s.timer += frame.DeltaTime
	if s.timer < s.Interval {
		return
	}
	s.timer = 0

	width := frame.Field.Width()
	x := particle.Uniform(s.Rand, s.Radius, width-s.Radius)
	speed := particle.Uniform(s.Rand, s.Speed.Min, s.Speed.Max)
	typ := obstacle.RandomType(s.Rand)

	opts := append([]obstacle.Option{obstacle.WithRand(s.Rand)}, s.Options...)
	frame.Commands.Spawn(obstacle.New(x, SpawnY, speed, typ, opts...))
	s.Spawned++

	if s.Spawned%5 == 0 {
		s.Logger.Debug().
			Int("spawned", s.Spawned).
			Stringer("type", typ).
			Float64("speed", speed).
			Msg("obstacle spawned")
	}
}

// DifficultySystem raises the spawn speed range by Step every Interval seconds. Max is capped
// at Cap and Min stays at least Gap below the cap once it is reached.
type DifficultySystem struct {
	Interval float64
	Step     float64
	Cap      float64
	Gap      float64
	Speed    *SpeedRange
	Logger   zerolog.Logger

	base     SpeedRange
	captured bool
	timer    float64
	Level    int
}

func (s *DifficultySystem) Execute(frame *Frame) {
	if !s.captured {
		s.base = *s.Speed
		s.captured = true
	}
	if s.Interval <= 0 {
		return
	}
	s.timer += frame.DeltaTime
	if s.timer < s.Interval {
		return
	}
	s.timer = 0
	s.Level++

	s.Speed.Min += s.Step
	s.Speed.Max += s.Step
	if s.Speed.Max > s.Cap {
		s.Speed.Max = s.Cap
		s.Speed.Min = min(s.Speed.Min, s.Cap-s.Gap)
	}

	s.Logger.Info().
		Int("level", s.Level).
		Float64("min", s.Speed.Min).
		Float64("max", s.Speed.Max).
		Msg("speed increased")
}

// Reset restores the speed range captured on the first frame and returns to level 0.
func (s *DifficultySystem) Reset() {
	if s.captured {
		*s.Speed = s.base
	}
	s.timer = 0
	s.Level = 0
}

// AdvanceSystem updates every obstacle by the frame delta.
type AdvanceSystem struct{}

func (s *AdvanceSystem) Execute(frame *Frame) {
	for _, o := range frame.Field.All() {
		o.Update(frame.DeltaTime)
	}
}

// CullSystem queues removal of obstacles that finished their lifecycle or fell off screen.
type CullSystem struct {
	Logger  zerolog.Logger
	Removed map[Reason]int
}

func (s *CullSystem) Execute(frame *Frame) {
	if s.Removed == nil {
		s.Removed = make(map[Reason]int)
	}
	height := frame.Field.Height()
	for id, o := range frame.Field.All() {
		var reason Reason
		switch {
		case o.ShouldRemove():
			reason = ReasonFinished
		case o.IsOffScreen(height):
			reason = ReasonOffscreen
		default:
			continue
		}
		frame.Commands.Remove(id, reason)
		s.Removed[reason]++
		s.Logger.Trace().Uint32("seq", id.Seq()).Str("reason", string(reason)).Msg("obstacle culled")
	}
}
