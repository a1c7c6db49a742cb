package field

import (
	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/particle"
	"github.com/rs/zerolog"
)

// PipelineConfig holds the tunables of the standard obstacle pipeline.
type PipelineConfig struct {
	SpawnInterval float64
	Radius        float64
	Speed         SpeedRange

	DifficultyInterval float64
	DifficultyStep     float64
	DifficultyCap      float64
	DifficultyGap      float64
}

// Pipeline is a scheduler with the standard systems registered in order: difficulty, spawn,
// advance, cull. Hosts register their own systems after it.
type Pipeline struct {
	Scheduler  *Scheduler
	Speed      *SpeedRange
	Spawn      *SpawnSystem
	Difficulty *DifficultySystem
	Advance    *AdvanceSystem
	Cull       *CullSystem
}

// NewPipeline wires the standard systems for f. Every random draw comes from rng, and opts are
// passed to each spawned obstacle after obstacle.WithRand.
func NewPipeline(f *Field, cfg PipelineConfig, rng particle.Rand, logger zerolog.Logger, opts ...obstacle.Option) *Pipeline {
	speed := cfg.Speed
	p := &Pipeline{
		Scheduler: NewScheduler(f, logger),
		Speed:     &speed,
	}

	p.Difficulty = &DifficultySystem{
		Interval: cfg.DifficultyInterval,
		Step:     cfg.DifficultyStep,
		Cap:      cfg.DifficultyCap,
		Gap:      cfg.DifficultyGap,
		Speed:    p.Speed,
		Logger:   logger.With().Str("system", "difficulty").Logger(),
	}
	p.Spawn = &SpawnSystem{
		Interval: cfg.SpawnInterval,
		Radius:   cfg.Radius,
		Speed:    p.Speed,
		Rand:     rng,
		Options:  opts,
		Logger:   logger.With().Str("system", "spawn").Logger(),
	}
	p.Advance = &AdvanceSystem{}
	p.Cull = &CullSystem{Logger: logger.With().Str("system", "cull").Logger()}

	p.Scheduler.Register(p.Difficulty)
	p.Scheduler.Register(p.Spawn)
	p.Scheduler.Register(p.Advance)
	p.Scheduler.Register(p.Cull)
	return p
}
