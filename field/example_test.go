package field_test

import (
	"fmt"

	"github.com/plus3/emberfall/field"
	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/particle"
	"github.com/rs/zerolog"
)

// ExampleScheduler wires the standard obstacle pipeline: spawn, difficulty ramp, advance and
// cull. Systems run in registration order and structural changes are applied after the last
// one.
func ExampleScheduler() {
	f := field.New(800, 600)
	scheduler := field.NewScheduler(f, zerolog.Nop())

	speed := &field.SpeedRange{Min: 100, Max: 250}
	rng := particle.NewRand(7)

	spawn := &field.SpawnSystem{Interval: 1.2, Radius: obstacle.CoreRadius, Speed: speed, Rand: rng}
	scheduler.Register(spawn)
	scheduler.Register(&field.DifficultySystem{Interval: 10, Step: 20, Cap: 500, Gap: 50, Speed: speed})
	scheduler.Register(&field.AdvanceSystem{})
	scheduler.Register(&field.CullSystem{})

	for range 10 {
		scheduler.Once(0.5)
	}

	fmt.Println("spawned:", spawn.Spawned)
	fmt.Println("frames:", scheduler.Stats().Frames)
	// Output:
	// spawned: 3
	// frames: 10
}
