package field_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/plus3/emberfall/field"
	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/particle"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSystem struct {
	executions int
	lastDelta  float64
	lastLen    int
}

func (s *countingSystem) Execute(frame *field.Frame) {
	s.executions++
	s.lastDelta = frame.DeltaTime
	s.lastLen = frame.Field.Len()
}

type spawnOnceSystem struct {
	done bool
}

func (s *spawnOnceSystem) Execute(frame *field.Frame) {
	if s.done {
		return
	}
	s.done = true
	frame.Commands.Spawn(newObstacle(100, 100, obstacle.Ice))
}

type sleepySystem struct{}

func (s *sleepySystem) Execute(*field.Frame) {
	time.Sleep(time.Millisecond)
}

func TestScheduler(t *testing.T) {
	t.Run("systems run in order and commands flush after", func(t *testing.T) {
		f := field.New(800, 600)
		scheduler := field.NewScheduler(f, zerolog.Nop())

		spawner := &spawnOnceSystem{}
		counter := &countingSystem{}
		scheduler.Register(spawner)
		scheduler.Register(counter)

		scheduler.Once(0.5)
		assert.Equal(t, 1, counter.executions)
		assert.Equal(t, 0.5, counter.lastDelta)
		assert.Equal(t, 0, counter.lastLen, "spawn is deferred until the frame ends")
		assert.Equal(t, 1, f.Len())

		scheduler.Once(0.25)
		assert.Equal(t, 2, counter.executions)
		assert.Equal(t, 1, counter.lastLen)
		assert.Equal(t, 0.75, scheduler.Elapsed())
		assert.Same(t, f, scheduler.Field())
	})

	t.Run("negative dt is clamped", func(t *testing.T) {
		scheduler := field.NewScheduler(field.New(800, 600), zerolog.Nop())
		counter := &countingSystem{}
		scheduler.Register(counter)
		scheduler.Once(-1)
		assert.Equal(t, 0.0, counter.lastDelta)
	})

	t.Run("NaN dt is clamped", func(t *testing.T) {
		scheduler := field.NewScheduler(field.New(800, 600), zerolog.Nop())
		counter := &countingSystem{}
		scheduler.Register(counter)
		scheduler.Once(math.NaN())
		assert.Equal(t, 0.0, counter.lastDelta)
		assert.Equal(t, 0.0, scheduler.Elapsed())
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := field.NewScheduler(field.New(800, 600), zerolog.Nop())

		stats := scheduler.Stats()
		assert.Equal(t, 0, stats.SystemCount)

		scheduler.Register(&countingSystem{})
		scheduler.Register(&sleepySystem{})

		stats = scheduler.Stats()
		require.Len(t, stats.Systems, 2)
		assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration, "no executions yet")

		for range 3 {
			scheduler.Once(1.0 / 60)
		}

		stats = scheduler.Stats()
		assert.Equal(t, 2, stats.SystemCount)
		assert.Equal(t, int64(3), stats.Frames)
		assert.Equal(t, int64(6), stats.TotalExecutions)
		assert.Equal(t, "countingSystem", stats.Systems[0].Name)
		assert.Equal(t, "sleepySystem", stats.Systems[1].Name)

		sleepy := stats.Systems[1]
		assert.Equal(t, int64(3), sleepy.ExecutionCount)
		assert.GreaterOrEqual(t, sleepy.MinDuration, time.Millisecond)
		assert.GreaterOrEqual(t, sleepy.MaxDuration, sleepy.MinDuration)
		assert.GreaterOrEqual(t, sleepy.AvgDuration, sleepy.MinDuration)
		assert.LessOrEqual(t, sleepy.AvgDuration, sleepy.MaxDuration)
		assert.GreaterOrEqual(t, sleepy.TotalDuration, 3*time.Millisecond)
		assert.Positive(t, sleepy.LastDuration)
		assert.GreaterOrEqual(t, stats.LastFrame, time.Millisecond)
	})

	t.Run("run until cancelled", func(t *testing.T) {
		scheduler := field.NewScheduler(field.New(800, 600), zerolog.Nop())
		counter := &countingSystem{}
		scheduler.Register(counter)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		scheduler.Run(ctx, 5*time.Millisecond)

		assert.Positive(t, counter.executions)
		assert.Positive(t, scheduler.Elapsed())
	})
}

func newPipeline(seed uint64, speed *field.SpeedRange) (*field.Scheduler, *field.SpawnSystem, *field.CullSystem) {
	f := field.New(800, 600)
	scheduler := field.NewScheduler(f, zerolog.Nop())
	spawn := &field.SpawnSystem{
		Interval: 1.2,
		Radius:   obstacle.CoreRadius,
		Speed:    speed,
		Rand:     particle.NewRand(seed),
	}
	cull := &field.CullSystem{}
	scheduler.Register(spawn)
	scheduler.Register(&field.AdvanceSystem{})
	scheduler.Register(cull)
	return scheduler, spawn, cull
}

func TestSpawnSystem(t *testing.T) {
	speed := &field.SpeedRange{Min: 100, Max: 250}
	scheduler, spawn, _ := newPipeline(4, speed)

	for range 59 {
		scheduler.Once(0.02)
	}
	assert.Equal(t, 0, spawn.Spawned, "first spawn waits a full interval")

	scheduler.Once(0.02)
	scheduler.Once(0.02)
	require.Equal(t, 1, spawn.Spawned)

	for _, o := range scheduler.Field().All() {
		assert.True(t, o.Type().Concrete())
		assert.GreaterOrEqual(t, o.Speed(), 100.0)
		assert.Less(t, o.Speed(), 250.0)
		assert.GreaterOrEqual(t, o.Position().X, obstacle.CoreRadius)
		assert.Less(t, o.Position().X, 800-obstacle.CoreRadius)
		assert.Less(t, o.Position().Y, 0.0)
	}

	for range 10 {
		scheduler.Once(1.2)
	}
	assert.Equal(t, 11, spawn.Spawned)
}

func TestCullSystem(t *testing.T) {
	speed := &field.SpeedRange{Min: 100, Max: 100}
	scheduler, spawn, cull := newPipeline(4, speed)
	spawn.Interval = 0
	f := scheduler.Field()

	falling := f.Add(obstacle.New(100, 590, 100, obstacle.Ice, obstacle.WithRand(particle.NewRand(1))))
	hit := obstacle.New(300, 300, 100, obstacle.Fire, obstacle.WithRand(particle.NewRand(2)))
	hitID := f.Add(hit)
	crashed := obstacle.New(500, 300, 100, obstacle.Poison, obstacle.WithRand(particle.NewRand(3)))
	crashedID := f.Add(crashed)

	hit.DestroyImmediately()
	crashed.TriggerCollisionEffect()
	crashed.TriggerDestroyEffect()

	scheduler.Once(0.1)
	_, ok := f.Get(hitID)
	assert.False(t, ok)
	_, ok = f.Get(crashedID)
	assert.True(t, ok, "crashed obstacle keeps its burst alive")
	_, ok = f.Get(falling)
	assert.True(t, ok)

	for range 20 {
		scheduler.Once(0.1)
	}
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, 2, cull.Removed[field.ReasonFinished])
	assert.Equal(t, 1, cull.Removed[field.ReasonOffscreen])
}

func TestDifficultySystem(t *testing.T) {
	speed := &field.SpeedRange{Min: 100, Max: 250}
	f := field.New(800, 600)
	scheduler := field.NewScheduler(f, zerolog.Nop())
	difficulty := &field.DifficultySystem{Interval: 10, Step: 20, Cap: 500, Gap: 50, Speed: speed}
	scheduler.Register(difficulty)

	scheduler.Once(9.5)
	assert.Equal(t, 0, difficulty.Level)

	scheduler.Once(0.5)
	assert.Equal(t, 1, difficulty.Level)
	assert.Equal(t, field.SpeedRange{Min: 120, Max: 270}, *speed)

	for range 30 {
		scheduler.Once(10)
	}
	assert.Equal(t, 31, difficulty.Level)
	assert.Equal(t, 500.0, speed.Max)
	assert.LessOrEqual(t, speed.Min, 450.0)
	assert.Equal(t, 450.0, speed.Min)

	difficulty.Reset()
	assert.Equal(t, 0, difficulty.Level)
	assert.Equal(t, field.SpeedRange{Min: 100, Max: 250}, *speed)
}
