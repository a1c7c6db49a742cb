package field

import (
	"context"
	"reflect"
	"time"

	"github.com/rs/zerolog"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	TotalExecutions int64
	LastFrame       time.Duration
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler runs registered systems in order against a Field.
type Scheduler struct {
	field       *Field
	systems     []System
	systemStats []*systemStatsInternal
	commands    *Commands
	frames      int64
	elapsed     float64
	lastFrame   time.Duration
	logger      zerolog.Logger
}

// NewScheduler creates a scheduler for the given field.
func NewScheduler(f *Field, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		field:    f,
		systems:  make([]System, 0),
		commands: newCommands(),
		logger:   logger,
	}
}

// Field returns the field the scheduler drives.
func (s *Scheduler) Field() *Field {
	return s.field
}

// Register appends a system to the pipeline.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	name := systemName(system)
	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        name,
		minDuration: time.Duration(1<<63 - 1),
	})
	s.logger.Debug().Str("system", name).Int("position", len(s.systems)-1).Msg("system registered")
}

func systemName(system System) string {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Once executes all registered systems once with the given delta time, then flushes the
// queued commands. A negative or NaN dt is treated as zero.
func (s *Scheduler) Once(dt float64) {
	if !(dt > 0) {
		dt = 0
	}
	frameStart := time.Now()
	s.elapsed += dt
	frame := &Frame{
		DeltaTime: dt,
		Elapsed:   s.elapsed,
		Field:     s.field,
		Commands:  s.commands,
	}

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.commands.Flush(s.field)
	s.frames++
	s.lastFrame = time.Since(frameStart)
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// Elapsed returns the simulated time in seconds.
func (s *Scheduler) Elapsed() float64 {
	return s.elapsed
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		LastFrame:   s.lastFrame,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
			minDuration = internal.minDuration
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
