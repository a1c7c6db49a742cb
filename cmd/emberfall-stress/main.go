package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/plus3/emberfall/config"
	"github.com/plus3/emberfall/field"
	"github.com/plus3/emberfall/logging"
	"github.com/plus3/emberfall/metrics"
	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/particle"
	"github.com/plus3/emberfall/render"
	"github.com/prometheus/client_golang/prometheus"
)

// frameDelta is the simulated step per update, independent of wall-clock speed.
const frameDelta = 1.0 / 60.0

func main() {
	configPath := flag.String("config", "", "Path to a settings file (yaml, json or toml).")
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	obstacleCount := flag.Int("obstacles", 200, "The number of obstacles placed on the field before the run.")
	seed := flag.Uint64("seed", 0, "Random seed. Zero uses the configured seed, or a random one.")
	metricsAddr := flag.String("metrics", "", "Serve /metrics on this address while the test runs.")
	snapshot := flag.String("snapshot", "", "Write a PNG of the final frame to this path.")
	hitRate := flag.Float64("hit-rate", 5, "Obstacles hit per simulated second.")
	flag.Parse()

	settings, err := config.Load(*configPath)
	if err != nil {
		bootLogger := logging.New("info", os.Stderr)
		bootLogger.Fatal().Err(err).Msg("failed to load settings")
	}
	logger := logging.New(settings.LogLevel, os.Stderr)

	profiles := obstacle.DefaultProfiles()
	if settings.Profiles != "" {
		profiles, err = obstacle.LoadProfiles(settings.Profiles)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to load profiles")
		}
	}

	runSeed := *seed
	if runSeed == 0 {
		runSeed = settings.Seed
	}
	if runSeed == 0 {
		runSeed = rand.Uint64()
	}
	if *metricsAddr != "" {
		settings.Metrics.Address = *metricsAddr
	}

	logger.Info().Uint64("seed", runSeed).Msg("starting emberfall stress test")

	// 1. Setup field, pipeline and metrics
	width, height := float64(settings.Window.Width), float64(settings.Window.Height)
	f := field.New(width, height)
	reg := prometheus.NewRegistry()
	collector := metrics.NewCollector(reg)
	f.Observe(collector)

	rng := particle.NewRand(runSeed)
	pipeline := field.NewPipeline(f, settings.Pipeline(), rng, logger, obstacle.WithProfiles(profiles))
	hits := &HitSystem{Rate: *hitRate, Rand: rng}
	peak := &PeakSystem{}
	pipeline.Scheduler.Register(hits)
	pipeline.Scheduler.Register(peak)
	pipeline.Scheduler.Register(&metrics.System{Collector: collector})

	// 2. Populate the field
	logger.Info().Int("obstacles", *obstacleCount).Msg("populating field")
	Populate(f, *obstacleCount, pipeline.Speed, rng, obstacle.WithProfiles(profiles))

	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()
	if addr := settings.Metrics.Address; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, reg, logger); err != nil {
				logger.Error().Err(err).Msg("metrics endpoint stopped")
			}
		}()
	}

	// 3. Run the simulation loop
	report := &Report{
		Duration:  *duration,
		Seed:      runSeed,
		Obstacles: *obstacleCount,
		Systems:   pipeline.Scheduler.Stats().SystemCount,
		HitRate:   *hitRate,
		UpdateTime: Stats{
			Samples: make([]time.Duration, 0),
		},
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	logger.Info().Dur("duration", *duration).Msg("running simulation")
	startTime := time.Now()
	var totalUpdates int64

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			updateStart := time.Now()
			pipeline.Scheduler.Once(frameDelta)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			totalUpdates++
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = totalUpdates
	report.Simulated = pipeline.Scheduler.Elapsed()
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.Spawned = pipeline.Spawn.Spawned
	report.Removed = pipeline.Cull.Removed
	report.Hits = hits.Hits
	report.Remaining = f.Len()
	report.PeakParticles = peak.Particles
	report.Level = pipeline.Difficulty.Level
	report.Scheduler = *pipeline.Scheduler.Stats()

	logger.Info().Int64("updates", totalUpdates).Msg("simulation finished")

	if *snapshot != "" {
		canvas := render.NewCanvas(settings.Window.Width, settings.Window.Height)
		canvas.Clear(backgroundColor)
		f.Draw(canvas)
		if err := canvas.SavePNG(*snapshot); err != nil {
			logger.Error().Err(err).Str("path", *snapshot).Msg("failed to write snapshot")
		} else {
			logger.Info().Str("path", *snapshot).Msg("snapshot written")
		}
	}

	// 4. Generate Report to Console
	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("failed to generate report")
	}
	fmt.Println("--- End of Report ---")
}
