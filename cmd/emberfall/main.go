package main

import (
	"context"
	"flag"
	"math/rand/v2"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/emberfall/config"
	debugui_ebiten "github.com/plus3/emberfall/debugui/ebiten"
	"github.com/plus3/emberfall/logging"
	"github.com/plus3/emberfall/metrics"
	"github.com/plus3/emberfall/obstacle"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	configPath := flag.String("config", "", "Path to a settings file (yaml, json or toml).")
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

	seed := settings.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger.Info().
		Uint64("seed", seed).
		Int("width", settings.Window.Width).
		Int("height", settings.Window.Height).
		Msg("starting emberfall")

	backend := debugui_ebiten.NewImguiBackend("emberfall", settings.Window.Width, settings.Window.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)

	reg := prometheus.NewRegistry()
	game := newGame(settings, profiles, seed, backend, reg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if addr := settings.Metrics.Address; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, reg, logger); err != nil {
				logger.Error().Err(err).Msg("metrics endpoint stopped")
			}
		}()
	}

	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal().Err(err).Msg("game exited with error")
	}
	logger.Info().Float64("elapsed", game.pipeline.Scheduler.Elapsed()).Msg("emberfall stopped")
}
