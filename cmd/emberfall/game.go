package main

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/emberfall/config"
	"github.com/plus3/emberfall/debugui"
	debugui_ebiten "github.com/plus3/emberfall/debugui/ebiten"
	"github.com/plus3/emberfall/field"
	"github.com/plus3/emberfall/logging"
	"github.com/plus3/emberfall/metrics"
	"github.com/plus3/emberfall/obstacle"
	"github.com/plus3/emberfall/particle"
	renderebiten "github.com/plus3/emberfall/render/ebiten"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

// maxFrameDelta bounds the simulated step after a stall, e.g. while the window is dragged.
const maxFrameDelta = 0.1

// Game implements ebiten.Game on top of the obstacle pipeline.
type Game struct {
	field    *field.Field
	pipeline *field.Pipeline
	world    *World
	overlay  *debugui.OverlaySystem
	backend  *debugui_ebiten.ImguiBackend
	timer    *debugui.FrameTimer
	interval float64
	logger   zerolog.Logger
}

func newGame(settings *config.Settings, profiles obstacle.Profiles, seed uint64, backend *debugui_ebiten.ImguiBackend, reg prometheus.Registerer, logger zerolog.Logger) *Game {
	width, height := float64(settings.Window.Width), float64(settings.Window.Height)
	f := field.New(width, height)

	collector := metrics.NewCollector(reg)
	f.Observe(collector)

	rng := particle.NewRand(seed)
	pipeline := field.NewPipeline(f, settings.Pipeline(), rng, logger, obstacle.WithProfiles(profiles))

	world := newWorld(width, height)
	pipeline.Scheduler.Register(&PlayerSystem{World: world, Input: KeyboardControls})
	pipeline.Scheduler.Register(&BulletSystem{World: world})
	pipeline.Scheduler.Register(&CollisionSystem{
		World:  world,
		Logger: logging.Sampled(logger.With().Str("system", "collision").Logger()),
	})
	pipeline.Scheduler.Register(&metrics.System{Collector: collector})

	overlay := debugui.Standard(pipeline.Scheduler, &debugui.Tuning{
		Spawn:      pipeline.Spawn,
		Difficulty: pipeline.Difficulty,
		Field:      f,
	})
	pipeline.Scheduler.Register(overlay)

	return &Game{
		field:    f,
		pipeline: pipeline,
		world:    world,
		overlay:  overlay,
		backend:  backend,
		timer:    debugui.NewFrameTimer(),
		interval: settings.Spawn.Interval,
		logger:   logger,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.overlay.Toggle()
	}
	if g.world.Over && inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restart()
	}

	wasOver := g.world.Over
	g.backend.Step(g.pipeline.Scheduler, g.timer.Delta(maxFrameDelta))
	if g.world.Over && !wasOver {
		g.interval = g.pipeline.Spawn.Interval
		g.pipeline.Spawn.Interval = 0
	}
	return nil
}

func (g *Game) restart() {
	g.field.Clear()
	g.world.reset(g.field.Width(), g.field.Height())
	g.pipeline.Difficulty.Reset()
	g.pipeline.Spawn.Interval = g.interval
	g.logger.Info().Msg("run restarted")
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	surface := renderebiten.NewScreen(screen)
	g.field.Draw(surface)
	surface.FillRect(g.world.Player, playerColor)
	for _, b := range g.world.Bullets {
		surface.FillRect(bulletRect(b), bulletColor)
	}

	status := fmt.Sprintf("hits: %d  speed: %.0f-%.0f  level: %d\nA/D move, space fire, F1 debug",
		g.world.Hits, g.pipeline.Speed.Min, g.pipeline.Speed.Max, g.pipeline.Difficulty.Level)
	if g.world.Over {
		status += "\nGAME OVER - press R to restart"
	}
	ebitenutil.DebugPrint(screen, status)

	if g.overlay.Visible {
		g.backend.DrawOverlay(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return int(g.field.Width()), int(g.field.Height())
}
