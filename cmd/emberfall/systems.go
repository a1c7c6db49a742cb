package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/emberfall/field"
	"github.com/plus3/emberfall/geom"
	"github.com/rs/zerolog"
)

const (
	PlayerSize   = 50.0
	PlayerSpeed  = 300.0
	BulletSpeed  = 1000.0
	BulletWidth  = 4.0
	BulletHeight = 12.0
	ShotCooldown = 0.5
	MaxBullets   = 3
)

var (
	backgroundColor = color.NRGBA{R: 30, G: 30, B: 46, A: 255}
	playerColor     = color.NRGBA{R: 88, G: 199, B: 250, A: 255}
	bulletColor     = color.NRGBA{R: 255, G: 255, B: 200, A: 255}
)

// World is the host state the obstacle field does not own: the player and the bullets.
type World struct {
	Player   geom.Rect
	Bullets  []geom.Vec2
	Cooldown float64
	Hits     int
	Over     bool
}

func newWorld(width, height float64) *World {
	w := &World{}
	w.reset(width, height)
	return w
}

func (w *World) reset(width, height float64) {
	w.Player = geom.Rect{
		X: width/2 - PlayerSize/2,
		Y: height - 100,
		W: PlayerSize,
		H: PlayerSize,
	}
	w.Bullets = w.Bullets[:0]
	w.Cooldown = 0
	w.Hits = 0
	w.Over = false
}

func bulletRect(b geom.Vec2) geom.Rect {
	return geom.Rect{X: b.X - BulletWidth/2, Y: b.Y - BulletHeight/2, W: BulletWidth, H: BulletHeight}
}

// Controls reports which actions are held this frame.
type Controls struct {
	Left, Right, Fire bool
}

// KeyboardControls reads A/D, the arrow keys and space.
func KeyboardControls() Controls {
	return Controls{
		Left:  ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Fire:  ebiten.IsKeyPressed(ebiten.KeySpace),
	}
}

// PlayerSystem moves the player horizontally and fires bullets.
type PlayerSystem struct {
	World *World
	Input func() Controls
}

func (s *PlayerSystem) Execute(frame *field.Frame) {
	w := s.World
	dt := frame.DeltaTime
	w.Cooldown = max(w.Cooldown-dt, 0)
	if w.Over {
		return
	}

	in := s.Input()
	if in.Left {
		w.Player.X -= PlayerSpeed * dt
	}
	if in.Right {
		w.Player.X += PlayerSpeed * dt
	}
	w.Player.X = min(max(w.Player.X, 0), frame.Field.Width()-w.Player.W)

	if in.Fire && w.Cooldown == 0 && len(w.Bullets) < MaxBullets {
		w.Bullets = append(w.Bullets, geom.V(w.Player.Center().X, w.Player.Y))
		w.Cooldown = ShotCooldown
	}
}

// BulletSystem moves bullets up and drops those that left the screen.
type BulletSystem struct {
	World *World
}

func (s *BulletSystem) Execute(frame *field.Frame) {
	kept := s.World.Bullets[:0]
	for _, b := range s.World.Bullets {
		b.Y -= BulletSpeed * frame.DeltaTime
		if b.Y+BulletHeight/2 >= 0 {
			kept = append(kept, b)
		}
	}
	s.World.Bullets = kept
}

// CollisionSystem resolves bullet hits and player contact. A bullet destroys the obstacle
// outright; touching the player plays the full destruction and ends the run.
type CollisionSystem struct {
	World  *World
	Logger zerolog.Logger
}

func (s *CollisionSystem) Execute(frame *field.Frame) {
	w := s.World

	kept := w.Bullets[:0]
	for _, b := range w.Bullets {
		hit := false
		for id, o := range frame.Field.Overlapping(bulletRect(b)) {
			o.DestroyImmediately()
			w.Hits++
			hit = true
			s.Logger.Debug().Uint32("seq", id.Seq()).Stringer("type", o.Type()).Msg("obstacle shot")
			break
		}
		if !hit {
			kept = append(kept, b)
		}
	}
	w.Bullets = kept

	if w.Over {
		return
	}
	for id, o := range frame.Field.Overlapping(w.Player) {
		o.TriggerCollisionEffect()
		o.TriggerDestroyEffect()
		w.Over = true
		s.Logger.Info().
			Uint32("seq", id.Seq()).
			Stringer("type", o.Type()).
			Int("hits", w.Hits).
			Float64("elapsed", frame.Elapsed).
			Msg("player hit")
		break
	}
}
