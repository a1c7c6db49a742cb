package particle_test

import (
	"image/color"
	"math"
	"testing"

	"github.com/plus3/emberfall/geom"
	"github.com/plus3/emberfall/particle"
	"github.com/plus3/emberfall/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ember = color.NRGBA{R: 200, G: 100, B: 50, A: 255}

func newParticle(lifetime float64) *particle.Particle {
	p := &particle.Particle{}
	p.Init(geom.V(0, 0), geom.V(10, -20), lifetime, ember, 10)
	return p
}

func TestParticleZeroValueIsDead(t *testing.T) {
	var p particle.Particle
	assert.False(t, p.IsAlive())
	assert.Equal(t, particle.Dead, p.State())

	rec := render.NewRecorder()
	p.Update(1)
	p.Draw(rec)
	assert.Equal(t, 0, rec.Len())
}

func TestParticleInit(t *testing.T) {
	p := newParticle(2)
	p.SetMotion(particle.MotionDrift)
	p.Update(0.5)

	p.Init(geom.V(1, 2), geom.V(3, 4), 1.5, ember, 6)
	assert.Equal(t, particle.Active, p.State())
	assert.Equal(t, geom.V(1, 2), p.Position())
	assert.Equal(t, geom.V(3, 4), p.Velocity())
	assert.Equal(t, 1.5, p.Lifetime())
	assert.Equal(t, 1.5, p.MaxLifetime())
	assert.Equal(t, 6.0, p.Size())
	assert.Equal(t, ember, p.Color())
	assert.Equal(t, particle.MotionDefault, p.Motion(), "init resets the motion profile")
	assert.Equal(t, 1.0, p.LifeRatio())

	t.Run("negative lifetime is clamped", func(t *testing.T) {
		p := newParticle(-1)
		assert.Equal(t, 0.0, p.Lifetime())
		assert.Equal(t, 0.0, p.LifeRatio())
		p.Update(0.01)
		assert.False(t, p.IsAlive())
	})
}

func TestParticleLifecycle(t *testing.T) {
	t.Run("lifetime stays within bounds", func(t *testing.T) {
		p := newParticle(1)
		for range 200 {
			p.Update(1.0 / 60)
			assert.GreaterOrEqual(t, p.Lifetime(), 0.0)
			assert.LessOrEqual(t, p.Lifetime(), p.MaxLifetime())
		}
		assert.False(t, p.IsAlive())
	})

	t.Run("transitions active fading dead once", func(t *testing.T) {
		p := newParticle(1)
		var seen []particle.State
		last := p.State()
		seen = append(seen, last)
		for range 100 {
			p.Update(0.05)
			if p.State() != last {
				last = p.State()
				seen = append(seen, last)
			}
		}
		assert.Equal(t, []particle.State{particle.Active, particle.Fading, particle.Dead}, seen)
	})

	t.Run("dead particles are frozen", func(t *testing.T) {
		p := newParticle(0.1)
		p.Update(0.2)
		require.False(t, p.IsAlive())
		pos := p.Position()
		p.Update(1)
		assert.Equal(t, pos, p.Position())
		assert.Equal(t, 0.0, p.Lifetime())
	})

	t.Run("negative dt does not resurrect", func(t *testing.T) {
		p := newParticle(1)
		p.Update(-5)
		assert.Equal(t, 1.0, p.Lifetime())
	})

	t.Run("NaN dt is ignored", func(t *testing.T) {
		p := newParticle(1)
		p.Update(math.NaN())
		assert.Equal(t, 1.0, p.Lifetime())

		for range 70 {
			p.Update(1.0 / 60)
		}
		assert.False(t, p.IsAlive())
		assert.Equal(t, 0.0, p.Lifetime())
	})

	t.Run("NaN lifetime dies on first update", func(t *testing.T) {
		p := newParticle(math.NaN())
		assert.Equal(t, 0.0, p.MaxLifetime())
		p.Update(1.0 / 60)
		assert.False(t, p.IsAlive())
	})
}

func TestParticleDecay(t *testing.T) {
	p := newParticle(1)
	p.SetVelocity(geom.V(0, 0))

	tests := []struct {
		ratio float64
		color color.NRGBA
		size  float64
		state particle.State
	}{
		{0.75, color.NRGBA{R: 150, G: 75, B: 37, A: 191}, 8.75, particle.Active},
		{0.5, color.NRGBA{R: 100, G: 50, B: 25, A: 127}, 7.5, particle.Active},
		{0.25, color.NRGBA{R: 50, G: 25, B: 12, A: 63}, 6.25, particle.Fading},
	}

	for _, tt := range tests {
		p.Update(0.25)
		assert.InDelta(t, tt.ratio, p.LifeRatio(), 1e-9)
		assert.Equal(t, tt.color, p.Color(), "ratio %.2f", tt.ratio)
		assert.InDelta(t, tt.size, p.Size(), 1e-9, "ratio %.2f", tt.ratio)
		assert.Equal(t, tt.state, p.State())
		assert.Equal(t, ember, p.BaseColor())
		assert.Equal(t, 10.0, p.BaseSize())
	}

	t.Run("fading scales alpha by remaining fade window", func(t *testing.T) {
		rec := render.NewRecorder()
		p.Draw(rec)
		require.Equal(t, 1, rec.Len())
		op := rec.Ops()[0]
		assert.Equal(t, render.OpCircle, op.Kind)
		assert.Equal(t, uint8(52), op.Color.A)
		assert.Equal(t, uint8(50), op.Color.R)
		assert.InDelta(t, 6.25, op.Radius, 1e-9)
	})
}

func TestParticleMotion(t *testing.T) {
	t.Run("default integrates velocity and spin", func(t *testing.T) {
		p := newParticle(5)
		p.SetRotationSpeed(90)
		p.Update(0.5)
		assert.InDelta(t, 5, p.Position().X, 1e-9)
		assert.InDelta(t, -10, p.Position().Y, 1e-9)
		assert.InDelta(t, 45, p.Rotation(), 1e-9)
	})

	t.Run("drift ignores velocity", func(t *testing.T) {
		p := newParticle(5)
		p.SetMotion(particle.MotionDrift)
		p.Update(0.5)
		assert.Equal(t, 0.0, p.Position().X)
		assert.InDelta(t, 10, p.Position().Y, 1e-9)
		assert.Equal(t, 0.0, p.Rotation())
	})

	t.Run("flicker rises and sways", func(t *testing.T) {
		p := newParticle(4)
		p.SetMotion(particle.MotionFlicker)
		p.Update(1)
		// Life ratio after the tick is 0.75.
		assert.InDelta(t, math.Sin(7.5)*10, p.Position().X, 1e-9)
		assert.InDelta(t, -50, p.Position().Y, 1e-9)
	})

	t.Run("arc pulse follows phase", func(t *testing.T) {
		p := newParticle(4)
		p.SetMotion(particle.MotionArcPulse)
		p.Advance(0.1, 0.2)
		assert.InDelta(t, math.Sin(1)*5, p.Position().X, 1e-9)
		assert.InDelta(t, math.Cos(1)*5, p.Position().Y, 1e-9)
	})

	t.Run("decay applies under every profile", func(t *testing.T) {
		for _, m := range []particle.Motion{particle.MotionDefault, particle.MotionFlicker, particle.MotionDrift, particle.MotionArcPulse} {
			p := newParticle(1)
			p.SetMotion(m)
			p.Update(0.5)
			assert.InDelta(t, 7.5, p.Size(), 1e-9, m.String())
			assert.Equal(t, uint8(100), p.Color().R, m.String())
		}
	})

	t.Run("unknown profile falls back to default", func(t *testing.T) {
		p := newParticle(1)
		p.SetMotion(particle.Motion(200))
		assert.Equal(t, particle.MotionDefault, p.Motion())
	})
}

func TestParseMotion(t *testing.T) {
	tests := []struct {
		name    string
		want    particle.Motion
		wantErr bool
	}{
		{"", particle.MotionDefault, false},
		{"default", particle.MotionDefault, false},
		{"Flicker", particle.MotionFlicker, false},
		{" drift ", particle.MotionDrift, false},
		{"arcpulse", particle.MotionArcPulse, false},
		{"spiral", particle.MotionDefault, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := particle.ParseMotion(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParse(t, got.String()))
		})
	}
	assert.Equal(t, "Motion(9)", particle.Motion(9).String())
}

func mustParse(t *testing.T, name string) particle.Motion {
	t.Helper()
	m, err := particle.ParseMotion(name)
	require.NoError(t, err)
	return m
}
