package obstacle

import (
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/plus3/emberfall/geom"
	"github.com/plus3/emberfall/particle"
	"gopkg.in/yaml.v3"
)

// ProfileFile is the YAML form of a single profile. Absent fields keep the built-in value and
// an explicit `trail: null` or `aura: null` disables that layer.
//
//	fire:
//	  core: [255, 100, 50, 200]
//	  swing: 45
//	  trail:
//	    rate: 60
//	    motion: flicker
type ProfileFile struct {
	Core             [4]uint8    `yaml:"core"`
	Outline          [4]uint8    `yaml:"outline"`
	Swing            float64     `yaml:"swing"`
	TrailSpeedFactor float64     `yaml:"trailSpeedFactor"`
	Trail            *EffectFile `yaml:"trail"`
	Aura             *EffectFile `yaml:"aura"`
}

// EffectFile is the YAML form of a continuous effect.
type EffectFile struct {
	Motion           string     `yaml:"motion"`
	PositionVariance [2]float64 `yaml:"positionVariance"`
	Velocity         [2]float64 `yaml:"velocity"`
	VelocityVariance [2]float64 `yaml:"velocityVariance"`
	StartColor       [4]uint8   `yaml:"startColor"`
	EndColor         [4]uint8   `yaml:"endColor"`
	Size             [2]float64 `yaml:"size"`
	Lifetime         [2]float64 `yaml:"lifetime"`
	Rate             float64    `yaml:"rate"`
	Max              int        `yaml:"max"`
}

// LoadProfiles reads a YAML profile table keyed by type name and overlays it on the built-in
// profiles.
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read obstacle profiles: %w", err)
	}
	profiles, err := ParseProfiles(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load obstacle profiles from %s: %w", path, err)
	}
	return profiles, nil
}

// ParseProfiles decodes a YAML profile table and overlays it on the built-in profiles.
func ParseProfiles(data []byte) (Profiles, error) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse obstacle profiles: %w", err)
	}

	profiles := DefaultProfiles()
	for name, node := range raw {
		t, err := ParseType(name)
		if err != nil {
			return nil, err
		}
		if !t.Concrete() {
			return nil, fmt.Errorf("profile %q: random has no profile of its own", name)
		}

		file := toFile(profiles[t])
		if err := node.Decode(&file); err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		if err := file.Validate(); err != nil {
			return nil, fmt.Errorf("invalid profile %q: %w", name, err)
		}
		prof, err := file.profile()
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		profiles[t] = prof
	}
	return profiles, nil
}

// Validate checks that ranges are ordered and rates are non-negative.
func (f *ProfileFile) Validate() error {
	if f.Swing < 0 {
		return fmt.Errorf("swing must be >= 0, got %.2f", f.Swing)
	}
	var errs []error
	if f.Trail != nil {
		if err := f.Trail.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("trail: %w", err))
		}
	}
	if f.Aura != nil {
		if err := f.Aura.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("aura: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Validate checks a single effect.
func (e *EffectFile) Validate() error {
	if e.Size[0] > e.Size[1] {
		return fmt.Errorf("size range invalid: min(%.2f) > max(%.2f)", e.Size[0], e.Size[1])
	}
	if e.Lifetime[0] > e.Lifetime[1] {
		return fmt.Errorf("lifetime range invalid: min(%.2f) > max(%.2f)", e.Lifetime[0], e.Lifetime[1])
	}
	if e.Rate < 0 {
		return fmt.Errorf("rate must be >= 0, got %.2f", e.Rate)
	}
	if e.Max < 0 {
		return fmt.Errorf("max must be >= 0, got %d", e.Max)
	}
	return nil
}

func (f *ProfileFile) profile() (Profile, error) {
	p := Profile{
		Core:             toColor(f.Core),
		Outline:          toColor(f.Outline),
		Swing:            f.Swing,
		TrailSpeedFactor: f.TrailSpeedFactor,
	}
	var err error
	if p.Trail, err = f.Trail.effect(); err != nil {
		return Profile{}, fmt.Errorf("trail: %w", err)
	}
	if p.Aura, err = f.Aura.effect(); err != nil {
		return Profile{}, fmt.Errorf("aura: %w", err)
	}
	return p, nil
}

func (e *EffectFile) effect() (*Effect, error) {
	if e == nil {
		return nil, nil
	}
	motion, err := particle.ParseMotion(e.Motion)
	if err != nil {
		return nil, err
	}
	return &Effect{
		Motion: motion,
		Emitter: particle.EmitterConfig{
			PositionVariance: toVec(e.PositionVariance),
			Velocity:         toVec(e.Velocity),
			VelocityVariance: toVec(e.VelocityVariance),
			StartColor:       toColor(e.StartColor),
			EndColor:         toColor(e.EndColor),
			MinSize:          e.Size[0],
			MaxSize:          e.Size[1],
			MinLifetime:      e.Lifetime[0],
			MaxLifetime:      e.Lifetime[1],
			EmissionRate:     e.Rate,
			MaxParticles:     e.Max,
			Continuous:       true,
		},
	}, nil
}

func toFile(p Profile) ProfileFile {
	return ProfileFile{
		Core:             fromColor(p.Core),
		Outline:          fromColor(p.Outline),
		Swing:            p.Swing,
		TrailSpeedFactor: p.TrailSpeedFactor,
		Trail:            toEffectFile(p.Trail),
		Aura:             toEffectFile(p.Aura),
	}
}

func toEffectFile(e *Effect) *EffectFile {
	if e == nil {
		return nil
	}
	cfg := e.Emitter
	return &EffectFile{
		Motion:           e.Motion.String(),
		PositionVariance: fromVec(cfg.PositionVariance),
		Velocity:         fromVec(cfg.Velocity),
		VelocityVariance: fromVec(cfg.VelocityVariance),
		StartColor:       fromColor(cfg.StartColor),
		EndColor:         fromColor(cfg.EndColor),
		Size:             [2]float64{cfg.MinSize, cfg.MaxSize},
		Lifetime:         [2]float64{cfg.MinLifetime, cfg.MaxLifetime},
		Rate:             cfg.EmissionRate,
		Max:              cfg.MaxParticles,
	}
}

func toColor(c [4]uint8) color.NRGBA   { return color.NRGBA{R: c[0], G: c[1], B: c[2], A: c[3]} }
func fromColor(c color.NRGBA) [4]uint8 { return [4]uint8{c.R, c.G, c.B, c.A} }
func toVec(v [2]float64) geom.Vec2     { return geom.V(v[0], v[1]) }
func fromVec(v geom.Vec2) [2]float64   { return [2]float64{v.X, v.Y} }
