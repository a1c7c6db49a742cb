// Package config loads emberfall settings from an optional file and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/plus3/emberfall/field"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment overrides, e.g. EMBERFALL_SPEED_MAX=300.
const EnvPrefix = "EMBERFALL"

// Settings is the full set of tunables for the demo and the stress binary.
type Settings struct {
	LogLevel string `mapstructure:"logLevel"`
	// Seed drives every random draw. Zero picks a random seed at startup.
	Seed     uint64 `mapstructure:"seed"`
	Profiles string `mapstructure:"profiles"`

	Window     WindowConfig     `mapstructure:"window"`
	Spawn      SpawnConfig      `mapstructure:"spawn"`
	Speed      SpeedConfig      `mapstructure:"speed"`
	Difficulty DifficultyConfig `mapstructure:"difficulty"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

type WindowConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

type SpawnConfig struct {
	Interval float64 `mapstructure:"interval"`
	Radius   float64 `mapstructure:"radius"`
}

type SpeedConfig struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// DifficultyConfig controls the speed ramp: every Interval seconds both speed bounds grow by
// Step until the upper bound reaches Max. The lower bound then stays Gap below Max.
type DifficultyConfig struct {
	Interval float64 `mapstructure:"interval"`
	Step     float64 `mapstructure:"step"`
	Max      float64 `mapstructure:"max"`
	Gap      float64 `mapstructure:"gap"`
}

type MetricsConfig struct {
	// Address is the listen address of the /metrics endpoint. Empty disables it.
	Address string `mapstructure:"address"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logLevel", "info")
	v.SetDefault("seed", 0)
	v.SetDefault("profiles", "")

	v.SetDefault("window.width", 800)
	v.SetDefault("window.height", 600)

	v.SetDefault("spawn.interval", 1.2)
	v.SetDefault("spawn.radius", 20.0)

	v.SetDefault("speed.min", 100.0)
	v.SetDefault("speed.max", 250.0)

	v.SetDefault("difficulty.interval", 10.0)
	v.SetDefault("difficulty.step", 20.0)
	v.SetDefault("difficulty.max", 500.0)
	v.SetDefault("difficulty.gap", 50.0)

	v.SetDefault("metrics.address", "")
}

// Default returns the built-in settings, ignoring the environment.
func Default() *Settings {
	v := viper.New()
	setDefaults(v)
	var s Settings
	_ = v.Unmarshal(&s)
	return &s
}

// Load reads settings from path, which may be any format viper understands (yaml, json, toml).
// An empty path loads defaults and environment overrides only.
func Load(path string) (*Settings, error) {
	return load(viper.New(), path)
}

func load(v *viper.Viper, path string) (*Settings, error) {
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate reports every inconsistent setting.
func (s *Settings) Validate() error {
	var errs []error
	if s.Window.Width <= 0 || s.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size must be positive, got %dx%d", s.Window.Width, s.Window.Height))
	}
	if s.Spawn.Interval <= 0 {
		errs = append(errs, fmt.Errorf("spawn interval must be > 0, got %.2f", s.Spawn.Interval))
	}
	if s.Spawn.Radius < 0 || 2*s.Spawn.Radius >= float64(s.Window.Width) {
		errs = append(errs, fmt.Errorf("spawn radius %.1f does not fit a %d pixel wide window", s.Spawn.Radius, s.Window.Width))
	}
	if s.Speed.Min < 0 || s.Speed.Min > s.Speed.Max {
		errs = append(errs, fmt.Errorf("speed range invalid: min(%.1f) max(%.1f)", s.Speed.Min, s.Speed.Max))
	}
	if s.Difficulty.Interval < 0 || s.Difficulty.Step < 0 || s.Difficulty.Gap < 0 {
		errs = append(errs, errors.New("difficulty interval, step and gap must be >= 0"))
	}
	if s.Difficulty.Max < s.Speed.Max {
		errs = append(errs, fmt.Errorf("difficulty max %.1f is below speed max %.1f", s.Difficulty.Max, s.Speed.Max))
	}
	return errors.Join(errs...)
}

// Pipeline maps the settings onto the standard obstacle pipeline.
func (s *Settings) Pipeline() field.PipelineConfig {
	return field.PipelineConfig{
		SpawnInterval:      s.Spawn.Interval,
		Radius:             s.Spawn.Radius,
		Speed:              field.SpeedRange{Min: s.Speed.Min, Max: s.Speed.Max},
		DifficultyInterval: s.Difficulty.Interval,
		DifficultyStep:     s.Difficulty.Step,
		DifficultyCap:      s.Difficulty.Max,
		DifficultyGap:      s.Difficulty.Gap,
	}
}
