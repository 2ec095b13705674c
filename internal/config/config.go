// Package config loads the optional YAML settings file.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-orrery/internal/astro"
	"github.com/litescript/ls-orrery/internal/frameclock"
	"github.com/litescript/ls-orrery/internal/orbit"
)

// Frame rate limits.
const (
	DefaultFPS = 30
	MinFPS     = 1
	MaxFPS     = 120

	// MaxStars bounds the starfield allocated before the UI starts.
	MaxStars = 10000
)

// Label modes accepted in the file.
const (
	LabelsNone    = "none"
	LabelsFocused = "focused"
	LabelsAll     = "all"
)

// ErrInvalid marks a config value that failed validation.
var ErrInvalid = errors.New("invalid config")

// OpError describes a failed load with the file it came from.
type OpError struct {
	Op   string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *OpError) Unwrap() error { return e.Err }

// Config is the resolved application configuration.
type Config struct {
	FPS         int
	TimeStep    frameclock.Mode
	Seed        int64
	StartPaused bool
	Stars       int
	Labels      string
	Scale       astro.ScaleMode
	Speeds      map[string]float64 // canonical body name -> speed
}

// fileConfig is the on-disk shape. Pointers distinguish "absent" from zero.
type fileConfig struct {
	FPS         *int               `yaml:"fps"`
	TimeStep    *string            `yaml:"timestep"`
	Seed        *int64             `yaml:"seed"`
	StartPaused *bool              `yaml:"start_paused"`
	Stars       *int               `yaml:"stars"`
	Labels      *string            `yaml:"labels"`
	Scale       *string            `yaml:"scale"`
	Speeds      map[string]float64 `yaml:"speeds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		FPS:      DefaultFPS,
		TimeStep: frameclock.ModeFixed,
		Stars:    astro.DefaultStarCount,
		Labels:   LabelsAll,
		Scale:    astro.ScaleLinear,
		Speeds:   map[string]float64{},
	}
}

// Load reads a YAML file on top of the defaults. An empty path returns the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, &OpError{Op: "config.load", Path: path, Err: err}
	}

	cfg, err = Parse(b)
	if err != nil {
		return cfg, &OpError{Op: "config.parse", Path: path, Err: err}
	}
	return cfg, nil
}

// Parse decodes YAML bytes on top of the defaults and validates the result.
func Parse(b []byte) (Config, error) {
	cfg := Default()

	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return cfg, err
	}

	if fc.FPS != nil {
		cfg.FPS = *fc.FPS
	}
	if fc.TimeStep != nil {
		mode, err := frameclock.ParseMode(*fc.TimeStep)
		if err != nil {
			return cfg, fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		cfg.TimeStep = mode
	}
	if fc.Seed != nil {
		cfg.Seed = *fc.Seed
	}
	if fc.StartPaused != nil {
		cfg.StartPaused = *fc.StartPaused
	}
	if fc.Stars != nil {
		cfg.Stars = *fc.Stars
	}
	if fc.Labels != nil {
		cfg.Labels = strings.ToLower(*fc.Labels)
	}
	if fc.Scale != nil {
		mode, ok := astro.ParseScaleMode(strings.ToLower(*fc.Scale))
		if !ok {
			return cfg, fmt.Errorf("%w: unknown scale %q", ErrInvalid, *fc.Scale)
		}
		cfg.Scale = mode
	}

	// Sort names so the first bad key reported is stable.
	names := make([]string, 0, len(fc.Speeds))
	for name := range fc.Speeds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		body, _, ok := orbit.Lookup(name)
		if !ok {
			return cfg, fmt.Errorf("%w: unknown body %q in speeds", ErrInvalid, name)
		}
		cfg.Speeds[body.Name] = ClampSpeed(fc.Speeds[name])
	}

	return cfg, cfg.Validate()
}

// Validate checks ranges and names.
func (c Config) Validate() error {
	if c.FPS < MinFPS || c.FPS > MaxFPS {
		return fmt.Errorf("%w: fps %d outside [%d, %d]", ErrInvalid, c.FPS, MinFPS, MaxFPS)
	}
	if c.Stars < 0 || c.Stars > MaxStars {
		return fmt.Errorf("%w: stars %d outside [0, %d]", ErrInvalid, c.Stars, MaxStars)
	}
	switch c.Labels {
	case LabelsNone, LabelsFocused, LabelsAll:
	default:
		return fmt.Errorf("%w: unknown labels mode %q", ErrInvalid, c.Labels)
	}
	return nil
}

// ClampSpeed bounds a speed to the slider range.
func ClampSpeed(v float64) float64 {
	if v < orbit.MinSpeed || math.IsNaN(v) {
		return orbit.MinSpeed
	}
	if v > orbit.MaxSpeed {
		return orbit.MaxSpeed
	}
	return v
}
