// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Collision models.
const (
	ModelVector = "vector" // 1D elastic formula applied to whole velocity vectors
	ModelNormal = "normal" // 1D elastic formula applied along the line of centres
)

// Collision guards.
const (
	GuardOuter = "outer" // skip a pair only when the outer-loop body already collided
	GuardPair  = "pair"  // skip a pair when either body already collided
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Population PopulationConfig `yaml:"population"`
	Body       BodyConfig       `yaml:"body"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Collision  CollisionConfig  `yaml:"collision"`
	Render     RenderConfig     `yaml:"render"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings. Width and height are also the
// initial arena bounds.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Resizable bool   `yaml:"resizable"`
	Title     string `yaml:"title"`
}

// PopulationConfig holds the fixed population size.
type PopulationConfig struct {
	Count int `yaml:"count"`
}

// BodyConfig holds the ranges bodies are randomised from at spawn.
type BodyConfig struct {
	MassMin   int     `yaml:"mass_min"`
	MassMax   int     `yaml:"mass_max"`
	RadiusMin int     `yaml:"radius_min"`
	RadiusMax int     `yaml:"radius_max"`
	SpeedMax  float64 `yaml:"speed_max"`
}

// PhysicsConfig holds integration parameters.
type PhysicsConfig struct {
	DT float64 `yaml:"dt"`
}

// CollisionConfig selects the collision response.
type CollisionConfig struct {
	Model string `yaml:"model"`
	Guard string `yaml:"guard"`
}

// RenderConfig holds drawing options.
type RenderConfig struct {
	Lines        bool    `yaml:"lines"`         // draw a line between every pair of bodies
	HeadingScale float64 `yaml:"heading_scale"` // heading line length per unit of velocity
	Background   []int   `yaml:"background"`    // RGB
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ArenaW, ArenaH   float64    // Screen size as float64
	StatsWindowTicks int32      // StatsWindow * TargetFPS
	Background       color.RGBA // Render.Background as an opaque colour
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Defaults returns a fresh copy of the embedded defaults.
func Defaults() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate rejects configurations that have no sensible degenerate behaviour.
func (c *Config) Validate() error {
	switch {
	case c.Population.Count <= 0:
		return fmt.Errorf("population.count must be positive, got %d: %w", c.Population.Count, ErrInvalidConfig)
	case c.Screen.Width <= 0 || c.Screen.Height <= 0:
		return fmt.Errorf("screen size must be positive, got %dx%d: %w", c.Screen.Width, c.Screen.Height, ErrInvalidConfig)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("screen.target_fps must be positive, got %d: %w", c.Screen.TargetFPS, ErrInvalidConfig)
	case c.Physics.DT <= 0:
		return fmt.Errorf("physics.dt must be positive, got %v: %w", c.Physics.DT, ErrInvalidConfig)
	case c.Body.MassMin <= 0 || c.Body.MassMax < c.Body.MassMin:
		return fmt.Errorf("body mass range [%d, %d] is empty or not positive: %w", c.Body.MassMin, c.Body.MassMax, ErrInvalidConfig)
	case c.Body.RadiusMin <= 0 || c.Body.RadiusMax < c.Body.RadiusMin:
		return fmt.Errorf("body radius range [%d, %d] is empty or not positive: %w", c.Body.RadiusMin, c.Body.RadiusMax, ErrInvalidConfig)
	case c.Body.SpeedMax < 0:
		return fmt.Errorf("body.speed_max must not be negative, got %v: %w", c.Body.SpeedMax, ErrInvalidConfig)
	}

	switch c.Collision.Model {
	case ModelVector, ModelNormal:
	default:
		return fmt.Errorf("unknown collision.model %q: %w", c.Collision.Model, ErrInvalidConfig)
	}
	switch c.Collision.Guard {
	case GuardOuter, GuardPair:
	default:
		return fmt.Errorf("unknown collision.guard %q: %w", c.Collision.Guard, ErrInvalidConfig)
	}

	if n := len(c.Render.Background); n != 0 && n != 3 {
		return fmt.Errorf("render.background needs 3 components, got %d: %w", n, ErrInvalidConfig)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ArenaW = float64(c.Screen.Width)
	c.Derived.ArenaH = float64(c.Screen.Height)

	c.Derived.StatsWindowTicks = int32(c.Telemetry.StatsWindow * float64(c.Screen.TargetFPS))
	if c.Derived.StatsWindowTicks < 1 {
		c.Derived.StatsWindowTicks = 1
	}

	c.Derived.Background = color.RGBA{R: 100, G: 100, B: 100, A: 255}
	if len(c.Render.Background) == 3 {
		c.Derived.Background = color.RGBA{
			R: clampByte(c.Render.Background[0]),
			G: clampByte(c.Render.Background[1]),
			B: clampByte(c.Render.Background[2]),
			A: 255,
		}
	}
}

func clampByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
