// Package config provides configuration loading and access for the ripple demo.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Ripple    RippleConfig    `yaml:"ripple"`
	Scene     SceneConfig     `yaml:"scene"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Autopilot AutopilotConfig `yaml:"autopilot"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// RippleConfig holds the ripple field constants. They are fixed once the
// field is built; changing them means building a new field.
type RippleConfig struct {
	Size           int     `yaml:"size"`            // Side length of the square ripple texture in pixels
	MaxAge         int     `yaml:"max_age"`         // Frames a point lives before removal
	RadiusFraction float64 `yaml:"radius_fraction"` // Blob radius as a fraction of Size
	MotionScale    float64 `yaml:"motion_scale"`    // Drift per frame at full force
	ForceScale     float64 `yaml:"force_scale"`     // Squared pointer distance -> force multiplier
	AttackFraction float64 `yaml:"attack_fraction"` // Share of lifetime spent ramping up
	AlphaScale     float64 `yaml:"alpha_scale"`     // Blob opacity at full intensity
}

// SceneConfig holds the background plane and composite pass settings.
type SceneConfig struct {
	BackgroundRGB [3]uint8   `yaml:"background_rgb"`
	Detail        float64    `yaml:"detail"`
	Spuit         [3]float64 `yaml:"spuit"`
	Seed          float64    `yaml:"seed"`         // 0 = random per run
	Displacement  float64    `yaml:"displacement"` // UV offset at full ripple intensity
	Highlight     float64    `yaml:"highlight"`    // Brightening added at full ripple intensity
	ShaderDir     string     `yaml:"shader_dir"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// AutopilotConfig drives the synthetic pointer used in headless runs.
type AutopilotConfig struct {
	Speed     float64 `yaml:"speed"`     // Noise-space units per second
	Amplitude float64 `yaml:"amplitude"` // Max distance from the centre in normalized units
	Seed      int64   `yaml:"seed"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT           float64 // Seconds per frame at the target FPS
	ScreenW32    float32
	ScreenH32    float32
	RippleRadius float64 // Ripple.Size * Ripple.RadiusFraction
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
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the ripple field cannot be built from.
func (c *Config) validate() error {
	r := c.Ripple
	if r.Size < 1 {
		return fmt.Errorf("ripple.size must be positive, got %d", r.Size)
	}
	if r.MaxAge < 1 {
		return fmt.Errorf("ripple.max_age must be positive, got %d", r.MaxAge)
	}
	if r.AttackFraction < 0 || r.AttackFraction > 1 {
		return fmt.Errorf("ripple.attack_fraction must be in [0,1], got %v", r.AttackFraction)
	}
	if r.RadiusFraction <= 0 {
		return fmt.Errorf("ripple.radius_fraction must be positive, got %v", r.RadiusFraction)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Screen.TargetFPS > 0 {
		c.Derived.DT = 1.0 / float64(c.Screen.TargetFPS)
	} else {
		c.Derived.DT = 1.0 / 60.0
	}
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.RippleRadius = float64(c.Ripple.Size) * c.Ripple.RadiusFraction
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
