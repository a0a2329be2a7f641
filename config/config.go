// Package config provides configuration loading and access for the
// background animation engine.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Camera    CameraConfig    `yaml:"camera"`
	Network   NetworkConfig   `yaml:"network"`
	Trails    TrailsConfig    `yaml:"trails"`
	Emitter   EmitterConfig   `yaml:"emitter"`
	Starfield StarfieldConfig `yaml:"starfield"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// RGB is a color with components in [0, 1].
type RGB struct {
	R float32 `yaml:"r"`
	G float32 `yaml:"g"`
	B float32 `yaml:"b"`
}

// Vec holds a 3-component vector in config form.
type Vec struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// CameraConfig holds the perspective rig parameters.
type CameraConfig struct {
	Position    Vec     `yaml:"position"`
	Target      Vec     `yaml:"target"`
	FovYDegrees float32 `yaml:"fov_y_degrees"`
}

// NetworkConfig holds the pointer-reactive node network parameters.
// All durations are in seconds of simulation time.
type NetworkConfig struct {
	NodeCount int `yaml:"node_count"`

	// Soft boundary half-extents; exceeding an axis nudges the velocity
	// component back toward center by BoundaryNudge per tick.
	Bounds        Vec     `yaml:"bounds"`
	BoundaryNudge float32 `yaml:"boundary_nudge"`

	// Initial/respawn velocity magnitude range (units per second).
	SpeedMin float32 `yaml:"speed_min"`
	SpeedMax float32 `yaml:"speed_max"`

	MaxConnectionDistance float32 `yaml:"max_connection_distance"`
	PointHitRadius        float32 `yaml:"point_hit_radius"`
	LineHitRadius         float32 `yaml:"line_hit_radius"`

	FadeDuration     float64 `yaml:"fade_duration"`
	RespawnDuration  float64 `yaml:"respawn_duration"`
	BreakDuration    float64 `yaml:"break_duration"`
	CooldownDuration float64 `yaml:"cooldown_duration"`

	// Depth gradient: DeepColor -> MidColor over the first
	// ColorBreakpoint fraction of depth, then MidColor -> NearColor.
	ColorBreakpoint float32 `yaml:"color_breakpoint"`
	DeepColor       RGB     `yaml:"deep_color"`
	MidColor        RGB     `yaml:"mid_color"`
	NearColor       RGB     `yaml:"near_color"`
	HitColor        RGB     `yaml:"hit_color"`

	PointSize float32 `yaml:"point_size"`
}

// TrailsConfig holds the chaotic-attractor trail field parameters.
type TrailsConfig struct {
	Count       int     `yaml:"count"`
	TrailLength int     `yaml:"trail_length"`
	DTBase      float32 `yaml:"dt_base"`
	DTJitter    float32 `yaml:"dt_jitter"`

	// SpawnRadius bounds the random initial condition around the
	// attractor's wing region.
	SpawnRadius float32 `yaml:"spawn_radius"`

	// Color encodes local speed: lerp(SlowColor, FastColor,
	// min(1, |step| / ReferenceSpeed)).
	ReferenceSpeed float32 `yaml:"reference_speed"`
	SlowColor      RGB     `yaml:"slow_color"`
	FastColor      RGB     `yaml:"fast_color"`

	// Comet-tail fade: opacity[i] = BaseOpacity * (1 - i/len)^FadeExponent.
	BaseOpacity  float32 `yaml:"base_opacity"`
	FadeExponent float32 `yaml:"fade_exponent"`

	// World-space placement of the attractor (it lives in its own
	// coordinate frame and is scaled/offset for rendering).
	Scale  float32 `yaml:"scale"`
	Offset Vec     `yaml:"offset"`
}

// EmitterConfig holds the pooled particle emitter parameters.
type EmitterConfig struct {
	Capacity   int `yaml:"capacity"`
	EventSlots int `yaml:"event_slots"`

	// Particles emitted per active event per tick.
	EmissionRate int `yaml:"emission_rate"`

	LifetimeMin float32 `yaml:"lifetime_min"`
	LifetimeMax float32 `yaml:"lifetime_max"`

	// Spawn jitter radius around the event path position.
	Jitter float32 `yaml:"jitter"`

	// Random drift velocity magnitude (units per second).
	Drift float32 `yaml:"drift"`

	SizeMin float32 `yaml:"size_min"`
	SizeMax float32 `yaml:"size_max"`

	// Ambient bursts: mean seconds between bursts and burst length.
	BurstIntervalMean float64 `yaml:"burst_interval_mean"`
	BurstDuration     float64 `yaml:"burst_duration"`

	Color RGB `yaml:"color"`
}

// StarfieldConfig holds the background starfield parameters.
type StarfieldConfig struct {
	Count     int     `yaml:"count"`
	RadiusMin float32 `yaml:"radius_min"`
	RadiusMax float32 `yaml:"radius_max"`

	// Rotation about the Y axis in radians per second.
	RotateSpeed float32 `yaml:"rotate_speed"`

	TwinkleSpeed float32 `yaml:"twinkle_speed"`
	TwinkleScale float32 `yaml:"twinkle_scale"`
	BaseOpacity  float32 `yaml:"base_opacity"`

	SizeMin float32 `yaml:"size_min"`
	SizeMax float32 `yaml:"size_max"`

	Color RGB `yaml:"color"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	// WorstCaseSegments is the line-buffer capacity for the network:
	// every unordered pair broken into two sub-segments.
	WorstCaseSegments int

	// TrailSegments is the fixed per-tick segment count of the trail field.
	TrailSegments int

	Aspect float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
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
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// Recompute refreshes derived values after in-place edits.
func (c *Config) Recompute() {
	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	n := c.Network.NodeCount
	c.Derived.WorstCaseSegments = n * (n - 1)

	if c.Trails.TrailLength > 1 {
		c.Derived.TrailSegments = c.Trails.Count * (c.Trails.TrailLength - 1)
	}

	if c.Screen.Height > 0 {
		c.Derived.Aspect = float32(c.Screen.Width) / float32(c.Screen.Height)
	} else {
		c.Derived.Aspect = 1
	}
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
