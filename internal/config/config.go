package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/jakecoffman/cp/v2"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/pointer"
	"github.com/san-kum/glyphfall/internal/scene"
	"github.com/san-kum/glyphfall/internal/sim"
)

const (
	DefaultLayout          = "home"
	DefaultScaling         = 50.0
	DefaultTerminalScaling = 12.0
	DefaultWallThickness   = 8.0
	DefaultScatterImpulse  = 3.0
	DefaultFPS             = 60.0
)

var ErrInvalid = errors.New("config: invalid value")

// Vec is a 2D vector as it appears in YAML.
type Vec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (v Vec) CP() cp.Vector { return cp.Vector{X: v.X, Y: v.Y} }

type Config struct {
	Layout          string        `yaml:"layout"`
	Scaling         float64       `yaml:"scaling"`
	TerminalScaling float64       `yaml:"terminal_scaling"`
	Gravity         Vec           `yaml:"gravity"`
	PressedGravity  Vec           `yaml:"pressed_gravity"`
	FlipGravity     bool          `yaml:"flip_gravity"`
	WallThickness   float64       `yaml:"wall_thickness"`
	Timestep        time.Duration `yaml:"timestep"`
	MaxFrame        time.Duration `yaml:"max_frame"`
	ScatterImpulse  float64       `yaml:"scatter_impulse"`
	Hand            bool          `yaml:"hand"`
	Mobile          bool          `yaml:"mobile"`
	Theme           string        `yaml:"theme"`
	Pointer         PointerConfig `yaml:"pointer"`
	Engine          EngineConfig  `yaml:"engine"`
	Window          WindowConfig  `yaml:"window"`
	Run             RunConfig     `yaml:"run"`
}

type PointerConfig struct {
	LerpFactor  float64       `yaml:"lerp_factor"`
	EnableDelay time.Duration `yaml:"enable_delay"`
	Radius      float64       `yaml:"radius"`
}

type EngineConfig struct {
	Iterations    int           `yaml:"iterations"`
	SleepAfter    time.Duration `yaml:"sleep_after"`
	CollisionSlop float64       `yaml:"collision_slop"`
}

type WindowConfig struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	FPS    int    `yaml:"fps"`
}

type RunConfig struct {
	FPS      float64       `yaml:"fps"`
	Duration time.Duration `yaml:"duration"`
	Jitter   float64       `yaml:"jitter"`
	Seed     int64         `yaml:"seed"`
	Runs     int           `yaml:"runs"`
}

func DefaultConfig() *Config {
	pd := pointer.DefaultOptions()
	ed := engine.DefaultOptions()
	return &Config{
		Layout:          DefaultLayout,
		Scaling:         DefaultScaling,
		TerminalScaling: DefaultTerminalScaling,
		Gravity:         Vec{Y: 9.8},
		PressedGravity:  Vec{Y: -6},
		FlipGravity:     true,
		WallThickness:   DefaultWallThickness,
		Timestep:        sim.DefaultTimestep,
		MaxFrame:        sim.DefaultMaxFrame,
		ScatterImpulse:  DefaultScatterImpulse,
		Hand:            true,
		Theme:           "flexoki",
		Pointer: PointerConfig{
			LerpFactor:  pd.LerpFactor,
			EnableDelay: pd.EnableDelay,
			Radius:      pd.Radius,
		},
		Engine: EngineConfig{
			Iterations:    ed.Iterations,
			SleepAfter:    ed.SleepAfter,
			CollisionSlop: ed.CollisionSlop,
		},
		Window: WindowConfig{
			Title:  "glyphfall",
			Width:  1280,
			Height: 800,
			FPS:    int(DefaultFPS),
		},
		Run: RunConfig{
			FPS:      DefaultFPS,
			Duration: 10 * time.Second,
			Runs:     1,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	switch {
	case c.Scaling <= 0:
		return fmt.Errorf("%w: scaling %f", ErrInvalid, c.Scaling)
	case c.TerminalScaling <= 0:
		return fmt.Errorf("%w: terminal_scaling %f", ErrInvalid, c.TerminalScaling)
	case c.Timestep <= 0:
		return fmt.Errorf("%w: timestep %s", ErrInvalid, c.Timestep)
	case c.MaxFrame < c.Timestep:
		return fmt.Errorf("%w: max_frame %s shorter than timestep", ErrInvalid, c.MaxFrame)
	case c.WallThickness <= 0:
		return fmt.Errorf("%w: wall_thickness %f", ErrInvalid, c.WallThickness)
	case c.Pointer.LerpFactor <= 0 || c.Pointer.LerpFactor > 1:
		return fmt.Errorf("%w: pointer.lerp_factor %f", ErrInvalid, c.Pointer.LerpFactor)
	case c.Pointer.EnableDelay < 0:
		return fmt.Errorf("%w: pointer.enable_delay %s", ErrInvalid, c.Pointer.EnableDelay)
	case c.Run.Runs < 1:
		return fmt.Errorf("%w: run.runs %d", ErrInvalid, c.Run.Runs)
	}
	return nil
}

func (c *Config) EngineOptions() engine.Options {
	return engine.Options{
		Iterations:    c.Engine.Iterations,
		SleepAfter:    c.Engine.SleepAfter,
		CollisionSlop: c.Engine.CollisionSlop,
	}
}

// SceneOptions converts the config for a host drawing at scaling pixels
// per meter.
func (c *Config) SceneOptions(scaling float64, start time.Time) scene.Options {
	return scene.Options{
		Scaling:        scaling,
		Gravity:        c.Gravity.CP(),
		PressedGravity: c.PressedGravity.CP(),
		FlipGravity:    c.FlipGravity,
		WallThickness:  c.WallThickness,
		Timestep:       c.Timestep,
		MaxFrame:       c.MaxFrame,
		ScatterImpulse: c.ScatterImpulse,
		Hand:           c.Hand,
		Mobile:         c.Mobile,
		Start:          start,
		Pointer: pointer.Options{
			LerpFactor:  c.Pointer.LerpFactor,
			EnableDelay: c.Pointer.EnableDelay,
			Radius:      c.Pointer.Radius,
			Now:         start,
		},
	}
}

func (c *Config) Headless(start time.Time) sim.HeadlessConfig {
	return sim.HeadlessConfig{
		FPS:      c.Run.FPS,
		Duration: c.Run.Duration,
		Jitter:   c.Run.Jitter,
		Seed:     c.Run.Seed,
		Start:    start,
	}
}
