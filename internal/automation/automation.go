package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/metrics"
	"github.com/san-kum/glyphfall/internal/scene"
	"github.com/san-kum/glyphfall/internal/sim"
)

var ErrUnknownParam = errors.New("automation: unknown sweep parameter")

// Scenario is a scripted sequence of headless runs.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep runs one layout for Duration while replaying Events. Zero
// fields fall back to the base config.
type ScenarioStep struct {
	Layout   string        `yaml:"layout"`
	Preset   string        `yaml:"preset"`
	Duration time.Duration `yaml:"duration"`
	FPS      float64       `yaml:"fps"`
	Jitter   float64       `yaml:"jitter"`
	Seed     int64         `yaml:"seed"`
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Events   []Event       `yaml:"events"`
}

// Event moves the pointer at a point in wall time. X and Y are fractions of
// the viewport.
type Event struct {
	At      time.Duration `yaml:"at"`
	X       float64       `yaml:"x"`
	Y       float64       `yaml:"y"`
	Press   bool          `yaml:"press"`
	Scatter bool          `yaml:"scatter"`
}

type StepResult struct {
	Layout  string
	Result  *sim.Result
	Metrics map[string]float64
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Script replays events into a scene. It is a sim.Observer: each event is
// applied at the first frame boundary at or after its time, so it takes
// effect from the following frame.
type Script struct {
	scene  *scene.Scene
	start  time.Time
	events []Event
	next   int
}

func NewScript(s *scene.Scene, start time.Time, events []Event) *Script {
	sorted := append([]Event(nil), events...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].At < sorted[j].At })
	return &Script{scene: s, start: start, events: sorted}
}

func (s *Script) OnStep(sim.StepInfo) {}

func (s *Script) OnFrame(stats sim.FrameStats) {
	elapsed := stats.Now.Sub(s.start)
	for s.next < len(s.events) && s.events[s.next].At <= elapsed {
		s.apply(s.events[s.next])
		s.next++
	}
}

// Pending is the number of events not yet applied.
func (s *Script) Pending() int { return len(s.events) - s.next }

func (s *Script) apply(e Event) {
	px := s.scene.Pixel(e.X, e.Y)
	if e.Scatter {
		s.scene.Scatter(px)
	}
	s.scene.Driver.SetPointer(px, e.Press)
}

func stepConfig(base *config.Config, step ScenarioStep) (*config.Config, error) {
	c := *base
	cfg := &c
	if step.Layout != "" {
		cfg.Layout = step.Layout
	}
	if step.Preset != "" {
		p := config.GetPreset(cfg.Layout, step.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for layout %q", step.Preset, cfg.Layout)
		}
		c = *p
		cfg = &c
	}
	if step.Duration > 0 {
		cfg.Run.Duration = step.Duration
	}
	if step.FPS > 0 {
		cfg.Run.FPS = step.FPS
	}
	if step.Jitter > 0 {
		cfg.Run.Jitter = step.Jitter
	}
	if step.Seed != 0 {
		cfg.Run.Seed = step.Seed
	}
	if step.Width > 0 {
		cfg.Window.Width = step.Width
	}
	if step.Height > 0 {
		cfg.Window.Height = step.Height
	}
	return cfg, cfg.Validate()
}

// RunStep builds cfg's layout at the window size and runs it headless.
func RunStep(ctx context.Context, rt *engine.Runtime, cfg *config.Config, events []Event) (*StepResult, error) {
	layout, err := scene.ResolveLayout(cfg.Layout)
	if err != nil {
		return nil, err
	}

	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	s, err := scene.Build(rt, layout, cfg.Window.Width, cfg.Window.Height, cfg.SceneOptions(cfg.Scaling, start))
	if err != nil {
		return nil, err
	}

	collector := metrics.Default(cfg.MaxFrame.Seconds())
	s.Driver.AddObserver(collector)
	if len(events) > 0 {
		s.Driver.AddObserver(NewScript(s, start, events))
	}

	result, err := sim.RunHeadless(ctx, s.Driver, cfg.Headless(start))
	if err != nil {
		return nil, err
	}
	return &StepResult{Layout: cfg.Layout, Result: result, Metrics: collector.Values()}, nil
}

// RunScenario executes every step in order and stops at the first failure.
func RunScenario(ctx context.Context, rt *engine.Runtime, scenario *Scenario, base *config.Config) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		cfg, err := stepConfig(base, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := RunStep(ctx, rt, cfg, step.Events)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, *result)
	}

	return results, nil
}

// ParameterSweep runs one layout across evenly spaced values of a config
// parameter.
type ParameterSweep struct {
	Param    string
	Min      float64
	Max      float64
	NumSteps int
}

type SweepResult struct {
	ParamValue float64
	Steps      int
	Metrics    map[string]float64
}

var sweepParams = map[string]func(c *config.Config, v float64){
	"gravity":         func(c *config.Config, v float64) { c.Gravity.Y = v },
	"pressed_gravity": func(c *config.Config, v float64) { c.PressedGravity.Y = v },
	"scatter_impulse": func(c *config.Config, v float64) { c.ScatterImpulse = v },
	"wall_thickness":  func(c *config.Config, v float64) { c.WallThickness = v },
	"lerp_factor":     func(c *config.Config, v float64) { c.Pointer.LerpFactor = v },
	"fps":             func(c *config.Config, v float64) { c.Run.FPS = v },
	"jitter":          func(c *config.Config, v float64) { c.Run.Jitter = v },
}

func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func RunSweep(ctx context.Context, rt *engine.Runtime, sweep *ParameterSweep, base *config.Config, events []Event) ([]SweepResult, error) {
	set, ok := sweepParams[sweep.Param]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParam, sweep.Param)
	}
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("automation: sweep needs at least one step, got %d", sweep.NumSteps)
	}

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.Max - sweep.Min) / float64(sweep.NumSteps-1)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)
	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.Min + float64(i)*paramStep

		c := *base
		set(&c, paramVal)
		if err := c.Validate(); err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.Param, paramVal, err)
		}

		result, err := RunStep(ctx, rt, &c, events)
		if err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.Param, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Steps:      result.Result.Steps,
			Metrics:    result.Metrics,
		})
	}

	return results, nil
}
