package automation

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jakecoffman/cp/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/scene"
	"github.com/san-kum/glyphfall/internal/sim"
)

func runtime(t *testing.T) *engine.Runtime {
	t.Helper()
	rt, err := engine.Load(context.Background(), engine.DefaultOptions())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	return rt
}

func shortConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Run.Duration = 300 * time.Millisecond
	cfg.Window.Width = 800
	cfg.Window.Height = 600
	return cfg
}

func TestLoadScenario(t *testing.T) {
	g := NewWithT(t)
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	data := `name: drop
description: press then scatter
steps:
  - layout: letters
    duration: 2s
    events:
      - at: 500ms
        x: 0.5
        y: 0.5
        press: true
      - at: 1s
        x: 0.25
        y: 0.75
        scatter: true
  - layout: home
    preset: moon
`
	g.Expect(os.WriteFile(path, []byte(data), 0644)).To(Succeed())

	sc, err := LoadScenario(path)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(sc.Name).To(Equal("drop"))
	g.Expect(sc.Steps).To(HaveLen(2))
	g.Expect(sc.Steps[0].Duration).To(Equal(2 * time.Second))
	g.Expect(sc.Steps[0].Events).To(HaveLen(2))
	g.Expect(sc.Steps[0].Events[0].At).To(Equal(500 * time.Millisecond))
	g.Expect(sc.Steps[0].Events[0].Press).To(BeTrue())
	g.Expect(sc.Steps[0].Events[1].Scatter).To(BeTrue())
	g.Expect(sc.Steps[1].Preset).To(Equal("moon"))
}

func TestLoadScenarioMissingFile(t *testing.T) {
	g := NewWithT(t)
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	g.Expect(err).To(HaveOccurred())
}

func TestScriptAppliesEventsAtFrameBoundaries(t *testing.T) {
	g := NewWithT(t)
	layout, _ := scene.Builtin("home")
	cfg := shortConfig()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	s, err := scene.Build(runtime(t), layout, 800, 600, cfg.SceneOptions(cfg.Scaling, start))
	g.Expect(err).NotTo(HaveOccurred())

	// Given out of order on purpose.
	script := NewScript(s, start, []Event{
		{At: 200 * time.Millisecond, X: 0.5, Y: 0.5, Press: true},
		{At: 100 * time.Millisecond, X: 0.25, Y: 0.25},
	})
	s.Driver.AddObserver(script)
	g.Expect(script.Pending()).To(Equal(2))

	hc := cfg.Headless(start)
	hc.Duration = 150 * time.Millisecond
	_, err = sim.RunHeadless(context.Background(), s.Driver, hc)
	g.Expect(err).NotTo(HaveOccurred())

	g.Expect(script.Pending()).To(Equal(1))
	at, pressed := s.Driver.PointerTarget()
	g.Expect(at).To(Equal(cp.Vector{X: 200, Y: 150}))
	g.Expect(pressed).To(BeFalse())

	script.OnFrame(sim.FrameStats{Now: start.Add(250 * time.Millisecond)})
	g.Expect(script.Pending()).To(Equal(0))
	at, pressed = s.Driver.PointerTarget()
	g.Expect(at).To(Equal(cp.Vector{X: 400, Y: 300}))
	g.Expect(pressed).To(BeTrue())
	g.Expect(s.World.Gravity()).To(Equal(cp.Vector{Y: -6}))
}

func TestRunScenario(t *testing.T) {
	g := NewWithT(t)
	sc := &Scenario{Steps: []ScenarioStep{
		{Layout: "letters", Events: []Event{{At: 50 * time.Millisecond, X: 0.5, Y: 0.5, Scatter: true}}},
		{Layout: "home", Preset: "moon", Duration: 200 * time.Millisecond},
	}}

	results, err := RunScenario(context.Background(), runtime(t), sc, shortConfig())
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(2))
	g.Expect(results[0].Layout).To(Equal("letters"))
	g.Expect(results[1].Layout).To(Equal("home"))
	g.Expect(results[0].Result.Steps).To(Equal(18))
	g.Expect(results[1].Result.Steps).To(Equal(12))
	g.Expect(results[0].Metrics).To(HaveKey("peak_speed"))
	g.Expect(results[0].Metrics["peak_speed"]).To(BeNumerically(">", 0))
}

func TestRunScenarioUnknownPreset(t *testing.T) {
	g := NewWithT(t)
	sc := &Scenario{Steps: []ScenarioStep{{Layout: "home", Preset: "nope"}}}

	results, err := RunScenario(context.Background(), runtime(t), sc, shortConfig())
	g.Expect(err).To(MatchError(ContainSubstring("step 1")))
	g.Expect(results).To(BeEmpty())
}

func TestRunSweep(t *testing.T) {
	g := NewWithT(t)
	sweep := &ParameterSweep{Param: "gravity", Min: 0, Max: 10, NumSteps: 3}

	results, err := RunSweep(context.Background(), runtime(t), sweep, shortConfig(), nil)
	g.Expect(err).NotTo(HaveOccurred())
	g.Expect(results).To(HaveLen(3))
	g.Expect(results[0].ParamValue).To(Equal(0.0))
	g.Expect(results[1].ParamValue).To(Equal(5.0))
	g.Expect(results[2].ParamValue).To(Equal(10.0))
	for _, r := range results {
		g.Expect(r.Steps).To(Equal(18))
	}
}

func TestRunSweepRejectsUnknownParam(t *testing.T) {
	g := NewWithT(t)
	sweep := &ParameterSweep{Param: "spin", Min: 0, Max: 1, NumSteps: 2}

	_, err := RunSweep(context.Background(), runtime(t), sweep, shortConfig(), nil)
	g.Expect(err).To(MatchError(ErrUnknownParam))
	g.Expect(SweepParams()).To(ContainElement("gravity"))
}
