package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/glyphfall/internal/automation"
	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/gui"
	"github.com/san-kum/glyphfall/internal/metrics"
	"github.com/san-kum/glyphfall/internal/render"
	"github.com/san-kum/glyphfall/internal/scene"
	"github.com/san-kum/glyphfall/internal/sim"
	"github.com/san-kum/glyphfall/internal/storage"
	"github.com/san-kum/glyphfall/internal/tui"
	"github.com/san-kum/glyphfall/internal/window"
)

var (
	dataDir    string
	configFile string
	preset     string
	theme      string

	fps        float64
	duration   time.Duration
	jitter     float64
	seed       int64
	runs       int
	traceEvery int
	watch      bool
	jsonOut    string

	param     string
	paramMin  float64
	paramMax  float64
	numSteps  int
	sweepTime time.Duration
	eventFile string

	columns []string
	at      time.Duration
	outFile string
	width   int
	height  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "glyphfall [layout]",
		Short:         "decorative physics playground",
		Args:          cobra.MaximumNArgs(1),
		RunE:          runTerminal,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".glyphfall", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&theme, "theme", "flexoki", fmt.Sprintf("terminal theme %v", tui.ThemeNames()))

	tuiCmd := &cobra.Command{
		Use:   "tui [layout]",
		Short: "run a layout in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTerminal,
	}

	guiCmd := &cobra.Command{
		Use:   "gui [layout]",
		Short: "run a layout in a raylib window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, layout, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return gui.Run(cfg, layout)
		},
	}

	windowCmd := &cobra.Command{
		Use:   "window [layout]",
		Short: "run a layout in an ebiten window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, layout, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return window.Run(cfg, layout)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run [layout]",
		Short: "run a layout headless and store the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runHeadless,
	}
	runCmd.Flags().Float64Var(&fps, "fps", config.DefaultFPS, "synthetic display rate")
	runCmd.Flags().DurationVar(&duration, "time", 10*time.Second, "wall time to simulate")
	runCmd.Flags().Float64Var(&jitter, "jitter", 0, "frame interval jitter fraction")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "jitter seed (0 picks one)")
	runCmd.Flags().IntVar(&runs, "runs", 1, "parallel runs with consecutive seeds")
	runCmd.Flags().IntVar(&traceEvery, "every", 6, "keep one trace row per this many steps")
	runCmd.Flags().BoolVar(&watch, "watch", false, "print frames while running")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "also export the run to this JSON file")
	runCmd.Flags().IntVar(&width, "width", 0, "viewport width in pixels")
	runCmd.Flags().IntVar(&height, "height", 0, "viewport height in pixels")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot trace columns",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&columns, "column", []string{"obj0_y"}, "trace columns to plot")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [layout]",
		Short: "render one frame to SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  snapshot,
	}
	snapshotCmd.Flags().DurationVar(&at, "at", 2*time.Second, "simulated time before the frame is taken")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (stdout when empty)")
	snapshotCmd.Flags().IntVar(&width, "width", 0, "viewport width in pixels")
	snapshotCmd.Flags().IntVar(&height, "height", 0, "viewport height in pixels")

	presetsCmd := &cobra.Command{
		Use:   "presets [layout]",
		Short: "list available presets for a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for layout: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	layoutsCmd := &cobra.Command{
		Use:   "layouts",
		Short: "list built-in layouts",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scene.BuiltinNames() {
				fmt.Println(name)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the effective config as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := loadConfig(cmd, nil)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [layout]",
		Short: "sweep a config parameter headless",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&param, "param", "gravity", fmt.Sprintf("parameter to sweep %v", automation.SweepParams()))
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 20, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 5, "number of values")
	sweepCmd.Flags().DurationVar(&sweepTime, "time", 5*time.Second, "wall time per value")
	sweepCmd.Flags().StringVar(&eventFile, "events", "", "scenario file whose first step's events are replayed")

	rootCmd.AddCommand(tuiCmd, guiCmd, windowCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, snapshotCmd, presetsCmd, layoutsCmd, configCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers defaults, the preset, the config file and the layout
// argument, in that order.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, scene.Layout, error) {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Layout = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Layout, preset)
		if p == nil {
			return nil, scene.Layout{}, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Layout))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, scene.Layout{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Layout = args[0]
		}
	}

	if cmd.Flags().Changed("theme") {
		cfg.Theme = theme
	}

	if err := cfg.Validate(); err != nil {
		return nil, scene.Layout{}, err
	}
	layout, err := scene.ResolveLayout(cfg.Layout)
	if err != nil {
		return nil, scene.Layout{}, err
	}
	return cfg, layout, nil
}

func runTerminal(cmd *cobra.Command, args []string) error {
	cfg, layout, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	return tui.Run(cfg, layout)
}

func viewport(cfg *config.Config) (int, int) {
	w, h := cfg.Window.Width, cfg.Window.Height
	if width > 0 {
		w = width
	}
	if height > 0 {
		h = height
	}
	return w, h
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, layout, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("fps") {
		cfg.Run.FPS = fps
	}
	if cmd.Flags().Changed("time") {
		cfg.Run.Duration = duration
	}
	if cmd.Flags().Changed("jitter") {
		cfg.Run.Jitter = jitter
	}
	if cmd.Flags().Changed("seed") {
		cfg.Run.Seed = seed
	}
	if cmd.Flags().Changed("runs") {
		cfg.Run.Runs = runs
	}
	if cfg.Run.Seed == 0 {
		cfg.Run.Seed = time.Now().UnixNano()
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rt, err := engine.Load(ctx, cfg.EngineOptions())
	if err != nil {
		return err
	}

	w, h := viewport(cfg)
	start := time.Now()
	newScene := func() (*scene.Scene, error) {
		return scene.Build(rt, layout, w, h, cfg.SceneOptions(cfg.Scaling, start))
	}

	if cfg.Run.Runs > 1 {
		return runEnsemble(ctx, cfg, newScene, start)
	}

	s, err := newScene()
	if err != nil {
		return err
	}
	collector := metrics.Default(cfg.MaxFrame.Seconds())
	trace := storage.NewTrace(traceEvery)
	s.Driver.AddObserver(collector)
	s.Driver.AddObserver(trace)

	if watch {
		live := tui.NewLiveRenderer(cfg.Layout, s.Driver, os.Stdout, 100, 30, 30)
		s.Driver.AddObserver(live)
		live.Start()
		defer live.Stop()
	}

	fmt.Printf("running %s headless...\n", cfg.Layout)
	began := time.Now()

	result, err := sim.RunHeadless(ctx, s.Driver, cfg.Headless(start))
	if err != nil {
		return err
	}
	elapsed := time.Since(began)

	meta := storage.RunMetadata{
		Layout:   cfg.Layout,
		Seed:     result.Seed,
		FPS:      cfg.Run.FPS,
		Jitter:   cfg.Run.Jitter,
		Timestep: cfg.Timestep.Seconds(),
		Duration: cfg.Run.Duration.Seconds(),
		Width:    w,
		Height:   h,
		Scaling:  cfg.Scaling,
		Objects:  len(s.Objects()),
		Frames:   len(result.Frames),
		Steps:    result.Steps,
		Metrics:  collector.Values(),
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, trace)
	if err != nil {
		return err
	}
	meta.ID = runID

	if jsonOut != "" {
		if err := storage.ExportJSON(jsonOut, meta, trace); err != nil {
			return err
		}
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d  steps: %d  sim time: %.3fs\n", len(result.Frames), result.Steps, result.SimTime)
	fmt.Println("\nmetrics:")
	for _, name := range collector.Names() {
		fmt.Printf("  %s: %.6f\n", name, meta.Metrics[name])
	}

	return nil
}

func runEnsemble(ctx context.Context, cfg *config.Config, newScene func() (*scene.Scene, error), start time.Time) error {
	var mu sync.Mutex
	collectors := make(map[int64]*metrics.Collector)

	build := func(seed int64) (*sim.Driver, error) {
		s, err := newScene()
		if err != nil {
			return nil, err
		}
		c := metrics.Default(cfg.MaxFrame.Seconds())
		s.Driver.AddObserver(c)

		mu.Lock()
		collectors[seed] = c
		mu.Unlock()
		return s.Driver, nil
	}

	fmt.Printf("running %d %s runs...\n", cfg.Run.Runs, cfg.Layout)
	results, err := sim.NewEnsemble(build, cfg.Run.Runs, cfg.Run.Seed).Run(ctx, cfg.Headless(start))
	if err != nil {
		return err
	}

	names := metrics.Default(cfg.MaxFrame.Seconds()).Names()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\tFRAMES\tSTEPS\t%s\n", strings.ToUpper(strings.Join(names, "\t")))
	perMetric := make(map[string][]float64, len(names))
	for _, r := range results {
		vals := collectors[r.Seed].Values()
		row := make([]string, 0, len(names))
		for _, n := range names {
			row = append(row, strconv.FormatFloat(vals[n], 'f', 4, 64))
			perMetric[n] = append(perMetric[n], vals[n])
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", r.Seed, len(r.Frames), r.Steps, strings.Join(row, "\t"))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmean ± std:")
	for _, n := range names {
		mean, std := stat.MeanStdDev(perMetric[n], nil)
		fmt.Printf("  %s: %.6f ± %.6f\n", n, mean, std)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLAYOUT\tTIME\tDURATION\tFPS\tJITTER\tOBJECTS\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.0f\t%.2f\t%d\t%d\n",
			run.ID,
			run.Layout,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.FPS,
			run.Jitter,
			run.Objects,
			run.Steps,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("layout: %s\n\n", meta.Layout)

	for _, name := range columns {
		data, _, err := st.LoadColumn(runID, name)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return fmt.Errorf("no data to plot")
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s vs time", name)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, *meta, trace)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(trace.Rows) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write(append([]string{"time"}, trace.Header...)); err != nil {
		return err
	}
	for i, r := range trace.Rows {
		row := []string{strconv.FormatFloat(trace.Times[i], 'f', 6, 64)}
		for _, val := range r {
			row = append(row, strconv.FormatFloat(val, 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, layout, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	rt, err := engine.Load(context.Background(), cfg.EngineOptions())
	if err != nil {
		return err
	}

	w, h := viewport(cfg)
	start := time.Now()
	s, err := scene.Build(rt, layout, w, h, cfg.SceneOptions(cfg.Scaling, start))
	if err != nil {
		return err
	}

	if at > 0 {
		hc := cfg.Headless(start)
		hc.Duration = at
		hc.Jitter = 0
		if _, err := sim.RunHeadless(context.Background(), s.Driver, hc); err != nil {
			return err
		}
	}

	surface := render.NewSVGSurface(w, h)
	surface.SetBackground(render.MustHex("#FFFCF0"))
	s.Driver.Render(render.NewContext(surface), s.Driver.Clock().Alpha())

	if outFile == "" {
		fmt.Print(surface.String())
		return nil
	}
	if err := os.WriteFile(outFile, []byte(surface.String()), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d shapes)\n", outFile, surface.Shapes())
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	rt, err := engine.Load(context.Background(), cfg.EngineOptions())
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("  %s\n", sc.Description)
	}

	results, err := automation.RunScenario(context.Background(), rt, sc, cfg)
	for i, r := range results {
		fmt.Printf("\nstep %d/%d: %s  frames=%d steps=%d\n", i+1, len(sc.Steps), r.Layout, len(r.Result.Frames), r.Result.Steps)
		for _, name := range sortedKeys(r.Metrics) {
			fmt.Printf("  %s: %.6f\n", name, r.Metrics[name])
		}
	}
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	cfg.Run.Duration = sweepTime

	var events []automation.Event
	if eventFile != "" {
		sc, err := automation.LoadScenario(eventFile)
		if err != nil {
			return err
		}
		if len(sc.Steps) > 0 {
			events = sc.Steps[0].Events
		}
	}

	rt, err := engine.Load(context.Background(), cfg.EngineOptions())
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{Param: param, Min: paramMin, Max: paramMax, NumSteps: numSteps}
	results, err := automation.RunSweep(context.Background(), rt, sweep, cfg, events)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := sortedKeys(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSTEPS\t%s\n", strings.ToUpper(param), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		row := make([]string, 0, len(names))
		for _, n := range names {
			row = append(row, strconv.FormatFloat(r.Metrics[n], 'f', 4, 64))
		}
		fmt.Fprintf(w, "%.4f\t%d\t%s\n", r.ParamValue, r.Steps, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
