// Package gui hosts a scene in a raylib window.
package gui

import (
	"context"
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/render"
	"github.com/san-kum/glyphfall/internal/scene"
	"github.com/san-kum/glyphfall/internal/sim"
)

var (
	ColBg      = render.MustHex("#FFFCF0")
	ColText    = rl.NewColor(111, 110, 105, 255)
	ColTextDim = rl.NewColor(183, 181, 172, 255)
)

type App struct {
	cfg    *config.Config
	layout scene.Layout
	rt     *engine.Runtime

	Scene   *scene.Scene
	surface *Surface
	ctx     *render.Context
	stats   sim.FrameStats

	Running bool
	pressed bool
	quit    bool
}

func initWindow(w config.WindowConfig) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	rl.SetTargetFPS(int32(w.FPS))
	rl.SetExitKey(0)
	rl.HideCursor()
}

// NewApp loads the engine and builds the layout at the current window size.
func NewApp(cfg *config.Config, layout scene.Layout) (*App, error) {
	rt, err := engine.Load(context.Background(), cfg.EngineOptions())
	if err != nil {
		return nil, err
	}
	surface := NewSurface(rl.GetScreenWidth(), rl.GetScreenHeight(), ColBg)
	app := &App{
		cfg:     cfg,
		layout:  layout,
		rt:      rt,
		surface: surface,
		ctx:     render.NewContext(surface),
		Running: true,
	}
	if err := app.reset(); err != nil {
		return nil, err
	}
	return app, nil
}

// Run opens a window and blocks until it is closed.
func Run(cfg *config.Config, layout scene.Layout) error {
	initWindow(cfg.Window)
	defer rl.CloseWindow()

	app, err := NewApp(cfg, layout)
	if err != nil {
		return err
	}
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) reset() error {
	w, h := a.surface.Size()
	s, err := scene.Build(a.rt, a.layout, w, h, a.cfg.SceneOptions(a.cfg.Scaling, time.Now()))
	if err != nil {
		return err
	}
	a.Scene = s
	a.pressed = false
	return nil
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.reset(); err != nil {
			a.quit = true
			return
		}
	}

	// Walls stay where the scene was built; only the drawable area follows.
	if rl.IsWindowResized() {
		a.surface.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
	}

	m := rl.GetMousePosition()
	at := cp.Vector{X: float64(m.X), Y: float64(m.Y)}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyC) {
		a.Scene.Scatter(at)
	}
	a.pressed = rl.IsMouseButtonDown(rl.MouseButtonLeft)
	a.Scene.Driver.SetPointer(at, a.pressed)
}

func (a *App) Draw() {
	rl.BeginDrawing()

	if a.Running {
		a.stats = a.Scene.Driver.Frame(time.Now(), a.ctx)
	} else {
		a.Scene.Driver.Render(a.ctx, a.stats.Alpha)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	w, h := a.surface.Size()

	rl.DrawText(fmt.Sprintf(":: %s", a.cfg.Layout), 20, 16, 16, ColText)

	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	rl.DrawText(status, int32(w)-100, 16, 16, ColText)

	rl.DrawText(fmt.Sprintf("%d FPS  %d steps  t=%.1fs", rl.GetFPS(), a.stats.Steps, a.stats.SimTime), 20, int32(h)-28, 14, ColTextDim)
	rl.DrawText("[SPACE] PAUSE  [R] RESET  [C] SCATTER  [Q] QUIT", int32(w)-420, int32(h)-28, 14, ColTextDim)
}
