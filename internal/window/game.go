// Package window hosts a scene with ebiten. It is the lighter of the two
// desktop hosts and needs no C toolchain on Windows or macOS.
package window

import (
	"context"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/render"
	"github.com/san-kum/glyphfall/internal/scene"
	"github.com/san-kum/glyphfall/internal/sim"
)

var background = render.MustHex("#FFFCF0")

// Game implements ebiten.Game. Physics advances in Draw so that the
// accumulator sees display time rather than ebiten's tick rate.
type Game struct {
	cfg    *config.Config
	layout scene.Layout
	rt     *engine.Runtime

	scene   *scene.Scene
	surface *Surface
	ctx     *render.Context
	stats   sim.FrameStats
	paused  bool
}

func NewGame(cfg *config.Config, layout scene.Layout) (*Game, error) {
	rt, err := engine.Load(context.Background(), cfg.EngineOptions())
	if err != nil {
		return nil, err
	}
	surface := NewSurface(cfg.Window.Width, cfg.Window.Height, background)
	g := &Game{
		cfg:     cfg,
		layout:  layout,
		rt:      rt,
		surface: surface,
		ctx:     render.NewContext(surface),
	}
	if err := g.reset(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) reset() error {
	w, h := g.surface.Size()
	s, err := scene.Build(g.rt, g.layout, w, h, g.cfg.SceneOptions(g.cfg.Scaling, time.Now()))
	if err != nil {
		return err
	}
	g.scene = s
	return nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.reset(); err != nil {
			return err
		}
	}

	x, y := ebiten.CursorPosition()
	at := cp.Vector{X: float64(x), Y: float64(y)}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) || inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.scene.Scatter(at)
	}
	g.scene.Driver.SetPointer(at, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.surface.Target(screen)
	if g.paused {
		g.scene.Driver.Render(g.ctx, g.stats.Alpha)
	} else {
		g.stats = g.scene.Driver.Frame(time.Now(), g.ctx)
	}

	status := "running"
	if g.paused {
		status = "paused"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  %s  %.0f fps  %d steps  t=%.1fs",
		g.cfg.Layout, status, ebiten.ActualFPS(), g.stats.Steps, g.stats.SimTime))
}

// Layout tracks the window size. Walls stay where the scene was built.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.surface.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Run(cfg *config.Config, layout scene.Layout) error {
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetCursorMode(ebiten.CursorModeHidden)
	ebiten.SetTPS(cfg.Window.FPS)

	g, err := NewGame(cfg, layout)
	if err != nil {
		return err
	}
	return ebiten.RunGame(g)
}
