// Package tui hosts a scene in the terminal. Every character cell is a 2x4
// braille block, the mouse drives the hand.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/config"
	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/render"
	"github.com/san-kum/glyphfall/internal/scene"
	"github.com/san-kum/glyphfall/internal/sim"
)

// rows used by the header and footer
const chromeRows = 3

type frameMsg time.Time

type loadedMsg struct {
	rt  *engine.Runtime
	err error
}

func frame() tea.Cmd {
	return tea.Tick(16*time.Millisecond, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func loadEngine(opts engine.Options) tea.Cmd {
	return func() tea.Msg {
		rt, err := engine.Load(context.Background(), opts)
		return loadedMsg{rt: rt, err: err}
	}
}

type model struct {
	cfg    *config.Config
	layout scene.Layout
	theme  Theme

	rt      *engine.Runtime
	scene   *scene.Scene
	surface *render.BrailleSurface
	ctx     *render.Context

	width, height int
	sized         bool
	stats         sim.FrameStats
	lastFrame     time.Time
	fps           float64
	paused        bool
	pressed       bool
	err           error
}

func newModel(cfg *config.Config, layout scene.Layout) model {
	return model{cfg: cfg, layout: layout, theme: GetTheme(cfg.Theme), width: 80, height: 24}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(loadEngine(m.cfg.EngineOptions()), frame())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.rt = msg.rt
		if m.sized {
			m.resize()
			m.build(time.Now())
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.sized = true
		m.resize()
		if m.scene == nil {
			m.build(time.Now())
		}
		return m, nil

	case tea.MouseMsg:
		m.mouse(msg)
		return m, nil

	case tea.KeyMsg:
		return m.key(msg)

	case frameMsg:
		now := time.Time(msg)
		if m.scene != nil && !m.paused {
			if !m.lastFrame.IsZero() {
				if dt := now.Sub(m.lastFrame).Seconds(); dt > 0 {
					m.fps = 1.0 / dt
				}
			}
			m.lastFrame = now
			m.stats = m.scene.Driver.Frame(now, m.ctx)
		}
		return m, frame()
	}
	return m, nil
}

func (m *model) canvasSize() (cols, rows int) {
	cols = m.width
	rows = m.height - chromeRows
	if cols < 10 {
		cols = 10
	}
	if rows < 4 {
		rows = 4
	}
	return cols, rows
}

// resize follows the terminal with the surface only. Walls stay where the
// scene was first built.
func (m *model) resize() {
	cols, rows := m.canvasSize()
	if m.surface != nil && m.surface.Cols == cols && m.surface.Rows == rows {
		return
	}
	m.surface = render.NewBrailleSurface(cols, rows)
	m.ctx = render.NewContext(m.surface)
}

// build waits for both the engine and the first terminal size, in either
// order, since walls are placed once.
func (m *model) build(now time.Time) {
	if m.rt == nil || !m.sized || m.surface == nil {
		return
	}
	w, h := m.surface.Size()
	s, err := scene.Build(m.rt, m.layout, w, h, m.cfg.SceneOptions(m.cfg.TerminalScaling, now))
	if err != nil {
		m.err = err
		return
	}
	m.scene = s
	m.lastFrame = time.Time{}
}

// dot converts a cell position to the braille dot at its center.
func dot(x, y int) cp.Vector {
	return cp.Vector{X: float64(x*2 + 1), Y: float64((y-1)*4 + 2)}
}

func (m *model) mouse(msg tea.MouseMsg) {
	if m.scene == nil {
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.pressed = true
		}
		if msg.Button == tea.MouseButtonRight {
			m.scene.Scatter(dot(msg.X, msg.Y))
		}
	case tea.MouseActionRelease:
		m.pressed = false
	}
	m.scene.Driver.SetPointer(dot(msg.X, msg.Y), m.pressed)
}

func (m model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		m.paused = !m.paused
		m.lastFrame = time.Time{}
	case "r":
		m.build(time.Now())
	case "c":
		if m.scene != nil {
			at, _ := m.scene.Driver.PointerTarget()
			m.scene.Scatter(at)
		}
	case "g":
		if m.scene != nil {
			m.pressed = !m.pressed
			at, _ := m.scene.Driver.PointerTarget()
			m.scene.Driver.SetPointer(at, m.pressed)
		}
	}
	return m, nil
}

func (m model) View() string {
	t := m.theme
	primary, text, muted, faint := t.style(t.Primary), t.style(t.Text), t.style(t.Muted), t.style(t.Faint)

	if m.err != nil {
		return "\n   " + t.style(t.Error).Render("error: ") + text.Render(m.err.Error()) + "\n\n   " + muted.Render("q quit") + "\n"
	}
	if m.scene == nil || m.surface == nil {
		return "\n   " + primary.Render("g l y p h f a l l") + "  " + muted.Render("loading physics…") + "\n"
	}

	var b strings.Builder

	status := t.style(t.Running)
	statusIcon, statusText := "●", "running"
	if m.paused {
		status = t.style(t.Paused)
		statusIcon, statusText = "○", "paused"
	}
	b.WriteString(fmt.Sprintf("%s %s  %s  %s  %s\n",
		status.Render(statusIcon), primary.Render(m.cfg.Layout), status.Render(statusText),
		muted.Render(fmt.Sprintf("t=%.1fs", m.stats.SimTime)),
		muted.Render(fmt.Sprintf("%.0ffps  %d steps  α=%.2f", m.fps, m.stats.Steps, m.stats.Alpha))))

	for _, line := range colorize(m.surface, t.Tinted) {
		b.WriteString(line + "\n")
	}

	b.WriteString(faint.Render(strings.Repeat("─", m.surface.Cols)) + "\n")
	b.WriteString(muted.Render("mouse move  click hold gravity  right-click scatter  c scatter  g gravity  space pause  r reset  q quit"))
	return b.String()
}

// colorize renders each braille row, grouping runs of cells that share a
// tint into one styled span. Untinted output is the plain grid.
func colorize(s *render.BrailleSurface, tinted bool) []string {
	lines := make([]string, len(s.Grid))
	for y, row := range s.Grid {
		if !tinted {
			lines[y] = string(row)
			continue
		}
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && s.Tint[y][x] == s.Tint[y][start] {
				continue
			}
			span := string(row[start:x])
			tint := s.Tint[y][start]
			if tint.A == 0 {
				b.WriteString(span)
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(render.Hex(tint))).Render(span))
			}
			start = x
		}
		lines[y] = b.String()
	}
	return lines
}

func Run(cfg *config.Config, layout scene.Layout) error {
	p := tea.NewProgram(newModel(cfg, layout), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err := p.Run()
	return err
}
