// Package scene assembles a world, its decorations and the loop that runs
// them from a layout.
package scene

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/jakecoffman/cp/v2"

	"github.com/san-kum/glyphfall/internal/engine"
	"github.com/san-kum/glyphfall/internal/object"
	"github.com/san-kum/glyphfall/internal/pointer"
	"github.com/san-kum/glyphfall/internal/render"
	"github.com/san-kum/glyphfall/internal/sim"
	"github.com/san-kum/glyphfall/internal/walls"
)

// MobileWidth is the widest viewport, in pixels, laid out as mobile.
const MobileWidth = 768

var (
	HeadingColors = []color.RGBA{render.MustHex("#d14d41"), render.MustHex("#da702c"), render.MustHex("#4385be")}
	LinkColors    = []color.RGBA{render.MustHex("#ce5d97"), render.MustHex("#879a39")}
)

const (
	headingCubeHalfSize = 0.36
	headingCubeGap      = 0.1
	linkHalfHeight      = 0.08
	letterRestitution   = 0.3
)

type Options struct {
	Scaling        float64
	Gravity        cp.Vector
	PressedGravity cp.Vector
	// FlipGravity swaps to PressedGravity while the pointer is held.
	FlipGravity    bool
	WallThickness  float64
	Timestep       time.Duration
	MaxFrame       time.Duration
	ScatterImpulse float64
	Hand           bool
	Pointer        pointer.Options
	// Mobile forces the small-screen sizes regardless of width.
	Mobile bool
	Start  time.Time
}

func DefaultOptions() Options {
	return Options{
		Scaling:        50,
		Gravity:        cp.Vector{Y: 9.8},
		PressedGravity: cp.Vector{Y: -6},
		FlipGravity:    true,
		WallThickness:  walls.DefaultThickness,
		Timestep:       sim.DefaultTimestep,
		MaxFrame:       sim.DefaultMaxFrame,
		ScatterImpulse: 3,
		Hand:           true,
		Pointer:        pointer.DefaultOptions(),
	}
}

type Scene struct {
	Driver  *sim.Driver
	World   *engine.World
	Walls   []*engine.Collider
	Cubes   []*object.PhysicsObject
	Links   []*object.PhysicsObject
	Letters []*object.PhysicsObject
	Braces  []*object.PhysicsObject
	Balls   []*object.PhysicsObject
	Pointer *pointer.Pointer

	Width, Height int
	opts          Options
}

// Build creates a fresh world from rt and fills a width by height pixel
// viewport according to layout.
func Build(rt *engine.Runtime, layout Layout, width, height int, opts Options) (*Scene, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("scene: invalid viewport %dx%d", width, height)
	}
	if opts.Scaling <= 0 {
		return nil, fmt.Errorf("scene: scaling must be positive, got %f", opts.Scaling)
	}
	if opts.Start.IsZero() {
		opts.Start = time.Now()
	}

	world, err := rt.NewWorld(opts.Gravity)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}

	s := &Scene{
		World:  world,
		Driver: sim.NewDriver(world, sim.NewClock(opts.Timestep, opts.MaxFrame, opts.Start)),
		Width:  width,
		Height: height,
		opts:   opts,
	}
	s.Walls = walls.BuildWalls(world, width, height, opts.Scaling, opts.WallThickness)

	mobile := opts.Mobile || width <= MobileWidth
	if layout.Heading != nil {
		s.addHeading(layout.Heading.Pixels(width, height), mobile)
	}
	for i, r := range layout.Links {
		s.addLink(r.Pixels(width, height), LinkColors[i%len(LinkColors)])
	}
	if layout.TextBox != nil {
		s.addLetters(layout.Text, layout.TextBox.Pixels(width, height))
	}
	for _, b := range layout.Braces {
		if err := s.addBrace(b); err != nil {
			return nil, err
		}
	}
	for _, b := range layout.Balls {
		if err := s.addBall(b); err != nil {
			return nil, err
		}
	}

	if opts.Hand {
		p := opts.Pointer
		if p.Now.IsZero() {
			p.Now = opts.Start
		}
		s.Pointer = pointer.New(world, cp.Vector{X: float64(width), Y: float64(height)}, opts.Scaling, p)
		s.Driver.SetPointerProxy(s.Pointer, opts.Scaling)
	}
	if opts.FlipGravity {
		s.Driver.OnPress(s.Press)
	}
	return s, nil
}

func (s *Scene) Options() Options { return s.opts }

// Objects lists every decoration in draw order.
func (s *Scene) Objects() []*object.PhysicsObject {
	return s.Driver.Objects()
}

func (s *Scene) addHeading(r PixelRect, mobile bool) {
	sc := s.opts.Scaling
	for i, c := range HeadingColors {
		opts := object.DefaultCubeOptions(headingCubeHalfSize, headingCubeHalfSize)
		opts.Color = c
		opts.Restitution = 0.8
		opts.Translation = cp.Vector{
			X: r.Left/sc + headingCubeHalfSize + float64(i)*(headingCubeHalfSize*2+headingCubeGap),
			Y: r.Bottom()/sc + headingCubeGap,
		}
		s.Cubes = append(s.Cubes, object.NewCube(s.World, sc, opts))
	}

	half, dx, dy := 0.12, 0.3, 0.6
	if mobile {
		half, dx, dy = 0.08, 0.2, 0.42
	}
	opts := object.DefaultCubeOptions(half, half)
	opts.Translation = cp.Vector{X: r.Right()/sc + dx, Y: r.Bottom()/sc - dy}
	opts.Rotation = math.Pi / 4
	opts.Radius = 2
	s.Cubes = append(s.Cubes, object.NewCube(s.World, sc, opts))

	s.Driver.AddObject(s.Cubes...)
}

func (s *Scene) addLink(r PixelRect, c color.RGBA) {
	sc := s.opts.Scaling
	hx := r.Width / sc / 2
	if hx <= 0 {
		return
	}
	opts := object.DefaultCubeOptions(hx, linkHalfHeight)
	opts.Translation = cp.Vector{X: r.Left/sc + hx, Y: r.Bottom() / sc}
	opts.Color = c
	opts.Radius = 1
	opts.Restitution = 0.2
	opts.Density = 4

	o := object.NewCube(s.World, sc, opts)
	s.Links = append(s.Links, o)
	s.Driver.AddObject(o)
}

// addLetters lays text out as one cell per rune across the box. Spaces
// take a cell but get no body.
func (s *Scene) addLetters(text string, r PixelRect) {
	runes := []rune(text)
	if len(runes) == 0 || r.Width <= 0 || r.Height <= 0 {
		return
	}
	sc := s.opts.Scaling
	cell := r.Width / float64(len(runes))
	hx := cell * 0.85 / sc / 2
	hy := r.Height / sc / 2

	for i, ch := range runes {
		if ch == ' ' {
			continue
		}
		opts := object.DefaultCubeOptions(hx, hy)
		opts.Translation = cp.Vector{
			X: (r.Left + cell*(float64(i)+0.5)) / sc,
			Y: (r.Top + r.Height/2) / sc,
		}
		opts.Restitution = letterRestitution
		o := object.NewCube(s.World, sc, opts)
		s.Letters = append(s.Letters, o)
		s.Driver.AddObject(o)
	}
}

func (s *Scene) addBrace(b BraceSpec) error {
	opts := object.DefaultBraceOptions(b.Scale)
	opts.Translation = s.meters(b.X, b.Y)
	opts.Rotation = b.Rotation
	o := object.NewBrace(s.World, s.opts.Scaling, opts)
	if o == nil {
		return fmt.Errorf("scene: brace scale %f collapses the outline", b.Scale)
	}
	s.Braces = append(s.Braces, o)
	s.Driver.AddObject(o)
	return nil
}

func (s *Scene) addBall(b BallSpec) error {
	opts := object.DefaultBallOptions(b.Radius)
	opts.Translation = s.meters(b.X, b.Y)
	if b.Color != "" {
		c, err := render.ParseHex(b.Color)
		if err != nil {
			return fmt.Errorf("scene: ball: %w", err)
		}
		opts.Color = c
	}
	o := object.NewBall(s.World, s.opts.Scaling, opts)
	s.Balls = append(s.Balls, o)
	s.Driver.AddObject(o)
	return nil
}

func (s *Scene) meters(fx, fy float64) cp.Vector {
	return s.Pixel(fx, fy).Mult(1 / s.opts.Scaling)
}

// Pixel converts viewport fractions to pixels.
func (s *Scene) Pixel(fx, fy float64) cp.Vector {
	return cp.Vector{X: fx * float64(s.Width), Y: fy * float64(s.Height)}
}

// Press swaps gravity while the pointer is held.
func (s *Scene) Press(down bool) {
	if down {
		s.World.SetGravity(s.opts.PressedGravity)
	} else {
		s.World.SetGravity(s.opts.Gravity)
	}
}

// Scatter pushes objects radially away from a pixel position. Letters are
// pushed when the scene has any, otherwise every object.
func (s *Scene) Scatter(px cp.Vector) int {
	from := px.Mult(1 / s.opts.Scaling)
	targets := s.Letters
	if len(targets) == 0 {
		targets = s.Objects()
	}

	n := 0
	for _, o := range targets {
		dir := o.Body.Translation().Sub(from)
		if dir.LengthSq() == 0 {
			continue
		}
		o.ApplyImpulse(dir.Normalize().Mult(s.opts.ScatterImpulse))
		n++
	}
	return n
}
