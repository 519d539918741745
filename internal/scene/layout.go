package scene

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

var ErrUnknownLayout = errors.New("scene: unknown layout")

// Rect is a box given as fractions of the viewport.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// Pixels scales r to a width by height viewport.
func (r Rect) Pixels(width, height int) PixelRect {
	w, h := float64(width), float64(height)
	return PixelRect{Left: r.X * w, Top: r.Y * h, Width: r.W * w, Height: r.H * h}
}

type PixelRect struct {
	Left, Top, Width, Height float64
}

func (r PixelRect) Right() float64  { return r.Left + r.Width }
func (r PixelRect) Bottom() float64 { return r.Top + r.Height }

type BraceSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	// Scale is meters per outline unit.
	Scale    float64 `yaml:"scale"`
	Rotation float64 `yaml:"rotation"`
}

type BallSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Radius float64 `yaml:"radius"`
	Color  string  `yaml:"color"`
}

// Layout places decorations relative to the text they sit on.
type Layout struct {
	Name    string      `yaml:"name"`
	Heading *Rect       `yaml:"heading,omitempty"`
	Links   []Rect      `yaml:"links,omitempty"`
	Text    string      `yaml:"text,omitempty"`
	TextBox *Rect       `yaml:"text_box,omitempty"`
	Braces  []BraceSpec `yaml:"braces,omitempty"`
	Balls   []BallSpec  `yaml:"balls,omitempty"`
}

var builtin = map[string]Layout{
	"home": {
		Name:    "home",
		Heading: &Rect{X: 0.1, Y: 0.22, W: 0.5, H: 0.12},
		Links: []Rect{
			{X: 0.1, Y: 0.5, W: 0.14, H: 0.05},
			{X: 0.3, Y: 0.5, W: 0.18, H: 0.05},
		},
		Braces: []BraceSpec{{X: 0.82, Y: 0.35, Scale: 0.6}},
	},
	"letters": {
		Name:    "letters",
		Text:    "GLYPHFALL",
		TextBox: &Rect{X: 0.15, Y: 0.35, W: 0.7, H: 0.16},
	},
	"playground": {
		Name:    "playground",
		Heading: &Rect{X: 0.2, Y: 0.15, W: 0.6, H: 0.1},
		Links: []Rect{
			{X: 0.2, Y: 0.4, W: 0.25, H: 0.05},
			{X: 0.55, Y: 0.4, W: 0.25, H: 0.05},
		},
		Braces: []BraceSpec{
			{X: 0.1, Y: 0.3, Scale: 0.5},
			{X: 0.9, Y: 0.3, Scale: 0.5, Rotation: 3.141592653589793},
		},
		Balls: []BallSpec{
			{X: 0.35, Y: 0.65, Radius: 0.3, Color: "#8b7ec8"},
			{X: 0.5, Y: 0.7, Radius: 0.2, Color: "#3aa99f"},
			{X: 0.65, Y: 0.65, Radius: 0.25, Color: "#d0a215"},
		},
	},
}

// Builtin returns a named layout shipped with the binary.
func Builtin(name string) (Layout, error) {
	l, ok := builtin[name]
	if !ok {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, name)
	}
	return l, nil
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtin))
	for name := range builtin {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, err
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("scene: parse layout %s: %w", path, err)
	}
	return l, nil
}

// ResolveLayout treats ref as a builtin name first and a file path second.
func ResolveLayout(ref string) (Layout, error) {
	if l, err := Builtin(ref); err == nil {
		return l, nil
	}
	if _, err := os.Stat(ref); err != nil {
		return Layout{}, fmt.Errorf("%w: %q", ErrUnknownLayout, ref)
	}
	return LoadLayout(ref)
}

func SaveLayout(path string, l Layout) error {
	data, err := yaml.Marshal(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
