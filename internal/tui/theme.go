package tui

import "github.com/charmbracelet/lipgloss"

// Theme colors the chrome around the canvas. Shapes keep their own tints
// unless Tinted is false.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Faint   lipgloss.Color
	Running lipgloss.Color
	Paused  lipgloss.Color
	Error   lipgloss.Color
	Tinted  bool
}

var (
	ThemeFlexoki = Theme{
		Name:    "flexoki",
		Primary: lipgloss.Color("#3AA99F"),
		Text:    lipgloss.Color("#CECDC3"),
		Muted:   lipgloss.Color("#878580"),
		Faint:   lipgloss.Color("#403E3C"),
		Running: lipgloss.Color("#879A39"),
		Paused:  lipgloss.Color("#D0A215"),
		Error:   lipgloss.Color("#D14D41"),
		Tinted:  true,
	}

	ThemeMono = Theme{
		Name:    "mono",
		Primary: lipgloss.Color("255"),
		Text:    lipgloss.Color("252"),
		Muted:   lipgloss.Color("242"),
		Faint:   lipgloss.Color("238"),
		Running: lipgloss.Color("255"),
		Paused:  lipgloss.Color("242"),
		Error:   lipgloss.Color("196"),
	}

	ThemeRetro = Theme{
		Name:    "retro",
		Primary: lipgloss.Color("#00ff00"),
		Text:    lipgloss.Color("#00cc00"),
		Muted:   lipgloss.Color("#008800"),
		Faint:   lipgloss.Color("#005500"),
		Running: lipgloss.Color("#88ff88"),
		Paused:  lipgloss.Color("#ffff00"),
		Error:   lipgloss.Color("#ff0000"),
	}

	Themes = []Theme{ThemeFlexoki, ThemeMono, ThemeRetro}
)

// GetTheme falls back to flexoki for unknown names.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeFlexoki
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

func (t Theme) style(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}
