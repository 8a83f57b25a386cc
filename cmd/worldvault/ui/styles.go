// Package ui provides the interactive interface for worldvault: a world
// picker, a live backup progress view, and a terminal result screen.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette. Grass green for the brand, with semantic colors shared by
// both themes.
var (
	// Light mode
	LightForeground = lipgloss.Color("#1c2b21")
	LightAccent     = lipgloss.Color("#3fa34d")
	LightMuted      = lipgloss.Color("#8a948c")
	LightBorder     = lipgloss.Color("#d4ddd6")

	// Dark mode
	DarkForeground = lipgloss.Color("#e8efe9")
	DarkAccent     = lipgloss.Color("#6fcf7c")
	DarkMuted      = lipgloss.Color("#5e6b61")
	DarkBorder     = lipgloss.Color("#2e3a31")

	// Semantic colors, same in both modes
	Success = lipgloss.Color("#6fcf7c")
	Failure = lipgloss.Color("#e05252")
	Warning = lipgloss.Color("#e0b341")
)

// Theme holds the current color scheme.
type Theme struct {
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme.
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Accent:     LightAccent,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme.
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Accent:     DarkAccent,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// Styles bundles the lipgloss styles used by the views.
type Styles struct {
	Theme Theme

	Title    lipgloss.Style
	Tagline  lipgloss.Style
	Platform lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Box      lipgloss.Style
}

// NewStyles builds the style set for a theme name from the config
// ("light" or anything else for dark).
func NewStyles(theme string) Styles {
	t := DarkTheme()
	if theme == "light" {
		t = LightTheme()
	}

	return Styles{
		Theme:    t,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Accent),
		Tagline:  lipgloss.NewStyle().Foreground(t.Muted),
		Platform: lipgloss.NewStyle().Bold(true).Foreground(t.Foreground),
		Cursor:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(t.Accent),
		Muted:    lipgloss.NewStyle().Foreground(t.Muted),
		Help:     lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Success:  lipgloss.NewStyle().Foreground(Success).Bold(true),
		Error:    lipgloss.NewStyle().Foreground(Failure).Bold(true),
		Warning:  lipgloss.NewStyle().Foreground(Warning),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Border).
			Padding(0, 1),
	}
}
