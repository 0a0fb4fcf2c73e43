// Package theme holds the enumerated color themes.
package theme

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme provides.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Accent     lipgloss.Color
	Good       lipgloss.Color
	Bad        lipgloss.Color
}

var palettes = map[string]Palette{
	"light": {Background: "#ffffff", Foreground: "#000000", Accent: "#007acc", Good: "#28a745", Bad: "#dc3545"},
	"dark":  {Background: "#222222", Foreground: "#ffffff", Accent: "#00bfff", Good: "#28a745", Bad: "#dc3545"},
	"neon":  {Background: "#1a1a1a", Foreground: "#00ffff", Accent: "#ff00ff", Good: "#28a745", Bad: "#ff0066"},
}

// Names returns the known theme names in sorted order.
func Names() []string {
	names := make([]string, 0, len(palettes))
	for name := range palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Valid reports whether name is a known theme.
func Valid(name string) bool {
	_, ok := palettes[name]
	return ok
}

// Get returns the palette for name, falling back to neon.
func Get(name string) Palette {
	if p, ok := palettes[name]; ok {
		return p
	}
	return palettes["neon"]
}

// Styles are the lipgloss styles derived from a palette.
type Styles struct {
	// Background fills the screen around the content.
	Background lipgloss.Color

	Target    lipgloss.Style
	Correct   lipgloss.Style
	Incorrect lipgloss.Style
	Pending   lipgloss.Style
	Current   lipgloss.Style
	Footer    lipgloss.Style
	Error     lipgloss.Style
	Modal     lipgloss.Style
}

// StylesFor builds the styles for a theme name.
func StylesFor(name string) Styles {
	p := Get(name)
	pending := lipgloss.NewStyle().Foreground(p.Foreground).Faint(true)
	return Styles{
		Background: p.Background,
		Target:     lipgloss.NewStyle().Foreground(p.Accent),
		Correct:    lipgloss.NewStyle().Foreground(p.Good),
		Incorrect:  lipgloss.NewStyle().Foreground(p.Bad),
		Pending:    pending,
		Current:    lipgloss.NewStyle().Foreground(p.Accent),
		Footer:     lipgloss.NewStyle().Foreground(p.Foreground),
		Error:      lipgloss.NewStyle().Foreground(p.Bad).Bold(true),
		Modal: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(p.Accent).
			Padding(1, 2),
	}
}
