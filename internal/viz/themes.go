package viz

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/ambient/internal/fb"
	"github.com/san-kum/ambient/internal/scene"
)

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color
	Faint     lipgloss.Color
	// Weights colours link strength from weak to strong.
	Weights [5]lipgloss.Color
}

// Color converts a 256-colour index to a lipgloss colour. NoColor maps to
// the terminal default.
func Color(c fb.Color) lipgloss.Color {
	if c < 0 {
		return lipgloss.Color("")
	}
	return lipgloss.Color(strconv.Itoa(int(c)))
}

// ThemeFor derives a theme from a scene palette so the browser matches the
// ambient demos.
func ThemeFor(p scene.Palette) Theme {
	t := Theme{
		Name:      p.Name,
		Primary:   Color(p.Accent),
		Secondary: Color(p.Status),
		Accent:    Color(p.Influence[len(p.Influence)-1]),
		Text:      Color(p.Node),
		Muted:     Color(p.Dim),
		Faint:     Color(p.BgBright),
	}
	for i, c := range p.Influence {
		t.Weights[i] = Color(c)
	}
	return t
}

// GetTheme returns the theme for a palette name, falling back to ocean.
func GetTheme(name string) Theme {
	return ThemeFor(scene.GetPalette(name))
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	return scene.PaletteNames()
}

// nextTheme returns the theme after name in ThemeNames order.
func nextTheme(name string) Theme {
	names := ThemeNames()
	for i, n := range names {
		if n == name {
			return GetTheme(names[(i+1)%len(names)])
		}
	}
	return GetTheme(names[0])
}
