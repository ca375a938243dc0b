package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/san-kum/ambient/internal/scene"
)

// Styles holds the rendered styles for one theme.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Subtle   lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Key      lipgloss.Style
	KeyHint  lipgloss.Style
	Panel    lipgloss.Style
	Header   lipgloss.Style

	weights [5]lipgloss.Style
}

// NewStyles builds the style set for t.
func NewStyles(t Theme) Styles {
	s := Styles{
		Title:    lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		Subtitle: lipgloss.NewStyle().Foreground(t.Secondary),
		Subtle:   lipgloss.NewStyle().Foreground(t.Muted),
		Cursor:   lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(t.Text).Bold(true),
		Normal:   lipgloss.NewStyle().Foreground(t.Muted),
		Key:      lipgloss.NewStyle().Foreground(t.Primary).Bold(true),
		KeyHint:  lipgloss.NewStyle().Foreground(t.Muted).Italic(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Faint).
			Padding(0, 1),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(t.Text).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(t.Faint),
	}
	for i, c := range t.Weights {
		s.weights[i] = lipgloss.NewStyle().Foreground(c)
	}
	return s
}

// WeightBar renders an edge weight in [0, 1] as a bar coloured by strength.
func (s Styles) WeightBar(weight float64, width int) string {
	bar := scene.ProgressBar(weight, width)
	i := int(weight * float64(len(s.weights)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(s.weights) {
		i = len(s.weights) - 1
	}
	return s.weights[i].Render(bar)
}

// Hints renders alternating key/description pairs.
func (s Styles) Hints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString("  ")
		}
		b.WriteString(s.Key.Render(pairs[i]))
		b.WriteString(s.KeyHint.Render(" " + pairs[i+1]))
	}
	return b.String()
}

// Separator renders a decorative rule of the given width.
func (s Styles) Separator(width int) string {
	if width < 7 {
		return s.Subtle.Render(strings.Repeat("─", max(0, width)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return s.Subtle.Render(left + " ◆ " + right)
}

// pad left-aligns text in a column of width display cells, truncating with
// the scene ellipsis.
func pad(text string, width int) string {
	return runewidth.FillRight(scene.Truncate(text, width), width)
}
