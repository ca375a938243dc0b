package scene

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/san-kum/ambient/internal/fb"
)

// BoxStyle is the set of border glyphs for one node type.
type BoxStyle struct {
	TL, TR, BL, BR string
	H, V           string
}

var boxStyles = map[string]BoxStyle{
	"concept":  {TL: "╭", TR: "╮", BL: "╰", BR: "╯", H: "─", V: "│"},
	"domain":   {TL: "╔", TR: "╗", BL: "╚", BR: "╝", H: "═", V: "║"},
	"resource": {TL: "⟦", TR: "⟧", BL: "⟦", BR: "⟧", H: " ", V: " "},
}

var defaultBox = BoxStyle{TL: "┌", TR: "┐", BL: "└", BR: "┘", H: "─", V: "│"}

// BoxFor returns the border style for a node type.
func BoxFor(nodeType string) BoxStyle {
	if s, ok := boxStyles[nodeType]; ok {
		return s
	}
	return defaultBox
}

// Edge glyphs by weight.
const (
	EdgeStrong = '═'
	EdgeMedium = '─'
	EdgeWeak   = '╌'
	EdgeFaint  = '⋯'
)

// EdgeGlyph picks a horizontal connector for an edge weight.
func EdgeGlyph(weight float64) rune {
	switch {
	case weight > 0.8:
		return EdgeStrong
	case weight > 0.5:
		return EdgeMedium
	case weight > 0.3:
		return EdgeWeak
	}
	return EdgeFaint
}

// Density glyphs, from the focus outward.
var densityRamp = []rune{'█', '▓', '▒', '░', '·'}

// DensityGlyph returns the fill for a node at the given hop distance from
// the focus.
func DensityGlyph(distance int) rune {
	if distance < 0 {
		distance = 0
	}
	if distance >= len(densityRamp) {
		return densityRamp[len(densityRamp)-1]
	}
	return densityRamp[distance]
}

// Truncate shortens s to at most width display columns, ending in "..".
func Truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "..")
}

// DrawBox draws a three-line box around label centred on column x with its
// text on row y. Labels wider than maxLen are truncated. It returns the box
// width.
func DrawBox(f *fb.Framebuffer, x, y int, label, nodeType string, fg fb.Color, maxLen int) int {
	st := BoxFor(nodeType)
	label = Truncate(label, maxLen)

	inner := runewidth.StringWidth(label) + 2
	top := st.TL + strings.Repeat(st.H, inner) + st.TR
	mid := st.V + " " + label + " " + st.V
	bot := st.BL + strings.Repeat(st.H, inner) + st.BR

	left := x - (inner+2)/2
	f.WriteText(left, y-1, top, fg, fb.NoColor)
	f.WriteText(left, y, mid, fg, fb.NoColor)
	f.WriteText(left, y+1, bot, fg, fb.NoColor)
	return inner + 2
}

// Center returns the column at which text of the given display width is
// centred in a row of total columns.
func Center(total int, text string) int {
	return (total - runewidth.StringWidth(text)) / 2
}
