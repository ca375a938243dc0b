package fb

// Color is a 256-colour palette index, or NoColor for the terminal default.
type Color int16

// NoColor selects the terminal's default foreground or background.
const NoColor Color = -1

// Index converts n to a Color. Values outside 0-255 become NoColor.
func Index(n int) Color {
	if n < 0 || n > 255 {
		return NoColor
	}
	return Color(n)
}

func (c Color) valid() Color {
	if c < 0 || c > 255 {
		return NoColor
	}
	return c
}

// Cell is one terminal position. Cells compare structurally. The right half
// of a wide rune holds a Cell whose Ch is 0.
type Cell struct {
	Ch rune
	Fg Color
	Bg Color
}

// Blank is a space in default colours.
var Blank = Cell{Ch: ' ', Fg: NoColor, Bg: NoColor}

// continuation marks the cell covered by the wide rune to its left.
const continuation rune = 0

// stale never equals a cell produced by Set, so a front buffer filled with it
// forces every position to be re-emitted.
var stale = Cell{Ch: -1, Fg: -2, Bg: -2}

func fill(cells []Cell, c Cell) {
	for i := range cells {
		cells[i] = c
	}
}
