package fb

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Mode switches the input side of a terminal between raw and cooked.
type Mode interface {
	Raw() error
	Restore() error
}

// Framebuffer owns a front buffer (what the terminal shows) and a back buffer
// (the frame being composed). Both always have the same dimensions.
type Framebuffer struct {
	width, height int
	front, back   []Cell

	out    io.Writer
	mode   Mode
	active bool

	scratch []byte
}

// New allocates a width x height framebuffer with blank buffers.
func New(width, height int) *Framebuffer {
	f := &Framebuffer{}
	f.alloc(width, height)
	fill(f.front, Blank)
	return f
}

func (f *Framebuffer) alloc(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	f.width, f.height = width, height
	f.front = make([]Cell, width*height)
	f.back = make([]Cell, width*height)
	fill(f.back, Blank)
}

// Size returns the grid dimensions.
func (f *Framebuffer) Size() (width, height int) {
	return f.width, f.height
}

// Active reports whether the framebuffer currently owns the terminal.
func (f *Framebuffer) Active() bool { return f.active }

func (f *Framebuffer) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, false
	}
	return y*f.width + x, true
}

// Set writes one cell into the back buffer. Out-of-bounds writes are ignored.
// Control and zero-width runes are stored as spaces. A wide rune also claims
// the cell to its right; one that would not fit in the last column is stored
// as a space.
func (f *Framebuffer) Set(x, y int, ch rune, fg, bg Color) {
	i, ok := f.index(x, y)
	if !ok {
		return
	}
	w := runewidth.RuneWidth(ch)
	if w == 0 || (w > 1 && x+1 >= f.width) {
		ch, w = ' ', 1
	}
	fg, bg = fg.valid(), bg.valid()

	f.release(i, x)
	f.back[i] = Cell{Ch: ch, Fg: fg, Bg: bg}
	if w > 1 {
		f.release(i+1, x+1)
		f.back[i+1] = Cell{Ch: continuation, Fg: fg, Bg: bg}
	}
}

// release breaks up the wide rune, if any, that covers back[i] so neither
// half is left orphaned once back[i] is overwritten.
func (f *Framebuffer) release(i, x int) {
	switch {
	case f.back[i].Ch == continuation && x > 0:
		f.back[i-1].Ch = ' '
	case runewidth.RuneWidth(f.back[i].Ch) > 1 && x+1 < f.width:
		f.back[i+1].Ch = ' '
	}
}

// WriteText writes text left to right starting at (x, y), advancing by each
// rune's display width. Runes falling outside the grid are clipped.
func (f *Framebuffer) WriteText(x, y int, text string, fg, bg Color) {
	for _, r := range text {
		f.Set(x, y, r, fg, bg)
		x += max(1, runewidth.RuneWidth(r))
	}
}

// Fill sets every cell of the w x h rectangle at (x, y).
func (f *Framebuffer) Fill(x, y, w, h int, ch rune, fg, bg Color) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			f.Set(col, row, ch, fg, bg)
		}
	}
}

// Clear resets every back cell. Wide and zero-width runes clear to spaces.
func (f *Framebuffer) Clear(ch rune, fg, bg Color) {
	if runewidth.RuneWidth(ch) != 1 {
		ch = ' '
	}
	fill(f.back, Cell{Ch: ch, Fg: fg.valid(), Bg: bg.valid()})
}

// Back returns the back cell at (x, y), or the zero Cell when out of bounds.
func (f *Framebuffer) Back(x, y int) Cell {
	if i, ok := f.index(x, y); ok {
		return f.back[i]
	}
	return Cell{}
}

// Front returns the front cell at (x, y), or the zero Cell when out of bounds.
func (f *Framebuffer) Front(x, y int) Cell {
	if i, ok := f.index(x, y); ok {
		return f.front[i]
	}
	return Cell{}
}

// Resize reallocates both buffers. The back buffer is blank and the front
// buffer is invalidated, so the next Flush repaints every cell.
func (f *Framebuffer) Resize(width, height int) {
	f.alloc(width, height)
	fill(f.front, stale)
}

// Flush emits the difference between back and front and copies every
// changed cell into front. It returns nil when nothing changed.
func (f *Framebuffer) Flush() []byte {
	b := f.scratch[:0]
	lastX, lastY := -2, -2
	fg, bg := NoColor, NoColor

	for y := 0; y < f.height; y++ {
		row := y * f.width
		for x := 0; x < f.width; x++ {
			c := f.back[row+x]
			if c == f.front[row+x] {
				continue
			}
			if c.Ch == continuation {
				// Drawn by the wide rune to its left.
				f.front[row+x] = c
				continue
			}

			if y != lastY || x != lastX+1 {
				b = appendMove(b, y+1, x+1)
			}
			if c.Fg != fg {
				b = appendFg(b, c.Fg)
				fg = c.Fg
			}
			if c.Bg != bg {
				b = appendBg(b, c.Bg)
				bg = c.Bg
			}
			b = utf8.AppendRune(b, c.Ch)

			f.front[row+x] = c
			lastX, lastY = x+max(1, runewidth.RuneWidth(c.Ch))-1, y
		}
	}

	f.scratch = b
	if len(b) == 0 {
		return nil
	}
	b = append(b, seqReset...)
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Enter switches mode to raw input and takes over the screen: alternate
// buffer, hidden cursor, cleared display, mouse reporting. mode may be nil
// when out is not a terminal.
func (f *Framebuffer) Enter(out io.Writer, mode Mode) error {
	if f.active {
		return ErrActive
	}
	if mode != nil {
		if err := mode.Raw(); err != nil {
			return fmt.Errorf("fb: raw mode: %w", err)
		}
	}
	if _, err := io.WriteString(out, EnterSequence); err != nil {
		if mode != nil {
			return errors.Join(fmt.Errorf("fb: enter: %w", err), mode.Restore())
		}
		return fmt.Errorf("fb: enter: %w", err)
	}

	f.out = out
	f.mode = mode
	f.active = true
	// The display was just cleared.
	fill(f.front, Blank)
	return nil
}

// Exit restores the terminal to the state it had before Enter. It is safe to
// call more than once; calls after the first do nothing.
func (f *Framebuffer) Exit() error {
	if !f.active {
		return nil
	}
	f.active = false

	var errs []error
	if _, err := io.WriteString(f.out, ExitSequence); err != nil {
		errs = append(errs, fmt.Errorf("fb: exit: %w", err))
	}
	if f.mode != nil {
		if err := f.mode.Restore(); err != nil {
			errs = append(errs, fmt.Errorf("fb: restore mode: %w", err))
		}
	}
	f.out, f.mode = nil, nil
	return errors.Join(errs...)
}

// Present flushes the diff and writes it to the terminal.
func (f *Framebuffer) Present() error {
	if !f.active {
		return ErrInactive
	}
	b := f.Flush()
	if len(b) == 0 {
		return nil
	}
	if _, err := f.out.Write(b); err != nil {
		return fmt.Errorf("fb: present: %w", err)
	}
	return nil
}
