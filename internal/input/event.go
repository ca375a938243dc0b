// Package input decodes raw terminal input into mouse and key events.
//
// Supported encodings:
//
//   - SGR extended mouse reports: ESC [ < b ; x ; y M|m
//   - Arrows as CSI (ESC [ A), SS3 (ESC O A) and modified CSI (ESC [ 1 ; 5 A)
//   - w/a/s/d as arrow fallbacks, space, enter, tab, digits 1-9
//   - Ctrl-C (0x03) as an interrupt
//
// Anything else is reported as a raw event carrying a hex dump so callers can
// show what the terminal sent.
package input

import (
	"fmt"
	"strconv"
)

// Kind classifies an Event.
type Kind int

const (
	KindKey Kind = iota
	KindMouse
	KindRaw
	KindInterrupt
)

func (k Kind) String() string {
	switch k {
	case KindKey:
		return "key"
	case KindMouse:
		return "mouse"
	case KindRaw:
		return "raw"
	case KindInterrupt:
		return "interrupt"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Key identifies a decoded key.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeySpace
	KeyEnter
	KeyTab
	KeyDigit
)

var keyNames = map[Key]string{
	KeyNone:  "none",
	KeyUp:    "up",
	KeyDown:  "down",
	KeyLeft:  "left",
	KeyRight: "right",
	KeySpace: "space",
	KeyEnter: "enter",
	KeyTab:   "tab",
	KeyDigit: "digit",
}

func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "key(" + strconv.Itoa(int(k)) + ")"
}

// IsArrow reports whether k is one of the four directions.
func (k Key) IsArrow() bool {
	return k >= KeyUp && k <= KeyRight
}

// MouseState is the last known pointer position (0-indexed cells) and
// button bitmask as reported by the terminal.
type MouseState struct {
	X, Y    int
	Buttons int
	Pressed bool
}

// Motion reports whether the report was generated by pointer movement.
func (m MouseState) Motion() bool { return m.Buttons&32 != 0 }

// Event is one decoded input item.
type Event struct {
	Kind Kind

	// Key events.
	Key   Key
	Digit int
	Rune  rune

	// Mouse events.
	Mouse MouseState

	// Raw events: comma-separated lowercase hex, e.g. "1b,5b,5a".
	Raw string
}

func (e Event) String() string {
	switch e.Kind {
	case KindKey:
		if e.Key == KeyDigit {
			return fmt.Sprintf("key %d", e.Digit)
		}
		return "key " + e.Key.String()
	case KindMouse:
		state := "up"
		if e.Mouse.Pressed {
			state = "down"
		}
		return fmt.Sprintf("mouse %d,%d %s b=%d", e.Mouse.X, e.Mouse.Y, state, e.Mouse.Buttons)
	case KindRaw:
		return "raw " + e.Raw
	case KindInterrupt:
		return "interrupt"
	}
	return e.Kind.String()
}
