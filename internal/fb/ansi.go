package fb

import "strconv"

// Control sequences written around a session.
const (
	seqAltScreenOn  = "\x1b[?1049h"
	seqAltScreenOff = "\x1b[?1049l"
	seqHideCursor   = "\x1b[?25l"
	seqShowCursor   = "\x1b[?25h"
	seqClear        = "\x1b[2J"
	seqMouseOn      = "\x1b[?1003h\x1b[?1006h"
	seqMouseOff     = "\x1b[?1003l\x1b[?1006l"
	seqReset        = "\x1b[0m"
	seqDefaultFg    = "\x1b[39m"
	seqDefaultBg    = "\x1b[49m"
)

// EnterSequence is written by Enter after the terminal is switched to raw input.
const EnterSequence = seqAltScreenOn + seqHideCursor + seqClear + seqMouseOn

// ExitSequence is written by Exit before the input mode is restored.
const ExitSequence = seqMouseOff + seqReset + seqShowCursor + seqAltScreenOff

// appendMove appends a cursor move to the 1-indexed row and column.
func appendMove(b []byte, row, col int) []byte {
	b = append(b, "\x1b["...)
	b = strconv.AppendInt(b, int64(row), 10)
	b = append(b, ';')
	b = strconv.AppendInt(b, int64(col), 10)
	return append(b, 'H')
}

func appendFg(b []byte, c Color) []byte {
	if c == NoColor {
		return append(b, seqDefaultFg...)
	}
	b = append(b, "\x1b[38;5;"...)
	b = strconv.AppendInt(b, int64(c), 10)
	return append(b, 'm')
}

func appendBg(b []byte, c Color) []byte {
	if c == NoColor {
		return append(b, seqDefaultBg...)
	}
	b = append(b, "\x1b[48;5;"...)
	b = strconv.AppendInt(b, int64(c), 10)
	return append(b, 'm')
}
