package input

import (
	"bytes"
	"strconv"
)

const (
	esc       = 0x1b
	interrupt = 0x03
)

// Decode scans data once and returns its events in byte order. It never
// fails: unknown bytes become KindRaw events, consecutive unknown bytes are
// grouped into one event, and malformed mouse reports are dropped. Decoding
// stops after an interrupt byte.
func Decode(data []byte) []Event {
	var (
		events  []Event
		pending []byte
	)

	emit := func(ev Event) {
		if len(pending) > 0 {
			events = append(events, Event{Kind: KindRaw, Raw: hexDump(pending)})
			pending = pending[:0]
		}
		events = append(events, ev)
	}

	for i := 0; i < len(data); {
		b := data[i]

		if b == interrupt {
			emit(Event{Kind: KindInterrupt})
			return events
		}

		if b == esc {
			n, ev, ok := escape(data[i:])
			switch {
			case ok:
				emit(ev)
			case n > 0 && ev.Kind == KindMouse:
				// Malformed mouse report: consumed, nothing emitted.
			default:
				pending = append(pending, data[i:i+n]...)
			}
			i += n
			continue
		}

		if ev, ok := single(b); ok {
			emit(ev)
		} else {
			pending = append(pending, b)
		}
		i++
	}

	if len(pending) > 0 {
		events = append(events, Event{Kind: KindRaw, Raw: hexDump(pending)})
	}
	return events
}

func single(b byte) (Event, bool) {
	key := func(k Key) (Event, bool) {
		return Event{Kind: KindKey, Key: k, Rune: rune(b)}, true
	}

	switch b {
	case 'w', 'W':
		return key(KeyUp)
	case 's', 'S':
		return key(KeyDown)
	case 'a', 'A':
		return key(KeyLeft)
	case 'd', 'D':
		return key(KeyRight)
	case ' ':
		return key(KeySpace)
	case '\r', '\n':
		return key(KeyEnter)
	case '\t':
		return key(KeyTab)
	}
	if b >= '1' && b <= '9' {
		return Event{Kind: KindKey, Key: KeyDigit, Digit: int(b - '0'), Rune: rune(b)}, true
	}
	return Event{}, false
}

func arrow(b byte) (Key, bool) {
	switch b {
	case 'A':
		return KeyUp, true
	case 'B':
		return KeyDown, true
	case 'C':
		return KeyRight, true
	case 'D':
		return KeyLeft, true
	}
	return KeyNone, false
}

// escape decodes the sequence starting at data[0] == ESC. It returns the
// number of bytes the sequence spans, the decoded event and whether the event
// is valid. A KindMouse event with ok == false marks a malformed report.
func escape(data []byte) (int, Event, bool) {
	if len(data) < 2 {
		return 1, Event{}, false
	}

	switch data[1] {
	case 'O':
		if len(data) < 3 {
			return 2, Event{}, false
		}
		if k, ok := arrow(data[2]); ok {
			return 3, Event{Kind: KindKey, Key: k}, true
		}
		return 3, Event{}, false

	case '[':
		if len(data) > 2 && data[2] == '<' {
			return mouse(data)
		}
		n, complete := csiLength(data)
		if !complete {
			return n, Event{}, false
		}
		final := data[n-1]
		k, ok := arrow(final)
		if !ok {
			return n, Event{}, false
		}
		params := string(data[2 : n-1])
		if params == "" || params == "1" || isModifier(params) {
			return n, Event{Kind: KindKey, Key: k}, true
		}
		return n, Event{}, false
	}

	return 1, Event{}, false
}

// csiLength returns the length of the CSI sequence at data and whether its
// final byte was present.
func csiLength(data []byte) (int, bool) {
	i := 2
	for i < len(data) && data[i] >= 0x20 && data[i] <= 0x3f {
		i++
	}
	if i < len(data) && data[i] >= 0x40 && data[i] <= 0x7e {
		return i + 1, true
	}
	return i, false
}

// isModifier matches "1;<m>" where m is a decimal modifier code.
func isModifier(params string) bool {
	if len(params) < 3 || params[:2] != "1;" {
		return false
	}
	_, err := strconv.Atoi(params[2:])
	return err == nil
}

func mouse(data []byte) (int, Event, bool) {
	bad := Event{Kind: KindMouse}

	j := 3
	for j < len(data) && (isDigit(data[j]) || data[j] == ';') {
		j++
	}
	if j >= len(data) || (data[j] != 'M' && data[j] != 'm') {
		return j, bad, false
	}

	fields := splitFields(data[3:j])
	if len(fields) != 3 {
		return j + 1, bad, false
	}
	b, err1 := strconv.Atoi(fields[0])
	x, err2 := strconv.Atoi(fields[1])
	y, err3 := strconv.Atoi(fields[2])
	if err1 != nil || err2 != nil || err3 != nil || x < 1 || y < 1 {
		return j + 1, bad, false
	}

	pressed := data[j] == 'M'
	if !pressed {
		b = 0
	}
	return j + 1, Event{
		Kind:  KindMouse,
		Mouse: MouseState{X: x - 1, Y: y - 1, Buttons: b, Pressed: pressed},
	}, true
}

func splitFields(b []byte) []string {
	var fields []string
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == ';' {
			fields = append(fields, string(b[start:i]))
			start = i + 1
		}
	}
	return fields
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

const hexDigits = "0123456789abcdef"

func hexDump(b []byte) string {
	out := make([]byte, 0, len(b)*3)
	for i, c := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, hexDigits[c>>4], hexDigits[c&0x0f])
	}
	return string(out)
}

// maxPartial bounds how many bytes of an unfinished escape sequence are
// carried between Feed calls.
const maxPartial = 32

// Decoder applies decoded mouse events to a MouseState and joins escape
// sequences split across reads. It is not safe for concurrent use; the render
// loop owns it.
type Decoder struct {
	mouse   MouseState
	seen    bool
	partial []byte
}

// Feed decodes data and records the latest mouse report. An escape sequence
// cut off at the end of data is held back and decoded with the next call; if
// that call does not extend it, or it grows past maxPartial, it is reported
// as one raw event.
func (d *Decoder) Feed(data []byte) []Event {
	buf := append(d.partial, data...)
	d.partial = nil

	var stale []byte
	if n := unfinished(buf); n > 0 {
		tail := buf[len(buf)-n:]
		if len(data) > 0 && n <= maxPartial {
			d.partial = append([]byte(nil), tail...)
		} else {
			stale = tail
		}
		buf = buf[:len(buf)-n]
	}

	events := Decode(buf)
	if k := len(events); k > 0 && events[k-1].Kind == KindInterrupt {
		d.partial = nil
		stale = nil
	}
	if len(stale) > 0 {
		events = append(events, Event{Kind: KindRaw, Raw: hexDump(stale)})
	}

	for _, ev := range events {
		if ev.Kind == KindMouse {
			d.mouse = ev.Mouse
			d.seen = true
		}
	}
	return events
}

// Pending reports whether part of an escape sequence is waiting for more
// input.
func (d *Decoder) Pending() bool { return len(d.partial) > 0 }

// unfinished returns the length of the escape sequence at the end of data
// that still lacks its final byte, or 0.
func unfinished(data []byte) int {
	i := bytes.LastIndexByte(data, esc)
	if i < 0 {
		return 0
	}
	seq := data[i:]
	switch {
	case len(seq) == 1:
		return 1
	case seq[1] == 'O':
		if len(seq) == 2 {
			return 2
		}
	case seq[1] == '[':
		if len(seq) > 2 && seq[2] == '<' {
			for _, b := range seq[3:] {
				if !isDigit(b) && b != ';' {
					return 0
				}
			}
			return len(seq)
		}
		if n, complete := csiLength(seq); !complete && n == len(seq) {
			return len(seq)
		}
	}
	return 0
}

// Mouse returns the last recorded mouse state.
func (d *Decoder) Mouse() MouseState { return d.mouse }

// Seen reports whether any mouse report has been decoded yet.
func (d *Decoder) Seen() bool { return d.seen }
