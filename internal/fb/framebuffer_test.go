package fb

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

type fakeMode struct {
	raw, restored int
	rawErr        error
	restoreErr    error
}

func (m *fakeMode) Raw() error {
	m.raw++
	return m.rawErr
}

func (m *fakeMode) Restore() error {
	m.restored++
	return m.restoreErr
}

func assertFrontEqualsBack(t *testing.T, f *Framebuffer) {
	t.Helper()
	w, h := f.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if f.Front(x, y) != f.Back(x, y) {
				t.Fatalf("front != back at (%d,%d): %+v vs %+v", x, y, f.Front(x, y), f.Back(x, y))
			}
		}
	}
}

func TestNewIsBlank(t *testing.T) {
	f := New(4, 3)
	if w, h := f.Size(); w != 4 || h != 3 {
		t.Fatalf("expected 4x3, got %dx%d", w, h)
	}
	if out := f.Flush(); out != nil {
		t.Errorf("expected no output from a fresh framebuffer, got %q", out)
	}
	if f.Back(3, 2) != Blank {
		t.Errorf("expected blank cell, got %+v", f.Back(3, 2))
	}
}

func TestFlushMatchesFront(t *testing.T) {
	f := New(10, 5)
	f.Set(1, 1, 'a', 1, 2)
	f.WriteText(3, 4, "hello", 5, NoColor)
	f.Clear('.', 8, 0)
	f.Set(9, 4, 'z', NoColor, 3)

	if out := f.Flush(); len(out) == 0 {
		t.Fatal("expected output")
	}
	assertFrontEqualsBack(t, f)

	if out := f.Flush(); out != nil {
		t.Errorf("second flush should be empty, got %q", out)
	}
}

func TestOutOfBoundsIsClipped(t *testing.T) {
	f := New(3, 3)
	f.Clear('#', 1, NoColor)
	before := make([]Cell, 0, 9)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			before = append(before, f.Back(x, y))
		}
	}

	f.Set(-1, 0, 'x', 2, 2)
	f.Set(0, -1, 'x', 2, 2)
	f.Set(3, 0, 'x', 2, 2)
	f.Set(0, 3, 'x', 2, 2)
	f.WriteText(1, 5, "xyz", 2, 2)

	i := 0
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			if f.Back(x, y) != before[i] {
				t.Errorf("cell (%d,%d) changed by out-of-bounds write", x, y)
			}
			i++
		}
	}

	if c := f.Back(-1, 0); c != (Cell{}) {
		t.Errorf("expected zero cell for out-of-bounds read, got %+v", c)
	}
}

func TestWriteTextClipsAtRightEdge(t *testing.T) {
	f := New(4, 1)
	f.WriteText(2, 0, "abcd", NoColor, NoColor)
	if f.Back(2, 0).Ch != 'a' || f.Back(3, 0).Ch != 'b' {
		t.Errorf("unexpected row: %q%q", f.Back(2, 0).Ch, f.Back(3, 0).Ch)
	}

	f.WriteText(-2, 0, "wxyz", NoColor, NoColor)
	if f.Back(0, 0).Ch != 'y' || f.Back(1, 0).Ch != 'z' {
		t.Errorf("left clip: got %q%q", f.Back(0, 0).Ch, f.Back(1, 0).Ch)
	}
}

func TestColorNormalisation(t *testing.T) {
	f := New(2, 1)
	f.Set(0, 0, 'a', 300, -7)
	c := f.Back(0, 0)
	if c.Fg != NoColor || c.Bg != NoColor {
		t.Errorf("expected out-of-range colours to become NoColor, got %+v", c)
	}
	if Index(256) != NoColor || Index(-1) != NoColor || Index(17) != 17 {
		t.Error("Index did not normalise")
	}
}

func TestControlRunesBecomeSpaces(t *testing.T) {
	f := New(2, 1)
	f.Set(0, 0, '\x1b', 1, NoColor)
	if f.Back(0, 0).Ch != ' ' {
		t.Errorf("expected escape to be stored as space, got %q", f.Back(0, 0).Ch)
	}
}

func TestFlushSequences(t *testing.T) {
	tests := []struct {
		name string
		draw func(f *Framebuffer)
		want string
	}{
		{
			name: "single cell",
			draw: func(f *Framebuffer) { f.Set(0, 0, 'X', 7, NoColor) },
			want: "\x1b[1;1H\x1b[38;5;7mX\x1b[0m",
		},
		{
			name: "adjacent cells share one move and colour",
			draw: func(f *Framebuffer) { f.WriteText(2, 1, "ab", 3, 4) },
			want: "\x1b[2;3H\x1b[38;5;3m\x1b[48;5;4mab\x1b[0m",
		},
		{
			name: "gap forces move, colour carried over",
			draw: func(f *Framebuffer) {
				f.Set(0, 0, 'a', 3, NoColor)
				f.Set(2, 0, 'b', 3, NoColor)
			},
			want: "\x1b[1;1H\x1b[38;5;3ma\x1b[1;3Hb\x1b[0m",
		},
		{
			name: "colour carried across rows",
			draw: func(f *Framebuffer) {
				f.Set(4, 0, 'a', 9, NoColor)
				f.Set(0, 1, 'b', 9, NoColor)
			},
			want: "\x1b[1;5H\x1b[38;5;9ma\x1b[2;1Hb\x1b[0m",
		},
		{
			name: "return to default colour",
			draw: func(f *Framebuffer) {
				f.Set(0, 0, 'a', 3, 5)
				f.Set(1, 0, 'b', NoColor, NoColor)
			},
			want: "\x1b[1;1H\x1b[38;5;3m\x1b[48;5;5ma\x1b[39m\x1b[49mb\x1b[0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(5, 2)
			tt.draw(f)
			if got := string(f.Flush()); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestWideRuneOccupiesTwoColumns(t *testing.T) {
	f := New(6, 1)
	f.WriteText(0, 0, "世a", NoColor, NoColor)
	if c := f.Back(1, 0); c.Ch != 0 {
		t.Errorf("expected a continuation cell after the wide rune, got %q", c.Ch)
	}
	if c := f.Back(2, 0); c.Ch != 'a' {
		t.Errorf("expected 'a' in column 2, got %q", c.Ch)
	}

	got := string(f.Flush())
	want := "\x1b[1;1H世a\x1b[0m"
	if got != want {
		t.Errorf("got %q, expected %q", got, want)
	}
}

func TestWideRuneOverwrite(t *testing.T) {
	tests := []struct {
		name string
		x    int
		want string
	}{
		{"right half", 1, "\x1b[1;1H b\x1b[0m"},
		{"left half", 0, "\x1b[1;1Hb \x1b[0m"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := New(4, 1)
			f.Set(0, 0, '世', NoColor, NoColor)
			f.Flush()

			f.Set(tt.x, 0, 'b', NoColor, NoColor)
			if got := string(f.Flush()); got != tt.want {
				t.Errorf("got %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestWideRuneInLastColumn(t *testing.T) {
	f := New(2, 1)
	f.Set(1, 0, '世', 3, NoColor)
	if c := f.Back(1, 0); c.Ch != ' ' || c.Fg != 3 {
		t.Errorf("expected a space in the last column, got %+v", c)
	}
}

func TestResizeRepaintsEverything(t *testing.T) {
	f := New(3, 2)
	f.Flush()

	f.Resize(4, 3)
	if w, h := f.Size(); w != 4 || h != 3 {
		t.Fatalf("expected 4x3, got %dx%d", w, h)
	}

	out := string(f.Flush())
	if n := strings.Count(out, " "); n != 12 {
		t.Errorf("expected 12 repainted cells, got %d in %q", n, out)
	}
	if n := strings.Count(out, "H"); n != 3 {
		t.Errorf("expected one move per row, got %d", n)
	}
	assertFrontEqualsBack(t, f)
}

func TestResizeClampsToOneCell(t *testing.T) {
	f := New(3, 3)
	f.Resize(0, -4)
	if w, h := f.Size(); w != 1 || h != 1 {
		t.Errorf("expected 1x1, got %dx%d", w, h)
	}
}

func TestEnterExit(t *testing.T) {
	var out bytes.Buffer
	mode := &fakeMode{}
	f := New(80, 24)

	if err := f.Present(); !errors.Is(err, ErrInactive) {
		t.Errorf("expected ErrInactive before Enter, got %v", err)
	}

	if err := f.Enter(&out, mode); err != nil {
		t.Fatalf("enter failed: %v", err)
	}
	if !f.Active() || mode.raw != 1 {
		t.Fatal("expected active framebuffer in raw mode")
	}
	if out.String() != EnterSequence {
		t.Errorf("unexpected enter bytes %q", out.String())
	}
	if err := f.Enter(&out, mode); !errors.Is(err, ErrActive) {
		t.Errorf("expected ErrActive, got %v", err)
	}

	out.Reset()
	if err := f.Exit(); err != nil {
		t.Fatalf("exit failed: %v", err)
	}
	if out.String() != ExitSequence {
		t.Errorf("unexpected exit bytes %q", out.String())
	}
	if mode.restored != 1 || f.Active() {
		t.Error("expected mode restored and framebuffer inactive")
	}

	out.Reset()
	if err := f.Exit(); err != nil {
		t.Errorf("second exit should be a no-op, got %v", err)
	}
	if out.Len() != 0 || mode.restored != 1 {
		t.Error("second exit wrote output or restored twice")
	}
}

func TestEnterRawFailure(t *testing.T) {
	var out bytes.Buffer
	f := New(2, 2)
	err := f.Enter(&out, &fakeMode{rawErr: errors.New("no tty")})
	if err == nil || f.Active() {
		t.Fatal("expected enter to fail")
	}
	if out.Len() != 0 {
		t.Errorf("expected nothing written, got %q", out.String())
	}
}

func TestExitJoinsErrors(t *testing.T) {
	restoreErr := errors.New("restore failed")
	f := New(2, 2)
	if err := f.Enter(&bytes.Buffer{}, &fakeMode{restoreErr: restoreErr}); err != nil {
		t.Fatal(err)
	}
	if err := f.Exit(); !errors.Is(err, restoreErr) {
		t.Errorf("expected restore error, got %v", err)
	}
	if f.Active() {
		t.Error("framebuffer should be inactive even when restore fails")
	}
}

func TestEndToEndSingleCell(t *testing.T) {
	var out bytes.Buffer
	f := New(80, 24)
	if err := f.Enter(&out, nil); err != nil {
		t.Fatal(err)
	}
	defer f.Exit()

	out.Reset()
	f.Set(0, 0, 'X', 7, NoColor)
	if err := f.Present(); err != nil {
		t.Fatal(err)
	}

	got := out.String()
	if n := strings.Count(got, "\x1b[1;1H"); n != 1 {
		t.Errorf("expected one move to 1;1, got %d in %q", n, got)
	}
	if n := strings.Count(got, "\x1b[38;5;7m"); n != 1 {
		t.Errorf("expected one fg 7 sequence, got %d", n)
	}
	if n := strings.Count(got, "X"); n != 1 {
		t.Errorf("expected one X, got %d", n)
	}

	out.Reset()
	if err := f.Present(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("expected no bytes for an unchanged frame, got %q", out.String())
	}
}
