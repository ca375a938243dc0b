package fb

import (
	"os"

	"golang.org/x/term"
)

// TTY is a Mode backed by the process's controlling terminal.
type TTY struct {
	in, out *os.File
	state   *term.State
}

// NewTTY wraps the given input and output files.
func NewTTY(in, out *os.File) *TTY {
	return &TTY{in: in, out: out}
}

// IsTerminal reports whether both ends are attached to a terminal.
func (t *TTY) IsTerminal() bool {
	return term.IsTerminal(int(t.in.Fd())) && term.IsTerminal(int(t.out.Fd()))
}

// Raw puts the input side into raw mode, remembering the previous state.
func (t *TTY) Raw() error {
	if t.state != nil {
		return nil
	}
	st, err := term.MakeRaw(int(t.in.Fd()))
	if err != nil {
		return err
	}
	t.state = st
	return nil
}

// Restore returns the input side to the state saved by Raw.
func (t *TTY) Restore() error {
	if t.state == nil {
		return nil
	}
	st := t.state
	t.state = nil
	return term.Restore(int(t.in.Fd()), st)
}

// Size returns the output terminal's dimensions in cells.
func (t *TTY) Size() (width, height int, err error) {
	return term.GetSize(int(t.out.Fd()))
}
