package fb

import "errors"

var (
	// ErrActive is returned by Enter when the framebuffer already owns the terminal.
	ErrActive = errors.New("fb: framebuffer already active")

	// ErrInactive is returned by operations that need an entered terminal.
	ErrInactive = errors.New("fb: framebuffer not active")
)
