// Package fb implements a double-buffered cell framebuffer for raw terminals.
//
// Render code writes into the back buffer with [Framebuffer.Set],
// [Framebuffer.WriteText] and [Framebuffer.Clear]. [Framebuffer.Flush] walks
// the grid once and emits control sequences only for cells that differ from
// the front buffer, tracking colour state across the pass so unchanged
// attributes are never re-sent.
//
// # Lifecycle
//
//	f := fb.New(w, h)
//	if err := f.Enter(os.Stdout, fb.NewTTY(os.Stdin, os.Stdout)); err != nil { ... }
//	defer f.Exit()
//	f.Set(0, 0, 'X', 7, fb.NoColor)
//	f.Present()
//
// Writes outside the grid are clipped silently.
package fb
