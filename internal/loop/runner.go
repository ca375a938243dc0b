// Package loop drives a Scene at a fixed frame rate on a single goroutine.
//
// Each tick draws the scene into the framebuffer's back buffer, presents the
// diff and drains queued input before the next tick is scheduled, so frames
// never overlap. Input bytes are read on a separate goroutine and handed
// over through a channel; decoding and all mouse state live on the loop
// goroutine.
//
// The framebuffer's Exit runs on every way out of Run: context
// cancellation, Ctrl-C, the scene asking to quit, read errors and panics.
package loop

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/muesli/cancelreader"

	"github.com/san-kum/ambient/internal/fb"
	"github.com/san-kum/ambient/internal/input"
)

// Frame is the per-tick timing and input snapshot handed to a Scene.
type Frame struct {
	Now     time.Time
	Elapsed time.Duration
	Delta   time.Duration
	FPS     float64
	Count   uint64

	Mouse     input.MouseState
	MouseSeen bool
}

// Scene renders frames and reacts to input. Both methods run on the loop
// goroutine.
type Scene interface {
	Draw(f *fb.Framebuffer, fr Frame)
	// Handle returns false to stop the loop.
	Handle(ev input.Event, fr Frame) bool
}

// Options configures a Runner. Zero values pick sensible defaults.
type Options struct {
	Interval time.Duration

	// In is the raw input stream. Nil disables input.
	In io.Reader
	// Out receives every byte written to the terminal.
	Out io.Writer
	// Mode switches In to raw mode; nil when In is not a terminal.
	Mode fb.Mode

	// Size reports the terminal size after a resize notification.
	Size func() (width, height int, err error)
	// Resize overrides the platform resize notifications.
	Resize <-chan struct{}

	Logger *log.Logger
	Now    func() time.Time
}

// Runner owns the tick loop for one framebuffer and scene.
type Runner struct {
	fb    *fb.Framebuffer
	scene Scene
	opts  Options
	log   *log.Logger
	dec   input.Decoder

	start     time.Time
	last      time.Time
	count     uint64
	fps       float64
	fpsFrames int
	fpsTimer  time.Duration
}

// New prepares a runner. The framebuffer must not be active yet.
func New(f *fb.Framebuffer, scene Scene, opts Options) *Runner {
	if opts.Interval <= 0 {
		opts.Interval = 50 * time.Millisecond
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Runner{
		fb:    f,
		scene: scene,
		opts:  opts,
		log:   logger,
		fps:   float64(time.Second) / float64(opts.Interval),
	}
}

// NextDelay returns how long to wait after a tick that took cost so ticks
// start interval apart.
func NextDelay(interval, cost time.Duration) time.Duration {
	return max(0, interval-cost)
}

// Run enters the terminal, runs until ctx is done or the scene stops, and
// restores the terminal. A panic inside the scene is re-raised after the
// terminal has been restored.
func (r *Runner) Run(ctx context.Context) (err error) {
	if err := r.fb.Enter(r.opts.Out, r.opts.Mode); err != nil {
		return fmt.Errorf("loop: %w", err)
	}
	w, h := r.fb.Size()
	r.log.Info("terminal entered", "width", w, "height", h, "interval", r.opts.Interval)

	defer func() {
		if p := recover(); p != nil {
			if exitErr := r.fb.Exit(); exitErr != nil {
				r.log.Error("restore after panic failed", "err", exitErr)
			}
			r.log.Error("frame panicked", "panic", p)
			panic(p)
		}
		if exitErr := r.fb.Exit(); exitErr != nil {
			r.log.Error("restore failed", "err", exitErr)
			err = errors.Join(err, exitErr)
		}
		r.log.Info("terminal restored", "frames", r.count)
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	in, errc := r.readInput(ctx)
	resize := r.opts.Resize
	if resize == nil {
		resize = notifyResize(ctx)
	}

	r.start = r.opts.Now()
	r.last = r.start

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case data, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			if !r.handleInput(data) {
				return nil
			}

		case err := <-errc:
			return fmt.Errorf("loop: read input: %w", err)

		case <-resize:
			r.resize()

		case <-timer.C:
			begin := time.Now()
			if err := r.tick(); err != nil {
				return err
			}
			if !r.drain(in) {
				return nil
			}
			timer.Reset(NextDelay(r.opts.Interval, time.Since(begin)))
		}
	}
}

func (r *Runner) frame() Frame {
	now := r.opts.Now()
	return Frame{
		Now:       now,
		Elapsed:   now.Sub(r.start),
		Delta:     now.Sub(r.last),
		FPS:       r.fps,
		Count:     r.count,
		Mouse:     r.dec.Mouse(),
		MouseSeen: r.dec.Seen(),
	}
}

func (r *Runner) tick() error {
	fr := r.frame()
	r.last = fr.Now
	r.count++
	fr.Count = r.count

	if fr.Delta > 0 {
		r.fpsFrames++
		r.fpsTimer += fr.Delta
	}
	if r.fpsTimer >= time.Second {
		r.fps = float64(r.fpsFrames) / r.fpsTimer.Seconds()
		r.fpsFrames = 0
		r.fpsTimer = 0
	}

	r.scene.Draw(r.fb, fr)
	if err := r.fb.Present(); err != nil {
		return fmt.Errorf("loop: %w", err)
	}
	return nil
}

// drain handles input that queued up while the frame was rendering.
func (r *Runner) drain(in <-chan []byte) bool {
	for {
		select {
		case data, ok := <-in:
			if !ok {
				return true
			}
			if !r.handleInput(data) {
				return false
			}
		default:
			return true
		}
	}
}

func (r *Runner) handleInput(data []byte) bool {
	fr := r.frame()
	for _, ev := range r.dec.Feed(data) {
		fr.Mouse = r.dec.Mouse()
		fr.MouseSeen = r.dec.Seen()
		switch ev.Kind {
		case input.KindInterrupt:
			r.log.Info("interrupt received")
			return false
		case input.KindRaw:
			r.log.Debug("unrecognised input", "bytes", ev.Raw)
		}
		if !r.scene.Handle(ev, fr) {
			r.log.Info("scene requested exit")
			return false
		}
	}
	return true
}

func (r *Runner) resize() {
	if r.opts.Size == nil {
		return
	}
	w, h, err := r.opts.Size()
	if err != nil {
		r.log.Warn("terminal size unavailable", "err", err)
		return
	}
	if cw, ch := r.fb.Size(); cw == w && ch == h {
		return
	}
	r.fb.Resize(w, h)
	r.log.Info("terminal resized", "width", w, "height", h)
}

// readInput starts the reader goroutine. Chunks arrive on the first channel,
// which is closed at EOF; other read errors arrive on the second.
func (r *Runner) readInput(ctx context.Context) (<-chan []byte, <-chan error) {
	errc := make(chan error, 1)
	if r.opts.In == nil {
		return nil, errc
	}

	cr, err := cancelreader.NewReader(r.opts.In)
	if err != nil {
		errc <- err
		return nil, errc
	}

	out := make(chan []byte, 16)
	go func() {
		<-ctx.Done()
		cr.Cancel()
	}()
	go func() {
		defer close(out)
		defer cr.Close()
		buf := make([]byte, 256)
		for {
			n, err := cr.Read(buf)
			if n > 0 {
				chunk := make([]byte, n)
				copy(chunk, buf[:n])
				select {
				case out <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				if !errors.Is(err, io.EOF) && !errors.Is(err, cancelreader.ErrCanceled) {
					errc <- err
				}
				return
			}
		}
	}()
	return out, errc
}
