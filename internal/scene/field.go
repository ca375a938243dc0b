package scene

import (
	"fmt"
	"math"
	"runtime"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/fb"
	"github.com/san-kum/ambient/internal/input"
	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/noise"
)

// FieldRamp runs from empty to solid.
const FieldRamp = " .·:;░▒▓█"

const debugWidth = 34

// FieldScene renders a full-screen noise field that brightens and changes
// colour around the pointer. Without a mouse, the arrow keys or WASD steer a
// virtual cursor.
type FieldScene struct {
	noise  *noise.Field
	nc     config.NoiseConfig
	cursor config.CursorConfig
	pal    Palette
	ramp   []rune

	width, height    int
	cursorX, cursorY int
	placed           bool

	events  int
	lastKey string
	lastRaw string
}

// NewField builds a field scene from the noise and cursor settings of cfg.
func NewField(field *noise.Field, cfg *config.Config, pal Palette) *FieldScene {
	return &FieldScene{
		noise:  field,
		nc:     cfg.Noise,
		cursor: cfg.Cursor,
		pal:    pal,
		ramp:   []rune(FieldRamp),
	}
}

// Cursor returns the keyboard cursor position.
func (s *FieldScene) Cursor() (x, y int) { return s.cursorX, s.cursorY }

func (s *FieldScene) focus(fr loop.Frame) (int, int) {
	if fr.MouseSeen {
		return fr.Mouse.X, fr.Mouse.Y
	}
	return s.cursorX, s.cursorY
}

func (s *FieldScene) Draw(f *fb.Framebuffer, fr loop.Frame) {
	w, h := f.Size()
	s.width, s.height = w, h
	if !s.placed {
		s.cursorX, s.cursorY = w/2, h/2
		s.placed = true
	}
	s.cursorX = clampInt(s.cursorX, 0, w-1)
	s.cursorY = clampInt(s.cursorY, 0, h-1)

	t := fr.Elapsed.Seconds()
	fx, fy := s.focus(fr)

	s.drawField(f, t, fx, fy)
	s.drawOverlay(f, fr, t, fx, fy)
}

func (s *FieldScene) drawField(f *fb.Framebuffer, t float64, fx, fy int) {
	nz := t * s.nc.TimeScale
	for y := 0; y < s.height; y++ {
		ny := float64(y) * s.nc.Scale * 2
		for x := 0; x < s.width; x++ {
			nx := float64(x) * s.nc.Scale
			v := s.noise.FractalSum(nx, ny, nz, s.nc.Octaves, s.nc.Persistence)

			infl := Influence(x, y, fx, fy, s.cursor.Radius, s.cursor.Strength)
			if infl > 0 {
				perturb := s.noise.FractalSum(nx*2, ny*2, nz*3, 2, 0.5) * 0.3
				v = v + infl*(1-v) + perturb*infl
			}

			level := Shade(v, s.nc.Contrast, s.nc.Brightness)
			colors := s.pal.Ambient
			if infl > 0.01 {
				colors = s.pal.Influence
			}
			f.Set(x, y, glyph(s.ramp, level), ramp(colors, level), fb.NoColor)
		}
	}
}

func (s *FieldScene) drawOverlay(f *fb.Framebuffer, fr loop.Frame, t float64, fx, fy int) {
	w, h := s.width, s.height
	p := s.pal

	title := " AMBIENT NOISE FIELD "
	f.WriteText(Center(w, title), 1, title, p.Node, fb.NoColor)

	controls := " WASD/Arrows to move cursor "
	if fr.MouseSeen {
		controls = " Mouse detected "
	}
	f.WriteText(Center(w, controls), 2, controls, p.Dim, fb.NoColor)

	mouse := "waiting..."
	if fr.MouseSeen {
		mouse = "YES"
	}
	lastRaw := s.lastRaw
	if lastRaw == "" {
		lastRaw = "(none)"
	}
	lastKey := s.lastKey
	if lastKey == "" {
		lastKey = "(none)"
	}
	lines := []string{
		"platform: " + runtime.GOOS,
		"mouse support: " + mouse,
		fmt.Sprintf("input events: %d", s.events),
		"last raw: " + Truncate(lastRaw, 20),
		fmt.Sprintf("cursor: x=%d y=%d", fx, fy),
		"last key: " + lastKey,
	}

	dx := w - debugWidth - 2
	f.WriteText(dx, 1, "┌─ INPUT DEBUG "+strings.Repeat("─", debugWidth-15)+"┐", p.Dim, fb.NoColor)
	for i, line := range lines {
		line = runewidth.FillRight(Truncate(line, debugWidth-3), debugWidth-3)
		f.WriteText(dx, 2+i, "│ "+line+"│", p.Dim, fb.NoColor)
	}
	f.WriteText(dx, 2+len(lines), "└"+strings.Repeat("─", debugWidth-1)+"┘", p.Dim, fb.NoColor)

	f.Set(fx, fy, '+', p.Node, fb.NoColor)

	status := fmt.Sprintf(" %.1f fps | x:%3d y:%3d | Ctrl+C to exit ", fr.FPS, fx, fy)
	f.WriteText(Center(w, status), h-2, status, p.Status, fb.NoColor)

	const boxW, boxH = 30, 5
	bx := (w - boxW) / 2
	by := (h - boxH) / 2
	f.WriteText(bx, by, "╭"+strings.Repeat("─", boxW-2)+"╮", p.Node, fb.NoColor)
	for i := 1; i < boxH-1; i++ {
		f.WriteText(bx, by+i, "│"+strings.Repeat(" ", boxW-2)+"│", p.Node, fb.NoColor)
	}
	f.WriteText(bx, by+boxH-1, "╰"+strings.Repeat("─", boxW-2)+"╯", p.Node, fb.NoColor)

	line1 := "Procedural Noise Field"
	line2 := "Mouse-Reactive Ambient"
	f.WriteText(bx+Center(boxW, line1), by+1, line1, p.Node, fb.NoColor)
	f.WriteText(bx+Center(boxW, line2), by+2, line2, p.Status, fb.NoColor)

	f.Set(bx+boxW/2, by+3, pulse(t), p.Node, fb.NoColor)
}

// pulse cycles a dot through three fill levels.
func pulse(t float64) rune {
	v := math.Sin(t*2)*0.5 + 0.5
	switch {
	case v > 0.7:
		return '●'
	case v > 0.3:
		return '◐'
	}
	return '○'
}

func (s *FieldScene) Handle(ev input.Event, fr loop.Frame) bool {
	s.events++
	switch ev.Kind {
	case input.KindRaw:
		s.lastRaw = ev.Raw
	case input.KindKey:
		s.lastKey = ev.Key.String()
		s.move(ev.Key)
	}
	return true
}

func (s *FieldScene) move(k input.Key) {
	step := int(math.Max(1, s.cursor.Speed))
	maxX, maxY := max(0, s.width-1), max(0, s.height-1)
	switch k {
	case input.KeyUp:
		s.cursorY = clampInt(s.cursorY-step, 0, maxY)
	case input.KeyDown:
		s.cursorY = clampInt(s.cursorY+step, 0, maxY)
	case input.KeyLeft:
		s.cursorX = clampInt(s.cursorX-step, 0, maxX)
	case input.KeyRight:
		s.cursorX = clampInt(s.cursorX+step, 0, maxX)
	}
}
