package scene

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/ambient/internal/anim"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/fb"
	"github.com/san-kum/ambient/internal/graph"
	"github.com/san-kum/ambient/internal/input"
	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/noise"
)

func rowText(f *fb.Framebuffer, y int) string {
	w, _ := f.Size()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(f.Back(x, y).Ch)
	}
	return b.String()
}

func screenText(f *fb.Framebuffer) string {
	_, h := f.Size()
	rows := make([]string, h)
	for y := range rows {
		rows[y] = rowText(f, y)
	}
	return strings.Join(rows, "\n")
}

func inPalette(c fb.Color, colors [5]fb.Color) bool {
	for _, p := range colors {
		if p == c {
			return true
		}
	}
	return false
}

func key(k input.Key) input.Event {
	return input.Event{Kind: input.KindKey, Key: k}
}

func TestPalettes(t *testing.T) {
	if GetPalette("nonexistent").Name != "ocean" {
		t.Error("expected ocean fallback")
	}
	if _, ok := LookupPalette("nonexistent"); ok {
		t.Error("expected lookup to fail")
	}

	names := PaletteNames()
	if len(names) != len(Palettes) || names[0] != "ember" {
		t.Errorf("unexpected palette names %v", names)
	}

	for _, p := range Palettes {
		for _, c := range append(p.Ambient[:], p.Influence[:]...) {
			if fb.Index(int(c)) != c {
				t.Errorf("palette %s has invalid colour %d", p.Name, c)
			}
		}
	}
}

func TestRamp(t *testing.T) {
	colors := PaletteOcean.Ambient
	if ramp(colors, 0) != 17 || ramp(colors, 1) != 21 || ramp(colors, 2) != 21 || ramp(colors, -1) != 17 {
		t.Error("ramp did not clamp to the palette ends")
	}
}

func TestEdgeGlyph(t *testing.T) {
	tests := []struct {
		weight float64
		want   rune
	}{
		{0.95, EdgeStrong},
		{0.8, EdgeMedium},
		{0.6, EdgeMedium},
		{0.4, EdgeWeak},
		{0.1, EdgeFaint},
	}
	for _, tt := range tests {
		if got := EdgeGlyph(tt.weight); got != tt.want {
			t.Errorf("EdgeGlyph(%.2f) = %q, expected %q", tt.weight, got, tt.want)
		}
	}
}

func TestDensityGlyph(t *testing.T) {
	if DensityGlyph(0) != '█' || DensityGlyph(3) != '░' || DensityGlyph(10) != '·' || DensityGlyph(-2) != '█' {
		t.Error("unexpected density glyphs")
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Balaenoptera musculus", 12); got != "Balaenopte.." {
		t.Errorf("got %q", got)
	}
	if got := Truncate("Aves", 12); got != "Aves" {
		t.Errorf("got %q", got)
	}
}

func TestDrawBox(t *testing.T) {
	f := fb.New(20, 5)
	w := DrawBox(f, 10, 2, "Node", "domain", 208, 16)
	if w != 8 {
		t.Errorf("expected width 8, got %d", w)
	}

	if got := rowText(f, 1); !strings.Contains(got, "╔══════╗") {
		t.Errorf("unexpected top row %q", got)
	}
	if got := rowText(f, 2); !strings.Contains(got, "║ Node ║") {
		t.Errorf("unexpected middle row %q", got)
	}
	if c := f.Back(6, 1); c.Ch != '╔' || c.Fg != 208 {
		t.Errorf("expected box to start at column 6, got %+v", c)
	}
}

func TestShade(t *testing.T) {
	if math.Abs(Shade(-1, 0.6, 0.3)-0.3) > 1e-9 {
		t.Errorf("expected brightness floor, got %f", Shade(-1, 0.6, 0.3))
	}
	if math.Abs(Shade(1, 0.6, 0.3)-1) > 1e-9 {
		t.Error("expected full level at the top")
	}
	if Shade(0, 0, 0) != 0.5 {
		t.Error("zero contrast should be linear")
	}
	for v := -1.5; v <= 1.5; v += 0.1 {
		if s := Shade(v, 0.6, 0.3); s < 0 || s > 1 || math.IsNaN(s) {
			t.Fatalf("Shade(%f) out of range: %f", v, s)
		}
	}
}

func TestInfluence(t *testing.T) {
	if got := Influence(5, 5, 5, 5, 15, 0.8); got != 0.8 {
		t.Errorf("expected peak strength, got %f", got)
	}
	near := Influence(7, 5, 5, 5, 15, 1)
	far := Influence(20, 5, 5, 5, 15, 1)
	if !(near > far) {
		t.Errorf("expected falloff, got near %f far %f", near, far)
	}
	if Influence(5, 7, 5, 5, 15, 1) >= Influence(7, 5, 5, 5, 15, 1) {
		t.Error("rows should count double")
	}
	if Influence(0, 0, 0, 0, 0, 1) != 0 {
		t.Error("zero radius should have no influence")
	}
}

func TestFieldSceneDraw(t *testing.T) {
	cfg := config.GetPreset("field")
	s := NewField(noise.New(42), cfg, PaletteOcean)
	f := fb.New(80, 24)

	s.Draw(f, loop.Frame{Elapsed: time.Second, FPS: 24})

	if x, y := s.Cursor(); x != 40 || y != 12 {
		t.Errorf("expected cursor at centre, got %d,%d", x, y)
	}
	screen := screenText(f)
	for _, want := range []string{"AMBIENT NOISE FIELD", "INPUT DEBUG", "24.0 fps", "Procedural Noise Field", "cursor: x=40 y=12", "x: 40 y: 12"} {
		if !strings.Contains(screen, want) {
			t.Errorf("expected %q on screen", want)
		}
	}

	ramp := []rune(FieldRamp)
	corner := f.Back(0, 23).Ch
	found := false
	for _, r := range ramp {
		if r == corner {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a ramp glyph in the corner, got %q", corner)
	}
}

func TestFieldSceneDeterministic(t *testing.T) {
	cfg := config.GetPreset("field")
	a, b := fb.New(40, 12), fb.New(40, 12)
	NewField(noise.New(7), cfg, PaletteOcean).Draw(a, loop.Frame{Elapsed: 3 * time.Second})
	NewField(noise.New(7), cfg, PaletteOcean).Draw(b, loop.Frame{Elapsed: 3 * time.Second})
	if screenText(a) != screenText(b) {
		t.Error("same seed and time should render identically")
	}
}

func TestFieldSceneCursor(t *testing.T) {
	cfg := config.GetPreset("field")
	s := NewField(noise.New(1), cfg, PaletteOcean)
	f := fb.New(10, 6)
	s.Draw(f, loop.Frame{})

	s.Handle(key(input.KeyLeft), loop.Frame{})
	if x, _ := s.Cursor(); x != 3 {
		t.Errorf("expected x=3, got %d", x)
	}
	for i := 0; i < 10; i++ {
		s.Handle(key(input.KeyUp), loop.Frame{})
		s.Handle(key(input.KeyRight), loop.Frame{})
	}
	if x, y := s.Cursor(); x != 9 || y != 0 {
		t.Errorf("expected cursor clamped to 9,0, got %d,%d", x, y)
	}

	s.Handle(input.Event{Kind: input.KindRaw, Raw: "1b,5b,5a"}, loop.Frame{})
	big := fb.New(80, 24)
	s.Draw(big, loop.Frame{})
	if !strings.Contains(screenText(big), "last raw: 1b,5b,5a") {
		t.Error("expected the raw input in the debug panel")
	}
	if !strings.Contains(screenText(big), "input events: 22") {
		t.Error("expected the event counter in the debug panel")
	}
}

func TestFieldSceneFollowsMouse(t *testing.T) {
	cfg := config.GetPreset("field")
	s := NewField(noise.New(1), cfg, PaletteOcean)
	f := fb.New(80, 24)
	s.Draw(f, loop.Frame{MouseSeen: true, Mouse: input.MouseState{X: 5, Y: 20}})
	if c := f.Back(5, 20); c.Ch != '+' {
		t.Errorf("expected crosshair under the mouse, got %+v", c)
	}
	if !inPalette(f.Back(6, 20).Fg, PaletteOcean.Influence) {
		t.Errorf("expected influence colours next to the mouse, got %+v", f.Back(6, 20))
	}
	if !inPalette(f.Back(0, 0).Fg, PaletteOcean.Ambient) {
		t.Errorf("expected ambient colours far from the mouse, got %+v", f.Back(0, 0))
	}
	if !strings.Contains(screenText(f), "Mouse detected") {
		t.Error("expected mouse hint")
	}
}

type sphereFixture struct {
	now   time.Time
	scene *SphereScene
	f     *fb.Framebuffer
}

func newSphereFixture(t *testing.T) *sphereFixture {
	t.Helper()
	fx := &sphereFixture{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), f: fb.New(80, 24)}

	g, err := graph.Load("knowledge")
	if err != nil {
		t.Fatal(err)
	}
	cfg := config.DefaultConfig()
	s, err := NewSphere(g, noise.New(3), cfg, PaletteOcean, SphereOptions{
		Datasets: []string{"knowledge", "animalia"},
		Now:      func() time.Time { return fx.now },
	})
	if err != nil {
		t.Fatal(err)
	}
	fx.scene = s
	return fx
}

func (fx *sphereFixture) draw() string {
	fx.scene.Draw(fx.f, loop.Frame{FPS: 20})
	return screenText(fx.f)
}

func TestSphereSystemFrame(t *testing.T) {
	fx := newSphereFixture(t)
	screen := fx.draw()

	for _, want := range []string{"SPHERE OF INFLUENCE: Systems Thinking", "System Frame", "contains...", "Emergence", "Auto-cycling", "1/3"} {
		if !strings.Contains(screen, want) {
			t.Errorf("expected %q on screen:\n%s", want, screen)
		}
	}
}

func TestSphereCycles(t *testing.T) {
	fx := newSphereFixture(t)
	fx.draw()

	fx.now = fx.now.Add(2*time.Second + 750*time.Millisecond)
	screen := fx.draw()
	if !strings.Contains(screen, "zooming in...") || !strings.Contains(screen, "Transitioning...") {
		t.Errorf("expected transition frame:\n%s", screen)
	}
	if !strings.Contains(screen, strings.Repeat("█", 10)+strings.Repeat("░", 10)) {
		t.Error("expected a half-full progress bar")
	}

	fx.now = fx.now.Add(time.Second)
	screen = fx.draw()
	if !strings.Contains(screen, "Component Frame") || !strings.Contains(screen, "participates in...") {
		t.Errorf("expected component frame:\n%s", screen)
	}

	fx.now = fx.now.Add(2*time.Second + 1500*time.Millisecond)
	fx.draw()
	if got := fx.scene.Machine().Current(); got != "emergence" {
		t.Errorf("expected focus to advance to emergence, got %q", got)
	}
}

func TestSphereManualControl(t *testing.T) {
	fx := newSphereFixture(t)
	s := fx.scene

	s.Handle(key(input.KeyRight), loop.Frame{})
	if s.Machine().Focus() != 0 {
		t.Error("arrows should be ignored while auto-cycling")
	}

	s.Handle(key(input.KeySpace), loop.Frame{})
	if s.Auto() {
		t.Fatal("expected manual mode")
	}
	s.Handle(key(input.KeyRight), loop.Frame{})
	if s.Machine().Current() != "emergence" {
		t.Errorf("expected emergence, got %q", s.Machine().Current())
	}
	s.Handle(key(input.KeyLeft), loop.Frame{})
	s.Handle(key(input.KeyLeft), loop.Frame{})
	if s.Machine().Current() != "feedback-loops" {
		t.Errorf("expected wrap to feedback-loops, got %q", s.Machine().Current())
	}

	s.Handle(key(input.KeyUp), loop.Frame{})
	if s.Machine().State() != anim.ComponentIdle {
		t.Errorf("expected component view, got %s", s.Machine().State())
	}

	fx.now = fx.now.Add(time.Minute)
	if !strings.Contains(fx.draw(), "Manual mode") {
		t.Error("expected manual hint")
	}
	if s.Machine().State() != anim.ComponentIdle {
		t.Error("manual mode should not advance the machine")
	}

	s.Handle(input.Event{Kind: input.KindKey, Key: input.KeyDigit, Digit: 2}, loop.Frame{})
	if s.Machine().Current() != "emergence" || s.Machine().State() != anim.SystemIdle {
		t.Errorf("expected jump to emergence, got %q in %s", s.Machine().Current(), s.Machine().State())
	}
	s.Handle(input.Event{Kind: input.KindKey, Key: input.KeyDigit, Digit: 9}, loop.Frame{})
	if s.Machine().Current() != "emergence" {
		t.Error("digit beyond the sequence should be ignored")
	}
}

func TestSphereDatasetSwitch(t *testing.T) {
	fx := newSphereFixture(t)
	s := fx.scene
	s.Handle(key(input.KeySpace), loop.Frame{})
	s.Handle(key(input.KeyRight), loop.Frame{})
	before := s.Machine()

	s.Handle(key(input.KeyTab), loop.Frame{})
	if s.Graph().Name() != "animalia" {
		t.Fatalf("expected animalia, got %s", s.Graph().Name())
	}
	if s.Machine() == before {
		t.Error("expected a new machine for the new dataset")
	}
	if s.Machine().Current() != "animalia" || before.Current() != "emergence" {
		t.Error("old machine should be untouched and the new one should start at the beginning")
	}
	if !strings.Contains(fx.draw(), "Tree of Life") {
		t.Error("expected the new dataset title")
	}

	s.Handle(key(input.KeyTab), loop.Frame{})
	if s.Graph().Name() != "knowledge" {
		t.Errorf("expected to cycle back to knowledge, got %s", s.Graph().Name())
	}
}

func TestNewSphereRejectsUnknownEasing(t *testing.T) {
	g, _ := graph.Load("knowledge")
	cfg := config.DefaultConfig()
	cfg.Animation.Easing = "bounce"
	if _, err := NewSphere(g, noise.New(1), cfg, PaletteOcean, SphereOptions{}); err == nil {
		t.Error("expected unknown easing error")
	}
}

func TestProgressBar(t *testing.T) {
	if got := ProgressBar(0.5, 4); got != "██░░" {
		t.Errorf("got %q", got)
	}
	if got := ProgressBar(2, 3); got != "███" {
		t.Errorf("got %q", got)
	}
}
