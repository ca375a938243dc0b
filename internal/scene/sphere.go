package scene

import (
	"fmt"
	"io"
	"math"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/ambient/internal/anim"
	"github.com/san-kum/ambient/internal/config"
	"github.com/san-kum/ambient/internal/fb"
	"github.com/san-kum/ambient/internal/graph"
	"github.com/san-kum/ambient/internal/input"
	"github.com/san-kum/ambient/internal/loop"
	"github.com/san-kum/ambient/internal/noise"
)

// SubstrateRamp is the sparse ramp drawn behind the graph.
const SubstrateRamp = " ·.,:;"

// Layout constants, in cells.
const (
	systemArc     = 18
	componentArc  = 16
	focusLabelMax = 16
	childLabelMax = 12
	sideLabelMax  = 10
	maxChildren   = 5
	maxContext    = 3
	progressWidth = 20
)

// view pairs a dataset with the machine cycling through it. A dataset
// switch replaces the whole pair.
type view struct {
	graph   *graph.Graph
	machine *anim.Machine
}

// SphereOptions are the optional collaborators of a SphereScene.
type SphereOptions struct {
	// Datasets lists the names Tab cycles through.
	Datasets []string
	// Load resolves a dataset name; defaults to graph.Load.
	Load   func(name string) (*graph.Graph, error)
	Logger *log.Logger
	Now    func() time.Time
}

// SphereScene draws a graph's focus subject and its neighbourhood over a
// noise substrate, cycling subjects with an anim.Machine.
type SphereScene struct {
	noise   *noise.Field
	nc      config.NoiseConfig
	cursor  config.CursorConfig
	animCfg anim.Config
	pal     Palette
	ambient anim.Ambient
	ramp    []rune
	opts    SphereOptions
	log     *log.Logger

	current atomic.Pointer[view]
	auto    bool
}

// NewSphere builds the scene for g. The easing named in cfg must exist.
func NewSphere(g *graph.Graph, field *noise.Field, cfg *config.Config, pal Palette, opts SphereOptions) (*SphereScene, error) {
	easing, err := anim.EasingByName(cfg.Animation.Easing)
	if err != nil {
		return nil, err
	}
	if opts.Load == nil {
		opts.Load = graph.Load
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &SphereScene{
		noise:  field,
		nc:     cfg.Noise,
		cursor: cfg.Cursor,
		animCfg: anim.Config{
			Idle:   cfg.Animation.Idle,
			Tween:  cfg.Animation.Tween,
			Easing: easing,
			Now:    opts.Now,
		},
		pal:     pal,
		ambient: anim.DefaultAmbient,
		ramp:    []rune(SubstrateRamp),
		opts:    opts,
		log:     logger,
		auto:    true,
	}
	s.SetGraph(g)
	return s, nil
}

// SetGraph swaps in a new dataset with a fresh machine. It is safe to call
// from any goroutine.
func (s *SphereScene) SetGraph(g *graph.Graph) {
	s.current.Store(&view{graph: g, machine: anim.New(g.Sequence(), s.animCfg)})
	s.log.Info("dataset selected", "name", g.Name(), "nodes", g.Len(), "sequence", len(g.Sequence()))
}

// Graph returns the dataset currently shown.
func (s *SphereScene) Graph() *graph.Graph { return s.current.Load().graph }

// Machine returns the machine for the current dataset.
func (s *SphereScene) Machine() *anim.Machine { return s.current.Load().machine }

// Auto reports whether subjects advance on their own.
func (s *SphereScene) Auto() bool { return s.auto }

func (s *SphereScene) Draw(f *fb.Framebuffer, fr loop.Frame) {
	v := s.current.Load()
	m := v.machine
	if s.auto {
		m.Update()
	}

	focus, ok := v.graph.Node(m.Current())
	if !ok {
		return
	}

	w, h := f.Size()
	cx, cy := w/2, h/2
	t := fr.Elapsed.Seconds()

	s.drawSubstrate(f, t, cx, cy)

	switch m.State() {
	case anim.SystemIdle:
		s.drawSystem(f, v.graph, focus, t, cx, cy)
	case anim.ComponentIdle:
		s.drawComponent(f, v.graph, focus, t, cx, cy)
	default:
		s.drawTransition(f, focus, m, cx, cy)
	}

	s.drawChrome(f, v.graph, focus, m, fr)
}

func (s *SphereScene) drawSubstrate(f *fb.Framebuffer, t float64, fx, fy int) {
	w, h := f.Size()
	nz := t * s.nc.TimeScale
	for y := 0; y < h; y++ {
		ny := float64(y) * s.nc.Scale * 2
		for x := 0; x < w; x++ {
			v := s.noise.FractalSum(float64(x)*s.nc.Scale, ny, nz, s.nc.Octaves, s.nc.Persistence)
			// Radius here is one standard deviation, so widen it to three.
			infl := Influence(x, y, fx, fy, s.cursor.Radius*3, 1)

			level := clamp01(v*0.5 + 0.5 + infl*s.cursor.Strength)
			shade := s.pal.BgDim
			if math.Min(1, infl*2) > 0.5 {
				shade = s.pal.BgBright
			}
			f.Set(x, y, glyph(s.ramp, level), shade, fb.NoColor)
		}
	}
}

// arc spreads n points around an ellipse squashed vertically for the cell
// aspect, starting at the top.
func arc(n, cx, cy int, radius float64) [][2]int {
	pts := make([][2]int, n)
	for i := 0; i < n; i++ {
		a := float64(i)/float64(n)*2*math.Pi - math.Pi/2
		pts[i] = [2]int{
			int(math.Round(float64(cx) + math.Cos(a)*radius)),
			int(math.Round(float64(cy) + math.Sin(a)*radius*0.5)),
		}
	}
	return pts
}

func (s *SphereScene) drawSystem(f *fb.Framebuffer, g *graph.Graph, focus graph.Node, t float64, cx, cy int) {
	p := s.pal
	children := g.Children(focus.ID)
	if len(children) > maxChildren {
		children = children[:maxChildren]
	}

	DrawBox(f, cx, cy-6, focus.Label, focus.Type, p.Accent, focusLabelMax)
	f.WriteText(cx-6, cy-3, "contains...", p.Dim, fb.NoColor)
	f.Set(cx, cy-2, '│', p.Dim, fb.NoColor)
	f.Set(cx, cy-1, '┬', p.Dim, fb.NoColor)

	if len(children) == 0 {
		f.WriteText(cx-4, cy+2, "(no children)", p.Dim, fb.NoColor)
		return
	}

	radius := systemArc * s.ambient.BreathingScale(t, focus.Phase)
	for i, pt := range arc(len(children), cx, cy+3, radius) {
		child := children[i]
		dx, dy := s.ambient.Drift(t, child.Node.Phase)
		x := pt[0] + int(math.Round(dx))
		y := pt[1] + int(math.Round(dy*0.5))

		// Weighted bus from the centre connector to this child.
		edge := EdgeGlyph(child.Weight)
		lo, hi := min(cx, x), max(cx, x)
		for col := lo + 1; col < hi; col++ {
			f.Set(col, cy-1, edge, p.Dim, fb.NoColor)
		}
		f.Set(x, cy, '│', p.Dim, fb.NoColor)
		f.Set(x, cy+1, '▼', p.Dim, fb.NoColor)
		DrawBox(f, x, y, child.Node.Label, child.Node.Type, p.Node, childLabelMax)
	}
}

func (s *SphereScene) drawComponent(f *fb.Framebuffer, g *graph.Graph, focus graph.Node, t float64, cx, cy int) {
	p := s.pal
	parents := g.Parents(focus.ID)
	if len(parents) > maxContext {
		parents = parents[:maxContext]
	}
	children := g.Children(focus.ID)
	if len(children) > maxContext {
		children = children[:maxContext]
	}

	if len(parents) > 0 {
		f.WriteText(cx-7, cy-8, "participates in...", p.Dim, fb.NoColor)
		for i, pt := range arc(len(parents), cx, cy-5, componentArc) {
			parent := parents[i].Node
			DrawBox(f, pt[0], pt[1], parent.Label, parent.Type, p.Dim, sideLabelMax)
			f.Set(pt[0], pt[1]+2, '│', p.Dim, fb.NoColor)
		}
		f.Set(cx, cy-2, '┴', p.Dim, fb.NoColor)
	}

	f.Set(cx, cy-1, '▼', p.Dim, fb.NoColor)
	DrawBox(f, cx, cy+1, focus.Label, focus.Type, p.Accent, focusLabelMax)
	f.Set(cx, cy+3, '▼', p.Dim, fb.NoColor)

	if len(children) == 0 {
		return
	}
	f.Set(cx, cy+4, '┬', p.Dim, fb.NoColor)
	radius := componentArc * s.ambient.BreathingScale(t, focus.Phase)
	for i, pt := range arc(len(children), cx, cy+7, radius) {
		child := children[i].Node
		f.Set(pt[0], cy+5, '│', p.Dim, fb.NoColor)
		f.Set(pt[0], cy+6, '▼', p.Dim, fb.NoColor)
		DrawBox(f, pt[0], pt[1], child.Label, child.Type, p.Node, sideLabelMax)
	}
}

func (s *SphereScene) drawTransition(f *fb.Framebuffer, focus graph.Node, m *anim.Machine, cx, cy int) {
	p := s.pal
	progress := m.TweenProgress()

	label := "zooming out..."
	if m.State() == anim.ToComponent {
		label = "zooming in..."
	}

	// Slide the focus box between its system and component positions.
	x, y := anim.LerpPoint(float64(cx), float64(cy-6), float64(cx), float64(cy+1), progress)
	DrawBox(f, int(math.Round(x)), int(math.Round(y)), focus.Label, focus.Type, p.Accent, focusLabelMax)
	f.WriteText(cx-len(label)/2, cy+4, label, p.Dim, fb.NoColor)
	f.WriteText(cx-progressWidth/2, cy+6, ProgressBar(progress, progressWidth), p.Dim, fb.NoColor)
}

// ProgressBar renders progress in [0, 1] as solid cells followed by light
// shade.
func ProgressBar(progress float64, width int) string {
	filled := int(clamp01(progress) * float64(width))
	return strings.Repeat(string(DensityGlyph(0)), filled) + strings.Repeat(string(DensityGlyph(3)), width-filled)
}

var stateLabels = map[anim.State]string{
	anim.SystemIdle:    "System Frame",
	anim.ToComponent:   "Transitioning...",
	anim.ComponentIdle: "Component Frame",
	anim.ToSystem:      "Transitioning...",
}

func (s *SphereScene) navHint() string {
	if s.auto {
		return "Auto-cycling (press Space to take control)"
	}
	return "Manual mode (←→ to navigate, Space for auto)"
}

func (s *SphereScene) drawChrome(f *fb.Framebuffer, g *graph.Graph, focus graph.Node, m *anim.Machine, fr loop.Frame) {
	p := s.pal
	w, h := f.Size()

	title := fmt.Sprintf("═══ SPHERE OF INFLUENCE: %s ═══", g.Title())
	f.WriteText(Center(w, title), 1, title, p.Node, fb.NoColor)
	f.WriteText(2, 1, stateLabels[m.State()], p.Dim, fb.NoColor)

	pos := fmt.Sprintf("%d/%d", m.Focus()+1, m.Len())
	f.WriteText(w-len(pos)-2, 1, pos, p.Dim, fb.NoColor)

	f.WriteText(2, h-2, s.navHint(), p.Dim, fb.NoColor)

	status := fmt.Sprintf("%s | %.0f fps | Space: toggle | ←→: navigate | Tab: dataset | Ctrl+C: exit", focus.Label, fr.FPS)
	f.WriteText(Center(w, status), h-1, status, p.Dim, fb.NoColor)
}

func (s *SphereScene) Handle(ev input.Event, fr loop.Frame) bool {
	if ev.Kind != input.KindKey {
		return true
	}
	m := s.current.Load().machine

	switch ev.Key {
	case input.KeySpace:
		s.auto = !s.auto
		if s.auto {
			m.Resume()
		}
	case input.KeyTab:
		s.nextDataset()
	case input.KeyDigit:
		if ev.Digit-1 < m.Len() {
			m.Jump(ev.Digit - 1)
		}
	case input.KeyLeft:
		if !s.auto {
			m.Step(-1)
		}
	case input.KeyRight:
		if !s.auto {
			m.Step(1)
		}
	case input.KeyUp, input.KeyDown:
		if !s.auto {
			m.Toggle()
		}
	}
	return true
}

func (s *SphereScene) nextDataset() {
	names := s.opts.Datasets
	if len(names) < 2 {
		return
	}
	cur := s.Graph().Name()
	next := names[0]
	for i, n := range names {
		if n == cur {
			next = names[(i+1)%len(names)]
			break
		}
	}
	g, err := s.opts.Load(next)
	if err != nil {
		s.log.Error("dataset switch failed", "name", next, "err", err)
		return
	}
	s.SetGraph(g)
}
