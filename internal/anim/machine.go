package anim

import "time"

// State is a position in the view cycle.
type State int

const (
	SystemIdle State = iota
	ToComponent
	ComponentIdle
	ToSystem
)

func (s State) String() string {
	switch s {
	case SystemIdle:
		return "system-idle"
	case ToComponent:
		return "to-component"
	case ComponentIdle:
		return "component-idle"
	case ToSystem:
		return "to-system"
	}
	return "unknown"
}

// Transitional reports whether s is one of the two tween states.
func (s State) Transitional() bool {
	return s == ToComponent || s == ToSystem
}

func (s State) next() State {
	return (s + 1) % 4
}

// Default timings.
const (
	DefaultIdle  = 2 * time.Second
	DefaultTween = 1500 * time.Millisecond
)

// Config controls the dwell times and clock of a Machine. Zero fields take
// their defaults.
type Config struct {
	Idle   time.Duration
	Tween  time.Duration
	Easing Easing
	Now    func() time.Time
}

func (c Config) withDefaults() Config {
	if c.Idle <= 0 {
		c.Idle = DefaultIdle
	}
	if c.Tween <= 0 {
		c.Tween = DefaultTween
	}
	if c.Easing == nil {
		c.Easing = EaseInOutCubic
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	return c
}

// Cycle returns the time one full pass through all four states takes:
// SystemIdle (Idle), ToComponent (Tween), ComponentIdle (Idle) and ToSystem
// (Tween), so 2×Idle + 2×Tween.
func (c Config) Cycle() time.Duration {
	c = c.withDefaults()
	return 2*c.Idle + 2*c.Tween
}

// Machine cycles through the four states and walks a focus index over an
// externally supplied subject sequence. A Machine is bound to one sequence;
// build a new one when the sequence changes.
type Machine struct {
	cfg     Config
	seq     []string
	state   State
	entered time.Time
	focus   int
}

// New starts a machine in SystemIdle focused on the first subject.
func New(sequence []string, cfg Config) *Machine {
	cfg = cfg.withDefaults()
	seq := make([]string, len(sequence))
	copy(seq, sequence)
	return &Machine{
		cfg:     cfg,
		seq:     seq,
		state:   SystemIdle,
		entered: cfg.Now(),
	}
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Focus returns the current index into the sequence.
func (m *Machine) Focus() int { return m.focus }

// Current returns the focused subject, or "" for an empty sequence.
func (m *Machine) Current() string {
	if len(m.seq) == 0 {
		return ""
	}
	return m.seq[m.focus]
}

// Sequence returns a copy of the subject sequence.
func (m *Machine) Sequence() []string {
	out := make([]string, len(m.seq))
	copy(out, m.seq)
	return out
}

// Len returns the sequence length.
func (m *Machine) Len() int { return len(m.seq) }

func (m *Machine) duration(s State) time.Duration {
	if s.Transitional() {
		return m.cfg.Tween
	}
	return m.cfg.Idle
}

// Update advances through every state whose dwell time has fully elapsed.
// Each state's entry time is the previous entry plus its duration, so a late
// call catches up without drifting. It reports whether the state changed.
func (m *Machine) Update() bool {
	now := m.cfg.Now()
	changed := false
	for {
		d := m.duration(m.state)
		if now.Sub(m.entered) < d {
			return changed
		}
		m.entered = m.entered.Add(d)
		m.advance()
		changed = true
	}
}

func (m *Machine) advance() {
	if m.state == ToSystem && len(m.seq) > 0 {
		m.focus = (m.focus + 1) % len(m.seq)
	}
	m.state = m.state.next()
}

// Progress returns the elapsed fraction of the current state in [0, 1].
func (m *Machine) Progress() float64 {
	p := float64(m.cfg.Now().Sub(m.entered)) / float64(m.duration(m.state))
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// TweenProgress maps the cycle onto [0, 1]: 0 while idle in the system view,
// eased up to 1 on the way to the component view, 1 while idle there and
// eased back down to 0.
func (m *Machine) TweenProgress() float64 {
	switch m.state {
	case SystemIdle:
		return 0
	case ComponentIdle:
		return 1
	case ToComponent:
		return m.cfg.Easing(m.Progress())
	default:
		return 1 - m.cfg.Easing(m.Progress())
	}
}

// Jump focuses index (wrapped into the sequence) and restarts in SystemIdle.
func (m *Machine) Jump(index int) {
	if n := len(m.seq); n > 0 {
		m.focus = ((index % n) + n) % n
	}
	m.state = SystemIdle
	m.entered = m.cfg.Now()
}

// Step moves the focus by delta and restarts in SystemIdle.
func (m *Machine) Step(delta int) {
	m.Jump(m.focus + delta)
}

// Toggle switches between the two idle views. A machine caught mid-tween
// finishes the tween at once.
func (m *Machine) Toggle() {
	switch m.state {
	case SystemIdle, ToComponent:
		m.state = ComponentIdle
	default:
		m.state = SystemIdle
	}
	m.entered = m.cfg.Now()
}

// Resume restarts the current state's timer, for use after the caller has
// stopped calling Update for a while.
func (m *Machine) Resume() {
	m.entered = m.cfg.Now()
}
