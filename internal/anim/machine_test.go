package anim

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Machine", func() {
	var (
		clock *fakeClock
		m     *Machine
		cfg   Config
	)

	BeforeEach(func() {
		clock = newFakeClock()
		cfg = Config{Idle: 2 * time.Second, Tween: 1500 * time.Millisecond, Now: clock.Now}
		m = New([]string{"a", "b", "c"}, cfg)
	})

	It("starts idle in the system view", func() {
		Expect(m.State()).To(Equal(SystemIdle))
		Expect(m.Focus()).To(Equal(0))
		Expect(m.Current()).To(Equal("a"))
		Expect(m.TweenProgress()).To(Equal(0.0))
	})

	It("walks the cycle in order", func() {
		Expect(m.Update()).To(BeFalse())

		clock.Advance(2 * time.Second)
		Expect(m.Update()).To(BeTrue())
		Expect(m.State()).To(Equal(ToComponent))

		clock.Advance(1500 * time.Millisecond)
		m.Update()
		Expect(m.State()).To(Equal(ComponentIdle))

		clock.Advance(2 * time.Second)
		m.Update()
		Expect(m.State()).To(Equal(ToSystem))
		Expect(m.Focus()).To(Equal(0))

		clock.Advance(1500 * time.Millisecond)
		m.Update()
		Expect(m.State()).To(Equal(SystemIdle))
		Expect(m.Focus()).To(Equal(1))
	})

	It("returns to SystemIdle with the focus advanced after one full cycle", func() {
		clock.Advance(cfg.Cycle())
		m.Update()
		Expect(m.State()).To(Equal(SystemIdle))
		Expect(m.Focus()).To(Equal(1))
		Expect(m.Progress()).To(Equal(0.0))
	})

	It("wraps the focus around the sequence", func() {
		for i := 0; i < 3; i++ {
			clock.Advance(cfg.Cycle())
			m.Update()
		}
		Expect(m.Focus()).To(Equal(0))
	})

	It("catches up after a long gap without drifting", func() {
		clock.Advance(cfg.Cycle() + 2*time.Second + 750*time.Millisecond)
		m.Update()
		Expect(m.State()).To(Equal(ToComponent))
		Expect(m.Focus()).To(Equal(1))
		Expect(m.Progress()).To(BeNumerically("~", 0.5, 1e-9))
	})

	It("clamps progress", func() {
		clock.Advance(time.Second)
		Expect(m.Progress()).To(BeNumerically("~", 0.5, 1e-9))
		clock.Advance(10 * time.Second)
		Expect(m.Progress()).To(Equal(1.0))
	})

	It("keeps tween progress continuous at every boundary", func() {
		const eps = time.Millisecond
		boundaries := []time.Duration{
			2 * time.Second,
			3500 * time.Millisecond,
			5500 * time.Millisecond,
			7 * time.Second,
		}

		var elapsed time.Duration
		for _, b := range boundaries {
			clock.Advance(b - eps - elapsed)
			m.Update()
			before := m.TweenProgress()

			clock.Advance(2 * eps)
			m.Update()
			after := m.TweenProgress()
			elapsed = b + eps

			Expect(after).To(BeNumerically("~", before, 0.01), "boundary at %s", b)
		}
	})

	It("tweens up and back down through the easing", func() {
		clock.Advance(2*time.Second + 750*time.Millisecond)
		m.Update()
		Expect(m.TweenProgress()).To(BeNumerically("~", 0.5, 1e-9))

		clock.Advance(750*time.Millisecond + 2*time.Second + 375*time.Millisecond)
		m.Update()
		Expect(m.State()).To(Equal(ToSystem))
		Expect(m.TweenProgress()).To(BeNumerically("~", 1-EaseInOutCubic(0.25), 1e-9))
	})

	Describe("manual control", func() {
		It("jumps to a wrapped index and restarts idle", func() {
			clock.Advance(3 * time.Second)
			m.Update()
			m.Jump(4)
			Expect(m.Focus()).To(Equal(1))
			Expect(m.State()).To(Equal(SystemIdle))
			Expect(m.Progress()).To(Equal(0.0))

			m.Jump(-1)
			Expect(m.Current()).To(Equal("c"))
		})

		It("steps in both directions", func() {
			m.Step(-1)
			Expect(m.Focus()).To(Equal(2))
			m.Step(2)
			Expect(m.Focus()).To(Equal(1))
		})

		It("toggles between the idle views", func() {
			m.Toggle()
			Expect(m.State()).To(Equal(ComponentIdle))
			Expect(m.TweenProgress()).To(Equal(1.0))
			m.Toggle()
			Expect(m.State()).To(Equal(SystemIdle))
		})

		It("restarts the state timer on resume", func() {
			clock.Advance(10 * time.Second)
			m.Resume()
			Expect(m.Update()).To(BeFalse())
			Expect(m.State()).To(Equal(SystemIdle))
		})
	})

	It("tolerates an empty sequence", func() {
		empty := New(nil, cfg)
		clock.Advance(cfg.Cycle())
		empty.Update()
		Expect(empty.Current()).To(Equal(""))
		Expect(empty.Focus()).To(Equal(0))
		empty.Step(1)
		Expect(empty.Focus()).To(Equal(0))
	})

	It("copies the sequence", func() {
		seq := []string{"x", "y"}
		mm := New(seq, cfg)
		seq[0] = "z"
		Expect(mm.Current()).To(Equal("x"))
		Expect(mm.Sequence()).To(Equal([]string{"x", "y"}))
	})

	It("fills in default timings", func() {
		d := New([]string{"a"}, Config{Now: clock.Now})
		clock.Advance(DefaultIdle - time.Millisecond)
		d.Update()
		Expect(d.State()).To(Equal(SystemIdle))
		clock.Advance(time.Millisecond)
		d.Update()
		Expect(d.State()).To(Equal(ToComponent))
		Expect(Config{}.Cycle()).To(Equal(7 * time.Second))
	})
})
