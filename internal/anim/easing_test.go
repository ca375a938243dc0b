package anim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Easing", func() {
	DescribeTable("endpoints and midpoint",
		func(name string) {
			e, err := EasingByName(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(e(0)).To(BeNumerically("~", 0, 1e-12))
			Expect(e(0.5)).To(BeNumerically("~", 0.5, 1e-12))
			Expect(e(1)).To(BeNumerically("~", 1, 1e-12))
		},
		Entry("cubic", "cubic"),
		Entry("quad", "quad"),
		Entry("linear", "linear"),
	)

	It("is monotonic", func() {
		for _, name := range EasingNames() {
			e, _ := EasingByName(name)
			prev := e(0)
			for i := 1; i <= 100; i++ {
				v := e(float64(i) / 100)
				Expect(v).To(BeNumerically(">=", prev), name)
				prev = v
			}
		}
	})

	It("matches the cubic curve", func() {
		Expect(EaseInOutCubic(0.25)).To(BeNumerically("~", 4*0.25*0.25*0.25, 1e-12))
		Expect(EaseInOutCubic(0.75)).To(BeNumerically("~", 1-math.Pow(0.5, 3)/2, 1e-12))
	})

	It("rejects unknown names", func() {
		_, err := EasingByName("bounce")
		Expect(err).To(MatchError(ErrUnknownEasing))
	})

	It("interpolates", func() {
		Expect(Lerp(10, 20, 0.3)).To(BeNumerically("~", 13, 1e-12))
		x, y := LerpPoint(0, 0, 10, -4, 0.5)
		Expect(x).To(Equal(5.0))
		Expect(y).To(Equal(-2.0))
	})
})

var _ = Describe("Ambient", func() {
	It("breathes around 1", func() {
		Expect(BreathingScale(0, 0)).To(Equal(1.0))
		for i := 0; i < 100; i++ {
			s := BreathingScale(float64(i)*0.13, 0.7)
			Expect(s).To(BeNumerically(">=", 1-DefaultAmbient.BreatheAmp-1e-12))
			Expect(s).To(BeNumerically("<=", 1+DefaultAmbient.BreatheAmp+1e-12))
		}
	})

	It("peaks a quarter period in", func() {
		quarter := 1 / (4 * DefaultAmbient.BreatheFreq)
		Expect(BreathingScale(quarter, 0)).To(BeNumerically("~", 1.03, 1e-9))
	})

	It("drifts within the amplitude", func() {
		dx, dy := Drift(0, 0)
		Expect(dx).To(BeNumerically("~", 0, 1e-12))
		Expect(dy).To(BeNumerically("~", 1, 1e-12))
		for i := 0; i < 100; i++ {
			dx, dy := Drift(float64(i)*0.5, 2.1)
			Expect(math.Abs(dx)).To(BeNumerically("<=", 1))
			Expect(math.Abs(dy)).To(BeNumerically("<=", 1))
		}
	})

	It("desynchronises subjects with different phases", func() {
		Expect(BreathingScale(1.2, 0)).NotTo(Equal(BreathingScale(1.2, 2.4)))
		custom := Ambient{BreatheFreq: 1, BreatheAmp: 0.5, DriftFreq: 1, DriftAmp: 3, DriftPhaseK: 1}
		Expect(custom.BreathingScale(0.25, 0)).To(BeNumerically("~", 1.5, 1e-9))
		dx, _ := custom.Drift(0.25, 0)
		Expect(dx).To(BeNumerically("~", 3, 1e-9))
	})
})
