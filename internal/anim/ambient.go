package anim

import "math"

// Ambient holds the oscillator parameters for idle motion. Frequencies are
// in Hz, the breathing amplitude is a fraction of scale and the drift
// amplitude is in cells.
type Ambient struct {
	BreatheFreq float64
	BreatheAmp  float64
	DriftFreq   float64
	DriftAmp    float64
	// DriftPhaseK skews the vertical phase so drift traces an ellipse-like
	// path rather than a diagonal line.
	DriftPhaseK float64
}

// DefaultAmbient is a slow breathing and glacial drift.
var DefaultAmbient = Ambient{
	BreatheFreq: 0.3,
	BreatheAmp:  0.03,
	DriftFreq:   0.1,
	DriftAmp:    1,
	DriftPhaseK: 1.3,
}

// BreathingScale returns 1 + amp*sin(2*pi*freq*t + phase) for t in seconds.
func (a Ambient) BreathingScale(t, phase float64) float64 {
	return 1 + a.BreatheAmp*math.Sin(2*math.Pi*a.BreatheFreq*t+phase)
}

// Drift returns a small positional offset for t in seconds.
func (a Ambient) Drift(t, phase float64) (dx, dy float64) {
	w := 2 * math.Pi * a.DriftFreq * t
	return a.DriftAmp * math.Sin(w+phase), a.DriftAmp * math.Cos(w+phase*a.DriftPhaseK)
}

// BreathingScale uses DefaultAmbient.
func BreathingScale(t, phase float64) float64 {
	return DefaultAmbient.BreathingScale(t, phase)
}

// Drift uses DefaultAmbient.
func Drift(t, phase float64) (dx, dy float64) {
	return DefaultAmbient.Drift(t, phase)
}
