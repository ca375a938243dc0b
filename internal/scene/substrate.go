package scene

import "math"

// Shade maps a noise value in [-1, 1] to a level in [0, 1]: the value is
// normalised, raised to 1/contrast and lifted by brightness. A non-positive
// contrast leaves the curve linear.
func Shade(v, contrast, brightness float64) float64 {
	n := clamp01((v + 1) / 2)
	if contrast > 0 {
		n = math.Pow(n, 1/contrast)
	}
	return clamp01(n*(1-brightness) + brightness)
}

// Influence is a Gaussian falloff around (fx, fy) with radius taken as three
// standard deviations. Rows count double to compensate for cells being
// roughly twice as tall as they are wide.
func Influence(x, y, fx, fy int, radius, strength float64) float64 {
	if radius <= 0 {
		return 0
	}
	dx := float64(x - fx)
	dy := float64(y-fy) * 2
	sigma := radius / 3
	return math.Exp(-(dx*dx+dy*dy)/(2*sigma*sigma)) * strength
}

// glyph picks a rune from ramp for a level in [0, 1].
func glyph(ramp []rune, level float64) rune {
	i := int(level * float64(len(ramp)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(ramp) {
		i = len(ramp) - 1
	}
	return ramp[i]
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
