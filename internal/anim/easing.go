package anim

import (
	"fmt"
	"math"
	"sort"
)

// Easing reparametrises linear progress t in [0, 1].
type Easing func(t float64) float64

// EaseInOutCubic accelerates through the first half and decelerates through
// the second.
func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// EaseInOutQuad is the quadratic variant of EaseInOutCubic.
func EaseInOutQuad(t float64) float64 {
	if t < 0.5 {
		return 2 * t * t
	}
	return 1 - math.Pow(-2*t+2, 2)/2
}

// Linear returns t unchanged.
func Linear(t float64) float64 { return t }

var easings = map[string]Easing{
	"cubic":  EaseInOutCubic,
	"quad":   EaseInOutQuad,
	"linear": Linear,
}

// EasingByName looks up an easing by its config name.
func EasingByName(name string) (Easing, error) {
	if e, ok := easings[name]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEasing, name)
}

// EasingNames lists the registered easing names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lerp interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpPoint interpolates between (ax, ay) and (bx, by).
func LerpPoint(ax, ay, bx, by, t float64) (x, y float64) {
	return Lerp(ax, bx, t), Lerp(ay, by, t)
}
