package animation

import (
	"sort"
	"strings"

	"github.com/fogleman/ease"
)

// Easing transforms linear progress into eased progress.
//
// Implementations must return 0 for t <= 0 and 1 for t >= 1.
// [TimingCurve] is the standard implementation; [EaseFunc] wraps
// closed-form easing functions.
type Easing interface {
	Solve(t float64) float64
}

// solveTolerance is the width below which the bisection over the curve
// parameter stops.
const solveTolerance = 0.001

// TimingCurve is a normalized cubic Bezier easing curve running from (0,0)
// to (1,1) with control points (X1,Y1) and (X2,Y2), matching CSS
// cubic-bezier(). A TimingCurve is a value type and never changes after
// construction.
type TimingCurve struct {
	X1, Y1, X2, Y2 float64
}

// NewTimingCurve returns the curve with the given control points.
func NewTimingCurve(x1, y1, x2, y2 float64) TimingCurve {
	return TimingCurve{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Standard curve presets.
var (
	// Linear is the identity curve.
	Linear = TimingCurve{0, 0, 1, 1}
	// Ease is the general-purpose curve, equivalent to CSS ease.
	Ease = TimingCurve{0.25, 0.1, 0.25, 1}
	// EaseIn starts slowly and accelerates.
	EaseIn = TimingCurve{0.42, 0, 1, 1}
	// EaseOut starts quickly and decelerates.
	EaseOut = TimingCurve{0, 0, 0.58, 1}
	// EaseInOut accelerates then decelerates.
	EaseInOut = TimingCurve{0.42, 0, 0.58, 1}
	// FluidEaseOut is a long, soft deceleration.
	FluidEaseOut = TimingCurve{0.2, 0, 0, 1}
	// FluidSpring overshoots slightly before settling.
	FluidSpring = TimingCurve{0.5, 1.2, 0, 1}
	// Smooth is the default curve for new animations.
	Smooth = TimingCurve{0.4, 0, 0.2, 1}
	// Snappy front-loads most of the motion.
	Snappy = TimingCurve{0.33, 0.66, 0.66, 1}
	// Bounce anticipates below zero and overshoots past one.
	Bounce = TimingCurve{0.68, -0.55, 0.265, 1.55}
	// Emphasized is a symmetric curve with a pronounced middle.
	Emphasized = TimingCurve{0.4, 0, 0.6, 1}
)

// Solve returns the eased progress for t. Inputs outside (0,1) are clamped
// to exactly 0 or 1.
//
// The curve is parametric, so Solve first searches the curve parameter u
// whose X component equals t, then evaluates Y at that u. The search is a
// bisection, which relies on X being non-decreasing in u; that holds for
// every curve whose X control points lie in [0,1].
func (c TimingCurve) Solve(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	if c.X1 == c.Y1 && c.X2 == c.Y2 {
		// Control points on the diagonal: the curve is the identity.
		return t
	}

	lo, hi := 0.0, 1.0
	for hi-lo > solveTolerance {
		mid := (lo + hi) / 2
		if sampleCurve(c.X1, c.X2, mid) < t {
			lo = mid
		} else {
			hi = mid
		}
	}
	return sampleCurve(c.Y1, c.Y2, (lo+hi)/2)
}

// sampleCurve evaluates one component of the Bezier with endpoints 0 and 1.
func sampleCurve(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

// EaseFunc adapts a closed-form easing function to [Easing]. Endpoints are
// clamped the same way as [TimingCurve.Solve].
type EaseFunc func(t float64) float64

// Solve clamps t and evaluates f.
func (f EaseFunc) Solve(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return f(t)
}

var easings = map[string]Easing{
	"linear":         Linear,
	"ease":           Ease,
	"default":        Ease,
	"ease-in":        EaseIn,
	"ease-out":       EaseOut,
	"ease-in-out":    EaseInOut,
	"fluid-ease-out": FluidEaseOut,
	"fluid-spring":   FluidSpring,
	"smooth":         Smooth,
	"snappy":         Snappy,
	"bounce":         Bounce,
	"emphasized":     Emphasized,

	"in-quad":        EaseFunc(ease.InQuad),
	"out-quad":       EaseFunc(ease.OutQuad),
	"in-out-quad":    EaseFunc(ease.InOutQuad),
	"in-cubic":       EaseFunc(ease.InCubic),
	"out-cubic":      EaseFunc(ease.OutCubic),
	"in-out-cubic":   EaseFunc(ease.InOutCubic),
	"in-quart":       EaseFunc(ease.InQuart),
	"out-quart":      EaseFunc(ease.OutQuart),
	"in-out-quart":   EaseFunc(ease.InOutQuart),
	"in-quint":       EaseFunc(ease.InQuint),
	"out-quint":      EaseFunc(ease.OutQuint),
	"in-out-quint":   EaseFunc(ease.InOutQuint),
	"in-sine":        EaseFunc(ease.InSine),
	"out-sine":       EaseFunc(ease.OutSine),
	"in-out-sine":    EaseFunc(ease.InOutSine),
	"in-expo":        EaseFunc(ease.InExpo),
	"out-expo":       EaseFunc(ease.OutExpo),
	"in-out-expo":    EaseFunc(ease.InOutExpo),
	"in-circ":        EaseFunc(ease.InCirc),
	"out-circ":       EaseFunc(ease.OutCirc),
	"in-out-circ":    EaseFunc(ease.InOutCirc),
	"in-elastic":     EaseFunc(ease.InElastic),
	"out-elastic":    EaseFunc(ease.OutElastic),
	"in-out-elastic": EaseFunc(ease.InOutElastic),
	"in-back":        EaseFunc(ease.InBack),
	"out-back":       EaseFunc(ease.OutBack),
	"in-out-back":    EaseFunc(ease.InOutBack),
	"in-bounce":      EaseFunc(ease.InBounce),
	"out-bounce":     EaseFunc(ease.OutBounce),
	"in-out-bounce":  EaseFunc(ease.InOutBounce),
}

// LookupEasing resolves a curve by name. Names are case-insensitive and
// accept underscores in place of hyphens ("ease_out" == "ease-out").
func LookupEasing(name string) (Easing, bool) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	e, ok := easings[key]
	return e, ok
}

// EasingNames returns every name accepted by [LookupEasing], sorted.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clampUnit(value float64) float64 {
	if value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
