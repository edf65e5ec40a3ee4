package config

import (
	"strings"

	"github.com/go-drift/motion/pkg/animation"
)

// Timing selects how an animation's progress is shaped. At most one mode
// takes effect: Spring wins over Bezier, which wins over Curve. With none
// set the animation uses animation.Smooth.
type Timing struct {
	Curve  string    `yaml:"curve,omitempty"`
	Bezier []float64 `yaml:"bezier,omitempty"`
	Spring *Spring   `yaml:"spring,omitempty"`
}

// Spring configures spring-driven playback. Preset fills in any of
// Stiffness, Damping and Mass left at zero.
type Spring struct {
	Preset     string  `yaml:"preset,omitempty"`
	Stiffness  float64 `yaml:"stiffness,omitempty"`
	Damping    float64 `yaml:"damping,omitempty"`
	Mass       float64 `yaml:"mass,omitempty"`
	Integrator string  `yaml:"integrator,omitempty"`
}

var springPresets = map[string]func() animation.SpringParams{
	"":        animation.DefaultSpring,
	"default": animation.DefaultSpring,
	"bouncy":  animation.BouncySpring,
	"smooth":  animation.SmoothSpring,
}

// Params resolves s into spring parameters.
func (s Spring) Params() (animation.SpringParams, error) {
	preset, ok := springPresets[strings.ToLower(strings.TrimSpace(s.Preset))]
	if !ok {
		return animation.SpringParams{}, ErrUnknownSpring
	}
	p := preset()
	if s.Stiffness != 0 {
		p.Stiffness = s.Stiffness
	}
	if s.Damping != 0 {
		p.Damping = s.Damping
	}
	if s.Mass != 0 {
		p.Mass = s.Mass
	}

	switch strings.ToLower(strings.TrimSpace(s.Integrator)) {
	case "", "euler":
		p.Integrator = animation.IntegratorEuler
	case "analytic", "harmonica":
		p.Integrator = animation.IntegratorAnalytic
	default:
		return animation.SpringParams{}, ErrUnknownIntegrator
	}
	return p, nil
}

// Resolve returns the easing or spring parameters t describes. Exactly one
// of the results is non-nil on success.
func (t Timing) Resolve() (animation.Easing, *animation.SpringParams, error) {
	switch {
	case t.Spring != nil:
		p, err := t.Spring.Params()
		if err != nil {
			return nil, nil, err
		}
		return nil, &p, nil
	case t.Bezier != nil:
		if len(t.Bezier) != 4 {
			return nil, nil, ErrBadBezier
		}
		b := t.Bezier
		return animation.NewTimingCurve(b[0], b[1], b[2], b[3]), nil, nil
	case t.Curve != "":
		e, ok := animation.LookupEasing(t.Curve)
		if !ok {
			return nil, nil, ErrUnknownCurve
		}
		return e, nil, nil
	}
	return animation.Smooth, nil, nil
}
