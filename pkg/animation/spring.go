package animation

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// RestThreshold is the distance and speed below which a spring counts as
// settled on its target.
const RestThreshold = 0.01

// Integrator selects how a [SpringModel] advances between frames.
type Integrator int

const (
	// IntegratorEuler uses semi-implicit Euler steps.
	IntegratorEuler Integrator = iota
	// IntegratorAnalytic advances the closed-form damped oscillator, which
	// stays stable for stiff springs at large frame deltas.
	IntegratorAnalytic
)

// String returns the integrator name used in configuration files.
func (i Integrator) String() string {
	switch i {
	case IntegratorAnalytic:
		return "analytic"
	default:
		return "euler"
	}
}

// SpringParams describes a damped harmonic oscillator.
type SpringParams struct {
	Stiffness  float64
	Damping    float64
	Mass       float64
	Integrator Integrator
}

// DefaultSpring is a balanced spring with little overshoot.
func DefaultSpring() SpringParams {
	return SpringParams{Stiffness: 300, Damping: 30, Mass: 1}
}

// BouncySpring overshoots visibly before settling.
func BouncySpring() SpringParams {
	return SpringParams{Stiffness: 250, Damping: 15, Mass: 1}
}

// SmoothSpring settles quickly with almost no overshoot.
func SmoothSpring() SpringParams {
	return SpringParams{Stiffness: 400, Damping: 40, Mass: 1}
}

// SpringModel integrates a damped spring one step at a time.
//
// The model only holds numeric state; callers decide what "at rest" means
// for them, usually via [SpringModel.AtRest].
type SpringModel struct {
	SpringParams
	Position float64
	Velocity float64
}

// NewSpringModel returns a spring at rest at zero. A non-positive mass is
// replaced by 1.
func NewSpringModel(p SpringParams) *SpringModel {
	if p.Mass <= 0 {
		p.Mass = 1
	}
	return &SpringModel{SpringParams: p}
}

// Update advances the spring by dt seconds toward target and returns the new
// position.
func (s *SpringModel) Update(target, dt float64) float64 {
	if s.Integrator == IntegratorAnalytic {
		return s.updateAnalytic(target, dt)
	}
	mass := s.Mass
	if mass <= 0 {
		mass = 1
	}
	springForce := -s.Stiffness * (s.Position - target)
	dampingForce := -s.Damping * s.Velocity
	acceleration := (springForce + dampingForce) / mass

	s.Velocity += acceleration * dt
	s.Position += s.Velocity * dt
	return s.Position
}

func (s *SpringModel) updateAnalytic(target, dt float64) float64 {
	if dt <= 0 || s.Stiffness <= 0 {
		return s.Position
	}
	mass := s.Mass
	if mass <= 0 {
		mass = 1
	}
	angularFrequency := math.Sqrt(s.Stiffness / mass)
	dampingRatio := s.Damping / (2 * math.Sqrt(s.Stiffness*mass))
	h := harmonica.NewSpring(dt, angularFrequency, dampingRatio)
	s.Position, s.Velocity = h.Update(s.Position, s.Velocity, target)
	return s.Position
}

// Reset moves the spring to value and stops it.
func (s *SpringModel) Reset(value float64) {
	s.Position = value
	s.Velocity = 0
}

// AtRest reports whether the spring is settled on target.
func (s *SpringModel) AtRest(target float64) bool {
	return math.Abs(s.Velocity) <= RestThreshold && math.Abs(s.Position-target) <= RestThreshold
}
