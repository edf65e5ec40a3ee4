package animation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpringConverges(t *testing.T) {
	for _, integrator := range []Integrator{IntegratorEuler, IntegratorAnalytic} {
		t.Run(integrator.String(), func(t *testing.T) {
			s := NewSpringModel(SpringParams{Stiffness: 300, Damping: 30, Integrator: integrator})
			for range 180 {
				s.Update(100, 1.0/60)
			}
			assert.Less(t, math.Abs(s.Position-100), 0.1)
		})
	}
}

func overshoots(damping float64) int {
	s := NewSpringModel(SpringParams{Stiffness: 300, Damping: damping})
	count := 0
	for range 120 {
		if s.Update(100, 1.0/60) > 100 {
			count++
		}
	}
	return count
}

func TestSpringLowerDampingOvershootsMore(t *testing.T) {
	assert.Greater(t, overshoots(10), overshoots(50))
}

func TestSpringEulerStep(t *testing.T) {
	s := NewSpringModel(SpringParams{Stiffness: 100, Damping: 10, Mass: 2})
	s.Position = 10
	s.Velocity = 5

	// force = -100*10 - 10*5 = -1050; a = -525; v = 5 - 52.5; p = 10 - 4.75
	got := s.Update(0, 0.1)

	assert.InDelta(t, -47.5, s.Velocity, 1e-9)
	assert.InDelta(t, 5.25, got, 1e-9)
}

func TestSpringAnalyticIgnoresNonPositiveDelta(t *testing.T) {
	s := NewSpringModel(SpringParams{Stiffness: 300, Damping: 30, Integrator: IntegratorAnalytic})
	s.Position = 3
	assert.Equal(t, 3.0, s.Update(100, 0))
}

func TestSpringResetAndRest(t *testing.T) {
	s := NewSpringModel(DefaultSpring())
	assert.Equal(t, 1.0, s.Mass)

	s.Velocity = 40
	s.Reset(7)
	assert.Equal(t, 7.0, s.Position)
	assert.Equal(t, 0.0, s.Velocity)
	assert.True(t, s.AtRest(7.005))
	assert.False(t, s.AtRest(7.5))

	s.Velocity = 0.02
	assert.False(t, s.AtRest(7))
}

func TestSpringPresets(t *testing.T) {
	assert.Equal(t, SpringParams{Stiffness: 300, Damping: 30, Mass: 1}, DefaultSpring())
	assert.Equal(t, SpringParams{Stiffness: 250, Damping: 15, Mass: 1}, BouncySpring())
	assert.Equal(t, SpringParams{Stiffness: 400, Damping: 40, Mass: 1}, SmoothSpring())
}
