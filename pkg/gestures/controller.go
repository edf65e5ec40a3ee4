// Package gestures turns a pointer stream into scrub progress for an
// animation and decides, on release, whether the gesture commits.
package gestures

import (
	"math"
	"sync"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/transition"
)

const (
	// DefaultFriction scales raw pointer velocity.
	DefaultFriction = 0.8
	// DefaultSpringTension is the stiffness of the release spring.
	DefaultSpringTension = 300.0

	// scrubDistance is the vertical travel, in points, that scrubs a full
	// animation.
	scrubDistance = 500.0
	// maxStepDelta bounds the fraction change from a single sample.
	maxStepDelta = 0.1
	// minSampleInterval floors the time between samples, in milliseconds.
	minSampleInterval = 1.0

	pressedScale = 0.95
	hoverScale   = 1.05
)

// Options tunes a Controller. Zero fields take the defaults.
type Options struct {
	Friction      float64
	SpringTension float64
}

// Controller reduces pointer samples to a position, a velocity and a
// tracking flag, and optionally scrubs one bound animation.
//
// Timestamps are in milliseconds; velocity is in points per millisecond.
type Controller struct {
	mu sync.Mutex

	startX, startY     float64
	currentX, currentY float64
	lastTime           float64
	velocity           float64
	tracking           bool

	friction      float64
	springTension float64
	bound         *animation.Animation
}

// New returns a controller with the given options.
func New(opts Options) *Controller {
	if opts.Friction <= 0 {
		opts.Friction = DefaultFriction
	}
	if opts.SpringTension <= 0 {
		opts.SpringTension = DefaultSpringTension
	}
	return &Controller{friction: opts.Friction, springTension: opts.SpringTension}
}

// Bind makes a the animation scrubbed by this controller. Nil unbinds.
func (c *Controller) Bind(a *animation.Animation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bound = a
}

// OnTapDown starts tracking at (x, y) and holds the bound animation.
func (c *Controller) OnTapDown(x, y, t float64) {
	c.mu.Lock()
	c.startX, c.startY = x, y
	c.currentX, c.currentY = x, y
	c.lastTime = t
	c.velocity = 0
	c.tracking = true
	bound := c.bound
	c.mu.Unlock()

	if bound != nil {
		bound.Hold()
	}
}

// OnTapMove records a sample and scrubs the bound animation. Moving down
// scrubs backwards.
func (c *Controller) OnTapMove(x, y, t float64) {
	c.mu.Lock()
	if !c.tracking {
		c.mu.Unlock()
		return
	}
	dy := y - c.currentY
	dt := math.Max(t-c.lastTime, minSampleInterval)
	c.velocity = dy / dt * c.friction
	c.currentX, c.currentY = x, y
	c.lastTime = t
	bound := c.bound
	c.mu.Unlock()

	if bound == nil {
		return
	}
	delta := math.Max(-maxStepDelta, math.Min(maxStepDelta, dy/scrubDistance))
	next := math.Max(0, math.Min(1, bound.FractionComplete()-delta))
	bound.SetFractionComplete(next)
}

// OnTapUp stops tracking. The bound animation runs to completion when the
// commit rule holds and is reversed otherwise. It reports whether the
// gesture committed; without a bound animation only velocity counts.
func (c *Controller) OnTapUp() bool {
	c.mu.Lock()
	c.tracking = false
	velocity := c.velocity
	bound := c.bound
	c.mu.Unlock()

	if bound == nil {
		return transition.ShouldCommit(0, velocity)
	}
	if transition.ShouldCommit(bound.FractionComplete(), velocity) {
		bound.Resume()
		return true
	}
	bound.Reverse()
	bound.Resume()
	return false
}

// OnPress returns the scale for a pressed or released element.
func (c *Controller) OnPress(pressed bool) float64 {
	if pressed {
		return pressedScale
	}
	return 1
}

// OnHover returns the scale for a hovered or unhovered element.
func (c *Controller) OnHover(hovered bool) float64 {
	if hovered {
		return hoverScale
	}
	return 1
}

// ReleaseSpring returns a critically damped spring seeded at the bound
// animation's fraction with the release velocity, for hosts that settle
// content themselves after release.
func (c *Controller) ReleaseSpring() *animation.SpringModel {
	c.mu.Lock()
	velocity, tension, bound := c.velocity, c.springTension, c.bound
	c.mu.Unlock()

	s := animation.NewSpringModel(animation.SpringParams{
		Stiffness: tension,
		Damping:   2 * math.Sqrt(tension),
		Mass:      1,
	})
	if bound != nil {
		s.Reset(bound.FractionComplete())
	}
	s.Velocity = velocity
	return s
}

// Velocity returns the last vertical velocity.
func (c *Controller) Velocity() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.velocity
}

// Displacement returns the travel since tap down.
func (c *Controller) Displacement() (dx, dy float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentX - c.startX, c.currentY - c.startY
}

// Distance returns the straight-line travel since tap down.
func (c *Controller) Distance() float64 {
	dx, dy := c.Displacement()
	return math.Hypot(dx, dy)
}

// IsTracking reports whether a pointer is down.
func (c *Controller) IsTracking() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tracking
}

// Friction returns the velocity scale.
func (c *Controller) Friction() float64 {
	return c.friction
}

// SpringTension returns the release spring stiffness.
func (c *Controller) SpringTension() float64 {
	return c.springTension
}
