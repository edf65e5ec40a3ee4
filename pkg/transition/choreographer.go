// Package transition coordinates several animations as one interactive
// transition whose progress follows a gesture and ends in a commit or a
// cancel.
package transition

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/errors"
)

// Commit thresholds: a transition released past CommitFraction, or flung
// faster than CommitVelocity, completes; otherwise it is cancelled.
const (
	CommitFraction = 0.5
	CommitVelocity = 0.3
)

// ShouldCommit applies the commit rule.
func ShouldCommit(fraction, velocity float64) bool {
	return fraction > CommitFraction || velocity > CommitVelocity
}

var (
	// ErrInvalidContext is returned for an unknown transition context.
	ErrInvalidContext = errors.New("invalid context: 0=present, 1=dismiss, 2=push, 3=pop")
	// ErrNoAnimations is returned when beginning a transition with no
	// members.
	ErrNoAnimations = errors.New("choreographer has no animations")
)

// Context tags what kind of navigation a transition performs.
type Context int

const (
	Present Context = iota
	Dismiss
	Push
	Pop
)

var contextNames = [...]string{"present", "dismiss", "push", "pop"}

// String returns the context name.
func (c Context) String() string {
	if c >= 0 && int(c) < len(contextNames) {
		return contextNames[c]
	}
	return fmt.Sprintf("Context(%d)", int(c))
}

// ContextFromInt converts a numeric context tag.
func ContextFromInt(n int) (Context, error) {
	if n < 0 || n >= len(contextNames) {
		return 0, errors.Config("transition.ContextFromInt", ErrInvalidContext)
	}
	return Context(n), nil
}

// ParseContext accepts a context name or its number.
func ParseContext(s string) (Context, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range contextNames {
		if s == name {
			return Context(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil {
		return ContextFromInt(n)
	}
	return 0, errors.Config("transition.ParseContext", ErrInvalidContext)
}

// Choreographer drives a set of animations through an interactive
// transition. While interactive, progress comes only from the caller.
type Choreographer struct {
	mu          sync.Mutex
	context     Context
	fraction    float64
	interactive bool
	cancelled   bool
	animations  []*animation.Animation
}

// New returns a choreographer for ctx.
func New(ctx Context) *Choreographer {
	return &Choreographer{context: ctx}
}

// Add appends a to the transition.
func (c *Choreographer) Add(a *animation.Animation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.animations = append(c.animations, a)
}

func (c *Choreographer) members() []*animation.Animation {
	return append([]*animation.Animation(nil), c.animations...)
}

// BeginInteractive holds every member at its current position and starts
// taking progress from UpdateInteractive.
func (c *Choreographer) BeginInteractive() error {
	c.mu.Lock()
	if len(c.animations) == 0 {
		c.mu.Unlock()
		return errors.State("transition.BeginInteractive", ErrNoAnimations)
	}
	c.interactive = true
	c.cancelled = false
	c.fraction = 0
	members := c.members()
	c.mu.Unlock()

	for _, a := range members {
		a.Hold()
	}
	return nil
}

// UpdateInteractive scrubs every member to fraction, clamped to [0,1]. It
// does nothing unless the transition is interactive.
func (c *Choreographer) UpdateInteractive(fraction float64) {
	c.mu.Lock()
	if !c.interactive {
		c.mu.Unlock()
		return
	}
	c.fraction = max(0, min(1, fraction))
	f := c.fraction
	members := c.members()
	c.mu.Unlock()

	for _, a := range members {
		a.SetFractionComplete(f)
	}
}

// FinishInteractive ends the interaction. When the commit rule holds, every
// member resumes and runs to completion; otherwise the transition is
// cancelled. It reports whether the transition committed.
func (c *Choreographer) FinishInteractive(velocity float64) bool {
	c.mu.Lock()
	c.interactive = false
	commit := ShouldCommit(c.fraction, velocity)
	if !commit {
		c.cancelled = true
	}
	members := c.members()
	c.mu.Unlock()

	if commit {
		for _, a := range members {
			a.Resume()
		}
		return true
	}
	rewind(members)
	return false
}

// CancelInteractive ends the interaction and sends every member back
// toward its start.
func (c *Choreographer) CancelInteractive() {
	c.mu.Lock()
	c.interactive = false
	c.cancelled = true
	members := c.members()
	c.mu.Unlock()

	rewind(members)
}

func rewind(members []*animation.Animation) {
	for _, a := range members {
		a.Reverse()
		a.Resume()
	}
}

// Context returns the transition context.
func (c *Choreographer) Context() Context {
	return c.context
}

// Fraction returns the last interactive fraction.
func (c *Choreographer) Fraction() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fraction
}

// IsInteractive reports whether the transition is taking caller progress.
func (c *Choreographer) IsInteractive() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interactive
}

// IsCancelled reports whether the last interaction was cancelled.
func (c *Choreographer) IsCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

// Len returns the number of members.
func (c *Choreographer) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.animations)
}
