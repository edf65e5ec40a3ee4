package timeline

import (
	"sync"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/errors"
)

// Group plays a named set of animations simultaneously.
type Group struct {
	mu         sync.Mutex
	id         string
	animations []*animation.Animation
	playing    bool
}

// NewGroup returns an empty group.
func NewGroup(id string, animations ...*animation.Animation) *Group {
	return &Group{id: id, animations: animations}
}

// Add appends a to the group.
func (g *Group) Add(a *animation.Animation) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.animations = append(g.animations, a)
}

func (g *Group) members(playing bool) []*animation.Animation {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.playing = playing
	return append([]*animation.Animation(nil), g.animations...)
}

// Play starts idle or completed members and resumes paused ones. Members
// that are already running are left alone.
func (g *Group) Play() error {
	g.mu.Lock()
	empty := len(g.animations) == 0
	g.mu.Unlock()
	if empty {
		return errors.State("timeline.Group.Play", ErrEmpty)
	}
	var errs []error
	for _, a := range g.members(true) {
		switch a.State() {
		case animation.Paused:
			a.Resume()
		case animation.Idle, animation.Completed:
			errs = append(errs, a.Start())
		}
	}
	return errors.Join(errs...)
}

// Pause pauses every member.
func (g *Group) Pause() {
	for _, a := range g.members(false) {
		a.Pause()
	}
}

// Resume resumes every paused member.
func (g *Group) Resume() {
	for _, a := range g.members(true) {
		a.Resume()
	}
}

// Stop stops every member.
func (g *Group) Stop() {
	for _, a := range g.members(false) {
		a.Stop()
	}
}

// Reverse reverses every member.
func (g *Group) Reverse() {
	for _, a := range g.members(true) {
		a.Reverse()
	}
}

// Len returns the number of members.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.animations)
}

// IsPlaying reports whether the group was last played, resumed or
// reversed.
func (g *Group) IsPlaying() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playing
}

// ID returns the group's name.
func (g *Group) ID() string {
	return g.id
}
