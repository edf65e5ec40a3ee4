// Package timeline composes animations: a Sequencer lays them out on one
// timeline with overlapping steps, and a Group plays them together.
package timeline

import (
	"math"
	"sync"
	"time"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/errors"
)

// ErrEmpty is returned when playing or seeking a sequencer or group with no
// members.
var ErrEmpty = errors.New("timeline has no animations")

// Step is one animation placed on a sequencer's timeline.
type Step struct {
	Animation *animation.Animation
	Start     time.Duration
	Duration  time.Duration
	// Overlap is the fraction of the previous step's duration this step
	// starts early by: 0 is sequential, 1 is parallel.
	Overlap float64
}

// End returns the time the step finishes.
func (s Step) End() time.Duration {
	return s.Start + s.Duration
}

// Sequencer places animations on a single timeline so that one master
// fraction can scrub all of them. It holds shared references; the
// animations may still be driven on their own.
type Sequencer struct {
	mu       sync.Mutex
	steps    []Step
	total    time.Duration
	fraction float64
	running  bool

	// timeline playback
	sched     *animation.Scheduler
	playStart time.Time
}

// NewSequencer returns an empty sequencer.
func NewSequencer() *Sequencer {
	return &Sequencer{}
}

// AddStep appends a with the given overlap against the previous step,
// clamped to [0,1].
func (s *Sequencer) AddStep(a *animation.Animation, overlap float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	overlap = math.Max(0, math.Min(1, overlap))
	var start time.Duration
	if n := len(s.steps); n > 0 {
		prev := s.steps[n-1]
		start = prev.End() - time.Duration(float64(prev.Duration)*overlap)
	}
	s.steps = append(s.steps, Step{
		Animation: a,
		Start:     start,
		Duration:  a.Duration(),
		Overlap:   overlap,
	})
	s.total = 0
	for _, st := range s.steps {
		s.total = max(s.total, st.End())
	}
}

// Then appends a to start when the previous step ends.
func (s *Sequencer) Then(a *animation.Animation) *Sequencer {
	s.AddStep(a, 0)
	return s
}

// With appends a to start together with the previous step.
func (s *Sequencer) With(a *animation.Animation) *Sequencer {
	s.AddStep(a, 1)
	return s
}

// Overlap appends a to start early by the given fraction of the previous
// step.
func (s *Sequencer) Overlap(a *animation.Animation, at float64) *Sequencer {
	s.AddStep(a, at)
	return s
}

// Play starts every member. Each member runs on its own clock; use
// PlayTimeline to honour step offsets.
func (s *Sequencer) Play() error {
	steps, err := s.begin("timeline.Sequencer.Play")
	if err != nil {
		return err
	}
	var errs []error
	for _, st := range steps {
		errs = append(errs, st.Animation.Start())
	}
	return errors.Join(errs...)
}

// PlayTimeline plays the whole timeline on sched, seeking every member from
// the elapsed time so that step offsets are honoured. Members are held
// while the sequencer drives them and completed, firing their completion
// callbacks, when the timeline ends. A nil sched means DefaultScheduler.
func (s *Sequencer) PlayTimeline(sched *animation.Scheduler) error {
	steps, err := s.begin("timeline.Sequencer.PlayTimeline")
	if err != nil {
		return err
	}
	for _, st := range steps {
		st.Animation.Hold()
	}
	if sched == nil {
		sched = animation.DefaultScheduler
	}
	s.mu.Lock()
	s.sched = sched
	s.playStart = animation.Now()
	s.mu.Unlock()
	sched.Register(s)
	return nil
}

func (s *Sequencer) begin(op string) ([]Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.steps) == 0 {
		return nil, errors.State(op, ErrEmpty)
	}
	s.running = true
	s.fraction = 0
	return append([]Step(nil), s.steps...), nil
}

// Tick advances timeline playback. It implements animation.Tickable.
func (s *Sequencer) Tick(now time.Time) bool {
	s.mu.Lock()
	if !s.running || s.sched == nil {
		s.mu.Unlock()
		return false
	}
	f := 1.0
	if s.total > 0 {
		f = math.Min(float64(now.Sub(s.playStart))/float64(s.total), 1)
	}
	s.mu.Unlock()

	s.seek(f)
	if f < 1 {
		return true
	}
	s.mu.Lock()
	s.running = false
	s.sched = nil
	steps := append([]Step(nil), s.steps...)
	s.mu.Unlock()
	for _, st := range steps {
		st.Animation.Complete()
	}
	return false
}

// Pause pauses every member.
func (s *Sequencer) Pause() {
	for _, st := range s.stop(false) {
		st.Animation.Pause()
	}
}

// Stop stops every member and rewinds the sequencer fraction.
func (s *Sequencer) Stop() {
	for _, st := range s.stop(true) {
		st.Animation.Stop()
	}
}

func (s *Sequencer) stop(rewind bool) []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
	s.sched = nil
	if rewind {
		s.fraction = 0
	}
	return append([]Step(nil), s.steps...)
}

// Seek moves the master position to fraction f of the total duration.
// Steps that have not started sit at 0, finished steps at 1, and the rest at
// their local fraction.
func (s *Sequencer) Seek(f float64) error {
	s.mu.Lock()
	empty := len(s.steps) == 0
	s.mu.Unlock()
	if empty {
		return errors.State("timeline.Sequencer.Seek", ErrEmpty)
	}
	s.seek(f)
	return nil
}

func (s *Sequencer) seek(f float64) {
	s.mu.Lock()
	f = math.Max(0, math.Min(1, f))
	s.fraction = f
	current := time.Duration(f * float64(s.total))
	steps := append([]Step(nil), s.steps...)
	s.mu.Unlock()

	for _, st := range steps {
		st.Animation.SetFractionComplete(localFraction(st, current))
	}
}

func localFraction(st Step, current time.Duration) float64 {
	switch {
	case current < st.Start:
		return 0
	case current > st.End() || st.Duration <= 0:
		return 1
	default:
		return float64(current-st.Start) / float64(st.Duration)
	}
}

// TotalDuration returns the end of the last-finishing step.
func (s *Sequencer) TotalDuration() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// StepCount returns the number of steps.
func (s *Sequencer) StepCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.steps)
}

// Steps returns a copy of the steps.
func (s *Sequencer) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Step(nil), s.steps...)
}

// Fraction returns the last master position.
func (s *Sequencer) Fraction() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fraction
}

// IsRunning reports whether the sequencer was played and not since paused
// or stopped.
func (s *Sequencer) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}
