// Package animation is the timing core of motion: easing curves, spring
// physics, animatable values and the animation state machine.
//
// # Core Components
//
//   - [TimingCurve]: a cubic Bezier easing curve solved by bisection, with
//     presets such as [Smooth], [EaseOut] and [Bounce]. [EaseFunc] wraps
//     closed-form easings; [LookupEasing] resolves either by name.
//
//   - [SpringModel]: a damped harmonic oscillator advanced one frame at a
//     time, by semi-implicit Euler or analytically.
//
//   - [Value]: the closed set of animatable values ([Scalar], [Length],
//     [Color], [EnumState]) and [Interpolate].
//
//   - [Animation]: owns [Track]s and optional [Keyframe]s and advances them
//     by curve, keyframe timeline or spring on every scheduler tick.
//
//   - [Scheduler]: the frame tick source. The host calls [Scheduler.Step]
//     once per repaint, or runs [Scheduler.Run] on its own goroutine.
//
// # Basic Usage
//
//	a, err := animation.New(animation.Options{
//	    Tracks:   []animation.Track{animation.NewTrack(animation.X, animation.Scalar(0), animation.Scalar(200))},
//	    Easing:   animation.Smooth,
//	    Duration: 400 * time.Millisecond,
//	    Applier:  surface,
//	})
//	if err != nil {
//	    return err
//	}
//	a.Start()
//
//	// Once per frame, from the host loop:
//	animation.StepTickers()
package animation

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-drift/motion/pkg/errors"
)

// FrameInterval is the default repaint interval used by [Scheduler.Run].
const FrameInterval = time.Second / 60

// Tickable is anything a [Scheduler] can drive. Tick advances to now and
// reports whether it wants to be ticked again. Implementations must be
// comparable, which in practice means pointer types.
type Tickable interface {
	Tick(now time.Time) bool
}

// Scheduler ticks registered Tickables once per frame. A Tickable that
// returns false is dropped until it registers again.
type Scheduler struct {
	mu      sync.Mutex
	entries map[Tickable]uint64
	gen     uint64
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{entries: make(map[Tickable]uint64)}
}

// DefaultScheduler drives animations built without an explicit scheduler.
var DefaultScheduler = NewScheduler()

// Register adds t. Registering t again while a tick is in flight keeps it
// registered even if that tick returns false.
func (s *Scheduler) Register(t Tickable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.entries[t] = s.gen
}

// Unregister removes t.
func (s *Scheduler) Unregister(t Tickable) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, t)
}

// Len returns the number of registered tickables.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// HasActive returns true if anything is registered.
func (s *Scheduler) HasActive() bool {
	return s.Len() > 0
}

// Step ticks every registered tickable once with the current clock time.
func (s *Scheduler) Step() {
	s.StepAt(Now())
}

type registration struct {
	t   Tickable
	gen uint64
}

// StepAt ticks every registered tickable once with now. Tickables are
// ticked outside the scheduler lock, so they may register or unregister
// themselves and others.
func (s *Scheduler) StepAt(now time.Time) {
	s.mu.Lock()
	if len(s.entries) == 0 {
		s.mu.Unlock()
		return
	}
	batch := make([]registration, 0, len(s.entries))
	for t, gen := range s.entries {
		batch = append(batch, registration{t: t, gen: gen})
	}
	s.mu.Unlock()

	for _, r := range batch {
		if tick(r.t, now) {
			continue
		}
		s.mu.Lock()
		if gen, ok := s.entries[r.t]; ok && gen == r.gen {
			delete(s.entries, r.t)
		}
		s.mu.Unlock()
	}
}

// tick runs one tick, dropping a tickable that panics.
func tick(t Tickable, now time.Time) (more bool) {
	defer errors.RecoverFrame("animation.Scheduler.Step", now, func(any) {
		more = false
	})
	return t.Tick(now)
}

// Run steps the scheduler every interval until ctx is done. A non-positive
// interval means FrameInterval.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = FrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step()
		}
	}
}

// RunUntilIdle is like Run but returns nil as soon as nothing is
// registered.
func (s *Scheduler) RunUntilIdle(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = FrameInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for s.HasActive() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.Step()
		}
	}
	return nil
}

// StepTickers advances everything registered with DefaultScheduler.
// This should be called once per frame from the host.
func StepTickers() {
	DefaultScheduler.Step()
}

// HasActiveTickers returns true if DefaultScheduler has work.
func HasActiveTickers() bool {
	return DefaultScheduler.HasActive()
}

// Ticker calls a callback on each frame while active.
//
// Ticker is the low-level timing primitive for per-frame work that is not an
// [Animation], such as redrawing a preview. The callback receives the
// elapsed time since Start and returns false to stop.
type Ticker struct {
	callback func(elapsed time.Duration) bool
	sched    *Scheduler
	active   atomic.Bool
	start    atomic.Int64
}

// NewTicker creates a ticker on DefaultScheduler.
func NewTicker(callback func(elapsed time.Duration) bool) *Ticker {
	return DefaultScheduler.NewTicker(callback)
}

// NewTicker creates a ticker driven by s.
func (s *Scheduler) NewTicker(callback func(elapsed time.Duration) bool) *Ticker {
	return &Ticker{callback: callback, sched: s}
}

// Start activates the ticker.
func (t *Ticker) Start() {
	if !t.active.CompareAndSwap(false, true) {
		return
	}
	t.start.Store(Now().UnixNano())
	t.sched.Register(t)
}

// Stop deactivates the ticker.
func (t *Ticker) Stop() {
	if !t.active.CompareAndSwap(true, false) {
		return
	}
	t.sched.Unregister(t)
}

// IsActive returns whether the ticker is currently running.
func (t *Ticker) IsActive() bool {
	return t.active.Load()
}

// Elapsed returns the time since the ticker started.
func (t *Ticker) Elapsed() time.Duration {
	if !t.IsActive() {
		return 0
	}
	return Now().Sub(time.Unix(0, t.start.Load()))
}

// Tick implements Tickable.
func (t *Ticker) Tick(now time.Time) bool {
	if !t.IsActive() || t.callback == nil {
		return false
	}
	if t.callback(now.Sub(time.Unix(0, t.start.Load()))) {
		return true
	}
	t.active.Store(false)
	return false
}
