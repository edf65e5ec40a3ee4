package animation

import (
	"fmt"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/go-drift/motion/pkg/errors"
)

// MaxFrameDelta caps the time advanced by a single tick so that a long stall
// (a suspended host or a GC pause) does not make springs jump.
const MaxFrameDelta = 32 * time.Millisecond

// State represents the playback state of an animation.
//
// The state follows this state machine:
//
//	         Start()            Pause()
//	Idle ──────────────► Running ◄──────► Paused
//	                        │    Resume()
//	                        ▼
//	                    Completed
//
// Start and Reverse re-enter Running from Completed. Stop moves any state to
// Completed.
type State int

const (
	// Idle means the animation has never been started.
	Idle State = iota
	// Running means the animation advances on every scheduler tick.
	Running
	// Paused means the animation holds its position until resumed.
	Paused
	// Completed means the animation finished or was stopped.
	Completed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Errors returned by [New] and [Animation.Start].
var (
	ErrAlreadyRunning  = errors.New("animation already running")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrInvalidRepeat   = errors.New("repeat must be -1 or at least 1")
	ErrInvalidSpring   = errors.New("spring stiffness must be positive")
	ErrSpringColor     = errors.New("spring-driven color tracks are not supported")
)

// Applier renders track values onto a presentation surface. It is called
// with a copy of the tracks after every recompute, at up to the host's
// repaint rate, and must tolerate repeated calls with the same values.
type Applier interface {
	Apply(tracks []Track) error
}

// ApplierFunc adapts a function to the Applier interface.
type ApplierFunc func(tracks []Track) error

// Apply calls f.
func (f ApplierFunc) Apply(tracks []Track) error { return f(tracks) }

// Query reports the value a property currently shows on the surface. It is
// consulted when an animation continues from the live state.
type Query interface {
	CurrentValue(p Property) (Value, bool)
}

// Options configures an [Animation]. Fields left at their zero value take
// the documented defaults.
type Options struct {
	// Tracks are the animated properties. When empty, tracks are derived
	// from the keyframes: each property starts at its first keyframe value
	// and ends at its last.
	Tracks []Track

	// Keyframes select keyframe-driven playback. Times are clamped to [0,1].
	Keyframes []Keyframe

	// Easing shapes progress. Nil means linear progress.
	Easing Easing

	// Spring selects spring-driven playback. Duration is then only used by
	// coordinators that need a nominal length.
	Spring *SpringParams

	// Velocities seeds each spring with an initial velocity, keyed by
	// property, typically the release velocity of a gesture.
	Velocities map[Property]float64

	Duration time.Duration
	Delay    time.Duration

	// Repeat is the number of plays; -1 repeats forever. Zero means 1.
	Repeat int

	// AutoReverse plays every other repetition backwards.
	AutoReverse bool

	// Additive is reserved for composing with the surface's base value.
	Additive bool

	// OnComplete is called once each time the animation completes on its
	// own. It is not called by Stop.
	OnComplete func()

	// Applier receives the tracks after every recompute.
	Applier Applier

	// Scheduler drives the animation. Nil means DefaultScheduler.
	Scheduler *Scheduler
}

type statusListener struct {
	id int
	fn func(State)
}

// effects collected under the lock and run after it is released.
type pending struct {
	dirty    bool
	statuses []State
	complete bool
}

// Animation interpolates a set of property tracks over time.
//
// The pointer is the handle shared by coordinators such as a sequencer, a
// choreographer or a gesture controller. All methods are safe for concurrent
// use; when several coordinators drive one animation the last write wins.
type Animation struct {
	mu sync.Mutex

	tracks     []Track
	keyframes  []Keyframe
	springs    []*SpringModel
	easing     Easing
	spring     *SpringParams
	velocities map[Property]float64

	duration    time.Duration
	delay       time.Duration
	repeat      int
	autoReverse bool
	additive    bool
	onComplete  func()
	applier     Applier
	scheduler   *Scheduler

	state       State
	startTime   time.Time
	lastTime    time.Time
	pauseTime   time.Time
	fraction    float64
	repeatCount int
	reversed    bool

	pend           pending
	listeners      []statusListener
	nextListenerID int
}

// New validates opts and returns an idle animation.
func New(opts Options) (*Animation, error) {
	const op = "animation.New"

	if opts.Spring == nil && opts.Duration <= 0 {
		return nil, errors.Config(op, ErrInvalidDuration)
	}
	if opts.Repeat < -1 {
		return nil, errors.Config(op, ErrInvalidRepeat)
	}

	kfs := sortKeyframes(opts.Keyframes)
	tracks := cloneTracks(opts.Tracks)
	if len(tracks) == 0 && len(kfs) > 0 {
		tracks = tracksFromKeyframes(kfs)
	}
	for i := range tracks {
		if tracks[i].Current == nil {
			tracks[i].Current = tracks[i].Start
		}
	}

	var spring *SpringParams
	if opts.Spring != nil {
		if opts.Spring.Stiffness <= 0 {
			return nil, errors.Config(op, ErrInvalidSpring)
		}
		for _, tr := range tracks {
			_, startColor := tr.Start.(Color)
			_, endColor := tr.End.(Color)
			if startColor || endColor {
				return nil, &errors.Error{
					Op:       op,
					Kind:     errors.KindConfig,
					Err:      ErrSpringColor,
					Property: string(tr.Property),
				}
			}
		}
		p := *opts.Spring
		if p.Mass <= 0 {
			p.Mass = 1
		}
		spring = &p
	}

	repeat := opts.Repeat
	if repeat == 0 {
		repeat = 1
	}
	sched := opts.Scheduler
	if sched == nil {
		sched = DefaultScheduler
	}

	var velocities map[Property]float64
	if len(opts.Velocities) > 0 {
		velocities = make(map[Property]float64, len(opts.Velocities))
		for p, v := range opts.Velocities {
			velocities[p] = v
		}
	}

	return &Animation{
		tracks:      tracks,
		keyframes:   kfs,
		easing:      opts.Easing,
		spring:      spring,
		velocities:  velocities,
		duration:    opts.Duration,
		delay:       opts.Delay,
		repeat:      repeat,
		autoReverse: opts.AutoReverse,
		additive:    opts.Additive,
		onComplete:  opts.OnComplete,
		applier:     opts.Applier,
		scheduler:   sched,
		state:       Idle,
	}, nil
}

// tracksFromKeyframes builds one track per property mentioned by kfs, in
// order of first appearance.
func tracksFromKeyframes(kfs []Keyframe) []Track {
	var order []Property
	first := make(map[Property]Value)
	last := make(map[Property]Value)
	for _, kf := range kfs {
		props := make([]Property, 0, len(kf.Values))
		for p := range kf.Values {
			props = append(props, p)
		}
		slices.Sort(props)
		for _, p := range props {
			if _, seen := first[p]; !seen {
				first[p] = kf.Values[p]
				order = append(order, p)
			}
			last[p] = kf.Values[p]
		}
	}
	tracks := make([]Track, len(order))
	for i, p := range order {
		tracks[i] = NewTrack(p, first[p], last[p])
	}
	return tracks
}

// Start plays the animation from its start values. It fails if the
// animation is already running, leaving its tracks untouched.
func (a *Animation) Start() error {
	a.mu.Lock()
	if a.state == Running {
		a.mu.Unlock()
		return errors.State("animation.Start", ErrAlreadyRunning)
	}
	a.prepare(Now())
	a.setState(Running)
	sched := a.scheduler
	a.release()
	sched.Register(a)
	return nil
}

// prepare rewinds the animation to its start values.
func (a *Animation) prepare(now time.Time) {
	for i := range a.tracks {
		a.tracks[i].Current = a.tracks[i].Start
	}
	a.springs = nil
	a.ensureSprings()
	a.startTime = now.Add(a.delay)
	a.lastTime = now
	a.fraction = 0
	a.repeatCount = 0
}

// ensureSprings allocates one spring per track for spring-driven
// animations. Seed velocities are applied after the reset so they survive.
func (a *Animation) ensureSprings() {
	if a.spring == nil || a.springs != nil {
		return
	}
	a.springs = make([]*SpringModel, len(a.tracks))
	for i, tr := range a.tracks {
		a.springs[i] = NewSpringModel(*a.spring)
		a.seedSpring(i, tr.Current)
	}
}

// seedSpring resets spring i to v and gives it the track's initial velocity.
func (a *Animation) seedSpring(i int, v Value) {
	s := a.springs[i]
	s.Reset(ExtractNumber(v))
	if vel, ok := a.velocities[a.tracks[i].Property]; ok {
		s.Velocity = vel
	}
}

// Pause holds a running animation at its current position.
func (a *Animation) Pause() {
	a.mu.Lock()
	if a.state == Running {
		a.pauseTime = Now()
		a.setState(Paused)
	}
	a.release()
}

// Resume continues a paused animation. The pause is cut out of the timeline
// so progress does not jump.
func (a *Animation) Resume() {
	a.mu.Lock()
	if a.state != Paused {
		a.release()
		return
	}
	now := Now()
	a.startTime = a.startTime.Add(now.Sub(a.pauseTime))
	a.lastTime = now
	a.setState(Running)
	sched := a.scheduler
	a.release()
	sched.Register(a)
}

// Hold pauses the animation wherever it is. An idle animation is first
// rewound to its start values and applied; a completed one stays where it
// ended, so scrubbing continues from there. Interactive coordinators hold
// their members before scrubbing them so that a later Resume plays them
// from the scrub position.
func (a *Animation) Hold() {
	a.mu.Lock()
	now := Now()
	switch a.state {
	case Idle:
		a.prepare(now)
		a.pend.dirty = true
	case Completed:
		a.ensureSprings()
		a.startTime = now.Add(-time.Duration(a.fraction * float64(a.duration)))
		a.lastTime = now
	}
	if a.state != Paused {
		a.pauseTime = now
		a.setState(Paused)
	}
	a.release()
}

// Stop ends the animation where it is. The completion callback is not
// called.
func (a *Animation) Stop() {
	a.mu.Lock()
	a.setState(Completed)
	a.release()
}

// Complete jumps a running or paused animation to the end of its current
// play, applies it and completes, calling the completion callback. Other
// states are left alone.
func (a *Animation) Complete() {
	a.mu.Lock()
	if a.state == Running || a.state == Paused {
		a.fraction = 1
		switch {
		case a.spring != nil:
			for i := range a.tracks {
				a.tracks[i].Current = a.tracks[i].End
			}
			for i, s := range a.springs {
				s.Reset(ExtractNumber(a.tracks[i].End))
			}
		case len(a.keyframes) > 0:
			resolveKeyframes(a.tracks, a.keyframes, a.easing, a.timelinePosition(1))
		default:
			a.interpolate(1)
		}
		a.pend.dirty = true
		a.setState(Completed)
		a.pend.complete = true
	}
	a.release()
}

// Reverse swaps the start and end of every track and plays from the
// beginning toward the new end. Springs keep their position and velocity.
func (a *Animation) Reverse() {
	a.mu.Lock()
	a.ensureSprings()
	a.reverseLocked(Now())
	sched := a.scheduler
	a.release()
	sched.Register(a)
}

func (a *Animation) reverseLocked(now time.Time) {
	for i := range a.tracks {
		a.tracks[i].Start, a.tracks[i].End = a.tracks[i].End, a.tracks[i].Start
	}
	a.reversed = !a.reversed
	a.startTime = now
	a.lastTime = now
	a.fraction = 0
	a.setState(Running)
}

// SetFractionComplete moves the animation to fraction f of its timeline,
// clamped to [0,1], recomputes every track and applies the result. It is
// valid in any state and does not change the state. A running or paused
// animation continues from f.
func (a *Animation) SetFractionComplete(f float64) {
	a.mu.Lock()
	f = clampUnit(f)
	a.fraction = f
	if len(a.keyframes) > 0 {
		resolveKeyframes(a.tracks, a.keyframes, a.easing, a.timelinePosition(f))
	} else {
		a.interpolate(f)
	}
	for i, s := range a.springs {
		s.Reset(ExtractNumber(a.tracks[i].Current))
	}
	if a.state == Running || a.state == Paused {
		now := Now()
		a.startTime = now.Add(-time.Duration(f * float64(a.duration)))
		a.lastTime = now
		if a.state == Paused {
			a.pauseTime = now
		}
	}
	a.pend.dirty = true
	a.release()
}

// Tick advances a running animation to now and reports whether it should
// be ticked again. A tick that finds the animation busy skips the frame.
// If advancing panics, the animation is left Completed and unlocked and the
// panic continues to the scheduler.
func (a *Animation) Tick(now time.Time) bool {
	if !a.mu.TryLock() {
		return true
	}
	locked := true
	defer func() {
		if locked {
			a.state = Completed
			a.pend = pending{}
			a.mu.Unlock()
		}
	}()
	more := a.advance(now)
	locked = false
	a.release()
	return more
}

// advance runs one frame with a.mu held.
func (a *Animation) advance(now time.Time) bool {
	if a.state != Running {
		return false
	}
	if now.Before(a.startTime) {
		return true
	}

	delta := now.Sub(a.lastTime)
	if delta > MaxFrameDelta {
		delta = MaxFrameDelta
	} else if delta < 0 {
		delta = 0
	}
	a.lastTime = now

	var more bool
	switch {
	case a.springs != nil:
		more = a.stepSprings(delta)
	case len(a.keyframes) > 0:
		more = a.stepKeyframes(now)
	default:
		more = a.stepCurve(now)
	}
	a.pend.dirty = true
	if !more {
		a.finish(now)
	}
	return a.state == Running
}

func (a *Animation) progressAt(now time.Time) float64 {
	if a.duration <= 0 {
		return 1
	}
	return math.Min(float64(now.Sub(a.startTime))/float64(a.duration), 1)
}

func (a *Animation) stepCurve(now time.Time) bool {
	progress := a.progressAt(now)
	a.fraction = progress
	a.interpolate(progress)
	return progress < 1
}

func (a *Animation) stepKeyframes(now time.Time) bool {
	progress := a.progressAt(now)
	a.fraction = progress
	resolveKeyframes(a.tracks, a.keyframes, a.easing, a.timelinePosition(progress))
	return progress < 1
}

func (a *Animation) stepSprings(delta time.Duration) bool {
	dt := delta.Seconds()
	active := false
	for i, s := range a.springs {
		tr := &a.tracks[i]
		target := ExtractNumber(tr.End)
		tr.Current = WithNumber(tr.Start, s.Update(target, dt))
		if !s.AtRest(target) {
			active = true
		}
	}
	a.fraction = a.springFraction()
	if !active {
		for i := range a.tracks {
			a.tracks[i].Current = a.tracks[i].End
		}
		a.fraction = 1
	}
	return active
}

// springFraction estimates progress as the mean distance travelled.
func (a *Animation) springFraction() float64 {
	if len(a.tracks) == 0 {
		return 1
	}
	var sum float64
	for _, tr := range a.tracks {
		start, end := ExtractNumber(tr.Start), ExtractNumber(tr.End)
		if end == start {
			sum++
			continue
		}
		sum += clampUnit((ExtractNumber(tr.Current) - start) / (end - start))
	}
	return sum / float64(len(a.tracks))
}

func (a *Animation) interpolate(progress float64) {
	eased := progress
	if a.easing != nil {
		eased = a.easing.Solve(progress)
	}
	for i := range a.tracks {
		a.tracks[i].Current = Interpolate(a.tracks[i].Start, a.tracks[i].End, eased)
	}
}

// timelinePosition maps progress onto the keyframe timeline, which runs
// backwards while the animation is reversed.
func (a *Animation) timelinePosition(progress float64) float64 {
	if a.reversed {
		return 1 - progress
	}
	return progress
}

// finish handles the end of one play: loop, reverse or complete.
func (a *Animation) finish(now time.Time) {
	a.repeatCount++
	if a.repeat < 0 || a.repeatCount < a.repeat {
		if a.autoReverse {
			a.reverseLocked(now)
			return
		}
		a.startTime = now
		a.fraction = 0
		for i := range a.springs {
			a.seedSpring(i, a.tracks[i].Start)
		}
		return
	}
	a.setState(Completed)
	a.pend.complete = true
}

func (a *Animation) setState(s State) {
	if a.state == s {
		return
	}
	a.state = s
	a.pend.statuses = append(a.pend.statuses, s)
}

// release unlocks a.mu and then runs the effects gathered while it was
// held: apply, status listeners, completion.
func (a *Animation) release() {
	p := a.pend
	a.pend = pending{}
	var snapshot []Track
	if p.dirty && a.applier != nil {
		snapshot = cloneTracks(a.tracks)
	}
	var listeners []statusListener
	if len(p.statuses) > 0 {
		listeners = slices.Clone(a.listeners)
	}
	applier, onComplete := a.applier, a.onComplete
	a.mu.Unlock()

	if snapshot != nil {
		if err := applier.Apply(snapshot); err != nil {
			reportApply(err)
		}
	}
	for _, s := range p.statuses {
		for _, l := range listeners {
			l.fn(s)
		}
	}
	if p.complete && onComplete != nil {
		onComplete()
	}
}

func reportApply(err error) {
	var e *errors.Error
	if errors.As(err, &e) {
		if e.Kind == errors.KindUnknown {
			e.Kind = errors.KindApply
		}
		errors.Report(e)
		return
	}
	errors.Report(&errors.Error{Op: "animation.Apply", Kind: errors.KindApply, Err: err})
}

// AddStatusListener adds a callback that fires whenever the state changes.
// Callbacks run outside the animation's lock and may call its methods.
// Returns an unsubscribe function.
func (a *Animation) AddStatusListener(fn func(State)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	id := a.nextListenerID
	a.nextListenerID++
	a.listeners = append(a.listeners, statusListener{id: id, fn: fn})
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		a.listeners = slices.DeleteFunc(a.listeners, func(l statusListener) bool {
			return l.id == id
		})
	}
}

// State returns the current playback state.
func (a *Animation) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// IsRunning reports whether the animation is Running.
func (a *Animation) IsRunning() bool {
	return a.State() == Running
}

// FractionComplete returns the progress of the current play in [0,1].
func (a *Animation) FractionComplete() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.fraction
}

// Tracks returns a copy of the tracks.
func (a *Animation) Tracks() []Track {
	a.mu.Lock()
	defer a.mu.Unlock()
	return cloneTracks(a.tracks)
}

// CurrentValue returns the current value of p, so that one animation can
// continue from another.
func (a *Animation) CurrentValue(p Property) (Value, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, tr := range a.tracks {
		if tr.Property == p {
			return tr.Current, true
		}
	}
	return nil, false
}

// Duration returns the configured duration.
func (a *Animation) Duration() time.Duration {
	return a.duration
}

// Delay returns the configured start delay.
func (a *Animation) Delay() time.Duration {
	return a.delay
}

// Repeat returns the configured number of plays; -1 means forever.
func (a *Animation) Repeat() int {
	return a.repeat
}

// SpringDriven reports whether the animation is driven by springs.
func (a *Animation) SpringDriven() bool {
	return a.spring != nil
}

// Additive reports whether the animation was configured as additive.
func (a *Animation) Additive() bool {
	return a.additive
}
