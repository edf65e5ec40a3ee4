package config

import (
	"fmt"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/errors"
	"github.com/go-drift/motion/pkg/timeline"
	"github.com/go-drift/motion/pkg/transition"
)

// frozenProperties are carried over in continuation mode when the live
// surface shows a non-default value the new target does not mention.
var frozenProperties = []animation.Property{
	animation.X,
	animation.Y,
	animation.Z,
	animation.Scale,
	animation.Opacity,
}

// Host supplies the apply and query collaborators for named elements.
type Host interface {
	Applier(element string) animation.Applier
	Query(element string) animation.Query
}

// Env carries what a built animation is attached to.
type Env struct {
	Host      Host
	Scheduler *animation.Scheduler

	// OnComplete is called with the animation's name each time it
	// completes on its own.
	OnComplete func(name string, a *animation.Animation)
}

// ElementName returns the element s drives when registered under
// name.
func (s AnimationSpec) ElementName(name string) string {
	if s.Element != "" {
		return s.Element
	}
	return name
}

// Options converts s into animation options. q supplies live start
// values when s continues from the current state; it may be nil.
// Applier, Scheduler and OnComplete are left for the caller.
func (s AnimationSpec) Options(q animation.Query) (animation.Options, error) {
	const op = "config.AnimationSpec.Options"

	easing, spring, err := s.Timing.Resolve()
	if err != nil {
		return animation.Options{}, errors.Config(op, err)
	}

	tracks, err := s.tracks(op, q)
	if err != nil {
		return animation.Options{}, err
	}

	kfs := make([]animation.Keyframe, 0, len(s.Keyframes))
	for _, k := range s.Keyframes {
		values := make(map[animation.Property]animation.Value, len(k.Values))
		for name, raw := range k.Values {
			p, v, err := parseEntry(op, name, raw)
			if err != nil {
				return animation.Options{}, err
			}
			values[p] = v
		}
		kfs = append(kfs, animation.NewKeyframe(k.Time, values))
	}

	var velocities map[animation.Property]float64
	for name, v := range s.Velocity {
		p, ok := animation.ParseProperty(name)
		if !ok {
			return animation.Options{}, propertyError(op, name, ErrUnknownProperty)
		}
		if velocities == nil {
			velocities = make(map[animation.Property]float64, len(s.Velocity))
		}
		velocities[p] = v
	}

	duration := s.Duration
	if duration == 0 {
		duration = DefaultDuration
	}

	return animation.Options{
		Tracks:      tracks,
		Keyframes:   kfs,
		Easing:      easing,
		Spring:      spring,
		Velocities:  velocities,
		Duration:    duration.Std(),
		Delay:       s.Delay.Std(),
		Repeat:      s.Repeat,
		AutoReverse: s.AutoReverse,
		Additive:    s.Additive,
	}, nil
}

func (s AnimationSpec) tracks(op string, q animation.Query) ([]animation.Track, error) {
	if !s.Continue {
		q = nil
	}

	tracks := make([]animation.Track, 0, len(s.Target))
	seen := make(map[animation.Property]bool, len(s.Target))
	for _, name := range sortedKeys(s.Target) {
		p, end, err := parseEntry(op, name, s.Target[name])
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, animation.NewTrack(p, startValue(p, end, q), end))
		seen[p] = true
	}

	if q == nil {
		return tracks, nil
	}
	for _, p := range frozenProperties {
		if seen[p] {
			continue
		}
		v, ok := q.CurrentValue(p)
		if !ok || v == p.Default() {
			continue
		}
		tracks = append(tracks, animation.NewTrack(p, v, v))
	}
	return tracks, nil
}

func parseEntry(op, name string, raw any) (animation.Property, animation.Value, error) {
	p, ok := animation.ParseProperty(name)
	if !ok {
		return "", nil, propertyError(op, name, ErrUnknownProperty)
	}
	v, err := ParseValue(p, raw)
	if err != nil {
		return "", nil, propertyError(op, name, err)
	}
	return p, v, nil
}

// startValue picks the live value when q has one of the right kind and the
// property's resting value otherwise. A resting length takes the target's
// unit so the track interpolates in the unit it was written in.
func startValue(p animation.Property, end animation.Value, q animation.Query) animation.Value {
	if q != nil {
		if v, ok := q.CurrentValue(p); ok && animation.SameKind(v, end) {
			return v
		}
	}
	def := p.Default()
	if l, ok := def.(animation.Length); ok {
		if e, ok := end.(animation.Length); ok && e.Unit != l.Unit {
			return animation.Length{Unit: e.Unit}
		}
	}
	return def
}

// Build creates the named animation attached to env.
func (d *Document) Build(name string, env Env) (*animation.Animation, error) {
	const op = "config.Document.Build"

	spec, ok := d.Animations[name]
	if !ok {
		return nil, errors.Config(op, fmt.Errorf("%w: %q", ErrUnknownAnimation, name))
	}
	element := spec.ElementName(name)

	var q animation.Query
	var applier animation.Applier
	if env.Host != nil {
		q = env.Host.Query(element)
		applier = env.Host.Applier(element)
	}

	opts, err := spec.Options(q)
	if err != nil {
		return nil, err
	}
	opts.Applier = applier
	opts.Scheduler = env.Scheduler

	var a *animation.Animation
	if env.OnComplete != nil {
		opts.OnComplete = func() { env.OnComplete(name, a) }
	}
	a, err = animation.New(opts)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Sequence builds the named sequence with fresh member animations.
func (d *Document) Sequence(name string, env Env) (*timeline.Sequencer, error) {
	spec, ok := d.Sequences[name]
	if !ok {
		return nil, errors.Config("config.Document.Sequence", fmt.Errorf("%w: %q", ErrUnknownSequence, name))
	}
	seq := timeline.NewSequencer()
	for _, st := range spec.Steps {
		a, err := d.Build(st.Animation, env)
		if err != nil {
			return nil, err
		}
		seq.AddStep(a, st.Overlap)
	}
	return seq, nil
}

// Group builds the named group.
func (d *Document) Group(name string, env Env) (*timeline.Group, error) {
	refs, ok := d.Groups[name]
	if !ok {
		return nil, errors.Config("config.Document.Group", fmt.Errorf("%w: %q", ErrUnknownGroup, name))
	}
	g := timeline.NewGroup(name)
	for _, ref := range refs {
		a, err := d.Build(ref, env)
		if err != nil {
			return nil, err
		}
		g.Add(a)
	}
	return g, nil
}

// Transition builds the named transition's choreographer.
func (d *Document) Transition(name string, env Env) (*transition.Choreographer, error) {
	spec, ok := d.Transitions[name]
	if !ok {
		return nil, errors.Config("config.Document.Transition", fmt.Errorf("%w: %q", ErrUnknownTransition, name))
	}
	ctx, err := transition.ParseContext(spec.Context)
	if err != nil {
		return nil, err
	}
	c := transition.New(ctx)
	for _, ref := range spec.Animations {
		a, err := d.Build(ref, env)
		if err != nil {
			return nil, err
		}
		c.Add(a)
	}
	return c, nil
}
