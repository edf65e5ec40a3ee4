package animation

// Track is one animated property: where it starts, where it ends and where
// it is now. Start, End and Current are expected to be the same value kind.
type Track struct {
	Property Property
	Start    Value
	End      Value
	Current  Value
}

// NewTrack returns a track resting at start.
func NewTrack(p Property, start, end Value) Track {
	return Track{Property: p, Start: start, End: end, Current: start}
}

// Keyframe is a time-stamped partial snapshot of property values. A property
// need not appear in every keyframe.
type Keyframe struct {
	// Time is the timeline position in [0,1].
	Time   float64
	Values map[Property]Value
}

// NewKeyframe returns a keyframe at time t with the given values.
func NewKeyframe(t float64, values map[Property]Value) Keyframe {
	return Keyframe{Time: t, Values: values}
}

// Value returns the keyframe's value for p, if present.
func (k Keyframe) Value(p Property) (Value, bool) {
	v, ok := k.Values[p]
	return v, ok
}

func cloneTracks(tracks []Track) []Track {
	out := make([]Track, len(tracks))
	copy(out, tracks)
	return out
}
