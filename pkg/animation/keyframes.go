package animation

import (
	"cmp"
	"slices"
)

// sortKeyframes returns a copy of kfs ordered by time with every time
// clamped to [0,1]. Keyframes with equal times keep no guaranteed relative
// order; callers must not rely on which of them wins.
func sortKeyframes(kfs []Keyframe) []Keyframe {
	out := make([]Keyframe, len(kfs))
	for i, kf := range kfs {
		kf.Time = clampUnit(kf.Time)
		out[i] = kf
	}
	slices.SortStableFunc(out, func(a, b Keyframe) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return out
}

// findKeyframeRange returns the indices of the keyframes bracketing progress
// and the local progress between them. Progress before the first keyframe
// selects the first pair at 0; progress after the last selects the last pair
// at 1. kfs must be sorted and non-empty.
func findKeyframeRange(kfs []Keyframe, progress float64) (from, to int, local float64) {
	n := len(kfs)
	if n == 1 {
		return 0, 0, 0
	}
	if progress < kfs[0].Time {
		return 0, 1, 0
	}
	for i := 0; i < n-1; i++ {
		a, b := kfs[i].Time, kfs[i+1].Time
		if progress >= a && progress <= b {
			span := b - a
			if span <= 0 {
				return i, i + 1, 1
			}
			return i, i + 1, (progress - a) / span
		}
	}
	return n - 2, n - 1, 1
}

// resolveKeyframes recomputes Current for every track present in both
// bracketing keyframes. Tracks missing from either bracket keep their value.
func resolveKeyframes(tracks []Track, kfs []Keyframe, easing Easing, progress float64) {
	if len(kfs) == 0 {
		return
	}
	from, to, local := findKeyframeRange(kfs, progress)
	eased := local
	if easing != nil {
		eased = easing.Solve(local)
	}
	for i := range tracks {
		p := tracks[i].Property
		start, ok := kfs[from].Value(p)
		if !ok {
			continue
		}
		end, ok := kfs[to].Value(p)
		if !ok {
			continue
		}
		tracks[i].Current = Interpolate(start, end, eased)
	}
}
