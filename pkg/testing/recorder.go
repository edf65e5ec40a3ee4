package testing

import (
	"sync"

	"github.com/go-drift/motion/pkg/animation"
)

// Recorder is an animation.Applier that keeps every frame it is given.
type Recorder struct {
	mu     sync.Mutex
	frames [][]animation.Track

	// Err, when set, is returned from every Apply after the frame is
	// recorded.
	Err error
}

// Apply records tracks.
func (r *Recorder) Apply(tracks []animation.Track) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, tracks)
	return r.Err
}

// Frames returns the recorded frames.
func (r *Recorder) Frames() [][]animation.Track {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([][]animation.Track, len(r.frames))
	copy(out, r.frames)
	return out
}

// Len returns the number of recorded frames.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Last returns the most recent frame.
func (r *Recorder) Last() ([]animation.Track, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return nil, false
	}
	return r.frames[len(r.frames)-1], true
}

// Value returns p's current value in the most recent frame.
func (r *Recorder) Value(p animation.Property) (animation.Value, bool) {
	last, ok := r.Last()
	if !ok {
		return nil, false
	}
	for _, tr := range last {
		if tr.Property == p {
			return tr.Current, true
		}
	}
	return nil, false
}

// Reset drops all recorded frames.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = nil
}
