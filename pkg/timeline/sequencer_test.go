package timeline_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/errors"
	motiontest "github.com/go-drift/motion/pkg/testing"
	"github.com/go-drift/motion/pkg/timeline"
)

func newAnim(t *testing.T, tester *motiontest.Tester, d time.Duration) *animation.Animation {
	t.Helper()
	a, err := animation.New(animation.Options{
		Tracks:    []animation.Track{animation.NewTrack(animation.X, animation.Scalar(0), animation.Scalar(100))},
		Duration:  d,
		Scheduler: tester.Scheduler(),
	})
	require.NoError(t, err)
	return a
}

func x(a *animation.Animation) float64 {
	v, _ := a.CurrentValue(animation.X)
	return animation.ExtractNumber(v)
}

func TestSequencerOffsets(t *testing.T) {
	tester := motiontest.NewTester(t)
	s := timeline.NewSequencer()
	s.AddStep(newAnim(t, tester, 100*time.Millisecond), 0)
	s.AddStep(newAnim(t, tester, 50*time.Millisecond), 1)

	steps := s.Steps()
	require.Len(t, steps, 2)
	assert.Equal(t, time.Duration(0), steps[1].Start)
	assert.Equal(t, 100*time.Millisecond, s.TotalDuration())
}

func TestSequencerBuilders(t *testing.T) {
	tester := motiontest.NewTester(t)
	s := timeline.NewSequencer().
		Then(newAnim(t, tester, 100*time.Millisecond)).
		Then(newAnim(t, tester, 100*time.Millisecond)).
		Overlap(newAnim(t, tester, 40*time.Millisecond), 0.5).
		With(newAnim(t, tester, 200*time.Millisecond))

	steps := s.Steps()
	require.Equal(t, 4, s.StepCount())
	assert.Equal(t, 100*time.Millisecond, steps[1].Start)
	assert.Equal(t, 150*time.Millisecond, steps[2].Start)
	assert.Equal(t, 150*time.Millisecond, steps[3].Start)
	assert.Equal(t, 350*time.Millisecond, s.TotalDuration())
}

func TestSequencerClampsOverlap(t *testing.T) {
	tester := motiontest.NewTester(t)
	s := timeline.NewSequencer()
	s.AddStep(newAnim(t, tester, 100*time.Millisecond), 0)
	s.AddStep(newAnim(t, tester, 100*time.Millisecond), 3)

	assert.Equal(t, 1.0, s.Steps()[1].Overlap)
	assert.Equal(t, time.Duration(0), s.Steps()[1].Start)
}

func TestSequencerSeek(t *testing.T) {
	tester := motiontest.NewTester(t)
	first := newAnim(t, tester, 100*time.Millisecond)
	second := newAnim(t, tester, 100*time.Millisecond)
	s := timeline.NewSequencer().Then(first).Then(second)

	require.NoError(t, s.Seek(0.25))
	assert.Equal(t, 50.0, x(first))
	assert.Equal(t, 0.0, x(second))

	require.NoError(t, s.Seek(0.75))
	assert.Equal(t, 100.0, x(first))
	assert.Equal(t, 50.0, x(second))
	assert.Equal(t, 0.75, s.Fraction())
}

func TestSequencerEmpty(t *testing.T) {
	s := timeline.NewSequencer()

	err := s.Play()
	assert.ErrorIs(t, err, timeline.ErrEmpty)
	assert.Equal(t, errors.KindState, errors.KindOf(err))

	assert.ErrorIs(t, s.Seek(0.5), timeline.ErrEmpty)
	assert.ErrorIs(t, s.PlayTimeline(nil), timeline.ErrEmpty)
	assert.False(t, s.IsRunning())
}

func TestSequencerPlayStartsEveryMember(t *testing.T) {
	tester := motiontest.NewTester(t)
	first := newAnim(t, tester, 100*time.Millisecond)
	second := newAnim(t, tester, 100*time.Millisecond)
	s := timeline.NewSequencer().Then(first).Then(second)

	require.NoError(t, s.Play())
	assert.True(t, s.IsRunning())
	assert.Equal(t, animation.Running, first.State())
	assert.Equal(t, animation.Running, second.State())

	s.Pause()
	assert.False(t, s.IsRunning())
	assert.Equal(t, animation.Paused, first.State())

	s.Stop()
	assert.Equal(t, animation.Completed, second.State())
	assert.Equal(t, 0.0, s.Fraction())
}

func TestSequencerPlayJoinsMemberErrors(t *testing.T) {
	tester := motiontest.NewTester(t)
	first := newAnim(t, tester, 100*time.Millisecond)
	require.NoError(t, first.Start())
	s := timeline.NewSequencer().Then(first)

	err := s.Play()

	assert.ErrorIs(t, err, animation.ErrAlreadyRunning)
}

func TestSequencerPlayTimeline(t *testing.T) {
	tester := motiontest.NewTester(t)
	first := newAnim(t, tester, 100*time.Millisecond)
	second := newAnim(t, tester, 100*time.Millisecond)
	s := timeline.NewSequencer().Then(first).Then(second)

	require.NoError(t, s.PlayTimeline(tester.Scheduler()))
	assert.Equal(t, animation.Paused, first.State())

	tester.Clock().Advance(50 * time.Millisecond)
	tester.Pump()
	assert.Equal(t, 50.0, x(first))
	assert.Equal(t, 0.0, x(second))

	tester.Clock().Advance(100 * time.Millisecond)
	tester.Pump()
	assert.Equal(t, 100.0, x(first))
	assert.Equal(t, 50.0, x(second))

	_, err := tester.PumpAndSettle(16*time.Millisecond, 20)
	require.NoError(t, err)
	assert.Equal(t, 100.0, x(second))
	assert.False(t, s.IsRunning())
}

func TestSequencerPlayTimelineCompletesMembers(t *testing.T) {
	tester := motiontest.NewTester(t)
	completions := map[string]int{}
	member := func(name string, repeat int) *animation.Animation {
		a, err := animation.New(animation.Options{
			Tracks:     []animation.Track{animation.NewTrack(animation.X, animation.Scalar(0), animation.Scalar(100))},
			Duration:   100 * time.Millisecond,
			Repeat:     repeat,
			Scheduler:  tester.Scheduler(),
			OnComplete: func() { completions[name]++ },
		})
		require.NoError(t, err)
		return a
	}
	first, second := member("first", 1), member("second", 3)
	s := timeline.NewSequencer().Then(first).Overlap(second, 0.5)

	require.NoError(t, s.PlayTimeline(tester.Scheduler()))
	_, err := tester.PumpAndSettle(16*time.Millisecond, 50)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"first": 1, "second": 1}, completions)
	assert.Equal(t, animation.Completed, first.State())
	assert.Equal(t, animation.Completed, second.State())
	assert.Equal(t, 100.0, x(second))
	assert.False(t, tester.Scheduler().HasActive())
}
