package transition_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/motion/pkg/animation"
	"github.com/go-drift/motion/pkg/errors"
	motiontest "github.com/go-drift/motion/pkg/testing"
	"github.com/go-drift/motion/pkg/transition"
)

func newChoreographer(t *testing.T) (*transition.Choreographer, *animation.Animation, *motiontest.Tester) {
	t.Helper()
	tester := motiontest.NewTester(t)
	a, err := animation.New(animation.Options{
		Tracks:    []animation.Track{animation.NewTrack(animation.Y, animation.Scalar(0), animation.Scalar(100))},
		Duration:  100 * time.Millisecond,
		Scheduler: tester.Scheduler(),
	})
	require.NoError(t, err)
	c := transition.New(transition.Present)
	c.Add(a)
	return c, a, tester
}

func TestCommitRule(t *testing.T) {
	tests := []struct {
		fraction, velocity float64
		want               bool
	}{
		{0.6, 0, true},
		{0.3, 0.1, false},
		{0.5, 0.3, false},
		{0.1, 0.31, true},
	}
	for _, tt := range tests {
		c, _, _ := newChoreographer(t)
		require.NoError(t, c.BeginInteractive())
		c.UpdateInteractive(tt.fraction)

		got := c.FinishInteractive(tt.velocity)

		assert.Equal(t, tt.want, got, "fraction=%v velocity=%v", tt.fraction, tt.velocity)
		assert.Equal(t, !tt.want, c.IsCancelled())
		assert.False(t, c.IsInteractive())
	}
}

func TestInteractiveScrub(t *testing.T) {
	c, a, _ := newChoreographer(t)
	require.NoError(t, c.BeginInteractive())
	assert.True(t, c.IsInteractive())
	assert.Equal(t, animation.Paused, a.State())

	c.UpdateInteractive(0.3)
	v, _ := a.CurrentValue(animation.Y)
	assert.Equal(t, animation.Scalar(30), v)

	c.UpdateInteractive(4)
	assert.Equal(t, 1.0, c.Fraction())
}

func TestUpdateIgnoredWhenNotInteractive(t *testing.T) {
	c, a, _ := newChoreographer(t)

	c.UpdateInteractive(0.8)

	assert.Equal(t, 0.0, c.Fraction())
	assert.Equal(t, 0.0, a.FractionComplete())
}

func TestCommitRunsToCompletion(t *testing.T) {
	c, a, tester := newChoreographer(t)
	require.NoError(t, c.BeginInteractive())
	c.UpdateInteractive(0.7)

	require.True(t, c.FinishInteractive(0))
	assert.Equal(t, animation.Running, a.State())

	_, err := tester.PumpAndSettle(16*time.Millisecond, 50)
	require.NoError(t, err)
	v, _ := a.CurrentValue(animation.Y)
	assert.Equal(t, animation.Scalar(100), v)
}

func TestCancelReversesMembers(t *testing.T) {
	c, a, tester := newChoreographer(t)
	require.NoError(t, c.BeginInteractive())
	c.UpdateInteractive(0.2)

	c.CancelInteractive()

	assert.True(t, c.IsCancelled())
	assert.Equal(t, animation.Running, a.State())
	assert.Equal(t, animation.Scalar(100), a.Tracks()[0].Start)

	tester.PumpFrames(1, 16*time.Millisecond)
	v, _ := a.CurrentValue(animation.Y)
	assert.Greater(t, float64(v.(animation.Scalar)), 20.0, "reversal restarts from the old end")

	_, err := tester.PumpAndSettle(16*time.Millisecond, 50)
	require.NoError(t, err)
	v, _ = a.CurrentValue(animation.Y)
	assert.Equal(t, animation.Scalar(0), v)
}

func TestBeginOnEmpty(t *testing.T) {
	err := transition.New(transition.Pop).BeginInteractive()

	assert.ErrorIs(t, err, transition.ErrNoAnimations)
	assert.Equal(t, errors.KindState, errors.KindOf(err))
}

func TestParseContext(t *testing.T) {
	tests := []struct {
		in   string
		want transition.Context
	}{
		{"present", transition.Present},
		{"Dismiss", transition.Dismiss},
		{"2", transition.Push},
		{" pop ", transition.Pop},
	}
	for _, tt := range tests {
		got, err := transition.ParseContext(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"4", "-1", "sideways"} {
		_, err := transition.ParseContext(bad)
		assert.ErrorIs(t, err, transition.ErrInvalidContext, bad)
		assert.Equal(t, errors.KindConfig, errors.KindOf(err))
	}
	assert.Equal(t, "push", transition.Push.String())
	assert.Equal(t, transition.Present, transition.New(transition.Present).Context())
}
