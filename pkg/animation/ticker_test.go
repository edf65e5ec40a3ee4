package animation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/motion/pkg/errors"
)

type countdown struct {
	left  int
	ticks int
	last  time.Time
}

func (c *countdown) Tick(now time.Time) bool {
	c.ticks++
	c.last = now
	c.left--
	return c.left > 0
}

func TestSchedulerDropsFinishedTickables(t *testing.T) {
	s := NewScheduler()
	c := &countdown{left: 2}
	s.Register(c)

	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.StepAt(at)
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, at, c.last)

	s.StepAt(at)
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.HasActive())

	s.StepAt(at)
	assert.Equal(t, 2, c.ticks)
}

type reregister struct {
	s     *Scheduler
	ticks int
}

func (r *reregister) Tick(time.Time) bool {
	r.ticks++
	r.s.Register(r)
	return false
}

func TestSchedulerKeepsTickableRegisteredDuringTick(t *testing.T) {
	s := NewScheduler()
	r := &reregister{s: s}
	s.Register(r)

	s.Step()
	s.Step()

	assert.Equal(t, 2, r.ticks)
	assert.Equal(t, 1, s.Len())
}

type panicky struct{}

func (*panicky) Tick(time.Time) bool { panic("tick exploded") }

type panicCapture struct {
	panics []*errors.PanicError
}

func (p *panicCapture) HandleError(*errors.Error) {}

func (p *panicCapture) HandlePanic(err *errors.PanicError) {
	p.panics = append(p.panics, err)
}

func TestSchedulerRecoversPanics(t *testing.T) {
	h := &panicCapture{}
	errors.SetHandler(h)
	t.Cleanup(func() { errors.SetHandler(nil) })

	s := NewScheduler()
	c := &countdown{left: 5}
	s.Register(&panicky{})
	s.Register(c)

	s.Step()

	require.Len(t, h.panics, 1)
	assert.Equal(t, "animation.Scheduler.Step", h.panics[0].Op)
	assert.Equal(t, 1, c.ticks)
	assert.Equal(t, 1, s.Len())
}

func TestSchedulerUnregister(t *testing.T) {
	s := NewScheduler()
	c := &countdown{left: 5}
	s.Register(c)
	s.Unregister(c)

	s.Step()

	assert.Equal(t, 0, c.ticks)
}

func TestSchedulerRunStopsOnContext(t *testing.T) {
	s := NewScheduler()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := s.Run(ctx, time.Millisecond)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSchedulerRunUntilIdle(t *testing.T) {
	s := NewScheduler()
	c := &countdown{left: 3}
	s.Register(c)

	err := s.RunUntilIdle(context.Background(), time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, c.ticks)
}

func TestTicker(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	prev := SetClock(ClockFunc(func() time.Time { return now }))
	t.Cleanup(func() { SetClock(prev) })

	s := NewScheduler()
	var elapsed []time.Duration
	tk := s.NewTicker(func(d time.Duration) bool {
		elapsed = append(elapsed, d)
		return len(elapsed) < 2
	})

	tk.Start()
	tk.Start()
	assert.True(t, tk.IsActive())
	assert.Equal(t, 1, s.Len())

	now = start.Add(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, tk.Elapsed())
	s.Step()
	now = start.Add(20 * time.Millisecond)
	s.Step()

	assert.Equal(t, []time.Duration{10 * time.Millisecond, 20 * time.Millisecond}, elapsed)
	assert.False(t, tk.IsActive())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, time.Duration(0), tk.Elapsed())
}

func TestTickerStop(t *testing.T) {
	s := NewScheduler()
	tk := s.NewTicker(func(time.Duration) bool { return true })
	tk.Start()
	tk.Stop()

	assert.False(t, tk.IsActive())
	assert.Equal(t, 0, s.Len())
}

func TestSetClockNilRestoresSystemTime(t *testing.T) {
	fixed := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	prev := SetClock(ClockFunc(func() time.Time { return fixed }))
	assert.Equal(t, fixed, Now())

	SetClock(nil)
	assert.True(t, Now().After(fixed))
	SetClock(prev)
}
