package testing

import (
	"errors"
	"testing"
	"time"

	"github.com/go-drift/motion/pkg/animation"
)

// DefaultFrame is the frame interval used when none is given.
const DefaultFrame = 16 * time.Millisecond

// ErrSettleTimeout is returned when PumpAndSettle exceeds its frame budget.
var ErrSettleTimeout = errors.New("PumpAndSettle timed out: scheduler did not settle")

// Tester drives animations on a private scheduler with a fake clock.
type Tester struct {
	clock     *FakeClock
	prevClock animation.Clock
	sched     *animation.Scheduler
}

// NewTester installs a fake animation clock and returns a tester with its
// own scheduler. The previous clock is restored via t.Cleanup.
func NewTester(t testing.TB) *Tester {
	clk := NewFakeClock()
	tester := &Tester{
		clock: clk,
		sched: animation.NewScheduler(),
	}
	tester.prevClock = animation.SetClock(clk)
	t.Cleanup(tester.Cleanup)
	return tester
}

// Cleanup restores the animation clock that was active before NewTester.
func (t *Tester) Cleanup() {
	if t.prevClock != nil {
		animation.SetClock(t.prevClock)
		t.prevClock = nil
	}
}

// Clock returns the fake clock.
func (t *Tester) Clock() *FakeClock {
	return t.clock
}

// Scheduler returns the tester's scheduler. Pass it as
// animation.Options.Scheduler.
func (t *Tester) Scheduler() *animation.Scheduler {
	return t.sched
}

// Pump ticks the scheduler once at the current fake time.
func (t *Tester) Pump() {
	t.sched.StepAt(t.clock.Now())
}

// PumpFrames advances the clock by frame and pumps, n times.
func (t *Tester) PumpFrames(n int, frame time.Duration) {
	if frame <= 0 {
		frame = DefaultFrame
	}
	for range n {
		t.clock.Advance(frame)
		t.Pump()
	}
}

// PumpAndSettle pumps frames until nothing is registered with the
// scheduler. It returns the number of frames pumped, or ErrSettleTimeout
// after maxFrames.
func (t *Tester) PumpAndSettle(frame time.Duration, maxFrames int) (int, error) {
	if frame <= 0 {
		frame = DefaultFrame
	}
	for i := 0; i < maxFrames; i++ {
		if !t.sched.HasActive() {
			return i, nil
		}
		t.clock.Advance(frame)
		t.Pump()
	}
	if t.sched.HasActive() {
		return maxFrames, ErrSettleTimeout
	}
	return maxFrames, nil
}

// Millis returns the fake clock as a millisecond timestamp, the unit
// pointer samples are expressed in.
func (t *Tester) Millis() float64 {
	return t.clock.Millis()
}
