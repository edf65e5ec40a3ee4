package testing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-drift/motion/pkg/animation"
)

func TestFakeClock_Advance(t *testing.T) {
	clk := NewFakeClock()
	start := clk.Now()

	now := clk.Advance(100 * time.Millisecond)

	assert.Equal(t, 100*time.Millisecond, clk.Now().Sub(start))
	assert.Equal(t, clk.Now(), now)
	assert.Equal(t, 100*time.Millisecond, clk.Elapsed())
	assert.Equal(t, float64(Epoch.UnixMilli())+100, clk.Millis())
}

func TestFakeClock_Set(t *testing.T) {
	clk := NewFakeClock()
	target := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	clk.Set(target)

	assert.True(t, clk.Now().Equal(target))
}

func TestTester_Clock(t *testing.T) {
	tester := NewTester(t)
	clk := tester.Clock()
	require.NotNil(t, clk)

	start := animation.Now()
	clk.Advance(500 * time.Millisecond)

	assert.Equal(t, 500*time.Millisecond, animation.Now().Sub(start))
}

func TestTester_CleanupRestoresClock(t *testing.T) {
	tester := NewTester(t)
	tester.Cleanup()

	_, fake := animation.SetClock(nil).(*FakeClock)
	assert.False(t, fake)
}

func TestTester_ClockDrivesAnimation(t *testing.T) {
	tester := NewTester(t)
	rec := &Recorder{}
	a, err := animation.New(animation.Options{
		Tracks:    []animation.Track{animation.NewTrack(animation.Width, animation.Length{Value: 50, Unit: animation.Px}, animation.Length{Value: 200, Unit: animation.Px})},
		Duration:  time.Second,
		Applier:   rec,
		Scheduler: tester.Scheduler(),
	})
	require.NoError(t, err)
	require.NoError(t, a.Start())

	tester.Clock().Advance(500 * time.Millisecond)
	tester.Pump()

	v, ok := rec.Value(animation.Width)
	require.True(t, ok)
	assert.InDelta(t, 125, v.(animation.Length).Value, 1e-9)

	tester.Clock().Advance(600 * time.Millisecond)
	tester.Pump()

	v, _ = rec.Value(animation.Width)
	assert.Equal(t, animation.Length{Value: 200, Unit: animation.Px}, v)
	assert.Equal(t, animation.Completed, a.State())
}

func TestTester_PumpAndSettle(t *testing.T) {
	tester := NewTester(t)
	a, err := animation.New(animation.Options{
		Tracks:    []animation.Track{animation.NewTrack(animation.X, animation.Scalar(10), animation.Scalar(100))},
		Duration:  100 * time.Millisecond,
		Scheduler: tester.Scheduler(),
	})
	require.NoError(t, err)
	require.NoError(t, a.Start())

	frames, err := tester.PumpAndSettle(16*time.Millisecond, 100)

	require.NoError(t, err)
	assert.Equal(t, 7, frames)
	assert.Equal(t, animation.Completed, a.State())
}

func TestTester_PumpAndSettleTimeout(t *testing.T) {
	tester := NewTester(t)
	a, err := animation.New(animation.Options{
		Tracks:    []animation.Track{animation.NewTrack(animation.X, animation.Scalar(0), animation.Scalar(1))},
		Duration:  100 * time.Millisecond,
		Repeat:    -1,
		Scheduler: tester.Scheduler(),
	})
	require.NoError(t, err)
	require.NoError(t, a.Start())

	_, err = tester.PumpAndSettle(16*time.Millisecond, 20)

	assert.ErrorIs(t, err, ErrSettleTimeout)
}

type pointerLog struct {
	downs, moves int
	lastY, lastT float64
	firstT       float64
}

func (p *pointerLog) OnTapDown(x, y, t float64) {
	p.downs++
	p.firstT = t
}

func (p *pointerLog) OnTapMove(x, y, t float64) {
	p.moves++
	p.lastY, p.lastT = y, t
}

func (p *pointerLog) OnTapUp() bool { return p.lastY > 0 }

func TestTester_Drag(t *testing.T) {
	tester := NewTester(t)
	p := &pointerLog{}

	up := tester.Drag(p, 10, 0, 100, 4, 10*time.Millisecond)

	assert.True(t, up)
	assert.Equal(t, 1, p.downs)
	assert.Equal(t, 4, p.moves)
	assert.InDelta(t, 100, p.lastY, 1e-9)
	assert.InDelta(t, 40, p.lastT-p.firstT, 1e-6)
}

func TestRecorder(t *testing.T) {
	rec := &Recorder{}
	_, ok := rec.Last()
	assert.False(t, ok)

	require.NoError(t, rec.Apply([]animation.Track{animation.NewTrack(animation.X, animation.Scalar(1), animation.Scalar(2))}))
	assert.Equal(t, 1, rec.Len())

	v, ok := rec.Value(animation.X)
	require.True(t, ok)
	assert.Equal(t, animation.Scalar(1), v)

	_, ok = rec.Value(animation.Y)
	assert.False(t, ok)

	rec.Reset()
	assert.Equal(t, 0, rec.Len())
}
