package testing

import "time"

// PointerTarget receives a pointer stream. Timestamps are milliseconds.
type PointerTarget interface {
	OnTapDown(x, y, t float64)
	OnTapMove(x, y, t float64)
	OnTapUp() bool
}

// Drag simulates a vertical drag by dy starting at (x, y), split into steps
// moves one frame apart. It returns the result of OnTapUp.
func (t *Tester) Drag(target PointerTarget, x, y, dy float64, steps int, frame time.Duration) bool {
	if steps < 1 {
		steps = 1
	}
	if frame <= 0 {
		frame = DefaultFrame
	}
	target.OnTapDown(x, y, t.Millis())
	for i := 1; i <= steps; i++ {
		t.clock.Advance(frame)
		target.OnTapMove(x, y+dy*float64(i)/float64(steps), t.Millis())
	}
	return target.OnTapUp()
}

// Fling is a fast drag: ten moves 1ms apart so the release velocity is high.
func (t *Tester) Fling(target PointerTarget, x, y, dy float64) bool {
	return t.Drag(target, x, y, dy, 10, time.Millisecond)
}
