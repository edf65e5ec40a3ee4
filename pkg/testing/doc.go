// Package testing provides deterministic time and recording collaborators
// for testing motion animations.
//
// # Quick Start
//
// Create a tester, start an animation on its scheduler and pump frames:
//
//	func TestFadeIn(t *testing.T) {
//	    tester := motiontest.NewTester(t)
//	    rec := &motiontest.Recorder{}
//	    a, _ := animation.New(animation.Options{
//	        Tracks:    []animation.Track{animation.NewTrack(animation.Opacity, animation.Scalar(0), animation.Scalar(1))},
//	        Duration:  100 * time.Millisecond,
//	        Applier:   rec,
//	        Scheduler: tester.Scheduler(),
//	    })
//	    a.Start()
//
//	    tester.PumpFrames(3, 16*time.Millisecond)
//	    last, _ := rec.Last()
//	    ...
//	}
//
// # Time
//
// NewTester installs a [FakeClock] as the animation clock and restores the
// previous clock when the test ends. Advance it directly or through Pump:
//
//	tester.Clock().Advance(100 * time.Millisecond)
//	tester.Pump()
//
// # Gestures
//
// [Tester.Drag] and [Tester.Fling] feed a pointer stream with timestamps
// taken from the fake clock into anything implementing [PointerTarget].
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import motiontest "github.com/go-drift/motion/pkg/testing"
package testing
