package animation

import (
	"sort"
	"testing"

	"github.com/fogleman/ease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		e, ok := LookupEasing(name)
		require.True(t, ok, name)
		assert.Equal(t, 0.0, e.Solve(0), name)
		assert.Equal(t, 1.0, e.Solve(1), name)
		assert.Equal(t, 0.0, e.Solve(-0.5), name)
		assert.Equal(t, 1.0, e.Solve(1.5), name)
	}
}

func TestTimingCurveMonotonic(t *testing.T) {
	curves := []TimingCurve{EaseOut, EaseIn, EaseInOut, Smooth, Ease}
	for _, c := range curves {
		prev := c.Solve(0)
		for i := 1; i <= 100; i++ {
			v := c.Solve(float64(i) / 100)
			assert.GreaterOrEqual(t, v, prev, "curve %+v at %d", c, i)
			prev = v
		}
	}
}

func TestTimingCurveLinearIsExact(t *testing.T) {
	for _, x := range []float64{0.1, 0.25, 0.5, 0.9} {
		assert.Equal(t, x, Linear.Solve(x))
	}
}

func TestTimingCurveValues(t *testing.T) {
	tests := []struct {
		name  string
		curve TimingCurve
		t     float64
		want  float64
	}{
		{"smooth midpoint", Smooth, 0.5, 0.775},
		{"ease-out midpoint", EaseOut, 0.5, 0.684},
		{"ease-in midpoint", EaseIn, 0.5, 0.316},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.curve.Solve(tt.t), 0.002)
		})
	}
}

func TestBounceOvershoots(t *testing.T) {
	assert.Less(t, Bounce.Solve(0.1), 0.0)
	assert.Greater(t, Bounce.Solve(0.8), 1.0)
}

func TestLookupEasing(t *testing.T) {
	e, ok := LookupEasing(" EASE_OUT ")
	require.True(t, ok)
	assert.Equal(t, EaseOut, e)

	e, ok = LookupEasing("out-bounce")
	require.True(t, ok)
	assert.InDelta(t, ease.OutBounce(0.3), e.Solve(0.3), 1e-12)

	_, ok = LookupEasing("wobble")
	assert.False(t, ok)
}

func TestEaseFuncClamps(t *testing.T) {
	e := EaseFunc(ease.OutElastic)
	assert.Equal(t, 0.0, e.Solve(-1))
	assert.Equal(t, 1.0, e.Solve(2))
}

func TestEasingNamesSorted(t *testing.T) {
	names := EasingNames()
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "smooth")
	assert.Contains(t, names, "in-out-elastic")
}
