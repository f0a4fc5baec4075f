package strand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestConstantInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float32().Draw(t, "v")
		n := rapid.IntRange(0, 64).Draw(t, "n")
		interval := rapid.Float32Range(-1, 1).Draw(t, "interval")

		c := NewConstant(Mono{v})
		out := make([]Mono, n)
		c.Sample(interval, out)
		for _, f := range out {
			assert.Equal(t, v, f[0])
		}
		assert.Equal(t, Infinite, c.Remaining())
	})
}

func TestFramesSignalBoundaryBehavior(t *testing.T) {
	buf := NewMonoBuffer([]Mono{{1}, {2}, {3}}, 1)
	f, ctrl := NewFramesSignal(buf)

	ctrl.SetPlaybackPosition(-5)
	out := make([]Mono, 1)
	f.Sample(1, out)
	assert.Equal(t, Mono{0}, out[0])

	ctrl.SetPlaybackPosition(10)
	f.Sample(1, out)
	assert.Equal(t, Mono{0}, out[0])
}

func TestCycleSmallScenario(t *testing.T) {
	buf := NewMonoBuffer([]Mono{{1}, {2}, {3}}, 1)

	c, _ := NewCycle(buf)
	out := make([]Mono, 5)
	c.Sample(1.0, out)
	want := []float32{1, 2, 3, 1, 2}
	for i, w := range want {
		assert.InDelta(t, w, out[i][0], 1e-6)
	}
}

func TestCycleSmallScenarioSplitCalls(t *testing.T) {
	buf := NewMonoBuffer([]Mono{{1}, {2}, {3}}, 1)
	c, _ := NewCycle(buf)

	a := make([]Mono, 2)
	c.Sample(1.0, a)
	b := make([]Mono, 3)
	c.Sample(1.0, b)

	want := []float32{1, 2, 3, 1, 2}
	got := append(a, b...)
	for i, w := range want {
		assert.InDelta(t, w, got[i][0], 1e-6)
	}
}

func TestCycleUndefinedRangeTreatedAsSingleFrame(t *testing.T) {
	buf := NewMonoBuffer([]Mono{{1}, {2}, {3}}, 1)
	c, ctrl := NewCycle(buf)
	ctrl.SetRange(1, 1)
	out := make([]Mono, 3)
	c.Sample(1.0, out)
	for _, f := range out {
		assert.InDelta(t, float32(2), f[0], 1e-6)
	}
}

func TestStreamConservesWrittenSamples(t *testing.T) {
	s, w := NewStream(1, 4, 4)
	written := []Sample{1, 2, 3, 4, 5, 6}
	n := w.Write(written)
	assert.Equal(t, len(written), n)
	w.Close()

	out := make([]Mono, 8)
	s.Sample(1, out)
	for i := 0; i < 6; i++ {
		assert.InDelta(t, written[i], out[i][0], 1e-6)
	}
	assert.Less(t, s.Remaining(), float32(0))
}
