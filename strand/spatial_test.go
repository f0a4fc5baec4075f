package strand

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
)

func TestSpatialConstantAttenuationAfterSmoothingWindow(t *testing.T) {
	inner := NewConstant(Mono{1})
	s, ctrl := NewSpatial(inner, 1000, 343, 0.1075, 0.5, 4.0)
	ctrl.SetMotion(r3.Vector{X: 3, Y: 0, Z: 0}, r3.Vector{})

	out := make([]Stereo, 100) // 100ms blocks until past the 0.5s smoothing window
	for i := 0; i < 6; i++ {
		s.Sample(0.001, out)
	}

	a := make([]Stereo, 50)
	b := make([]Stereo, 50)
	s.Sample(0.001, a)
	s.Sample(0.001, b)
	assert.InDelta(t, a[0][0], b[0][0], 1e-4)
	assert.InDelta(t, a[0][1], b[0][1], 1e-4)
}

func TestSpatialCutoffScenario(t *testing.T) {
	buf := NewMonoBuffer(make([]Mono, 1000), 1000) // a 1-second buffer at 1kHz
	frames, _ := NewFramesSignal(buf)

	const maxDelay = float32(1.0)
	s, ctrl := NewSpatial(frames, 1000, 343, 0.1075, 0.5, float64(maxDelay))
	ctrl.SetMotion(r3.Vector{X: 1, Y: 0, Z: 0}, r3.Vector{})

	scene, handle := NewSpatialScene(2, maxDelay, nil)
	handle.Play(s)

	out := make([]Stereo, 1000) // one block per simulated second
	driveSeconds := func(n int) {
		for i := 0; i < n; i++ {
			scene.Sample(0.001, out)
		}
	}

	driveSeconds(1)
	assert.Equal(t, 1, scene.Len(), "must not be evicted before 1s")

	driveSeconds(1) // now at 2s: removal window is open, outcome unspecified

	driveSeconds(1) // now at 3s
	assert.Equal(t, 0, scene.Len(), "must be evicted by 3s")
}
