package strand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMixerReallocScenario(t *testing.T) {
	const initialCapacity = 2
	mixer, handle := NewMixer(initialCapacity, nil)

	for i := 0; i < initialCapacity+2; i++ {
		handle.Play(NewConstant(Stereo{0.1, 0.1}))
	}

	out := make([]Stereo, 16)
	// Draining requires at least one Sample call per realloc hop the
	// messages crossed; a handful of blocks is enough to settle.
	for i := 0; i < 4; i++ {
		mixer.Sample(1.0/44100, out)
	}

	assert.Equal(t, initialCapacity+2, mixer.Len())
}

func TestMixerSamplingNeverAllocates(t *testing.T) {
	mixer, handle := NewMixer(4, nil)
	for i := 0; i < 3; i++ {
		handle.Play(NewConstant(Stereo{0.2, 0.2}))
	}
	out := make([]Stereo, 128)
	mixer.Sample(1.0/44100, out) // settle pending inserts before measuring

	allocs := testing.AllocsPerRun(50, func() {
		mixer.Sample(1.0/44100, out)
	})
	assert.Zero(t, allocs)
}

func TestMixerEvictsExhaustedMembers(t *testing.T) {
	mixer, handle := NewMixer(2, nil)
	buf := NewMonoBuffer([]Mono{{1}, {1}}, 1)
	f, _ := NewFramesSignal(buf)
	handle.Play(NewMonoToStereo(f))

	out := make([]Stereo, 1)
	mixer.Sample(1, out) // drain insert, consume one frame (remaining now 1)
	mixer.Sample(1, out) // consume second frame (remaining now 0, still >= 0)
	assert.Equal(t, 1, mixer.Len())
	mixer.Sample(1, out) // remaining now < 0: evicted on this pass
	assert.Equal(t, 0, mixer.Len())
}
