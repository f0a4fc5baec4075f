package strand

import "unsafe"

// MonoToStereo expands a mono inner signal into a stereo output by
// duplicating each sample into both channels. To avoid a scratch
// allocation it samples the inner directly into the first half of the
// caller's output buffer (reinterpreted as mono frames — valid for the
// same reason FrameStereo is: Mono and Stereo coincide byte-for-byte with
// flat Sample storage) and then expands in place, back-to-front, so that
// expanding frame i never overwrites a not-yet-read mono sample at
// position < i.
type MonoToStereo struct {
	inner Signal[Mono]
}

// NewMonoToStereo wraps a mono inner signal with a stereo expansion stage.
func NewMonoToStereo(inner Signal[Mono]) *MonoToStereo {
	return &MonoToStereo{inner: inner}
}

// Inner exposes the wrapped signal.
func (m *MonoToStereo) Inner() Signal[Mono] { return m.inner }

func (m *MonoToStereo) Sample(interval float32, out []Stereo) {
	if len(out) == 0 {
		return
	}
	raw := unsafe.Slice((*Sample)(unsafe.Pointer(&out[0])), 2*len(out))
	monoView := unsafe.Slice((*Mono)(unsafe.Pointer(&raw[0])), len(out))
	m.inner.Sample(interval, monoView)
	for i := len(out) - 1; i >= 0; i-- {
		v := raw[i]
		out[i] = Stereo{v, v}
	}
}

func (m *MonoToStereo) Remaining() float32 { return m.inner.Remaining() }
