package strand

import "github.com/strand-audio/strand/strandlog"

// scratchFrames is the size of the fixed scratch buffer (a struct field,
// see Mixer) each member is sampled into before being added into the mixer's output. A
// fixed, reused scratch means the mixer itself never allocates on the
// audio thread regardless of block size or member count.
const scratchFrames = 1024

// Mixer is a specialization of the dynamic set for stereo signals: each
// block it zeros its output, then for every live member samples into the
// shared scratch buffer (chunked to fit what's left of the output) and
// adds the result in. Members are evicted once naturally exhausted or
// explicitly stopped.
//
// scratch is a struct field, not a local array, so that passing a slice
// of it across the Signal interface call below never forces a fresh
// heap allocation per block: the backing array is allocated once, with
// the Mixer itself, and reused for the Mixer's whole lifetime.
type Mixer struct {
	set     *DynamicSet[Stereo]
	scratch [scratchFrames]Stereo
}

// NewMixer creates an empty Mixer and the Handle used to add sources to
// it from another goroutine. logger may be nil, in which case diagnostics
// are discarded.
func NewMixer(initialCapacity int, logger *strandlog.Logger) (*Mixer, *Handle[Stereo]) {
	set, h := newDynamicSet[Stereo](initialCapacity, logger)
	return &Mixer{set: set}, h
}

func (m *Mixer) Sample(interval float32, out []Stereo) {
	m.set.Update()

	for i := range out {
		out[i] = Stereo{}
	}

	m.set.Each(func(sig Signal[Stereo]) bool {
		pos := 0
		for pos < len(out) {
			n := len(out) - pos
			if n > scratchFrames {
				n = scratchFrames
			}
			chunk := m.scratch[:n]
			sig.Sample(interval, chunk)
			for i := range chunk {
				out[pos+i] = out[pos+i].Add(chunk[i])
			}
			pos += n
		}
		return defaultEvict[Stereo](sig)
	})
}

// Remaining is Infinite: a mixer never exhausts on its own, since members
// come and go independently of any fixed duration.
func (m *Mixer) Remaining() float32 { return Infinite }

// Len reports the number of live members, for introspection (e.g. a
// meter binary). Audio-side only; call after Sample/Update in the same
// block if an up-to-date count is needed.
func (m *Mixer) Len() int { return m.set.Len() }
