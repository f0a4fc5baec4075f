package strand

const downmixChunk = 256

// Downmix collapses a stereo inner signal to mono by summing channels.
// It samples the inner in fixed-size scratch chunks so callers can pull
// any block size from Downmix without it needing to allocate per call.
type Downmix struct {
	inner Signal[Stereo]
	chunk [downmixChunk]Stereo
}

// NewDownmix wraps a stereo inner signal with a mono downmix stage.
func NewDownmix(inner Signal[Stereo]) *Downmix {
	return &Downmix{inner: inner}
}

// Inner exposes the wrapped signal.
func (d *Downmix) Inner() Signal[Stereo] { return d.inner }

func (d *Downmix) Sample(interval float32, out []Mono) {
	for len(out) > 0 {
		n := len(out)
		if n > downmixChunk {
			n = downmixChunk
		}
		scratch := d.chunk[:n]
		d.inner.Sample(interval, scratch)
		for i := 0; i < n; i++ {
			out[i] = scratch[i].Downmix()
		}
		out = out[n:]
	}
}

func (d *Downmix) Remaining() float32 { return d.inner.Remaining() }
