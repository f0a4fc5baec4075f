package strand

import "sync/atomic"

const gainSmoothSeconds = 0.1

// gainState is the atomic state shared between a Gain's audio-side struct
// and its control-side GainControl: just the target factor, stored as
// raw float32 bits since atomic.Value would allocate on every Store.
type gainState struct {
	target atomic.Uint32
}

func (g *gainState) set(v float32) { g.target.Store(math32bits(v)) }
func (g *gainState) get() float32  { return bits32float(g.target.Load()) }

// Gain multiplies an inner signal's output by a target factor, smoothed
// over smoothSeconds to avoid zipper/click artifacts when the target
// changes. When Sample sees a new target it starts a linear ramp from
// the current smoothed value to that target, and advances the ramp by
// interval/smoothSeconds of its length per frame, across as many calls
// as it takes — so a target set once and left alone is fully reached
// exactly smoothSeconds later, regardless of block size or of how large
// the jump was.
type Gain[T FrameOps[T]] struct {
	inner         Signal[T]
	state         *gainState
	current       float32 // smoothed value, audio-thread only
	smoothSeconds float32

	from, to float32 // endpoints of the current ramp, audio-thread only
	progress float32 // position along the current ramp in [0, 1]
}

// NewGain wraps inner with a gain stage starting at factor 1 (pass
// through), smoothed over the package default window, and returns it
// alongside a control for adjusting the target.
func NewGain[T FrameOps[T]](inner Signal[T]) (*Gain[T], *GainControl) {
	return NewGainWithWindow(inner, gainSmoothSeconds)
}

// NewGainWithWindow is NewGain with an explicit smoothing window in
// seconds, for callers driven by strandcfg.Config.GainSmoothWindow rather
// than the package default.
func NewGainWithWindow[T FrameOps[T]](inner Signal[T], smoothSeconds float32) (*Gain[T], *GainControl) {
	st := &gainState{}
	st.set(1)
	g := &Gain[T]{inner: inner, state: st, current: 1, smoothSeconds: smoothSeconds}
	return g, &GainControl{state: st}
}

// Inner exposes the wrapped signal so control chains can reach nested
// transformers.
func (g *Gain[T]) Inner() Signal[T] { return g.inner }

func (g *Gain[T]) Sample(interval float32, out []T) {
	g.inner.Sample(interval, out)
	target := g.state.get()
	if target != g.to {
		g.from, g.to, g.progress = g.current, target, 0
	}

	var step float32
	if g.smoothSeconds > 0 && interval > 0 {
		step = interval / g.smoothSeconds
	}

	for i := range out {
		out[i] = out[i].Scale(g.current)
		if step == 0 || g.progress >= 1 {
			continue
		}
		g.progress = clamp01(g.progress + step)
		g.current = g.from + (g.to-g.from)*g.progress
		if g.progress >= 1 {
			g.current = g.to
		}
	}
}

func (g *Gain[T]) Remaining() float32 { return g.inner.Remaining() }

// GainControl is a cross-thread handle to a Gain's target factor.
type GainControl struct{ state *gainState }

// SetGain sets the target factor; it takes effect smoothed over the
// Gain's configured smoothing window.
func (c *GainControl) SetGain(factor float32) { c.state.set(factor) }

// Gain returns the most recently set target factor (not the current
// smoothed value, which only the audio thread observes).
func (c *GainControl) Gain() float32 { return c.state.get() }
