package strand

import "math"

const sqrt2 = 1.4142135623730951

// AdaptiveLevel keeps a running estimate of the inner signal's amplitude
// (a single-pole IIR low-pass over squared, summed-channel output,
// square-rooted, then scaled by sqrt2 to convert that RMS estimate to a
// peak estimate assuming sinusoidal content) and applies uniform gain to
// keep that estimate within [low, high]: boosting quiet signal up to
// maxGain, and attenuating loud signal, with no effect in between.
//
// Sampling requires a strictly positive interval (the IIR coefficient
// alpha = 1 - exp(-interval/tau) is undefined otherwise); this is a
// contract violation, not a recoverable error, matching spec §7.
type AdaptiveLevel[T FrameOps[T]] struct {
	inner Signal[T]

	low, high, tau, maxGain float32
	avgSquared              float32 // audio-thread only
}

// NewAdaptiveLevel wraps inner with an adaptive-level stage targeting
// [low, high] peak amplitude, boosting by at most maxGain, with a tau-
// second IIR time constant.
func NewAdaptiveLevel[T FrameOps[T]](inner Signal[T], low, high, tau, maxGain float32) *AdaptiveLevel[T] {
	return &AdaptiveLevel[T]{inner: inner, low: low, high: high, tau: tau, maxGain: maxGain}
}

// Inner exposes the wrapped signal.
func (a *AdaptiveLevel[T]) Inner() Signal[T] { return a.inner }

func (a *AdaptiveLevel[T]) Sample(interval float32, out []T) {
	if interval <= 0 {
		panic("strand: AdaptiveLevel.Sample requires interval > 0")
	}
	a.inner.Sample(interval, out)
	alpha := 1 - float32(math.Exp(-float64(interval)/float64(a.tau)))
	for i := range out {
		sum := out[i].Sum()
		a.avgSquared += alpha * (sum*sum - a.avgSquared)

		var peak float32
		if a.avgSquared > 0 {
			peak = float32(math.Sqrt(float64(a.avgSquared))) * sqrt2
		}

		gain := float32(1)
		switch {
		case peak == 0:
			gain = 1
		case peak < a.low:
			gain = a.low / peak
			if gain > a.maxGain {
				gain = a.maxGain
			}
		case peak > a.high:
			gain = a.high / peak
		}
		out[i] = out[i].Scale(gain)
	}
}

func (a *AdaptiveLevel[T]) Remaining() float32 { return a.inner.Remaining() }
