package strand

import "math"

// Infinite is the remaining-time value reported by unbounded signals.
var Infinite = float32(math.Inf(1))

// FrameOps is the constraint shared transformers (Gain, Speed, limiters,
// AdaptiveLevel, Fader, Stop) are generic over: Mono and Stereo both
// implement it, so the same gain-smoothing, limiting, and fading logic is
// written once and instantiated for both channel widths rather than
// hand-duplicated per width.
type FrameOps[T any] interface {
	Add(T) T
	Scale(float32) T
	Lerp(T, float32) T
	Map(func(Sample) Sample) T
	Sum() Sample
}

// Signal is a pullable source of frames of one frame type. Sampling is
// the only operation that advances time: a call fills out with len(out)
// frames in increasing time order starting at the signal's internal
// cursor, then advances that cursor by len(out)*interval seconds.
//
// Implementations must not divide by interval without guarding: interval
// may be zero or negative in test code. Sampling is called only from the
// audio thread; a signal's mutable state (cursor, smoothing, running
// averages) is therefore touched by exactly one concurrent caller, so
// implementations may hold it as plain unsynchronized fields. Cross-
// thread access is mediated only through the signal's associated
// control, which touches disjoint (atomic, or Latest-cell) state.
type Signal[T any] interface {
	// Sample fills out with the next len(out) frames.
	Sample(interval float32, out []T)
	// Remaining reports seconds until exhausted, or Infinite if
	// unbounded. May go negative once the cursor passes the end.
	Remaining() float32
}

// MonoSignal is a pullable source of mono frames.
type MonoSignal = Signal[Mono]

// StereoSignal is the stereo analog of MonoSignal.
type StereoSignal = Signal[Stereo]

// Driver invokes root at a fixed interval derived from rateHz and writes
// exactly one block into out. This is what device I/O glue (outside this
// package's scope) calls from an audio callback.
func Driver(root StereoSignal, rateHz uint32, out []Stereo) {
	root.Sample(intervalFor(rateHz), out)
}

// DriverMono is the mono analog of Driver.
func DriverMono(root MonoSignal, rateHz uint32, out []Mono) {
	root.Sample(intervalFor(rateHz), out)
}

func intervalFor(rateHz uint32) float32 {
	if rateHz == 0 {
		return 0
	}
	return 1.0 / float32(rateHz)
}
