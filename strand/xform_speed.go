package strand

import "sync/atomic"

// Speed scales the interval passed to an inner signal by an atomic
// factor, speeding up or slowing down playback without resampling.
//
// The factor used to sample a block is the one cached from the *previous*
// block; the live atomic is only re-read once sampling completes. This
// keeps the cursor motion within one block consistent with the interval
// value that produced it — if the factor were re-read mid-block, a
// concurrent control write could make the reported advance of the cursor
// disagree with the interval the caller thinks it sampled at.
type Speed[T FrameOps[T]] struct {
	inner  Signal[T]
	factor atomic.Uint32
	cached float32 // audio-thread only
}

// NewSpeed wraps inner with a speed stage starting at factor 1.
func NewSpeed[T FrameOps[T]](inner Signal[T]) (*Speed[T], *SpeedControl) {
	s := &Speed[T]{inner: inner, cached: 1}
	s.factor.Store(math32bits(1))
	return s, &SpeedControl{factor: &s.factor}
}

// Inner exposes the wrapped signal.
func (s *Speed[T]) Inner() Signal[T] { return s.inner }

func (s *Speed[T]) Sample(interval float32, out []T) {
	s.inner.Sample(interval*s.cached, out)
	s.cached = bits32float(s.factor.Load())
}

func (s *Speed[T]) Remaining() float32 {
	if s.cached == 0 {
		return Infinite
	}
	return s.inner.Remaining() / s.cached
}

// SpeedControl is a cross-thread handle to a Speed's factor.
type SpeedControl struct{ factor *atomic.Uint32 }

// SetSpeed sets the playback-rate factor (1 = normal speed).
func (c *SpeedControl) SetSpeed(factor float32) { c.factor.Store(math32bits(factor)) }

// Speed returns the current factor.
func (c *SpeedControl) Speed() float32 { return bits32float(c.factor.Load()) }
