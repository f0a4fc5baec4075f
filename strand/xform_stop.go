package strand

import "sync/atomic"

// PlayState is the three-state lifecycle of a Stop-wrapped signal.
type PlayState int32

const (
	Playing PlayState = iota
	Paused
	Stopped
)

// Stop wraps an inner signal with a play/pause/stop atomic. In Paused,
// Remaining reports Infinite even if the inner is finite, so an enclosing
// mixer never evicts a merely-paused signal. In Stopped, Remaining
// reports 0; the enclosing dynamic set evicts it through the Stopped
// predicate, since 0 is not below its natural-exhaustion threshold
// (Remaining() < 0). Sampling always delegates to the inner regardless of state —
// pausing is purely a bookkeeping signal to the mixer/driver, not a mute;
// callers that want silence during pause should also apply a Gain of 0,
// or rely on a mixer implementation that skips sampling stopped/paused
// members entirely.
type Stop[T FrameOps[T]] struct {
	inner Signal[T]
	state atomic.Int32
}

// NewStop wraps inner with a Stop control, starting in Playing.
func NewStop[T FrameOps[T]](inner Signal[T]) (*Stop[T], *StopControl) {
	s := &Stop[T]{inner: inner}
	s.state.Store(int32(Playing))
	return s, &StopControl{state: &s.state}
}

// Inner exposes the wrapped signal.
func (s *Stop[T]) Inner() Signal[T] { return s.inner }

func (s *Stop[T]) Sample(interval float32, out []T) {
	s.inner.Sample(interval, out)
}

func (s *Stop[T]) Remaining() float32 {
	switch PlayState(s.state.Load()) {
	case Paused:
		return Infinite
	case Stopped:
		return 0
	default:
		return s.inner.Remaining()
	}
}

// Stopped reports whether the signal has been marked Stopped, for
// eviction predicates that need to distinguish "stopped" from merely
// "naturally exhausted" (Remaining() < 0).
func (s *Stop[T]) Stopped() bool {
	return PlayState(s.state.Load()) == Stopped
}

// StopControl is a cross-thread handle to a Stop's play state. Stop is
// idempotent and takes effect at the next block boundary, by definition
// of when the owning set next checks Stopped.
type StopControl struct{ state *atomic.Int32 }

// Play resumes from Paused (or is a no-op if Playing or Stopped).
func (c *StopControl) Play() { c.casFrom(Paused, Playing) }

// Pause suspends playback without affecting the inner's cursor.
func (c *StopControl) Pause() { c.casFrom(Playing, Paused) }

// Stop marks the signal for eviction by the enclosing dynamic set.
// Idempotent: calling it after an earlier Stop (or after a subsequent
// Play attempt on an already-dropped control) is a no-op.
func (c *StopControl) Stop() { c.state.Store(int32(Stopped)) }

// State returns the current play state.
func (c *StopControl) State() PlayState { return PlayState(c.state.Load()) }

func (c *StopControl) casFrom(from, to PlayState) {
	c.state.CompareAndSwap(int32(from), int32(to))
}
