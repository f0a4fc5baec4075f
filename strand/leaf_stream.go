package strand

import (
	"math"
	"sync/atomic"
)

// Stream is a FramesSignal-like leaf whose backing storage is itself an
// SPSC ring rather than a fixed buffer: a StreamWriter on the control
// side appends samples, and the audio side reads them by interpolation,
// periodically releasing consumed samples from the back once they fall
// more than pastWindow frames behind the play cursor (retaining that
// trailing window lets the spatializer late-resample a source that has
// already been played once the world catches up with it).
//
// remaining() is Infinite until the writer is closed; after that it
// counts down from the amount of audio still buffered ahead of the play
// cursor, going negative once the stream has fully drained.
type Stream struct {
	ring   *Ring[Sample]
	rate   float64
	closed *atomic.Bool
	// closeFrame is set once, the first time Sample observes closed==true,
	// to freeze the absolute frame count the stream will drain to.
	closeFrame  int64
	haveClosed  bool
	released    int64 // absolute frame index of the oldest item still in ring
	posFrames   float64
	pastWindow  int
	futureWindow int
}

// NewStream creates a Stream whose ring retains up to pastWindow+
// futureWindow frames, at rateHz. past/futureWindow are frame counts, not
// seconds.
func NewStream(rateHz float64, pastWindow, futureWindow int) (*Stream, *StreamWriter) {
	capacity := pastWindow + futureWindow
	if capacity < 1 {
		capacity = 1
	}
	s := &Stream{
		ring:         NewRing[Sample](capacity),
		rate:         rateHz,
		closed:       &atomic.Bool{},
		pastWindow:   pastWindow,
		futureWindow: futureWindow,
	}
	return s, &StreamWriter{ring: s.ring, closed: s.closed}
}

func (s *Stream) Sample(interval float32, out []Mono) {
	s.ring.Update()
	available := s.released + int64(s.ring.Len())

	if !s.haveClosed && s.closed.Load() {
		s.haveClosed = true
		s.closeFrame = available
	}

	for i := range out {
		frame := s.posFrames + float64(i)*float64(interval)*s.rate
		out[i] = s.interpAt(frame, available)
	}
	s.posFrames += float64(len(out)) * float64(interval) * s.rate

	// Release anything older than the retained past window.
	keepFrom := int64(math.Floor(s.posFrames)) - int64(s.pastWindow)
	if keepFrom > s.released {
		toRelease := keepFrom - s.released
		if toRelease > int64(s.ring.Len()) {
			toRelease = int64(s.ring.Len())
		}
		s.ring.Release(int(toRelease))
		s.released += toRelease
	}
}

// interpAt linearly interpolates the retained ring content at absolute
// frame position pos. Positions older than what remains retained fall
// back to the oldest still-available sample; positions at or beyond
// available are zero, per the frames boundary rule.
func (s *Stream) interpAt(pos float64, available int64) Mono {
	rel := pos - float64(s.released)
	if rel < 0 {
		rel = 0
	}
	i0 := int64(math.Floor(rel))
	frac := float32(rel - float64(i0))

	at := func(i int64) Sample {
		abs := s.released + i
		if i < 0 || abs >= available {
			return 0
		}
		return s.ring.Peek(int(i))
	}
	f0 := Mono{at(i0)}
	f1 := Mono{at(i0 + 1)}
	return f0.Lerp(f1, frac)
}

func (s *Stream) Remaining() float32 {
	if !s.haveClosed {
		return Infinite
	}
	return float32(float64(s.closeFrame-int64(s.posFrames)) / s.rate)
}

// StreamWriter is a cross-thread handle that appends samples to a
// Stream's backing ring, and eventually closes it.
type StreamWriter struct {
	ring   *Ring[Sample]
	closed *atomic.Bool
}

// Write appends samples and returns the number actually written (<=
// len(samples)); callers decide whether to retry the remainder.
func (w *StreamWriter) Write(samples []Sample) int {
	return w.ring.Send(samples)
}

// Close marks the stream as finished: once the audio side observes this,
// Remaining begins counting down instead of reporting Infinite.
func (w *StreamWriter) Close() {
	w.closed.Store(true)
}
