package strand

import (
	"math"
	"sync/atomic"
)

// FramesSignal plays a shared MonoBuffer starting from a floating-point
// playback position in seconds, stored atomically as raw bits so a
// control on another thread can seek (including to negative or
// past-end values — both produce well-defined silence per the frames
// boundary rule). Sampling linearly interpolates at times t0+i*interval;
// the zero frame is used for any negative index, and beyond the
// buffer's end.
type FramesSignal struct {
	buf *MonoBuffer
	pos atomic.Uint64 // float64 bits, seconds
}

// NewFramesSignal starts playback of buf at position 0 seconds.
func NewFramesSignal(buf *MonoBuffer) (*FramesSignal, *FramesControl) {
	f := &FramesSignal{buf: buf}
	return f, &FramesControl{pos: &f.pos}
}

func (f *FramesSignal) Sample(interval float32, out []Mono) {
	t0 := math.Float64frombits(f.pos.Load())
	rate := f.buf.Rate()
	for i := range out {
		tSec := t0 + float64(i)*float64(interval)
		out[i] = f.buf.Interp(tSec * rate)
	}
	newT := t0 + float64(len(out))*float64(interval)
	f.pos.Store(math.Float64bits(newT))
}

func (f *FramesSignal) Remaining() float32 {
	t := math.Float64frombits(f.pos.Load())
	return float32(f.buf.Duration() - t)
}

// FramesControl is a cross-thread handle to a FramesSignal's playback
// position.
type FramesControl struct{ pos *atomic.Uint64 }

// PlaybackPosition returns the current playback position in seconds.
func (c *FramesControl) PlaybackPosition() float64 {
	return math.Float64frombits(c.pos.Load())
}

// SetPlaybackPosition seeks to t seconds, which may be negative or past
// the end of the buffer.
func (c *FramesControl) SetPlaybackPosition(t float64) {
	c.pos.Store(math.Float64bits(t))
}
