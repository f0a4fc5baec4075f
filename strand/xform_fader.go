package strand

import "math"

const faderChunk = 256

type faderCmd[T any] struct {
	next     Signal[T]
	duration float32
}

// Fader holds one inner signal and crossfades to a replacement signal
// delivered by its control. While idle (progress >= 1) it passes the
// inner straight through. A command arriving mid-fade is ignored until
// the current fade completes; a command arriving while one is already
// queued simply overwrites it, which falls out for free from the Latest
// cell's last-write-wins semantics — the audio side only ever Refreshes
// the cell once idle, so any number of control-side writes in between
// collapse into the one that was live at that moment.
type Fader[T FrameOps[T]] struct {
	inner    Signal[T]
	cmd      *Latest[faderCmd[T]]
	next     Signal[T]
	duration float32
	progress float32 // >= 1 means idle

	scratchA, scratchB [faderChunk]T
}

// NewFader wraps inner with a crossfade stage, idle until CrossfadeTo is
// called on the returned control.
func NewFader[T FrameOps[T]](inner Signal[T]) (*Fader[T], *FaderControl[T]) {
	f := &Fader[T]{inner: inner, progress: 1}
	f.cmd = NewLatest(faderCmd[T]{})
	return f, &FaderControl[T]{cmd: f.cmd}
}

// Inner exposes the currently active (outgoing, if mid-fade) signal.
func (f *Fader[T]) Inner() Signal[T] { return f.inner }

func (f *Fader[T]) Sample(interval float32, out []T) {
	if f.progress >= 1 {
		if cmd, changed := f.cmd.Refresh(); changed && cmd.next != nil {
			if cmd.duration <= 0 {
				f.inner = cmd.next
				f.progress = 1
			} else {
				f.next = cmd.next
				f.duration = cmd.duration
				f.progress = 0
			}
		}
	}

	if f.progress >= 1 {
		f.inner.Sample(interval, out)
		return
	}

	var step float32
	if f.duration > 0 {
		step = interval / f.duration
	}

	for len(out) > 0 {
		n := len(out)
		if n > faderChunk {
			n = faderChunk
		}
		a := f.scratchA[:n]
		b := f.scratchB[:n]
		f.inner.Sample(interval, a)
		f.next.Sample(interval, b)
		for i := 0; i < n; i++ {
			p := f.progress
			if p > 1 {
				p = 1
			}
			wOut := float32(math.Sqrt(float64(1 - p)))
			wIn := float32(math.Sqrt(float64(p)))
			out[i] = a[i].Scale(wOut).Add(b[i].Scale(wIn))
			f.progress += step
		}
		out = out[n:]
	}

	if f.progress >= 1 {
		f.inner = f.next
		f.next = nil
		f.progress = 1
	}
}

func (f *Fader[T]) Remaining() float32 { return f.inner.Remaining() }

// FaderControl is a cross-thread handle that submits crossfade commands.
type FaderControl[T FrameOps[T]] struct{ cmd *Latest[faderCmd[T]] }

// CrossfadeTo requests a crossfade to next over duration seconds. If a
// fade is already in progress, this replaces whatever command was queued
// to follow it (or is dropped against a command already claimed by the
// audio side — the usual last-write-wins Latest behavior).
func (c *FaderControl[T]) CrossfadeTo(next Signal[T], duration float32) {
	c.cmd.Set(faderCmd[T]{next: next, duration: duration})
	c.cmd.Flush()
}
