package strand

import "math"

// cycleRange is the [start, end) window, in buffer frame indices, that
// Cycle wraps playback within. hasEnd false means "play once, linearly,
// from start" (the Frames-signal boundary rule applies: zero beyond the
// buffer's end).
type cycleRange struct {
	start, end int
	hasEnd     bool
}

// Cycle behaves like FramesSignal but wraps its sample index modulo a
// [start, end) range delivered through its control via a Latest cell.
// Range changes take effect on the next block; the cursor is clamped
// (wrapped) into the new range at that point rather than jumping
// discontinuously. Linear interpolation crosses the wrap boundary
// seamlessly: the sample just before end blends with the sample at
// start, not with silence.
type Cycle struct {
	buf       *MonoBuffer
	rangeCell *Latest[cycleRange]

	start, end int
	hasEnd     bool
	posFrames  float64 // audio-thread only
}

// NewCycle starts Cycle wrapping the whole buffer by default (start=0,
// end=buf.Len()).
func NewCycle(buf *MonoBuffer) (*Cycle, *CycleControl) {
	c := &Cycle{buf: buf, start: 0, end: buf.Len(), hasEnd: true}
	c.rangeCell = NewLatest(cycleRange{start: 0, end: buf.Len(), hasEnd: true})
	return c, &CycleControl{cell: c.rangeCell}
}

func (c *Cycle) Sample(interval float32, out []Mono) {
	if r, changed := c.rangeCell.Refresh(); changed {
		c.applyRange(r)
	}

	rate := c.buf.Rate()
	for i := range out {
		idx := c.posFrames + float64(i)*float64(interval)*rate
		if c.hasEnd {
			out[i] = c.interpWrapped(idx)
		} else {
			out[i] = c.buf.Interp(idx - float64(c.start))
		}
	}
	c.posFrames += float64(len(out)) * float64(interval) * rate
	if c.hasEnd {
		length := float64(c.end - c.start)
		c.posFrames = float64(c.start) + floorMod(c.posFrames-float64(c.start), length)
	}
}

func (c *Cycle) applyRange(r cycleRange) {
	c.hasEnd = r.hasEnd
	c.start = r.start
	c.end = r.end
	if c.hasEnd {
		if c.end <= c.start {
			c.end = c.start + 1 // start == end is undefined; treat as a single-frame range
		}
		length := float64(c.end - c.start)
		c.posFrames = float64(c.start) + floorMod(c.posFrames-float64(c.start), length)
	}
}

func (c *Cycle) interpWrapped(idx float64) Mono {
	length := c.end - c.start
	i0 := int(math.Floor(idx))
	frac := float32(idx - float64(i0))
	i0rel := i0 - c.start
	i0w := c.start + floorModInt(i0rel, length)
	i1w := c.start + floorModInt(i0rel+1, length)
	return c.buf.At(i0w).Lerp(c.buf.At(i1w), frac)
}

func (c *Cycle) Remaining() float32 {
	if c.hasEnd {
		return Infinite
	}
	t := (c.posFrames - float64(c.start)) / c.buf.Rate()
	return float32(c.buf.Duration() - t)
}

// CycleControl is a cross-thread handle to a Cycle's wrap range.
type CycleControl struct{ cell *Latest[cycleRange] }

// SetRange sets a wrapping [start, end) range, in buffer frame indices.
func (c *CycleControl) SetRange(start, end int) {
	c.cell.Set(cycleRange{start: start, end: end, hasEnd: true})
	c.cell.Flush()
}

// SetRangeOpen disables wrapping: playback proceeds linearly once from
// start, per the Frames-signal boundary rule.
func (c *CycleControl) SetRangeOpen(start int) {
	c.cell.Set(cycleRange{start: start, hasEnd: false})
	c.cell.Flush()
}

func floorMod(a, b float64) float64 {
	m := math.Mod(a, b)
	if m < 0 {
		m += b
	}
	return m
}

func floorModInt(a, b int) int {
	m := a % b
	if m < 0 {
		m += b
	}
	return m
}
