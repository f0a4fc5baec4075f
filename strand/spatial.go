package strand

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/strand-audio/strand/strandlog"
)

const sqrtHalf = 0.70710678118654752440

// earAxis describes the facing of the two fixed listener ears, which
// earAt places at ±earSeparation on the X axis: each ear faces along a 45-degree axis
// that leans back on Z. The sign of the axis's X component matches the
// ear's side, so a source directly in front attenuates symmetrically and
// one directly behind is favored toward whichever ear it's nearer.
func earAxis(side float64) r3.Vector {
	return r3.Vector{X: side * sqrtHalf, Y: 0, Z: -sqrtHalf}
}

// spatialUpdate is what a SpatialControl publishes through its Latest
// cell: the explicit reference position and velocity as of the most
// recent SetMotion call.
type spatialUpdate struct {
	pos, vel r3.Vector
}

// Spatial wraps a mono inner signal with a 3D position that the control
// side updates explicitly and discretely (SetMotion), while the audio
// side derives a continuously smoothed position from it — masking the
// jitter of discrete delivery — and uses that smoothed position to
// compute, independently per ear, an arrival delay (distance / speed of
// sound, producing doppler as the delay ramps across a block) and a
// head-related attenuation.
//
// Rather than resampling the inner signal once per ear at a shifted
// read cursor, Spatial samples inner once per block at the true block
// rate into a small retained ring (sized to the configured max look-
// back), then reads each ear's output by interpolating into that ring
// at a frame-by-frame offset that ramps linearly between the block's
// start and end time-offsets. This produces the same per-frame result
// the spec's two-endpoint description implies without a second call
// into inner per ear.
type Spatial struct {
	inner MonoSignal
	cell  *Latest[spatialUpdate]

	speedOfSound  float64
	earSeparation float64
	smoothWindow  float64

	p0, pRef, v r3.Vector
	dt          float64 // seconds since the last explicit update

	retain     []Sample
	writeFrame int64
	rate       float64

	lastDistance float64

	dry [scratchFrames]Mono
}

// NewSpatial wraps inner at position (0,0,0), at rest, with the given
// physical constants. rateHz is the driving sample rate and maxDelay
// bounds how far into the past the retained ring must reach.
func NewSpatial(inner MonoSignal, rateHz float64, speedOfSound, earSeparation, smoothWindow, maxDelay float64) (*Spatial, *SpatialControl) {
	capFrames := int(math.Ceil(maxDelay*rateHz)) + 1
	if capFrames < 1 {
		capFrames = 1
	}
	s := &Spatial{
		inner:         inner,
		speedOfSound:  speedOfSound,
		earSeparation: earSeparation,
		smoothWindow:  smoothWindow,
		retain:        make([]Sample, capFrames),
		rate:          rateHz,
	}
	s.cell = NewLatest(spatialUpdate{})
	return s, &SpatialControl{cell: s.cell}
}

// smoothedAt returns the smoothed position at local-time offset tau
// seconds past "now" (the instant of the most recent Sample call),
// using dt (seconds since the last explicit update, as of "now").
func (s *Spatial) smoothedAt(tau float64) r3.Vector {
	t := s.dt + tau
	pre := s.p0.Add(s.v.Mul(t))
	post := s.pRef.Add(s.v.Mul(t))
	alpha := t / s.smoothWindow
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return pre.Add(post.Sub(pre).Mul(alpha))
}

type earValues struct {
	timeOffset  float64
	attenuation float64
}

func (s *Spatial) earAt(pos r3.Vector, earSide float64) earValues {
	earPos := r3.Vector{X: earSide * s.earSeparation, Y: 0, Z: 0}
	toSource := pos.Sub(earPos)
	distance := toSource.Norm()
	if distance < 0.1 {
		distance = 0.1
	}
	dir := toSource.Mul(1 / distance)
	cosAngle := dir.Dot(earAxis(earSide))
	return earValues{
		timeOffset:  -distance / s.speedOfSound,
		attenuation: (1 + cosAngle) / distance,
	}
}

func (s *Spatial) Sample(interval float32, out []Stereo) {
	if upd, changed := s.cell.Refresh(); changed {
		s.p0 = s.smoothedAt(0)
		s.pRef = upd.pos
		s.v = upd.vel
		s.dt = 0
	}

	n := len(out)
	blockDt := float64(n) * float64(interval)

	prevL := s.earAt(s.smoothedAt(0), -1)
	prevR := s.earAt(s.smoothedAt(0), 1)
	nextPos := s.smoothedAt(blockDt)
	nextL := s.earAt(nextPos, -1)
	nextR := s.earAt(nextPos, 1)

	s.lastDistance = nextPos.Norm()

	rate := s.rate
	if rate <= 0 && interval > 0 {
		rate = 1 / float64(interval)
	}

	writeBefore := s.writeFrame
	cap64 := int64(len(s.retain))

	pos := 0
	for pos < n {
		m := n - pos
		if m > scratchFrames {
			m = scratchFrames
		}
		s.inner.Sample(interval, s.dry[:m])
		for i := 0; i < m; i++ {
			idx := s.writeFrame % cap64
			if idx < 0 {
				idx += cap64
			}
			s.retain[idx] = s.dry[i][0]
			s.writeFrame++
		}
		pos += m
	}

	for k := 0; k < n; k++ {
		frac := float64(k) / float64(n)
		toL := lerp64(prevL.timeOffset, nextL.timeOffset, frac)
		atL := lerp64(prevL.attenuation, nextL.attenuation, frac)
		toR := lerp64(prevR.timeOffset, nextR.timeOffset, frac)
		atR := lerp64(prevR.attenuation, nextR.attenuation, frac)

		base := float64(writeBefore + int64(k))
		left := s.retainInterp(base+toL*rate, cap64) * Sample(atL)
		right := s.retainInterp(base+toR*rate, cap64) * Sample(atR)
		out[k] = Stereo{left, right}
	}

	s.dt += blockDt
}

func (s *Spatial) retainInterp(pos float64, capFrames int64) Sample {
	i0 := int64(math.Floor(pos))
	frac := Sample(pos - float64(i0))
	return s.retainAt(i0, capFrames)*(1-frac) + s.retainAt(i0+1, capFrames)*frac
}

func (s *Spatial) retainAt(i, capFrames int64) Sample {
	if i < 0 || i >= s.writeFrame || s.writeFrame-i > capFrames {
		return 0
	}
	idx := i % capFrames
	if idx < 0 {
		idx += capFrames
	}
	return s.retain[idx]
}

// Remaining is the inner's own remaining time plus the one-way travel
// tail of audio still in flight to the listener at the current distance.
func (s *Spatial) Remaining() float32 {
	return s.inner.Remaining() + float32(s.lastDistance/s.speedOfSound)
}

// SpatialControl is a cross-thread handle to a Spatial source's position
// and velocity.
type SpatialControl struct{ cell *Latest[spatialUpdate] }

// SetMotion publishes a new explicit reference position and velocity.
// The audio side blends toward it smoothly rather than jumping.
func (c *SpatialControl) SetMotion(pos, vel r3.Vector) {
	c.cell.Set(spatialUpdate{pos: pos, vel: vel})
	c.cell.Flush()
}

func lerp64(a, b, t float64) float64 { return a + (b-a)*t }

// SpatialScene is a dynamic collection of Spatial sources mixed to
// stereo, analogous to Mixer but with eviction deferred past natural
// exhaustion: a source lingers until its Remaining() tail falls below
// -maxDelay, so a distant, receding source is not cut off mid-flight.
type SpatialScene struct {
	set      *DynamicSet[Stereo]
	maxDelay float32
	scratch  [scratchFrames]Stereo
}

// NewSpatialScene creates an empty scene and the Handle used to insert
// sources into it. logger receives a debug entry each time it reclaims
// members the audio side evicted (including those exceeding maxDelay).
func NewSpatialScene(initialCapacity int, maxDelay float32, logger *strandlog.Logger) (*SpatialScene, *Handle[Stereo]) {
	set, h := newDynamicSet[Stereo](initialCapacity, logger)
	return &SpatialScene{set: set, maxDelay: maxDelay}, h
}

func (sc *SpatialScene) Sample(interval float32, out []Stereo) {
	sc.set.Update()
	for i := range out {
		out[i] = Stereo{}
	}

	sc.set.Each(func(sig Signal[Stereo]) bool {
		pos := 0
		for pos < len(out) {
			n := len(out) - pos
			if n > scratchFrames {
				n = scratchFrames
			}
			chunk := sc.scratch[:n]
			sig.Sample(interval, chunk)
			for i := range chunk {
				out[pos+i] = out[pos+i].Add(chunk[i])
			}
			pos += n
		}
		if sig.Remaining() < -sc.maxDelay {
			return true
		}
		if sp, ok := sig.(stopper); ok {
			return sp.Stopped()
		}
		return false
	})
}

func (sc *SpatialScene) Remaining() float32 { return Infinite }

func (sc *SpatialScene) Len() int { return sc.set.Len() }
