// Package strand implements a pull-based, real-time audio signal graph:
// a tree of Signals composed under one sampling contract, a wait-free
// control plane for cross-thread parameter changes and dynamic mixer
// membership, and a stereo spatializer with per-ear time-of-flight and
// attenuation.
package strand

import "unsafe"

// Sample is a single channel value. Zero is neutral; clipping is not
// intrinsic to the type.
type Sample = float32

// Mono is a one-channel frame.
type Mono [1]Sample

// Stereo is a two-channel frame, interleaved left, right.
type Stereo [2]Sample

// ZeroMono returns the neutral mono frame.
func ZeroMono() Mono { return Mono{0} }

// ZeroStereo returns the neutral stereo frame.
func ZeroStereo() Stereo { return Stereo{0, 0} }

// Lerp linearly interpolates between a and b by t in [0, 1]. Callers may
// pass t outside that range; the result is still the affine extension.
func (a Mono) Lerp(b Mono, t float32) Mono {
	return Mono{a[0] + (b[0]-a[0])*t}
}

// Lerp linearly interpolates between a and b by t in [0, 1].
func (a Stereo) Lerp(b Stereo, t float32) Stereo {
	return Stereo{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
	}
}

// Add returns the sample-wise sum of a and b.
func (a Mono) Add(b Mono) Mono { return Mono{a[0] + b[0]} }

// Add returns the sample-wise sum of a and b.
func (a Stereo) Add(b Stereo) Stereo { return Stereo{a[0] + b[0], a[1] + b[1]} }

// Scale returns a scaled uniformly by g.
func (a Mono) Scale(g float32) Mono { return Mono{a[0] * g} }

// Scale returns a scaled uniformly by g.
func (a Stereo) Scale(g float32) Stereo { return Stereo{a[0] * g, a[1] * g} }

// Map applies f to every channel independently, e.g. for limiters.
func (a Mono) Map(f func(Sample) Sample) Mono { return Mono{f(a[0])} }

// Map applies f to every channel independently, e.g. for limiters.
func (a Stereo) Map(f func(Sample) Sample) Stereo { return Stereo{f(a[0]), f(a[1])} }

// Sum returns the sum of all channels, used by level-tracking code that
// needs one energy value per frame regardless of channel count.
func (a Mono) Sum() Sample { return a[0] }

// Sum returns the sum of all channels.
func (a Stereo) Sum() Sample { return a[0] + a[1] }

// ToStereo duplicates the mono sample into both channels.
func (a Mono) ToStereo() Stereo { return Stereo{a[0], a[0]} }

// Downmix collapses a stereo frame to mono by summing channels.
func (a Stereo) Downmix() Mono { return Mono{a[0] + a[1]} }

// FrameStereo reinterprets a flat interleaved sample slice as a slice of
// Stereo frames in place, without copying. Valid because Stereo is
// [2]Sample and stereo audio is interleaved L, R, L, R... with no padding:
// the two representations coincide byte-for-byte. Panics if len(s) is odd.
func FrameStereo(s []Sample) []Stereo {
	if len(s)%2 != 0 {
		panic("strand: FrameStereo requires an even-length sample slice")
	}
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice((*Stereo)(unsafe.Pointer(&s[0])), len(s)/2)
}

// clamp01 clamps v into [0, 1].
func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
