package strand

import "math"

// Reinhard wraps an inner signal and applies x/(1+|x|) per channel, a
// soft limiter that compresses loud peaks while leaving quiet signal
// close to linear.
type Reinhard[T FrameOps[T]] struct {
	inner Signal[T]
}

// NewReinhard wraps inner with a Reinhard limiter.
func NewReinhard[T FrameOps[T]](inner Signal[T]) *Reinhard[T] {
	return &Reinhard[T]{inner: inner}
}

// Inner exposes the wrapped signal.
func (r *Reinhard[T]) Inner() Signal[T] { return r.inner }

func (r *Reinhard[T]) Sample(interval float32, out []T) {
	r.inner.Sample(interval, out)
	for i := range out {
		out[i] = out[i].Map(reinhard)
	}
}

func (r *Reinhard[T]) Remaining() float32 { return r.inner.Remaining() }

func reinhard(x Sample) Sample {
	return x / (1 + abs32(x))
}

// Tanh wraps an inner signal and applies tanh(x) per channel — a limiter
// that distorts loud signal more aggressively than Reinhard and leaves
// quiet signal closer to linear still.
type Tanh[T FrameOps[T]] struct {
	inner Signal[T]
}

// NewTanh wraps inner with a tanh limiter.
func NewTanh[T FrameOps[T]](inner Signal[T]) *Tanh[T] {
	return &Tanh[T]{inner: inner}
}

// Inner exposes the wrapped signal.
func (t *Tanh[T]) Inner() Signal[T] { return t.inner }

func (t *Tanh[T]) Sample(interval float32, out []T) {
	t.inner.Sample(interval, out)
	for i := range out {
		out[i] = out[i].Map(tanh32)
	}
}

func (t *Tanh[T]) Remaining() float32 { return t.inner.Remaining() }

func tanh32(x Sample) Sample { return float32(math.Tanh(float64(x))) }

func abs32(x Sample) Sample {
	if x < 0 {
		return -x
	}
	return x
}
