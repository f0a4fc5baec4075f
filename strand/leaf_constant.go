package strand

// Constant emits the same frame forever.
type Constant[T FrameOps[T]] struct {
	Value T
}

// NewConstant returns a Constant signal emitting v.
func NewConstant[T FrameOps[T]](v T) *Constant[T] {
	return &Constant[T]{Value: v}
}

func (c *Constant[T]) Sample(_ float32, out []T) {
	for i := range out {
		out[i] = c.Value
	}
}

func (c *Constant[T]) Remaining() float32 { return Infinite }
