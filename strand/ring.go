package strand

import "sync/atomic"

// Ring is a fixed-capacity, single-producer/single-consumer queue that is
// wait-free on both ends. One slot is always left empty so that read ==
// write unambiguously means empty and (write+1) mod len(buf) == read means
// full; this avoids needing a separate "full" flag that both sides would
// otherwise have to agree on.
//
// The producer calls Send; the consumer calls Update, then Peek/Len, then
// Release. A Ring must only ever be driven by one producer goroutine and
// one consumer goroutine — concurrent Sends, or concurrent consumer calls,
// are not supported and are the caller's contract to uphold (see
// spec §7: calling an SPSC operation from the wrong thread is a contract
// violation, not a recoverable error).
type Ring[T any] struct {
	buf   []T
	write atomic.Uint64 // producer-owned; released with Store, acquired with Load
	read  atomic.Uint64 // consumer-owned; advanced with relaxed ordering

	// local is the consumer's cached view of items available, refreshed
	// by Update. It is not shared; only the consumer goroutine touches it.
	local int
}

// NewRing constructs a ring able to hold up to capacity items at once
// (capacity must be >= 1; the backing array is capacity+1 long to reserve
// the empty-vs-full sentinel slot).
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{buf: make([]T, capacity+1)}
}

// Cap returns the number of items the ring can hold at once.
func (r *Ring[T]) Cap() int { return len(r.buf) - 1 }

// Free returns the number of additional items Send could currently
// accept. Producer-side only.
func (r *Ring[T]) Free() int {
	w := r.write.Load()
	read := r.read.Load()
	n := uint64(len(r.buf))
	return int((read - w - 1 + n) % n)
}

// Send appends as many of items as fit and returns the count actually
// written (<= len(items)). Producer-side only.
func (r *Ring[T]) Send(items []T) int {
	w := r.write.Load()
	read := r.read.Load()
	n := len(r.buf)

	free := (read - w - 1 + uint64(n)) % uint64(n)
	count := len(items)
	if uint64(count) > free {
		count = int(free)
	}
	for i := 0; i < count; i++ {
		r.buf[(w+uint64(i))%uint64(n)] = items[i]
	}
	if count > 0 {
		r.write.Store((w + uint64(count)) % uint64(n)) // release: publishes the items above
	}
	return count
}

// Update snapshots the current write cursor (acquire ordering) and
// refreshes the consumer's local count of available items. Call before
// Peek/Len/Release in each consumption pass. Consumer-side only.
func (r *Ring[T]) Update() {
	w := r.write.Load() // acquire: pairs with the producer's release Store
	read := r.read.Load()
	n := uint64(len(r.buf))
	r.local = int((w - read + n) % n)
}

// Len returns the number of items available as of the last Update.
// Consumer-side only.
func (r *Ring[T]) Len() int { return r.local }

// Peek returns item i (0-indexed from the oldest unread item), bounds
// checked against the length cached by the last Update. Consumer-side
// only.
func (r *Ring[T]) Peek(i int) T {
	if i < 0 || i >= r.local {
		var zero T
		return zero
	}
	read := r.read.Load()
	n := uint64(len(r.buf))
	return r.buf[(read+uint64(i))%n]
}

// Release drops the first n items (clamped to Len()) and advances the
// read cursor. Ordering is relaxed: the producer only reads this cursor
// to compute free space, and under-reading it is always safe (it just
// makes the ring look fuller than it is for one more Send). Consumer-side
// only.
func (r *Ring[T]) Release(n int) {
	if n <= 0 {
		return
	}
	if n > r.local {
		n = r.local
	}
	read := r.read.Load()
	nb := uint64(len(r.buf))
	r.read.Store((read + uint64(n)) % nb)
	r.local -= n
}
