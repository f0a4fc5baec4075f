package strand

import "github.com/strand-audio/strand/strandlog"

// setMsgKind tags the messages a Handle sends an audio-side DynamicSet
// over its control ring.
type setMsgKind uint8

const (
	msgInsert setMsgKind = iota
	msgReallocSources
	msgReallocChannel
)

type setMsg[T any] struct {
	kind setMsgKind

	insert Signal[T] // msgInsert

	newStorage []Signal[T]      // msgReallocSources: fresh, empty, bigger-capacity slice
	newFree    *Ring[Signal[T]] // msgReallocSources: replacement disposal channel

	newMsgRing *Ring[setMsg[T]] // msgReallocChannel: replacement control ring
}

// DynamicSet is the audio-side half of a heterogeneous, growable
// membership collection: a contiguous, fixed-capacity slice of Signals,
// mutated only by messages arriving over an SPSC ring from the control-
// side Handle. Elements are identified purely by position; the control
// side never sees or passes back an index. Growth is always initiated by
// the Handle — the audio side only ever appends within the current
// slice's capacity or swaps in a pre-built replacement, so it never
// allocates.
type DynamicSet[T FrameOps[T]] struct {
	storage []Signal[T]
	msgRing *Ring[setMsg[T]]
	free    *Ring[Signal[T]]
}

func newDynamicSet[T FrameOps[T]](initialCapacity int, logger *strandlog.Logger) (*DynamicSet[T], *Handle[T]) {
	if initialCapacity < 1 {
		initialCapacity = 1
	}
	msgRing := NewRing[setMsg[T]](initialCapacity + 4)
	free := NewRing[Signal[T]](initialCapacity + 4)
	s := &DynamicSet[T]{
		storage: make([]Signal[T], 0, initialCapacity),
		msgRing: msgRing,
		free:    free,
	}
	if logger == nil {
		logger = strandlog.Discard()
	}
	h := &Handle[T]{msgRing: msgRing, free: free, capacity: initialCapacity, log: logger}
	return s, h
}

// Len returns the number of live members. Audio-side only.
func (s *DynamicSet[T]) Len() int { return len(s.storage) }

// Update drains every control message that has arrived since the last
// call, applying inserts and realloc handoffs. Call once per block,
// before Each. Audio-side only.
func (s *DynamicSet[T]) Update() {
	for {
		s.msgRing.Update()
		n := s.msgRing.Len()
		if n == 0 {
			return
		}
		for i := 0; i < n; i++ {
			msg := s.msgRing.Peek(i)
			switch msg.kind {
			case msgInsert:
				if len(s.storage) < cap(s.storage) {
					s.storage = append(s.storage, msg.insert)
				}
			case msgReallocSources:
				bigger := msg.newStorage[:len(s.storage)]
				copy(bigger, s.storage)
				s.storage = bigger
				s.free = msg.newFree
			case msgReallocChannel:
				s.msgRing.Release(i + 1)
				s.msgRing = msg.newMsgRing
				s.Update()
				return
			}
		}
		s.msgRing.Release(n)
	}
}

// Each invokes fn for every live member, in reverse storage order so that
// swap-remove never skips a not-yet-visited member: whichever element
// currently occupies the last slot has always already been visited by
// the time a lower index's eviction swaps it inward. A member for which
// fn returns true is swapped to the end, popped, and handed to the free
// ring for disposal off the audio thread.
func (s *DynamicSet[T]) Each(fn func(Signal[T]) (evict bool)) {
	for i := len(s.storage) - 1; i >= 0; i-- {
		m := s.storage[i]
		if fn(m) {
			last := len(s.storage) - 1
			s.storage[i] = s.storage[last]
			s.storage = s.storage[:last]
			s.free.Send([]Signal[T]{m})
		}
	}
}

// stopper is implemented by Stop; DynamicSet-based collections use it
// alongside Remaining() < 0 to decide eviction, since a Stopped Stop
// pins Remaining() at exactly 0 rather than driving it negative.
type stopper interface{ Stopped() bool }

// defaultEvict is the eviction rule shared by Mixer and spatial scenes:
// naturally exhausted (Remaining() < 0) or explicitly Stopped.
func defaultEvict[T any](sig Signal[T]) bool {
	if sig.Remaining() < 0 {
		return true
	}
	if sp, ok := sig.(stopper); ok {
		return sp.Stopped()
	}
	return false
}

// Handle is the control-side accessor to a DynamicSet: it inserts new
// signals and transparently grows the set's backing storage and control
// ring as needed. A Handle must be used from one goroutine at a time; it
// may be moved between goroutines but not shared concurrently.
type Handle[T FrameOps[T]] struct {
	msgRing *Ring[setMsg[T]]
	free    *Ring[Signal[T]]

	capacity int // handle's view of audio-side storage capacity
	live     int // handle's estimate of live member count
	log      *strandlog.Logger
}

// Play inserts sig, wrapped in a Stop so the caller can later remove it,
// and returns that Stop's control. Insert order from one Handle is FIFO:
// a signal Played before an audio block begins either appears in that
// block's iteration or a subsequent one.
func (h *Handle[T]) Play(sig Signal[T]) *StopControl {
	stopped, ctrl := NewStop[T](sig)
	h.insert(stopped)
	return ctrl
}

// Len returns the handle's estimate of live membership, opportunistically
// reclaiming capacity tracking from the disposal channel first. This
// never touches the audio thread.
func (h *Handle[T]) Len() int {
	h.drainFree()
	return h.live
}

func (h *Handle[T]) insert(sig Signal[T]) {
	h.drainFree()
	if h.live >= h.capacity {
		h.reallocSources()
	}
	h.send(setMsg[T]{kind: msgInsert, insert: sig})
	h.live++
}

func (h *Handle[T]) drainFree() {
	h.free.Update()
	n := h.free.Len()
	if n == 0 {
		return
	}
	h.free.Release(n)
	h.live -= n
	if h.live < 0 {
		h.live = 0
	}
	h.log.Debug("evicted members", "count", n, "live", h.live)
}

func (h *Handle[T]) reallocSources() {
	newCap := h.capacity * 2
	newFree := NewRing[Signal[T]](newCap + 4)
	h.send(setMsg[T]{
		kind:       msgReallocSources,
		newStorage: make([]Signal[T], 0, newCap),
		newFree:    newFree,
	})
	h.free = newFree
	h.capacity = newCap
}

// send delivers m, first growing the control ring (via a ReallocChannel
// handoff) if there isn't room left to also reserve a slot for that
// handoff message itself later.
func (h *Handle[T]) send(m setMsg[T]) {
	if h.msgRing.Free() <= 1 {
		h.growChannel()
	}
	h.msgRing.Send([]setMsg[T]{m})
}

func (h *Handle[T]) growChannel() {
	newRing := NewRing[setMsg[T]](h.msgRing.Cap() * 2)
	h.msgRing.Send([]setMsg[T]{{kind: msgReallocChannel, newMsgRing: newRing}})
	h.msgRing = newRing
}
