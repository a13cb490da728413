package memory

import "github.com/FlashGalatine/xivdyetools-state-service/internal/domain"

// ringLog is a fixed-capacity append-only event sequence. Once full, each push
// overwrites the oldest surviving slot in O(1); no element is ever shifted.
//
// Not safe for concurrent use; the owning adapter holds the lock.
type ringLog struct {
	buf    []domain.CommandEvent
	cursor int
	count  int
}

func newRingLog(capacity int) *ringLog {
	if capacity <= 0 {
		capacity = defaultEventLogCapacity
	}
	return &ringLog{buf: make([]domain.CommandEvent, capacity)}
}

func (r *ringLog) push(event domain.CommandEvent) {
	r.buf[r.cursor] = event
	r.cursor = (r.cursor + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
}

// snapshot returns the retained events in original insertion order, oldest
// first, never more than the capacity.
func (r *ringLog) snapshot() []domain.CommandEvent {
	out := make([]domain.CommandEvent, 0, r.count)
	if r.count < len(r.buf) {
		return append(out, r.buf[:r.count]...)
	}
	out = append(out, r.buf[r.cursor:]...)
	return append(out, r.buf[:r.cursor]...)
}

func (r *ringLog) clear() {
	r.cursor = 0
	r.count = 0
}

func (r *ringLog) len() int { return r.count }
