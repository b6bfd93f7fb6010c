package buffer

import "sync/atomic"

// Latest is a single-slot cell with latest-value-wins semantics.
//
// Put atomically swaps in a new value and discards any value that was not yet
// taken. Take atomically swaps the slot empty and returns what was there. The
// cell therefore never holds more than one unread value, and a reader always
// sees the most recent write rather than a backlog.
//
// The zero value is an empty cell ready for use.
type Latest[T any] struct {
	slot atomic.Pointer[T]
}

// Put stores v, discarding any unread value. It reports whether an unread
// value was discarded.
func (l *Latest[T]) Put(v T) (discarded bool) {
	return l.slot.Swap(&v) != nil
}

// Take removes and returns the stored value. The boolean is false if the cell
// was empty.
func (l *Latest[T]) Take() (T, bool) {
	p := l.slot.Swap(nil)
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}
