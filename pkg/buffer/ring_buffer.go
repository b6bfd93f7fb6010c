package buffer

import (
	"slices"
	"sync"
)

// RingBuffer is a thread-safe fixed-size window over the most recent elements.
// When full, Add overwrites the oldest element.
//
// head and tail are monotonically increasing positions; the live window is
// [head, tail) taken modulo the buffer size.
type RingBuffer[T any] struct {
	mu         sync.Mutex
	buf        []T
	head, tail int64
}

// RingN creates a new RingBuffer holding at most size elements.
func RingN[T any](size int) *RingBuffer[T] {
	if size < 1 {
		size = 1
	}
	return &RingBuffer[T]{buf: make([]T, size)}
}

// Add appends t, overwriting the oldest element when the buffer is full.
func (rb *RingBuffer[T]) Add(t T) {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.buf[rb.tail%int64(len(rb.buf))] = t
	rb.tail++
	if rb.tail-rb.head > int64(len(rb.buf)) {
		rb.head++
	}
}

// Len returns the number of elements currently held.
func (rb *RingBuffer[T]) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return int(rb.tail - rb.head)
}

// Reset discards every element.
func (rb *RingBuffer[T]) Reset() {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	rb.head = 0
	rb.tail = 0
}

// Items returns a copy of the held elements, oldest first.
func (rb *RingBuffer[T]) Items() []T {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	n := rb.tail - rb.head
	if n == 0 {
		return nil
	}
	size := int64(len(rb.buf))
	h := rb.head % size
	t := rb.tail % size
	if h < t {
		return slices.Clone(rb.buf[h:t])
	}
	return slices.Concat(rb.buf[h:], rb.buf[:t])
}
