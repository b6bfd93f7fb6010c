package buffer

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// Queue is a thread-safe unbounded FIFO queue.
//
// Producers call Add, which never blocks: the queue grows as needed. Consumers
// call Drain to take every queued element at once without blocking, and Wait
// to sleep until the next write (or until the queue is closed).
//
// The queue keeps a write notification channel of capacity one. A write that
// finds the channel full drops its notification, which is fine because a
// single pending notification is enough to wake a waiting consumer, and the
// consumer always re-checks the queue length under the lock.
type Queue[T any] struct {
	writeNotify chan struct{}

	mu         sync.Mutex
	closeWrite bool
	closeErr   error
	items      []T
}

// NewQueue creates a new Queue with the specified initial capacity.
//
// The capacity is only a hint; the queue grows beyond it when needed.
func NewQueue[T any](n int) *Queue[T] {
	return &Queue[T]{
		writeNotify: make(chan struct{}, 1),
		items:       make([]T, 0, n),
	}
}

// Add appends t to the tail of the queue and wakes a waiting consumer.
//
// Returns an error wrapping io.ErrClosedPipe if the queue is closed for
// writing.
func (q *Queue[T]) Add(t T) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeErr != nil {
		return fmt.Errorf("buffer: add to closed queue: %w", q.closeErr)
	}
	if q.closeWrite {
		return fmt.Errorf("buffer: add to closed queue: %w", io.ErrClosedPipe)
	}
	q.items = append(q.items, t)
	select {
	case q.writeNotify <- struct{}{}:
	default:
	}
	return nil
}

// Drain removes every queued element, appends them to dst in FIFO order, and
// returns the extended slice. It never blocks; an empty queue returns dst
// unchanged.
func (q *Queue[T]) Drain(dst []T) []T {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return dst
	}
	dst = append(dst, q.items...)
	clear(q.items)
	q.items = q.items[:0]
	return dst
}

// Wait blocks until the queue holds at least one element, the queue is closed,
// or ctx is done.
//
// Returns nil when data is available, io.EOF when the queue is closed for
// writing and empty, the close error when closed with an error, or ctx.Err().
func (q *Queue[T]) Wait(ctx context.Context) error {
	for {
		q.mu.Lock()
		switch {
		case q.closeErr != nil:
			q.mu.Unlock()
			return q.closeErr
		case len(q.items) > 0:
			q.mu.Unlock()
			return nil
		case q.closeWrite:
			q.mu.Unlock()
			return io.EOF
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-q.writeNotify:
		}
	}
}

// Len returns the number of queued elements.
func (q *Queue[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// CloseWrite prevents further writes. Queued elements can still be drained;
// once the queue is empty, Wait returns io.EOF.
func (q *Queue[T]) CloseWrite() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeWrite {
		return nil
	}
	q.closeWrite = true
	close(q.writeNotify)
	return nil
}

// CloseWithError closes both ends of the queue and drops any queued elements.
// If err is nil, io.ErrClosedPipe is used.
func (q *Queue[T]) CloseWithError(err error) error {
	if err == nil {
		err = io.ErrClosedPipe
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closeErr != nil {
		return nil
	}
	q.closeErr = err
	q.items = nil
	if !q.closeWrite {
		q.closeWrite = true
		close(q.writeNotify)
	}
	return nil
}

// Close is equivalent to CloseWithError(io.ErrClosedPipe).
func (q *Queue[T]) Close() error {
	return q.CloseWithError(io.ErrClosedPipe)
}

// Error returns the error the queue was closed with, if any.
func (q *Queue[T]) Error() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closeErr
}
