// Package buffer provides the thread-safe hand-off types used between the
// capture, transcription and presentation goroutines.
//
//   - Queue: an unbounded FIFO. Producers never block; consumers either drain
//     whatever is queued or wait for the next write notification.
//
//   - Latest: a single-slot cell with latest-value-wins semantics. Put swaps
//     the new value in and discards any unread one; Take swaps it out.
//
//   - RingBuffer: a fixed-size window that overwrites the oldest element when
//     full. Used to keep the most recent log lines for the terminal UI.
//
// Example usage:
//
//	frames := buffer.NewQueue[[]float32](64)
//	frames.Add(frame)
//
//	var batch [][]float32
//	batch = frames.Drain(batch[:0])
//
//	var level buffer.Latest[float64]
//	level.Put(0.4)
//	level.Put(0.7) // 0.4 is discarded
//	v, ok := level.Take()
package buffer
