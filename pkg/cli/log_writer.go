package cli

import (
	"strings"

	"github.com/haivivi/livescribe/pkg/buffer"
)

// LogWriter implements io.Writer and captures log output for TUI display.
// It keeps the most recent lines and notifies via a channel.
type LogWriter struct {
	buf *buffer.RingBuffer[string]
	ch  chan string
}

// NewLogWriter creates a new log writer keeping at most maxLines lines.
func NewLogWriter(maxLines int) *LogWriter {
	return &LogWriter{
		buf: buffer.RingN[string](maxLines),
		ch:  make(chan string, 100),
	}
}

// Write implements io.Writer.
// Handles multi-line input by splitting on newlines.
func (w *LogWriter) Write(p []byte) (n int, err error) {
	text := strings.TrimRight(string(p), "\n")
	if text == "" {
		return len(p), nil
	}
	for _, line := range strings.Split(text, "\n") {
		w.buf.Add(line)

		// Non-blocking send to channel
		select {
		case w.ch <- line:
		default:
		}
	}
	return len(p), nil
}

// Lines returns all buffered lines, oldest first.
func (w *LogWriter) Lines() []string {
	return w.buf.Items()
}

// Tail returns at most the n most recent lines.
func (w *LogWriter) Tail(n int) []string {
	lines := w.buf.Items()
	if n >= 0 && len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}

// Channel returns the notification channel for new lines.
func (w *LogWriter) Channel() <-chan string {
	return w.ch
}
