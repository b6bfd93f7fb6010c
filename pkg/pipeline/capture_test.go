package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
	"github.com/haivivi/livescribe/pkg/buffer"
)

func TestCapture_OrderAndLevel(t *testing.T) {
	src := newFakeSource(50, 160, 0.5)
	frames := buffer.NewQueue[pcm.Frame](0)
	levels := new(buffer.Latest[float64])
	stats := new(Stats)

	c := &Capture{Source: src, Frames: frames, Levels: levels, Stats: stats}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got := frames.Drain(nil)
	if len(got) != 50 {
		t.Fatalf("queued %d frames, want 50", len(got))
	}
	for i, f := range got {
		if f[0] != float32(i) {
			t.Fatalf("frame %d is out of order (first sample %v)", i, f[0])
		}
	}

	// Only the last level survives.
	level, ok := levels.Take()
	if !ok || level <= 0 {
		t.Fatalf("level = %v, %v", level, ok)
	}
	if _, ok := levels.Take(); ok {
		t.Fatal("level cell held more than one sample")
	}

	if err := frames.Wait(context.Background()); err == nil {
		t.Fatal("frame queue not closed after input ended")
	}
	if s := stats.Snapshot(); s.Frames != 50 || s.CaptureErrors != 0 {
		t.Fatalf("stats = %+v", s)
	}
}

func TestCapture_SkipsErrorFrames(t *testing.T) {
	src := newFakeSource(10, 160, 0.1)
	src.errs[2] = errors.New("overflow")
	src.errs[5] = errors.New("overflow")
	frames := buffer.NewQueue[pcm.Frame](0)
	stats := new(Stats)

	c := &Capture{
		Source:     src,
		Frames:     frames,
		Levels:     new(buffer.Latest[float64]),
		RetryDelay: time.Millisecond,
		Stats:      stats,
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	got := frames.Drain(nil)
	if len(got) != 10 {
		t.Fatalf("queued %d frames, want 10", len(got))
	}
	if s := stats.Snapshot(); s.CaptureErrors != 2 {
		t.Fatalf("CaptureErrors = %d, want 2", s.CaptureErrors)
	}
}

func TestCapture_CopiesFrames(t *testing.T) {
	src := newFakeSource(1, 4, 0.25)
	orig := src.frames[0]
	frames := buffer.NewQueue[pcm.Frame](0)

	c := &Capture{Source: src, Frames: frames, Levels: new(buffer.Latest[float64])}
	c.Run(context.Background())

	orig[1] = 9
	if got := frames.Drain(nil); got[0][1] != 0.25 {
		t.Fatalf("queued frame aliases the source buffer")
	}
}

func TestCapture_StopsOnCancel(t *testing.T) {
	src := newFakeSource(5, 16, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	frames := buffer.NewQueue[pcm.Frame](0)
	c := &Capture{Source: src, Frames: frames, Levels: new(buffer.Latest[float64])}
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if frames.Len() != 0 {
		t.Fatalf("read %d frames after cancel", frames.Len())
	}
}

func TestCapture_BacklogDepth(t *testing.T) {
	src := newFakeSource(30, 100, 0)
	stats := new(Stats)
	c := &Capture{
		Source:      src,
		Frames:      buffer.NewQueue[pcm.Frame](0),
		Levels:      new(buffer.Latest[float64]),
		BacklogWarn: 1000,
		Stats:       stats,
	}
	c.Run(context.Background())
	if s := stats.Snapshot(); s.MaxQueueDepth != 30 {
		t.Fatalf("MaxQueueDepth = %d, want 30", s.MaxQueueDepth)
	}
}

// failingSource fails every read immediately, like an unplugged device.
type failingSource struct {
	reads atomic.Int64
}

func (s *failingSource) ReadFrame() (pcm.Frame, error) {
	s.reads.Add(1)
	return nil, errors.New("device unavailable")
}

func (s *failingSource) Close() error { return nil }

// countingHandler counts records at or above Warn.
type countingHandler struct {
	warns atomic.Int64
}

func (h *countingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *countingHandler) Handle(_ context.Context, r slog.Record) error {
	if r.Level >= slog.LevelWarn {
		h.warns.Add(1)
	}
	return nil
}

func (h *countingHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h *countingHandler) WithGroup(string) slog.Handler { return h }

func TestCapture_ErrorBackoff(t *testing.T) {
	src := new(failingSource)
	h := new(countingHandler)
	stats := new(Stats)
	c := &Capture{
		Source:     src,
		Frames:     buffer.NewQueue[pcm.Frame](0),
		Levels:     new(buffer.Latest[float64]),
		RetryDelay: 10 * time.Millisecond,
		Stats:      stats,
		Logger:     slog.New(h),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := c.Run(ctx); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	reads := src.reads.Load()
	if reads < 1 || reads > 20 {
		t.Errorf("reads in 100ms = %d, want at most about 10", reads)
	}
	if s := stats.Snapshot(); s.CaptureErrors != reads {
		t.Errorf("CaptureErrors = %d, want %d", s.CaptureErrors, reads)
	}
	if n := h.warns.Load(); n != 1 {
		t.Errorf("warn records = %d, want 1", n)
	}
}

func TestCapture_LogsRecovery(t *testing.T) {
	src := newFakeSource(5, 16, 0.1)
	src.errs[1] = errors.New("overflow")
	src.errs[2] = errors.New("overflow")
	src.errs[3] = errors.New("overflow")
	h := new(countingHandler)
	stats := new(Stats)
	c := &Capture{
		Source:     src,
		Frames:     buffer.NewQueue[pcm.Frame](0),
		Levels:     new(buffer.Latest[float64]),
		RetryDelay: time.Millisecond,
		Stats:      stats,
		Logger:     slog.New(h),
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if s := stats.Snapshot(); s.Frames != 5 || s.CaptureErrors != 3 {
		t.Errorf("stats = %+v", s)
	}
	if n := h.warns.Load(); n != 1 {
		t.Errorf("warn records = %d, want 1 for one run of failures", n)
	}
}
