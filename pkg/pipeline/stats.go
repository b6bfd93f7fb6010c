package pipeline

import (
	"log/slog"
	"sync/atomic"
)

// Stats counts pipeline activity. Fields are updated atomically by the
// capture and worker goroutines.
type Stats struct {
	frames           atomic.Int64
	captureErrors    atomic.Int64
	blocks           atomic.Int64
	blockErrors      atomic.Int64
	discardedSamples atomic.Int64
	maxQueueDepth    atomic.Int64
}

// StatsSnapshot is a point-in-time copy of Stats.
type StatsSnapshot struct {
	Frames           int64
	CaptureErrors    int64
	Blocks           int64
	BlockErrors      int64
	DiscardedSamples int64
	MaxQueueDepth    int64
}

// Snapshot returns the current counters.
func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		Frames:           s.frames.Load(),
		CaptureErrors:    s.captureErrors.Load(),
		Blocks:           s.blocks.Load(),
		BlockErrors:      s.blockErrors.Load(),
		DiscardedSamples: s.discardedSamples.Load(),
		MaxQueueDepth:    s.maxQueueDepth.Load(),
	}
}

func (s *Stats) observeDepth(depth int) {
	d := int64(depth)
	for {
		cur := s.maxQueueDepth.Load()
		if d <= cur || s.maxQueueDepth.CompareAndSwap(cur, d) {
			return
		}
	}
}

// LogValue implements slog.LogValuer.
func (s StatsSnapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int64("frames", s.Frames),
		slog.Int64("capture_errors", s.CaptureErrors),
		slog.Int64("blocks", s.Blocks),
		slog.Int64("block_errors", s.BlockErrors),
		slog.Int64("discarded_samples", s.DiscardedSamples),
		slog.Int64("max_queue_depth", s.MaxQueueDepth),
	)
}
