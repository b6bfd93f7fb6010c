package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
	"github.com/haivivi/livescribe/pkg/buffer"
	"github.com/haivivi/livescribe/pkg/meter"
)

// Source is an audio input producing fixed-size mono float32 frames.
//
// ReadFrame blocks for about one frame duration. It returns io.EOF when the
// input has ended. Any other error affects only that frame.
type Source interface {
	ReadFrame() (pcm.Frame, error)
	Close() error
}

// DefaultRetryDelay is the pause after a failed read when Capture.RetryDelay
// is zero. It matches the default frame duration.
const DefaultRetryDelay = 100 * time.Millisecond

// OpenFunc opens the input for a pipeline run.
type OpenFunc func(ctx context.Context) (Source, error)

// Capture reads frames from a Source into the frame queue and level cell.
type Capture struct {
	Source Source
	Frames *buffer.Queue[pcm.Frame]
	Levels *buffer.Latest[float64]

	// BacklogWarn is the number of queued samples above which a warning is
	// logged. Zero disables the warning.
	BacklogWarn int

	// RetryDelay is how long Run waits after a failed read before reading
	// again, so a dead device is not polled in a tight loop.
	RetryDelay time.Duration

	Stats  *Stats
	Logger *slog.Logger
}

// Run reads until ctx is done or the source ends, then closes the frame
// queue for writing. Cancellation is checked between reads.
func (c *Capture) Run(ctx context.Context) error {
	log := loggerOrDefault(c.Logger).With("component", "pipeline.capture")
	stats := c.Stats
	if stats == nil {
		stats = new(Stats)
	}
	defer c.Frames.CloseWrite()

	retry := c.RetryDelay
	if retry <= 0 {
		retry = DefaultRetryDelay
	}

	backlogged := false
	failing := 0
	for ctx.Err() == nil {
		frame, err := c.Source.ReadFrame()
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("input ended")
				return nil
			}
			stats.captureErrors.Add(1)
			// Only the first failure of a run is logged; the count follows on recovery.
			if failing == 0 {
				log.Warn("capture frame dropped", "error", err)
			}
			failing++
			wait(ctx, retry)
			continue
		}
		if failing > 0 {
			log.Info("capture recovered", "dropped_frames", failing)
			failing = 0
		}

		if err := c.Frames.Add(frame.Clone()); err != nil {
			return err
		}
		stats.frames.Add(1)
		c.Levels.Put(meter.Level(frame))

		depth := c.Frames.Len()
		stats.observeDepth(depth)
		if c.BacklogWarn > 0 {
			queued := depth * len(frame)
			switch {
			case !backlogged && queued > c.BacklogWarn:
				backlogged = true
				log.Warn("transcription falling behind", "queued_frames", depth, "queued_samples", queued)
			case backlogged && queued <= c.BacklogWarn/2:
				backlogged = false
				log.Info("transcription caught up", "queued_frames", depth)
			}
		}
	}
	return nil
}

// wait sleeps for d or until ctx is done.
func wait(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
