package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
	"github.com/haivivi/livescribe/pkg/buffer"
	"github.com/haivivi/livescribe/pkg/speech"
)

// Worker turns queued frames into transcripts, one block at a time.
type Worker struct {
	Engine      speech.Engine
	Frames      *buffer.Queue[pcm.Frame]
	Transcripts *buffer.Queue[Transcript]

	Format        pcm.Format
	BlockDuration time.Duration
	Options       speech.Options

	Stats  *Stats
	Logger *slog.Logger

	acc Accumulator
	seq int
}

// Run processes blocks until ctx is done or the frame queue is closed and
// drained. Samples short of a full block are discarded on return.
func (w *Worker) Run(ctx context.Context) error {
	log := loggerOrDefault(w.Logger).With("component", "pipeline.worker")
	stats := w.Stats
	if stats == nil {
		stats = new(Stats)
	}
	blockLen := w.Format.SamplesInDuration(w.BlockDuration)
	if blockLen <= 0 {
		return errors.New("pipeline: block duration shorter than one sample")
	}
	// The engine call is never interrupted by shutdown.
	engineCtx := context.WithoutCancel(ctx)

	defer func() {
		if n := w.acc.Reset(); n > 0 {
			stats.discardedSamples.Add(int64(n))
			log.Debug("partial block discarded", "samples", n)
		}
	}()

	var batch []pcm.Frame
	for {
		waitErr := w.Frames.Wait(ctx)
		batch = w.Frames.Drain(batch[:0])
		for _, f := range batch {
			w.acc.Append(f)
		}
		clear(batch)

		for ctx.Err() == nil {
			block, ok := w.acc.Next(blockLen)
			if !ok {
				break
			}
			w.transcribe(engineCtx, log, stats, block)
		}

		switch {
		case ctx.Err() != nil:
			return nil
		case errors.Is(waitErr, io.EOF):
			return nil
		case waitErr != nil:
			return waitErr
		}
	}
}

func (w *Worker) transcribe(ctx context.Context, log *slog.Logger, stats *Stats, block []float32) {
	t := Transcript{
		Seq:    w.seq,
		Offset: time.Duration(w.seq) * w.BlockDuration,
	}
	w.seq++

	start := time.Now()
	t.Text, t.Err = w.Engine.Transcribe(ctx, block, w.Options)
	stats.blocks.Add(1)
	if t.Err != nil {
		stats.blockErrors.Add(1)
		log.Warn("transcription failed", "seq", t.Seq, "error", t.Err)
	} else {
		log.Debug("block transcribed", "seq", t.Seq, "elapsed", time.Since(start), "chars", len(t.Text))
	}

	if err := w.Transcripts.Add(t); err != nil {
		log.Warn("transcript dropped", "seq", t.Seq, "error", err)
	}
}
