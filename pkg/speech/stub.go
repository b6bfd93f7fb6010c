package speech

import (
	"context"
	"fmt"
	"log/slog"
)

func init() {
	mustHandle("stub", func(cfg Config, logger *slog.Logger) (Engine, error) {
		return NewStubEngine(cfg, logger), nil
	})
}

// StubEngine produces deterministic transcripts without running inference.
type StubEngine struct {
	log    *slog.Logger
	cfg    Config
	blocks int
}

// NewStubEngine returns an Engine that describes each block instead of
// transcribing it.
func NewStubEngine(cfg Config, logger *slog.Logger) *StubEngine {
	logger = loggerOrDefault(logger)
	return &StubEngine{
		log: logger.With("component", "speech.stub", "model", cfg.Model),
		cfg: cfg,
	}
}

// Transcribe implements Engine.
func (e *StubEngine) Transcribe(ctx context.Context, samples []float32, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e.blocks++
	e.log.Debug("stub transcript", "block", e.blocks, "samples", len(samples), "language", opts.Language)
	return fmt.Sprintf("[stub] block %d: %.1fs of audio", e.blocks, e.cfg.duration(samples).Seconds()), nil
}

// Close implements Engine.
func (e *StubEngine) Close() error {
	return nil
}
