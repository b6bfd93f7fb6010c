package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
	"github.com/haivivi/livescribe/pkg/buffer"
	"github.com/haivivi/livescribe/pkg/speech"
)

// ErrAlreadyStarted is returned by Start on a pipeline that was started or
// stopped before.
var ErrAlreadyStarted = errors.New("pipeline: already started")

// State is the lifecycle state of a Pipeline.
type State int32

const (
	Idle State = iota
	Running
	ShuttingDown
	Terminated
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting-down"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// Config holds the fixed parameters of a pipeline run.
type Config struct {
	Format        pcm.Format
	BlockDuration time.Duration
	Language      string
	HighPrecision bool
	// BacklogWarn logs a warning when queued audio exceeds this duration.
	BacklogWarn time.Duration
}

// Validate reports whether c describes a usable pipeline.
func (c Config) Validate() error {
	if err := c.Format.Validate(); err != nil {
		return err
	}
	if c.BlockSamples() <= 0 {
		return fmt.Errorf("pipeline: invalid block duration %v", c.BlockDuration)
	}
	if c.BacklogWarn < 0 {
		return fmt.Errorf("pipeline: invalid backlog warning %v", c.BacklogWarn)
	}
	return nil
}

// BlockSamples returns the number of samples in one block.
func (c Config) BlockSamples() int {
	return c.Format.SamplesInDuration(c.BlockDuration)
}

// Pipeline runs a Capture and a Worker on their own goroutines.
type Pipeline struct {
	id     string
	cfg    Config
	open   OpenFunc
	engine speech.Engine
	log    *slog.Logger

	frames      *buffer.Queue[pcm.Frame]
	levels      *buffer.Latest[float64]
	transcripts *buffer.Queue[Transcript]

	stats    Stats
	state    atomic.Int32
	stopping context.Context
	stop     context.CancelFunc
	done     chan struct{}
}

// New creates an idle pipeline. The engine is owned by the caller.
func New(cfg Config, open OpenFunc, engine speech.Engine, logger *slog.Logger) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if open == nil || engine == nil {
		return nil, errors.New("pipeline: source and engine are required")
	}
	id := uuid.NewString()
	stopping, stop := context.WithCancel(context.Background())
	return &Pipeline{
		id:          id,
		cfg:         cfg,
		open:        open,
		engine:      engine,
		log:         loggerOrDefault(logger).With("session", id),
		frames:      buffer.NewQueue[pcm.Frame](64),
		levels:      new(buffer.Latest[float64]),
		transcripts: buffer.NewQueue[Transcript](8),
		stopping:    stopping,
		stop:        stop,
		done:        make(chan struct{}),
	}, nil
}

// ID returns the session identifier used in log records.
func (p *Pipeline) ID() string { return p.id }

// Levels returns the cell holding the most recent frame level.
func (p *Pipeline) Levels() *buffer.Latest[float64] { return p.levels }

// Transcripts returns the queue of block results, in audio order.
func (p *Pipeline) Transcripts() *buffer.Queue[Transcript] { return p.transcripts }

// State returns the current lifecycle state.
func (p *Pipeline) State() State { return State(p.state.Load()) }

// Stats returns the current counters.
func (p *Pipeline) Stats() StatsSnapshot { return p.stats.Snapshot() }

// Done is closed once the pipeline is Terminated.
func (p *Pipeline) Done() <-chan struct{} { return p.done }

// Start opens the source and launches the capture and worker goroutines.
// A source that cannot be opened terminates the pipeline and the error is
// returned.
func (p *Pipeline) Start(ctx context.Context) error {
	if !p.state.CompareAndSwap(int32(Idle), int32(Running)) {
		return ErrAlreadyStarted
	}

	src, err := p.open(ctx)
	if err != nil {
		p.terminate()
		return fmt.Errorf("pipeline: open input: %w", err)
	}

	ctx, cancel := context.WithCancel(ctx)
	context.AfterFunc(p.stopping, cancel)
	capture := &Capture{
		Source:      src,
		Frames:      p.frames,
		Levels:      p.levels,
		BacklogWarn: p.cfg.Format.SamplesInDuration(p.cfg.BacklogWarn),
		Stats:       &p.stats,
		Logger:      p.log,
	}
	worker := &Worker{
		Engine:        p.engine,
		Frames:        p.frames,
		Transcripts:   p.transcripts,
		Format:        p.cfg.Format,
		BlockDuration: p.cfg.BlockDuration,
		Options: speech.Options{
			Language:      p.cfg.Language,
			HighPrecision: p.cfg.HighPrecision,
		},
		Stats:  &p.stats,
		Logger: p.log,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer src.Close()
		if err := capture.Run(ctx); err != nil {
			p.log.Error("capture stopped", "error", err)
		}
	}()
	go func() {
		defer wg.Done()
		if err := worker.Run(ctx); err != nil {
			p.log.Error("worker stopped", "error", err)
		}
	}()
	go func() {
		wg.Wait()
		cancel()
		p.transcripts.CloseWrite()
		p.terminate()
		p.log.Info("pipeline terminated", "stats", p.stats.Snapshot())
	}()

	p.log.Info("pipeline started",
		"format", p.cfg.Format.String(),
		"block", p.cfg.BlockDuration,
		"language", p.cfg.Language,
	)
	return nil
}

// Stop signals both goroutines to finish and returns without waiting for
// them. Use Done to wait. Stopping an idle pipeline terminates it.
func (p *Pipeline) Stop() {
	if p.state.CompareAndSwap(int32(Idle), int32(Terminated)) {
		p.stop()
		close(p.done)
		return
	}
	if p.state.CompareAndSwap(int32(Running), int32(ShuttingDown)) {
		p.log.Info("pipeline stopping")
	}
	p.stop()
}

func (p *Pipeline) terminate() {
	p.stop()
	p.state.Store(int32(Terminated))
	close(p.done)
}
