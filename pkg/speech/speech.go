// Package speech turns blocks of mono float32 audio into text.
//
// Engines are registered by name and created from a Config:
//
//	eng, err := speech.New(speech.Config{Engine: "whisper", Model: "small"}, logger)
//	if err != nil {
//		return err
//	}
//	defer eng.Close()
//	text, err := eng.Transcribe(ctx, samples, speech.Options{Language: "en"})
//
// Built-in engines:
//
//   - whisper: local whisper.cpp inference (requires the whispercpp build tag)
//   - openai: OpenAI audio transcriptions API
//   - gemini: Gemini multimodal generation with an inline WAV part
//   - stub: deterministic placeholder text, no inference
package speech

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
)

var (
	// ErrNativeUnavailable is returned by the whisper engine when the binary
	// was built without the whispercpp tag.
	ErrNativeUnavailable = errors.New("speech: native whisper backend unavailable")

	// ErrUnknownEngine is returned by New for an unregistered engine name.
	ErrUnknownEngine = errors.New("speech: unknown engine")
)

// Engine transcribes one block of audio at a time.
//
// Transcribe is called sequentially from a single goroutine; implementations
// need not be safe for concurrent use.
type Engine interface {
	// Transcribe returns the text spoken in samples. samples are mono float32
	// at the sample rate the engine was configured with.
	Transcribe(ctx context.Context, samples []float32, opts Options) (string, error)

	// Close releases the engine's resources.
	Close() error
}

// Options controls decoding of a single block.
type Options struct {
	// Language is a language code such as "en". Empty lets the engine detect it.
	Language string
	// HighPrecision requests full-precision arithmetic where the engine
	// supports choosing. None of the built-in engines offers a reduced
	// precision mode, so they all ignore it.
	HighPrecision bool
}

// Config selects and configures an engine.
type Config struct {
	Engine     string
	Model      string
	ModelDir   string
	Threads    int
	SampleRate int

	OpenAI OpenAIConfig
	Gemini GeminiConfig
}

// OpenAIConfig configures the openai engine.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string // default: whisper-1
}

// GeminiConfig configures the gemini engine.
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string // default: gemini-2.0-flash
}

func (c Config) format() pcm.Format {
	if c.SampleRate <= 0 {
		return pcm.F32Mono16K
	}
	return pcm.Format{SampleRate: c.SampleRate}
}

func (c Config) duration(samples []float32) time.Duration {
	return c.format().Duration(len(samples))
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
