package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
)

func init() {
	mustHandle("openai", func(cfg Config, logger *slog.Logger) (Engine, error) {
		return NewOpenAIEngine(cfg, logger)
	})
}

// OpenAIEngine sends each block to the OpenAI audio transcriptions endpoint
// as a 16-bit WAV file.
type OpenAIEngine struct {
	log    *slog.Logger
	client openai.Client
	model  string
	format pcm.Format
}

// NewOpenAIEngine creates an engine from cfg.OpenAI.
func NewOpenAIEngine(cfg Config, logger *slog.Logger) (*OpenAIEngine, error) {
	logger = loggerOrDefault(logger)
	if cfg.OpenAI.APIKey == "" {
		return nil, errors.New("openai: missing api_key")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.OpenAI.APIKey)}
	if cfg.OpenAI.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.OpenAI.BaseURL))
	}
	model := cfg.OpenAI.Model
	if model == "" {
		model = string(openai.AudioModelWhisper1)
	}
	return &OpenAIEngine{
		log:    logger.With("component", "speech.openai", "model", model),
		client: openai.NewClient(opts...),
		model:  model,
		format: cfg.format(),
	}, nil
}

// Transcribe implements Engine.
func (e *OpenAIEngine) Transcribe(ctx context.Context, samples []float32, opts Options) (string, error) {
	var wav bytes.Buffer
	if err := pcm.EncodeWAV(&wav, e.format, samples); err != nil {
		return "", fmt.Errorf("openai: encode wav: %w", err)
	}
	params := openai.AudioTranscriptionNewParams{
		File:        openai.File(bytes.NewReader(wav.Bytes()), "block.wav", "audio/wav"),
		Model:       openai.AudioModel(e.model),
		Temperature: openai.Float(0),
	}
	if opts.Language != "" {
		params.Language = openai.String(opts.Language)
	}
	resp, err := e.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}
	e.log.Debug("block transcribed", "samples", len(samples), "wav_bytes", wav.Len())
	return strings.TrimSpace(resp.Text), nil
}

// Close implements Engine.
func (e *OpenAIEngine) Close() error {
	return nil
}
