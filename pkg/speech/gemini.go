package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"google.golang.org/genai"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
)

func init() {
	mustHandle("gemini", func(cfg Config, logger *slog.Logger) (Engine, error) {
		return NewGeminiEngine(context.Background(), cfg, logger)
	})
}

const geminiDefaultModel = "gemini-2.0-flash"

// GeminiEngine asks a Gemini model for a verbatim transcript of an inline
// WAV part.
type GeminiEngine struct {
	log    *slog.Logger
	client *genai.Client
	model  string
	format pcm.Format
}

// NewGeminiEngine creates an engine from cfg.Gemini.
func NewGeminiEngine(ctx context.Context, cfg Config, logger *slog.Logger) (*GeminiEngine, error) {
	logger = loggerOrDefault(logger)
	if cfg.Gemini.APIKey == "" {
		return nil, errors.New("gemini: missing api_key")
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.Gemini.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Gemini.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.Gemini.BaseURL
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}
	model := cfg.Gemini.Model
	if model == "" {
		model = geminiDefaultModel
	}
	return &GeminiEngine{
		log:    logger.With("component", "speech.gemini", "model", model),
		client: client,
		model:  model,
		format: cfg.format(),
	}, nil
}

func transcribePrompt(language string) string {
	p := "Transcribe the speech in this audio verbatim. Reply with the transcript only. Reply with an empty message if nothing is said."
	if language != "" {
		p += " The language is " + language + "."
	}
	return p
}

// Transcribe implements Engine.
func (e *GeminiEngine) Transcribe(ctx context.Context, samples []float32, opts Options) (string, error) {
	var wav bytes.Buffer
	if err := pcm.EncodeWAV(&wav, e.format, samples); err != nil {
		return "", fmt.Errorf("gemini: encode wav: %w", err)
	}
	contents := []*genai.Content{{
		Role: string(genai.RoleUser),
		Parts: []*genai.Part{
			genai.NewPartFromText(transcribePrompt(opts.Language)),
			genai.NewPartFromBytes(wav.Bytes(), "audio/wav"),
		},
	}}
	var temperature float32
	resp, err := e.client.Models.GenerateContent(ctx, e.model, contents, &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	var sb strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	e.log.Debug("block transcribed", "samples", len(samples), "wav_bytes", wav.Len())
	return strings.TrimSpace(sb.String()), nil
}

// Close implements Engine.
func (e *GeminiEngine) Close() error {
	return nil
}
