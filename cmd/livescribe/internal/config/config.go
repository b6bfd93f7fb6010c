// Package config loads livescribe settings from a YAML file.
//
// The file lives under os.UserConfigDir():
//
//	~/Library/Application Support/livescribe/config.yaml   (macOS)
//	~/.config/livescribe/config.yaml                       (Linux)
//	%AppData%/livescribe/config.yaml                       (Windows)
//
// A missing file is not an error; every field has a default. Command-line
// flags override file values, and OPENAI_API_KEY / GEMINI_API_KEY fill in
// API keys the file leaves empty.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/haivivi/livescribe/pkg/audio/pcm"
	"github.com/haivivi/livescribe/pkg/audio/songs"
	"github.com/haivivi/livescribe/pkg/cli"
	"github.com/haivivi/livescribe/pkg/pipeline"
	"github.com/haivivi/livescribe/pkg/speech"
)

// AppName is the directory name under the user config and cache dirs.
const AppName = "livescribe"

// Input sources.
const (
	InputMic  = "mic"
	InputDemo = "demo"
)

// Config is the complete livescribe configuration.
type Config struct {
	SampleRate    int           `yaml:"sample_rate"`
	BlockDuration time.Duration `yaml:"block_duration"`
	FrameDuration time.Duration `yaml:"frame_duration"`
	Language      string        `yaml:"language"`
	HighPrecision bool          `yaml:"high_precision"`

	Engine   string `yaml:"engine"`
	Model    string `yaml:"model"`
	ModelDir string `yaml:"model_dir,omitempty"`
	Threads  int    `yaml:"threads,omitempty"`

	Input       string `yaml:"input"`
	Device      int    `yaml:"device"`
	CaptureRate int    `yaml:"capture_rate,omitempty"`
	Song        string `yaml:"song,omitempty"`

	BacklogWarn time.Duration `yaml:"backlog_warn"`
	LogLevel    string        `yaml:"log_level"`

	OpenAI Remote `yaml:"openai,omitempty"`
	Gemini Remote `yaml:"gemini,omitempty"`
}

// Remote holds credentials for a hosted engine.
type Remote struct {
	APIKey  string `yaml:"api_key,omitempty"`
	BaseURL string `yaml:"base_url,omitempty"`
	Model   string `yaml:"model,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		SampleRate:    16000,
		BlockDuration: 5 * time.Second,
		FrameDuration: 100 * time.Millisecond,
		Language:      "en",
		HighPrecision: true,
		Engine:        "whisper",
		Model:         "small",
		Input:         InputMic,
		Device:        -1,
		Song:          songs.SongTwinkleStar.ID,
		BacklogWarn:   30 * time.Second,
		LogLevel:      "info",
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	paths, err := cli.NewPaths(AppName)
	if err != nil {
		return "", fmt.Errorf("cannot determine config directory: %w", err)
	}
	return paths.ConfigFile(), nil
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path, creating the directory.
func (c Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0600)
}

// ApplyEnv fills empty API keys from the environment.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if c.OpenAI.APIKey == "" {
		c.OpenAI.APIKey = getenv("OPENAI_API_KEY")
	}
	if c.Gemini.APIKey == "" {
		c.Gemini.APIKey = getenv("GEMINI_API_KEY")
	}
}

// Validate fills derived defaults and rejects unusable values.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample_rate must be positive, got %d", c.SampleRate)
	}
	if c.FrameDuration <= 0 {
		return fmt.Errorf("frame_duration must be positive, got %v", c.FrameDuration)
	}
	if c.BlockDuration < c.FrameDuration {
		return fmt.Errorf("block_duration %v is shorter than frame_duration %v", c.BlockDuration, c.FrameDuration)
	}
	if c.BacklogWarn < 0 {
		return fmt.Errorf("backlog_warn must not be negative, got %v", c.BacklogWarn)
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must not be negative, got %d", c.Threads)
	}
	if c.CaptureRate < 0 {
		return fmt.Errorf("capture_rate must not be negative, got %d", c.CaptureRate)
	}
	if c.Device < -1 {
		return fmt.Errorf("device must be -1 (default) or an index, got %d", c.Device)
	}
	switch c.Input {
	case InputMic:
	case InputDemo:
		if songs.ByID(c.Song) == nil {
			return fmt.Errorf("unknown song %q (available: %s)", c.Song, strings.Join(songs.IDs(), ", "))
		}
	default:
		return fmt.Errorf("input must be %q or %q, got %q", InputMic, InputDemo, c.Input)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Engine == "" {
		return errors.New("engine is required")
	}
	if c.ModelDir == "" {
		paths, err := cli.NewPaths(AppName)
		if err != nil {
			return fmt.Errorf("cannot determine model directory: %w", err)
		}
		c.ModelDir = paths.ModelDir()
	}
	return nil
}

// Format returns the pipeline format.
func (c Config) Format() pcm.Format {
	return pcm.Format{SampleRate: c.SampleRate}
}

// DeviceFormat returns the format the microphone is opened with. It differs
// from Format when capture_rate is set to a rate the device supports.
func (c Config) DeviceFormat() pcm.Format {
	if c.CaptureRate == 0 {
		return c.Format()
	}
	return pcm.Format{SampleRate: c.CaptureRate}
}

// Speech returns the engine configuration.
func (c Config) Speech() speech.Config {
	return speech.Config{
		Engine:     c.Engine,
		Model:      c.Model,
		ModelDir:   c.ModelDir,
		Threads:    c.Threads,
		SampleRate: c.SampleRate,
		OpenAI: speech.OpenAIConfig{
			APIKey:  c.OpenAI.APIKey,
			BaseURL: c.OpenAI.BaseURL,
			Model:   c.OpenAI.Model,
		},
		Gemini: speech.GeminiConfig{
			APIKey:  c.Gemini.APIKey,
			BaseURL: c.Gemini.BaseURL,
			Model:   c.Gemini.Model,
		},
	}
}

// Pipeline returns the pipeline configuration.
func (c Config) Pipeline() pipeline.Config {
	return pipeline.Config{
		Format:        c.Format(),
		BlockDuration: c.BlockDuration,
		Language:      c.Language,
		HighPrecision: c.HighPrecision,
		BacklogWarn:   c.BacklogWarn,
	}
}

// Redacted returns a copy safe to print.
func (c Config) Redacted() Config {
	redact := func(s string) string {
		if s == "" {
			return ""
		}
		return "********"
	}
	c.OpenAI.APIKey = redact(c.OpenAI.APIKey)
	c.Gemini.APIKey = redact(c.Gemini.APIKey)
	return c
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log_level %q: %w", s, err)
	}
	return level, nil
}
