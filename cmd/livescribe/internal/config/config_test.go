package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Missing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Fatalf("Load(missing) = %+v, want defaults", cfg)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
sample_rate: 8000
block_duration: 3s
language: de
engine: openai
input: demo
song: scale_c_major
openai:
  api_key: sk-test
  base_url: http://localhost:8080/v1
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.SampleRate != 8000 || cfg.BlockDuration != 3*time.Second || cfg.Language != "de" {
		t.Errorf("core fields = %d %v %q", cfg.SampleRate, cfg.BlockDuration, cfg.Language)
	}
	if cfg.Engine != "openai" || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("engine fields = %q %+v", cfg.Engine, cfg.OpenAI)
	}
	if cfg.Input != InputDemo || cfg.Song != "scale_c_major" {
		t.Errorf("input fields = %q %q", cfg.Input, cfg.Song)
	}
	// Untouched fields keep their defaults.
	if cfg.FrameDuration != 100*time.Millisecond || cfg.Model != "small" || cfg.Device != -1 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("sample_rate: [1, 2\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Fatal("Load(invalid yaml) = nil error")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	want := Default()
	want.Engine = "gemini"
	want.Gemini.APIKey = "key"
	want.BlockDuration = 2500 * time.Millisecond
	if err := want.Save(path); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if got != want {
		t.Fatalf("Load(Save(c)) = %+v, want %+v", got, want)
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{"OPENAI_API_KEY": "from-env", "GEMINI_API_KEY": "gem-env"}
	cfg := Default()
	cfg.Gemini.APIKey = "from-file"
	cfg.ApplyEnv(func(k string) string { return env[k] })
	if cfg.OpenAI.APIKey != "from-env" {
		t.Errorf("OpenAI.APIKey = %q", cfg.OpenAI.APIKey)
	}
	if cfg.Gemini.APIKey != "from-file" {
		t.Errorf("Gemini.APIKey = %q, file value should win", cfg.Gemini.APIKey)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"demo input", func(c *Config) { c.Input = InputDemo }, ""},
		{"zero sample rate", func(c *Config) { c.SampleRate = 0 }, "sample_rate"},
		{"zero frame", func(c *Config) { c.FrameDuration = 0 }, "frame_duration"},
		{"block shorter than frame", func(c *Config) { c.BlockDuration = 10 * time.Millisecond }, "block_duration"},
		{"negative backlog", func(c *Config) { c.BacklogWarn = -1 }, "backlog_warn"},
		{"negative threads", func(c *Config) { c.Threads = -2 }, "threads"},
		{"bad device", func(c *Config) { c.Device = -5 }, "device"},
		{"negative capture rate", func(c *Config) { c.CaptureRate = -1 }, "capture_rate"},
		{"bad input", func(c *Config) { c.Input = "file" }, "input"},
		{"bad song", func(c *Config) { c.Input = InputDemo; c.Song = "nope" }, "song"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
		{"no engine", func(c *Config) { c.Engine = "" }, "engine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.ModelDir = t.TempDir()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidate_ModelDirDefault(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Skipf("no user dirs: %v", err)
	}
	if !strings.HasSuffix(cfg.ModelDir, filepath.Join(AppName, "models")) {
		t.Fatalf("ModelDir = %q", cfg.ModelDir)
	}
}

func TestDerived(t *testing.T) {
	cfg := Default()
	cfg.ModelDir = "/models"
	cfg.OpenAI.APIKey = "k"

	sc := cfg.Speech()
	if sc.Engine != "whisper" || sc.ModelDir != "/models" || sc.SampleRate != 16000 || sc.OpenAI.APIKey != "k" {
		t.Errorf("Speech() = %+v", sc)
	}
	pc := cfg.Pipeline()
	if pc.BlockSamples() != 80000 || pc.Language != "en" || pc.BacklogWarn != 30*time.Second {
		t.Errorf("Pipeline() = %+v", pc)
	}
	if cfg.DeviceFormat() != cfg.Format() {
		t.Errorf("DeviceFormat() = %v, want %v", cfg.DeviceFormat(), cfg.Format())
	}
	cfg.CaptureRate = 48000
	if cfg.DeviceFormat().SampleRate != 48000 || cfg.Format().SampleRate != 16000 {
		t.Errorf("DeviceFormat() = %v with capture_rate 48000", cfg.DeviceFormat())
	}
}

func TestRedacted(t *testing.T) {
	cfg := Default()
	cfg.OpenAI.APIKey = "secret"
	r := cfg.Redacted()
	if r.OpenAI.APIKey == "secret" || r.Gemini.APIKey != "" {
		t.Fatalf("Redacted() = %+v", r)
	}
	if cfg.OpenAI.APIKey != "secret" {
		t.Fatal("Redacted() modified the original")
	}
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug": slog.LevelDebug, "info": slog.LevelInfo, "WARN": slog.LevelWarn, "error": slog.LevelError,
	} {
		got, err := ParseLevel(in)
		if err != nil || got != want {
			t.Errorf("ParseLevel(%q) = %v, %v", in, got, err)
		}
	}
}
