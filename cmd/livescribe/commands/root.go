package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/haivivi/livescribe/cmd/livescribe/internal/config"
)

var (
	// Global flags
	cfgFile  string
	logLevel string
)

// rootCmd runs the transcriber when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "livescribe",
	Short: "Live speech-to-text in the terminal",
	Long: `livescribe captures audio from a microphone, cuts it into fixed-length
blocks and transcribes each block with a speech engine. The transcript
scrolls in the terminal next to a live input level meter.

Engines:
  whisper  local whisper.cpp (build with -tags whispercpp)
  openai   OpenAI audio transcriptions (OPENAI_API_KEY)
  gemini   Google Gemini (GEMINI_API_KEY)
  stub     placeholder text, no inference

Configuration is stored in the OS config directory:
  macOS:   ~/Library/Application Support/livescribe/config.yaml
  Linux:   ~/.config/livescribe/config.yaml
  Windows: %AppData%/livescribe/config.yaml

Flags override the config file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTranscribe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <user config dir>/livescribe/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	f := rootCmd.Flags()
	f.String("engine", "", "speech engine (see 'livescribe engines')")
	f.String("model", "", "model name or path (whisper: tiny, base, small, ...)")
	f.String("model-dir", "", "directory holding ggml-<model>.bin files")
	f.String("language", "", "spoken language code, empty to auto-detect")
	f.Int("threads", 0, "inference threads (0 = engine default)")
	f.Int("sample-rate", 0, "capture sample rate in Hz")
	f.Duration("block", 0, "length of each transcribed block")
	f.String("input", "", "audio input: mic or demo")
	f.Int("device", 0, "input device index (see 'livescribe devices'), -1 for default")
	f.Int("capture-rate", 0, "open the microphone at this rate and resample (0 = sample rate)")
	f.String("song", "", "melody for the demo input")
	f.Bool("plain", false, "print transcripts to stdout without the TUI")
	f.Bool("timestamps", true, "prefix transcript lines with the block offset")
}

// loadConfig reads the config file, applies the environment and any flags
// set on cmd, and validates the result.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path := cfgFile
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	cfg.ApplyEnv(os.Getenv)

	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	f := cmd.Flags()
	overrideString := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	overrideInt := func(name string, dst *int) {
		if f.Changed(name) {
			*dst, _ = f.GetInt(name)
		}
	}
	overrideDuration := func(name string, dst *time.Duration) {
		if f.Changed(name) {
			*dst, _ = f.GetDuration(name)
		}
	}
	overrideString("engine", &cfg.Engine)
	overrideString("model", &cfg.Model)
	overrideString("model-dir", &cfg.ModelDir)
	overrideString("language", &cfg.Language)
	overrideString("input", &cfg.Input)
	overrideString("song", &cfg.Song)
	overrideInt("threads", &cfg.Threads)
	overrideInt("sample-rate", &cfg.SampleRate)
	overrideInt("device", &cfg.Device)
	overrideInt("capture-rate", &cfg.CaptureRate)
	overrideDuration("block", &cfg.BlockDuration)

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
