package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/haivivi/livescribe/cmd/livescribe/internal/config"
	"github.com/haivivi/livescribe/pkg/audio/portaudio"
	"github.com/haivivi/livescribe/pkg/audio/resample"
	"github.com/haivivi/livescribe/pkg/audio/songs"
	"github.com/haivivi/livescribe/pkg/cli"
	"github.com/haivivi/livescribe/pkg/display"
	"github.com/haivivi/livescribe/pkg/pipeline"
	"github.com/haivivi/livescribe/pkg/speech"
)

func runTranscribe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	level, _ := config.ParseLevel(cfg.LogLevel)
	plain, _ := cmd.Flags().GetBool("plain")
	timestamps, _ := cmd.Flags().GetBool("timestamps")

	// Logs go to stderr in plain mode and into a TUI section otherwise, so
	// they never draw over the alternate screen.
	var logWriter *cli.LogWriter
	var logOut io.Writer = os.Stderr
	if !plain {
		logWriter = cli.NewLogWriter(200)
		logOut = logWriter
	}
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	engine, err := speech.New(cfg.Speech(), logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	p, err := pipeline.New(cfg.Pipeline(), openInput(cfg, logger), engine, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := p.Start(ctx); err != nil {
		return err
	}

	presenter := &display.Presenter{
		Transcripts: p.Transcripts(),
		Levels:      p.Levels(),
		Timestamps:  timestamps,
	}
	if plain {
		err = runPlain(ctx, p, presenter, cmd.OutOrStdout())
	} else {
		err = runTUI(p, presenter, logWriter, cfg)
	}

	p.Stop()
	<-p.Done()
	// Flush results produced after the UI stopped drawing.
	if plain {
		presenter.Tick()
	}
	return err
}

func runPlain(ctx context.Context, p *pipeline.Pipeline, presenter *display.Presenter, out io.Writer) error {
	presenter.Surface = display.PlainSurface{W: out}
	fmt.Fprintln(os.Stderr, "Listening... (Ctrl+C to stop)")

	ticker := time.NewTicker(display.TickInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.Done():
			return nil
		case <-ticker.C:
			presenter.Tick()
		}
	}
}

func runTUI(p *pipeline.Pipeline, presenter *display.Presenter, logWriter *cli.LogWriter, cfg config.Config) error {
	model := NewTUIModel(p, presenter, logWriter, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// openInput returns the OpenFunc for the configured input.
func openInput(cfg config.Config, logger *slog.Logger) pipeline.OpenFunc {
	format := cfg.Format()
	switch cfg.Input {
	case config.InputDemo:
		return func(ctx context.Context) (pipeline.Source, error) {
			song := songs.ByID(cfg.Song)
			if song == nil {
				return nil, fmt.Errorf("unknown song %q", cfg.Song)
			}
			logger.Info("playing demo melody", "song", song.Name)
			return songs.NewSource(*song, songs.SourceOptions{
				Format:        format,
				FrameDuration: cfg.FrameDuration,
				Loop:          true,
				Realtime:      true,
			})
		}
	default:
		return func(ctx context.Context) (pipeline.Source, error) {
			if err := portaudio.Initialize(); err != nil {
				return nil, fmt.Errorf("portaudio: %w", err)
			}
			devFmt := cfg.DeviceFormat()
			stream, err := portaudio.NewInputStream(cfg.Device, devFmt, cfg.FrameDuration)
			if err != nil {
				return nil, fmt.Errorf("open input device %d: %w", cfg.Device, err)
			}
			logger.Info("microphone opened", "device", cfg.Device, "format", devFmt.String())
			if devFmt == format {
				return stream, nil
			}
			src, err := resample.NewSource(stream, devFmt, format)
			if err != nil {
				stream.Close()
				return nil, err
			}
			logger.Info("resampling capture", "from", devFmt.SampleRate, "to", format.SampleRate)
			return src, nil
		}
	}
}
