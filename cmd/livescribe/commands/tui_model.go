package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/haivivi/livescribe/cmd/livescribe/internal/config"
	"github.com/haivivi/livescribe/pkg/cli"
	"github.com/haivivi/livescribe/pkg/display"
	"github.com/haivivi/livescribe/pkg/meter"
	"github.com/haivivi/livescribe/pkg/pipeline"
)

const (
	maxParagraphs = 500
	readoutWidth  = 9
	logLines      = 5
)

// TUIModel is the bubbletea model hosting the presentation loop.
type TUIModel struct {
	pipeline  *pipeline.Pipeline
	presenter *display.Presenter
	surface   *tuiSurface
	logWriter *cli.LogWriter

	// UI
	styles cli.Styles
	status string
	width  int
	height int

	// Quit flag
	quitting bool
}

// NewTUIModel creates a TUI drawing p's results through presenter.
func NewTUIModel(p *pipeline.Pipeline, presenter *display.Presenter, logWriter *cli.LogWriter, cfg config.Config) TUIModel {
	styles := cli.NewStyles(cli.DefaultTheme)
	surface := newTUISurface(styles)
	surface.AppendParagraph("Listening...")
	presenter.Surface = surface
	return TUIModel{
		pipeline:  p,
		presenter: presenter,
		surface:   surface,
		logWriter: logWriter,
		styles:    styles,
		status:    fmt.Sprintf("%s · %s · %s", cfg.Engine, cfg.Input, cfg.Language),
	}
}

// LogMsg wraps log messages for bubbletea.
type LogMsg string

// TickMsg drives the presentation loop.
type TickMsg time.Time

// DoneMsg is sent when the pipeline has terminated.
type DoneMsg struct{}

// Init initializes the model.
func (m TUIModel) Init() tea.Cmd {
	return tea.Batch(
		m.listenLogs(),
		m.listenDone(),
		m.tick(),
	)
}

func (m TUIModel) listenLogs() tea.Cmd {
	if m.logWriter == nil {
		return nil
	}
	return func() tea.Msg {
		line, ok := <-m.logWriter.Channel()
		if !ok {
			return nil
		}
		return LogMsg(line)
	}
}

func (m TUIModel) listenDone() tea.Cmd {
	return func() tea.Msg {
		<-m.pipeline.Done()
		return DoneMsg{}
	}
}

func (m TUIModel) tick() tea.Cmd {
	return tea.Tick(display.TickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages.
func (m TUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m.quit()
		case tea.KeyRunes:
			if len(msg.Runes) == 1 && msg.Runes[0] == 'q' {
				return m.quit()
			}
		}
		var cmd tea.Cmd
		m.surface.viewport, cmd = m.surface.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.surface.viewport, cmd = m.surface.viewport.Update(msg)
		cmds = append(cmds, cmd)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		heights := m.frame().Heights(m.height)
		m.surface.resize(cli.ContentWidth(m.width), heights[0])

	case LogMsg:
		cmds = append(cmds, m.listenLogs())

	case TickMsg:
		m.presenter.Tick()
		cmds = append(cmds, m.tick())

	case DoneMsg:
		// Show anything produced before the pipeline ended, then leave.
		m.presenter.Tick()
		m.quitting = true
		return m, tea.Quit
	}

	return m, tea.Batch(cmds...)
}

func (m TUIModel) quit() (tea.Model, tea.Cmd) {
	m.pipeline.Stop()
	m.quitting = true
	return m, tea.Quit
}

func (m TUIModel) frame() cli.Frame {
	return cli.Frame{
		Styles: m.styles,
		Title:  "livescribe",
		Status: m.pipeline.State().String() + " · " + m.status,
		Sections: []cli.Section{
			{
				Label: "Transcript",
				Content: func(width, height int) []string {
					return strings.Split(m.surface.viewport.View(), "\n")
				},
			},
			{
				Label:  "Level",
				Height: 1,
				Content: func(width, height int) []string {
					return []string{m.surface.meterLine()}
				},
			},
			{
				Label:  "Log",
				Height: logLines,
				Content: func(width, height int) []string {
					if m.logWriter == nil {
						return nil
					}
					return m.logWriter.Tail(height)
				},
			},
		},
		Help: "q: quit | ↑/↓ pgup/pgdn: scroll",
	}
}

// View renders the UI.
func (m TUIModel) View() string {
	if m.quitting {
		return "Stopping...\n"
	}
	return m.frame().Render(m.width, m.height)
}

// tuiSurface implements display.Surface on a viewport and a one-line meter.
type tuiSurface struct {
	styles     cli.Styles
	viewport   viewport.Model
	paragraphs []string
	width      int

	bar     int
	color   meter.RGB
	peak    int
	readout string
}

func newTUISurface(styles cli.Styles) *tuiSurface {
	return &tuiSurface{
		styles:   styles,
		viewport: viewport.New(0, 0),
		readout:  meter.Readout(0),
	}
}

func (s *tuiSurface) resize(width, height int) {
	s.width = width
	s.viewport.Width = width
	s.viewport.Height = height
	s.refresh()
}

func (s *tuiSurface) refresh() {
	rendered := make([]string, len(s.paragraphs))
	for i, p := range s.paragraphs {
		rendered[i] = cli.CenterWrap(s.styles.Text, p, s.viewport.Width)
	}
	s.viewport.SetContent(strings.Join(rendered, "\n\n"))
	s.viewport.GotoBottom()
}

// AppendParagraph implements display.Surface.
func (s *tuiSurface) AppendParagraph(text string) {
	s.paragraphs = append(s.paragraphs, text)
	if len(s.paragraphs) > maxParagraphs {
		s.paragraphs = s.paragraphs[len(s.paragraphs)-maxParagraphs:]
	}
	s.refresh()
}

// MeterWidth implements display.Surface.
func (s *tuiSurface) MeterWidth() int {
	return max(s.width-readoutWidth-1, 1)
}

// DrawBar implements display.Surface.
func (s *tuiSurface) DrawBar(width int, color meter.RGB) {
	s.bar = width
	s.color = color
}

// DrawPeak implements display.Surface.
func (s *tuiSurface) DrawPeak(x int) {
	s.peak = x
}

// SetReadout implements display.Surface.
func (s *tuiSurface) SetReadout(text string) {
	s.readout = text
}

// meterLine renders the bar, the peak marker and the readout.
func (s *tuiSurface) meterLine() string {
	width := s.MeterWidth()
	bar := min(s.bar, width)
	peak := min(s.peak, width-1)

	fill := lipgloss.NewStyle().Foreground(lipgloss.Color(s.color.Hex()))
	filled := func(n int) string { return fill.Render(strings.Repeat("█", max(n, 0))) }
	empty := func(n int) string { return s.styles.Help.Render(strings.Repeat("·", max(n, 0))) }
	marker := s.styles.Marker.Render("▏")

	var line string
	if peak < bar {
		line = filled(peak) + marker + filled(bar-peak-1) + empty(width-bar)
	} else {
		line = filled(bar) + empty(peak-bar) + marker + empty(width-peak-1)
	}
	return line + " " + fmt.Sprintf("%*s", readoutWidth, s.readout)
}
