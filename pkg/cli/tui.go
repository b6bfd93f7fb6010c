package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the TUI.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
	Text    lipgloss.Color // Body text color
	Marker  lipgloss.Color // Peak marker color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Text:    lipgloss.Color("#e6edf3"),
	Marker:  lipgloss.Color("#ffffff"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
	Text   lipgloss.Style
	Marker lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		Label:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Border: lipgloss.NewStyle().Foreground(t.Primary),
		Help:   lipgloss.NewStyle().Foreground(t.Dim),
		Text:   lipgloss.NewStyle().Foreground(t.Text),
		Marker: lipgloss.NewStyle().Bold(true).Foreground(t.Marker),
	}
}

// Section represents a labeled section with content.
type Section struct {
	Label string
	// Height is the number of content lines. Zero shares the remaining
	// height equally with other zero-height sections.
	Height int
	// Content returns the lines to show for the given content size. When it
	// returns more than height lines, the last ones are shown.
	Content func(width, height int) []string
}

// Frame renders a complete TUI frame with title, sections, and help text.
type Frame struct {
	Styles   Styles
	Title    string
	Status   string
	Sections []Section
	Help     string
}

// ContentWidth returns the usable width inside a frame of the given width.
func ContentWidth(width int) int {
	return max(width-4, 0)
}

// Heights returns the content height of each section in a frame of the
// given height.
func (f Frame) Heights(height int) []int {
	heights := make([]int, len(f.Sections))
	// Chrome: top, title, empty, one label per section, bottom, help.
	avail := height - 5 - len(f.Sections)
	flexible := 0
	for i, sec := range f.Sections {
		if sec.Height > 0 {
			heights[i] = sec.Height
			avail -= sec.Height
		} else {
			flexible++
		}
	}
	if flexible > 0 {
		share := max(avail/flexible, 2)
		for i := range heights {
			if heights[i] == 0 {
				heights[i] = share
			}
		}
	}
	return heights
}

// Render renders the frame to a string.
func (f Frame) Render(width, height int) string {
	if width == 0 || height == 0 {
		return "Loading..."
	}

	bc := f.Styles.Border
	maxContentWidth := ContentWidth(width)

	var lines []string

	lines = append(lines, bc.Render("╭"+strings.Repeat("─", width-2)+"╮"))

	// │ title [status]    │
	title := f.Styles.Title.Render(f.Title)
	status := f.Styles.Help.Render("[" + f.Status + "]")
	padding := max(0, width-5-lipgloss.Width(title)-lipgloss.Width(status))
	titleLine := bc.Render("│") + " " + title + " " + status +
		strings.Repeat(" ", padding) + " " + bc.Render("│")
	lines = append(lines, titleLine)

	emptyLine := bc.Render("│") + strings.Repeat(" ", width-2) + bc.Render("│")
	lines = append(lines, emptyLine)

	for i, h := range f.Heights(height) {
		sec := f.Sections[i]
		lines = append(lines, f.renderSection(bc, sec.Label, sec.Content(maxContentWidth, h), h, width, maxContentWidth)...)
	}

	lines = append(lines, bc.Render("╰"+strings.Repeat("─", width-2)+"╯"))
	lines = append(lines, f.Styles.Help.Render(f.Help))

	return strings.Join(lines, "\n")
}

// renderSection renders a single section with embedded label.
func (f Frame) renderSection(bc lipgloss.Style, label string, content []string, height, width, maxContentWidth int) []string {
	var lines []string

	// ├─Label────────┤
	labelText := f.Styles.Label.Render(label)
	padding := max(0, width-3-lipgloss.Width(labelText))
	labelSep := bc.Render("├") + bc.Render("─") + labelText +
		bc.Render(strings.Repeat("─", padding)) + bc.Render("┤")
	lines = append(lines, labelSep)

	startIdx := max(len(content)-height, 0)
	for i := 0; i < height; i++ {
		text := ""
		if idx := startIdx + i; idx < len(content) {
			text = content[idx]
		}
		if maxContentWidth > 1 && lipgloss.Width(text) > maxContentWidth {
			text = truncateString(text, maxContentWidth-1) + "…"
		}
		line := bc.Render("│") + " " + text +
			strings.Repeat(" ", max(0, maxContentWidth-lipgloss.Width(text))) + " " + bc.Render("│")
		lines = append(lines, line)
	}

	return lines
}

// CenterWrap word-wraps text to width and centres each line.
func CenterWrap(style lipgloss.Style, text string, width int) string {
	if width <= 0 {
		return style.Render(text)
	}
	return style.Width(width).Align(lipgloss.Center).Render(text)
}

// truncateString safely truncates a string to the given width,
// handling multi-byte characters correctly.
func truncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	currentWidth := 0
	for i, r := range runes {
		w := lipgloss.Width(string(r))
		if currentWidth+w > width {
			return string(runes[:i])
		}
		currentWidth += w
	}
	return s
}
