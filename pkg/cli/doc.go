// Package cli provides shared pieces for livescribe's command-line interface.
//
// This package includes:
//   - Directory layout for config and model files (Paths)
//   - Output formatting for listings (YAML, JSON, table)
//   - Terminal frame rendering with lipgloss (Frame, Section, Styles)
//   - A log sink for showing slog output inside a TUI (LogWriter)
//
// Example usage:
//
//	paths, err := cli.NewPaths("livescribe")
//	cfgFile := paths.ConfigFile()
//
//	cli.Output(os.Stdout, devices, cli.FormatTable)
package cli
