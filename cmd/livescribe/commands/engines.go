package commands

import (
	"github.com/spf13/cobra"

	"github.com/haivivi/livescribe/pkg/cli"
	"github.com/haivivi/livescribe/pkg/speech"
)

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List speech engines",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")
		return cli.Output(cmd.OutOrStdout(), engineList(), cli.OutputFormat(format))
	},
}

func init() {
	enginesCmd.Flags().StringP("output", "o", "table", "output format: table, yaml, json")
	rootCmd.AddCommand(enginesCmd)
}

type engineRow struct {
	Name        string `json:"name" yaml:"name"`
	Available   bool   `json:"available" yaml:"available"`
	Description string `json:"description" yaml:"description"`
}

type engineTable []engineRow

var engineDescriptions = map[string]string{
	"whisper": "local whisper.cpp inference",
	"openai":  "OpenAI audio transcriptions API",
	"gemini":  "Google Gemini multimodal model",
	"stub":    "placeholder text, no inference",
}

func engineList() engineTable {
	names := speech.Names()
	t := make(engineTable, len(names))
	for i, name := range names {
		t[i] = engineRow{
			Name:        name,
			Available:   name != "whisper" || speech.NativeAvailable(),
			Description: engineDescriptions[name],
		}
	}
	return t
}

func (t engineTable) Header() []string {
	return []string{"NAME", "AVAILABLE", "DESCRIPTION"}
}

func (t engineTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, e := range t {
		avail := "yes"
		if !e.Available {
			avail = "no (build with -tags whispercpp)"
		}
		rows[i] = []string{e.Name, avail, e.Description}
	}
	return rows
}
