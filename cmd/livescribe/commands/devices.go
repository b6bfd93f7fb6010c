package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/haivivi/livescribe/pkg/audio/portaudio"
	"github.com/haivivi/livescribe/pkg/cli"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List audio input devices",
	Long: `List the audio input devices PortAudio can open.

Pass the INDEX to 'livescribe --device' to capture from a specific device.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("output")
		if err := portaudio.Initialize(); err != nil {
			return fmt.Errorf("portaudio: %w", err)
		}
		defer portaudio.Terminate()

		devices, err := portaudio.InputDevices()
		if err != nil {
			return fmt.Errorf("list devices: %w", err)
		}
		return cli.Output(cmd.OutOrStdout(), newDeviceTable(devices), cli.OutputFormat(format))
	},
}

func init() {
	devicesCmd.Flags().StringP("output", "o", "table", "output format: table, yaml, json")
	rootCmd.AddCommand(devicesCmd)
}

type deviceRow struct {
	Index      int     `json:"index" yaml:"index"`
	Name       string  `json:"name" yaml:"name"`
	Channels   int     `json:"channels" yaml:"channels"`
	SampleRate float64 `json:"sample_rate" yaml:"sample_rate"`
	Default    bool    `json:"default" yaml:"default"`
}

type deviceTable []deviceRow

func newDeviceTable(devices []portaudio.DeviceInfo) deviceTable {
	t := make(deviceTable, len(devices))
	for i, d := range devices {
		t[i] = deviceRow{
			Index:      d.Index,
			Name:       d.Name,
			Channels:   d.MaxInputChannels,
			SampleRate: d.DefaultSampleRate,
			Default:    d.IsDefaultInput,
		}
	}
	return t
}

func (t deviceTable) Header() []string {
	return []string{"INDEX", "NAME", "CHANNELS", "RATE", "DEFAULT"}
}

func (t deviceTable) Rows() [][]string {
	rows := make([][]string, len(t))
	for i, d := range t {
		def := ""
		if d.Default {
			def = "*"
		}
		rows[i] = []string{
			strconv.Itoa(d.Index),
			d.Name,
			strconv.Itoa(d.Channels),
			strconv.FormatFloat(d.SampleRate, 'f', -1, 64),
			def,
		}
	}
	return rows
}
