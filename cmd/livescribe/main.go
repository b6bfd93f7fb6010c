// livescribe transcribes microphone audio live in the terminal.
//
// Audio is captured continuously, cut into fixed-length blocks and passed to
// a speech engine; the running transcript is shown next to an input level
// meter.
//
// Usage:
//
//	livescribe                          # Transcribe the default microphone
//	livescribe --engine openai          # Use the OpenAI transcription API
//	livescribe --input demo --engine stub
//	livescribe --plain > notes.txt      # No TUI; one line per block
//	livescribe devices                  # List input devices
//	livescribe engines                  # List speech engines
//	livescribe config init              # Write the default config file
//
// Configuration is read from os.UserConfigDir()/livescribe/config.yaml.
package main

import (
	"fmt"
	"os"

	"github.com/haivivi/livescribe/cmd/livescribe/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
