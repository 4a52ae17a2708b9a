package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tinyed/pkg/app"
	"tinyed/pkg/trace"
)

var (
	// Keys command flags
	keysSave      string
	keysFormat    string
	keysTraceSize int
)

// keysCmd represents the keys command
var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Inspect raw keyboard input",
	Long: `Switch the terminal into raw mode and print every decoded keypress.

Each key is shown as its byte code and a readable label. Escape
sequences are decoded first, so an arrow key prints as one event
instead of three bytes. Press q to quit.

Examples:
  # Watch keypresses until q is pressed
  tinyed keys

  # Keep the last 64 events and save them as JSON on exit
  tinyed keys --trace-size 64 --save keys.json --format json`,
	Aliases: []string{"inspect"},
	Run:     runKeys,
}

func init() {
	keysCmd.Flags().StringVarP(&keysSave, "save", "s", "", "save the recorded trace to this file on exit")
	keysCmd.Flags().StringVarP(&keysFormat, "format", "f", "plain", "trace file format (plain, timestamped, json)")
	keysCmd.Flags().IntVar(&keysTraceSize, "trace-size", trace.DefaultCapacity, "number of events to keep")
}

func runKeys(cmd *cobra.Command, args []string) {
	format, err := trace.ParseFormat(keysFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	opts := app.InspectorOptions{
		TraceSize: keysTraceSize,
		SaveFile:  keysSave,
		Format:    format,
	}

	if err := app.RunInspector(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
