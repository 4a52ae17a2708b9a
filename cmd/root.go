package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tinyed/pkg/app"
	"tinyed/pkg/config"
	"tinyed/pkg/trace"
)

var (
	// Root command flags
	verbose     bool
	lineNumbers bool
	statusBar   bool
	banner      string
	debugLog    string
	traceFile   string
	traceFormat string

	// Root command
	rootCmd = &cobra.Command{
		Use:   "tinyed",
		Short: "A tiny raw-mode terminal editor",
		Long: `tinyed is a tiny raw-mode terminal editor shell.

Running it without a subcommand switches the terminal into raw mode,
draws the editor frame and moves the cursor with the arrow keys,
Home, End, PageUp and PageDown. Press q or Escape to quit; the
terminal attributes are restored on every way out.`,
		Version:           "0.0.1",
		Run:               runEditor,
		DisableAutoGenTag: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Editor flags, defaulting to the stock settings
	defaults := config.DefaultSettings()
	rootCmd.Flags().BoolVar(&lineNumbers, "line-numbers", defaults.ShowLineNumbers, "show line numbers in the left margin")
	rootCmd.Flags().BoolVar(&statusBar, "status", defaults.ShowStatus, "show the status bar")
	rootCmd.Flags().StringVar(&banner, "banner", defaults.Banner, "welcome banner text")
	rootCmd.Flags().StringVar(&debugLog, "debug-log", "", "write a session debug log to this file")
	rootCmd.Flags().StringVar(&traceFile, "trace-file", "", "save the key trace to this file on exit")
	rootCmd.Flags().StringVar(&traceFormat, "trace-format", "plain", "trace file format (plain, timestamped, json)")

	// Add subcommands
	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(configCmd)
}

// initConfig reads in config file and ENV variables if set
func initConfig() {
	// Can be extended in the future for global configuration
}

// runEditor is the main entry point for the editor
func runEditor(cmd *cobra.Command, args []string) {
	format, err := trace.ParseFormat(traceFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	settings := config.DefaultSettings()
	settings.ShowLineNumbers = lineNumbers
	settings.ShowStatus = statusBar
	settings.Banner = banner
	settings.DebugLog = debugLog

	opts := app.Options{
		Settings:    settings,
		TraceFile:   traceFile,
		TraceFormat: format,
		Verbose:     verbose,
	}

	if err := app.Run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
