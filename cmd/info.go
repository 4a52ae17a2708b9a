package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"tinyed/pkg/terminal"
)

var (
	// Info command flags
	infoFormat string
	infoProbe  bool
)

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show terminal environment information",
	Long: `Show what the editor can learn about the current terminal.

Reports whether standard input is a terminal, the TERM environment
variable and the window size as reported by the kernel. With --probe
the cursor-position fallback measurement is exercised as well, which
briefly switches the terminal into raw mode.`,
	Run: runInfo,
}

func init() {
	infoCmd.Flags().StringVarP(&infoFormat, "format", "f", "table", "output format (table, json)")
	infoCmd.Flags().BoolVar(&infoProbe, "probe", false, "measure the window with the cursor-position fallback")
}

// terminalReport describes the environment as seen by the editor
type terminalReport struct {
	IsTerminal bool   `json:"is_terminal"`
	Term       string `json:"term,omitempty"`
	Rows       int    `json:"rows,omitempty"`
	Cols       int    `json:"cols,omitempty"`
	SizeError  string `json:"size_error,omitempty"`
	ProbeRows  int    `json:"probe_rows,omitempty"`
	ProbeCols  int    `json:"probe_cols,omitempty"`
	ProbeError string `json:"probe_error,omitempty"`
}

func runInfo(cmd *cobra.Command, args []string) {
	report := collectInfo()

	switch infoFormat {
	case "json":
		printInfoJSON(report)
	default:
		printInfoTable(report)
	}
}

func collectInfo() terminalReport {
	report := terminalReport{Term: os.Getenv("TERM")}

	term, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return report
	}
	report.IsTerminal = true

	size, err := term.WindowSize()
	if err != nil {
		report.SizeError = err.Error()
	} else {
		report.Rows = size.Rows
		report.Cols = size.Cols
	}

	if infoProbe {
		probed, err := probeSize(term)
		if err != nil {
			report.ProbeError = err.Error()
		} else {
			report.ProbeRows = probed.Rows
			report.ProbeCols = probed.Cols
		}
	}

	return report
}

// probeSize runs the cursor-position measurement, which only works
// with the terminal in raw mode
func probeSize(term *terminal.Terminal) (terminal.Size, error) {
	if err := term.EnterRawMode(); err != nil {
		return terminal.Size{}, err
	}
	defer term.Restore()

	return term.ProbeCursorSize()
}

func printInfoTable(report terminalReport) {
	fmt.Println("Terminal Environment")
	fmt.Println("====================")

	if !report.IsTerminal {
		fmt.Println("Terminal:  no")
		if report.Term != "" {
			fmt.Printf("TERM:      %s\n", report.Term)
		}
		fmt.Println("\nStandard input is not attached to a terminal.")
		return
	}

	fmt.Println("Terminal:  yes")

	if report.Term != "" {
		fmt.Printf("TERM:      %s\n", report.Term)
	} else {
		fmt.Println("TERM:      (not set)")
	}

	if report.SizeError != "" {
		fmt.Printf("Size:      unavailable (%s)\n", report.SizeError)
	} else {
		fmt.Printf("Size:      %d rows, %d cols\n", report.Rows, report.Cols)
	}

	if infoProbe {
		if report.ProbeError != "" {
			fmt.Printf("Probe:     unavailable (%s)\n", report.ProbeError)
		} else {
			fmt.Printf("Probe:     %d rows, %d cols\n", report.ProbeRows, report.ProbeCols)
		}
	}
}

func printInfoJSON(report terminalReport) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(string(data))
}
