package app

import (
	"fmt"
	"os"
	"time"

	"tinyed/pkg/config"
	"tinyed/pkg/key"
	"tinyed/pkg/terminal"
	"tinyed/pkg/trace"
)

// Options contains runtime options for an interactive session
type Options struct {
	Settings    config.Settings
	TraceFile   string
	TraceFormat trace.Format
	Verbose     bool
}

// restoredMessage is printed once the terminal attributes are back
const restoredMessage = "Terminal restored to standard mode."

// Run starts an editor session on the real terminal and blocks until
// the user quits. The attribute snapshot is restored on every path
// out, and a restore failure is reported even when the session itself
// ended cleanly.
func Run(opts Options) (err error) {
	if err := opts.Settings.Validate(); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	term, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	var debugLog *os.File
	if opts.Settings.DebugLog != "" {
		// Best effort: an unwritable log must not take the editor down
		debugLog, _ = os.Create(opts.Settings.DebugLog)
		if debugLog != nil {
			defer debugLog.Close()
		}
	}

	if err := term.EnterRawMode(); err != nil {
		return err
	}
	defer func() {
		if rerr := term.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	size, err := term.WindowSize()
	if err != nil {
		return err
	}

	ed := NewEditor(term, term, size, opts.Settings)
	ed.SetDebugLog(debugLog)

	if err := ed.Run(); err != nil {
		return err
	}

	if opts.TraceFile != "" {
		if err := ed.Recorder().SaveToFile(opts.TraceFile, opts.TraceFormat); err != nil {
			return fmt.Errorf("failed to save trace: %w", err)
		}
	}

	if err := term.Restore(); err != nil {
		return err
	}

	fmt.Println(restoredMessage)

	if opts.Verbose {
		printSessionSummary(ed.Session())
	}

	return nil
}

// printSessionSummary prints a short report of the ended session
func printSessionSummary(s *Session) {
	fmt.Printf("\n=== Session Summary ===\n")
	fmt.Printf("Duration: %v\n", s.Duration().Round(time.Millisecond))
	fmt.Printf("Keystrokes: %d\n", s.Keystrokes)
	fmt.Printf("Frames: %d\n", s.Frames)
	fmt.Printf("=====================\n")
}

// InspectorOptions contains runtime options for the key inspector
type InspectorOptions struct {
	TraceSize int
	SaveFile  string
	Format    trace.Format
}

// RunInspector switches the terminal into raw mode and echoes every
// decoded keypress as `code (representation)` until the letter q is
// pressed. Escape sequences are resolved before printing, so an arrow
// key shows up as one line, not three.
func RunInspector(opts InspectorOptions) (err error) {
	term, err := terminal.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	if err := term.EnterRawMode(); err != nil {
		return err
	}
	defer func() {
		if rerr := term.Restore(); rerr != nil && err == nil {
			err = rerr
		}
	}()

	fmt.Fprintf(term, "Terminal raw mode enabled. Press 'q' to quit.\r\n")
	fmt.Fprintf(term, "Keys are shown as: code (representation)\r\n")
	fmt.Fprintf(term, "------------------------------------\r\n")

	recorder := trace.NewRingRecorder(opts.TraceSize)
	decoder := key.NewDecoder(term)

	for {
		ev, err := decoder.Next()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}

		recorder.Record(trace.NewEntry(ev))
		fmt.Fprintf(term, "%d (%s)\r\n", ev.Code(), ev.Label())

		if ev.Kind == key.KindPrintable && ev.Byte == 'q' {
			break
		}
	}

	if err := term.Restore(); err != nil {
		return err
	}

	fmt.Println(restoredMessage)

	if opts.SaveFile != "" {
		if err := recorder.SaveToFile(opts.SaveFile, opts.Format); err != nil {
			return fmt.Errorf("failed to save trace: %w", err)
		}
		fmt.Printf("Trace saved to %s (%d entries)\n", opts.SaveFile, recorder.Len())
	}

	return nil
}
