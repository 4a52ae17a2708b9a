// Package app wires the terminal, decoder and renderer into the
// interactive session loop
package app

import (
	"fmt"
	"io"
	"os"
	"time"

	"tinyed/pkg/config"
	"tinyed/pkg/editor"
	"tinyed/pkg/key"
	"tinyed/pkg/screen"
	"tinyed/pkg/terminal"
	"tinyed/pkg/trace"
)

// Session tracks one interactive run
type Session struct {
	StartTime  time.Time
	EndTime    *time.Time
	Keystrokes int
	Frames     int
}

// NewSession creates a session starting now
func NewSession() *Session {
	return &Session{
		StartTime: time.Now(),
	}
}

// End marks the session as ended
func (s *Session) End() {
	now := time.Now()
	s.EndTime = &now
}

// Duration returns how long the session ran
func (s *Session) Duration() time.Duration {
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}

	return time.Since(s.StartTime)
}

// Editor owns the interactive loop. The whole session runs on the
// calling goroutine: one byte source, one writer, rendering and input
// strictly interleaved, so no state needs locking.
type Editor struct {
	out      io.Writer
	decoder  *key.Decoder
	renderer *screen.Renderer
	state    editor.State
	recorder trace.Recorder
	session  *Session
	debugLog *os.File
}

// NewEditor creates an editor session over the given writer and byte
// source, sized to the probed extent
func NewEditor(out io.Writer, src key.Source, size terminal.Size, settings config.Settings) *Editor {
	renderer := screen.NewRenderer()
	renderer.Banner = settings.Banner
	renderer.ShowLineNumbers = settings.ShowLineNumbers
	renderer.ShowStatus = settings.ShowStatus

	return &Editor{
		out:      out,
		decoder:  key.NewDecoder(src),
		renderer: renderer,
		state:    editor.NewState(size),
		recorder: trace.NewRingRecorder(settings.TraceSize),
		session:  NewSession(),
	}
}

// SetDebugLog attaches an already opened debug log file. A nil file
// disables debug logging.
func (e *Editor) SetDebugLog(f *os.File) {
	e.debugLog = f
}

// Session returns the session bookkeeping
func (e *Editor) Session() *Session {
	return e.session
}

// Recorder returns the key-event recorder
func (e *Editor) Recorder() trace.Recorder {
	return e.recorder
}

// State returns the current editor state
func (e *Editor) State() editor.State {
	return e.state
}

// Run drives the session until the user quits: draw a frame, flush it
// in one write, wait for a keypress, dispatch it. Quit keys clear the
// screen before returning so the shell comes back to a blank terminal.
func (e *Editor) Run() error {
	defer e.session.End()

	e.logDebug("session started, extent %dx%d", e.state.Cols, e.state.Rows)

	for {
		frame := e.renderer.Render(e.state)
		if _, err := e.out.Write(frame); err != nil {
			return fmt.Errorf("failed to write frame: %w", err)
		}
		e.session.Frames++

		ev, err := e.decoder.Next()
		if err != nil {
			return fmt.Errorf("failed to read key: %w", err)
		}

		e.session.Keystrokes++
		e.recorder.Record(trace.NewEntry(ev))
		e.logDebug("key %s code=%d", ev.Label(), ev.Code())

		if isQuit(ev) {
			e.logDebug("quit on %s", ev.Label())
			if _, err := e.out.Write(screen.ClearScreen()); err != nil {
				return fmt.Errorf("failed to clear screen: %w", err)
			}
			return nil
		}

		e.apply(ev)
	}
}

// isQuit reports whether an event ends the session: the letter q or
// the Escape key on its own
func isQuit(ev key.Event) bool {
	if ev.Kind == key.KindPrintable && ev.Byte == 'q' {
		return true
	}

	return ev.Kind == key.KindNamed && ev.Key == key.Escape
}

// apply dispatches one event against the editor state. Only named
// navigation keys move the cursor; printable and control bytes are
// recorded but change nothing.
func (e *Editor) apply(ev key.Event) {
	if ev.Kind != key.KindNamed {
		return
	}

	e.state = editor.Move(e.state, ev.Key)
}

// logDebug writes a line to the debug log file when one is attached
func (e *Editor) logDebug(format string, args ...interface{}) {
	if e.debugLog == nil {
		return
	}

	msg := fmt.Sprintf(format, args...)
	timestamp := time.Now().Format("15:04:05.000")
	fmt.Fprintf(e.debugLog, "[%s] %s\n", timestamp, msg)
	e.debugLog.Sync()
}
