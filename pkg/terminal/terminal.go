// Package terminal provides raw-mode control of the controlling TTY
package terminal

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Size represents the terminal extent in character cells
type Size struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// Validate checks if the size is usable for rendering
func (s Size) Validate() error {
	if s.Rows <= 0 {
		return fmt.Errorf("rows must be positive, got: %d", s.Rows)
	}

	if s.Cols <= 0 {
		return fmt.Errorf("cols must be positive, got: %d", s.Cols)
	}

	return nil
}

// EnvError represents an unrecoverable terminal environment failure:
// the device cannot report or accept attributes, or no usable size can
// be determined. Callers are expected to stop, not retry.
type EnvError struct {
	Op  string
	Err error
}

// Error implements the error interface
func (e *EnvError) Error() string {
	return fmt.Sprintf("terminal %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause
func (e *EnvError) Unwrap() error {
	return e.Err
}

func envErr(op string, err error) *EnvError {
	return &EnvError{Op: op, Err: err}
}

// Terminal owns the TTY handles and the saved attribute snapshot.
// The snapshot captured by EnterRawMode is never mutated; Restore
// reapplies it verbatim.
type Terminal struct {
	in   *os.File
	out  *os.File
	orig *unix.Termios
	raw  bool
}

// Open wraps the given input/output pair. The input must be a terminal;
// anything else cannot be switched into raw mode.
func Open(in, out *os.File) (*Terminal, error) {
	if !term.IsTerminal(int(in.Fd())) {
		return nil, envErr("open", fmt.Errorf("%s is not a terminal", in.Name()))
	}

	return &Terminal{in: in, out: out}, nil
}

// rawAttributes computes the raw-mode variant of the captured attributes:
// no break interrupt, no CR to NL translation, no parity checking, no
// 8th-bit stripping, no output flow control, no output post-processing,
// 8-bit characters, no echo, no canonical buffering, no extended input
// processing, no signal characters. VMIN=0 with VTIME=1 makes a read
// return as soon as one byte arrives or after 100ms with nothing.
func rawAttributes(orig unix.Termios) unix.Termios {
	raw := orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	return raw
}

// EnterRawMode captures the current attributes and applies the raw set.
// Calling it twice without an intervening Restore is an error.
func (t *Terminal) EnterRawMode() error {
	if t.raw {
		return fmt.Errorf("raw mode already active")
	}

	orig, err := unix.IoctlGetTermios(int(t.in.Fd()), ioctlReadTermios)
	if err != nil {
		return envErr("get attributes", err)
	}
	t.orig = orig

	raw := rawAttributes(*orig)
	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlWriteTermios, &raw); err != nil {
		return envErr("set attributes", err)
	}

	t.raw = true
	return nil
}

// Restore reapplies the attribute snapshot captured by EnterRawMode.
// A no-op when raw mode was never entered, so it is safe to defer
// unconditionally. A failure here must be surfaced: swallowing it would
// leave the user's shell in raw mode.
func (t *Terminal) Restore() error {
	if !t.raw {
		return nil
	}

	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlWriteTermios, t.orig); err != nil {
		return envErr("restore attributes", err)
	}

	t.raw = false
	return nil
}

// IsRaw returns whether raw mode is currently active
func (t *Terminal) IsRaw() bool {
	return t.raw
}

// ReadByte reads a single byte under the raw-mode timing: it returns
// ok=false with a nil error when the 100ms window passes with no input.
// Interrupted reads are retried; real failures are returned.
func (t *Terminal) ReadByte() (byte, bool, error) {
	var buf [1]byte
	for {
		n, err := unix.Read(int(t.in.Fd()), buf[:])
		if n == 1 {
			return buf[0], true, nil
		}
		if err == nil || err == unix.EAGAIN {
			return 0, false, nil
		}
		if err == unix.EINTR {
			continue
		}
		return 0, false, err
	}
}

// Write sends a fully composed frame to the terminal in one call
func (t *Terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}
