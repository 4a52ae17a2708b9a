package terminal

import (
	"fmt"

	"golang.org/x/sys/unix"
)

var (
	cursorToCorner = []byte("\x1b[999C\x1b[999B")
	cursorReport   = []byte("\x1b[6n")
)

// reportBufSize bounds the cursor-report read; a well-formed reply is
// under 16 bytes.
const reportBufSize = 32

// WindowSize determines the terminal extent. It asks the kernel first
// and falls back to the cursor-position probe when the ioctl is
// unavailable or reports zero columns. Failure of both paths is an
// environment error: without an extent nothing can be rendered.
func (t *Terminal) WindowSize() (Size, error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err == nil && ws.Col > 0 {
		return Size{Rows: int(ws.Row), Cols: int(ws.Col)}, nil
	}

	size, err := t.ProbeCursorSize()
	if err != nil {
		return Size{}, envErr("window size", err)
	}
	return size, nil
}

// ProbeCursorSize learns the extent without the kernel's help: it moves
// the cursor far past the bottom-right corner (the terminal clamps it to
// the real last cell) and asks the terminal to report the resulting
// position. Requires raw mode, since the reply arrives on the input
// stream. Any malformed reply is a parse error, not a silent default.
func (t *Terminal) ProbeCursorSize() (Size, error) {
	if _, err := t.out.Write(cursorToCorner); err != nil {
		return Size{}, err
	}
	if _, err := t.out.Write(cursorReport); err != nil {
		return Size{}, err
	}

	var buf [reportBufSize]byte
	n := 0
	for n < len(buf)-1 {
		b, ok, err := t.ReadByte()
		if err != nil {
			return Size{}, err
		}
		if !ok || b == 'R' {
			break
		}
		buf[n] = b
		n++
	}

	return parseCursorReport(buf[:n])
}

// parseCursorReport parses a position reply of the form ESC [ rows ; cols
// with the trailing R already consumed.
func parseCursorReport(reply []byte) (Size, error) {
	if len(reply) < 2 || reply[0] != 0x1b || reply[1] != '[' {
		return Size{}, fmt.Errorf("malformed cursor report %q", reply)
	}

	var size Size
	if _, err := fmt.Sscanf(string(reply[2:]), "%d;%d", &size.Rows, &size.Cols); err != nil {
		return Size{}, fmt.Errorf("malformed cursor report %q: %w", reply, err)
	}

	if err := size.Validate(); err != nil {
		return Size{}, fmt.Errorf("cursor report out of range: %w", err)
	}

	return size, nil
}
