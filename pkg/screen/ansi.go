// Package screen builds full terminal frames as single byte buffers
package screen

import "fmt"

// Escape sequences the renderer emits. Kept as byte slices so frames
// are assembled without per-frame conversions.
var (
	HideCursor     = []byte("\x1b[?25l")
	ShowCursor     = []byte("\x1b[?25h")
	CursorHome     = []byte("\x1b[H")
	ClearAll       = []byte("\x1b[2J")
	ClearLine      = []byte("\x1b[K")
	ReverseOn      = []byte("\x1b[7m")
	ReverseOff     = []byte("\x1b[m")
	CursorFarRight = []byte("\x1b[999C")
	CursorUpOne    = []byte("\x1b[1A")
)

// CursorTo builds an absolute cursor placement for a 1-based row and
// column.
func CursorTo(row, col int) []byte {
	return []byte(fmt.Sprintf("\x1b[%d;%dH", row, col))
}

// ClearScreen builds the wipe used on exit: erase everything and park
// the cursor at the top-left corner.
func ClearScreen() []byte {
	out := make([]byte, 0, len(ClearAll)+len(CursorHome))
	out = append(out, ClearAll...)
	out = append(out, CursorHome...)
	return out
}
