package screen

import (
	"bytes"
	"fmt"

	"tinyed/pkg/editor"
)

// DefaultBanner is the welcome text shown on the first row
const DefaultBanner = "Tiny Editor -- version 0.0.1"

// Renderer composes complete frames from editor state. A frame always
// repaints every row, so no stale content can survive; per-row
// clear-to-EOL replaces a whole-screen clear to avoid flicker.
type Renderer struct {
	Banner          string
	ShowLineNumbers bool
	ShowStatus      bool
}

// NewRenderer creates a renderer with the stock banner and all
// decorations enabled
func NewRenderer() *Renderer {
	return &Renderer{
		Banner:          DefaultBanner,
		ShowLineNumbers: true,
		ShowStatus:      true,
	}
}

// Render builds one frame for the given state. The returned buffer is
// the whole frame: the caller flushes it with a single write so the
// terminal never shows a half-painted screen. Bracketed by hide/show
// cursor to keep the repaint invisible.
func (r *Renderer) Render(st editor.State) []byte {
	var buf bytes.Buffer

	buf.Write(HideCursor)
	buf.Write(CursorHome)

	for y := 0; y < st.Rows; y++ {
		if r.ShowLineNumbers {
			fmt.Fprintf(&buf, "%d ", y+1)
		}

		if y == 0 {
			r.writeBanner(&buf, st.Cols)
		} else {
			buf.WriteByte('~')
		}

		buf.Write(ClearLine)
		if y < st.Rows-1 {
			buf.WriteString("\r\n")
		}
	}

	if r.ShowStatus {
		r.writeStatus(&buf, st)
	}

	buf.Write(CursorTo(st.CursorY+1, st.CursorX+1))
	buf.Write(ShowCursor)

	return buf.Bytes()
}

// writeBanner centers the banner on the row, clipped to the column
// count. The first padding column keeps the ~ marker so the banner row
// still reads as an empty-buffer row.
func (r *Renderer) writeBanner(buf *bytes.Buffer, cols int) {
	banner := r.Banner
	if len(banner) > cols {
		banner = banner[:cols]
	}

	padding := (cols - len(banner)) / 2
	if padding > 0 {
		buf.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		buf.WriteByte(' ')
	}

	buf.WriteString(banner)
}

// writeStatus paints the reverse-video position report on the row
// above the last, reached with far-right plus up-one rather than
// absolute addressing.
func (r *Renderer) writeStatus(buf *bytes.Buffer, st editor.State) {
	status := fmt.Sprintf("[Cursor: %d,%d] [Size: %d×%d]",
		st.CursorY+1, st.CursorX+1, st.Cols, st.Rows)
	if len(status) > st.Cols {
		status = status[:st.Cols]
	}

	buf.Write(CursorFarRight)
	buf.Write(CursorUpOne)
	buf.Write(ReverseOn)
	buf.WriteString(status)
	buf.Write(ReverseOff)
}
