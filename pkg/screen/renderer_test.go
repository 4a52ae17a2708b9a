package screen

import (
	"bytes"
	"strings"
	"testing"

	"tinyed/pkg/editor"
)

func TestRenderer_Render_Frame(t *testing.T) {
	r := NewRenderer()
	st := editor.State{Rows: 3, Cols: 12}

	want := "\x1b[?25l\x1b[H" +
		"1 Tiny Editor \x1b[K\r\n" +
		"2 ~\x1b[K\r\n" +
		"3 ~\x1b[K" +
		"\x1b[999C\x1b[1A" +
		"\x1b[7m[Cursor: 1,1\x1b[m" +
		"\x1b[1;1H" +
		"\x1b[?25h"

	got := r.Render(st)
	if string(got) != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderer_Render_CursorBracketing(t *testing.T) {
	r := NewRenderer()
	frame := r.Render(editor.State{Rows: 24, Cols: 80})

	if !bytes.HasPrefix(frame, HideCursor) {
		t.Error("frame must start by hiding the cursor")
	}
	if !bytes.HasSuffix(frame, ShowCursor) {
		t.Error("frame must end by showing the cursor")
	}
	if bytes.Count(frame, HideCursor) != 1 || bytes.Count(frame, ShowCursor) != 1 {
		t.Error("cursor visibility must toggle exactly once per frame")
	}
}

func TestRenderer_Render_RowStructure(t *testing.T) {
	r := NewRenderer()
	st := editor.State{Rows: 24, Cols: 80}
	frame := r.Render(st)

	if got := bytes.Count(frame, []byte("\r\n")); got != st.Rows-1 {
		t.Errorf("frame has %d row separators, want %d", got, st.Rows-1)
	}
	if got := bytes.Count(frame, ClearLine); got != st.Rows {
		t.Errorf("frame clears %d line tails, want %d", got, st.Rows)
	}
	if bytes.Contains(frame, ClearAll) {
		t.Error("a repaint must not clear the whole screen")
	}
}

func TestRenderer_Render_BannerCentered(t *testing.T) {
	r := NewRenderer()
	frame := r.Render(editor.State{Rows: 24, Cols: 80})

	padding := (80 - len(DefaultBanner)) / 2
	want := "1 ~" + strings.Repeat(" ", padding-1) + DefaultBanner
	if !bytes.Contains(frame, []byte(want)) {
		t.Errorf("frame does not contain centered banner row %q", want)
	}
}

func TestRenderer_Render_BannerClipped(t *testing.T) {
	r := NewRenderer()
	frame := r.Render(editor.State{Rows: 5, Cols: 10})

	clipped := DefaultBanner[:10]
	if !bytes.Contains(frame, []byte(clipped)) {
		t.Errorf("frame does not contain clipped banner %q", clipped)
	}
	if bytes.Contains(frame, []byte(DefaultBanner[:11])) {
		t.Error("banner must be clipped to the column count")
	}
}

func TestRenderer_Render_WideBannerClippedToExtent(t *testing.T) {
	r := NewRenderer()
	r.Banner = strings.Repeat("x", 100)
	frame := r.Render(editor.State{Rows: 24, Cols: 80})

	if !bytes.Contains(frame, []byte(strings.Repeat("x", 80))) {
		t.Error("banner row should carry exactly the column count of banner bytes")
	}
	if bytes.Contains(frame, []byte(strings.Repeat("x", 81))) {
		t.Error("banner must not exceed the column count")
	}
}

func TestRenderer_Render_Status(t *testing.T) {
	r := NewRenderer()
	st := editor.State{CursorX: 3, CursorY: 1, Rows: 24, Cols: 80}
	frame := r.Render(st)

	status := "\x1b[7m[Cursor: 2,4] [Size: 80×24]\x1b[m"
	if !bytes.Contains(frame, []byte(status)) {
		t.Errorf("frame does not contain status %q", status)
	}
	if !bytes.Contains(frame, []byte("\x1b[999C\x1b[1A")) {
		t.Error("status must be placed with far-right plus up-one")
	}
}

func TestRenderer_Render_CursorPlacement(t *testing.T) {
	r := NewRenderer()
	st := editor.State{CursorX: 3, CursorY: 1, Rows: 24, Cols: 80}
	frame := r.Render(st)

	if !bytes.Contains(frame, []byte("\x1b[2;4H")) {
		t.Error("frame must place the cursor at the 1-based position")
	}
}

func TestRenderer_Render_Toggles(t *testing.T) {
	r := NewRenderer()
	r.ShowLineNumbers = false
	r.ShowStatus = false
	frame := r.Render(editor.State{Rows: 24, Cols: 80})

	bare := append(append([]byte{}, HideCursor...), CursorHome...)
	bare = append(bare, '~')
	if !bytes.HasPrefix(frame, bare) {
		t.Error("first row should start with ~ when line numbers are off")
	}
	if bytes.Contains(frame, ReverseOn) {
		t.Error("frame should not contain a status bar when disabled")
	}
}

func TestRenderer_Render_CustomBanner(t *testing.T) {
	r := NewRenderer()
	r.Banner = "hello"
	frame := r.Render(editor.State{Rows: 4, Cols: 21})

	// 21 wide, 5 of banner: 8 padding columns, tilde first
	want := "~" + strings.Repeat(" ", 7) + "hello"
	if !bytes.Contains(frame, []byte(want)) {
		t.Errorf("frame does not contain centered custom banner %q", want)
	}
}

func TestCursorTo(t *testing.T) {
	if got := string(CursorTo(1, 1)); got != "\x1b[1;1H" {
		t.Errorf("CursorTo(1,1) = %q, want %q", got, "\x1b[1;1H")
	}
	if got := string(CursorTo(24, 80)); got != "\x1b[24;80H" {
		t.Errorf("CursorTo(24,80) = %q, want %q", got, "\x1b[24;80H")
	}
}

func TestClearScreen(t *testing.T) {
	if got := string(ClearScreen()); got != "\x1b[2J\x1b[H" {
		t.Errorf("ClearScreen() = %q, want %q", got, "\x1b[2J\x1b[H")
	}
}
