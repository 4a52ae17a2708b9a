// Package editor holds the cursor state and its movement rules
package editor

import (
	"fmt"

	"tinyed/pkg/key"
	"tinyed/pkg/terminal"
)

// State is the complete editor state: the cursor position and the
// extent it lives in. Coordinates are zero-based, the visible extent
// is [0,Cols) by [0,Rows).
type State struct {
	CursorX int
	CursorY int
	Rows    int
	Cols    int
}

// NewState creates a state with the cursor at the origin
func NewState(size terminal.Size) State {
	return State{Rows: size.Rows, Cols: size.Cols}
}

// Size returns the extent the state occupies
func (s State) Size() terminal.Size {
	return terminal.Size{Rows: s.Rows, Cols: s.Cols}
}

// Validate checks that the extent is usable and the cursor within it
func (s State) Validate() error {
	if err := s.Size().Validate(); err != nil {
		return err
	}

	if s.CursorX < 0 || s.CursorX >= s.Cols {
		return fmt.Errorf("cursor x must be in [0,%d), got: %d", s.Cols, s.CursorX)
	}

	if s.CursorY < 0 || s.CursorY >= s.Rows {
		return fmt.Errorf("cursor y must be in [0,%d), got: %d", s.Rows, s.CursorY)
	}

	return nil
}

// Move applies one navigation key and returns the new state. The
// result is always clamped into the extent, so any input position,
// even one outside the extent, maps to a valid state.
func Move(st State, k key.Key) State {
	switch k {
	case key.Up:
		st.CursorY--
	case key.Down:
		st.CursorY++
	case key.Left:
		st.CursorX--
	case key.Right:
		st.CursorX++
	case key.Home:
		st.CursorX = 0
	case key.End:
		st.CursorX = st.Cols - 1
	case key.PageUp:
		st.CursorY = 0
	case key.PageDown:
		st.CursorY = st.Rows - 1
	}

	return clamp(st)
}

// clamp forces the cursor into [0,Cols) by [0,Rows). The lower bound
// wins last so a degenerate extent still yields the origin.
func clamp(st State) State {
	if st.CursorX > st.Cols-1 {
		st.CursorX = st.Cols - 1
	}
	if st.CursorX < 0 {
		st.CursorX = 0
	}
	if st.CursorY > st.Rows-1 {
		st.CursorY = st.Rows - 1
	}
	if st.CursorY < 0 {
		st.CursorY = 0
	}
	return st
}
