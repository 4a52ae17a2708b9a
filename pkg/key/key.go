// Package key decodes raw terminal bytes into editor key events
package key

import "fmt"

// Key represents a named navigation key
type Key int

const (
	Up Key = iota
	Down
	Left
	Right
	Home
	End
	PageUp
	PageDown
	Delete
	Escape
)

// String returns the string representation of Key
func (k Key) String() string {
	switch k {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	case Home:
		return "Home"
	case End:
		return "End"
	case PageUp:
		return "PageUp"
	case PageDown:
		return "PageDown"
	case Delete:
		return "Delete"
	case Escape:
		return "Escape"
	default:
		return "unknown"
	}
}

// Kind represents the category of a decoded event
type Kind int

const (
	KindPrintable Kind = iota
	KindControl
	KindNamed
)

// String returns the string representation of Kind
func (k Kind) String() string {
	switch k {
	case KindPrintable:
		return "printable"
	case KindControl:
		return "control"
	case KindNamed:
		return "named"
	default:
		return "unknown"
	}
}

// Event is one decoded keypress. Exactly one of Byte or Key is
// meaningful, selected by Kind: Byte for printable and control events,
// Key for named ones.
type Event struct {
	Kind Kind
	Byte byte
	Key  Key
}

// Printable builds an event for a regular character byte
func Printable(b byte) Event {
	return Event{Kind: KindPrintable, Byte: b}
}

// Control builds an event for a control byte
func Control(b byte) Event {
	return Event{Kind: KindControl, Byte: b}
}

// Named builds an event for a navigation key
func Named(k Key) Event {
	return Event{Kind: KindNamed, Key: k}
}

// IsControl reports whether a byte is a control character: anything
// below 0x20, or DEL (0x7F).
func IsControl(b byte) bool {
	return b < 0x20 || b == 0x7F
}

// Classify turns a single non-escape byte into its event
func Classify(b byte) Event {
	if IsControl(b) {
		return Control(b)
	}
	return Printable(b)
}

// Label renders the event for display: 'q' for printables, ^X caret
// notation for control bytes, the key name for named keys.
func (e Event) Label() string {
	switch e.Kind {
	case KindPrintable:
		return fmt.Sprintf("'%c'", e.Byte)
	case KindControl:
		if e.Byte == 0x7F {
			return "^?"
		}
		return fmt.Sprintf("^%c", e.Byte+'@')
	case KindNamed:
		return e.Key.String()
	default:
		return "unknown"
	}
}

// Code returns the numeric byte behind the event. Named keys decode
// from escape sequences, so they report the introducer byte.
func (e Event) Code() byte {
	if e.Kind == KindNamed {
		return 0x1b
	}
	return e.Byte
}
