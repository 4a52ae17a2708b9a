// Package trace records decoded key events for later inspection
package trace

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"tinyed/pkg/key"
)

// Format represents different trace export formats
type Format int

const (
	FormatPlain Format = iota
	FormatTimestamped
	FormatJSON
)

// String returns the string representation of Format
func (f Format) String() string {
	switch f {
	case FormatPlain:
		return "plain"
	case FormatTimestamped:
		return "timestamped"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as given on the command line
func ParseFormat(name string) (Format, error) {
	switch name {
	case "plain":
		return FormatPlain, nil
	case "timestamped":
		return FormatTimestamped, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatPlain, fmt.Errorf("unsupported format '%s' (use plain, timestamped or json)", name)
	}
}

// Entry is one decoded keypress flattened for storage
type Entry struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      string    `json:"kind"`
	Label     string    `json:"label"`
	Code      byte      `json:"code"`
}

// NewEntry creates an entry for an event with the current timestamp
func NewEntry(ev key.Event) Entry {
	return Entry{
		Timestamp: time.Now(),
		Kind:      ev.Kind.String(),
		Label:     ev.Label(),
		Code:      ev.Code(),
	}
}

// Validate checks if the entry is valid
func (e Entry) Validate() error {
	if e.Timestamp.IsZero() {
		return fmt.Errorf("timestamp cannot be zero")
	}

	if e.Label == "" {
		return fmt.Errorf("label cannot be empty")
	}

	return nil
}

// Recorder interface defines the contract for trace recording
type Recorder interface {
	Record(e Entry)
	Entries() []Entry
	Len() int
	Cap() int
	Clear()
	SaveToFile(filename string, format Format) error
}

// RingRecorder implements Recorder with a fixed-capacity ring. Once
// the ring is full, each new entry evicts the oldest one.
type RingRecorder struct {
	entries []Entry
	start   int
	count   int
}

// DefaultCapacity is used when no explicit trace size is configured
const DefaultCapacity = 512

// NewRingRecorder creates a ring recorder with the given capacity
func NewRingRecorder(capacity int) *RingRecorder {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &RingRecorder{
		entries: make([]Entry, capacity),
	}
}

// Record adds an entry, evicting the oldest one when the ring is full
func (r *RingRecorder) Record(e Entry) {
	pos := (r.start + r.count) % len(r.entries)
	r.entries[pos] = e

	if r.count < len(r.entries) {
		r.count++
	} else {
		r.start = (r.start + 1) % len(r.entries)
	}
}

// Entries returns the recorded entries, oldest first
func (r *RingRecorder) Entries() []Entry {
	result := make([]Entry, r.count)
	for i := 0; i < r.count; i++ {
		result[i] = r.entries[(r.start+i)%len(r.entries)]
	}

	return result
}

// Len returns the number of recorded entries
func (r *RingRecorder) Len() int {
	return r.count
}

// Cap returns the ring capacity
func (r *RingRecorder) Cap() int {
	return len(r.entries)
}

// Clear discards all recorded entries
func (r *RingRecorder) Clear() {
	r.start = 0
	r.count = 0

	for i := range r.entries {
		r.entries[i] = Entry{}
	}
}

// SaveToFile writes the recorded entries to a file in the given format
func (r *RingRecorder) SaveToFile(filename string, format Format) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	return saveEntriesToFile(r.Entries(), filename, format)
}

// saveEntriesToFile writes entries to a file in the specified format
func saveEntriesToFile(entries []Entry, filename string, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	switch format {
	case FormatPlain:
		return saveAsPlain(file, entries)
	case FormatTimestamped:
		return saveAsTimestamped(file, entries)
	case FormatJSON:
		return saveAsJSON(file, entries)
	default:
		return fmt.Errorf("unsupported format: %v", format)
	}
}

// saveAsPlain writes one label per line
func saveAsPlain(file *os.File, entries []Entry) error {
	for _, entry := range entries {
		if _, err := fmt.Fprintf(file, "%s\n", entry.Label); err != nil {
			return fmt.Errorf("failed to write entry: %w", err)
		}
	}
	return nil
}

// saveAsTimestamped writes one line per entry with wall-clock time and
// the numeric code
func saveAsTimestamped(file *os.File, entries []Entry) error {
	for _, entry := range entries {
		line := fmt.Sprintf("[%s] %s (%d)\n",
			entry.Timestamp.Format("15:04:05.000"),
			entry.Label,
			entry.Code)

		if _, err := file.WriteString(line); err != nil {
			return fmt.Errorf("failed to write timestamped entry: %w", err)
		}
	}
	return nil
}

// saveAsJSON writes the entries as an indented JSON document
func saveAsJSON(file *os.File, entries []Entry) error {
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")

	data := struct {
		Entries []Entry `json:"entries"`
		Count   int     `json:"count"`
	}{
		Entries: entries,
		Count:   len(entries),
	}

	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}
