package key

import (
	"errors"
	"io"
	"testing"
)

// step is one scripted ReadByte outcome
type step struct {
	b       byte
	timeout bool
	err     error
}

// scriptSource replays a fixed sequence of read outcomes. Reading past
// the end fails hard so a decoder bug cannot spin forever.
type scriptSource struct {
	steps []step
	pos   int
}

func (s *scriptSource) ReadByte() (byte, bool, error) {
	if s.pos >= len(s.steps) {
		return 0, false, io.ErrUnexpectedEOF
	}
	st := s.steps[s.pos]
	s.pos++
	if st.err != nil {
		return 0, false, st.err
	}
	if st.timeout {
		return 0, false, nil
	}
	return st.b, true, nil
}

func bytesScript(input string) []step {
	steps := make([]step, 0, len(input))
	for i := 0; i < len(input); i++ {
		steps = append(steps, step{b: input[i]})
	}
	return steps
}

func TestDecoder_Next_Sequences(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Event
	}{
		{
			name:  "printable letter",
			input: "q",
			want:  Printable('q'),
		},
		{
			name:  "control byte",
			input: "\x03",
			want:  Control(0x03),
		},
		{
			name:  "delete byte is control",
			input: "\x7f",
			want:  Control(0x7f),
		},
		{
			name:  "arrow up",
			input: "\x1b[A",
			want:  Named(Up),
		},
		{
			name:  "arrow down",
			input: "\x1b[B",
			want:  Named(Down),
		},
		{
			name:  "arrow right",
			input: "\x1b[C",
			want:  Named(Right),
		},
		{
			name:  "arrow left",
			input: "\x1b[D",
			want:  Named(Left),
		},
		{
			name:  "csi home",
			input: "\x1b[H",
			want:  Named(Home),
		},
		{
			name:  "csi end",
			input: "\x1b[F",
			want:  Named(End),
		},
		{
			name:  "vt home",
			input: "\x1b[1~",
			want:  Named(Home),
		},
		{
			name:  "vt home alternate",
			input: "\x1b[7~",
			want:  Named(Home),
		},
		{
			name:  "vt delete",
			input: "\x1b[3~",
			want:  Named(Delete),
		},
		{
			name:  "vt end",
			input: "\x1b[4~",
			want:  Named(End),
		},
		{
			name:  "vt end alternate",
			input: "\x1b[8~",
			want:  Named(End),
		},
		{
			name:  "vt page up",
			input: "\x1b[5~",
			want:  Named(PageUp),
		},
		{
			name:  "vt page down",
			input: "\x1b[6~",
			want:  Named(PageDown),
		},
		{
			name:  "ss3 home",
			input: "\x1bOH",
			want:  Named(Home),
		},
		{
			name:  "ss3 end",
			input: "\x1bOF",
			want:  Named(End),
		},
		{
			name:  "unknown csi letter",
			input: "\x1b[Z",
			want:  Named(Escape),
		},
		{
			name:  "unknown vt digit",
			input: "\x1b[9~",
			want:  Named(Escape),
		},
		{
			name:  "vt sequence without tilde",
			input: "\x1b[5x",
			want:  Named(Escape),
		},
		{
			name:  "unknown ss3 letter",
			input: "\x1bOx",
			want:  Named(Escape),
		},
		{
			name:  "unknown introducer",
			input: "\x1bqx",
			want:  Named(Escape),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDecoder(&scriptSource{steps: bytesScript(tt.input)})
			got, err := d.Next()
			if err != nil {
				t.Fatalf("Next() error = %v, want nil", err)
			}
			if got != tt.want {
				t.Errorf("Next() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestDecoder_Next_BareEscape(t *testing.T) {
	src := &scriptSource{steps: []step{
		{b: 0x1b},
		{timeout: true},
		{b: 'q'},
	}}
	d := NewDecoder(src)

	got, err := d.Next()
	if err != nil {
		t.Fatalf("Next() error = %v, want nil", err)
	}
	if got != Named(Escape) {
		t.Errorf("Next() after bare ESC = %+v, want Named(Escape)", got)
	}

	got, err = d.Next()
	if err != nil {
		t.Fatalf("Next() error = %v, want nil", err)
	}
	if got != Printable('q') {
		t.Errorf("Next() after escape resolution = %+v, want Printable('q')", got)
	}
}

func TestDecoder_Next_TruncatedSequence(t *testing.T) {
	src := &scriptSource{steps: []step{
		{b: 0x1b},
		{b: '['},
		{timeout: true},
	}}
	d := NewDecoder(src)

	got, err := d.Next()
	if err != nil {
		t.Fatalf("Next() error = %v, want nil", err)
	}
	if got != Named(Escape) {
		t.Errorf("Next() on truncated sequence = %+v, want Named(Escape)", got)
	}
}

func TestDecoder_Next_BlocksOverTimeouts(t *testing.T) {
	src := &scriptSource{steps: []step{
		{timeout: true},
		{timeout: true},
		{timeout: true},
		{b: 'h'},
	}}
	d := NewDecoder(src)

	got, err := d.Next()
	if err != nil {
		t.Fatalf("Next() error = %v, want nil", err)
	}
	if got != Printable('h') {
		t.Errorf("Next() = %+v, want Printable('h')", got)
	}
}

func TestDecoder_Next_SourceError(t *testing.T) {
	readErr := errors.New("device gone")
	src := &scriptSource{steps: []step{{err: readErr}}}
	d := NewDecoder(src)

	_, err := d.Next()
	if !errors.Is(err, readErr) {
		t.Errorf("Next() error = %v, want %v", err, readErr)
	}
}

func TestDecoder_Next_LookaheadErrorResolvesEscape(t *testing.T) {
	src := &scriptSource{steps: []step{
		{b: 0x1b},
		{err: errors.New("device gone")},
	}}
	d := NewDecoder(src)

	got, err := d.Next()
	if err != nil {
		t.Fatalf("Next() error = %v, want nil", err)
	}
	if got != Named(Escape) {
		t.Errorf("Next() = %+v, want Named(Escape)", got)
	}
}
