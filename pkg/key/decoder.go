package key

// Source is the byte stream a decoder consumes. ReadByte returns one
// byte when available; ok=false with a nil error means the read timed
// out with nothing pending. A terminal in raw mode with VMIN=0 VTIME=1
// behaves exactly like this.
type Source interface {
	ReadByte() (byte, bool, error)
}

// Decoder turns raw bytes from a Source into key events
type Decoder struct {
	src Source
}

// NewDecoder creates a decoder over the given source
func NewDecoder(src Source) *Decoder {
	return &Decoder{src: src}
}

// Next blocks until one whole keypress is decoded and returns it.
// Escape sequences are resolved with bounded lookahead: once ESC has
// arrived, each following byte gets a single timeout window, and a
// window that expires empty means the user pressed the Escape key
// itself rather than a sequence-producing key. Unrecognized sequences
// also resolve to Escape; decoding never fails on input content, only
// on a broken source.
func (d *Decoder) Next() (Event, error) {
	b, err := d.readBlocking()
	if err != nil {
		return Event{}, err
	}

	if b != 0x1b {
		return Classify(b), nil
	}

	seq0, ok := d.readOnce()
	if !ok {
		return Named(Escape), nil
	}

	seq1, ok := d.readOnce()
	if !ok {
		return Named(Escape), nil
	}

	switch seq0 {
	case '[':
		if seq1 >= '0' && seq1 <= '9' {
			seq2, ok := d.readOnce()
			if !ok || seq2 != '~' {
				return Named(Escape), nil
			}
			return decodeVT(seq1), nil
		}
		return decodeCSI(seq1), nil
	case 'O':
		return decodeSS3(seq1), nil
	}

	return Named(Escape), nil
}

// readBlocking waits for the next byte, looping over empty timeout
// windows. The first byte of a keypress has no deadline.
func (d *Decoder) readBlocking() (byte, error) {
	for {
		b, ok, err := d.src.ReadByte()
		if err != nil {
			return 0, err
		}
		if ok {
			return b, nil
		}
	}
}

// readOnce gives a sequence byte exactly one timeout window. Source
// errors during lookahead degrade to a short read: the ESC already
// consumed still has to produce an event.
func (d *Decoder) readOnce() (byte, bool) {
	b, ok, err := d.src.ReadByte()
	if err != nil {
		return 0, false
	}
	return b, ok
}

// decodeVT maps the digit of an ESC [ <digit> ~ sequence
func decodeVT(digit byte) Event {
	switch digit {
	case '1', '7':
		return Named(Home)
	case '3':
		return Named(Delete)
	case '4', '8':
		return Named(End)
	case '5':
		return Named(PageUp)
	case '6':
		return Named(PageDown)
	default:
		return Named(Escape)
	}
}

// decodeCSI maps the final letter of an ESC [ <letter> sequence
func decodeCSI(letter byte) Event {
	switch letter {
	case 'A':
		return Named(Up)
	case 'B':
		return Named(Down)
	case 'C':
		return Named(Right)
	case 'D':
		return Named(Left)
	case 'H':
		return Named(Home)
	case 'F':
		return Named(End)
	default:
		return Named(Escape)
	}
}

// decodeSS3 maps the final letter of an ESC O <letter> sequence
func decodeSS3(letter byte) Event {
	switch letter {
	case 'H':
		return Named(Home)
	case 'F':
		return Named(End)
	default:
		return Named(Escape)
	}
}
