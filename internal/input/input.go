// Package input turns raw terminal bytes into logical game actions.
package input

import (
	"bufio"
)

// Action is a logical input produced from one key press.
type Action int

const (
	RotateLeft Action = iota + 1
	RotateRight
	Confirm // Start or restart
	Quit
)

func (a Action) String() string {
	switch a {
	case RotateLeft:
		return "rotate-left"
	case RotateRight:
		return "rotate-right"
	case Confirm:
		return "confirm"
	case Quit:
		return "quit"
	default:
		return "none"
	}
}

// Input is everything read since the previous frame.
type Input struct {
	Actions []Action // In arrival order, one per key press
	Pressed []byte   // Raw bytes read this frame, used for activity tracking
	Closed  bool     // The underlying reader is gone
}

// Has reports whether a was pressed this frame.
func (in Input) Has(a Action) bool {
	for _, got := range in.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Stream delivers input bytes via a channel. Escape sequences split across
// reads are held back until they complete.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
// Every key press becomes exactly one action; holding a key relies on the
// terminal's own repeat.
// A partial escape sequence is held for one frame; if nothing follows it is
// dropped. Held bytes are not reported in Pressed again.
func ReadInput(s *Stream) Input {
	held := len(s.pending)
	buf := s.pending
	s.pending = nil

drain:
	for !s.closed {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	if len(buf) == held {
		buf, held = nil, 0
	}

	in := Input{Pressed: buf[held:], Closed: s.closed}
	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b == '\x1b' {
			// CSI sequence: ESC [ <code>
			if i+1 == len(buf) || (buf[i+1] == '[' && i+2 == len(buf)) {
				if !s.closed {
					s.pending = append(s.pending, buf[i:]...)
				}
				break
			}
			if buf[i+1] == '[' {
				switch buf[i+2] {
				case 'D':
					in.Actions = append(in.Actions, RotateLeft)
				case 'C':
					in.Actions = append(in.Actions, RotateRight)
				}
				i += 2
			}
			continue
		}
		if a := actionForByte(b); a != 0 {
			in.Actions = append(in.Actions, a)
		}
	}

	if s.closed {
		in.Actions = append(in.Actions, Quit)
	}
	return in
}

// actionForByte maps single-byte keys to actions.
func actionForByte(b byte) Action {
	switch b {
	case 'a', 'A', 'h', 'H', 'j', 'J':
		return RotateLeft
	case 'd', 'D', 'l', 'L':
		return RotateRight
	case ' ', '\n', '\r', 'r', 'R':
		return Confirm
	case 'q', 'Q', '\x03':
		return Quit
	}
	return 0
}

// Reset discards buffered bytes, e.g. so a held key does not leak into the
// next screen.
func Reset(s *Stream) {
	s.pending = nil
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
		default:
			return
		}
	}
}
