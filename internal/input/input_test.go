package input

import (
	"bufio"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feed(s *Stream, data string) {
	for i := 0; i < len(data); i++ {
		s.ch <- data[i]
	}
}

func newTestStream() *Stream {
	return &Stream{ch: make(chan byte, 64)}
}

func TestReadInputMapsKeys(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want []Action
	}{
		{"arrows", "\x1b[D\x1b[C", []Action{RotateLeft, RotateRight}},
		{"letters", "aAdDhl", []Action{RotateLeft, RotateLeft, RotateRight, RotateRight, RotateLeft, RotateRight}},
		{"confirm", " \r\nr", []Action{Confirm, Confirm, Confirm, Confirm}},
		{"quit", "q", []Action{Quit}},
		{"ctrl-c", "\x03", []Action{Quit}},
		{"ignored", "xyz\x1b[A", nil},
		{"alt prefix", "\x1bd", []Action{RotateRight}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStream()
			feed(s, tt.keys)

			in := ReadInput(s)

			assert.Equal(t, tt.want, in.Actions)
			assert.Equal(t, []byte(tt.keys), in.Pressed)
			assert.False(t, in.Closed)
		})
	}
}

func TestReadInputKeepsOrderOfRepeatedPresses(t *testing.T) {
	s := newTestStream()
	feed(s, "aad\x1b[Da")

	in := ReadInput(s)

	assert.Equal(t, []Action{RotateLeft, RotateLeft, RotateRight, RotateLeft, RotateLeft}, in.Actions)
}

func TestReadInputHoldsSplitEscapeSequence(t *testing.T) {
	s := newTestStream()
	feed(s, "d\x1b[")

	first := ReadInput(s)
	assert.Equal(t, []Action{RotateRight}, first.Actions)

	feed(s, "D")
	second := ReadInput(s)
	assert.Equal(t, []Action{RotateLeft}, second.Actions)
}

func TestReadInputDropsStaleEscape(t *testing.T) {
	s := newTestStream()
	feed(s, "\x1b")

	first := ReadInput(s)
	assert.Empty(t, first.Actions)
	assert.Equal(t, []byte{'\x1b'}, first.Pressed)

	second := ReadInput(s)
	assert.Empty(t, second.Actions)
	assert.Empty(t, second.Pressed)

	feed(s, "D")
	third := ReadInput(s)
	assert.Equal(t, []Action{RotateRight}, third.Actions)
	assert.Equal(t, []byte{'D'}, third.Pressed)
}

func TestReadInputHeldBytesNotPressedTwice(t *testing.T) {
	s := newTestStream()
	feed(s, "\x1b[")
	ReadInput(s)

	feed(s, "C")
	in := ReadInput(s)
	assert.Equal(t, []Action{RotateRight}, in.Actions)
	assert.Equal(t, []byte{'C'}, in.Pressed)
}

func TestReadInputEmpty(t *testing.T) {
	in := ReadInput(newTestStream())
	assert.Empty(t, in.Actions)
	assert.Empty(t, in.Pressed)
}

func TestStreamClosesOnEOF(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("a\x1b[C")))

	var actions []Action
	require.Eventually(t, func() bool {
		in := ReadInput(s)
		actions = append(actions, in.Actions...)
		return in.Closed
	}, time.Second, time.Millisecond)

	assert.Equal(t, []Action{RotateLeft, RotateRight, Quit}, actions)
}

func TestInputHas(t *testing.T) {
	in := Input{Actions: []Action{RotateLeft, Confirm}}
	assert.True(t, in.Has(Confirm))
	assert.False(t, in.Has(Quit))
}

func TestReset(t *testing.T) {
	s := newTestStream()
	feed(s, "aaa\x1b")
	_ = ReadInput(s)
	feed(s, "dd")

	Reset(s)

	assert.Empty(t, ReadInput(s).Actions)
}
