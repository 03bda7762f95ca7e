// Package input turns a raw terminal byte stream into per-frame input.
//
// Terminals report key presses but never key releases, so a movement key
// counts as held for a short while after its last press (long enough to bridge
// the gap between auto-repeat events). Look input comes from the arrow keys or,
// when mouse reporting is enabled, from SGR mouse motion reports.
package input

import (
	"bufio"
	"strconv"
	"time"
)

// keyHoldDuration is how long a movement key is considered "held" after its
// last press.
const keyHoldDuration = 150 * time.Millisecond

// Look deltas, in pointer units (the same units as a mouse delta).
const (
	ArrowLookStep = 40.0 // Per arrow key press
	MouseCellStep = 12.0 // Per terminal cell of mouse motion
)

// Input represents the current frame's input state.
type Input struct {
	Forward bool
	Back    bool
	Left    bool
	Right   bool

	LookDX float64
	LookDY float64

	Fire    int  // Trigger presses (space or mouse button) since last frame
	Reload  bool // R
	Confirm bool // Enter
	Quit    bool // Q or Ctrl-C

	Pressed []byte // Raw bytes received this frame
}

// keyState tracks the last time each movement key was pressed.
type keyState struct {
	forward time.Time
	back    time.Time
	left    time.Time
	right   time.Time
}

// mouseState remembers the last reported pointer cell so motion can be
// turned into a delta.
type mouseState struct {
	known bool
	col   int
	row   int
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch     chan byte
	state  keyState
	mouse  mouseState
	closed bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
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

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ResetKeyInput forgets held keys and the last pointer position, so nothing
// carries over into a new round.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
	s.mouse = mouseState{}
}

// ReadInput drains all available bytes from the stream (non-blocking) and
// builds the input for this frame.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var buf []byte

	// Drain all available bytes
drain:
	for {
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

	inp := Input{Pressed: buf}
	parse(s, &inp, buf, now)

	inp.Forward = now.Sub(s.state.forward) < keyHoldDuration
	inp.Back = now.Sub(s.state.back) < keyHoldDuration
	inp.Left = now.Sub(s.state.left) < keyHoldDuration
	inp.Right = now.Sub(s.state.right) < keyHoldDuration

	return inp
}

// parse walks the collected bytes, handling CSI sequences for arrow keys and
// SGR mouse reports, and single bytes for everything else.
func parse(s *Stream, inp *Input, buf []byte, now time.Time) {
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A': // Up arrow
				inp.LookDY -= ArrowLookStep
				i += 2
				continue
			case 'B': // Down arrow
				inp.LookDY += ArrowLookStep
				i += 2
				continue
			case 'C': // Right arrow
				inp.LookDX += ArrowLookStep
				i += 2
				continue
			case 'D': // Left arrow
				inp.LookDX -= ArrowLookStep
				i += 2
				continue
			case '<':
				if n, ok := parseMouse(s, inp, buf[i+3:]); ok {
					i += 2 + n
					continue
				}
			}
		}

		applyByte(&s.state, inp, b, now)
	}
}

// applyByte updates key state and actions for a single pressed byte.
func applyByte(state *keyState, inp *Input, b byte, now time.Time) {
	switch b {
	case 'w', 'W':
		state.forward = now
	case 's', 'S':
		state.back = now
	case 'a', 'A':
		state.left = now
	case 'd', 'D':
		state.right = now
	case 'j', 'J':
		inp.LookDX -= ArrowLookStep
	case 'l', 'L':
		inp.LookDX += ArrowLookStep
	case 'i', 'I':
		inp.LookDY -= ArrowLookStep
	case 'k', 'K':
		inp.LookDY += ArrowLookStep
	case ' ':
		inp.Fire++
	case 'r', 'R':
		inp.Reload = true
	case '\n', '\r':
		inp.Confirm = true
	case 'q', 'Q', '\x03':
		inp.Quit = true
	}
}

// parseMouse decodes the body of an SGR mouse report "b;col;row" followed by
// 'M' (press/motion) or 'm' (release). It returns the number of bytes
// consumed. Motion moves the view, a left button press fires.
func parseMouse(s *Stream, inp *Input, buf []byte) (int, bool) {
	var fields [3]int
	field := 0
	start := 0
	for i, c := range buf {
		switch {
		case c >= '0' && c <= '9':
			continue
		case c == ';' && field < 2:
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0, false
			}
			fields[field] = v
			field++
			start = i + 1
		case (c == 'M' || c == 'm') && field == 2:
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0, false
			}
			fields[2] = v
			handleMouse(s, inp, fields[0], fields[1], fields[2], c == 'M')
			return i + 1, true
		default:
			return 0, false
		}
	}
	return 0, false
}

// Mouse report button codes.
const (
	mouseLeft   = 0
	mouseMotion = 32 // Added to the button code for motion events
)

// maxMouseCell is the largest column or row accepted in a mouse report.
const maxMouseCell = 10000

func handleMouse(s *Stream, inp *Input, button, col, row int, press bool) {
	if col < 1 || row < 1 || col > maxMouseCell || row > maxMouseCell {
		s.mouse = mouseState{}
		return
	}
	if s.mouse.known {
		inp.LookDX += float64(col-s.mouse.col) * MouseCellStep
		inp.LookDY += float64(row-s.mouse.row) * MouseCellStep
	}
	s.mouse = mouseState{known: true, col: col, row: row}

	if press && button == mouseLeft {
		inp.Fire++
	}
}

// Terminal control sequences for pointer capture: any-motion mouse tracking
// with SGR encoding.
const (
	CapturePointer = "\033[?1003h\033[?1006h"
	ReleasePointer = "\033[?1003l\033[?1006l"
)
