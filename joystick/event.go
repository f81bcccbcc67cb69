// Package joystick receives analog joystick readings from microcontroller
// clients over UDP and turns them into paddle speeds.
//
// Each reading travels as a frame ^<code><data>$. The only code in use is 'j',
// whose data is x:y:b with x and y in [-100, 100] and b either 0 or 1, for
// example ^j100:-52:0$.
package joystick

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	framePrefix = '^'
	frameSuffix = '$'

	codeJoystick = 'j'

	axisLimit = 100

	// maxPending bounds an unfinished frame. The longest valid frame,
	// ^j-100:-100:1$, is 14 bytes.
	maxPending = 32
)

// Event is one joystick position report.
type Event struct {
	X, Y    int
	Pressed bool
}

// SpeedPercent maps the vertical axis onto a paddle speed percent.
func (e Event) SpeedPercent() float64 {
	return float64(e.Y) / axisLimit
}

// Encode returns the framed wire form of e.
func Encode(e Event) []byte {
	btn := 0
	if e.Pressed {
		btn = 1
	}
	return []byte(fmt.Sprintf("%c%c%d:%d:%d%c", framePrefix, codeJoystick, e.X, e.Y, btn, frameSuffix))
}

// Decode parses the content between the frame markers. It reports false for an
// unknown code or out-of-range data.
func Decode(data []byte) (Event, bool) {
	if len(data) == 0 || data[0] != codeJoystick {
		return Event{}, false
	}

	parts := strings.Split(string(data[1:]), ":")
	if len(parts) != 3 {
		return Event{}, false
	}

	x, err := strconv.Atoi(parts[0])
	if err != nil || x < -axisLimit || x > axisLimit {
		return Event{}, false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil || y < -axisLimit || y > axisLimit {
		return Event{}, false
	}

	switch parts[2] {
	case "0":
		return Event{X: x, Y: y}, true
	case "1":
		return Event{X: x, Y: y, Pressed: true}, true
	}
	return Event{}, false
}

// Parser reassembles frames that arrive split across datagrams. Buffers are
// kept per client address.
type Parser struct {
	pending map[string][]byte
}

func NewParser() *Parser {
	return &Parser{pending: make(map[string][]byte)}
}

// Feed appends chunk to the client's buffer and returns every complete, valid
// event in it. Bytes before a frame start are dropped, an unfinished frame is
// kept for the next chunk and invalid frames are skipped. An unfinished frame
// longer than any valid one is discarded up to the next frame start.
func (p *Parser) Feed(client string, chunk []byte) []Event {
	data := append(p.pending[client], chunk...)

	var events []Event
	for {
		start := bytes.IndexByte(data, framePrefix)
		if start == -1 {
			data = nil
			break
		}
		data = data[start:]

		end := bytes.IndexByte(data, frameSuffix)
		if end == -1 {
			break
		}

		if ev, ok := Decode(data[1:end]); ok {
			events = append(events, ev)
		}
		data = data[end+1:]
	}

	for len(data) > maxPending {
		next := bytes.IndexByte(data[1:], framePrefix)
		if next == -1 {
			data = nil
			break
		}
		data = data[next+1:]
	}

	if len(data) == 0 {
		delete(p.pending, client)
	} else {
		p.pending[client] = append([]byte(nil), data...)
	}
	return events
}
