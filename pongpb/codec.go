package pongpb

import (
	"errors"
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// ErrNilMessage is returned when marshaling a nil envelope.
var ErrNilMessage = errors.New("pongpb: nil message")

// Envelope field numbers.
const (
	fieldType      protowire.Number = 1
	fieldInit      protowire.Number = 2
	fieldSpeed     protowire.Number = 3
	fieldControl   protowire.Number = 4
	fieldGameState protowire.Number = 5
	fieldScore     protowire.Number = 6
	fieldError     protowire.Number = 7
)

// Marshal encodes m. Zero scalars are omitted.
func Marshal(m *Message) ([]byte, error) {
	if m == nil {
		return nil, ErrNilMessage
	}

	var b []byte
	b = appendInt32(b, fieldType, int32(m.Type))

	if m.Init != nil {
		b = appendMessage(b, fieldInit, m.Init.marshal(nil))
	}
	if m.Speed != nil {
		b = appendMessage(b, fieldSpeed, m.Speed.marshal(nil))
	}
	if m.Control != nil {
		b = appendMessage(b, fieldControl, m.Control.marshal(nil))
	}
	if m.GameState != nil {
		b = appendMessage(b, fieldGameState, m.GameState.marshal(nil))
	}
	if m.Score != nil {
		b = appendMessage(b, fieldScore, m.Score.marshal(nil))
	}
	if m.Error != nil {
		b = appendMessage(b, fieldError, m.Error.marshal(nil))
	}
	return b, nil
}

// Unmarshal decodes a frame. Unknown fields are skipped.
func Unmarshal(b []byte) (*Message, error) {
	m := &Message{}
	err := walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldType:
			var v int32
			n := consumeInt32(typ, b, &v)
			m.Type = MsgType(v)
			return n, nil
		case fieldInit:
			m.Init = &InitMessage{}
			return consumeMessage(typ, b, m.Init.unmarshal)
		case fieldSpeed:
			m.Speed = &SpeedMessage{}
			return consumeMessage(typ, b, m.Speed.unmarshal)
		case fieldControl:
			m.Control = &ControlMessage{}
			return consumeMessage(typ, b, m.Control.unmarshal)
		case fieldGameState:
			m.GameState = &GameStateMessage{}
			return consumeMessage(typ, b, m.GameState.unmarshal)
		case fieldScore:
			m.Score = &ScoreMessage{}
			return consumeMessage(typ, b, m.Score.unmarshal)
		case fieldError:
			m.Error = &ErrorMessage{}
			return consumeMessage(typ, b, m.Error.unmarshal)
		}
		return 0, nil
	})
	if err != nil {
		return nil, fmt.Errorf("pongpb: %w", err)
	}
	return m, nil
}

func (m *InitMessage) marshal(b []byte) []byte {
	b = appendDouble(b, 1, m.Width)
	b = appendDouble(b, 2, m.Height)
	return b
}

func (m *InitMessage) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeDouble(typ, b, &m.Width), nil
		case 2:
			return consumeDouble(typ, b, &m.Height), nil
		}
		return 0, nil
	})
}

func (m *SpeedMessage) marshal(b []byte) []byte {
	b = appendString(b, 1, m.Side)
	b = appendDouble(b, 2, m.Percent)
	return b
}

func (m *SpeedMessage) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.Side), nil
		case 2:
			return consumeDouble(typ, b, &m.Percent), nil
		}
		return 0, nil
	})
}

func (m *ControlMessage) marshal(b []byte) []byte {
	return appendString(b, 1, m.Action)
}

func (m *ControlMessage) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Action), nil
		}
		return 0, nil
	})
}

func (m *Ball) marshal(b []byte) []byte {
	b = appendDouble(b, 1, m.X)
	b = appendDouble(b, 2, m.Y)
	b = appendDouble(b, 3, m.Radius)
	return b
}

func (m *Ball) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeDouble(typ, b, &m.X), nil
		case 2:
			return consumeDouble(typ, b, &m.Y), nil
		case 3:
			return consumeDouble(typ, b, &m.Radius), nil
		}
		return 0, nil
	})
}

func (m *Paddle) marshal(b []byte) []byte {
	b = appendDouble(b, 1, m.X)
	b = appendDouble(b, 2, m.Y)
	b = appendDouble(b, 3, m.Width)
	b = appendDouble(b, 4, m.Height)
	return b
}

func (m *Paddle) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeDouble(typ, b, &m.X), nil
		case 2:
			return consumeDouble(typ, b, &m.Y), nil
		case 3:
			return consumeDouble(typ, b, &m.Width), nil
		case 4:
			return consumeDouble(typ, b, &m.Height), nil
		}
		return 0, nil
	})
}

func (m *GameStateMessage) marshal(b []byte) []byte {
	b = appendString(b, 1, m.State)
	b = appendInt32(b, 2, m.LeftScore)
	b = appendInt32(b, 3, m.RightScore)
	if m.Ball != nil {
		b = appendMessage(b, 4, m.Ball.marshal(nil))
	}
	if m.LeftPaddle != nil {
		b = appendMessage(b, 5, m.LeftPaddle.marshal(nil))
	}
	if m.RightPaddle != nil {
		b = appendMessage(b, 6, m.RightPaddle.marshal(nil))
	}
	b = appendDouble(b, 7, m.Width)
	b = appendDouble(b, 8, m.Height)
	return b
}

func (m *GameStateMessage) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeString(typ, b, &m.State), nil
		case 2:
			return consumeInt32(typ, b, &m.LeftScore), nil
		case 3:
			return consumeInt32(typ, b, &m.RightScore), nil
		case 4:
			m.Ball = &Ball{}
			return consumeMessage(typ, b, m.Ball.unmarshal)
		case 5:
			m.LeftPaddle = &Paddle{}
			return consumeMessage(typ, b, m.LeftPaddle.unmarshal)
		case 6:
			m.RightPaddle = &Paddle{}
			return consumeMessage(typ, b, m.RightPaddle.unmarshal)
		case 7:
			return consumeDouble(typ, b, &m.Width), nil
		case 8:
			return consumeDouble(typ, b, &m.Height), nil
		}
		return 0, nil
	})
}

func (m *ScoreMessage) marshal(b []byte) []byte {
	b = appendInt32(b, 1, m.LeftScore)
	b = appendInt32(b, 2, m.RightScore)
	b = appendString(b, 3, m.Scored)
	return b
}

func (m *ScoreMessage) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case 1:
			return consumeInt32(typ, b, &m.LeftScore), nil
		case 2:
			return consumeInt32(typ, b, &m.RightScore), nil
		case 3:
			return consumeString(typ, b, &m.Scored), nil
		}
		return 0, nil
	})
}

func (m *ErrorMessage) marshal(b []byte) []byte {
	return appendString(b, 1, m.Error)
}

func (m *ErrorMessage) unmarshal(b []byte) error {
	return walk(b, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if num == 1 {
			return consumeString(typ, b, &m.Error), nil
		}
		return 0, nil
	})
}
