// Package pongpb holds the binary frames exchanged with renderers over the
// WebSocket feed. Frames use the protobuf wire format so browser clients can
// decode them with any protobuf runtime.
package pongpb

type MsgType int32

const (
	MsgTypeUnknown   MsgType = 0
	MsgTypeInit      MsgType = 1
	MsgTypeSpeed     MsgType = 2
	MsgTypeControl   MsgType = 3
	MsgTypeGameState MsgType = 4
	MsgTypeScore     MsgType = 5
	MsgTypeError     MsgType = 6
)

var msgTypeNames = map[MsgType]string{
	MsgTypeUnknown:   "unknown",
	MsgTypeInit:      "init",
	MsgTypeSpeed:     "speed",
	MsgTypeControl:   "control",
	MsgTypeGameState: "game_state",
	MsgTypeScore:     "score",
	MsgTypeError:     "error",
}

func (t MsgType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Control actions carried by ControlMessage.
const (
	ActionPause  = "pause"
	ActionResume = "resume"
	ActionReset  = "reset"
)

// Message is the envelope of every frame. Only the payload matching Type is
// set.
type Message struct {
	Type MsgType

	Init      *InitMessage
	Speed     *SpeedMessage
	Control   *ControlMessage
	GameState *GameStateMessage
	Score     *ScoreMessage
	Error     *ErrorMessage
}

// InitMessage announces the renderer's drawing surface size.
type InitMessage struct {
	Width  float64
	Height float64
}

// SpeedMessage sets a paddle's speed percent, in [-1, 1].
type SpeedMessage struct {
	Side    string
	Percent float64
}

type ControlMessage struct {
	Action string
}

type Ball struct {
	X      float64
	Y      float64
	Radius float64
}

type Paddle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// GameStateMessage is one frame of the simulation.
type GameStateMessage struct {
	State       string
	LeftScore   int32
	RightScore  int32
	Ball        *Ball
	LeftPaddle  *Paddle
	RightPaddle *Paddle
	Width       float64
	Height      float64
}

type ScoreMessage struct {
	LeftScore  int32
	RightScore int32
	Scored     string
}

type ErrorMessage struct {
	Error string
}
