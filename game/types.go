package game

import (
	"github.com/evermake/microgames/paddle"
	"github.com/evermake/microgames/scores"
)

// State is the lifecycle state of a game.
type State string

const (
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateGameOver State = "gameover"
)

// Outcome is what a single physics step reports back to the lifecycle.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeExitedLeft
	OutcomeExitedRight
)

func (o Outcome) String() string {
	switch o {
	case OutcomeExitedLeft:
		return "exited-left"
	case OutcomeExitedRight:
		return "exited-right"
	default:
		return "none"
	}
}

// EventKind tells listeners why they were called.
type EventKind string

const (
	EventStateChanged EventKind = "state_changed"
	EventPointScored  EventKind = "point_scored"
	EventReset        EventKind = "reset"
)

// Event is delivered to listeners after the engine has released its lock.
type Event struct {
	Kind    EventKind     `json:"kind" msgpack:"kind"`
	State   State         `json:"state" msgpack:"state"`
	Scores  scores.Scores `json:"scores" msgpack:"scores"`
	Outcome Outcome       `json:"outcome" msgpack:"outcome"`
	// Scorer is set for EventPointScored.
	Scorer paddle.Side `json:"scorer,omitempty" msgpack:"scorer,omitempty"`
}

// Listener observes engine transitions.
type Listener func(Event)

// Rect is a read-only paddle rectangle.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Circle is a read-only ball position.
type Circle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
}

// Colors are passed through to renderers untouched.
type Colors struct {
	Ball        string `json:"ball"`
	LeftPaddle  string `json:"left_paddle"`
	RightPaddle string `json:"right_paddle"`
}

// Snapshot is a point-in-time copy of everything a renderer needs.
type Snapshot struct {
	State       State         `json:"state"`
	Scores      scores.Scores `json:"scores"`
	Ball        Circle        `json:"ball"`
	LeftPaddle  Rect          `json:"left_paddle"`
	RightPaddle Rect          `json:"right_paddle"`
	Colors      Colors        `json:"colors"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	Attached    bool          `json:"attached"`
}

func rectOf(p *paddle.Paddle) Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}
