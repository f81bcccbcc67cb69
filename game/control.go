package game

import (
	"errors"
	"fmt"
)

// Action is a lifecycle command received from a remote control surface.
type Action string

const (
	ActionPause  Action = "pause"
	ActionResume Action = "resume"
	ActionReset  Action = "reset"
	ActionToggle Action = "toggle"
)

var ErrUnknownAction = errors.New("unknown action")

func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionPause, ActionResume, ActionReset, ActionToggle:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
}

// Apply runs the command named by a.
func (e *Engine) Apply(a Action) error {
	switch a {
	case ActionPause:
		e.Pause()
	case ActionResume:
		e.Resume()
	case ActionReset:
		e.Reset()
	case ActionToggle:
		e.Toggle()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, a)
	}
	return nil
}

// Toggle pauses a running game and resumes a paused one. From gameover it
// resets, leaving the new rally paused until the next toggle. The state is
// read and changed under one lock, so concurrent toggles never both resume.
func (e *Engine) Toggle() {
	e.mu.Lock()
	var events []Event
	switch e.state {
	case StatePlaying:
		events = e.transitionLocked(StatePaused)
	case StatePaused:
		events = e.transitionLocked(StatePlaying)
	case StateGameOver:
		events = e.resetLocked()
	}
	e.mu.Unlock()

	e.emit(events)
}
