package input

import (
	"github.com/eiannone/keyboard"
)

// NudgeStep is how far one key press moves a paddle slider.
const NudgeStep = 0.25

// Command is a lifecycle request typed on the keyboard.
type Command int

const (
	CommandNone Command = iota
	CommandToggle
	CommandReset
	CommandQuit
)

// KeyInput represents a keyboard input event
type KeyInput struct {
	Char rune
	Key  keyboard.Key
}

// KeyboardHandler turns key presses into slider moves and commands. W/S drive
// the left paddle, the arrow keys drive the right one.
type KeyboardHandler struct {
	Left  *Slider
	Right *Slider

	inputChan chan KeyInput
}

// NewKeyboardHandler creates a handler driving the given sliders.
func NewKeyboardHandler(left, right *Slider) *KeyboardHandler {
	return &KeyboardHandler{
		Left:      left,
		Right:     right,
		inputChan: make(chan KeyInput),
	}
}

// Start begins listening for keyboard input
func (h *KeyboardHandler) Start() error {
	if err := keyboard.Open(); err != nil {
		return err
	}

	go func() {
		for {
			char, key, err := keyboard.GetKey()
			if err != nil {
				close(h.inputChan)
				return
			}
			h.inputChan <- KeyInput{Char: char, Key: key}
		}
	}()

	return nil
}

// Stop releases the terminal.
func (h *KeyboardHandler) Stop() {
	keyboard.Close()
}

// GetInputChan returns the input channel. It is closed when reading fails.
func (h *KeyboardHandler) GetInputChan() <-chan KeyInput {
	return h.inputChan
}

// Apply moves a slider for paddle keys and returns the command for the rest.
func (h *KeyboardHandler) Apply(in KeyInput) Command {
	switch in.Key {
	case keyboard.KeyArrowUp:
		h.Right.Nudge(-NudgeStep)
		return CommandNone
	case keyboard.KeyArrowDown:
		h.Right.Nudge(NudgeStep)
		return CommandNone
	case keyboard.KeySpace:
		return CommandToggle
	case keyboard.KeyEsc, keyboard.KeyCtrlC:
		return CommandQuit
	}

	switch in.Char {
	case 'w', 'W':
		h.Left.Nudge(-NudgeStep)
	case 's', 'S':
		h.Left.Nudge(NudgeStep)
	case 'x', 'X':
		h.Left.Center()
		h.Right.Center()
	case 'p', 'P':
		return CommandToggle
	case 'r', 'R':
		return CommandReset
	case 'q', 'Q':
		return CommandQuit
	}

	return CommandNone
}
