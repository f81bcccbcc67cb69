package game

import (
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/evermake/microgames/ball"
	"github.com/evermake/microgames/canvas"
	"github.com/evermake/microgames/paddle"
	"github.com/evermake/microgames/scores"
)

// ErrInvalidConfiguration is returned by NewEngine when a speed or size would
// make the simulation divide by zero or run backwards.
var ErrInvalidConfiguration = errors.New("game: invalid configuration")

// SpeedSource is polled once per tick for a paddle's speed percent.
type SpeedSource interface {
	SpeedPercent() float64
}

// Options configures an Engine. Sizes and speeds are fixed for the engine's
// lifetime.
type Options struct {
	BallMaxSpeed   float64
	PaddleMaxSpeed float64
	PaddleWidth    float64
	PaddleHeight   float64
	BallRadius     float64
	Colors         Colors

	// Surface may be nil and attached later with AttachSurface.
	Surface canvas.Surface

	// LeftInput and RightInput may be nil, which reads as an idle paddle.
	LeftInput  SpeedSource
	RightInput SpeedSource

	// Driver defaults to a TickerDriver at DefaultTickInterval.
	Driver Driver

	// Rand defaults to a time-seeded math/rand source.
	Rand Rand
}

// Engine owns the ball, both paddles, the scores and the lifecycle state. All
// mutation happens under its mutex, so one tick runs at a time.
type Engine struct {
	ballMaxSpeed   float64
	paddleMaxSpeed float64
	colors         Colors

	surface    canvas.Surface
	leftInput  SpeedSource
	rightInput SpeedSource
	driver     Driver
	rnd        Rand

	ball        *ball.Ball
	leftPaddle  *paddle.Paddle
	rightPaddle *paddle.Paddle
	state       State
	scores      scores.Scores
	run         uint64
	mu          sync.Mutex

	listeners   []Listener
	listenersMu sync.RWMutex
}

// NewEngine validates opts and returns a paused engine. The ball has zero
// velocity until the first Reset.
func NewEngine(opts Options) (*Engine, error) {
	if err := validate(opts); err != nil {
		return nil, err
	}

	driver := opts.Driver
	if driver == nil {
		driver = NewTickerDriver(DefaultTickInterval)
	}

	rnd := opts.Rand
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Engine{
		ballMaxSpeed:   opts.BallMaxSpeed,
		paddleMaxSpeed: opts.PaddleMaxSpeed,
		colors:         opts.Colors,
		surface:        opts.Surface,
		leftInput:      opts.LeftInput,
		rightInput:     opts.RightInput,
		driver:         driver,
		rnd:            rnd,
		ball:           ball.New(opts.BallRadius),
		leftPaddle:     paddle.New(opts.PaddleWidth, opts.PaddleHeight),
		rightPaddle:    paddle.New(opts.PaddleWidth, opts.PaddleHeight),
		state:          StatePaused,
	}, nil
}

func validate(opts Options) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"ball max speed", opts.BallMaxSpeed},
		{"paddle max speed", opts.PaddleMaxSpeed},
		{"paddle width", opts.PaddleWidth},
		{"paddle height", opts.PaddleHeight},
		{"ball radius", opts.BallRadius},
	}

	for _, f := range fields {
		if !(f.value > 0) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a positive number, got %v", ErrInvalidConfiguration, f.name, f.value)
		}
	}
	return nil
}

// AttachSurface swaps the surface the engine reads its bounds from. Passing
// nil detaches it, which turns Tick and Reset into no-ops.
func (e *Engine) AttachSurface(s canvas.Surface) {
	e.mu.Lock()
	e.surface = s
	e.mu.Unlock()
}

// Subscribe registers a listener for transitions and points.
func (e *Engine) Subscribe(l Listener) {
	e.listenersMu.Lock()
	e.listeners = append(e.listeners, l)
	e.listenersMu.Unlock()
}

// Pause stops the simulation. Entities and scores are left as they are.
func (e *Engine) Pause() {
	e.mu.Lock()
	events := e.transitionLocked(StatePaused)
	e.mu.Unlock()

	e.emit(events)
}

// Resume starts simulating from the current positions. From gameover this
// continues with the ball where it left the surface; call Reset first for a
// fresh rally.
func (e *Engine) Resume() {
	e.mu.Lock()
	events := e.transitionLocked(StatePlaying)
	e.mu.Unlock()

	e.emit(events)
}

// Reset pauses the game, zeroes the scores, centers both paddles and serves
// the ball from the middle of the surface in a random direction.
func (e *Engine) Reset() {
	e.mu.Lock()
	events := e.resetLocked()
	e.mu.Unlock()

	e.emit(events)
}

func (e *Engine) resetLocked() []Event {
	if e.surface == nil {
		return nil
	}

	width, height := e.surface.Size()

	e.scores.Reset()
	events := e.transitionLocked(StatePaused)

	e.ball.X = width / 2
	e.ball.Y = height / 2
	directionX := e.randomSign()
	directionY := e.randomSign()
	speedY := math.Min(1, e.rnd.Float64()+0.5) * e.ballMaxSpeed
	e.ball.Dx = directionX * e.ballMaxSpeed
	e.ball.Dy = directionY * speedY

	e.leftPaddle.Center(height)
	e.rightPaddle.Center(height)
	e.leftPaddle.X = 0
	e.rightPaddle.X = width - e.rightPaddle.Width

	log.Printf("[ENGINE] Game reset, serving dx=%.2f dy=%.2f", e.ball.Dx, e.ball.Dy)
	return append(events, Event{Kind: EventReset, State: e.state, Scores: e.scores})
}

// Tick runs one physics step while playing. It is a no-op in any other state
// or without a surface.
func (e *Engine) Tick() {
	e.mu.Lock()
	events := e.stepLocked()
	e.mu.Unlock()

	e.emit(events)
}

// driverTick returns the tick handed to the driver for one playing run. A
// tick from an earlier run, still blocked on the mutex when the game was
// paused and resumed, does nothing.
func (e *Engine) driverTick(run uint64) func() {
	return func() {
		e.mu.Lock()
		var events []Event
		if run == e.run {
			events = e.stepLocked()
		}
		e.mu.Unlock()

		e.emit(events)
	}
}

func (e *Engine) stepLocked() []Event {
	if e.state != StatePlaying || e.surface == nil {
		return nil
	}

	width, height := e.surface.Size()

	outcome := Step(e.ball, e.leftPaddle, e.rightPaddle, StepInput{
		Width:             width,
		Height:            height,
		LeftSpeedPercent:  readSpeed(e.leftInput),
		RightSpeedPercent: readSpeed(e.rightInput),
		BallMaxSpeed:      e.ballMaxSpeed,
		PaddleMaxSpeed:    e.paddleMaxSpeed,
		Rand:              e.rnd,
	})

	var events []Event
	switch outcome {
	case OutcomeExitedLeft:
		e.scores.Right++
		events = append(events, Event{Kind: EventPointScored, Outcome: outcome, Scorer: paddle.Right})
		log.Printf("[ENGINE] Right player scored! Score: %d-%d", e.scores.Left, e.scores.Right)
	case OutcomeExitedRight:
		e.scores.Left++
		events = append(events, Event{Kind: EventPointScored, Outcome: outcome, Scorer: paddle.Left})
		log.Printf("[ENGINE] Left player scored! Score: %d-%d", e.scores.Left, e.scores.Right)
	}

	if outcome != OutcomeNone {
		events = append(events, e.transitionLocked(StateGameOver)...)
		for i := range events {
			events[i].State = e.state
			events[i].Scores = e.scores
		}
	}
	return events
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.state
}

// Scores returns the current scores.
func (e *Engine) Scores() scores.Scores {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.scores
}

// Snapshot returns a copy of the state a renderer draws each frame.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{
		State:       e.state,
		Scores:      e.scores,
		Ball:        Circle{X: e.ball.X, Y: e.ball.Y, Radius: e.ball.Radius},
		LeftPaddle:  rectOf(e.leftPaddle),
		RightPaddle: rectOf(e.rightPaddle),
		Colors:      e.colors,
	}
	if e.surface != nil {
		snap.Width, snap.Height = e.surface.Size()
		snap.Attached = true
	}
	return snap
}

// transitionLocked moves to s and starts or stops the driver to match. It
// returns the change event, if any, for emission once the lock is released.
func (e *Engine) transitionLocked(s State) []Event {
	if s == StatePlaying {
		if e.state != StatePlaying {
			e.run++
		}
		e.driver.Start(e.driverTick(e.run))
	} else {
		e.driver.Stop()
	}

	if e.state == s {
		return nil
	}

	log.Printf("[ENGINE] State %s -> %s", e.state, s)
	e.state = s

	return []Event{{Kind: EventStateChanged, State: s, Scores: e.scores}}
}

func (e *Engine) emit(events []Event) {
	if len(events) == 0 {
		return
	}

	e.listenersMu.RLock()
	listeners := make([]Listener, len(e.listeners))
	copy(listeners, e.listeners)
	e.listenersMu.RUnlock()

	for _, ev := range events {
		for _, l := range listeners {
			l(ev)
		}
	}
}

func (e *Engine) randomSign() float64 {
	if e.rnd.Float64() < 0.5 {
		return -1
	}
	return 1
}

// readSpeed treats a missing input as idle and a non-finite reading as zero so
// it cannot poison entity positions.
func readSpeed(s SpeedSource) float64 {
	if s == nil {
		return 0
	}

	v := s.SpeedPercent()
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
