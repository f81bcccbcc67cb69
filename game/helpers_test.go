package game

import (
	"sync"

	"github.com/evermake/microgames/canvas"
)

// seqRand replays a fixed sequence of values, wrapping around at the end.
type seqRand struct {
	values []float64
	next   int
}

func (r *seqRand) Float64() float64 {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v
}

// fakeDriver records what the engine asked of it without ticking on its own.
type fakeDriver struct {
	mu      sync.Mutex
	running bool
	starts  int
	stops   int
	tick    func()
}

func (d *fakeDriver) Start(tick func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.starts++
	d.running = true
	d.tick = tick
}

func (d *fakeDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stops++
	d.running = false
}

func (d *fakeDriver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.running
}

type fixedSpeed float64

func (f fixedSpeed) SpeedPercent() float64 { return float64(f) }

// Scenario dimensions: 800x400 surface, 10x60 paddles, radius 8 ball,
// ball max speed 4, paddle max speed 5.
const (
	testWidth          = 800.0
	testHeight         = 400.0
	testPaddleWidth    = 10.0
	testPaddleHeight   = 60.0
	testBallRadius     = 8.0
	testBallMaxSpeed   = 4.0
	testPaddleMaxSpeed = 5.0
)

func newTestEngine(rnd Rand, left, right SpeedSource) (*Engine, *fakeDriver, *canvas.Canvas) {
	driver := &fakeDriver{}
	surface := canvas.New(testWidth, testHeight)
	e, err := NewEngine(Options{
		BallMaxSpeed:   testBallMaxSpeed,
		PaddleMaxSpeed: testPaddleMaxSpeed,
		PaddleWidth:    testPaddleWidth,
		PaddleHeight:   testPaddleHeight,
		BallRadius:     testBallRadius,
		Surface:        surface,
		LeftInput:      left,
		RightInput:     right,
		Driver:         driver,
		Rand:           rnd,
	})
	if err != nil {
		panic(err)
	}
	return e, driver, surface
}
