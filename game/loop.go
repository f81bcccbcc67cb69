package game

import (
	"sync"
	"time"
)

// DefaultTickInterval is roughly one display refresh at 60Hz.
const DefaultTickInterval = 16 * time.Millisecond

// Driver repeatedly invokes a tick function while started. The engine starts
// it on entering playing and stops it on leaving.
type Driver interface {
	Start(tick func())
	Stop()
	Running() bool
}

// TickerDriver drives ticks from a time.Ticker on a single goroutine.
type TickerDriver struct {
	interval time.Duration
	ticker   *time.Ticker
	stopChan chan struct{}
	mu       sync.Mutex
}

// NewTickerDriver creates a stopped driver ticking every interval.
func NewTickerDriver(interval time.Duration) *TickerDriver {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	return &TickerDriver{interval: interval}
}

// Start begins ticking. Calling it while already running is a no-op.
func (d *TickerDriver) Start(tick func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ticker != nil {
		return
	}

	d.ticker = time.NewTicker(d.interval)
	d.stopChan = make(chan struct{})

	go loop(d.ticker.C, d.stopChan, tick)
}

// Stop halts ticking. It does not wait for an in-flight tick to return, so it
// is safe to call from inside the tick function.
func (d *TickerDriver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ticker == nil {
		return
	}

	d.ticker.Stop()
	d.ticker = nil
	close(d.stopChan)
}

func (d *TickerDriver) Running() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.ticker != nil
}

func loop(ticks <-chan time.Time, stop <-chan struct{}, tick func()) {
	for {
		select {
		case <-stop:
			return
		case <-ticks:
			// select picks randomly when both are ready
			select {
			case <-stop:
				return
			default:
			}
			tick()
		}
	}
}
