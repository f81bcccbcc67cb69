// Package input provides paddle speed sources the engine polls once per tick.
package input

import (
	"math"
	"sync/atomic"
)

// Speed is a continuously updated speed percent, nominally in [-1, 1].
type Speed interface {
	SpeedPercent() float64
}

// Slider is a Speed that any goroutine may set while the engine reads it. The
// value is stored as float bits so a tick never observes a torn write.
type Slider struct {
	bits atomic.Uint64
}

// NewSlider creates a slider at rest.
func NewSlider() *Slider {
	return &Slider{}
}

func (s *Slider) SpeedPercent() float64 {
	return math.Float64frombits(s.bits.Load())
}

// Set stores percent clamped to [-1, 1]. NaN is stored as 0.
func (s *Slider) Set(percent float64) {
	s.bits.Store(math.Float64bits(clampPercent(percent)))
}

// Nudge moves the slider by delta and returns the new value.
func (s *Slider) Nudge(delta float64) float64 {
	for {
		old := s.bits.Load()
		next := clampPercent(math.Float64frombits(old) + delta)
		if s.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}

// Center brings the slider back to rest.
func (s *Slider) Center() {
	s.bits.Store(0)
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
