// Package canvas holds the drawable surface handle the engine reads its
// bounds from.
package canvas

import "sync"

// Surface reports the current drawable area. Implementations may change size
// between ticks.
type Surface interface {
	Size() (width, height float64)
}

// Canvas is a resizable Surface safe for use from several goroutines.
type Canvas struct {
	width  float64
	height float64
	mu     sync.RWMutex
}

// New creates a canvas of the given size.
func New(width, height float64) *Canvas {
	return &Canvas{width: width, height: height}
}

func (c *Canvas) Size() (float64, float64) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.width, c.height
}

// Resize changes the canvas dimensions. Non-positive values are ignored.
func (c *Canvas) Resize(width, height float64) bool {
	if width <= 0 || height <= 0 {
		return false
	}

	c.mu.Lock()
	c.width = width
	c.height = height
	c.mu.Unlock()

	return true
}
