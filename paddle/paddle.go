package paddle

import (
	"errors"
	"fmt"
)

// Side identifies which end of the surface a paddle defends.
type Side string

const (
	Left  Side = "left"
	Right Side = "right"
)

// Paddle is a vertical bat. Width and Height are fixed at construction,
// X is set by the engine's reset and Dy is derived every tick from the
// paddle's speed input.
type Paddle struct {
	X, Y   float64
	Width  float64
	Height float64
	Dy     float64
}

func New(width, height float64) *Paddle {
	return &Paddle{Width: width, Height: height}
}

// Move advances the paddle by Dy and clamps it inside [0, surfaceHeight-Height].
// Dy is left untouched on clamp, so a paddle held against a wall stays there
// until its input changes direction.
func (p *Paddle) Move(surfaceHeight float64) {
	p.Y += p.Dy

	if p.Y < 0 {
		p.Y = 0
	} else if yMax := surfaceHeight - p.Height; p.Y > yMax {
		p.Y = yMax
	}
}

// Center places the paddle at mid-height and stops it.
func (p *Paddle) Center(surfaceHeight float64) {
	p.Y = surfaceHeight/2 - p.Height/2
	p.Dy = 0
}

// Right returns the x coordinate of the paddle's right edge.
func (p *Paddle) Right() float64 { return p.X + p.Width }

// Bottom returns the y coordinate of the paddle's bottom edge.
func (p *Paddle) Bottom() float64 { return p.Y + p.Height }

// ErrUnknownSide is returned by ParseSide for anything but "left" or "right".
var ErrUnknownSide = errors.New("unknown paddle side")

func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Left, Right:
		return Side(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSide, s)
}
