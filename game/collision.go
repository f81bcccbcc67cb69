package game

import (
	"github.com/evermake/microgames/ball"
	"github.com/evermake/microgames/paddle"
)

// spinFactor scales how much of the paddle's motion is passed to the ball on
// a bounce.
const spinFactor = 0.2

// Rand is the random source used for serves and bounces. *rand.Rand from
// math/rand satisfies it.
type Rand interface {
	Float64() float64
}

// Collides reports whether the ball's bounding square overlaps the paddle.
// Edges that only touch do not count.
func Collides(b *ball.Ball, p *paddle.Paddle) bool {
	return b.Left() < p.Right() &&
		b.Right() > p.X &&
		b.Top() < p.Bottom() &&
		b.Bottom() > p.Y
}

// AdjustVerticalSpeed adds vertical speed proportional to the paddle's own
// motion, scaled by a fresh random factor in [0, 1), and keeps the result
// within ±ballMaxSpeed.
func AdjustVerticalSpeed(b *ball.Ball, p *paddle.Paddle, ballMaxSpeed, paddleMaxSpeed float64, rnd Rand) {
	paddleSpeedPercent := p.Dy / paddleMaxSpeed
	adjustment := ballMaxSpeed * paddleSpeedPercent * rnd.Float64() * spinFactor

	b.Dy = clamp(b.Dy+adjustment, -ballMaxSpeed, ballMaxSpeed)
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		return hi
	}
	if v < lo {
		return lo
	}
	return v
}
