package game

import (
	"github.com/evermake/microgames/ball"
	"github.com/evermake/microgames/paddle"
)

// StepInput is everything a physics step reads besides the entities. Speed
// percents are nominally in [-1, 1] and are not clamped here.
type StepInput struct {
	Width             float64
	Height            float64
	LeftSpeedPercent  float64
	RightSpeedPercent float64
	BallMaxSpeed      float64
	PaddleMaxSpeed    float64
	Rand              Rand
}

// Step advances the paddles and the ball by one tick. It reports when the ball
// leaves the surface and never touches state or scores.
func Step(b *ball.Ball, left, right *paddle.Paddle, in StepInput) Outcome {
	left.Dy = in.LeftSpeedPercent * in.PaddleMaxSpeed
	right.Dy = in.RightSpeedPercent * in.PaddleMaxSpeed

	left.Move(in.Height)
	right.Move(in.Height)

	b.Move()

	// Exit is decided on the raw position, before any bounce correction.
	if b.Left() <= 0 {
		return OutcomeExitedLeft
	} else if b.Right() >= in.Width {
		return OutcomeExitedRight
	}

	bounceOffWalls(b, in.Height)

	if Collides(b, left) {
		b.X = left.Right() + b.Radius
		b.Dx = -b.Dx
		AdjustVerticalSpeed(b, left, in.BallMaxSpeed, in.PaddleMaxSpeed, in.Rand)
	} else if Collides(b, right) {
		b.X = right.X - b.Radius
		b.Dx = -b.Dx
		AdjustVerticalSpeed(b, right, in.BallMaxSpeed, in.PaddleMaxSpeed, in.Rand)
	}

	return OutcomeNone
}

// bounceOffWalls reflects the ball off the floor or the ceiling, never both.
func bounceOffWalls(b *ball.Ball, height float64) {
	if b.Bottom() > height {
		b.Y = height - b.Radius
		b.Dy = -b.Dy
	} else if b.Top() < 0 {
		b.Y = b.Radius
		b.Dy = -b.Dy
	}
}
