package ball

// Ball is the single ball of a game. Radius is fixed at construction; the
// physics step owns every other field.
type Ball struct {
	X, Y   float64
	Dx, Dy float64
	Radius float64
}

// New returns a ball at the origin with zero velocity. It is positioned and
// served by the engine's reset.
func New(radius float64) *Ball {
	return &Ball{Radius: radius}
}

// Move advances the ball by its velocity.
func (b *Ball) Move() {
	b.X += b.Dx
	b.Y += b.Dy
}

// Left, Right, Top and Bottom are the edges of the ball's bounding square.
func (b *Ball) Left() float64 { return b.X - b.Radius }
func (b *Ball) Right() float64 { return b.X + b.Radius }
func (b *Ball) Top() float64 { return b.Y - b.Radius }
func (b *Ball) Bottom() float64 { return b.Y + b.Radius }
