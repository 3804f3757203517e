// Package physics implements the pin-pulling ball simulation: gravity
// integration, pin and ball collisions, support detection and goal settling.
// This package is UI-agnostic and has no external dependencies.
//
// Coordinates are level units (percent of the play area). Y grows downward.
package physics

// Pin is a pullable platform. Pulled pins stay in the slice but no longer
// support or collide with balls.
type Pin struct {
	ID        int
	X, Y      float64
	BlockedBy []int // IDs that must be pulled first
	Pulled    bool
}

// BallColor tells the game what happens when the ball reaches the goal.
type BallColor string

const (
	Treasure BallColor = "treasure"
	Danger   BallColor = "danger"
)

// Ball is a simulated ball.
type Ball struct {
	ID       int
	X, Y     float64
	VX, VY   float64
	Color    BallColor
	Radius   float64
	IsMoving bool
}

// Speed2 returns the squared speed.
func (b Ball) Speed2() float64 {
	return b.VX*b.VX + b.VY*b.VY
}

// Bounds is the play rectangle balls are clamped to.
type Bounds struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Goal is the centre of the goal pocket.
type Goal struct {
	X, Y float64
}
