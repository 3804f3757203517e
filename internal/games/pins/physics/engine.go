package physics

import "math"

// RandSource is the random source for fall impulses.
// *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

// Engine advances balls with a fixed per-tick integrator.
// It holds no per-ball state; one engine can drive any number of worlds.
type Engine struct {
	p   Params
	rng RandSource
}

// NewEngine creates an engine. A nil rng disables the fall impulse.
func NewEngine(p Params, rng RandSource) *Engine {
	return &Engine{p: p, rng: rng}
}

// Params returns the engine tuning.
func (e *Engine) Params() Params {
	return e.p
}

// IsSupported reports whether a non-pulled pin holds the ball up.
func (e *Engine) IsSupported(ball Ball, pins []Pin) bool {
	for _, pin := range pins {
		if pin.Pulled {
			continue
		}
		offset := pin.Y - ball.Y
		if math.Abs(ball.X-pin.X) < e.p.SupportHalfWidth &&
			offset > e.p.SupportMinOffset && offset < e.p.SupportMaxOffset {
			return true
		}
	}
	return false
}

// UpdateBall advances one ball by one tick.
//
// A resting ball first checks for support and starts falling when none is
// found. A moving ball then runs, in order: gravity, position, pin contacts,
// bounds, goal settling (rich variant) and floor rest.
func (e *Engine) UpdateBall(ball *Ball, pins []Pin, bounds Bounds, goal Goal) {
	if !ball.IsMoving {
		if e.IsSupported(*ball, pins) {
			return
		}
		ball.IsMoving = true
		ball.VX += e.fallImpulse()
	}

	ball.VY += e.p.Gravity
	ball.X += ball.VX
	ball.Y += ball.VY

	for _, pin := range pins {
		if !pin.Pulled {
			e.resolvePin(ball, pin)
		}
	}

	e.clampBounds(ball, bounds)

	if e.p.Variant == VariantRich && e.settleInGoal(ball, goal) {
		return
	}

	if math.Abs(ball.VX) < e.p.VelocityThreshold &&
		math.Abs(ball.VY) < e.p.VelocityThreshold &&
		ball.Y >= bounds.MaxY-ball.Radius-e.p.FloorRestDistance {
		ball.VX = 0
		ball.VY = 0
		ball.IsMoving = false
	}
}

func (e *Engine) fallImpulse() float64 {
	if e.rng == nil || e.p.FallImpulse == 0 {
		return 0
	}
	return (e.rng.Float64()*2 - 1) * e.p.FallImpulse
}

func (e *Engine) resolvePin(ball *Ball, pin Pin) {
	dx := ball.X - pin.X
	dy := ball.Y - pin.Y
	dist := math.Hypot(dx, dy)
	minDist := ball.Radius + e.p.PinPadding
	if dist >= minDist {
		return
	}

	// Contact normal from pin to ball; straight up when centred.
	nx, ny := 0.0, -1.0
	if dist > 0 {
		nx, ny = dx/dist, dy/dist
	}

	overlap := minDist - dist
	ball.X += nx * overlap
	ball.Y += ny * overlap

	dot := ball.VX*nx + ball.VY*ny
	rvx := ball.VX - 2*dot*nx
	rvy := ball.VY - 2*dot*ny
	d := e.p.BounceDamping

	if e.p.Variant == VariantSimple {
		ball.VX = rvx * d
		ball.VY = rvy * d
		return
	}

	angle := math.Abs(math.Atan2(ny, nx) * 180 / math.Pi)
	if angle < 45 || angle > 135 {
		// Side hit: the vertical component keeps more of its speed.
		ball.VX = rvx*d + sign(dx)*e.p.SideSlide
		ball.VY = rvy * (1 + d) / 2
	} else {
		ball.VX = rvx*d + sign(dx)*e.p.TopSlide
		ball.VY = rvy * d
	}
}

func (e *Engine) clampBounds(ball *Ball, b Bounds) {
	d := e.p.BounceDamping
	r := ball.Radius

	if ball.X < b.MinX+r {
		ball.X = b.MinX + r
		ball.VX = -ball.VX * d
	} else if ball.X > b.MaxX-r {
		ball.X = b.MaxX - r
		ball.VX = -ball.VX * d
	}

	if ball.Y < b.MinY+r {
		ball.Y = b.MinY + r
		ball.VY = -ball.VY * d
	} else if ball.Y > b.MaxY-r {
		ball.Y = b.MaxY - r
		ball.VY = -math.Abs(ball.VY) * d
	}
}

// settleInGoal damps a ball inside the goal box and stops it once slow.
// Returns true when the ball came to rest.
func (e *Engine) settleInGoal(ball *Ball, goal Goal) bool {
	if math.Abs(ball.X-goal.X) >= e.p.GoalHalfWidth || math.Abs(ball.Y-goal.Y) >= e.p.GoalHalfHeight {
		return false
	}

	ball.VX *= e.p.GoalDamping
	ball.VY *= e.p.GoalDamping
	if math.Abs(ball.VX) >= e.p.VelocityThreshold || math.Abs(ball.VY) >= e.p.VelocityThreshold {
		return false
	}

	ball.VX = 0
	ball.VY = 0
	ball.IsMoving = false
	if ball.Y > goal.Y {
		ball.Y = goal.Y + e.p.GoalSeatOffset
	}
	return true
}

// CheckBallCollisions separates every overlapping pair and exchanges their
// velocities, damped. Both balls of a colliding pair end up moving.
// The slice is updated in place and returned.
func (e *Engine) CheckBallCollisions(balls []Ball) []Ball {
	d := e.p.BounceDamping

	for i := range balls {
		for j := i + 1; j < len(balls); j++ {
			a, b := &balls[i], &balls[j]

			dx := b.X - a.X
			dy := b.Y - a.Y
			dist := math.Hypot(dx, dy)
			minDist := a.Radius + b.Radius
			if dist >= minDist {
				continue
			}

			nx, ny := 1.0, 0.0
			if dist > 0 {
				nx, ny = dx/dist, dy/dist
			}

			half := (minDist - dist) / 2
			a.X -= nx * half
			a.Y -= ny * half
			b.X += nx * half
			b.Y += ny * half

			a.VX, b.VX = b.VX*d, a.VX*d
			a.VY, b.VY = b.VY*d, a.VY*d
			a.IsMoving = true
			b.IsMoving = true
		}
	}
	return balls
}

// IsInGoal reports whether the ball centre is closer to the goal than
// goalRadius + ball.Radius.
func IsInGoal(ball Ball, goalX, goalY, goalRadius float64) bool {
	return math.Hypot(ball.X-goalX, ball.Y-goalY) < goalRadius+ball.Radius
}

func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
