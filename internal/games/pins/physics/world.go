package physics

import "math"

const floorEpsilon = 1e-9

// Outcome is the state of a level attempt.
type Outcome int

const (
	Playing Outcome = iota
	Won
	Lost
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Loss reasons.
const (
	LossDanger  = "danger_in_goal"
	LossStalled = "stalled"
)

// WorldConfig holds the game rules layered on top of the engine.
type WorldConfig struct {
	GoalRadius float64 // Passed to IsInGoal
	StallTicks int     // Lose this many ticks after the last pull or capture; 0 disables
}

// World runs one level attempt: pins, balls and the win/loss judgement.
// Captured treasure leaves the simulation.
type World struct {
	engine *Engine
	cfg    WorldConfig
	bounds Bounds
	goal   Goal

	pins     []Pin
	balls    []Ball
	captured map[int]bool
	treasure int

	tick       int
	lastChange int
	outcome    Outcome
	reason     string
	culprit    int
}

// NewWorld creates a world on private copies of pins and balls.
func NewWorld(engine *Engine, pins []Pin, balls []Ball, bounds Bounds, goal Goal, cfg WorldConfig) *World {
	w := &World{
		engine:   engine,
		cfg:      cfg,
		bounds:   bounds,
		goal:     goal,
		pins:     append([]Pin(nil), pins...),
		balls:    append([]Ball(nil), balls...),
		captured: make(map[int]bool),
	}
	for _, b := range w.balls {
		if b.Color == Treasure {
			w.treasure++
		}
	}
	return w
}

// Pins returns a copy of the pin list.
func (w *World) Pins() []Pin {
	return append([]Pin(nil), w.pins...)
}

// Balls returns a copy of every ball, captured ones included.
func (w *World) Balls() []Ball {
	return append([]Ball(nil), w.balls...)
}

// Captured reports whether the ball has been captured by the goal.
func (w *World) Captured(ballID int) bool {
	return w.captured[ballID]
}

// Treasure returns the captured and total treasure counts.
func (w *World) Treasure() (captured, total int) {
	return len(w.captured), w.treasure
}

// Bounds returns the play rectangle.
func (w *World) Bounds() Bounds { return w.bounds }

// Goal returns the goal centre.
func (w *World) Goal() Goal { return w.goal }

// Tick returns the number of steps taken.
func (w *World) Tick() int { return w.tick }

// Outcome returns the current outcome.
func (w *World) Outcome() Outcome { return w.outcome }

// LossReason returns why the attempt was lost, and the offending ball ID
// for a danger loss (-1 otherwise).
func (w *World) LossReason() (string, int) {
	return w.reason, w.culprit
}

// CanPull reports whether the pin may be pulled now.
func (w *World) CanPull(id int) error {
	return CanPull(w.pins, id)
}

// Pull pulls a pin, enforcing its blockers.
func (w *World) Pull(id int) error {
	pins, err := Pull(w.pins, id)
	if err != nil {
		return err
	}
	w.pins = pins
	w.lastChange = w.tick
	return nil
}

// Step updates every live ball, runs the collision pass, then judges.
func (w *World) Step() Outcome {
	if w.outcome != Playing {
		return w.outcome
	}
	w.tick++

	for i := range w.balls {
		b := &w.balls[i]
		if w.captured[b.ID] || w.restingOnFloor(*b) {
			continue
		}
		w.engine.UpdateBall(b, w.pins, w.bounds, w.goal)
	}

	w.collide()
	w.judge()
	return w.outcome
}

// restingOnFloor is a ball the engine stopped near the floor. Such balls are
// left alone until another ball knocks them.
func (w *World) restingOnFloor(b Ball) bool {
	if b.IsMoving || w.engine.IsSupported(b, w.pins) {
		return false
	}
	return b.Y >= w.bounds.MaxY-b.Radius-w.engine.p.FloorRestDistance
}

func (w *World) collide() {
	live := make([]Ball, 0, len(w.balls))
	idx := make([]int, 0, len(w.balls))
	for i, b := range w.balls {
		if !w.captured[b.ID] {
			live = append(live, b)
			idx = append(idx, i)
		}
	}
	if len(live) < 2 {
		return
	}
	w.engine.CheckBallCollisions(live)
	for k, i := range idx {
		w.balls[i] = live[k]
	}
}

func (w *World) judge() {
	for i := range w.balls {
		b := &w.balls[i]
		if w.captured[b.ID] {
			continue
		}
		landed := w.landed(*b)
		if b.IsMoving && !landed {
			continue
		}
		if landed && b.IsMoving && math.Abs(b.VX) < w.engine.p.VelocityThreshold {
			b.VX = 0
			b.VY = 0
			b.IsMoving = false
		}
		if !IsInGoal(*b, w.goal.X, w.goal.Y, w.cfg.GoalRadius) {
			continue
		}
		if b.Color == Danger {
			w.lose(LossDanger, b.ID)
			return
		}
		w.captured[b.ID] = true
		w.lastChange = w.tick
	}

	if w.treasure > 0 && len(w.captured) == w.treasure {
		w.outcome = Won
		return
	}

	if !AllPulled(w.pins) {
		return
	}
	if w.allResting() {
		w.lose(LossStalled, -1)
		return
	}
	if w.cfg.StallTicks > 0 && w.tick-w.lastChange >= w.cfg.StallTicks {
		w.lose(LossStalled, -1)
	}
}

// landed is a ball on the floor whose bounce is smaller than one tick of
// gravity. Floor bounces of that size never decay below the rest threshold,
// so the world treats them as resting for judgement.
func (w *World) landed(b Ball) bool {
	return b.Y >= w.bounds.MaxY-b.Radius-floorEpsilon && math.Abs(b.VY) <= w.engine.p.Gravity
}

func (w *World) allResting() bool {
	for _, b := range w.balls {
		if !w.captured[b.ID] && b.IsMoving {
			return false
		}
	}
	return true
}

func (w *World) lose(reason string, ball int) {
	w.outcome = Lost
	w.reason = reason
	w.culprit = ball
}

// Run steps until the outcome is decided or maxTicks is reached.
func (w *World) Run(maxTicks int) Outcome {
	for range maxTicks {
		if w.Step() != Playing {
			break
		}
	}
	return w.outcome
}
