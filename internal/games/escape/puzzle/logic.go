package puzzle

// Move rejection reasons.
const (
	ReasonOutOfBounds = "out_of_bounds"
	ReasonObstacle    = "obstacle"
	ReasonGateClosed  = "gate_closed"
)

// Push failure reasons. A push result only carries one of these as a diagnostic.
const (
	PushNotSlider   = "not_a_slider"
	PushOutOfBounds = "out_of_bounds"
	PushObstacle    = "obstacle"
	PushMechanism   = "mechanism"
)

// MoveCheck is the result of IsValidMove.
type MoveCheck struct {
	Valid  bool
	Reason string // Empty when Valid
}

// PushResult is the result of TryPushSlider.
// NewSliderPos is meaningful only when Success is true.
type PushResult struct {
	Success      bool
	NewSliderPos Position
	Reason       string
}

// IsSamePosition reports whether two positions are the same cell.
func IsSamePosition(a, b Position) bool {
	return a.Equal(b)
}

// IsInBounds reports whether 0 <= x < width and 0 <= y < height.
func IsInBounds(pos Position, width, height int) bool {
	return pos.X >= 0 && pos.X < width && pos.Y >= 0 && pos.Y < height
}

// IsCollidingWithObstacle is a point-in-rectangle test against the obstacle.
func IsCollidingWithObstacle(pos Position, o Obstacle) bool {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return pos.X >= o.X && pos.X < o.X+w &&
		pos.Y >= o.Y && pos.Y < o.Y+h
}

// IsCollidingWithMechanism reports whether pos is occupied by the mechanism.
// Sliders always occupy their run, gates only while closed, switches their
// single cell. Rotators never collide.
func IsCollidingWithMechanism(pos Position, m Mechanism) bool {
	switch m.Kind {
	case KindSlider:
		return inRun(pos, m.Anchor(), m.Direction, m.runLength())
	case KindGate:
		if !m.Active {
			return false
		}
		return inRun(pos, m.Anchor(), m.Direction, m.runLength())
	case KindSwitch:
		return pos.Equal(m.Anchor())
	default:
		return false
	}
}

// IsValidMove checks a move in fixed order: bounds, static obstacles, closed
// gates. It short-circuits on the first failure.
//
// Sliders and switches do not block here. Callers handle pushing and
// triggering separately, or use a Session which does both.
func IsValidMove(from, to Position, level *LevelConfig, mechanisms []Mechanism) MoveCheck {
	if !IsInBounds(to, level.Width, level.Height) {
		return MoveCheck{Reason: ReasonOutOfBounds}
	}

	for _, o := range level.Obstacles {
		if IsCollidingWithObstacle(to, o) {
			return MoveCheck{Reason: ReasonObstacle}
		}
	}

	for _, m := range mechanisms {
		if m.Kind == KindGate && m.Active && IsCollidingWithMechanism(to, m) {
			return MoveCheck{Reason: ReasonGateClosed}
		}
	}

	return MoveCheck{Valid: true}
}

// TryPushSlider moves the slider by exactly target-player. Every cell of the
// new footprint must be in bounds, clear of obstacles and clear of every other
// mechanism. The push is all-or-nothing.
//
// The displacement is whatever delta the caller supplies. Callers are expected
// to pass unit steps.
func TryPushSlider(player, target Position, slider Mechanism, level *LevelConfig, mechanisms []Mechanism) PushResult {
	if slider.Kind != KindSlider {
		return PushResult{Reason: PushNotSlider}
	}

	dx := target.X - player.X
	dy := target.Y - player.Y
	newPos := slider.Anchor().Add(dx, dy)

	for _, cell := range runCells(newPos, slider.Direction, slider.runLength()) {
		if !IsInBounds(cell, level.Width, level.Height) {
			return PushResult{Reason: PushOutOfBounds}
		}
		for _, o := range level.Obstacles {
			if IsCollidingWithObstacle(cell, o) {
				return PushResult{Reason: PushObstacle}
			}
		}
		for _, m := range mechanisms {
			if m.ID != slider.ID && IsCollidingWithMechanism(cell, m) {
				return PushResult{Reason: PushMechanism}
			}
		}
	}

	return PushResult{Success: true, NewSliderPos: newPos}
}

// TriggerSwitch toggles the switch and the mechanism it is linked to.
// It returns a new slice and never mutates its inputs. Non-switches and
// switches without a link return the input unchanged.
func TriggerSwitch(sw Mechanism, mechanisms []Mechanism) []Mechanism {
	if sw.Kind != KindSwitch || sw.LinkedTo == "" {
		return mechanisms
	}

	out := make([]Mechanism, len(mechanisms))
	for i, m := range mechanisms {
		switch m.ID {
		case sw.ID:
			m.Active = !sw.Active
		case sw.LinkedTo:
			m.Active = !m.Active
		}
		out[i] = m
	}
	return out
}

// HasReachedGoal reports whether the player stands on the goal cell.
func HasReachedGoal(player, goal Position) bool {
	return player.Equal(goal)
}

// InitializeGameState returns a fresh state for the level.
func InitializeGameState(level *LevelConfig) GameState {
	return GameState{
		CurrentLevel:    level.ID,
		PlayerPosition:  level.Player,
		MoveHistory:     []MoveRecord{},
		MechanismStates: make(map[string]any),
	}
}

// StepDirection returns the sign of the displacement on each axis.
func StepDirection(from, to Position) (dx, dy int) {
	return sign(to.X - from.X), sign(to.Y - from.Y)
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
