// Package levels provides the 100 built-in pin levels and loading of custom
// level files. Coordinates are percentages of the play area.
package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-puzzles/internal/games/pins/physics"
)

// BallSpec is a ball's starting position.
type BallSpec struct {
	X, Y  float64
	Color physics.BallColor
}

// Level is the static definition of a pin level.
type Level struct {
	ID    int
	Tier  Tier
	Pins  []physics.Pin
	Balls []BallSpec
	Goal  physics.Goal
	Hint  string
}

// NewBalls creates resting balls of the given radius. IDs follow
// declaration order starting at 0.
func (l *Level) NewBalls(radius float64) []physics.Ball {
	balls := make([]physics.Ball, len(l.Balls))
	for i, b := range l.Balls {
		balls[i] = physics.Ball{
			ID:     i,
			X:      b.X,
			Y:      b.Y,
			Color:  b.Color,
			Radius: radius,
		}
	}
	return balls
}

// ClonePins returns a private copy of the pin list.
func (l *Level) ClonePins() []physics.Pin {
	out := make([]physics.Pin, len(l.Pins))
	for i, p := range l.Pins {
		p.BlockedBy = append([]int(nil), p.BlockedBy...)
		out[i] = p
	}
	return out
}

// Treasure returns the number of treasure balls.
func (l *Level) Treasure() int {
	n := 0
	for _, b := range l.Balls {
		if b.Color == physics.Treasure {
			n++
		}
	}
	return n
}

// ValidationError contains details about a malformed level.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate rejects levels the pin game cannot play.
func Validate(l *Level) error {
	if len(l.Balls) == 0 {
		return ValidationError{Code: "NO_BALLS", Message: fmt.Sprintf("level %d has no balls", l.ID)}
	}
	if l.Treasure() == 0 {
		return ValidationError{Code: "NO_TREASURE", Message: fmt.Sprintf("level %d has no treasure ball", l.ID)}
	}
	if !inArea(l.Goal.X, l.Goal.Y) {
		return ValidationError{
			Code:    "OUT_OF_AREA",
			Message: fmt.Sprintf("level %d: goal (%v,%v) outside 0..100", l.ID, l.Goal.X, l.Goal.Y),
		}
	}

	ids := make(map[int]bool, len(l.Pins))
	for _, p := range l.Pins {
		if ids[p.ID] {
			return ValidationError{Code: "DUPLICATE_ID", Message: fmt.Sprintf("level %d: pin id %d used twice", l.ID, p.ID)}
		}
		ids[p.ID] = true
		if !inArea(p.X, p.Y) {
			return ValidationError{
				Code:    "OUT_OF_AREA",
				Message: fmt.Sprintf("level %d: pin %d at (%v,%v) outside 0..100", l.ID, p.ID, p.X, p.Y),
			}
		}
	}
	for _, p := range l.Pins {
		for _, b := range p.BlockedBy {
			if b == p.ID {
				return ValidationError{Code: "SELF_BLOCK", Message: fmt.Sprintf("level %d: pin %d blocks itself", l.ID, p.ID)}
			}
			if !ids[b] {
				return ValidationError{
					Code:    "DANGLING_BLOCKER",
					Message: fmt.Sprintf("level %d: pin %d blocked by unknown pin %d", l.ID, p.ID, b),
				}
			}
		}
	}
	for i, b := range l.Balls {
		if !inArea(b.X, b.Y) {
			return ValidationError{
				Code:    "OUT_OF_AREA",
				Message: fmt.Sprintf("level %d: ball %d at (%v,%v) outside 0..100", l.ID, i, b.X, b.Y),
			}
		}
		if b.Color != physics.Treasure && b.Color != physics.Danger {
			return ValidationError{Code: "BAD_COLOR", Message: fmt.Sprintf("level %d: ball %d has color %q", l.ID, i, b.Color)}
		}
	}
	return nil
}

func inArea(x, y float64) bool {
	return x >= 0 && x <= 100 && y >= 0 && y <= 100
}
