// Package puzzle implements the grid escape puzzle rules: move validation,
// slider pushes and switch/gate linkage.
// This package is UI-agnostic and has no external dependencies.
package puzzle

import "fmt"

// Position is a cell coordinate on the grid.
// X increases to the right, Y increases downward.
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Equal reports whether both positions name the same cell.
func (p Position) Equal(other Position) bool {
	return p.X == other.X && p.Y == other.Y
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ObstacleKind names a static obstacle type.
type ObstacleKind string

const (
	ObstacleWall  ObstacleKind = "wall"
	ObstacleBlock ObstacleKind = "block"
)

// Obstacle is a static axis-aligned rectangle anchored at (X, Y).
// It occupies [X, X+Width) x [Y, Y+Height).
type Obstacle struct {
	Kind   ObstacleKind
	X, Y   int
	Width  int
	Height int
}

// NewObstacle creates an obstacle, treating non-positive extents as 1.
func NewObstacle(kind ObstacleKind, x, y, w, h int) Obstacle {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return Obstacle{Kind: kind, X: x, Y: y, Width: w, Height: h}
}

// MechanismKind names a dynamic mechanism type.
type MechanismKind string

const (
	KindSlider  MechanismKind = "slider"
	KindSwitch  MechanismKind = "switch"
	KindGate    MechanismKind = "gate"
	KindRotator MechanismKind = "rotator"
)

// Direction is the axis a multi-cell mechanism extends along.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// Delta returns the unit step along the direction.
func (d Direction) Delta() (dx, dy int) {
	if d == Horizontal {
		return 1, 0
	}
	return 0, 1
}

// Mechanism is a dynamic grid entity.
//
// Required fields per kind:
//
//	slider:  Direction, Length
//	gate:    Direction, Length, Active (true = closed)
//	switch:  Active, LinkedTo
//	rotator: Direction, Length, Angle (never collides)
type Mechanism struct {
	ID        string
	Kind      MechanismKind
	X, Y      int
	Direction Direction
	Length    int
	Angle     int
	Active    bool
	LinkedTo  string
}

// NewSlider creates a pushable slider of the given length.
func NewSlider(id string, x, y int, dir Direction, length int) Mechanism {
	return Mechanism{ID: id, Kind: KindSlider, X: x, Y: y, Direction: dir, Length: length}
}

// NewGate creates a gate. A closed gate (closed=true) blocks movement.
func NewGate(id string, x, y int, dir Direction, length int, closed bool) Mechanism {
	return Mechanism{ID: id, Kind: KindGate, X: x, Y: y, Direction: dir, Length: length, Active: closed}
}

// NewSwitch creates a single-cell switch linked to another mechanism.
func NewSwitch(id string, x, y int, linkedTo string, active bool) Mechanism {
	return Mechanism{ID: id, Kind: KindSwitch, X: x, Y: y, Length: 1, Active: active, LinkedTo: linkedTo}
}

// NewRotator creates a rotator. Rotators are declared but have no behaviour yet.
func NewRotator(id string, x, y int, dir Direction, length, angle int) Mechanism {
	return Mechanism{ID: id, Kind: KindRotator, X: x, Y: y, Direction: dir, Length: length, Angle: angle}
}

// Anchor returns the mechanism's anchor cell.
func (m Mechanism) Anchor() Position {
	return Position{X: m.X, Y: m.Y}
}

// Footprint returns every cell a slider or gate run covers from its anchor,
// regardless of gate state. Switches and rotators cover their anchor only.
func (m Mechanism) Footprint() []Position {
	return runCells(m.Anchor(), m.Direction, m.runLength())
}

// runLength returns the effective run length.
func (m Mechanism) runLength() int {
	switch m.Kind {
	case KindSlider, KindGate:
		if m.Length < 1 {
			return 1
		}
		return m.Length
	default:
		return 1
	}
}

// runCells lists length cells starting at anchor along dir.
func runCells(anchor Position, dir Direction, length int) []Position {
	dx, dy := dir.Delta()
	cells := make([]Position, length)
	for i := range length {
		cells[i] = anchor.Add(dx*i, dy*i)
	}
	return cells
}

// inRun reports whether pos lies in the run of length cells from anchor along dir.
func inRun(pos, anchor Position, dir Direction, length int) bool {
	if dir == Horizontal {
		return pos.Y == anchor.Y && pos.X >= anchor.X && pos.X < anchor.X+length
	}
	return pos.X == anchor.X && pos.Y >= anchor.Y && pos.Y < anchor.Y+length
}

// LevelConfig is the static definition of an escape level.
// It is immutable once loaded; per-play state lives in GameState and the
// cloned mechanism list.
type LevelConfig struct {
	ID            int
	Name          string
	NameEn        string
	Description   string
	DescriptionEn string
	Difficulty    int
	Width         int
	Height        int
	Player        Position
	Goal          Position
	Obstacles     []Obstacle
	Mechanisms    []Mechanism
	Hints         []string
	TimeLimit     int // Seconds, 0 = none
	MoveLimit     int // 0 = none
}

// CloneMechanisms returns a private copy of the initial mechanism list.
func (l *LevelConfig) CloneMechanisms() []Mechanism {
	out := make([]Mechanism, len(l.Mechanisms))
	copy(out, l.Mechanisms)
	return out
}

// FindMechanism returns the index of the mechanism with the given id, or -1.
func FindMechanism(mechanisms []Mechanism, id string) int {
	for i := range mechanisms {
		if mechanisms[i].ID == id {
			return i
		}
	}
	return -1
}

// Interaction records a mechanism touched by a move.
type Interaction struct {
	MechanismID string
	Action      string // "push" or "toggle"
}

// MoveRecord is one entry of the move history.
type MoveRecord struct {
	From        Position
	To          Position
	Tick        uint64
	Interaction *Interaction
}

// GameState is the mutable per-play state of a level.
type GameState struct {
	CurrentLevel    int
	PlayerPosition  Position
	MoveHistory     []MoveRecord
	MechanismStates map[string]any
	Completed       bool
	Failed          bool
	Moves           int
	TimeElapsed     float64 // Seconds
}
