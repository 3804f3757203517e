package puzzle

import "testing"

// gateLevel mirrors the built-in "Trigger Mechanism" layout.
func gateLevel() *LevelConfig {
	return &LevelConfig{
		ID:     6,
		Width:  9,
		Height: 7,
		Player: P(1, 3),
		Goal:   P(7, 3),
		Obstacles: []Obstacle{
			NewObstacle(ObstacleWall, 0, 0, 9, 1),
			NewObstacle(ObstacleWall, 0, 6, 9, 1),
			NewObstacle(ObstacleWall, 0, 1, 1, 5),
			NewObstacle(ObstacleWall, 8, 1, 1, 5),
		},
		Mechanisms: []Mechanism{
			NewSwitch("switch1", 2, 1, "gate1", false),
			NewGate("gate1", 4, 2, Vertical, 3, true),
		},
	}
}

func TestIsInBounds(t *testing.T) {
	tests := []struct {
		name     string
		pos      Position
		expected bool
	}{
		{"origin", P(0, 0), true},
		{"last cell", P(4, 2), true},
		{"x at width", P(5, 0), false},
		{"y at height", P(0, 3), false},
		{"negative x", P(-1, 1), false},
		{"negative y", P(1, -1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsInBounds(tc.pos, 5, 3); got != tc.expected {
				t.Errorf("IsInBounds(%s, 5, 3) = %v, expected %v", tc.pos, got, tc.expected)
			}
		})
	}

	// Exhaustive check over a window around the grid.
	for x := -2; x < 8; x++ {
		for y := -2; y < 6; y++ {
			want := x >= 0 && x < 5 && y >= 0 && y < 3
			if got := IsInBounds(P(x, y), 5, 3); got != want {
				t.Errorf("IsInBounds(%d,%d) = %v, expected %v", x, y, got, want)
			}
		}
	}
}

func TestIsCollidingWithObstacle(t *testing.T) {
	wall := NewObstacle(ObstacleWall, 2, 1, 3, 2)
	block := Obstacle{Kind: ObstacleBlock, X: 4, Y: 4} // zero extent means 1x1

	tests := []struct {
		name     string
		pos      Position
		obstacle Obstacle
		expected bool
	}{
		{"wall anchor", P(2, 1), wall, true},
		{"wall far corner", P(4, 2), wall, true},
		{"wall right edge exclusive", P(5, 1), wall, false},
		{"wall bottom edge exclusive", P(2, 3), wall, false},
		{"block cell", P(4, 4), block, true},
		{"next to block", P(5, 4), block, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCollidingWithObstacle(tc.pos, tc.obstacle); got != tc.expected {
				t.Errorf("IsCollidingWithObstacle(%s) = %v, expected %v", tc.pos, got, tc.expected)
			}
		})
	}
}

func TestIsCollidingWithMechanism(t *testing.T) {
	hSlider := NewSlider("s", 3, 2, Horizontal, 2)
	vGate := NewGate("g", 4, 2, Vertical, 3, true)
	openGate := NewGate("g", 4, 2, Vertical, 3, false)
	sw := NewSwitch("sw", 2, 1, "g", false)
	rot := NewRotator("r", 1, 1, Horizontal, 3, 90)

	tests := []struct {
		name     string
		pos      Position
		mech     Mechanism
		expected bool
	}{
		{"slider first cell", P(3, 2), hSlider, true},
		{"slider second cell", P(4, 2), hSlider, true},
		{"past slider", P(5, 2), hSlider, false},
		{"slider wrong row", P(3, 3), hSlider, false},
		{"closed gate top", P(4, 2), vGate, true},
		{"closed gate bottom", P(4, 4), vGate, true},
		{"below closed gate", P(4, 5), vGate, false},
		{"open gate", P(4, 3), openGate, false},
		{"switch cell", P(2, 1), sw, true},
		{"beside switch", P(3, 1), sw, false},
		{"rotator never collides", P(1, 1), rot, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCollidingWithMechanism(tc.pos, tc.mech); got != tc.expected {
				t.Errorf("IsCollidingWithMechanism(%s, %s) = %v, expected %v", tc.pos, tc.mech.Kind, got, tc.expected)
			}
		})
	}
}

func TestIsValidMoveOrder(t *testing.T) {
	level := &LevelConfig{
		Width:     4,
		Height:    4,
		Obstacles: []Obstacle{NewObstacle(ObstacleBlock, 1, 1, 1, 1)},
	}
	// A closed gate over the obstacle: obstacle must win.
	mechs := []Mechanism{
		NewGate("g", 1, 1, Horizontal, 2, true),
		NewSlider("s", 3, 3, Horizontal, 1),
		NewSwitch("sw", 0, 3, "g", false),
	}

	tests := []struct {
		name   string
		to     Position
		valid  bool
		reason string
	}{
		{"out of bounds", P(4, 0), false, ReasonOutOfBounds},
		{"obstacle before gate", P(1, 1), false, ReasonObstacle},
		{"gate cell", P(2, 1), false, ReasonGateClosed},
		{"slider does not block", P(3, 3), true, ""},
		{"switch does not block", P(0, 3), true, ""},
		{"free cell", P(0, 0), true, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := IsValidMove(P(0, 0), tc.to, level, mechs)
			if got.Valid != tc.valid || got.Reason != tc.reason {
				t.Errorf("IsValidMove(%s) = %+v, expected valid=%v reason=%q", tc.to, got, tc.valid, tc.reason)
			}
		})
	}
}

func TestIsValidMoveSameCell(t *testing.T) {
	level := &LevelConfig{Width: 3, Height: 3}
	if got := IsValidMove(P(1, 1), P(1, 1), level, nil); !got.Valid {
		t.Errorf("moving onto own cell should be valid, got %+v", got)
	}
}

func TestGateBlocksOnlyWhenClosed(t *testing.T) {
	level := gateLevel()
	closed := level.CloneMechanisms()
	gate := closed[1]

	for _, cell := range gate.Footprint() {
		got := IsValidMove(P(3, cell.Y), cell, level, closed)
		if got.Valid || got.Reason != ReasonGateClosed {
			t.Errorf("closed gate cell %s: got %+v, expected gate_closed", cell, got)
		}
	}

	open := level.CloneMechanisms()
	open[1].Active = false
	for _, cell := range gate.Footprint() {
		got := IsValidMove(P(3, cell.Y), cell, level, open)
		if got.Reason == ReasonGateClosed {
			t.Errorf("open gate cell %s: should not report gate_closed", cell)
		}
	}
}

func TestTryPushSlider(t *testing.T) {
	level := &LevelConfig{
		Width:     8,
		Height:    5,
		Obstacles: []Obstacle{NewObstacle(ObstacleBlock, 6, 0, 1, 1)},
	}
	slider := NewSlider("s", 3, 2, Horizontal, 2)

	tests := []struct {
		name    string
		player  Position
		target  Position
		others  []Mechanism
		success bool
		newPos  Position
		reason  string
	}{
		{
			name:    "push right",
			player:  P(2, 2),
			target:  P(3, 2),
			success: true,
			newPos:  P(4, 2),
		},
		{
			name:    "push left",
			player:  P(5, 2),
			target:  P(4, 2),
			success: true,
			newPos:  P(2, 2),
		},
		{
			name:    "push down moves whole run",
			player:  P(4, 1),
			target:  P(4, 2),
			success: true,
			newPos:  P(3, 3),
		},
		{
			name:    "push up",
			player:  P(4, 3),
			target:  P(4, 2),
			success: true,
			newPos:  P(3, 1),
		},
		{
			name:    "second cell hits other mechanism",
			player:  P(2, 2),
			target:  P(3, 2),
			others:  []Mechanism{NewSwitch("sw", 5, 2, "x", false)},
			success: false,
			reason:  PushMechanism,
		},
		{
			name:    "closed gate blocks push",
			player:  P(3, 3),
			target:  P(3, 2),
			others:  []Mechanism{NewGate("g", 4, 1, Vertical, 1, true)},
			success: false,
			reason:  PushMechanism,
		},
		{
			name:    "open gate lets push through",
			player:  P(3, 3),
			target:  P(3, 2),
			others:  []Mechanism{NewGate("g", 4, 1, Vertical, 1, false)},
			success: true,
			newPos:  P(3, 1),
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mechs := append([]Mechanism{slider}, tc.others...)
			got := TryPushSlider(tc.player, tc.target, slider, level, mechs)
			if got.Success != tc.success {
				t.Fatalf("TryPushSlider success = %v, expected %v (reason %q)", got.Success, tc.success, got.Reason)
			}
			if tc.success && got.NewSliderPos != tc.newPos {
				t.Errorf("NewSliderPos = %s, expected %s", got.NewSliderPos, tc.newPos)
			}
			if !tc.success && got.Reason != tc.reason {
				t.Errorf("Reason = %q, expected %q", got.Reason, tc.reason)
			}
		})
	}
}

func TestTryPushSliderAllOrNothing(t *testing.T) {
	// Only the last footprint cell would leave the grid.
	level := &LevelConfig{Width: 5, Height: 3}
	slider := NewSlider("s", 1, 1, Horizontal, 3)

	got := TryPushSlider(P(0, 1), P(1, 1), slider, level, []Mechanism{slider})
	if !got.Success || got.NewSliderPos != P(2, 1) {
		t.Fatalf("first push should succeed to (2,1), got %+v", got)
	}

	moved := slider
	moved.X = 2
	got = TryPushSlider(P(1, 1), P(2, 1), moved, level, []Mechanism{moved})
	if got.Success {
		t.Fatal("push with one cell out of bounds must fail")
	}
	if got.NewSliderPos != (Position{}) {
		t.Errorf("failed push must not report a position, got %s", got.NewSliderPos)
	}
	if got.Reason != PushOutOfBounds {
		t.Errorf("Reason = %q, expected %q", got.Reason, PushOutOfBounds)
	}

	// Obstacle under the last cell.
	level.Obstacles = []Obstacle{NewObstacle(ObstacleBlock, 4, 1, 1, 1)}
	got = TryPushSlider(P(0, 1), P(1, 1), NewSlider("s", 1, 1, Horizontal, 3), level, nil)
	if got.Success || got.Reason != PushObstacle {
		t.Errorf("obstacle under last cell: got %+v", got)
	}
}

func TestTryPushSliderRejectsNonSlider(t *testing.T) {
	level := &LevelConfig{Width: 5, Height: 5}
	got := TryPushSlider(P(0, 0), P(1, 0), NewSwitch("sw", 1, 0, "g", false), level, nil)
	if got.Success || got.Reason != PushNotSlider {
		t.Errorf("pushing a switch: got %+v", got)
	}
}

func TestTryPushSliderUsesFullDelta(t *testing.T) {
	level := &LevelConfig{Width: 10, Height: 3}
	slider := NewSlider("s", 2, 1, Horizontal, 1)
	got := TryPushSlider(P(0, 1), P(3, 1), slider, level, nil)
	if !got.Success || got.NewSliderPos != P(5, 1) {
		t.Errorf("delta of 3 should move slider by 3, got %+v", got)
	}
}

func TestTriggerSwitch(t *testing.T) {
	level := gateLevel()
	mechs := level.CloneMechanisms()

	toggled := TriggerSwitch(mechs[0], mechs)
	if !toggled[0].Active {
		t.Error("switch should be active after trigger")
	}
	if toggled[1].Active {
		t.Error("gate should be open after trigger")
	}

	// Inputs untouched.
	if mechs[0].Active || !mechs[1].Active {
		t.Error("TriggerSwitch must not mutate its input")
	}

	again := TriggerSwitch(toggled[0], toggled)
	for i := range mechs {
		if again[i].Active != mechs[i].Active {
			t.Errorf("mechanism %q: double trigger gave %v, expected %v", mechs[i].ID, again[i].Active, mechs[i].Active)
		}
	}
}

func TestTriggerSwitchNoop(t *testing.T) {
	mechs := []Mechanism{
		NewSwitch("lonely", 0, 0, "", false),
		NewGate("g", 1, 0, Horizontal, 1, true),
	}

	got := TriggerSwitch(mechs[0], mechs)
	if got[0].Active || !got[1].Active {
		t.Error("switch without link should be a no-op")
	}

	got = TriggerSwitch(mechs[1], mechs)
	if !got[1].Active {
		t.Error("triggering a gate should be a no-op")
	}
}

func TestHasReachedGoal(t *testing.T) {
	if !HasReachedGoal(P(4, 4), P(4, 4)) {
		t.Error("same cell should reach goal")
	}
	if HasReachedGoal(P(4, 3), P(4, 4)) {
		t.Error("adjacent cell should not reach goal")
	}
}

func TestInitializeGameState(t *testing.T) {
	level := gateLevel()
	s := InitializeGameState(level)

	if s.CurrentLevel != 6 {
		t.Errorf("CurrentLevel = %d, expected 6", s.CurrentLevel)
	}
	if s.PlayerPosition != level.Player {
		t.Errorf("PlayerPosition = %s, expected %s", s.PlayerPosition, level.Player)
	}
	if s.Moves != 0 || s.TimeElapsed != 0 || s.Completed || s.Failed {
		t.Errorf("state should be fresh, got %+v", s)
	}
	if len(s.MoveHistory) != 0 || len(s.MechanismStates) != 0 {
		t.Error("history and mechanism states should be empty")
	}
}

func TestStepDirection(t *testing.T) {
	dx, dy := StepDirection(P(2, 2), P(5, 0))
	if dx != 1 || dy != -1 {
		t.Errorf("StepDirection = (%d,%d), expected (1,-1)", dx, dy)
	}
	dx, dy = StepDirection(P(2, 2), P(2, 2))
	if dx != 0 || dy != 0 {
		t.Errorf("StepDirection same cell = (%d,%d), expected (0,0)", dx, dy)
	}
}
