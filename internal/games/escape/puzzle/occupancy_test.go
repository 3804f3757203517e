package puzzle

import "testing"

func TestClassify(t *testing.T) {
	level := &LevelConfig{
		Width:     6,
		Height:    4,
		Obstacles: []Obstacle{NewObstacle(ObstacleWall, 0, 3, 6, 1)},
	}
	mechs := []Mechanism{
		NewSlider("s1", 1, 1, Horizontal, 2),
		NewSwitch("sw1", 4, 0, "g1", false),
		NewGate("g1", 5, 0, Vertical, 3, true),
		NewGate("g2", 3, 2, Horizontal, 1, false),
		// Closed gate over the wall: the wall wins.
		NewGate("g3", 0, 3, Horizontal, 2, true),
	}
	idx := NewOccupancyIndex(level, mechs)

	tests := []struct {
		name   string
		pos    Position
		kind   OccupancyKind
		reason string
		id     string
	}{
		{"free", P(0, 0), Free, "", ""},
		{"slider anchor", P(1, 1), PushRequired, "", "s1"},
		{"slider tail", P(2, 1), PushRequired, "", "s1"},
		{"switch", P(4, 0), Interactable, "", "sw1"},
		{"closed gate", P(5, 2), Blocked, ReasonGateClosed, ""},
		{"open gate", P(3, 2), Free, "", ""},
		{"wall", P(2, 3), Blocked, ReasonObstacle, ""},
		{"wall over gate", P(1, 3), Blocked, ReasonObstacle, ""},
		{"out of bounds", P(6, 0), Blocked, ReasonOutOfBounds, ""},
		{"negative", P(-1, 2), Blocked, ReasonOutOfBounds, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := idx.Classify(tc.pos)
			if got.Kind != tc.kind {
				t.Errorf("Classify(%s).Kind = %s, expected %s", tc.pos, got.Kind, tc.kind)
			}
			if got.Reason != tc.reason {
				t.Errorf("Classify(%s).Reason = %q, expected %q", tc.pos, got.Reason, tc.reason)
			}
			if got.MechanismID != tc.id {
				t.Errorf("Classify(%s).MechanismID = %q, expected %q", tc.pos, got.MechanismID, tc.id)
			}
		})
	}
}

func TestClassifyAgreesWithIsValidMove(t *testing.T) {
	level := gateLevel()
	mechs := level.CloneMechanisms()
	idx := NewOccupancyIndex(level, mechs)

	for x := -1; x <= level.Width; x++ {
		for y := -1; y <= level.Height; y++ {
			pos := P(x, y)
			check := IsValidMove(level.Player, pos, level, mechs)
			occ := idx.Classify(pos)
			if check.Valid == (occ.Kind == Blocked) {
				t.Errorf("%s: IsValidMove valid=%v but Classify kind=%s", pos, check.Valid, occ.Kind)
			}
			if !check.Valid && check.Reason != occ.Reason {
				t.Errorf("%s: reason %q vs %q", pos, check.Reason, occ.Reason)
			}
		}
	}
}

func TestClassifyHelper(t *testing.T) {
	level := gateLevel()
	got := Classify(P(2, 1), level, level.Mechanisms)
	if got.Kind != Interactable || got.MechanismID != "switch1" {
		t.Errorf("Classify(switch1) = %+v", got)
	}
}

func TestOccupancyKindString(t *testing.T) {
	tests := []struct {
		kind     OccupancyKind
		expected string
	}{
		{Free, "free"},
		{Blocked, "blocked"},
		{PushRequired, "push_required"},
		{Interactable, "interactable"},
		{OccupancyKind(99), "unknown"},
	}

	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.expected {
			t.Errorf("OccupancyKind(%d).String() = %q, expected %q", tc.kind, got, tc.expected)
		}
	}
}
