package levels

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-puzzles/internal/games/pins/physics"
)

func TestBuiltin(t *testing.T) {
	all := Builtin()
	if len(all) != Count {
		t.Fatalf("expected %d levels, got %d", Count, len(all))
	}

	for i := range all {
		lvl := &all[i]
		if lvl.ID != i+1 {
			t.Errorf("level at index %d has ID %d", i, lvl.ID)
		}
		if err := Validate(lvl); err != nil {
			t.Errorf("level %d invalid: %v", lvl.ID, err)
		}
		for _, p := range lvl.Pins {
			for _, b := range p.BlockedBy {
				if b >= p.ID {
					t.Errorf("level %d: pin %d blocked by later pin %d", lvl.ID, p.ID, b)
				}
			}
		}
	}
}

func TestBuiltinTiers(t *testing.T) {
	tests := []struct {
		id      int
		tier    Tier
		pins    int
		balls   int
		goalY   float64
		blocked bool
	}{
		{1, TierTutorial, 1, 1, 80, false},
		{10, TierTutorial, 5, 2, 85, false},
		{11, TierEasy, 3, 1, 80, false},
		{30, TierEasy, 7, 2, 80, false},
		{31, TierMedium, 4, 2, 82, false},
		{50, TierMedium, 10, 4, 82, true},
		{51, TierHard, 5, 5, 85, true},
		{71, TierVeryHard, 6, 7, 85, true},
		{100, TierExpert, 17, 10, 88, true},
	}

	for _, tc := range tests {
		lvl, err := Get(tc.id)
		if err != nil {
			t.Fatalf("Get(%d): %v", tc.id, err)
		}
		if lvl.Tier != tc.tier {
			t.Errorf("level %d tier = %s, expected %s", tc.id, lvl.Tier, tc.tier)
		}
		if len(lvl.Pins) != tc.pins || len(lvl.Balls) != tc.balls {
			t.Errorf("level %d: %d pins %d balls, expected %d and %d",
				tc.id, len(lvl.Pins), len(lvl.Balls), tc.pins, tc.balls)
		}
		if lvl.Goal.Y != tc.goalY {
			t.Errorf("level %d goal Y = %v, expected %v", tc.id, lvl.Goal.Y, tc.goalY)
		}
		blocked := false
		for _, p := range lvl.Pins {
			blocked = blocked || len(p.BlockedBy) > 0
		}
		if blocked != tc.blocked {
			t.Errorf("level %d has blockers = %v, expected %v", tc.id, blocked, tc.blocked)
		}
	}

	if _, err := Get(0); err == nil {
		t.Error("Get(0) should fail")
	}
	if _, err := Get(Count + 1); err == nil {
		t.Error("Get(101) should fail")
	}
}

func TestEveryLevelHasTier(t *testing.T) {
	for _, lvl := range Builtin() {
		if lvl.Tier < TierTutorial || lvl.Tier > TierExpert {
			t.Errorf("level %d tier = %s (%d)", lvl.ID, lvl.Tier, int(lvl.Tier))
		}
		if (lvl.ID <= 10) != (lvl.Tier == TierTutorial) {
			t.Errorf("level %d tier = %s", lvl.ID, lvl.Tier)
		}
	}
}

func TestFirstLevelLayout(t *testing.T) {
	lvl, err := Get(1)
	if err != nil {
		t.Fatal(err)
	}
	if pin := lvl.Pins[0]; pin.ID != 1 || pin.X != 50 || pin.Y != 40 || len(pin.BlockedBy) != 0 {
		t.Errorf("pin = %+v", lvl.Pins[0])
	}
	if lvl.Hint == "" {
		t.Error("level 1 should carry a hint")
	}

	balls := lvl.NewBalls(4)
	if len(balls) != 1 || balls[0].ID != 0 || balls[0].Radius != 4 || balls[0].Color != physics.Treasure {
		t.Errorf("NewBalls = %+v", balls)
	}
	if balls[0].IsMoving {
		t.Error("balls start at rest")
	}
}

func TestFirstLevelSolves(t *testing.T) {
	lvl, err := Get(1)
	if err != nil {
		t.Fatal(err)
	}
	const radius = 4
	p := physics.RichParams()
	bounds := physics.Bounds{MaxX: 100, MaxY: lvl.Goal.Y + p.GoalSeatOffset + radius}
	w := physics.NewWorld(physics.NewEngine(p, nil), lvl.ClonePins(), lvl.NewBalls(radius), bounds, lvl.Goal,
		physics.WorldConfig{GoalRadius: 10, StallTicks: 600})

	if err := w.Pull(1); err != nil {
		t.Fatalf("Pull: %v", err)
	}
	if got := w.Run(1000); got != physics.Won {
		t.Fatalf("outcome = %s, expected won", got)
	}
	if lvl.Pins[0].Pulled {
		t.Error("the world must not mutate the level")
	}
}

func TestClonePins(t *testing.T) {
	lvl, err := Get(51)
	if err != nil {
		t.Fatal(err)
	}
	pins := lvl.ClonePins()
	pins[1].BlockedBy[0] = 99
	if lvl.Pins[1].BlockedBy[0] == 99 {
		t.Error("ClonePins shares BlockedBy")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Level {
		return &Level{
			ID:    1,
			Pins:  []physics.Pin{{ID: 1, X: 50, Y: 40}, {ID: 2, X: 50, Y: 60, BlockedBy: []int{1}}},
			Balls: []BallSpec{treasure(50, 20), danger(20, 20)},
			Goal:  physics.Goal{X: 50, Y: 80},
		}
	}

	tests := []struct {
		name   string
		mutate func(l *Level)
		code   string
	}{
		{"valid", func(l *Level) {}, ""},
		{"no balls", func(l *Level) { l.Balls = nil }, "NO_BALLS"},
		{"no treasure", func(l *Level) { l.Balls = l.Balls[1:] }, "NO_TREASURE"},
		{"duplicate pin", func(l *Level) { l.Pins[1].ID = 1 }, "DUPLICATE_ID"},
		{"self block", func(l *Level) { l.Pins[1].BlockedBy = []int{2} }, "SELF_BLOCK"},
		{"dangling blocker", func(l *Level) { l.Pins[1].BlockedBy = []int{7} }, "DANGLING_BLOCKER"},
		{"pin outside", func(l *Level) { l.Pins[0].X = 101 }, "OUT_OF_AREA"},
		{"ball outside", func(l *Level) { l.Balls[0].Y = -1 }, "OUT_OF_AREA"},
		{"goal outside", func(l *Level) { l.Goal.Y = 120 }, "OUT_OF_AREA"},
		{"bad color", func(l *Level) { l.Balls[1].Color = "green" }, "BAD_COLOR"},
		{"no pins", func(l *Level) { l.Pins = nil }, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			lvl := base()
			tc.mutate(lvl)
			err := Validate(lvl)
			if tc.code == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			var ve ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("Validate() = %v, expected ValidationError", err)
			}
			if ve.Code != tc.code {
				t.Errorf("Code = %q, expected %q (%s)", ve.Code, tc.code, ve.Message)
			}
		})
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
id: 200
hint: drop it
goal: {x: 50, y: 80}
pins:
  - {x: 50, y: 40}
  - {id: 5, x: 30, y: 40, blockedBy: [1]}
balls:
  - {x: 50, y: 20}
  - {x: 30, y: 20, color: danger}
`)

	lvl, err := ParseYAML(data)
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if lvl.ID != 200 || lvl.Hint != "drop it" {
		t.Errorf("level = %+v", lvl)
	}
	if lvl.Pins[0].ID != 1 || lvl.Pins[1].ID != 5 {
		t.Errorf("pin ids = %d,%d, expected 1,5", lvl.Pins[0].ID, lvl.Pins[1].ID)
	}
	if lvl.Balls[0].Color != physics.Treasure || lvl.Balls[1].Color != physics.Danger {
		t.Errorf("ball colors = %s,%s", lvl.Balls[0].Color, lvl.Balls[1].Color)
	}

	if _, err := ParseYAML([]byte("id: [")); err == nil {
		t.Error("expected yaml error")
	}
	_, err = ParseYAML([]byte("id: 1\ngoal: {x: 50, y: 80}\n"))
	var ve ValidationError
	if !errors.As(err, &ve) || ve.Code != "NO_BALLS" {
		t.Errorf("expected NO_BALLS, got %v", err)
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		t.Helper()
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("b.yaml", "id: 8\ngoal: {x: 50, y: 80}\nballs: [{x: 50, y: 20}]\n")
	write("sub/a.yml", "id: 2\ngoal: {x: 50, y: 80}\nballs: [{x: 40, y: 20}]\n")
	write("broken.yaml", "id: 3\ngoal: {x: 50, y: 80}\n")
	write("readme.md", "# levels")

	loader := NewLoader(dir)
	all, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if len(all) != 2 || all[0].ID != 2 || all[1].ID != 8 {
		t.Fatalf("LoadAll returned %d levels", len(all))
	}

	results, err := loader.Scan()
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("Scan returned %d results, expected 3", len(results))
	}

	lvl, err := loader.LoadByID(8)
	if err != nil {
		t.Fatalf("LoadByID: %v", err)
	}
	if lvl.Tier.String() != "custom" {
		t.Errorf("custom level tier = %s", lvl.Tier)
	}
	if _, err := loader.LoadByID(3); err == nil {
		t.Error("invalid level should not load by ID")
	}

	if _, err := NewLoader(filepath.Join(dir, "missing")).LoadAll(); err == nil {
		t.Error("expected error for missing directory")
	}
}
