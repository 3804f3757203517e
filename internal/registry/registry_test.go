package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-puzzles/internal/core"
)

type stubGame struct {
	opts  Options
	state core.GameState
}

func (g *stubGame) ID() string            { return "stub" }
func (g *stubGame) Title() string         { return "Stub" }
func (g *stubGame) ProgressKey() string   { return "stub" }
func (g *stubGame) Levels() []LevelInfo   { return []LevelInfo{{ID: 1, Name: "One"}} }
func (g *stubGame) Render(*core.Screen)   {}
func (g *stubGame) State() core.GameState { return g.state }

func (g *stubGame) Reset(cfg core.RuntimeConfig) error {
	g.state = core.GameState{Level: cfg.Level}
	return nil
}

func (g *stubGame) Step(core.InputFrame) core.StepResult {
	return core.StepResult{State: g.state}
}

func TestRegisterCreate(t *testing.T) {
	Register(GameInfo{ID: "zz-stub", Title: "Stub"}, func(opts Options) (Game, error) {
		return &stubGame{opts: opts}, nil
	})

	if !Exists("zz-stub") {
		t.Fatal("registered game should exist")
	}

	g, err := Create("zz-stub", Options{Preset: "simple"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.(*stubGame).opts.Preset != "simple" {
		t.Error("options not passed to factory")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = info.Title == "Stub"
		}
	}
	if !found {
		t.Error("List should include zz-stub with its title")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	f := func(Options) (Game, error) { return &stubGame{}, nil }
	Register(GameInfo{ID: "zz-dup", Title: "Dup"}, f)

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register(GameInfo{ID: "zz-dup", Title: "Dup"}, f)
}

func TestCreateErrors(t *testing.T) {
	if _, err := Create("zz-missing", Options{}); err == nil {
		t.Error("unknown game should fail")
	}

	boom := errors.New("boom")
	Register(GameInfo{ID: "zz-fail", Title: "Fail"}, func(Options) (Game, error) {
		return nil, boom
	})
	if _, err := Create("zz-fail", Options{}); !errors.Is(err, boom) {
		t.Errorf("Create error = %v, expected to wrap boom", err)
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Errorf("List not sorted: %q >= %q", list[i-1].ID, list[i].ID)
		}
	}
}
