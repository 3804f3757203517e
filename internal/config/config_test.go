package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-puzzles/internal/games/escape/puzzle"
	"github.com/vovakirdan/tui-puzzles/internal/games/pins/physics"
	"gopkg.in/yaml.v3"
)

// isolate points the user and local config lookups at empty directories.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())
	return home
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var pins PinsConfig
	if err := yaml.Unmarshal(GetDefaultYAML("pins"), &pins); err != nil {
		t.Fatalf("pins.yaml: %v", err)
	}
	if pins != DefaultPinsConfig() {
		t.Errorf("embedded pins config %+v differs from hardcoded %+v", pins, DefaultPinsConfig())
	}

	var escape EscapeConfig
	if err := yaml.Unmarshal(GetDefaultYAML("escape"), &escape); err != nil {
		t.Fatalf("escape.yaml: %v", err)
	}
	if escape != DefaultEscapeConfig() {
		t.Errorf("embedded escape config %+v differs from hardcoded", escape)
	}

	if GetDefaultYAML("snake") != nil {
		t.Error("unknown game should have no defaults")
	}
}

func TestPinsParams(t *testing.T) {
	cfg := DefaultPinsConfig()
	if got := cfg.Params(); got != physics.RichParams() {
		t.Errorf("Params() = %+v, expected RichParams", got)
	}

	if err := ApplyPinsPreset(&cfg, FeelSimple); err != nil {
		t.Fatal(err)
	}
	if got := cfg.Params(); got != physics.SimpleParams() {
		t.Errorf("simple Params() = %+v, expected SimpleParams", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("simple preset invalid: %v", err)
	}

	if err := ApplyPinsPreset(&cfg, FeelRich); err != nil {
		t.Fatal(err)
	}
	if got := cfg.Params(); got != physics.RichParams() {
		t.Errorf("rich after simple = %+v", got)
	}

	if err := ApplyPinsPreset(&cfg, "bouncy"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestPinsBoundsAndWorld(t *testing.T) {
	cfg := DefaultPinsConfig()
	b := cfg.BoundsFor(physics.Goal{X: 50, Y: 80})
	if b.MinX != 0 || b.MaxX != 100 || b.MaxY != 87 {
		t.Errorf("BoundsFor = %+v, expected floor at 87", b)
	}

	cfg.Bounds.MaxY = 95
	if b := cfg.BoundsFor(physics.Goal{X: 50, Y: 80}); b.MaxY != 95 {
		t.Errorf("explicit MaxY ignored: %+v", b)
	}

	wc := cfg.WorldConfig()
	if wc.GoalRadius != 10 || wc.StallTicks != 600 {
		t.Errorf("WorldConfig = %+v", wc)
	}
}

func TestPinsValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *PinsConfig)
		ok     bool
	}{
		{"default", func(c *PinsConfig) {}, true},
		{"no gravity", func(c *PinsConfig) { c.Physics.Gravity = 0 }, false},
		{"bad variant", func(c *PinsConfig) { c.Feel.Variant = "wobbly" }, false},
		{"no radius", func(c *PinsConfig) { c.Ball.Radius = 0 }, false},
		{"no goal radius", func(c *PinsConfig) { c.Goal.Radius = -1 }, false},
		{"empty x range", func(c *PinsConfig) { c.Bounds.MaxX = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultPinsConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); (err == nil) != tc.ok {
				t.Errorf("Validate() = %v, expected ok=%v", err, tc.ok)
			}
		})
	}
}

func TestEscapePresets(t *testing.T) {
	tests := []struct {
		preset Preset
		rules  EscapeRules
	}{
		{"", DefaultEscapeConfig().Rules},
		{RulesCasual, EscapeRules{AllowUndo: true}},
		{RulesStrict, EscapeRules{EnforceMoveLimit: true, EnforceTimeLimit: true, AllowUndo: true, MaxUndo: 3}},
	}

	for _, tc := range tests {
		cfg := DefaultEscapeConfig()
		if err := ApplyEscapePreset(&cfg, tc.preset); err != nil {
			t.Fatalf("ApplyEscapePreset(%q): %v", tc.preset, err)
		}
		if cfg.Rules != tc.rules {
			t.Errorf("preset %q rules = %+v, expected %+v", tc.preset, cfg.Rules, tc.rules)
		}
		r := cfg.PuzzleRules()
		if r.EnforceMoveLimit != tc.rules.EnforceMoveLimit || r.MaxUndo != tc.rules.MaxUndo {
			t.Errorf("PuzzleRules() = %+v", r)
		}
	}

	cfg := DefaultEscapeConfig()
	if err := ApplyEscapePreset(&cfg, FeelRich); err == nil {
		t.Error("pins preset should not apply to escape")
	}
}

func TestEscapeDefaultRules(t *testing.T) {
	cfg := DefaultEscapeConfig()
	if got := cfg.PuzzleRules(); got != puzzle.DefaultRules() {
		t.Errorf("default rules = %+v, expected %+v", got, puzzle.DefaultRules())
	}
	if !cfg.Rules.EnforceMoveLimit || cfg.Rules.EnforceTimeLimit {
		t.Errorf("default should enforce move limits only, got %+v", cfg.Rules)
	}

	if err := ApplyEscapePreset(&cfg, RulesCasual); err != nil {
		t.Fatal(err)
	}
	if cfg.Rules.EnforceMoveLimit || cfg.Rules.EnforceTimeLimit {
		t.Errorf("casual should ignore limits, got %+v", cfg.Rules)
	}
}

func TestPresetsFor(t *testing.T) {
	if got := PresetsFor("pins"); len(got) != 2 || got[0] != FeelRich {
		t.Errorf("PresetsFor(pins) = %v", got)
	}
	if got := PresetsFor("escape"); len(got) != 2 || got[1] != RulesStrict {
		t.Errorf("PresetsFor(escape) = %v", got)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := isolate(t)

	cfg, err := LoadPins("")
	if err != nil {
		t.Fatalf("LoadPins: %v", err)
	}
	if cfg != DefaultPinsConfig() {
		t.Error("expected embedded default with no files present")
	}

	if err := os.MkdirAll("configs", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join("configs", "pins.yaml"), []byte("ball:\n  radius: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadPins("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ball.Radius != 3 || cfg.Physics.Gravity != 0.3 {
		t.Errorf("local config: radius %v gravity %v", cfg.Ball.Radius, cfg.Physics.Gravity)
	}

	userDir := filepath.Join(home, ".puzzles", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, "pins.yaml"), []byte("ball:\n  radius: 5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadPins("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Ball.Radius != 5 {
		t.Errorf("user config should win over local, radius = %v", cfg.Ball.Radius)
	}

	custom := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(custom, []byte("feel:\n  variant: simple\ngoal:\n  damping: 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err = LoadPins(custom)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Feel.Variant != "simple" || cfg.Ball.Radius != 4 {
		t.Errorf("custom config: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	isolate(t)

	if _, err := LoadPins(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing custom path should fail")
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("physics: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadEscape(bad); err == nil {
		t.Error("malformed custom yaml should fail")
	}

	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("physics:\n  gravity: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPins(invalid); err == nil {
		t.Error("invalid values should fail validation")
	}

	cfg, err := LoadEscape("")
	if err != nil || cfg != DefaultEscapeConfig() {
		t.Errorf("LoadEscape default = %+v, %v", cfg, err)
	}
}
