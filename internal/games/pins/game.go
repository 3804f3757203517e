// Package pins provides the pin-pulling physics puzzle for the puzzle
// platform.
package pins

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/games/pins/levels"
	"github.com/vovakirdan/tui-puzzles/internal/games/pins/physics"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

// GameID identifies the pin game in the registry.
const GameID = "pins"

func init() {
	registry.Register(registry.GameInfo{ID: GameID, Title: "Pull the Pin"}, func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// Game implements the pin-pulling puzzle.
type Game struct {
	cfg    config.PinsConfig
	levels []*levels.Level
	rng    *rand.Rand

	world    *physics.World
	index    int
	cursor   int // Index into the current level's pins
	pulls    int
	tickRate int
	paused   bool
	status   string
	reported bool
}

// New creates a pin game from the configured tuning and levels.
func New(opts registry.Options) (*Game, error) {
	cfg, err := config.LoadPins(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyPinsPreset(&cfg, config.Preset(opts.Preset)); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	all, err := loadLevels(opts.LevelsDir)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("pins: no levels found")
	}
	return NewWithLevels(all, cfg), nil
}

// NewWithLevels creates a game over the given levels.
func NewWithLevels(all []*levels.Level, cfg config.PinsConfig) *Game {
	return &Game{cfg: cfg, levels: all}
}

// Builtin returns pointers to the built-in levels.
func Builtin() []*levels.Level {
	src := levels.Builtin()
	out := make([]*levels.Level, len(src))
	for i := range src {
		out[i] = &src[i]
	}
	return out
}

func loadLevels(dir string) ([]*levels.Level, error) {
	if dir == "" {
		all := Builtin()
		log.Debug("pin levels loaded", "source", "builtin", "count", len(all))
		return all, nil
	}

	results, err := levels.NewLoader(dir).Scan()
	if err != nil {
		return nil, err
	}
	var all []*levels.Level
	for _, r := range results {
		if r.Err != nil {
			log.Warn("skipping invalid level", "path", r.Path, "err", r.Err)
			continue
		}
		all = append(all, r.Level)
	}
	levels.SortByID(all)
	log.Info("pin levels loaded", "source", dir, "count", len(all))
	return all, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Pull the Pin"
}

// ProgressKey returns the prefix of the pin game progress keys.
func (g *Game) ProgressKey() string {
	return "pin-game"
}

// Levels lists the playable levels.
func (g *Game) Levels() []registry.LevelInfo {
	out := make([]registry.LevelInfo, len(g.levels))
	for i, l := range g.levels {
		out[i] = registry.LevelInfo{
			ID:         l.ID,
			Name:       fmt.Sprintf("Level %d", l.ID),
			Difficulty: int(l.Tier),
		}
	}
	return out
}

// Reset starts cfg.Level, or the first level when cfg.Level is 0.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))

	index := 0
	if cfg.Level > 0 {
		index = -1
		for i, l := range g.levels {
			if l.ID == cfg.Level {
				index = i
				break
			}
		}
		if index < 0 {
			return fmt.Errorf("pins: level not found: %d", cfg.Level)
		}
	}
	g.start(index)
	return nil
}

// NewWorld builds a fresh simulation of the level with the given tuning.
func NewWorld(level *levels.Level, cfg config.PinsConfig, rng physics.RandSource) *physics.World {
	return physics.NewWorld(
		physics.NewEngine(cfg.Params(), rng),
		level.ClonePins(),
		level.NewBalls(cfg.Ball.Radius),
		cfg.BoundsFor(level.Goal),
		level.Goal,
		cfg.WorldConfig(),
	)
}

func (g *Game) start(index int) {
	g.index = index
	g.world = NewWorld(g.levels[index], g.cfg, g.rng)
	g.cursor = 0
	g.pulls = 0
	g.paused = false
	g.status = ""
	g.reported = false
	g.skipPulled(1)
}

// World exposes the running simulation.
func (g *Game) World() *physics.World {
	return g.world
}

// Level returns the level being played.
func (g *Game) Level() *levels.Level {
	return g.levels[g.index]
}

// Selected returns the ID of the pin under the cursor, or 0 when every pin
// is pulled.
func (g *Game) Selected() int {
	pins := g.world.Pins()
	if g.cursor < 0 || g.cursor >= len(pins) || pins[g.cursor].Pulled {
		return 0
	}
	return pins[g.cursor].ID
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.world == nil {
		return core.StepResult{}
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		g.start(g.index)
		g.status = "Level restarted"
		return core.StepResult{State: g.State(), Event: g.status}
	}
	if in.Has(core.ActionHint) {
		if hint := g.Level().Hint; hint != "" {
			g.status = hint
		} else {
			g.status = "No hint for this level"
		}
	}
	if in.Has(core.ActionNext) && g.world.Outcome() == physics.Won && g.HasNext() {
		g.start(g.index + 1)
		return core.StepResult{State: g.State()}
	}
	if g.paused || g.world.Outcome() != physics.Playing {
		return core.StepResult{State: g.State(), Event: g.status}
	}

	switch {
	case in.Has(core.ActionLeft), in.Has(core.ActionUp):
		g.cursor--
		g.skipPulled(-1)
	case in.Has(core.ActionRight), in.Has(core.ActionDown):
		g.cursor++
		g.skipPulled(1)
	}
	if in.Has(core.ActionSelect) {
		g.pull()
	}

	g.world.Step()
	g.report()

	return core.StepResult{State: g.State(), Event: g.status}
}

// skipPulled moves the cursor in direction dir until it rests on a pin that
// is still in place, wrapping around the ends.
func (g *Game) skipPulled(dir int) {
	pins := g.world.Pins()
	n := len(pins)
	if n == 0 {
		g.cursor = 0
		return
	}
	for range n {
		g.cursor = ((g.cursor % n) + n) % n
		if !pins[g.cursor].Pulled {
			return
		}
		g.cursor += dir
	}
	g.cursor = ((g.cursor % n) + n) % n
}

func (g *Game) pull() {
	id := g.Selected()
	if id == 0 {
		return
	}

	err := g.world.Pull(id)
	var blocked *physics.BlockedError
	switch {
	case err == nil:
		g.pulls++
		g.status = fmt.Sprintf("Pulled pin %d", id)
		g.skipPulled(1)
	case errors.As(err, &blocked):
		log.Debug("pull rejected", "level", g.Level().ID, "pin", id, "blockers", blocked.Blockers)
		g.status = fmt.Sprintf("Pin %d is held by pin %v", id, blocked.Blockers)
	default:
		log.Debug("pull rejected", "level", g.Level().ID, "pin", id, "err", err)
		g.status = err.Error()
	}
}

func (g *Game) report() {
	outcome := g.world.Outcome()
	if g.reported || outcome == physics.Playing {
		return
	}
	g.reported = true

	captured, total := g.world.Treasure()
	if outcome == physics.Won {
		g.status = "All treasure collected!"
		log.Info("pin level won", "level", g.Level().ID, "pulls", g.pulls, "ticks", g.world.Tick())
		return
	}

	reason, ball := g.world.LossReason()
	switch reason {
	case physics.LossDanger:
		g.status = "A danger ball reached the goal"
	case physics.LossStalled:
		g.status = "The treasure is stuck"
	}
	log.Info("pin level lost", "level", g.Level().ID, "reason", reason, "ball", ball,
		"captured", captured, "treasure", total, "ticks", g.world.Tick())
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.world == nil {
		return core.GameState{}
	}
	outcome := core.OutcomePlaying
	switch g.world.Outcome() {
	case physics.Won:
		outcome = core.OutcomeWon
	case physics.Lost:
		outcome = core.OutcomeLost
	}
	return core.GameState{
		Level:   g.Level().ID,
		Moves:   g.pulls,
		Elapsed: float64(g.world.Tick()) / float64(g.tickRate),
		Outcome: outcome,
		Paused:  g.paused,
	}
}

// HasNext reports whether a level follows the current one.
func (g *Game) HasNext() bool {
	return g.index+1 < len(g.levels)
}
