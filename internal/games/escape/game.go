// Package escape provides the grid escape puzzle for the puzzle platform.
package escape

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/games/escape/levels"
	"github.com/vovakirdan/tui-puzzles/internal/games/escape/puzzle"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
)

// GameID identifies the escape game in the registry.
const GameID = "escape"

func init() {
	registry.Register(registry.GameInfo{ID: GameID, Title: "Escape"}, func(opts registry.Options) (registry.Game, error) {
		return New(opts)
	})
}

// Game implements the escape puzzle.
type Game struct {
	rules  puzzle.Rules
	levels []*puzzle.LevelConfig

	session  *puzzle.Session
	index    int // Position of the current level in levels
	tickRate int
	paused   bool
	hint     int // Index into the level's hints, -1 = hidden
	status   string
	reported bool // Outcome already logged
}

// New creates an escape game from the configured rules and levels.
func New(opts registry.Options) (*Game, error) {
	cfg, err := config.LoadEscape(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := config.ApplyEscapePreset(&cfg, config.Preset(opts.Preset)); err != nil {
		return nil, err
	}

	all, err := loadLevels(opts.LevelsDir)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("escape: no levels found")
	}

	return &Game{rules: cfg.PuzzleRules(), levels: all, hint: -1}, nil
}

// NewWithLevels creates a game over the given levels.
func NewWithLevels(all []*puzzle.LevelConfig, rules puzzle.Rules) *Game {
	return &Game{rules: rules, levels: all, hint: -1}
}

func loadLevels(dir string) ([]*puzzle.LevelConfig, error) {
	if dir == "" {
		all, err := levels.Builtin()
		if err != nil {
			return nil, err
		}
		log.Debug("escape levels loaded", "source", "builtin", "count", len(all))
		return all, nil
	}

	results, err := levels.NewLoader(dir).Scan()
	if err != nil {
		return nil, err
	}
	var all []*puzzle.LevelConfig
	for _, r := range results {
		if r.Err != nil {
			log.Warn("skipping invalid level", "path", r.Path, "err", r.Err)
			continue
		}
		all = append(all, r.Level)
	}
	levels.SortByID(all)
	log.Info("escape levels loaded", "source", dir, "count", len(all))
	return all, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Escape"
}

// ProgressKey returns the prefix of the escape progress keys.
func (g *Game) ProgressKey() string {
	return "escape"
}

// Levels lists the playable levels.
func (g *Game) Levels() []registry.LevelInfo {
	out := make([]registry.LevelInfo, len(g.levels))
	for i, l := range g.levels {
		name := l.NameEn
		if name == "" {
			name = l.Name
		}
		out[i] = registry.LevelInfo{ID: l.ID, Name: name, Difficulty: l.Difficulty}
	}
	return out
}

// Reset starts cfg.Level, or the first level when cfg.Level is 0.
func (g *Game) Reset(cfg core.RuntimeConfig) error {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}

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
			return fmt.Errorf("escape: level not found: %d", cfg.Level)
		}
	}
	g.start(index)
	return nil
}

func (g *Game) start(index int) {
	g.index = index
	g.session = puzzle.NewSession(g.levels[index], g.rules)
	g.paused = false
	g.hint = -1
	g.status = ""
	g.reported = false
}

// Session exposes the underlying puzzle session.
func (g *Game) Session() *puzzle.Session {
	return g.session
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.session == nil {
		return core.StepResult{}
	}
	g.status = ""

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if in.Has(core.ActionRestart) {
		g.session.Restart()
		g.hint = -1
		g.reported = false
		g.status = "Level restarted"
		return core.StepResult{State: g.State(), Event: g.status}
	}
	if in.Has(core.ActionHint) {
		g.nextHint()
	}
	if in.Has(core.ActionNext) && g.session.State().Completed && g.index+1 < len(g.levels) {
		g.start(g.index + 1)
		return core.StepResult{State: g.State()}
	}
	if g.paused || g.session.Finished() {
		return core.StepResult{State: g.State(), Event: g.status}
	}

	if in.Has(core.ActionUndo) {
		if g.session.Undo() {
			g.status = "Move undone"
		} else {
			g.status = "Nothing to undo"
		}
	} else if dx, dy, ok := in.Direction(); ok {
		g.move(dx, dy)
	}

	g.session.Tick(1 / float64(g.tickRate))
	g.report()

	return core.StepResult{State: g.State(), Event: g.status}
}

func (g *Game) move(dx, dy int) {
	out := g.session.Move(dx, dy)
	switch {
	case !out.Accepted:
		g.status = rejectionText(out)
	case out.Completed:
		g.status = "Level complete!"
	case out.Failed:
		g.status = "Out of moves"
	case out.Pushed != "":
		g.status = "Pushed " + out.Pushed
	case out.Toggled != "":
		g.status = "Toggled " + out.Toggled
	}
}

func rejectionText(out puzzle.MoveOutcome) string {
	switch out.Reason {
	case puzzle.ReasonOutOfBounds:
		return "Edge of the room"
	case puzzle.ReasonObstacle:
		return "Blocked"
	case puzzle.ReasonGateClosed:
		return "The gate is closed"
	case puzzle.ReasonSliderStuck:
		return "The slider will not budge (" + out.PushReason + ")"
	case puzzle.ReasonStillBlocked:
		return "Still blocked"
	default:
		return ""
	}
}

func (g *Game) nextHint() {
	hints := g.session.Level().Hints
	if len(hints) == 0 {
		g.status = "No hints for this level"
		return
	}
	g.hint++
	if g.hint >= len(hints) {
		g.hint = -1
	}
}

func (g *Game) report() {
	if g.reported || !g.session.Finished() {
		return
	}
	g.reported = true
	st := g.session.State()
	log.Info("escape level finished",
		"level", st.CurrentLevel,
		"completed", st.Completed,
		"moves", st.Moves,
		"elapsed", strconv.FormatFloat(st.TimeElapsed, 'f', 1, 64))
	if st.Failed && g.status == "" {
		g.status = "Time is up"
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{}
	}
	st := g.session.State()
	outcome := core.OutcomePlaying
	switch {
	case st.Completed:
		outcome = core.OutcomeWon
	case st.Failed:
		outcome = core.OutcomeLost
	}
	return core.GameState{
		Level:   st.CurrentLevel,
		Moves:   st.Moves,
		Elapsed: st.TimeElapsed,
		Outcome: outcome,
		Paused:  g.paused,
	}
}

// HasNext reports whether a level follows the current one.
func (g *Game) HasNext() bool {
	return g.index+1 < len(g.levels)
}
