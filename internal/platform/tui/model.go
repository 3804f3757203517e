// Package tui runs the puzzle games in a terminal with Bubble Tea. It covers
// the play loop, input mapping, level selection and progress recording.
package tui

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

// Exit tells the caller why a play session ended.
type Exit int

const (
	ExitQuit Exit = iota // Leave the program
	ExitBack             // Return to the level selector
)

// TickMsg advances the game by one step.
type TickMsg time.Time

// Model is the Bubble Tea model for playing one puzzle game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string
	exit       Exit
	quitting   bool
	recorded   bool // Whether the current win has been saved
}

// NewModel creates a new Bubble Tea model for the given game.
// The game must already be Reset to cfg.Level.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

// nextTick schedules the next TickMsg one frame from now.
func (m Model) nextTick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.config.TickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if isQuit := m.keyMapper.MapKeyToFrame(msg, &m.inputFrame); isQuit {
		m.quitting = true
		m.exit = ExitQuit
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.quitting = true
		m.exit = ExitBack
		return m, tea.Quit
	}

	return m, nil
}

// handleTick runs one simulation step and records wins.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	prevLevel := m.gameState.Level

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if result.Event != "" {
		m.status = result.Event
	}
	m.inputFrame.Clear()

	if m.gameState.Level != prevLevel {
		m.recorded = false
		if m.store != nil {
			if err := m.store.SaveCurrentLevel(m.game.ProgressKey(), m.gameState.Level); err != nil {
				log.Warn("cannot save current level", "err", err)
			}
		}
	}

	// A restart clears the outcome, so the next win is new.
	if m.gameState.Outcome == core.OutcomePlaying {
		m.recorded = false
	}

	if m.gameState.Outcome == core.OutcomeWon && !m.recorded {
		if m.store != nil {
			if err := RecordWin(m.store, m.game, m.gameState, m.config.TickRate); err != nil {
				log.Warn("cannot record win", "game", m.game.ID(), "err", err)
			}
		}
		m.recorded = true
	}

	return m, m.nextTick()
}

// RecordWin saves a completed level and unlocks the level after it.
func RecordWin(store *storage.Store, game registry.Game, st core.GameState, tickRate int) error {
	key := game.ProgressKey()

	_, err := store.SaveResult(storage.LevelResult{
		GameID: key,
		Level:  st.Level,
		Moves:  st.Moves,
		Ticks:  int(math.Round(st.Elapsed * float64(tickRate))),
	})
	if err != nil {
		return err
	}

	next := NextLevel(game.Levels(), st.Level)
	if next == 0 {
		return nil
	}
	if err := store.SaveUnlockedLevels(key, next); err != nil {
		return err
	}
	return store.SaveCurrentLevel(key, next)
}

// NextLevel returns the ID following id in list, or 0 if id is the last.
func NextLevel(list []registry.LevelInfo, id int) int {
	for i, info := range list {
		if info.ID == id && i+1 < len(list) {
			return list[i+1].ID
		}
	}
	return 0
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".puzzles", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Warn("cannot create screenshot directory", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		log.Warn("cannot save screenshot", "err", err)
		return
	}
	m.status = "Screenshot saved"
	log.Debug("screenshot saved", "path", path)
}

// State returns the last reported game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// Status returns the last status line reported by the game.
func (m Model) Status() string {
	return m.status
}

// Exit reports why the session ended.
func (m Model) Exit() Exit {
	return m.exit
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)

	return RenderScreen(m.screen)
}

// Run plays game from cfg.Level until the player quits or backs out.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (Exit, error) {
	if err := game.Reset(cfg); err != nil {
		return ExitQuit, err
	}
	if store != nil {
		if err := store.SaveCurrentLevel(game.ProgressKey(), game.State().Level); err != nil {
			log.Warn("cannot save current level", "err", err)
		}
	}

	p := tea.NewProgram(NewModel(game, store, cfg), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return ExitQuit, err
	}
	if m, ok := final.(Model); ok {
		return m.Exit(), nil
	}
	return ExitQuit, nil
}
