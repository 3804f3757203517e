package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

// Play alternates between the level selector and the game until the player
// backs out of the selector or quits. A non-zero cfg.Level skips the first
// selector visit. Returns true if the player asked to quit the program.
func Play(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (quit bool, err error) {
	level := cfg.Level
	for {
		if level == 0 {
			sel, err := RunLevelSelect(game, store, cfg)
			if err != nil {
				return true, err
			}
			if sel.Quit {
				return true, nil
			}
			if sel.Back {
				return false, nil
			}
			level = sel.Level
		}

		cfg.Level = level
		log.Info("starting level", "game", game.ID(), "level", level)

		exit, err := Run(game, store, cfg)
		if err != nil {
			return true, err
		}
		if exit == ExitQuit {
			return true, nil
		}
		level = 0
	}
}

// Menu runs the whole interactive flow: game picker, then the level
// selector and game of the picked puzzle, or the progress board. It
// returns when the player quits from any screen.
func Menu(store *storage.Store, cfg core.RuntimeConfig) error {
	for {
		games := BoardGames()
		p := tea.NewProgram(NewPickerModel(store, games, cfg.ScreenW, cfg.ScreenH), tea.WithAltScreen())
		final, err := p.Run()
		if err != nil {
			return err
		}
		picker, ok := final.(PickerModel)
		if !ok {
			return nil
		}
		cfg.ScreenW, cfg.ScreenH = picker.Size()

		switch picker.Choice() {
		case PickBoard:
			goBack, err := RunBoard(store, games, cfg.ScreenW, cfg.ScreenH)
			if err != nil || !goBack {
				return err
			}

		case PickGame:
			entry, _ := picker.Selected()
			game, err := registry.Create(entry.ID, registry.Options{})
			if err != nil {
				log.Error("cannot create game", "game", entry.ID, "err", err)
				continue
			}
			cfg.Level = 0
			quit, err := Play(game, store, cfg)
			if err != nil || quit {
				return err
			}

		default:
			return nil
		}
	}
}

// PickChoice is what the player did on the game picker.
type PickChoice int

const (
	PickNone PickChoice = iota
	PickGame
	PickBoard
	PickQuit
)

// pickerEntry is a game on the picker with the player's progress in it.
type pickerEntry struct {
	BoardGame
	Unlocked  int
	Completed int
}

// PickerModel lists the puzzles with their progress.
type PickerModel struct {
	entries   []pickerEntry
	cursor    int
	width     int
	height    int
	keyMapper *KeyMapper
	choice    PickChoice
}

// NewPickerModel reads each game's progress from store, which may be nil.
func NewPickerModel(store *storage.Store, games []BoardGame, width, height int) PickerModel {
	entries := make([]pickerEntry, len(games))
	for i, g := range games {
		entries[i] = pickerEntry{BoardGame: g, Unlocked: 1}
		if store == nil {
			continue
		}
		if n, err := store.UnlockedLevels(g.Key); err == nil {
			entries[i].Unlocked = min(n, g.Levels)
		} else {
			log.Warn("cannot read progress", "game", g.ID, "err", err)
		}
		if st, err := store.Stats(g.Key); err == nil {
			entries[i].Completed = st.Completed
		}
	}

	return PickerModel{
		entries:   entries,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init implements tea.Model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update moves the cursor (wrapping at both ends) and records the choice.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height

	case tea.KeyMsg:
		n := len(m.entries)
		switch m.keyMapper.MapKeyToMenuAction(msg) {
		case MenuActionUp:
			if n > 0 {
				m.cursor = (m.cursor + n - 1) % n
			}
		case MenuActionDown:
			if n > 0 {
				m.cursor = (m.cursor + 1) % n
			}
		case MenuActionSelect:
			if n > 0 {
				m.choice = PickGame
				return m, tea.Quit
			}
		case MenuActionBoard:
			m.choice = PickBoard
			return m, tea.Quit
		case MenuActionBack, MenuActionQuit:
			m.choice = PickQuit
			return m, tea.Quit
		}
	}
	return m, nil
}

var (
	pickerCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
	pickerCardActive = pickerCard.BorderForeground(lipgloss.Color("12"))
)

// View renders one card per game.
func (m PickerModel) View() string {
	if m.choice != PickNone {
		return ""
	}

	cardWidth := min(48, max(20, m.width-4))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(StyleFor(core.ColorTitle).Render("  P U Z Z L E S  "), m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText("No games registered.", m.width))
		b.WriteString("\n")
	}
	for i, e := range m.entries {
		style := pickerCard
		title := e.Title
		if i == m.cursor {
			style = pickerCardActive
			title = "> " + title
		}
		body := fmt.Sprintf("%s\n%d levels  |  unlocked %d  |  solved %d", title, e.Levels, e.Unlocked, e.Completed)
		for _, line := range strings.Split(style.Width(cardWidth).Render(body), "\n") {
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText("Up/Down: Choose  |  Enter: Play  |  Tab: Progress  |  Q: Quit", m.width))
	b.WriteString("\n")
	return b.String()
}

// Choice reports what the player picked.
func (m PickerModel) Choice() PickChoice {
	return m.choice
}

// Selected returns the game under the cursor.
func (m PickerModel) Selected() (BoardGame, bool) {
	if len(m.entries) == 0 {
		return BoardGame{}, false
	}
	return m.entries[m.cursor].BoardGame, true
}

// Size returns the last known terminal size.
func (m PickerModel) Size() (int, int) {
	return m.width, m.height
}
