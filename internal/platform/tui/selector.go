package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

// selectorChrome is the number of screen rows the selector uses around the list.
const selectorChrome = 8

// LevelSelectModel lets the player pick one of the unlocked levels of a game.
type LevelSelectModel struct {
	title     string
	levels    []registry.LevelInfo
	unlocked  int
	best      map[int]storage.LevelResult
	cursor    int
	offset    int
	width     int
	height    int
	keyMapper *KeyMapper
	selected  int
	quitting  bool
	back      bool
	locked    bool // Last select hit a locked level
}

// NewLevelSelectModel creates a selector positioned on the current level.
// best may be nil.
func NewLevelSelectModel(title string, levels []registry.LevelInfo, unlocked, current int,
	best []storage.LevelResult, width, height int) LevelSelectModel {
	m := LevelSelectModel{
		title:     title,
		levels:    levels,
		unlocked:  unlocked,
		best:      make(map[int]storage.LevelResult, len(best)),
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
	for _, r := range best {
		m.best[r.Level] = r
	}
	for i, info := range levels {
		if info.ID == current && m.IsUnlocked(i) {
			m.cursor = i
		}
	}
	m.scroll()
	return m
}

// IsUnlocked reports whether the level at index i may be played.
// The first level of a list is always open.
func (m LevelSelectModel) IsUnlocked(i int) bool {
	return i == 0 || m.levels[i].ID <= m.unlocked
}

// Init initializes the model.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.scroll()
		return m, nil
	}
	return m, nil
}

func (m LevelSelectModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.locked = false

	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	case MenuActionUp:
		m.move(-1)
	case MenuActionDown:
		m.move(1)
	case MenuActionLeft:
		m.move(-10)
	case MenuActionRight:
		m.move(10)
	case MenuActionSelect:
		if len(m.levels) == 0 {
			return m, nil
		}
		if !m.IsUnlocked(m.cursor) {
			m.locked = true
			return m, nil
		}
		m.selected = m.levels[m.cursor].ID
		return m, tea.Quit
	}

	return m, nil
}

func (m *LevelSelectModel) move(delta int) {
	if len(m.levels) == 0 {
		return
	}
	m.cursor = core.Clamp(m.cursor+delta, 0, len(m.levels)-1)
	m.scroll()
}

// scroll keeps the cursor inside the visible window.
func (m *LevelSelectModel) scroll() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
	m.offset = core.Clamp(m.offset, 0, max(0, len(m.levels)-rows))
}

func (m LevelSelectModel) visibleRows() int {
	return max(1, m.height-selectorChrome)
}

// View renders the level list.
func (m LevelSelectModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(StyleFor(core.ColorTitle).Render(strings.ToUpper(m.title)), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(fmt.Sprintf("Unlocked: %d of %d", m.unlockedCount(), len(m.levels)), m.width))
	b.WriteString("\n\n")

	end := min(len(m.levels), m.offset+m.visibleRows())
	for i := m.offset; i < end; i++ {
		b.WriteString(centerText(m.row(i), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.locked {
		b.WriteString(centerText(StyleFor(core.ColorLose).Render(" Level locked "), m.width))
	} else {
		b.WriteString(centerText("Up/Down: Navigate  |  Left/Right: Skip 10  |  Enter: Play  |  Esc: Back", m.width))
	}

	return b.String()
}

func (m LevelSelectModel) row(i int) string {
	info := m.levels[i]

	cursor := "  "
	if i == m.cursor {
		cursor = "> "
	}

	stars := strings.Repeat("*", core.Clamp(info.Difficulty, 0, 6))
	line := fmt.Sprintf("%s%3d. %-24s %-6s", cursor, info.ID, truncate(info.Name, 24), stars)

	switch r, ok := m.best[info.ID]; {
	case ok:
		line += fmt.Sprintf(" best %d moves", r.Moves)
	case !m.IsUnlocked(i):
		line += " locked"
	default:
		line += "       "
	}

	if !m.IsUnlocked(i) {
		return StyleFor(core.ColorDim).Render(line)
	}
	if i == m.cursor {
		return StyleFor(core.ColorPinSelected).Render(line)
	}
	return line
}

func (m LevelSelectModel) unlockedCount() int {
	n := 0
	for i := range m.levels {
		if m.IsUnlocked(i) {
			n++
		}
	}
	return n
}

// Selected returns the chosen level ID, or 0 if none was chosen.
func (m LevelSelectModel) Selected() int {
	return m.selected
}

// IsQuitting returns true if user wants to quit.
func (m LevelSelectModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelSelectModel) WantsBack() bool {
	return m.back
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}

// SelectResult holds the outcome of the level selector.
type SelectResult struct {
	Level int
	Back  bool
	Quit  bool
}

// RunLevelSelect shows the level selector for game using the progress in store.
func RunLevelSelect(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (SelectResult, error) {
	unlocked, current := 1, 1
	var best []storage.LevelResult
	if store != nil {
		var err error
		key := game.ProgressKey()
		if unlocked, err = store.UnlockedLevels(key); err != nil {
			return SelectResult{}, err
		}
		if current, err = store.CurrentLevel(key); err != nil {
			return SelectResult{}, err
		}
		if best, err = store.BestResults(key); err != nil {
			return SelectResult{}, err
		}
	}

	model := NewLevelSelectModel(game.Title(), game.Levels(), unlocked, current, best, cfg.ScreenW, cfg.ScreenH)
	p := tea.NewProgram(model, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return SelectResult{}, err
	}

	m, ok := final.(LevelSelectModel)
	switch {
	case !ok || m.IsQuitting():
		return SelectResult{Quit: true}, nil
	case m.WantsBack():
		return SelectResult{Back: true}, nil
	}
	return SelectResult{Level: m.Selected()}, nil
}
