package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a game picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
Backing out of a game's level selector returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Progress board
  Q            - Quit

Examples:
  puzzles menu
  puzzles menu --fps 30
  puzzles menu --db ./progress.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	logToFileForTUI()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	return tui.Menu(store, runtimeConfig())
}
