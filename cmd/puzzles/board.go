package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/platform/tui"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the progress board",
	Long: `Show the best result of every completed level for each game.

Controls:
  Up/Down      - Scroll
  Tab/Right    - Next game
  S-Tab/Left   - Previous game
  Esc/Q        - Close`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func runBoard(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	logToFileForTUI()

	cfg := runtimeConfig()
	_, err = tui.RunBoard(store, tui.BoardGames(), cfg.ScreenW, cfg.ScreenH)
	return err
}
