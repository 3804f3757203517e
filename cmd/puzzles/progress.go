package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

var flagReset bool

var progressCmd = &cobra.Command{
	Use:   "progress <game>",
	Short: "Show saved progress for a game",
	Long: `Display the current and unlocked levels and the best result of every
completed level.

Examples:
  puzzles progress escape
  puzzles progress pins --reset`,
	Args: cobra.ExactArgs(1),
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Forget all progress and results for the game")
}

func runProgress(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'puzzles list' to see available games", gameID)
	}

	game, err := registry.Create(gameID, registry.Options{})
	if err != nil {
		return err
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagReset {
		if err := store.ResetProgress(game.ProgressKey()); err != nil {
			return err
		}
		log.Info("progress reset", "game", gameID)
	}

	return printProgress(os.Stdout, store, game)
}

// printProgress writes the progress summary of game to w.
func printProgress(w io.Writer, store *storage.Store, game registry.Game) error {
	key := game.ProgressKey()

	current, err := store.CurrentLevel(key)
	if err != nil {
		return err
	}
	unlocked, err := store.UnlockedLevels(key)
	if err != nil {
		return err
	}
	best, err := store.BestResults(key)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Progress - %s\n\n", game.Title())
	fmt.Fprintf(w, "  Current level:   %d\n", current)
	fmt.Fprintf(w, "  Unlocked levels: %d of %d\n", unlocked, len(game.Levels()))
	fmt.Fprintf(w, "  Completed:       %d\n\n", len(best))

	if len(best) == 0 {
		fmt.Fprintln(w, "No levels completed yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-5s  %-5s  %-6s  %s\n", "Level", "Moves", "Ticks", "Date")
	fmt.Fprintf(w, "  %-5s  %-5s  %-6s  %s\n", "-----", "-----", "-----", "----")
	for _, r := range best {
		fmt.Fprintf(w, "  %-5d  %-5d  %-6d  %s\n", r.Level, r.Moves, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
