package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	escapelevels "github.com/vovakirdan/tui-puzzles/internal/games/escape/levels"
	"github.com/vovakirdan/tui-puzzles/internal/games/escape/puzzle"
	pinlevels "github.com/vovakirdan/tui-puzzles/internal/games/pins/levels"
	"github.com/vovakirdan/tui-puzzles/internal/levelwatch"
)

var (
	flagLevelsCheckDir string
	flagWatch          bool
)

var levelsCmd = &cobra.Command{
	Use:   "levels <game>",
	Short: "List and validate levels",
	Long: `List the built-in levels of a game, or validate a directory of custom
level YAML files. With --watch the directory is revalidated whenever a level
file changes. Exits with an error if any level is invalid.

Examples:
  puzzles levels escape
  puzzles levels pins --dir ./my-levels
  puzzles levels pins --dir ./my-levels --watch`,
	Args: cobra.ExactArgs(1),
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagLevelsCheckDir, "dir", "", "Directory of custom level YAML files")
	levelsCmd.Flags().BoolVar(&flagWatch, "watch", false, "Revalidate on file change (requires --dir)")
}

// levelRow is one listed level or one file that failed to load.
type levelRow struct {
	Path    string
	ID      int
	Summary string
	Err     error
}

func runLevels(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if _, err := levelRows(gameID, ""); err != nil {
		return err
	}

	if flagWatch {
		if flagLevelsCheckDir == "" {
			return fmt.Errorf("--watch requires --dir")
		}
		return watchLevels(gameID, flagLevelsCheckDir)
	}

	invalid, err := checkLevels(os.Stdout, gameID, flagLevelsCheckDir)
	if err != nil {
		return err
	}
	if invalid > 0 {
		return fmt.Errorf("%d invalid level file(s)", invalid)
	}
	return nil
}

// checkLevels prints the levels of gameID and returns how many failed to load.
func checkLevels(w io.Writer, gameID, dir string) (int, error) {
	rows, err := levelRows(gameID, dir)
	if err != nil {
		return 0, err
	}

	source := "built-in"
	if dir != "" {
		source = dir
	}
	fmt.Fprintf(w, "Levels - %s (%s)\n\n", gameID, source)

	invalid := 0
	for _, r := range rows {
		if r.Err != nil {
			invalid++
			fmt.Fprintf(w, "  INVALID  %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Fprintf(w, "  %4d  %s\n", r.ID, r.Summary)
	}

	fmt.Fprintf(w, "\n%d valid, %d invalid\n", len(rows)-invalid, invalid)
	return invalid, nil
}

func levelRows(gameID, dir string) ([]levelRow, error) {
	switch gameID {
	case "escape":
		return escapeRows(dir)
	case "pins":
		return pinRows(dir)
	default:
		return nil, fmt.Errorf("unknown game %q, run 'puzzles list' to see available games", gameID)
	}
}

func escapeSummary(l *puzzle.LevelConfig) string {
	name := l.NameEn
	if name == "" {
		name = l.Name
	}
	return fmt.Sprintf("%-24s %2dx%-2d  %d mechanisms  difficulty %d",
		name, l.Width, l.Height, len(l.Mechanisms), l.Difficulty)
}

func escapeRows(dir string) ([]levelRow, error) {
	if dir == "" {
		all, err := escapelevels.Builtin()
		if err != nil {
			return nil, err
		}
		rows := make([]levelRow, len(all))
		for i, l := range all {
			rows[i] = levelRow{ID: l.ID, Summary: escapeSummary(l)}
		}
		return rows, nil
	}

	results, err := escapelevels.NewLoader(dir).Scan()
	if err != nil {
		return nil, err
	}
	rows := make([]levelRow, len(results))
	for i, r := range results {
		rows[i] = levelRow{Path: r.Path, Err: r.Err}
		if r.Err == nil {
			rows[i].ID, rows[i].Summary = r.Level.ID, escapeSummary(r.Level)
		}
	}
	return rows, nil
}

func pinSummary(l *pinlevels.Level) string {
	return fmt.Sprintf("%-10s %2d pins  %2d balls  %d treasure",
		l.Tier, len(l.Pins), len(l.Balls), l.Treasure())
}

func pinRows(dir string) ([]levelRow, error) {
	if dir == "" {
		all := pinlevels.Builtin()
		rows := make([]levelRow, len(all))
		for i := range all {
			l := &all[i]
			rows[i] = levelRow{ID: l.ID, Summary: pinSummary(l), Err: pinlevels.Validate(l)}
			if rows[i].Err != nil {
				rows[i].Path = fmt.Sprintf("built-in level %d", l.ID)
			}
		}
		return rows, nil
	}

	results, err := pinlevels.NewLoader(dir).Scan()
	if err != nil {
		return nil, err
	}
	rows := make([]levelRow, len(results))
	for i, r := range results {
		rows[i] = levelRow{Path: r.Path, Err: r.Err}
		if r.Err == nil {
			rows[i].ID, rows[i].Summary = r.Level.ID, pinSummary(r.Level)
		}
	}
	return rows, nil
}

func levelExtensions(gameID string) []string {
	if gameID == "escape" {
		return escapelevels.FormatExtensions()
	}
	return pinlevels.FormatExtensions()
}

// watchLevels revalidates dir on every batch of level file changes until
// interrupted.
func watchLevels(gameID, dir string) error {
	w, err := levelwatch.New(dir, levelExtensions(gameID))
	if err != nil {
		return err
	}
	defer w.Close()

	if _, err := checkLevels(os.Stdout, gameID, dir); err != nil {
		return err
	}
	fmt.Println("\nWatching for changes, press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = w.Run(ctx, func(changes []levelwatch.Change) {
		for _, c := range changes {
			log.Info("level file changed", "path", c.Path, "removed", c.Removed)
		}
		fmt.Println()
		if _, err := checkLevels(os.Stdout, gameID, dir); err != nil {
			log.Error("cannot revalidate levels", "dir", dir, "err", err)
		}
	})
	if ctx.Err() != nil {
		return nil
	}
	return err
}
