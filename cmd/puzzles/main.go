// puzzles is a terminal puzzle collection: a grid escape game and a
// pin-pulling ball physics game.
//
// Usage:
//
//	puzzles list                 - List available games
//	puzzles play <game>          - Play a game
//	puzzles menu                 - Start menu to pick games interactively
//	puzzles levels <game>        - List and validate levels
//	puzzles sim pins             - Run a headless pin simulation
//	puzzles progress <game>      - Show saved progress for a game
//	puzzles board                - Open the progress board
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible physics
//	--db <path>         - Set database path (default: ~/.puzzles/progress.db)
//	--log-level <lvl>   - debug, info, warn or error (default: info)
//	--log-file <path>   - Write the log to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import games to register them
	_ "github.com/vovakirdan/tui-puzzles/internal/games/escape"
	_ "github.com/vovakirdan/tui-puzzles/internal/games/pins"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	defer closeLog()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		closeLog()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "puzzles",
	Short: "TUI Puzzles - Solve puzzles in your terminal",
	Long: `TUI Puzzles is a terminal puzzle collection with two games:

  escape  - Walk a grid room to the exit, pushing sliders and flipping switches
  pins    - Pull the pins in the right order so only treasure reaches the goal

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker menu
  levels    - List and validate built-in or custom levels
  sim       - Run a headless simulation
  progress  - Show or reset saved progress
  board     - Progress board

Examples:
  puzzles list
  puzzles play escape
  puzzles play pins --level 12
  puzzles levels pins --dir ./my-levels --watch
  puzzles sim pins --level 1 --pull 1`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return setupLogging(flagLogLevel, flagLogFile)
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.puzzles/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write the log to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(boardCmd)
}
