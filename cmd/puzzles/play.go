package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-puzzles/internal/core"
	"github.com/vovakirdan/tui-puzzles/internal/platform/tui"
	"github.com/vovakirdan/tui-puzzles/internal/registry"
	"github.com/vovakirdan/tui-puzzles/internal/storage"
)

var (
	flagLevel     int
	flagConfig    string
	flagPreset    string
	flagLevelsDir string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Without --level the level selector opens, limited to unlocked levels.

Controls:
  Arrows/WASD/HJKL - Move (escape) or choose a pin (pins)
  Space/Enter      - Pull the selected pin
  U/Z              - Undo (escape)
  R                - Restart the level
  ?                - Show a hint
  N                - Next level after a win
  P                - Pause
  Esc/B            - Back to the level selector
  Q/Ctrl+C         - Quit

Presets:
  escape: casual, strict
  pins:   rich, simple

Examples:
  puzzles play escape
  puzzles play escape --preset strict
  puzzles play pins --level 40
  puzzles play pins --preset simple --config ./my-pins.yaml
  puzzles play pins --levels ./my-levels`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Level to start on (0 = open the level selector)")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagPreset, "preset", "", "Named preset applied on top of the config")
	playCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory of custom level YAML files")
}

// runtimeConfig builds the runtime config from the terminal size and global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Level = 0
	return cfg
}

// openStore opens the progress database. A failure is logged and the game
// runs without saving progress.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		log.Warn("could not open progress database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'puzzles list' to see available games", gameID)
	}

	game, err := registry.Create(gameID, registry.Options{
		ConfigPath: flagConfig,
		Preset:     flagPreset,
		LevelsDir:  flagLevelsDir,
	})
	if err != nil {
		return err
	}

	cfg := runtimeConfig()
	cfg.Level = flagLevel

	logToFileForTUI()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	_, err = tui.Play(game, store, cfg)
	return err
}
