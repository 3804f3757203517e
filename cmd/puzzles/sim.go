package main

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-puzzles/internal/config"
	"github.com/vovakirdan/tui-puzzles/internal/games/pins"
	"github.com/vovakirdan/tui-puzzles/internal/games/pins/levels"
	"github.com/vovakirdan/tui-puzzles/internal/games/pins/physics"
)

var (
	flagSimLevel  int
	flagSimPulls  []int
	flagSimTicks  int
	flagSimEvery  int
	flagSimPreset string
	flagSimConfig string
	flagSimLevels string
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run a headless simulation",
}

var simPinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "Simulate a pin level without the TUI",
	Long: `Pull the pins given by --pull in order, one every --every ticks, and run
the physics until the level is decided or --ticks have passed. Prints the
outcome and the final state of every ball.

A --seed of 0 uses seed 1 so runs are reproducible.

Examples:
  puzzles sim pins --level 1 --pull 1
  puzzles sim pins --level 51 --pull 1,2 --every 60
  puzzles sim pins --level 4 --pull 1 --preset simple --seed 7`,
	Args: cobra.NoArgs,
	RunE: runSimPins,
}

func init() {
	simPinsCmd.Flags().IntVar(&flagSimLevel, "level", 1, "Level ID")
	simPinsCmd.Flags().IntSliceVar(&flagSimPulls, "pull", nil, "Pin IDs to pull, in order")
	simPinsCmd.Flags().IntVar(&flagSimTicks, "ticks", 1200, "Maximum ticks to simulate")
	simPinsCmd.Flags().IntVar(&flagSimEvery, "every", 30, "Ticks between pulls")
	simPinsCmd.Flags().StringVar(&flagSimPreset, "preset", "", "Feel preset: rich, simple")
	simPinsCmd.Flags().StringVar(&flagSimConfig, "config", "", "Path to custom pins config YAML")
	simPinsCmd.Flags().StringVar(&flagSimLevels, "levels", "", "Directory of custom pin levels")

	simCmd.AddCommand(simPinsCmd)
}

// simRejection is a pull the world refused.
type simRejection struct {
	PinID int
	Err   error
}

// simReport is the result of a headless run.
type simReport struct {
	Level    int
	Outcome  physics.Outcome
	Ticks    int
	Pulled   []int
	Rejected []simRejection
	Reason   string
	Culprit  int
	Balls    []physics.Ball
	Captured map[int]bool
}

func runSimPins(_ *cobra.Command, _ []string) error {
	cfg, err := config.LoadPins(flagSimConfig)
	if err != nil {
		return err
	}
	if err := config.ApplyPinsPreset(&cfg, config.Preset(flagSimPreset)); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := simLevel(flagSimLevel, flagSimLevels)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	world := pins.NewWorld(level, cfg, rand.New(rand.NewSource(seed)))

	report := simulate(world, flagSimPulls, flagSimEvery, flagSimTicks)
	report.Level = level.ID
	log.Debug("simulation finished", "level", level.ID, "outcome", report.Outcome, "ticks", report.Ticks, "seed", seed)

	printReport(os.Stdout, report)
	return nil
}

func simLevel(id int, dir string) (*levels.Level, error) {
	if dir == "" {
		return levels.Get(id)
	}
	return levels.NewLoader(dir).LoadByID(id)
}

// simulate pulls pulls[k] at tick k*every and steps the world until the
// outcome is decided or maxTicks is reached.
func simulate(w *physics.World, pulls []int, every, maxTicks int) simReport {
	var report simReport
	every = max(every, 1)

	next := 0
	for w.Outcome() == physics.Playing && w.Tick() < maxTicks {
		for next < len(pulls) && w.Tick() >= next*every {
			id := pulls[next]
			if err := w.Pull(id); err != nil {
				report.Rejected = append(report.Rejected, simRejection{PinID: id, Err: err})
			} else {
				report.Pulled = append(report.Pulled, id)
			}
			next++
		}
		w.Step()
	}

	report.Outcome = w.Outcome()
	report.Ticks = w.Tick()
	report.Reason, report.Culprit = w.LossReason()
	report.Balls = w.Balls()
	report.Captured = make(map[int]bool, len(report.Balls))
	for _, b := range report.Balls {
		report.Captured[b.ID] = w.Captured(b.ID)
	}
	return report
}

func printReport(out io.Writer, r simReport) {
	fmt.Fprintf(out, "Level %d: %s after %d ticks\n", r.Level, r.Outcome, r.Ticks)
	if r.Reason != "" {
		if r.Culprit >= 0 {
			fmt.Fprintf(out, "  reason: %s (ball %d)\n", r.Reason, r.Culprit)
		} else {
			fmt.Fprintf(out, "  reason: %s\n", r.Reason)
		}
	}

	pulled := make([]string, len(r.Pulled))
	for i, id := range r.Pulled {
		pulled[i] = fmt.Sprint(id)
	}
	fmt.Fprintf(out, "  pulled: %s\n", strings.Join(pulled, ","))
	for _, rej := range r.Rejected {
		var be *physics.BlockedError
		if errors.As(rej.Err, &be) {
			fmt.Fprintf(out, "  rejected: pin %d held by %v\n", rej.PinID, be.Blockers)
		} else {
			fmt.Fprintf(out, "  rejected: pin %d: %v\n", rej.PinID, rej.Err)
		}
	}

	fmt.Fprintln(out)
	for _, b := range r.Balls {
		state := "resting"
		switch {
		case r.Captured[b.ID]:
			state = "captured"
		case b.IsMoving:
			state = "moving"
		}
		fmt.Fprintf(out, "  ball %d  %-8s  (%6.2f, %6.2f)  %s\n", b.ID, b.Color, b.X, b.Y, state)
	}
}
