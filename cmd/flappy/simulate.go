package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSimRuns       int
	flagSimPilotTicks uint32
	flagSimPaced      bool
	flagSimSave       bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate [variant]",
	Short: "Run the autopilot headlessly",
	Long: `Play runs without a screen. The autopilot flaps toward the middle of
the next gap until --pilot-ticks, then lets the player fall.

Runs go as fast as possible unless --paced is given, in which case each
run ticks in real time on its own goroutine. With --save every run is
journaled and can be checked with 'flappy replay'.

Examples:
  flappy simulate
  flappy simulate flappy_capped --runs 20 --seed 1
  flappy simulate --paced --pilot-ticks 200
  flappy simulate --runs 5 --save`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimRuns, "runs", 1, "Number of runs")
	simulateCmd.Flags().Uint32Var(&flagSimPilotTicks, "pilot-ticks", 1000, "Tick at which the autopilot gives up")
	simulateCmd.Flags().BoolVar(&flagSimPaced, "paced", false, "Tick in real time instead of as fast as possible")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Journal every run")
}

func runSimulate(_ *cobra.Command, args []string) {
	variant := flappy.Variants[0]
	if len(args) == 1 {
		found := false
		for _, v := range flappy.Variants {
			if v.ID == args[0] {
				variant, found = v, true
				break
			}
		}
		if !found {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", args[0])
			os.Exit(1)
		}
	}

	cfg := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var store *storage.Store
	if flagSimSave {
		store = openStore()
		if store != nil {
			defer store.Close()
		}
	}

	opts := flappy.SimulateOptions{
		Style:      variant.Style,
		PilotTicks: flagSimPilotTicks,
	}
	if flagSimPaced {
		opts.Interval = cfg.Timing.TickInterval()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	fmt.Printf("  %-20s  %-6s  %-6s  %s\n", "Seed", "Score", "Ticks", "Run")
	fmt.Printf("  %-20s  %-6s  %-6s  %s\n", "----", "-----", "-----", "---")

	best, total := 0, 0
	for i := 0; i < flagSimRuns; i++ {
		opts.Seed = seed + int64(i)
		run, err := flappy.Simulate(ctx, cfg, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: seed %d: %v\n", opts.Seed, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}

		id := "-"
		if store != nil {
			if id, err = store.SaveRun(run); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not save run: %v\n", err)
				id = "-"
			}
		}
		fmt.Printf("  %-20d  %-6d  %-6d  %s\n", run.Seed, run.FinalScore, run.Ticks, id)

		total += run.FinalScore
		best = max(best, run.FinalScore)
	}

	if flagSimRuns > 1 {
		fmt.Println()
		fmt.Printf("Best: %d  Mean: %.1f\n", best, float64(total)/float64(flagSimRuns))
	}
}
