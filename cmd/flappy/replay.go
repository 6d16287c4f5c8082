package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <run-id>",
	Short: "Replay a journaled run and check it",
	Long: `Re-run a journaled run headlessly from its seed and recorded flaps,
then compare the outcome with the journal. A unique prefix of the run ID
is enough.

The replay uses the current config, so a changed config can make an old
run diverge.

Examples:
  flappy replay 3f2a9c1e
  flappy replay 3f2a --config ./my-flappy.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	run, err := store.Run(args[0])
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "Error: no run matches %q\n", args[0])
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		store.Close()
		os.Exit(1)
	}

	res, err := flappy.Replay(loadConfig(), run.Style, run.Seed, run.Flaps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error replaying run: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("Run %s (%s, seed %d, %d flaps)\n", run.ID, run.GameID, run.Seed, len(run.Flaps))
	fmt.Printf("  journal: score %d at tick %d\n", run.FinalScore, run.Ticks)
	fmt.Printf("  replay:  score %d at tick %d\n", res.Score, res.Ticks)
	if res.Err != nil {
		fmt.Printf("  replay ended on a fault: %v\n", res.Err)
	}

	if res.Score != run.FinalScore || res.Ticks != run.Ticks {
		fmt.Println("MISMATCH")
		store.Close()
		os.Exit(1)
	}
	fmt.Println("OK")
}
