package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsDelete string
)

var runsCmd = &cobra.Command{
	Use:   "runs [variant]",
	Short: "Show recent journaled runs",
	Long: `List the most recent runs in the journal, newest first, optionally
for one variant.

Examples:
  flappy runs
  flappy runs flappy_capped --limit 20
  flappy runs --delete 3f2a9c1e`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().StringVar(&flagRunsDelete, "delete", "", "Delete the run with this ID (or unique prefix)")
}

func runRuns(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening run journal: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRunsDelete != "" {
		deleteRun(store, flagRunsDelete)
		return
	}

	gameID := ""
	if len(args) == 1 {
		gameID = args[0]
	}

	runs, err := store.RecentRuns(gameID, flagRunsLimit)
	if err != nil {
		store.Close()
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play flappy' to record the first one!")
		return
	}

	fmt.Printf("  %-8s  %-14s  %-6s  %-6s  %s\n", "ID", "Variant", "Score", "Ticks", "Date")
	fmt.Printf("  %-8s  %-14s  %-6s  %-6s  %s\n", "--", "-------", "-----", "-----", "----")
	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("  %-8s  %-14s  %-6d  %-6d  %s\n",
			id, r.GameID, r.FinalScore, r.Ticks, r.CreatedAt.Format("2006-01-02 15:04"))
	}
}

func deleteRun(store *storage.Store, prefix string) {
	run, err := store.Run(prefix)
	if err == nil {
		err = store.DeleteRun(run.ID)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		store.Close()
		os.Exit(1)
	}
	fmt.Printf("Deleted run %s\n", run.ID)
}
