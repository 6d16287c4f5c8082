package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/desktop"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var desktopCmd = &cobra.Command{
	Use:   "desktop [variant]",
	Short: "Play in a desktop window",
	Long: `Open a window and play the given variant (default: flappy).

Controls:
  Space/Up/Click  - Flap
  P               - Pause
  F2/R            - Restart (after game over)
  Esc             - Quit

Examples:
  flappy desktop
  flappy desktop flappy_capped --seed 7`,
	Args: cobra.MaximumNArgs(1),
	Run:  runDesktop,
}

func runDesktop(_ *cobra.Command, args []string) {
	gameID := "flappy"
	if len(args) == 1 {
		gameID = args[0]
	}

	g, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'flappy list' to see available variants.")
		os.Exit(1)
	}
	game, ok := g.(*flappy.Game)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: %q cannot run in a window\n", gameID)
		os.Exit(1)
	}

	cfg := terminalRuntime()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	host := desktop.New(game, store, newLogger(os.Stderr, "flappy-desktop"), cfg)
	if err := host.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}
