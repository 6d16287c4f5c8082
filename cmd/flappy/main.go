// flappy is a side-scrolling flap-through-the-gaps game for the terminal,
// an SSH server and a desktop window, built on one deterministic simulation.
//
// Usage:
//
//	flappy list                - List game variants
//	flappy play <variant>      - Play a variant in the terminal
//	flappy menu                - Pick a variant interactively
//	flappy serve               - Start SSH server for remote play
//	flappy desktop <variant>   - Play in a desktop window
//	flappy simulate <variant>  - Run the autopilot headlessly
//	flappy replay <run-id>     - Re-run a journaled run and check it
//	flappy runs                - Show recent journaled runs
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set run journal path (default: ~/.flappy/runs.db)
//	--config <path>      - Load a custom game config YAML
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy - fly through the gaps in your terminal",
	Long: `Flappy is a side-scrolling game: flap to stay airborne and pass
through the gaps between obstacles. Every finished run is journaled with
its seed and inputs so it can be replayed exactly.

Available commands:
  list      - Show game variants
  play      - Play a variant in the terminal
  menu      - Interactive variant picker
  serve     - Start SSH server for remote play
  desktop   - Play in a desktop window
  simulate  - Run the autopilot headlessly
  replay    - Replay a journaled run
  runs      - Show recent runs

Examples:
  flappy play flappy
  flappy play flappy_capped --seed 42
  flappy serve --ssh :2222
  flappy simulate flappy --runs 10 --save
  flappy replay 3f2a9c1e`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		flappy.SetConfigPath(flagConfig)
		if err := setupLogging(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/runs.db", "Path to run journal database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(desktopCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(runsCmd)
}
