package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List game variants",
	Long:  `Shows every registered variant with its obstacle style.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()
	if len(games) == 0 {
		fmt.Println("No variants available.")
		return
	}

	cfg := loadConfig()
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TITLE", "STYLE", "GAP", "CAPS")
	for _, g := range games {
		t.Row(append([]string{g.ID, g.Title}, styleColumns(cfg, g.ID)...)...)
	}

	fmt.Println(t.Render())
	fmt.Println("Run 'flappy play <id>' to play a variant.")
}

// styleColumns describes the obstacle style a variant plays with.
func styleColumns(cfg config.FlappyConfig, id string) []string {
	for _, v := range flappy.Variants {
		if v.ID != id {
			continue
		}
		style, ok := cfg.Style(v.Style)
		if !ok {
			return []string{v.Style, "-", "-"}
		}
		caps := "no"
		if style.Caps {
			caps = strconv.FormatFloat(style.CapHeight, 'g', -1, 64)
		}
		return []string{v.Style, strconv.FormatFloat(style.GapSize, 'g', -1, 64), caps}
	}
	return []string{"-", "-", "-"}
}
