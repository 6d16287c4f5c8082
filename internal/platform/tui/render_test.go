package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawRectColor(core.NewRect(1, 0, 2, 2), '█', core.ColorBar)
	s.SetColor(4, 1, '▶', core.ColorHeading)

	lines := strings.Split(ansi.Strip(RenderScreen(s)), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, expected 2", len(lines))
	}
	if lines[0] != " ██   " || lines[1] != " ██ ▶ " {
		t.Errorf("rendered %q", lines)
	}
	for _, l := range lines {
		if lipgloss.Width(l) != 6 {
			t.Errorf("line %q has width %d", l, lipgloss.Width(l))
		}
	}
}

func TestCellStyleUnknownColor(t *testing.T) {
	st := cellStyle(core.Color(250))
	if got := st.Render("x"); ansi.Strip(got) != "x" {
		t.Errorf("Render() = %q", got)
	}
}
