package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// cellStyles holds one lipgloss style per palette color. It is filled once
// and only read afterwards, so SSH sessions can render concurrently.
var cellStyles = func() map[core.Color]lipgloss.Style {
	m := make(map[core.Color]lipgloss.Style)
	for c := core.ColorDefault; c <= core.ColorSky; c++ {
		st := lipgloss.NewStyle()
		if code := c.ANSI(); code != "" {
			st = st.Foreground(lipgloss.Color(code))
		}
		m[c] = st
	}
	return m
}()

func cellStyle(c core.Color) lipgloss.Style {
	if st, ok := cellStyles[c]; ok {
		return st
	}
	return cellStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string, one style run
// per stretch of same-colored cells.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}

		row := s.Row(y)
		for start := 0; start < len(row); {
			c := row[start].Color
			run.Reset()
			end := start
			for ; end < len(row) && row[end].Color == c; end++ {
				run.WriteRune(row[end].Rune)
			}
			sb.WriteString(cellStyle(c).Render(run.String()))
			start = end
		}
	}
	return sb.String()
}

// Menu and footer styles.
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorPlayer.ANSI()))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(core.ColorCap.ANSI()))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(core.ColorHeading.ANSI()))
)
