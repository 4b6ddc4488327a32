package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-labyrinth/internal/core"
)

// Theme maps colour roles to lipgloss styles.
type Theme map[core.Color]lipgloss.Style

// DayTheme is used while the night flag is off.
var DayTheme = Theme{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorWall:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorFloor:       lipgloss.NewStyle(),
	core.ColorDoor:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorEnemy:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorWinZone:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorCollectible: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorFog:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorText:        lipgloss.NewStyle().Foreground(lipgloss.Color("229")),
	core.ColorDim:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
}

// NightTheme is used while the night flag is on.
var NightTheme = Theme{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorWall:        lipgloss.NewStyle().Foreground(lipgloss.Color("61")),
	core.ColorFloor:       lipgloss.NewStyle(),
	core.ColorDoor:        lipgloss.NewStyle().Foreground(lipgloss.Color("130")),
	core.ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("120")).Bold(true),
	core.ColorEnemy:       lipgloss.NewStyle().Foreground(lipgloss.Color("160")).Bold(true),
	core.ColorWinZone:     lipgloss.NewStyle().Foreground(lipgloss.Color("37")),
	core.ColorCollectible: lipgloss.NewStyle().Foreground(lipgloss.Color("178")),
	core.ColorFog:         lipgloss.NewStyle().Foreground(lipgloss.Color("236")),
	core.ColorText:        lipgloss.NewStyle().Foreground(lipgloss.Color("147")),
	core.ColorDim:         lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
}

// ThemeFor picks the theme for the night flag.
func ThemeFor(night bool) Theme {
	if night {
		return NightTheme
	}
	return DayTheme
}

func (t Theme) style(c core.Color) lipgloss.Style {
	if st, ok := t[c]; ok {
		return st
	}
	return t[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, theme Theme) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			sb.WriteString(theme.style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
