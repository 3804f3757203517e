package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-puzzles/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:     lipgloss.NewStyle(),
	core.ColorWall:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorBlock:       lipgloss.NewStyle().Foreground(lipgloss.Color("94")),
	core.ColorPlayer:      lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	core.ColorGoal:        lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorSlider:      lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorSwitch:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorSwitchOn:    lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true),
	core.ColorGateClosed:  lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGateOpen:    lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorPin:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorPinSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("208")).Bold(true),
	core.ColorPinBlocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorTreasure:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
	core.ColorDanger:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorDim:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	core.ColorTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorWin:         lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10")),
	core.ColorLose:        lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")),
}

// StyleFor returns the style used for a semantic colour.
func StyleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

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

			sb.WriteString(StyleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	visible := lipgloss.Width(text)
	if visible >= width {
		return text
	}
	return strings.Repeat(" ", (width-visible)/2) + text
}
