package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	pickedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	successStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))

	rewardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("208")).
			Padding(0, 1)

	barFull  = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	barEmpty = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// centerText centers text within given width, measured in terminal cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// fit truncates s to at most width cells.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// progressBar renders percent as a bar of the given width plus the number.
func progressBar(percent, width int) string {
	if width < 1 {
		width = 1
	}
	percent = min(max(percent, 0), 100)
	full := percent * width / 100
	return barFull.Render(strings.Repeat("█", full)) +
		barEmpty.Render(strings.Repeat("░", width-full)) +
		fmt.Sprintf(" %d%%", percent)
}

// wrap breaks s into lines no wider than width cells, on spaces.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}

	var out strings.Builder
	for i, para := range strings.Split(s, "\n") {
		if i > 0 {
			out.WriteByte('\n')
		}
		line := 0
		for j, word := range strings.Fields(para) {
			ww := runewidth.StringWidth(word)
			if j > 0 {
				if line+1+ww > width {
					out.WriteByte('\n')
					line = 0
				} else {
					out.WriteByte(' ')
					line++
				}
			}
			out.WriteString(word)
			line += ww
		}
	}
	return out.String()
}
