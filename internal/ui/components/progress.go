package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// Bar renders a horizontal bar of width cells filled to percent (0..1).
func Bar(percent float64, width int, fill color.Color) string {
	width = max(width, 4)
	percent = max(0, min(percent, 1))
	filled := int(float64(width)*percent + 0.5)
	return lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", width-filled))
}

// LevelBar renders "Level n/total" followed by a progress bar.
func LevelBar(level, total, width int) string {
	label := theme.Body.Render(fmt.Sprintf("Level %d/%d  ", level, total))
	var pct float64
	if total > 0 {
		pct = float64(level) / float64(total)
	}
	return label + Bar(pct, width-lipgloss.Width(label), theme.Secondary)
}

// Countdown renders the seconds left of a timed round. The bar turns
// orange in the last third and red in the last two seconds.
func Countdown(left, total, width int) string {
	if total <= 0 {
		return ""
	}
	fill := theme.Success
	switch {
	case left <= 2:
		fill = theme.Error
	case left*3 <= total:
		fill = theme.Accent
	}
	label := lipgloss.NewStyle().Foreground(fill).Bold(true).Render(fmt.Sprintf("⏱ %2ds  ", left))
	return label + Bar(float64(left)/float64(total), width-lipgloss.Width(label), fill)
}
