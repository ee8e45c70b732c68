package components

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// ButtonWidth is the fixed width of menu buttons.
const ButtonWidth = 24

// ContentWidth returns the inner width shared by all boxes of a screen so
// they line up inside the cabinet frame.
func ContentWidth(frameWidth int) int {
	return max(20, min(frameWidth-6, 64))
}

// CabinetFrame wraps content in a double border centered in width x height.
func CabinetFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// Card wraps content in a rounded box cw columns wide. A nil border uses
// the default border colour.
func Card(content string, cw int, border color.Color) string {
	if border == nil {
		border = theme.Border
	}
	return theme.Card.BorderForeground(border).Width(cw - 2).Render(content)
}

// ArcadeButton renders a menu button. The selected one is filled.
func ArcadeButton(label string, selected bool, width int) string {
	if !selected {
		return theme.ButtonInactive.Width(width).Render(label)
	}
	return theme.ButtonActive.Width(width).Render("▸ " + label)
}

// DisabledButton renders a greyed out menu button.
func DisabledButton(label string, width int) string {
	return theme.ButtonInactive.Width(width).Foreground(theme.TextDim).Render(label)
}

func compactButton(item MenuItem, selected bool) string {
	switch {
	case item.Disabled:
		return theme.Dimmed.Render("   " + item.Label)
	case selected:
		return lipgloss.NewStyle().
			Foreground(theme.BgDark).
			Background(theme.ArcadeYellow).
			Bold(true).
			Render(" ▸ " + item.Label + " ")
	default:
		return theme.Body.Render("   " + item.Label)
	}
}

// WalletBar renders the coin, XP and badge totals in a double-bordered
// strip cw columns wide.
func WalletBar(coins, xp, badges, cw int, compact bool) string {
	format := "🪙 %s  ✨ %s  🏅 %s"
	c, x, b := fmt.Sprintf("%d COINS", coins), fmt.Sprintf("%d XP", xp), fmt.Sprintf("%d BADGES", badges)
	if compact {
		format = "🪙%s ✨%s 🏅%s"
		c, x, b = fmt.Sprint(coins), fmt.Sprint(xp), fmt.Sprint(badges)
	}
	line := fmt.Sprintf(format,
		theme.Coins.Render(c),
		theme.XP.Render(x),
		theme.Badge.Render(b),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.ArcadeCyan).
		Width(cw-2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// Centered renders s centered in width columns with style.
func Centered(s string, width int, style lipgloss.Style) string {
	return style.Width(width).Align(lipgloss.Center).Render(s)
}
