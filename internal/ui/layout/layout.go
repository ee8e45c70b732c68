// Package layout draws the chrome around every screen: the title bar with
// the wallet, the key hint footer and the size checks.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

const (
	MinWidth  = 60
	MinHeight = 20

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

const appName = "🦉 quizbox"

// KeyHint represents a key binding hint shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

// IsTooSmall reports whether the terminal cannot fit a question card.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the player to enlarge the window.
func RenderMinSizeMessage(width, height int) string {
	body := lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Render("Make the window a bit bigger"),
		"",
		lipgloss.NewStyle().Foreground(theme.Text).
			Render(fmt.Sprintf("quizbox needs %d×%d", MinWidth, MinHeight)),
		lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("now %d×%d", width, height)),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

// walletText is the right side of the header. Narrow terminals get the
// short form.
func walletText(coins, xp int, compact bool) string {
	if compact {
		return theme.Coins.Render(fmt.Sprintf("🪙%d", coins)) + " " +
			theme.XP.Render(fmt.Sprintf("✨%d", xp))
	}
	return theme.Coins.Render(fmt.Sprintf("🪙 %d", coins)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(" · ") +
		theme.XP.Render(fmt.Sprintf("✨ %d XP", xp))
}

// RenderHeader renders the title bar: app name on the left, the screen
// title centred and the wallet on the right. The title is dropped when it
// does not fit.
func RenderHeader(title string, coins, xp int, width int) string {
	inner := max(width-4, 0)
	left := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(" " + appName)
	right := walletText(coins, xp, IsCompactWidth(width))
	center := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(title)

	used := lipgloss.Width(left) + lipgloss.Width(right)
	var line string
	if title == "" || used+lipgloss.Width(center)+2 > inner {
		line = left + strings.Repeat(" ", max(inner-used, 1)) + right
	} else {
		// Centre on the bar, not on the gap between the sides.
		pre := max((inner-lipgloss.Width(center))/2-lipgloss.Width(left), 1)
		post := max(inner-used-lipgloss.Width(center)-pre, 1)
		line = left + strings.Repeat(" ", pre) + center + strings.Repeat(" ", post) + right
	}

	return barStyle(width).Render(line)
}

// RenderFooter lists the key hints. Hints that do not fit are dropped from
// the end, except the last one (usually quit).
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)
	sep := descStyle.Render("  ·  ")

	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, keyStyle.Render(h.Key)+" "+descStyle.Render(h.Description))
	}
	for len(parts) > 2 && lipgloss.Width(" "+strings.Join(parts, sep)) > width-4 {
		parts = append(parts[:len(parts)-2], parts[len(parts)-1])
	}

	return barStyle(width).Render(" " + strings.Join(parts, sep))
}

func barStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the space between them.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}
