package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

const bannerFull = ` ██████  ██    ██ ██ ███████ ██████   ██████  ██   ██
██    ██ ██    ██ ██    ███  ██   ██ ██    ██  ██ ██
██    ██ ██    ██ ██   ███   ██████  ██    ██   ███
██ ▄▄ ██ ██    ██ ██  ███    ██   ██ ██    ██  ██ ██
 ██████   ██████  ██ ███████ ██████   ██████  ██   ██
    ▀▀`

const bannerCompact = "Q · U · I · Z · B · O · X"

// renderBanner returns the title art, or a one-line title when compact.
func renderBanner(cw int, compact bool) string {
	art := bannerFull
	if compact || cw < lipgloss.Width(bannerFull) {
		art = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.ArcadeYellow).Bold(true).Render(art))
}
