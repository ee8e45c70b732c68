package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/session"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

const confetti = "🎉  ✨  🎊  ✨  🎉"

func (s *PlayScreen) View(width, height int) string {
	if s.confirm {
		return renderQuitConfirm(width, height)
	}
	if s.state.Phase == session.PhaseReady {
		return s.renderIntro(width, height)
	}
	return s.renderQuestion(width, height)
}

func (s *PlayScreen) renderIntro(width, height int) string {
	cw := components.ContentWidth(width)
	g := s.game

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render(g.Kind.Icon() + "  " + g.Title))
	b.WriteString("\n")
	if g.Subtitle != "" {
		b.WriteString(theme.Subtitle.Width(cw).Render(g.Subtitle))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	lines := []string{
		fmt.Sprintf("%d questions", len(g.Questions)),
		fmt.Sprintf("Score %d to pass", g.Threshold()),
	}
	if s.roundTime > 0 {
		lines = append(lines, fmt.Sprintf("%d seconds per question", s.roundTime))
	}
	if g.Badge != "" {
		lines = append(lines, theme.Badge.Render("🏅 Earn the "+g.Badge+" badge"))
	}
	p := s.Props()
	lines = append(lines, fmt.Sprintf("%s  %s",
		theme.Coins.Render(fmt.Sprintf("🪙 up to %d", p.MaxCoins)),
		theme.XP.Render(fmt.Sprintf("✨ %d XP", p.TotalXP)),
	))
	b.WriteString(components.Card(strings.Join(lines, "\n"), cw, theme.Primary))
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Width(cw).Align(lipgloss.Center).Render("Press Enter to start"))

	return components.CabinetFrame(b.String(), width, height)
}

func (s *PlayScreen) renderQuestion(width, height int) string {
	p := s.Props()
	inner := width - 4

	var b strings.Builder

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("  %s %s", s.game.Kind.Icon(), p.GameType.DisplayName()))
	coins := theme.Coins.Render(fmt.Sprintf("🪙 %d", p.TotalCoins))
	if p.FlashTotalCoins {
		coins = lipgloss.NewStyle().Foreground(theme.BgDark).Background(theme.Gold).Bold(true).
			Render(fmt.Sprintf(" 🪙 %d ", p.TotalCoins))
	}
	right := fmt.Sprintf("%s  %s",
		theme.Body.Render(fmt.Sprintf("Score %d/%d", p.Score, p.MaxScore)),
		coins,
	)
	gap := max(inner-lipgloss.Width(left)-lipgloss.Width(right), 1)
	b.WriteString(left + strings.Repeat(" ", gap) + right)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(inner, 0))))
	b.WriteString("\n")

	barWidth := min(inner, 60)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.LevelBar(p.CurrentLevel, p.TotalLevels, barWidth)))
	b.WriteString("\n")
	if s.roundTime > 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			components.Countdown(p.TimeLeft, s.roundTime, barWidth)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q, ok := s.runner.Question(); ok && !p.ShowGameOver {
		b.WriteString(components.Centered(q.Text, width,
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true)))
		b.WriteString("\n\n")
		b.WriteString(s.options.View(width))
		b.WriteString("\n\n")
	}

	b.WriteString(s.renderFeedback(p.FlashPoints, p.ShowConfetti, width))

	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		b.WriteString("\n\n")
		b.WriteString(components.Centered(s.game.Title, width, theme.Subtitle))
	}
	return b.String()
}

func (s *PlayScreen) renderFeedback(points int, showConfetti bool, width int) string {
	var lines []string
	switch {
	case s.result != nil && s.result.Correct:
		lines = append(lines, components.Centered(s.result.Feedback, width, theme.Correct))
	case s.result != nil:
		lines = append(lines, components.Centered(s.result.Feedback, width, theme.Incorrect))
	case s.timedOut:
		lines = append(lines, components.Centered("⏰ Time's up!", width, theme.Incorrect))
	}
	if points > 0 {
		lines = append(lines, components.Centered(fmt.Sprintf("+%d", points), width, theme.Coins))
	}
	if showConfetti {
		lines = append(lines, components.Centered(confetti, width, lipgloss.NewStyle()))
	}
	return strings.Join(lines, "\n")
}

func renderQuitConfirm(width, height int) string {
	box := components.Card(
		theme.Body.Bold(true).Render("Leave this game?")+"\n\n"+
			theme.Hint.Render("Your progress in this round will be lost."),
		min(width-4, 48), theme.Accent)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
