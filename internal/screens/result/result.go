// Package result shows the outcome of a finished game.
package result

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/shell"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// Launcher builds the screen that plays a game.
type Launcher func(quiz.Game) screen.Screen

// ResultScreen is the game-over card.
type ResultScreen struct {
	game   quiz.Game
	done   shell.Completion
	launch Launcher
	keys   components.KeyMap
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a ResultScreen. launch starts the retry and the next game.
func New(g quiz.Game, done shell.Completion, launch Launcher) *ResultScreen {
	keys := components.Keys
	keys.Next.SetEnabled(done.Next != nil && launch != nil)
	keys.Retry.SetEnabled(launch != nil)
	return &ResultScreen{game: g, done: done, launch: launch, keys: keys}
}

// Init publishes the new wallet totals to the header.
func (s *ResultScreen) Init() tea.Cmd {
	w := s.done.Wallet
	return func() tea.Msg {
		return screen.WalletMsg{Coins: w.Coins, XP: w.XP}
	}
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return components.Hints(s.keys.Next, s.keys.Retry, s.keys.Back)
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch {
	case key.Matches(kmsg, s.keys.Next):
		next := s.launch(*s.done.Next)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	case key.Matches(kmsg, s.keys.Retry):
		again := s.launch(s.game)
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: again} }
	case key.Matches(kmsg, s.keys.Back):
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ResultScreen) View(width, height int) string {
	out := s.done.Outcome
	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, s.headline(cw))

	stats := []string{
		fmt.Sprintf("Score %d/%d   Accuracy %.0f%%", out.Score, out.MaxScore, out.Accuracy*100),
		fmt.Sprintf("Time %s", formatDuration(s.done.Summary.Duration.Seconds())),
	}
	if s.done.Summary.TimedOut > 0 {
		stats = append(stats, theme.Hint.Render(fmt.Sprintf("%d ran out of time", s.done.Summary.TimedOut)))
	}
	sections = append(sections, components.Card(strings.Join(stats, "\n"), cw, nil))

	if len(s.done.Awards) > 0 {
		var rows []string
		for _, a := range s.done.Awards {
			row := fmt.Sprintf("%s %s", a.Type.Icon(), a.Type.DisplayName())
			if a.Badge != "" {
				row += ": " + a.Badge
			}
			if a.Coins > 0 {
				row += "  " + theme.Coins.Render(fmt.Sprintf("+%d", a.Coins))
			}
			if a.XP > 0 {
				row += "  " + theme.XP.Render(fmt.Sprintf("+%d XP", a.XP))
			}
			rows = append(rows, row)
		}
		sections = append(sections, components.Card(strings.Join(rows, "\n"), cw, theme.Gold))
	}

	w := s.done.Wallet
	sections = append(sections, components.WalletBar(w.Coins, w.XP, w.Badges, cw, layout.IsCompactWidth(width)))

	if s.done.Next != nil {
		sections = append(sections, components.Centered(
			"Next up: "+s.done.Next.Title, cw, theme.Subtitle))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}

func (s *ResultScreen) headline(cw int) string {
	out := s.done.Outcome
	var title string
	var style lipgloss.Style
	switch {
	case out.Perfect:
		title, style = "🌟 Perfect score!", theme.Coins
	case out.Passed:
		title, style = "🎉 Well done!", theme.Correct
	default:
		title, style = "Keep trying!", theme.Badge
	}
	lines := []string{components.Centered(title, cw, style.Bold(true))}

	switch {
	case out.Passed && out.Badge != "":
		lines = append(lines, components.Centered("🏅 Badge earned: "+out.Badge, cw, theme.Badge))
	case !out.Passed:
		lines = append(lines, components.Centered(
			fmt.Sprintf("Score %d to pass. You can do it!", s.game.Threshold()), cw, theme.Subtitle))
	}
	if out.Passed {
		lines = append(lines, components.Centered(out.Rarity.DisplayName()+" run", cw, theme.Hint))
	}
	return strings.Join(lines, "\n")
}

func formatDuration(secs float64) string {
	n := int(secs)
	return fmt.Sprintf("%d:%02d", n/60, n%60)
}
