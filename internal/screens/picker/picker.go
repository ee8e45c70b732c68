// Package picker lists the games of each topic.
package picker

import (
	"context"
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/catalog"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/result"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// ScoreSource reports the best score recorded per game.
type ScoreSource interface {
	BestScores(ctx context.Context) map[string]int
}

type scoresLoadedMsg struct {
	Best map[string]int
}

// PickerScreen shows one topic at a time with its games.
type PickerScreen struct {
	catalog *catalog.Catalog
	scores  ScoreSource
	launch  result.Launcher
	topics  []string
	topic   int
	cursor  int
	best    map[string]int
}

var (
	_ screen.Screen          = (*PickerScreen)(nil)
	_ screen.KeyHintProvider = (*PickerScreen)(nil)
	_ screen.Resumer         = (*PickerScreen)(nil)
)

// New creates a PickerScreen opened on topic, or on the first topic when
// topic is empty or unknown.
func New(cat *catalog.Catalog, scores ScoreSource, launch result.Launcher, topic string) *PickerScreen {
	s := &PickerScreen{
		catalog: cat,
		scores:  scores,
		launch:  launch,
		topics:  cat.Topics(),
		best:    map[string]int{},
	}
	for i, t := range s.topics {
		if t == topic {
			s.topic = i
		}
	}
	return s
}

func (s *PickerScreen) Init() tea.Cmd {
	return s.loadScores()
}

// Resume reloads best scores after a game.
func (s *PickerScreen) Resume() tea.Cmd {
	return s.loadScores()
}

func (s *PickerScreen) loadScores() tea.Cmd {
	if s.scores == nil {
		return nil
	}
	src := s.scores
	return func() tea.Msg {
		return scoresLoadedMsg{Best: src.BestScores(context.Background())}
	}
}

func (s *PickerScreen) Title() string {
	return "Choose a Game"
}

func (s *PickerScreen) KeyHints() []layout.KeyHint {
	k := components.Keys
	return []layout.KeyHint{
		components.Hint("←→", "Topic"),
		components.Hint("↑↓", "Game"),
		components.Hint(k.Select.Help().Key, "Play"),
		components.Hint(k.Back.Help().Key, k.Back.Help().Desc),
	}
}

func (s *PickerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case scoresLoadedMsg:
		if msg.Best != nil {
			s.best = msg.Best
		}
		return s, nil

	case tea.KeyMsg:
		games := s.games()
		switch {
		case key.Matches(msg, components.Keys.Left):
			s.topic = (s.topic - 1 + len(s.topics)) % max(len(s.topics), 1)
			s.cursor = 0
		case key.Matches(msg, components.Keys.Right):
			s.topic = (s.topic + 1) % max(len(s.topics), 1)
			s.cursor = 0
		case key.Matches(msg, components.Keys.Up):
			s.cursor = max(s.cursor-1, 0)
		case key.Matches(msg, components.Keys.Down):
			s.cursor = min(s.cursor+1, max(len(games)-1, 0))
		case key.Matches(msg, components.Keys.Select):
			if s.launch == nil || s.cursor >= len(games) {
				return s, nil
			}
			next := s.launch(games[s.cursor])
			return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

// Topic returns the topic being shown.
func (s *PickerScreen) Topic() string {
	if len(s.topics) == 0 {
		return ""
	}
	return s.topics[s.topic]
}

func (s *PickerScreen) games() []quiz.Game {
	topic := s.Topic()
	if topic == "" {
		return nil
	}
	return s.catalog.ByTopic(topic)
}

func (s *PickerScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(s.renderTabs(width))
	b.WriteString("\n\n")
	b.WriteString(components.Centered(s.catalog.TopicTitle(s.Topic()), width, theme.Title))
	b.WriteString("\n\n")

	games := s.games()
	if len(games) == 0 {
		b.WriteString(components.Centered("No games in this topic yet.", width, theme.Hint))
		return b.String()
	}

	var rows []string
	for i, g := range games {
		rows = append(rows, s.renderRow(i, g, cw))
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(rows, "\n")))

	if sel := games[min(s.cursor, len(games)-1)]; sel.Subtitle != "" {
		b.WriteString("\n\n")
		b.WriteString(components.Centered(sel.Subtitle, width, theme.Subtitle))
	}
	return b.String()
}

func (s *PickerScreen) renderTabs(width int) string {
	var tabs []string
	for i, t := range s.topics {
		label := fmt.Sprintf(" %d %s ", i+1, s.catalog.TopicTitle(t))
		if i == s.topic {
			tabs = append(tabs, lipgloss.NewStyle().
				Foreground(theme.BgDark).Background(theme.ArcadeCyan).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	line := strings.Join(tabs, " ")
	if lipgloss.Width(line) > width {
		// Only the current tab fits.
		line = tabs[s.topic]
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (s *PickerScreen) renderRow(i int, g quiz.Game, cw int) string {
	marker, style := "  ", theme.Unselected
	if i == s.cursor {
		marker, style = "▸ ", theme.Selected
	}
	left := style.Render(fmt.Sprintf("%s%s %s", marker, g.Kind.Icon(), g.Title))

	status := theme.Hint.Render("not played")
	if best, ok := s.best[g.ID]; ok {
		total := len(g.Questions)
		status = fmt.Sprintf("best %d/%d", best, total)
		switch {
		case best == total:
			status = theme.Coins.Render("🌟 " + status)
		case best >= g.Threshold():
			status = theme.Correct.Render("✓ " + status)
		default:
			status = theme.Body.Render(status)
		}
	}
	gap := max(cw-lipgloss.Width(left)-lipgloss.Width(status), 1)
	return left + strings.Repeat(" ", gap) + status
}
