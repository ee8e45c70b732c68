// Package rewards is the screen listing the player's awards and past games.
package rewards

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	rw "github.com/abhisek/quizbox/internal/rewards"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/store"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

const loadLimit = 50

type tab int

const (
	tabAwards tab = iota
	tabHistory
)

type loadedMsg struct {
	Awards   []store.RewardEventRecord
	Sessions []store.SessionSummaryRecord
	Totals   store.RewardTotals
	Err      error
}

// RewardsScreen shows the wallet, the award log and the game history.
type RewardsScreen struct {
	events store.EventRepo
	titles func(gameID string) string

	tab      tab
	awards   table.Model
	history  table.Model
	totals   store.RewardTotals
	badges   []string
	loaded   bool
	errMsg   string
	noLedger bool
}

var _ screen.Screen = (*RewardsScreen)(nil)
var _ screen.KeyHintProvider = (*RewardsScreen)(nil)

// New creates a RewardsScreen. titles maps game ids to display titles and
// may be nil.
func New(events store.EventRepo, titles func(string) string) *RewardsScreen {
	if titles == nil {
		titles = func(id string) string { return id }
	}
	return &RewardsScreen{
		events:   events,
		titles:   titles,
		awards:   newTable(awardColumns(60)),
		history:  newTable(historyColumns(60)),
		noLedger: events == nil,
	}
}

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(theme.BgDark).
		Background(theme.ArcadeCyan).
		Bold(false)
	t.SetStyles(s)
	return t
}

func awardColumns(width int) []table.Column {
	reason := max(width-40, 12)
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Award", Width: 16},
		{Title: "Coins", Width: 6},
		{Title: "XP", Width: 6},
		{Title: "Details", Width: reason},
	}
}

func historyColumns(width int) []table.Column {
	game := max(width-42, 12)
	return []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Game", Width: game},
		{Title: "Score", Width: 8},
		{Title: "Time", Width: 6},
		{Title: "Coins", Width: 6},
		{Title: "", Width: 4},
	}
}

func (s *RewardsScreen) Init() tea.Cmd {
	if s.events == nil {
		return nil
	}
	events := s.events
	return func() tea.Msg {
		ctx := context.Background()
		awards, err := events.QueryRewardEvents(ctx, store.QueryOpts{Limit: loadLimit})
		if err != nil {
			return loadedMsg{Err: err}
		}
		sessions, err := events.QuerySessionSummaries(ctx, store.QueryOpts{Limit: loadLimit})
		if err != nil {
			return loadedMsg{Err: err}
		}
		totals, err := events.RewardTotals(ctx)
		if err != nil {
			return loadedMsg{Err: err}
		}
		return loadedMsg{Awards: awards, Sessions: sessions, Totals: totals}
	}
}

func (s *RewardsScreen) Title() string {
	return "Rewards"
}

func (s *RewardsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		components.Hint("Tab", "Awards / History"),
		components.Hint("↑↓", "Scroll"),
		components.Hint("Esc", "Back"),
	}
}

func (s *RewardsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.totals = msg.Totals
		s.badges = earnedBadges(msg.Awards)
		s.awards.SetRows(s.awardRows(msg.Awards))
		s.history.SetRows(s.historyRows(msg.Sessions))
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab", "shift+tab":
			s.tab = 1 - s.tab
			return s, nil
		}
		var cmd tea.Cmd
		if s.tab == tabAwards {
			s.awards, cmd = s.awards.Update(msg)
		} else {
			s.history, cmd = s.history.Update(msg)
		}
		return s, cmd
	}
	return s, nil
}

func (s *RewardsScreen) awardRows(records []store.RewardEventRecord) []table.Row {
	rows := make([]table.Row, 0, len(records))
	for _, r := range records {
		t := rw.AwardType(r.AwardType)
		details := s.titles(r.GameID)
		if r.Badge != "" {
			details = r.Badge + " · " + details
		}
		rows = append(rows, table.Row{
			r.Timestamp.Local().Format("Jan 02 15:04"),
			t.Icon() + " " + t.DisplayName(),
			blankZero(r.Coins),
			blankZero(r.XP),
			details,
		})
	}
	return rows
}

func (s *RewardsScreen) historyRows(sessions []store.SessionSummaryRecord) []table.Row {
	rows := make([]table.Row, 0, len(sessions))
	for _, r := range sessions {
		mark := ""
		if r.Passed {
			mark = "✓"
		}
		rows = append(rows, table.Row{
			r.Timestamp.Local().Format("Jan 02 15:04"),
			s.titles(r.GameID),
			fmt.Sprintf("%d/%d", r.Correct, r.Questions),
			fmt.Sprintf("%d:%02d", r.DurationSecs/60, r.DurationSecs%60),
			blankZero(r.Coins),
			mark,
		})
	}
	return rows
}

func blankZero(n int) string {
	if n == 0 {
		return ""
	}
	return fmt.Sprint(n)
}

// earnedBadges returns badge names in the order they were first earned.
func earnedBadges(records []store.RewardEventRecord) []string {
	var out []string
	seen := make(map[string]bool)
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if r.AwardType != string(rw.AwardBadge) || r.Badge == "" || seen[r.Badge] {
			continue
		}
		seen[r.Badge] = true
		out = append(out, r.Badge)
	}
	return out
}

func (s *RewardsScreen) View(width, height int) string {
	if s.noLedger {
		return components.Centered("\n\nProgress is not being saved, so there is nothing to show.", width, theme.Hint)
	}
	if s.errMsg != "" {
		return components.Centered("\n\nError: "+s.errMsg, width, lipgloss.NewStyle().Foreground(theme.Error))
	}
	if !s.loaded {
		return components.Centered("\n\nLoading rewards...", width, theme.Hint)
	}

	tw := min(width-4, 90)
	s.awards.SetColumns(awardColumns(tw))
	s.history.SetColumns(historyColumns(tw))
	s.awards.SetWidth(tw)
	s.history.SetWidth(tw)
	s.awards.SetHeight(max(height-12, 4))
	s.history.SetHeight(max(height-12, 4))

	var b strings.Builder
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		components.WalletBar(s.totals.Coins, s.totals.XP, s.totals.Badges,
			min(tw, 64), layout.IsCompactWidth(width))))
	b.WriteString("\n")
	b.WriteString(s.renderBadges(width))
	b.WriteString("\n\n")
	b.WriteString(s.renderTabs(width))
	b.WriteString("\n\n")

	current := s.awards
	empty := "No awards yet. Finish a game to earn coins!"
	if s.tab == tabHistory {
		current = s.history
		empty = "No games played yet."
	}
	if len(current.Rows()) == 0 {
		b.WriteString(components.Centered(empty, width, theme.Hint))
	} else {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, current.View()))
	}
	return b.String()
}

func (s *RewardsScreen) renderBadges(width int) string {
	if len(s.badges) == 0 {
		return components.Centered("No badges yet", width, theme.Hint)
	}
	var parts []string
	for _, b := range s.badges {
		parts = append(parts, "🏅 "+b)
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(theme.Badge.Render(strings.Join(parts, "   ")))
}

func (s *RewardsScreen) renderTabs(width int) string {
	label := func(name string, active bool, c color.Color) string {
		if active {
			return lipgloss.NewStyle().Foreground(theme.BgDark).Background(c).Bold(true).Render(" " + name + " ")
		}
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(" " + name + " ")
	}
	line := label("Awards", s.tab == tabAwards, theme.Gold) + "  " +
		label("History", s.tab == tabHistory, theme.ArcadeCyan)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}
