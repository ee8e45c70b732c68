// Package home is the main menu.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/catalog"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/picker"
	"github.com/abhisek/quizbox/internal/screens/play"
	"github.com/abhisek/quizbox/internal/screens/rewards"
	"github.com/abhisek/quizbox/internal/ui/components"
	"github.com/abhisek/quizbox/internal/ui/layout"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

const (
	itemQuickPlay = "QUICK PLAY"
	itemGames     = "ALL GAMES"
	itemRewards   = "MY REWARDS"
	itemExit      = "EXIT"
)

type progressMsg struct {
	Coins  int
	XP     int
	Badges int
	Best   map[string]int
}

// HomeScreen shows the banner, the wallet and the main menu.
type HomeScreen struct {
	env     *play.Env
	catalog *catalog.Catalog
	menu    components.Menu

	coins, xp, badges int
	best              map[string]int
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

// New creates the home screen.
func New(env *play.Env, cat *catalog.Catalog) *HomeScreen {
	h := &HomeScreen{env: env, catalog: cat, best: map[string]int{}}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: itemQuickPlay, Action: h.quickPlay},
		{Label: itemGames, Action: func() tea.Cmd {
			return push(picker.New(cat, env.Host, env.Launch, ""))
		}},
		{Label: itemRewards, Action: func() tea.Cmd {
			return push(rewards.New(env.Host.Events(), h.gameTitle))
		}},
		{Label: itemExit, Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

// quickPlay starts the first game that has not been passed yet, or the
// first game when everything is done.
func (h *HomeScreen) quickPlay() tea.Cmd {
	g, ok := h.nextUnfinished()
	if !ok {
		return nil
	}
	return push(h.env.Launch(g))
}

func (h *HomeScreen) nextUnfinished() (quiz.Game, bool) {
	all := h.catalog.All()
	if len(all) == 0 {
		return quiz.Game{}, false
	}
	for _, g := range all {
		if best, ok := h.best[g.ID]; !ok || best < g.Threshold() {
			return g, true
		}
	}
	return all[0], true
}

func (h *HomeScreen) gameTitle(id string) string {
	if g, err := h.catalog.Game(id); err == nil {
		return g.Title
	}
	return id
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadProgress()
}

// Resume refreshes the wallet when the player comes back to the menu.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadProgress()
}

func (h *HomeScreen) loadProgress() tea.Cmd {
	host := h.env.Host
	return func() tea.Msg {
		ctx := context.Background()
		w := host.Wallet(ctx)
		return progressMsg{Coins: w.Coins, XP: w.XP, Badges: w.Badges, Best: host.BestScores(ctx)}
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if p, ok := msg.(progressMsg); ok {
		h.coins, h.xp, h.badges = p.Coins, p.XP, p.Badges
		if p.Best != nil {
			h.best = p.Best
		}
		return h, func() tea.Msg { return screen.WalletMsg{Coins: p.Coins, XP: p.XP} }
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)
	cw := components.ContentWidth(width)

	sections := []string{renderBanner(cw, compact)}
	if !compact {
		sections = append(sections, lipgloss.PlaceHorizontal(cw, lipgloss.Center,
			RenderMascot(moodFor(len(h.best), h.badges))))
	}
	sections = append(sections,
		components.WalletBar(h.coins, h.xp, h.badges, cw, compact),
		h.menu.View(cw, compact),
	)
	if g, ok := h.nextUnfinished(); ok && h.menu.SelectedLabel() == itemQuickPlay {
		sections = append(sections, components.Centered("Up next: "+g.Title, cw, theme.Subtitle))
	}
	return components.CabinetFrame(strings.Join(sections, "\n\n"), width, height)
}
