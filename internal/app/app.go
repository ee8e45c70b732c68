// Package app wires the screens into the Bubble Tea program.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/log"

	"github.com/abhisek/quizbox/internal/catalog"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/router"
	"github.com/abhisek/quizbox/internal/screen"
	"github.com/abhisek/quizbox/internal/screens/home"
	"github.com/abhisek/quizbox/internal/screens/play"
	"github.com/abhisek/quizbox/internal/ui/layout"
)

// Options configures the application.
type Options struct {
	Env     *play.Env
	Catalog *catalog.Catalog
	Logger  *log.Logger

	// StartGame, when set, is pushed on top of the home screen at start.
	StartGame *quiz.Game
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	logger *log.Logger
	width  int
	height int
	coins  int
	xp     int

	initCmds []tea.Cmd
}

// NewModel creates the root model with the home screen at the bottom of
// the stack.
func NewModel(opts Options) *AppModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	root := home.New(opts.Env, opts.Catalog)
	m := &AppModel{router: router.New(root), logger: logger}
	m.initCmds = append(m.initCmds, root.Init())
	if opts.StartGame != nil {
		m.initCmds = append(m.initCmds, m.router.Push(opts.Env.Launch(*opts.StartGame)))
	}
	return m
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.initCmds...)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case screen.WalletMsg:
		m.coins, m.xp = msg.Coins, msg.XP
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if bi, ok := m.router.Active().(screen.BackInterceptor); ok && bi.InterceptsBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case tea.QuitMsg:
		m.router.CloseAll()
	}

	before := m.router.Active()
	cmd := m.router.Update(msg)
	if after := m.router.Active(); after != before {
		m.logger.Debug("screen changed", "screen", after.Title(), "depth", m.router.Depth())
	}
	return m, cmd
}

func (m *AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	header := layout.RenderHeader(title, m.coins, m.xp, m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	} else {
		hints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Wallet returns the totals shown in the header.
func (m *AppModel) Wallet() (coins, xp int) {
	return m.coins, m.xp
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	m := NewModel(opts)
	defer m.router.CloseAll()

	if _, err := tea.NewProgram(m).Run(); err != nil {
		return fmt.Errorf("run program: %w", err)
	}
	return nil
}
