package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: bright, friendly, readable on dark terminals.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Gold      = lipgloss.Color("#FACC15") // Coins
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate

	// Home screen banner.
	ArcadeYellow = lipgloss.Color("#FDE047")
	ArcadeCyan   = lipgloss.Color("#22D3EE")
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Align(lipgloss.Center).
		Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Dimmed = lipgloss.NewStyle().
		Foreground(Border)
)

// Rewards
var (
	Coins = lipgloss.NewStyle().
		Foreground(Gold).
		Bold(true)

	XP = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	Badge = lipgloss.NewStyle().
		Foreground(Accent).
		Bold(true)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Foreground(BgDark).
			Background(ArcadeYellow).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ArcadeYellow).
			Bold(true).
			Align(lipgloss.Center).
			Padding(0, 1)

	ButtonInactive = lipgloss.NewStyle().
			Foreground(Text).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Align(lipgloss.Center).
			Padding(0, 1)
)
