package components

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/ui/theme"
)

// OptionList shows the choices of one question. Once Reveal is called it
// marks the correct option and the chosen one and stops taking input.
type OptionList struct {
	Options  []quiz.Option
	Cursor   int
	revealed bool
	chosen   int
}

// ChooseMsg is returned by Update when the player picks an option.
type ChooseMsg struct {
	Index int
}

// NewOptionList creates a list for q.
func NewOptionList(q quiz.Question) OptionList {
	return OptionList{Options: q.Options, chosen: -1}
}

// Reveal freezes the list and highlights the answer. chosen is -1 when the
// round timed out.
func (o *OptionList) Reveal(chosen int) {
	o.revealed = true
	o.chosen = chosen
}

// Revealed reports whether the answer is showing.
func (o OptionList) Revealed() bool {
	return o.revealed
}

// Update handles arrows, Enter and the number keys 1-9.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || o.revealed || len(o.Options) == 0 {
		return o, nil
	}

	switch {
	case key.Matches(kmsg, Keys.Up):
		o.Cursor = max(o.Cursor-1, 0)
		return o, nil
	case key.Matches(kmsg, Keys.Down):
		o.Cursor = min(o.Cursor+1, len(o.Options)-1)
		return o, nil
	case key.Matches(kmsg, Keys.Select):
		return o, choose(o.Cursor)
	}

	if s := kmsg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
		i := int(s[0] - '1')
		if i < len(o.Options) {
			o.Cursor = i
			return o, choose(i)
		}
	}
	return o, nil
}

func choose(i int) tea.Cmd {
	return func() tea.Msg { return ChooseMsg{Index: i} }
}

// View renders one option per line, centered in width.
func (o OptionList) View(width int) string {
	var b strings.Builder
	for i, opt := range o.Options {
		marker := "  "
		style := theme.Unselected
		switch {
		case o.revealed && opt.IsCorrect:
			marker, style = "✓ ", theme.Correct
		case o.revealed && i == o.chosen:
			marker, style = "✗ ", theme.Incorrect
		case o.revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == o.Cursor:
			marker, style = "▸ ", theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%d) %s", marker, i+1, opt.Label())))
		b.WriteString("\n")
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.TrimRight(b.String(), "\n"))
}
