package components

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list of arcade buttons. Disabled items are skipped
// while moving and cannot be activated.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu creates a menu with the first enabled item selected.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.Selected = m.step(-1, 1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// step returns the next enabled index from i in direction dir, or i when
// there is none.
func (m Menu) step(i, dir int) int {
	for j := i + dir; j >= 0 && j < len(m.Items); j += dir {
		if !m.Items[j].Disabled {
			return j
		}
	}
	return i
}

// Update moves the selection and runs the selected action on Enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, Keys.Up):
		m.Selected = m.step(m.Selected, -1)
	case key.Matches(kmsg, Keys.Down):
		m.Selected = m.step(m.Selected, 1)
	case key.Matches(kmsg, Keys.Select):
		if m.Selected < 0 || m.Selected >= len(m.Items) {
			return m, nil
		}
		item := m.Items[m.Selected]
		if item.Disabled || item.Action == nil {
			return m, nil
		}
		return m, item.Action()
	}
	return m, nil
}

// View renders the menu as centered buttons inside cw columns.
func (m Menu) View(cw int, compact bool) string {
	rows := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		switch {
		case compact:
			rows = append(rows, compactButton(item, i == m.Selected))
		case item.Disabled:
			rows = append(rows, DisabledButton(item.Label, ButtonWidth))
		default:
			rows = append(rows, ArcadeButton(item.Label, i == m.Selected, ButtonWidth))
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(rows, "\n"))
}

// SelectedLabel returns the label of the highlighted item.
func (m Menu) SelectedLabel() string {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return ""
	}
	return m.Items[m.Selected].Label
}
