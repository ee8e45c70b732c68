package components

import (
	"charm.land/bubbles/v2/key"

	"github.com/abhisek/quizbox/internal/ui/layout"
)

// KeyMap holds the bindings shared by the quizbox screens.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Retry  key.Binding
	Next   key.Binding
	Start  key.Binding
}

// Keys is the default key map.
var Keys = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "Up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "Down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h", "shift+tab"),
		key.WithHelp("←", "Prev topic"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l", "tab"),
		key.WithHelp("→", "Next topic"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "Select"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "Back"),
	),
	Retry: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("R", "Play again"),
	),
	Next: key.NewBinding(
		key.WithKeys("n", "enter"),
		key.WithHelp("Enter", "Next game"),
	),
	Start: key.NewBinding(
		key.WithKeys("enter", "space"),
		key.WithHelp("Enter", "Start"),
	),
}

// Hints converts bindings into footer hints, skipping disabled ones.
func Hints(bindings ...key.Binding) []layout.KeyHint {
	hints := make([]layout.KeyHint, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		hints = append(hints, layout.KeyHint{Key: h.Key, Description: h.Desc})
	}
	return hints
}

// Hint builds a one-off footer hint.
func Hint(k, desc string) layout.KeyHint {
	return layout.KeyHint{Key: k, Description: desc}
}
