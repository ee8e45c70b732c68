package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbox/internal/ui/theme"
)

// Mood selects the mascot art.
type Mood int

const (
	MoodWaving   Mood = iota // nothing played yet
	MoodHappy                // some progress
	MoodCheering             // at least one badge
)

const owlWaving = `  ,___,
  (O,O)  /
  /)_)
   ""`

const owlHappy = `  ,___,
  (^,^)
  /)_)
   ""`

const owlCheering = `\ ,___, /
  (*,*)
  /)_)
   ""`

// moodFor picks the mascot mood from the player's progress.
func moodFor(played, badges int) Mood {
	switch {
	case badges > 0:
		return MoodCheering
	case played > 0:
		return MoodHappy
	default:
		return MoodWaving
	}
}

// RenderMascot returns the owl for mood.
func RenderMascot(mood Mood) string {
	art, fg := owlWaving, theme.Primary
	switch mood {
	case MoodHappy:
		art, fg = owlHappy, theme.ArcadeCyan
	case MoodCheering:
		art, fg = owlCheering, theme.ArcadeYellow
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
