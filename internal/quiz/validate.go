package quiz

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError describes one authoring problem in a game.
type ValidationError struct {
	GameID     string
	QuestionID string // empty for game-level problems
	Message    string
}

func (e *ValidationError) Error() string {
	if e.QuestionID == "" {
		return fmt.Sprintf("game %q: %s", e.GameID, e.Message)
	}
	return fmt.Sprintf("game %q question %q: %s", e.GameID, e.QuestionID, e.Message)
}

// Validate checks every structural rule for a game and returns all
// problems joined together, or nil when the game is playable.
func Validate(g Game) error {
	var errs []error
	add := func(qid, format string, args ...any) {
		errs = append(errs, &ValidationError{
			GameID:     g.ID,
			QuestionID: qid,
			Message:    fmt.Sprintf(format, args...),
		})
	}

	if strings.TrimSpace(g.ID) == "" {
		add("", "id is empty")
	}
	if strings.TrimSpace(g.Title) == "" {
		add("", "title is empty")
	}
	if !g.Kind.Valid() {
		add("", "unknown kind %q", g.Kind)
	}
	if len(g.Questions) == 0 {
		add("", "has no questions")
	}
	if g.PassThreshold < 0 || g.PassThreshold > len(g.Questions) {
		add("", "pass_threshold %d outside 0..%d", g.PassThreshold, len(g.Questions))
	}
	if g.RoundTime < 0 {
		add("", "round_time must not be negative")
	}
	if g.Rewards.CoinsPerLevel < 0 || g.Rewards.Coins < 0 || g.Rewards.XP < 0 {
		add("", "reward values must not be negative")
	}
	if g.Rewards.Coins > 0 && g.Rewards.Rule != "flat" {
		add("", "rewards.coins is a flat total; use coins_per_level for rule %q", ruleName(g.Rewards.Rule))
	}

	seen := make(map[string]bool, len(g.Questions))
	for i, q := range g.Questions {
		qid := q.ID
		if qid == "" {
			qid = fmt.Sprintf("#%d", i+1)
			add(qid, "id is empty")
		} else if seen[qid] {
			add(qid, "duplicate question id")
		}
		seen[qid] = true

		if strings.TrimSpace(q.Text) == "" {
			add(qid, "text is empty")
		}
		if len(q.Options) < 2 {
			add(qid, "needs at least 2 options, has %d", len(q.Options))
		}
		correct := 0
		for j, o := range q.Options {
			if strings.TrimSpace(o.Text) == "" {
				add(qid, "option %d has empty text", j+1)
			}
			if o.IsCorrect {
				correct++
			}
		}
		if correct != 1 {
			add(qid, "must have exactly one correct option, has %d", correct)
		}
	}

	return errors.Join(errs...)
}

func ruleName(r string) string {
	if r == "" {
		return "per-correct"
	}
	return r
}
