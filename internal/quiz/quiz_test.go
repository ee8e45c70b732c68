package quiz

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validGame() Game {
	return Game{
		ID:    "spot-the-bot",
		Title: "Spot the Bot",
		Kind:  KindBadge,
		Questions: []Question{
			{ID: "q1", Text: "Which one is a chatbot?", Options: []Option{
				{Text: "A toaster"},
				{Text: "A program that answers messages", IsCorrect: true},
			}},
			{ID: "q2", Text: "Can AI make mistakes?", Options: []Option{
				{Text: "Yes", IsCorrect: true},
				{Text: "Never"},
			}},
		},
	}
}

func TestValidateAcceptsWellFormedGame(t *testing.T) {
	assert.NoError(t, Validate(validGame()))
}

func TestValidateExactlyOneCorrect(t *testing.T) {
	tests := []struct {
		name    string
		options []Option
	}{
		{"none correct", []Option{{Text: "a"}, {Text: "b"}}},
		{"two correct", []Option{{Text: "a", IsCorrect: true}, {Text: "b", IsCorrect: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := validGame()
			g.Questions[0].Options = tt.options
			err := Validate(g)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "exactly one correct option")

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, "q1", verr.QuestionID)
		})
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	g := validGame()
	g.Title = ""
	g.Questions[1].ID = "q1"
	g.Questions[1].Options = []Option{{Text: "only", IsCorrect: true}}

	err := Validate(g)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "title is empty")
	assert.Contains(t, msg, "duplicate question id")
	assert.Contains(t, msg, "at least 2 options")
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	g := validGame()
	g.PassThreshold = 3
	err := Validate(g)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "pass_threshold"))
}

func TestQuestionIsCorrect(t *testing.T) {
	q := validGame().Questions[0]
	assert.Equal(t, 1, q.CorrectIndex())
	assert.True(t, q.IsCorrect(1))
	assert.False(t, q.IsCorrect(0))
	assert.False(t, q.IsCorrect(-1))
	assert.False(t, q.IsCorrect(5))
}

func TestFeedbackFor(t *testing.T) {
	q := validGame().Questions[0]
	assert.Equal(t, "Correct!", q.FeedbackFor(true))
	assert.Contains(t, q.FeedbackFor(false), "A program that answers messages")

	q.Feedback = &Feedback{Correct: "Nice!", Wrong: "Try again"}
	assert.Equal(t, "Nice!", q.FeedbackFor(true))
	assert.Equal(t, "Try again", q.FeedbackFor(false))
}

func TestThresholdAndCountdown(t *testing.T) {
	g := validGame()
	assert.Equal(t, 2, g.Threshold())
	g.PassThreshold = 1
	assert.Equal(t, 1, g.Threshold())

	assert.Equal(t, 0, g.CountdownSeconds(10))
	g.Kind = KindReflex
	assert.Equal(t, 10, g.CountdownSeconds(10))
	g.RoundTime = 5
	assert.Equal(t, 5, g.CountdownSeconds(10))
}

func TestValidateCoinsNeedFlatRule(t *testing.T) {
	g := validGame()
	g.Rewards = RewardSpec{Coins: 30}
	err := Validate(g)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coins_per_level")

	g.Rewards.Rule = "flat"
	assert.NoError(t, Validate(g))
}
