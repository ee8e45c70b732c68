package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/quiz"
)

const twoGameSeries = `
title: Test Topic
games:
  - id: alpha
    title: Alpha
    kind: badge
    badge: Alpha Ace
    rewards: { rule: flat, coins: 25 }
    questions:
      - id: q1
        text: Pick yes
        options:
          - { text: "yes", correct: true }
          - { text: "no" }
  - id: beta
    title: Beta
    kind: reflex
    round_time: 5
    questions:
      - id: q1
        text: Pick one
        options:
          - { text: one, correct: true }
          - { text: two }
`

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, []string{
		"ai-literacy",
		"civic-responsibility",
		"emotional-intelligence",
		"health",
		"sustainability",
		"entrepreneurship",
	}, c.Topics())
	assert.Greater(t, c.Len(), 10)

	for _, g := range c.All() {
		assert.NoError(t, quiz.Validate(g), g.ID)
		assert.NotEmpty(t, g.Topic, g.ID)
	}

	counts := c.Count()
	assert.Positive(t, counts[quiz.KindBadge])
	assert.Positive(t, counts[quiz.KindReflex])
}

func TestDefaultIsCached(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)
	b, err := Default()
	require.NoError(t, err)
	assert.Same(t, a, b)
}

func TestGameLookup(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	g, err := c.Game("spot-the-bot")
	require.NoError(t, err)
	assert.Equal(t, "Spot the Bot", g.Title)
	assert.Equal(t, "ai-literacy", g.Topic)
	assert.Equal(t, "Bot Spotter", g.Badge)

	_, err = c.Game("nope")
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestGameData(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	// Game value wins for XP, series value fills in coins.
	data, ok := c.GameData("eco-warrior")
	require.True(t, ok)
	assert.Equal(t, GameData{Coins: 15, XP: 75}, data)

	data, ok = c.GameData("waste-sorter")
	require.True(t, ok)
	assert.Equal(t, GameData{Coins: 15, XP: 60}, data)

	data, ok = c.GameData("rules-rush")
	require.True(t, ok)
	assert.Equal(t, GameData{}, data)

	_, ok = c.GameData("nope")
	assert.False(t, ok)
}

func TestNextGame(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	tests := []struct {
		id   string
		want string
	}{
		{"spot-the-bot", "deepfake-detective"},
		{"deepfake-detective", "community-helper"}, // wraps into the next topic
		{"lemonade-launch", "money-moves"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			next, err := c.NextGame(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, next.ID)
		})
	}

	_, err = c.NextGame("money-moves")
	assert.ErrorIs(t, err, ErrNoNextGame)

	_, err = c.NextGame("nope")
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestByTopic(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	games := c.ByTopic("health")
	require.Len(t, games, 2)
	assert.Equal(t, "healthy-habits", games[0].ID)
	assert.Nil(t, c.ByTopic("astronomy"))
	assert.Equal(t, "Health & Wellbeing", c.TopicTitle("health"))
	assert.Equal(t, "astronomy", c.TopicTitle("astronomy"))
}

func TestParseSeriesDerivesTopicFromName(t *testing.T) {
	s, err := ParseSeries("07-test-topic.yaml", []byte(twoGameSeries))
	require.NoError(t, err)
	assert.Equal(t, "test-topic", s.Topic)
	require.Len(t, s.Games, 2)
	assert.Equal(t, quiz.KindReflex, s.Games[1].Kind)
	assert.Equal(t, 5, s.Games[1].RoundTime)
	assert.True(t, s.Games[0].Questions[0].Options[0].IsCorrect)
	assert.Equal(t, 25, s.Games[0].Rewards.Coins)
}

func TestTopicFromName(t *testing.T) {
	tests := map[string]string{
		"01-ai-literacy.yaml": "ai-literacy",
		"health.yml":          "health",
		"dir/02-money.yaml":   "money",
		"v2-topic.yaml":       "v2-topic",
	}
	for in, want := range tests {
		assert.Equal(t, want, topicFromName(in), in)
	}
}

func TestParseSeriesSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown kind", `
title: T
games:
  - id: a
    title: A
    kind: puzzle
    questions:
      - id: q1
        text: x
        options: [{ text: a, correct: true }, { text: b }]
`},
		{"missing options", `
title: T
games:
  - id: a
    title: A
    kind: quiz
    questions:
      - id: q1
        text: x
`},
		{"unknown field", `
title: T
games:
  - id: a
    title: A
    kind: quiz
    colour: red
    questions:
      - id: q1
        text: x
        options: [{ text: a, correct: true }, { text: b }]
`},
		{"bad rule", `
title: T
games:
  - id: a
    title: A
    kind: quiz
    rewards: { rule: double }
    questions:
      - id: q1
        text: x
        options: [{ text: a, correct: true }, { text: b }]
`},
		{"no games", `
title: T
games: []
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSeries("bad.yaml", []byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "bad.yaml")
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestParseSeriesRejectsAuthoringBugs(t *testing.T) {
	doc := `
title: T
games:
  - id: a
    title: A
    kind: quiz
    questions:
      - id: q1
        text: two answers
        options: [{ text: a, correct: true }, { text: b, correct: true }]
      - id: q2
        text: no answer
        options: [{ text: a }, { text: b }]
`
	_, err := ParseSeries("bugs.yaml", []byte(doc))
	require.Error(t, err)

	var verr *quiz.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, err.Error(), "has 2")
	assert.Contains(t, err.Error(), "has 0")
}

func TestParseSeriesInvalidYAML(t *testing.T) {
	_, err := ParseSeries("broken.yaml", []byte("title: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse yaml")

	_, err = ParseSeries("empty.yaml", nil)
	require.Error(t, err)
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"01-test.yaml": {Data: []byte(twoGameSeries)},
		"README.md":    {Data: []byte("ignored")},
	}
	c, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"test"}, c.Topics())
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []string{"alpha", "beta"}, c.IDs())
}

func TestLoadRejectsDuplicateIDs(t *testing.T) {
	fsys := fstest.MapFS{
		"01-one.yaml": {Data: []byte(twoGameSeries)},
		"02-two.yaml": {Data: []byte(twoGameSeries)},
	}
	_, err := Load(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate game id "alpha"`)
	assert.Contains(t, err.Error(), `duplicate game id "beta"`)
}

func TestLoadDirOverlaysEmbedded(t *testing.T) {
	dir := t.TempDir()
	override := `
topic: health
title: Health (custom)
games:
  - id: custom-health
    title: Custom Health
    kind: quiz
    questions:
      - id: q1
        text: Drink water?
        options: [{ text: yes, correct: true }, { text: no }]
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "health.yaml"), []byte(override), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "99-test.yaml"), []byte(twoGameSeries), 0o644))

	c, err := LoadDir(dir)
	require.NoError(t, err)

	topics := c.Topics()
	assert.Equal(t, "health", topics[3], "replaced in place")
	assert.Equal(t, "test", topics[len(topics)-1], "new topic appended")
	assert.Equal(t, "Health (custom)", c.TopicTitle("health"))

	_, err = c.Game("healthy-habits")
	assert.ErrorIs(t, err, ErrGameNotFound)
	_, err = c.Game("custom-health")
	assert.NoError(t, err)
}

func TestLoadDirMissing(t *testing.T) {
	_, err := LoadDir(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestValidateFS(t *testing.T) {
	n, err := ValidateFS(fstest.MapFS{"a.yaml": {Data: []byte(twoGameSeries)}})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = ValidateFS(fstest.MapFS{"a.yaml": {Data: []byte("title: T\n")}})
	assert.Error(t, err)
}
