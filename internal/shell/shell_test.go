package shell

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbox/internal/catalog"
	"github.com/abhisek/quizbox/internal/feedback"
	"github.com/abhisek/quizbox/internal/logging"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/rewards"
	"github.com/abhisek/quizbox/internal/session"
	"github.com/abhisek/quizbox/internal/store"
)

type fakeCatalog struct {
	data     map[string]catalog.GameData
	next     map[string]quiz.Game
	err      error
	panicked bool
}

func (f *fakeCatalog) GameData(id string) (catalog.GameData, bool) {
	d, ok := f.data[id]
	return d, ok
}

func (f *fakeCatalog) NextGame(id string) (quiz.Game, error) {
	if f.panicked {
		panic("series index out of range")
	}
	if f.err != nil {
		return quiz.Game{}, f.err
	}
	g, ok := f.next[id]
	if !ok {
		return quiz.Game{}, catalog.ErrNoNextGame
	}
	return g, nil
}

func testGame() quiz.Game {
	q := func(id string) quiz.Question {
		return quiz.Question{
			ID:   id,
			Text: "pick a",
			Options: []quiz.Option{
				{Text: "a", IsCorrect: true},
				{Text: "b"},
			},
		}
	}
	return quiz.Game{
		ID:        "spot-the-bot",
		Title:     "Spot the Bot",
		Subtitle:  "AI or not?",
		Topic:     "ai-literacy",
		Kind:      quiz.KindBadge,
		Badge:     "Bot Spotter",
		Rewards:   quiz.RewardSpec{CoinsPerLevel: 5},
		Questions: []quiz.Question{q("q1"), q("q2"), q("q3"), q("q4")},
	}
}

func nextGame() quiz.Game {
	return quiz.Game{ID: "deepfake-detective", Title: "Deepfake Detective", Topic: "ai-literacy", Kind: quiz.KindReflex}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "shell.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newHost(t *testing.T, cat Catalog, s *store.Store) (*Host, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := logging.New(&buf, log.DebugLevel)

	var (
		events store.EventRepo
		snaps  store.SnapshotRepo
	)
	if s != nil {
		events = s.EventRepo()
		snaps = s.SnapshotRepo()
	}
	h := New(cat, nil, events, snaps, logger)

	clock := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	h.now = func() time.Time {
		clock = clock.Add(30 * time.Second)
		return clock
	}
	h.newID = func() string { return "session-1" }
	return h, &buf
}

func playedState(score, total int) session.State {
	st := session.State{
		Phase:         session.PhaseFinished,
		CurrentIndex:  total - 1,
		Score:         score,
		SelectedIndex: -1,
		Total:         total,
	}
	for i := 0; i < total; i++ {
		st.Answers = append(st.Answers, session.Answer{QuestionID: "q", Correct: i < score})
	}
	return st
}

func TestBeginResolvesRewardsAndNext(t *testing.T) {
	cat := &fakeCatalog{
		data: map[string]catalog.GameData{"spot-the-bot": {XP: 120}},
		next: map[string]quiz.Game{"spot-the-bot": nextGame()},
	}
	h, _ := newHost(t, cat, nil)

	p := h.Begin(context.Background(), testGame())
	assert.Equal(t, "session-1", p.SessionID)
	assert.Equal(t, 5, p.Config.CoinsPerLevel)
	assert.Equal(t, 120, p.Config.TotalXP)
	assert.Equal(t, 3, p.Config.PassThreshold)
	require.NotNil(t, p.Next)
	assert.Equal(t, "deepfake-detective", p.Next.ID)
}

func TestNextGameFallbacks(t *testing.T) {
	tests := []struct {
		name    string
		cat     *fakeCatalog
		warning string
	}{
		{"end of catalogue", &fakeCatalog{}, ""},
		{"lookup error", &fakeCatalog{err: errors.New("index unavailable")}, "next game lookup failed"},
		{"lookup panic", &fakeCatalog{panicked: true}, "next game lookup panicked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, buf := newHost(t, tt.cat, nil)
			p := h.Begin(context.Background(), testGame())
			assert.Nil(t, p.Next)

			props := p.Props(session.State{Total: 4, SelectedIndex: -1}, feedback.State{})
			assert.Empty(t, props.NextGameID)
			assert.Empty(t, props.NextGamePath)

			if tt.warning != "" {
				assert.Contains(t, buf.String(), tt.warning)
			} else {
				assert.NotContains(t, buf.String(), "WARN")
			}
		})
	}
}

func TestPropsWhilePlaying(t *testing.T) {
	cat := &fakeCatalog{next: map[string]quiz.Game{"spot-the-bot": nextGame()}}
	h, _ := newHost(t, cat, nil)
	p := h.Begin(context.Background(), testGame())

	st := session.State{
		Phase:         session.PhasePlaying,
		CurrentIndex:  1,
		Score:         1,
		Answered:      true,
		SelectedIndex: 0,
		TimeLeft:      7,
		Total:         4,
	}
	fx := feedback.State{Flashing: true, FlashPoints: 1, ShowAnswerConfetti: true}

	props := p.Props(st, fx)
	assert.Equal(t, Props{
		Title:         "Spot the Bot",
		Subtitle:      "AI or not?",
		GameID:        "spot-the-bot",
		GameType:      quiz.KindBadge,
		Score:         1,
		MaxScore:      4,
		TotalLevels:   4,
		CurrentLevel:  2,
		CoinsPerLevel: 5,
		TotalCoins:    5,
		MaxCoins:      20,
		TotalXP:       rewards.DefaultXP,
		ShowConfetti:  true,
		FlashPoints:   1,
		TimeLeft:      7,
		NextGamePath:  "/games/ai-literacy/deepfake-detective",
		NextGameID:    "deepfake-detective",
		BackPath:      "/games/ai-literacy",
	}, props)
}

func TestPropsGameOver(t *testing.T) {
	h, _ := newHost(t, &fakeCatalog{}, nil)
	p := h.Begin(context.Background(), testGame())

	passed := p.Props(playedState(3, 4), feedback.State{})
	assert.True(t, passed.ShowGameOver)
	assert.True(t, passed.ShowConfetti)
	assert.Equal(t, 4, passed.CurrentLevel)
	assert.Equal(t, 15, passed.TotalCoins)
	assert.Zero(t, passed.TimeLeft)

	failed := p.Props(playedState(1, 4), feedback.State{})
	assert.True(t, failed.ShowGameOver)
	assert.False(t, failed.ShowConfetti)
}

func TestFinishPersistsEverything(t *testing.T) {
	s := openStore(t)
	h, _ := newHost(t, &fakeCatalog{}, s)
	ctx := context.Background()

	p := h.Begin(ctx, testGame())
	st := playedState(4, 4)
	for _, a := range st.Answers {
		h.RecordAnswer(ctx, p, a)
	}
	done := h.Finish(ctx, p, st)

	assert.True(t, done.Outcome.Passed)
	assert.True(t, done.Outcome.Perfect)
	assert.Equal(t, "Bot Spotter", done.Outcome.Badge)
	require.Len(t, done.Awards, 3)
	assert.Equal(t, 20, done.Wallet.Coins)
	assert.Equal(t, 1, done.Wallet.Badges)
	assert.Equal(t, 4, done.Summary.TotalCorrect)
	assert.Greater(t, done.Summary.Duration, time.Duration(0))

	sums, err := s.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, "session-1", sums[0].SessionID)
	assert.True(t, sums[0].Passed)
	assert.Equal(t, 20, sums[0].Coins)

	acc, err := s.EventRepo().GameAccuracy(ctx, "spot-the-bot")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, acc, 1e-9)

	snap, err := s.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	require.NotNil(t, snap.Data.Wallet)
	assert.Equal(t, 20, snap.Data.Wallet.Coins)
	assert.Equal(t, []string{"Bot Spotter"}, snap.Data.Wallet.EarnedBadges)

	assert.Equal(t, map[string]int{"spot-the-bot": 4}, h.BestScores(ctx))
	assert.Equal(t, rewards.Wallet{Coins: 20, XP: rewards.DefaultXP, Badges: 1}, h.Wallet(ctx))
}

func TestAbandonGrantsNothing(t *testing.T) {
	s := openStore(t)
	h, _ := newHost(t, &fakeCatalog{}, s)
	ctx := context.Background()

	p := h.Begin(ctx, testGame())
	st := session.State{Phase: session.PhasePlaying, Score: 1, Total: 4, SelectedIndex: -1}
	h.Abandon(ctx, p, st)

	assert.Equal(t, rewards.Wallet{}, h.Wallet(ctx))
	sums, err := s.EventRepo().QuerySessionSummaries(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.False(t, sums[0].Passed)
}

func TestWalletFallsBackToSnapshot(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()
	require.NoError(t, s.SnapshotRepo().Save(ctx, &store.Snapshot{
		Data: store.SnapshotData{Version: 1, Wallet: &store.WalletSnapshotData{
			Coins: 70, XP: 150, Badges: 2, BestScores: map[string]int{"eco-warrior": 3},
		}},
	}))

	h, buf := newHost(t, &fakeCatalog{}, s)
	h.events = failingEvents{}
	h.rewards = rewards.NewService(failingEvents{}, h.logger)

	assert.Equal(t, rewards.Wallet{Coins: 70, XP: 150, Badges: 2}, h.Wallet(ctx))
	assert.Equal(t, map[string]int{"eco-warrior": 3}, h.BestScores(ctx))
	assert.Contains(t, buf.String(), "load wallet")
}

func TestWithoutStoreKeepsAwardsInMemory(t *testing.T) {
	h, _ := newHost(t, &fakeCatalog{}, nil)
	ctx := context.Background()

	p := h.Begin(ctx, testGame())
	done := h.Finish(ctx, p, playedState(2, 4))
	assert.False(t, done.Outcome.Passed)
	assert.Equal(t, 10, done.Wallet.Coins)
	assert.Empty(t, h.BestScores(ctx))
}

func TestPaths(t *testing.T) {
	assert.Equal(t, "/games/health/healthy-habits", GamePath(quiz.Game{ID: "healthy-habits", Topic: "health"}))
	assert.Equal(t, "/games", TopicPath(""))
}

var errLedger = errors.New("ledger unavailable")

type failingEvents struct{}

func (failingEvents) AppendSessionEvent(context.Context, store.SessionEventData) error {
	return errLedger
}
func (failingEvents) AppendAnswerEvent(context.Context, store.AnswerEventData) error {
	return errLedger
}
func (failingEvents) AppendRewardEvent(context.Context, store.RewardEventData) error {
	return errLedger
}
func (failingEvents) QueryRewardEvents(context.Context, store.QueryOpts) ([]store.RewardEventRecord, error) {
	return nil, errLedger
}
func (failingEvents) RewardTotals(context.Context) (store.RewardTotals, error) {
	return store.RewardTotals{}, errLedger
}
func (failingEvents) BestScores(context.Context) (map[string]int, error) {
	return nil, errLedger
}
func (failingEvents) QuerySessionSummaries(context.Context, store.QueryOpts) ([]store.SessionSummaryRecord, error) {
	return nil, errLedger
}
func (failingEvents) GameAccuracy(context.Context, string) (float64, error) {
	return 0, errLedger
}
