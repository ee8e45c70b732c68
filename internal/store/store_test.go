package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestAutoMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)

	for _, table := range []string{"session_events", "answer_events", "reward_events", "snapshots", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.EventRepo().AppendRewardEvent(ctx, RewardEventData{
		SessionID: "s1", GameID: "g1", AwardType: "completion", Rarity: "rare", Coins: 5,
	}))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	totals, err := s.EventRepo().RewardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, totals.Coins)
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestRewardEventsAndTotals(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []RewardEventData{
		{SessionID: "s1", GameID: "g1", AwardType: "completion", Rarity: "epic", Coins: 30, XP: 50, Reason: "Finished"},
		{SessionID: "s1", GameID: "g1", AwardType: "badge", Rarity: "epic", Badge: "Bot Spotter"},
		{SessionID: "s2", GameID: "g2", AwardType: "completion", Rarity: "common", Coins: 10, XP: 50},
	}
	for _, e := range events {
		require.NoError(t, repo.AppendRewardEvent(ctx, e))
	}

	totals, err := repo.RewardTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, RewardTotals{Coins: 40, XP: 100, Badges: 1}, totals)

	records, err := repo.QueryRewardEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "g2", records[0].GameID, "newest first")
	assert.Equal(t, "Bot Spotter", records[1].Badge)
	assert.Greater(t, records[0].Sequence, records[1].Sequence)
	assert.False(t, records[0].Timestamp.IsZero())

	limited, err := repo.QueryRewardEvents(ctx, QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	after, err := repo.QueryRewardEvents(ctx, QueryOpts{After: records[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "g2", after[0].GameID)
}

func TestEmptyTotals(t *testing.T) {
	s := openTestStore(t)
	totals, err := s.EventRepo().RewardTotals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, RewardTotals{}, totals)
}

func TestSessionSummariesAndBestScores(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s1", GameID: "g1", Action: "start"}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s1", GameID: "g1", Action: "end", Questions: 4, Correct: 2, DurationSecs: 40,
	}))
	require.NoError(t, repo.AppendRewardEvent(ctx, RewardEventData{SessionID: "s1", GameID: "g1", AwardType: "completion", Rarity: "rare", Coins: 20}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{SessionID: "s2", GameID: "g1", Action: "start"}))
	require.NoError(t, repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: "s2", GameID: "g1", Action: "end", Questions: 4, Correct: 4, DurationSecs: 35, Passed: true,
	}))

	sums, err := repo.QuerySessionSummaries(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "s2", sums[0].SessionID)
	assert.True(t, sums[0].Passed)
	assert.Equal(t, 4, sums[0].Correct)
	assert.Equal(t, 20, sums[1].Coins)
	assert.Equal(t, 40, sums[1].DurationSecs)

	best, err := repo.BestScores(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"g1": 4}, best)
}

func TestGameAccuracy(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	acc, err := repo.GameAccuracy(ctx, "g1")
	require.NoError(t, err)
	assert.Equal(t, 0.0, acc)

	for i, correct := range []bool{true, false, true, true} {
		require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
			SessionID: "s1", GameID: "g1", QuestionID: string(rune('a' + i)), Selected: 0, Correct: correct,
		}))
	}
	require.NoError(t, repo.AppendAnswerEvent(ctx, AnswerEventData{
		SessionID: "s1", GameID: "g2", QuestionID: "x", Selected: -1, TimedOut: true,
	}))

	acc, err = repo.GameAccuracy(ctx, "g1")
	require.NoError(t, err)
	assert.InDelta(t, 0.75, acc, 1e-9)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	require.NoError(t, repo.AppendRewardEvent(ctx, RewardEventData{SessionID: "s", GameID: "g", AwardType: "completion", Rarity: "rare", Coins: 7}))
	require.NoError(t, s.SnapshotRepo().Save(ctx, &Snapshot{Sequence: 1, Timestamp: time.Now(), Data: SnapshotData{Version: 1}}))

	require.NoError(t, s.Reset(ctx))

	totals, err := repo.RewardTotals(ctx)
	require.NoError(t, err)
	assert.Zero(t, totals.Coins)
	snap, err := s.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestSnapshotSaveAndLatest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	snap, err := repo.Latest(ctx)
	if err != nil {
		t.Fatalf("latest (empty): %v", err)
	}
	if snap != nil {
		t.Fatal("expected nil snapshot when none exist")
	}

	now := time.Now().UTC().Truncate(time.Second)
	err = repo.Save(ctx, &Snapshot{
		Sequence:  42,
		Timestamp: now,
		Data: SnapshotData{
			Version: 1,
			Wallet: &WalletSnapshotData{
				Coins:        120,
				XP:           300,
				Badges:       2,
				BestScores:   map[string]int{"spot-the-bot": 4},
				EarnedBadges: []string{"Bot Spotter"},
			},
		},
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err = repo.Latest(ctx)
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, int64(42), snap.Sequence)
	assert.Equal(t, 1, snap.Data.Version)
	require.NotNil(t, snap.Data.Wallet)
	assert.Equal(t, 120, snap.Data.Wallet.Coins)
	assert.Equal(t, 4, snap.Data.Wallet.BestScores["spot-the-bot"])
	assert.Equal(t, []string{"Bot Spotter"}, snap.Data.Wallet.EarnedBadges)
}

func TestSnapshotSaveFillsSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, s.EventRepo().AppendAnswerEvent(ctx, AnswerEventData{SessionID: "s", GameID: "g", QuestionID: "q"}))
	}

	snap := &Snapshot{Data: SnapshotData{Version: 1}}
	require.NoError(t, s.SnapshotRepo().Save(ctx, snap))
	assert.Equal(t, int64(3), snap.Sequence)
	assert.False(t, snap.Timestamp.IsZero())

	latest, err := s.SnapshotRepo().Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), latest.Sequence)
}

func TestSnapshotLatestReturnsNewest(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 3; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: i + 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), snap.Sequence)
	assert.Equal(t, 3, snap.Data.Version)
}

func countSnapshots(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM snapshots").Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestSnapshotPrune(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 7; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	assert.Equal(t, 5, countSnapshots(t, s))

	snap, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(7), snap.Sequence)
}

func TestSnapshotPruneWithFewerThanKeep(t *testing.T) {
	s := openTestStore(t)
	repo := s.SnapshotRepo()
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i := 0; i < 2; i++ {
		err := repo.Save(ctx, &Snapshot{
			Sequence:  int64(i + 1),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Data:      SnapshotData{Version: 1},
		})
		if err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}

	if err := repo.Prune(ctx, 5); err != nil {
		t.Fatalf("prune: %v", err)
	}
	assert.Equal(t, 2, countSnapshots(t, s))
}
