package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// WalletSnapshotData is the persisted reward state shown on start-up.
type WalletSnapshotData struct {
	Coins        int            `json:"coins"`
	XP           int            `json:"xp"`
	Badges       int            `json:"badges"`
	BestScores   map[string]int `json:"best_scores,omitempty"`
	EarnedBadges []string       `json:"earned_badges,omitempty"`
}

// SnapshotData captures the player state at a point in time.
type SnapshotData struct {
	Version int                 `json:"version"`
	Wallet  *WalletSnapshotData `json:"wallet,omitempty"`
}

// Snapshot represents a point-in-time capture of player state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages player state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// SessionEventData records the start or end of a game run.
type SessionEventData struct {
	SessionID    string
	GameID       string
	Action       string // "start" or "end"
	Questions    int
	Correct      int
	DurationSecs int
	Passed       bool
}

// AnswerEventData records one resolved question.
type AnswerEventData struct {
	SessionID  string
	GameID     string
	QuestionID string
	Selected   int
	Correct    bool
	TimedOut   bool
	TimeMs     int
}

// RewardEventData records one award.
type RewardEventData struct {
	SessionID string
	GameID    string
	AwardType string
	Rarity    string
	Badge     string
	Reason    string
	Coins     int
	XP        int
}

// RewardEventRecord is a persisted reward event.
type RewardEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionID string
	GameID    string
	AwardType string
	Rarity    string
	Badge     string
	Reason    string
	Coins     int
	XP        int
}

// RewardTotals sums every reward event.
type RewardTotals struct {
	Coins  int
	XP     int
	Badges int
}

// SessionSummaryRecord describes a finished game run.
type SessionSummaryRecord struct {
	SessionID    string
	GameID       string
	Timestamp    time.Time
	Questions    int
	Correct      int
	DurationSecs int
	Passed       bool
	Coins        int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendSessionEvent(ctx context.Context, data SessionEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendRewardEvent(ctx context.Context, data RewardEventData) error

	// QueryRewardEvents returns reward events, newest first.
	QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error)

	// RewardTotals sums coins, XP and badges across all reward events.
	RewardTotals(ctx context.Context) (RewardTotals, error)

	// BestScores returns the highest score recorded per game.
	BestScores(ctx context.Context) (map[string]int, error)

	// QuerySessionSummaries returns finished runs, newest first.
	QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error)

	// GameAccuracy returns the share of correct answers ever given in a
	// game, or 0 when it was never played.
	GameAccuracy(ctx context.Context, gameID string) (float64, error)
}
