package shell

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhisek/quizbox/internal/catalog"
	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/rewards"
	"github.com/abhisek/quizbox/internal/session"
	"github.com/abhisek/quizbox/internal/store"
)

// snapshotKeep is how many wallet snapshots are retained.
const snapshotKeep = 10

// Catalog is the lookup surface the host needs.
type Catalog interface {
	GameData(id string) (catalog.GameData, bool)
	NextGame(id string) (quiz.Game, error)
}

// Host owns the bookkeeping around plays. Repos may be nil, in which case
// nothing is persisted.
type Host struct {
	catalog Catalog
	rewards *rewards.Service
	events  store.EventRepo
	snaps   store.SnapshotRepo
	logger  *log.Logger
	now     func() time.Time
	newID   func() string
}

// New creates a Host.
func New(cat Catalog, rw *rewards.Service, events store.EventRepo, snaps store.SnapshotRepo, logger *log.Logger) *Host {
	if logger == nil {
		logger = log.Default()
	}
	if rw == nil {
		rw = rewards.NewService(events, logger)
	}
	return &Host{
		catalog: cat,
		rewards: rw,
		events:  events,
		snaps:   snaps,
		logger:  logger,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Play is one attempt at a game.
type Play struct {
	SessionID string
	Game      quiz.Game
	Config    rewards.Config
	Started   time.Time

	// Next is the game offered after this one, nil at the end of the
	// catalogue.
	Next *quiz.Game
}

// Completion is the result of a finished play.
type Completion struct {
	Outcome rewards.Outcome
	Awards  []rewards.Award
	Summary session.Summary
	Wallet  rewards.Wallet
	Next    *quiz.Game
}

// Begin starts a play of g with a fresh session id and records the start.
func (h *Host) Begin(ctx context.Context, g quiz.Game) *Play {
	var override rewards.Override
	if data, ok := h.catalog.GameData(g.ID); ok {
		override = rewards.Override{Coins: data.Coins, XP: data.XP}
	}

	p := &Play{
		SessionID: h.newID(),
		Game:      g,
		Config:    rewards.ConfigFor(g, override),
		Started:   h.now(),
		Next:      h.nextGame(g.ID),
	}
	h.rewards.ResetSession()

	if h.events != nil {
		err := h.events.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID: p.SessionID,
			GameID:    g.ID,
			Action:    "start",
			Questions: len(g.Questions),
		})
		if err != nil {
			h.logger.Warn("record session start", "game", g.ID, "error", err)
		}
	}
	h.logger.Debug("play started", "game", g.ID, "session", p.SessionID, "rule", p.Config.Rule)
	return p
}

// RecordAnswer records one resolved question of p.
func (h *Host) RecordAnswer(ctx context.Context, p *Play, a session.Answer) {
	if h.events == nil {
		return
	}
	err := h.events.AppendAnswerEvent(ctx, store.AnswerEventData{
		SessionID:  p.SessionID,
		GameID:     p.Game.ID,
		QuestionID: a.QuestionID,
		Selected:   a.Selected,
		Correct:    a.Correct,
		TimedOut:   a.TimedOut,
		TimeMs:     int(a.Elapsed.Milliseconds()),
	})
	if err != nil {
		h.logger.Warn("record answer", "game", p.Game.ID, "question", a.QuestionID, "error", err)
	}
}

// Finish closes a finished play: it computes the outcome, grants the
// awards, records the end of the session and refreshes the wallet
// snapshot.
func (h *Host) Finish(ctx context.Context, p *Play, st session.State) Completion {
	out := rewards.Compute(p.Config, st.Score, st.Total)
	awards := h.rewards.AwardGame(ctx, p.SessionID, p.Game, out)
	summary := session.BuildSummary(st, h.now().Sub(p.Started))

	h.recordEnd(ctx, p, summary, out.Passed)
	h.saveSnapshot(ctx)

	wallet, err := h.rewards.Wallet(ctx)
	if err != nil {
		h.logger.Warn("load wallet", "error", err)
	}

	h.logger.Info("play finished",
		"game", p.Game.ID,
		"score", out.Score,
		"max", out.MaxScore,
		"coins", out.Coins,
		"passed", out.Passed,
	)
	return Completion{
		Outcome: out,
		Awards:  awards,
		Summary: summary,
		Wallet:  wallet,
		Next:    p.Next,
	}
}

// Abandon records a play that was left before the last question. No
// rewards are granted.
func (h *Host) Abandon(ctx context.Context, p *Play, st session.State) {
	summary := session.BuildSummary(st, h.now().Sub(p.Started))
	h.recordEnd(ctx, p, summary, false)
	h.logger.Info("play abandoned", "game", p.Game.ID, "answered", len(st.Answers))
}

func (h *Host) recordEnd(ctx context.Context, p *Play, summary session.Summary, passed bool) {
	if h.events == nil {
		return
	}
	err := h.events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:    p.SessionID,
		GameID:       p.Game.ID,
		Action:       "end",
		Questions:    summary.TotalQuestions,
		Correct:      summary.TotalCorrect,
		DurationSecs: int(summary.Duration.Seconds()),
		Passed:       passed,
	})
	if err != nil {
		h.logger.Warn("record session end", "game", p.Game.ID, "error", err)
	}
}

func (h *Host) saveSnapshot(ctx context.Context) {
	if h.snaps == nil {
		return
	}
	snap := &store.Snapshot{
		Timestamp: h.now(),
		Data: store.SnapshotData{
			Version: 1,
			Wallet:  h.rewards.SnapshotData(ctx),
		},
	}
	if err := h.snaps.Save(ctx, snap); err != nil {
		h.logger.Warn("save snapshot", "error", err)
		return
	}
	if err := h.snaps.Prune(ctx, snapshotKeep); err != nil {
		h.logger.Warn("prune snapshots", "error", err)
	}
}

// nextGame looks up the game after id. Lookup failures are logged and
// treated as "no next game".
func (h *Host) nextGame(id string) (next *quiz.Game) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Warn("next game lookup panicked", "game", id, "panic", r)
			next = nil
		}
	}()

	g, err := h.catalog.NextGame(id)
	if err != nil {
		if !errors.Is(err, catalog.ErrNoNextGame) {
			h.logger.Warn("next game lookup failed", "game", id, "error", err)
		}
		return nil
	}
	return &g
}

// Wallet returns the player's totals. When the ledger cannot be read the
// latest snapshot is used instead.
func (h *Host) Wallet(ctx context.Context) rewards.Wallet {
	w, err := h.rewards.Wallet(ctx)
	if err == nil {
		return w
	}
	h.logger.Warn("load wallet", "error", err)

	if snap := h.latestWallet(ctx); snap != nil {
		return rewards.Wallet{Coins: snap.Coins, XP: snap.XP, Badges: snap.Badges}
	}
	return rewards.Wallet{}
}

// BestScores returns the best score per game id.
func (h *Host) BestScores(ctx context.Context) map[string]int {
	if h.events != nil {
		best, err := h.events.BestScores(ctx)
		if err == nil {
			return best
		}
		h.logger.Warn("load best scores", "error", err)
	}
	if snap := h.latestWallet(ctx); snap != nil && snap.BestScores != nil {
		return snap.BestScores
	}
	return map[string]int{}
}

func (h *Host) latestWallet(ctx context.Context) *store.WalletSnapshotData {
	if h.snaps == nil {
		return nil
	}
	snap, err := h.snaps.Latest(ctx)
	if err != nil {
		h.logger.Warn("load snapshot", "error", err)
		return nil
	}
	if snap == nil {
		return nil
	}
	return snap.Data.Wallet
}

// Rewards returns the reward service.
func (h *Host) Rewards() *rewards.Service {
	return h.rewards
}

// Events returns the event ledger, or nil.
func (h *Host) Events() store.EventRepo {
	return h.events
}
