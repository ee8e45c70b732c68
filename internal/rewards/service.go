package rewards

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/abhisek/quizbox/internal/quiz"
	"github.com/abhisek/quizbox/internal/store"
)

// Service turns game outcomes into persisted awards.
type Service struct {
	eventRepo store.EventRepo
	logger    *log.Logger
	now       func() time.Time

	// SessionAwards accumulates awards granted during the current game.
	SessionAwards []Award
}

// NewService creates a Service. eventRepo may be nil, in which case awards
// are only kept in memory.
func NewService(eventRepo store.EventRepo, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.Default()
	}
	return &Service{
		eventRepo: eventRepo,
		logger:    logger,
		now:       time.Now,
	}
}

// AwardGame grants the awards earned by out: a completion award carrying
// the coins and XP, a badge when the game was passed and a bonus for a
// perfect score.
func (s *Service) AwardGame(ctx context.Context, sessionID string, g quiz.Game, out Outcome) []Award {
	now := s.now()
	awards := []Award{{
		Type:      AwardCompletion,
		Rarity:    out.Rarity,
		GameID:    g.ID,
		GameTitle: g.Title,
		SessionID: sessionID,
		Reason:    fmt.Sprintf("Finished %s (%d/%d)", g.Title, out.Score, out.MaxScore),
		Coins:     out.Coins,
		XP:        out.XP,
		AwardedAt: now,
	}}

	if out.Passed && out.Badge != "" {
		awards = append(awards, Award{
			Type:      AwardBadge,
			Rarity:    out.Rarity,
			GameID:    g.ID,
			GameTitle: g.Title,
			SessionID: sessionID,
			Badge:     out.Badge,
			Reason:    fmt.Sprintf("Earned the %s badge", out.Badge),
			AwardedAt: now,
		})
	}

	if out.Perfect {
		awards = append(awards, Award{
			Type:      AwardPerfect,
			Rarity:    RarityLegendary,
			GameID:    g.ID,
			GameTitle: g.Title,
			SessionID: sessionID,
			Reason:    "Perfect score!",
			AwardedAt: now,
		})
	}

	for i := range awards {
		s.persist(ctx, &awards[i])
	}
	s.SessionAwards = append(s.SessionAwards, awards...)
	return awards
}

// ResetSession clears the award accumulator. Called at game start.
func (s *Service) ResetSession() {
	s.SessionAwards = nil
}

// Wallet returns everything earned so far.
func (s *Service) Wallet(ctx context.Context) (Wallet, error) {
	if s.eventRepo == nil {
		var w Wallet
		for _, a := range s.SessionAwards {
			w.Coins += a.Coins
			w.XP += a.XP
			if a.Type == AwardBadge {
				w.Badges++
			}
		}
		return w, nil
	}

	totals, err := s.eventRepo.RewardTotals(ctx)
	if err != nil {
		return Wallet{}, fmt.Errorf("reward totals: %w", err)
	}
	return Wallet{Coins: totals.Coins, XP: totals.XP, Badges: totals.Badges}, nil
}

// SnapshotData builds the wallet section for snapshot persistence.
func (s *Service) SnapshotData(ctx context.Context) *store.WalletSnapshotData {
	if s.eventRepo == nil {
		return nil
	}
	data := &store.WalletSnapshotData{}

	if totals, err := s.eventRepo.RewardTotals(ctx); err == nil {
		data.Coins = totals.Coins
		data.XP = totals.XP
		data.Badges = totals.Badges
	} else {
		s.logger.Warn("load reward totals", "error", err)
	}

	if best, err := s.eventRepo.BestScores(ctx); err == nil {
		data.BestScores = best
	} else {
		s.logger.Warn("load best scores", "error", err)
	}

	if events, err := s.eventRepo.QueryRewardEvents(ctx, store.QueryOpts{}); err == nil {
		seen := make(map[string]bool)
		for _, e := range events {
			if e.AwardType == string(AwardBadge) && e.Badge != "" && !seen[e.Badge] {
				seen[e.Badge] = true
				data.EarnedBadges = append(data.EarnedBadges, e.Badge)
			}
		}
		sort.Strings(data.EarnedBadges)
	} else {
		s.logger.Warn("load reward events", "error", err)
	}

	return data
}

func (s *Service) persist(ctx context.Context, award *Award) {
	if s.eventRepo == nil {
		return
	}
	err := s.eventRepo.AppendRewardEvent(ctx, store.RewardEventData{
		SessionID: award.SessionID,
		GameID:    award.GameID,
		AwardType: string(award.Type),
		Rarity:    string(award.Rarity),
		Badge:     award.Badge,
		Reason:    award.Reason,
		Coins:     award.Coins,
		XP:        award.XP,
	})
	if err != nil {
		s.logger.Warn("persist award", "type", award.Type, "game", award.GameID, "error", err)
	}
}
