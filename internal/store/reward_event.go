package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendRewardEvent(ctx context.Context, data RewardEventData) error {
	err := r.insert(ctx, rewardEventsTable,
		[]string{"session_id", "game_id", "award_type", "rarity", "badge", "reason", "coins", "xp"},
		[]any{data.SessionID, data.GameID, data.AwardType, data.Rarity, data.Badge, data.Reason, data.Coins, data.XP},
	)
	if err != nil {
		return fmt.Errorf("save reward event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRewardEvents(ctx context.Context, opts QueryOpts) ([]RewardEventRecord, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "session_id", "game_id",
			"award_type", "rarity", "badge", "reason", "coins", "xp").
		From(entsql.Table(rewardEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reward events: %w", err)
	}
	defer rows.Close()

	var records []RewardEventRecord
	for rows.Next() {
		var e RewardEventRecord
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.GameID,
			&e.AwardType, &e.Rarity, &e.Badge, &e.Reason, &e.Coins, &e.XP); err != nil {
			return nil, fmt.Errorf("scan reward event: %w", err)
		}
		records = append(records, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reward events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) RewardTotals(ctx context.Context) (RewardTotals, error) {
	query, args := builder().
		Select(
			"COALESCE(SUM(coins), 0)",
			"COALESCE(SUM(xp), 0)",
			"COALESCE(SUM(CASE WHEN award_type = 'badge' THEN 1 ELSE 0 END), 0)",
		).
		From(entsql.Table(rewardEventsTable)).
		Query()

	var t RewardTotals
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&t.Coins, &t.XP, &t.Badges); err != nil {
		return RewardTotals{}, fmt.Errorf("query reward totals: %w", err)
	}
	return t, nil
}

func (r *eventRepo) sessionCoins(ctx context.Context, sessionID string) (int, error) {
	query, args := builder().
		Select("COALESCE(SUM(coins), 0)").
		From(entsql.Table(rewardEventsTable)).
		Where(entsql.EQ("session_id", sessionID)).
		Query()

	var coins int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&coins); err != nil {
		return 0, fmt.Errorf("query session coins: %w", err)
	}
	return coins, nil
}
