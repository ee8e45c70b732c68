package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func nowUTC() time.Time {
	return time.Now().UTC()
}

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	err := r.insert(ctx, sessionEventsTable,
		[]string{"session_id", "game_id", "action", "questions", "correct", "duration_secs", "passed"},
		[]any{data.SessionID, data.GameID, data.Action, data.Questions, data.Correct, data.DurationSecs, data.Passed},
	)
	if err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	err := r.insert(ctx, answerEventsTable,
		[]string{"session_id", "game_id", "question_id", "selected", "correct", "timed_out", "time_ms"},
		[]any{data.SessionID, data.GameID, data.QuestionID, data.Selected, data.Correct, data.TimedOut, data.TimeMs},
	)
	if err != nil {
		return fmt.Errorf("save answer event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessionSummaries(ctx context.Context, opts QueryOpts) ([]SessionSummaryRecord, error) {
	sel := builder().
		Select("session_id", "game_id", "timestamp", "questions", "correct", "duration_secs", "passed").
		From(entsql.Table(sessionEventsTable)).
		Where(entsql.EQ("action", "end")).
		OrderBy(entsql.Desc("sequence"))
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query session summaries: %w", err)
	}
	defer rows.Close()

	var records []SessionSummaryRecord
	for rows.Next() {
		var rec SessionSummaryRecord
		if err := rows.Scan(&rec.SessionID, &rec.GameID, &rec.Timestamp,
			&rec.Questions, &rec.Correct, &rec.DurationSecs, &rec.Passed); err != nil {
			return nil, fmt.Errorf("scan session summary: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session summaries: %w", err)
	}

	// Coins earned per session.
	for i := range records {
		coins, err := r.sessionCoins(ctx, records[i].SessionID)
		if err != nil {
			return nil, err
		}
		records[i].Coins = coins
	}
	return records, nil
}

func (r *eventRepo) BestScores(ctx context.Context) (map[string]int, error) {
	query, args := builder().
		Select("game_id", "MAX(correct)").
		From(entsql.Table(sessionEventsTable)).
		Where(entsql.EQ("action", "end")).
		GroupBy("game_id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query best scores: %w", err)
	}
	defer rows.Close()

	best := make(map[string]int)
	for rows.Next() {
		var gameID string
		var score int
		if err := rows.Scan(&gameID, &score); err != nil {
			return nil, fmt.Errorf("scan best score: %w", err)
		}
		best[gameID] = score
	}
	return best, rows.Err()
}

func (r *eventRepo) GameAccuracy(ctx context.Context, gameID string) (float64, error) {
	query, args := builder().
		Select("COUNT(*)", "COALESCE(SUM(correct), 0)").
		From(entsql.Table(answerEventsTable)).
		Where(entsql.EQ("game_id", gameID)).
		Query()

	var total, correct int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total, &correct); err != nil {
		return 0, fmt.Errorf("query game accuracy: %w", err)
	}
	if total == 0 {
		return 0, nil
	}
	return float64(correct) / float64(total), nil
}
