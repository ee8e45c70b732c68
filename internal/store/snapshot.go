package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

// snapshotRepo implements SnapshotRepo.
type snapshotRepo struct {
	db *sql.DB
}

// Save stores snap. A zero Sequence is filled with the sequence of the
// last recorded event.
func (r *snapshotRepo) Save(ctx context.Context, snap *Snapshot) error {
	data, err := json.Marshal(snap.Data)
	if err != nil {
		return fmt.Errorf("marshal snapshot data: %w", err)
	}
	if snap.Sequence == 0 {
		err := r.db.QueryRowContext(ctx,
			`SELECT next_val - 1 FROM global_sequence WHERE id = 1`,
		).Scan(&snap.Sequence)
		if err != nil {
			return fmt.Errorf("read current sequence: %w", err)
		}
	}
	if snap.Timestamp.IsZero() {
		snap.Timestamp = nowUTC()
	}

	query, args := builder().Insert(snapshotsTable).
		Columns("sequence", "timestamp", "data").
		Values(snap.Sequence, snap.Timestamp.UTC(), string(data)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepo) Latest(ctx context.Context) (*Snapshot, error) {
	query, args := builder().
		Select("id", "sequence", "timestamp", "data").
		From(entsql.Table(snapshotsTable)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Query()

	var (
		snap Snapshot
		raw  []byte
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&snap.ID, &snap.Sequence, &snap.Timestamp, &raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query latest snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, &snap.Data); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot data: %w", err)
	}
	return &snap, nil
}

func (r *snapshotRepo) Prune(ctx context.Context, keep int) error {
	// Find the newest snapshot that falls outside the keep window.
	query, args := builder().
		Select("id").
		From(entsql.Table(snapshotsTable)).
		OrderBy(entsql.Desc("timestamp"), entsql.Desc("id")).
		Limit(1).
		Offset(keep).
		Query()

	var thresholdID int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&thresholdID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil // fewer than keep snapshots exist
		}
		return fmt.Errorf("query snapshots for prune: %w", err)
	}

	query, args = builder().Delete(snapshotsTable).
		Where(entsql.LTE("id", thresholdID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("prune snapshots: %w", err)
	}
	return nil
}
