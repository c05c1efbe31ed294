// Package storage persists world snapshots and game events to SQLite.
// The snapshot table is the opaque blob store the game core serializes
// into; the core never sees SQL.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SQLiteSnapshotRepository stores serialized world snapshots by slot.
type SQLiteSnapshotRepository struct {
	db *sql.DB
}

// NewSQLiteSnapshotRepository creates a snapshot repository.
func NewSQLiteSnapshotRepository(db *sql.DB) *SQLiteSnapshotRepository {
	return &SQLiteSnapshotRepository{db: db}
}

// Upsert writes the snapshot blob for a slot, replacing any previous one.
func (r *SQLiteSnapshotRepository) Upsert(ctx context.Context, slot string, snapshot string) error {
	query := `
		INSERT INTO world_snapshots (slot, snapshot, saved_at)
		VALUES (?, ?, ?)
		ON CONFLICT(slot) DO UPDATE SET
			snapshot=excluded.snapshot,
			saved_at=excluded.saved_at
	`
	if _, err := r.db.ExecContext(ctx, query, slot, snapshot, time.Now()); err != nil {
		return fmt.Errorf("failed to upsert snapshot for slot %s: %w", slot, err)
	}
	return nil
}

// Load returns the snapshot blob for a slot. A slot with no saved
// state returns ("", false, nil).
func (r *SQLiteSnapshotRepository) Load(ctx context.Context, slot string) (string, bool, error) {
	var snapshot string
	query := `SELECT snapshot FROM world_snapshots WHERE slot = ?`
	err := r.db.QueryRowContext(ctx, query, slot).Scan(&snapshot)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to load snapshot for slot %s: %w", slot, err)
	}
	return snapshot, true, nil
}

// Delete removes the saved snapshot for a slot (used by world reset).
func (r *SQLiteSnapshotRepository) Delete(ctx context.Context, slot string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM world_snapshots WHERE slot = ?`, slot); err != nil {
		return fmt.Errorf("failed to delete snapshot for slot %s: %w", slot, err)
	}
	return nil
}
