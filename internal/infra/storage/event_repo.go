package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// StoredEvent is the storage-layer shape of a game event.
type StoredEvent struct {
	ID        string
	Timestamp time.Time
	EventType string
	CellKey   string
	Payload   interface{}
}

// SQLiteEventRepository implements durable storage for the event log.
type SQLiteEventRepository struct {
	db *sql.DB
}

// NewSQLiteEventRepository creates an event repository.
func NewSQLiteEventRepository(db *sql.DB) *SQLiteEventRepository {
	return &SQLiteEventRepository{db: db}
}

// Append inserts a new event into the immutable ledger.
func (r *SQLiteEventRepository) Append(ctx context.Context, event StoredEvent) error {
	payloadBytes, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	query := `
		INSERT INTO events (id, timestamp, event_type, cell_key, payload)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query,
		event.ID, event.Timestamp, event.EventType, event.CellKey, string(payloadBytes),
	)
	if err != nil {
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepository) getMany(ctx context.Context, query string, args ...interface{}) ([]StoredEvent, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StoredEvent
	for rows.Next() {
		var e StoredEvent
		var payloadStr string
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.EventType, &e.CellKey, &payloadStr); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(payloadStr), &e.Payload); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// GetByType returns all stored events of one type, oldest first.
func (r *SQLiteEventRepository) GetByType(ctx context.Context, eventType string) ([]StoredEvent, error) {
	query := `SELECT id, timestamp, event_type, cell_key, payload FROM events WHERE event_type = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, eventType)
}

// GetByCell returns all stored events that touched a cell, oldest first.
func (r *SQLiteEventRepository) GetByCell(ctx context.Context, cellKey string) ([]StoredEvent, error) {
	query := `SELECT id, timestamp, event_type, cell_key, payload FROM events WHERE cell_key = ? ORDER BY timestamp ASC`
	return r.getMany(ctx, query, cellKey)
}
