// Package loadlog records the outcome of every component load so broken demo
// paths can be spotted.
package loadlog

import (
	"context"
	"fmt"
	"time"

	"github.com/ziadkadry99/ui-showcase/internal/db"
)

// Store persists load events.
type Store struct {
	db *db.DB
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database}
}

// Record inserts an event.
func (s *Store) Record(ctx context.Context, e Event) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO load_events (session_id, component_id, path, outcome)
		VALUES (?, ?, ?, ?)`,
		e.SessionID, e.ComponentID, e.Path, string(e.Outcome))
	if err != nil {
		return fmt.Errorf("inserting load event: %w", err)
	}
	return nil
}

// Failures returns the most recent failed loads, newest first.
func (s *Store) Failures(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, component_id, path, outcome, created_at
		FROM load_events
		WHERE outcome != 'ok'
		ORDER BY id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying load events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var outcome, ts string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.ComponentID, &e.Path, &outcome, &ts); err != nil {
			return nil, fmt.Errorf("scanning load event: %w", err)
		}
		e.Outcome = Outcome(outcome)
		e.CreatedAt = parseTime(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}

// Summarize counts events by outcome.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	sum := Summary{ByOutcome: make(map[Outcome]int)}
	rows, err := s.db.QueryContext(ctx, `SELECT outcome, COUNT(*) FROM load_events GROUP BY outcome`)
	if err != nil {
		return sum, fmt.Errorf("summarizing load events: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var outcome string
		var n int
		if err := rows.Scan(&outcome, &n); err != nil {
			return sum, fmt.Errorf("scanning summary: %w", err)
		}
		sum.ByOutcome[Outcome(outcome)] = n
		sum.Total += n
	}
	return sum, rows.Err()
}

func parseTime(ts string) time.Time {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, ts); err == nil {
			return t
		}
	}
	return time.Time{}
}
