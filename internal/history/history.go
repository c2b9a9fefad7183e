// Package history records answered chat questions.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ziadkadry99/robobook/internal/db"
)

// DefaultLimit is how many entries Recent returns when no limit is given.
const DefaultLimit = 20

// MaxLimit caps Recent.
const MaxLimit = 500

// Fixed-width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Entry is one answered question.
type Entry struct {
	ID         string    `json:"id"`
	Query      string    `json:"query"`
	Answer     string    `json:"answer"`
	Source     string    `json:"source"`
	RemoteAddr string    `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store reads and writes chat history.
type Store struct {
	db  *db.DB
	now func() time.Time
}

// NewStore creates a Store backed by the given database.
func NewStore(database *db.DB) *Store {
	return &Store{db: database, now: time.Now}
}

// Record inserts e. Empty ID and zero CreatedAt are filled in.
func (s *Store) Record(ctx context.Context, e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = s.now()
	}
	e.CreatedAt = e.CreatedAt.UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_history (id, query, answer, source, remote_addr, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Query, e.Answer, e.Source, e.RemoteAddr, e.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("inserting history entry: %w", err)
	}
	return e, nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, answer, source, remote_addr, created_at
		FROM chat_history
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Query, &e.Answer, &e.Source, &e.RemoteAddr, &created); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}
		e.CreatedAt = parseTime(created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Count returns the number of recorded entries.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM chat_history").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting history: %w", err)
	}
	return n, nil
}

// Prune deletes entries older than before and returns how many were removed.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM chat_history WHERE created_at < ?", before.UTC().Format(timeLayout))
	if err != nil {
		return 0, fmt.Errorf("pruning history: %w", err)
	}
	return res.RowsAffected()
}

func parseTime(s string) time.Time {
	for _, layout := range []string{timeLayout, time.RFC3339Nano, time.DateTime} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Time{}
}
