package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/mindwellhq/mindwell/internal/model"
	"github.com/mindwellhq/mindwell/internal/repository"
)

// compile-time check that *DB implements repository.MoodRepository
var _ repository.MoodRepository = (*DB)(nil)

// CreateMoodEntry inserts a mood check-in, assigning id and timestamp.
// Mood entries are append-only: there is deliberately no update or delete.
func (db *DB) CreateMoodEntry(ctx context.Context, entry *model.MoodEntry) error {
	entry.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO mood_entries (user_id, mood, note, created_at)
		 VALUES (?, ?, ?, ?)`,
		entry.UserID, entry.Mood, entry.Note, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating mood entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new mood entry id: %w", err)
	}
	entry.ID = id

	return nil
}

// GetMoodEntriesByUser returns a user's mood history, most recent first.
func (db *DB) GetMoodEntriesByUser(ctx context.Context, userID int64) ([]model.MoodEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, mood, note, created_at
		 FROM mood_entries
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing mood entries for user %d: %w", userID, err)
	}
	defer rows.Close()

	entries := []model.MoodEntry{}
	for rows.Next() {
		var e model.MoodEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Mood, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning mood entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating mood entries: %w", err)
	}

	return entries, nil
}
