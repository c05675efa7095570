package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/model"
	"github.com/mindwellhq/mindwell/internal/repository"
)

// compile-time check that *DB implements repository.JournalRepository
var _ repository.JournalRepository = (*DB)(nil)

// CreateJournalEntry inserts a journal entry. The id comes from the AUTOINCREMENT
// counter and the creation timestamp is assigned here, exactly once —
// whatever the caller put in CreatedAt is overwritten.
func (db *DB) CreateJournalEntry(ctx context.Context, entry *model.JournalEntry) error {
	entry.CreatedAt = time.Now().UTC()

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO journal_entries (user_id, title, content, mood, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		entry.UserID, entry.Title, entry.Content, entry.Mood, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating journal entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new journal entry id: %w", err)
	}
	entry.ID = id

	return nil
}

// GetJournalEntry retrieves a single journal entry. Returns apperror.ErrNotFound if
// no entry has this id. Ownership is not checked here — the service layer
// compares UserID against the requester.
func (db *DB) GetJournalEntry(ctx context.Context, id int64) (*model.JournalEntry, error) {
	var e model.JournalEntry
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, title, content, mood, created_at
		 FROM journal_entries WHERE id = ?`, id,
	).Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &e.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("journal entry", id)
		}
		return nil, fmt.Errorf("sqlite: getting journal entry %d: %w", id, err)
	}
	return &e, nil
}

// GetJournalEntriesByUser returns all of a user's journal entries, most recent first.
// The id tiebreak keeps the order stable when two entries share a timestamp.
func (db *DB) GetJournalEntriesByUser(ctx context.Context, userID int64) ([]model.JournalEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, title, content, mood, created_at
		 FROM journal_entries
		 WHERE user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing journal entries for user %d: %w", userID, err)
	}
	defer rows.Close()

	entries := []model.JournalEntry{}
	for rows.Next() {
		var e model.JournalEntry
		if err := rows.Scan(&e.ID, &e.UserID, &e.Title, &e.Content, &e.Mood, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning journal entry row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating journal entries: %w", err)
	}

	return entries, nil
}

// UpdateJournalEntry merges only the fields present in the patch and returns the merged
// record.
//
// The merge happens inside a single UPDATE via COALESCE: a nil patch field
// binds as NULL, and COALESCE(NULL, column) keeps the stored value. Because
// SQLite serializes writers, two concurrent patches touching disjoint fields
// both land — neither read a stale row, because neither reads at all.
func (db *DB) UpdateJournalEntry(ctx context.Context, id int64, patch repository.JournalPatch) (*model.JournalEntry, error) {
	res, err := db.conn.ExecContext(ctx,
		`UPDATE journal_entries
		 SET title   = COALESCE(?, title),
		     content = COALESCE(?, content),
		     mood    = COALESCE(?, mood)
		 WHERE id = ?`,
		patch.Title, patch.Content, patch.Mood, id,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: updating journal entry %d: %w", id, err)
	}
	if err := requireRowAffected(res, "journal entry", id); err != nil {
		return nil, err
	}
	return db.GetJournalEntry(ctx, id)
}

// DeleteJournalEntry removes a journal entry. Nothing references journal entries, so
// there are no cascading effects.
func (db *DB) DeleteJournalEntry(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting journal entry %d: %w", id, err)
	}
	return requireRowAffected(res, "journal entry", id)
}
