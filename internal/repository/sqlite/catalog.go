package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/model"
	"github.com/mindwellhq/mindwell/internal/repository"
)

// compile-time check that *DB implements repository.CatalogRepository
var _ repository.CatalogRepository = (*DB)(nil)

// MindfulnessSessions returns the full seeded session catalog, unfiltered.
// Premium gating happens in the service layer, against the requester.
func (db *DB) MindfulnessSessions(ctx context.Context) ([]model.MindfulnessSession, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, description, duration, audio_url, is_premium
		 FROM mindfulness_sessions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing mindfulness sessions: %w", err)
	}
	defer rows.Close()

	sessions := []model.MindfulnessSession{}
	for rows.Next() {
		var s model.MindfulnessSession
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Duration, &s.AudioURL, &s.IsPremium); err != nil {
			return nil, fmt.Errorf("sqlite: scanning mindfulness session row: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating mindfulness sessions: %w", err)
	}

	return sessions, nil
}

// MindfulnessSession returns a single catalog session by id.
func (db *DB) MindfulnessSession(ctx context.Context, id int64) (*model.MindfulnessSession, error) {
	var s model.MindfulnessSession
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, description, duration, audio_url, is_premium
		 FROM mindfulness_sessions WHERE id = ?`, id,
	).Scan(&s.ID, &s.Title, &s.Description, &s.Duration, &s.AudioURL, &s.IsPremium)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("mindfulness session", id)
		}
		return nil, fmt.Errorf("sqlite: getting mindfulness session %d: %w", id, err)
	}
	return &s, nil
}

// ReflectionPrompts returns the full seeded prompt catalog, unfiltered.
func (db *DB) ReflectionPrompts(ctx context.Context) ([]model.ReflectionPrompt, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, prompt, is_premium FROM reflection_prompts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing reflection prompts: %w", err)
	}
	defer rows.Close()

	prompts := []model.ReflectionPrompt{}
	for rows.Next() {
		var p model.ReflectionPrompt
		if err := rows.Scan(&p.ID, &p.Prompt, &p.IsPremium); err != nil {
			return nil, fmt.Errorf("sqlite: scanning reflection prompt row: %w", err)
		}
		prompts = append(prompts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating reflection prompts: %w", err)
	}

	return prompts, nil
}

// ReflectionPrompt returns a single catalog prompt by id.
func (db *DB) ReflectionPrompt(ctx context.Context, id int64) (*model.ReflectionPrompt, error) {
	var p model.ReflectionPrompt
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, prompt, is_premium FROM reflection_prompts WHERE id = ?`, id,
	).Scan(&p.ID, &p.Prompt, &p.IsPremium)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("reflection prompt", id)
		}
		return nil, fmt.Errorf("sqlite: getting reflection prompt %d: %w", id, err)
	}
	return &p, nil
}
