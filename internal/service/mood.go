package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/model"
	"github.com/mindwellhq/mindwell/internal/repository"
)

const MaxNoteLength = 1000

// MoodService handles mood check-ins. The mood log is append-only: create
// and list are the only operations, deliberately.
type MoodService struct {
	repo   repository.MoodRepository
	logger *slog.Logger
}

func NewMoodService(repo repository.MoodRepository, logger *slog.Logger) *MoodService {
	return &MoodService{repo: repo, logger: logger}
}

// Create validates and records a check-in for userID. The mood label must be
// in the closed enumeration — anything else ("giddy") is a validation error
// and nothing is stored.
func (s *MoodService) Create(ctx context.Context, userID int64, mood, note string) (*model.MoodEntry, error) {
	if !model.ValidMood(mood) {
		return nil, apperror.ValidationFailed("mood", "mood must be one of: "+strings.Join(model.Moods, ", "))
	}
	note = strings.TrimSpace(note)
	if len(note) > MaxNoteLength {
		return nil, apperror.ValidationFailed("note",
			fmt.Sprintf("note must be %d characters or less", MaxNoteLength))
	}

	entry := &model.MoodEntry{
		UserID: userID,
		Mood:   mood,
		Note:   note,
	}
	if err := s.repo.CreateMoodEntry(ctx, entry); err != nil {
		s.logger.Error("failed to create mood entry",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating mood entry: %w", err)
	}

	s.logger.Info("mood entry created",
		slog.Int64("id", entry.ID),
		slog.Int64("userID", userID),
		slog.String("mood", mood),
	)

	return entry, nil
}

// ListByUser returns the requester's mood history, most recent first.
func (s *MoodService) ListByUser(ctx context.Context, userID int64) ([]model.MoodEntry, error) {
	entries, err := s.repo.GetMoodEntriesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list mood entries",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing mood entries: %w", err)
	}
	return entries, nil
}
