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

const (
	MaxTitleLength   = 200
	MaxContentLength = 50000
)

// JournalService handles journal-entry business rules: input validation and
// the per-entry ownership policy.
type JournalService struct {
	repo   repository.JournalRepository
	logger *slog.Logger
}

func NewJournalService(repo repository.JournalRepository, logger *slog.Logger) *JournalService {
	return &JournalService{repo: repo, logger: logger}
}

// requireOwner is the one ownership rule in the system, applied uniformly to
// every per-entry read, update and delete: the entry was already loaded (so
// "absent" has become NotFound upstream), and a requester who is not the
// owner gets Forbidden before any mutation happens.
func requireOwner(entry *model.JournalEntry, requesterID int64) error {
	if entry.UserID != requesterID {
		return apperror.Forbidden("you do not have access to this journal entry")
	}
	return nil
}

// Create validates and stores a new entry owned by userID. The owner comes
// from the authenticated identity, never from the request body.
func (s *JournalService) Create(ctx context.Context, userID int64, title, content, mood string) (*model.JournalEntry, error) {
	title = strings.TrimSpace(title)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if strings.TrimSpace(content) == "" {
		return nil, apperror.ValidationFailed("content", "content is required")
	}
	if len(content) > MaxContentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d characters or less", MaxContentLength))
	}
	if !model.ValidMood(mood) {
		return nil, apperror.ValidationFailed("mood", "mood must be one of: "+strings.Join(model.Moods, ", "))
	}

	entry := &model.JournalEntry{
		UserID:  userID,
		Title:   title,
		Content: content,
		Mood:    mood,
	}
	if err := s.repo.CreateJournalEntry(ctx, entry); err != nil {
		s.logger.Error("failed to create journal entry",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating journal entry: %w", err)
	}

	s.logger.Info("journal entry created",
		slog.Int64("id", entry.ID),
		slog.Int64("userID", userID),
	)

	return entry, nil
}

// ListByUser returns the requester's entries, most recent first.
func (s *JournalService) ListByUser(ctx context.Context, userID int64) ([]model.JournalEntry, error) {
	entries, err := s.repo.GetJournalEntriesByUser(ctx, userID)
	if err != nil {
		s.logger.Error("failed to list journal entries",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing journal entries: %w", err)
	}
	return entries, nil
}

// Get returns a single entry after the ownership check.
func (s *JournalService) Get(ctx context.Context, id, requesterID int64) (*model.JournalEntry, error) {
	entry, err := s.repo.GetJournalEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(entry, requesterID); err != nil {
		return nil, err
	}
	return entry, nil
}

// Update merges the provided fields into an entry the requester owns.
// Fields left nil in the patch are untouched; provided fields are validated
// with the same rules as Create.
func (s *JournalService) Update(ctx context.Context, id, requesterID int64, patch repository.JournalPatch) (*model.JournalEntry, error) {
	entry, err := s.repo.GetJournalEntry(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(entry, requesterID); err != nil {
		return nil, err
	}

	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return nil, apperror.ValidationFailed("title", "title cannot be empty")
		}
		if len(trimmed) > MaxTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
		}
		patch.Title = &trimmed
	}
	if patch.Content != nil {
		if strings.TrimSpace(*patch.Content) == "" {
			return nil, apperror.ValidationFailed("content", "content cannot be empty")
		}
		if len(*patch.Content) > MaxContentLength {
			return nil, apperror.ValidationFailed("content",
				fmt.Sprintf("content must be %d characters or less", MaxContentLength))
		}
	}
	if patch.Mood != nil && !model.ValidMood(*patch.Mood) {
		return nil, apperror.ValidationFailed("mood", "mood must be one of: "+strings.Join(model.Moods, ", "))
	}

	updated, err := s.repo.UpdateJournalEntry(ctx, id, patch)
	if err != nil {
		s.logger.Error("failed to update journal entry",
			slog.Int64("id", id),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("updating journal entry: %w", err)
	}

	s.logger.Info("journal entry updated", slog.Int64("id", id))
	return updated, nil
}

// Delete removes an entry the requester owns.
func (s *JournalService) Delete(ctx context.Context, id, requesterID int64) error {
	entry, err := s.repo.GetJournalEntry(ctx, id)
	if err != nil {
		return err
	}
	if err := requireOwner(entry, requesterID); err != nil {
		return err
	}

	if err := s.repo.DeleteJournalEntry(ctx, id); err != nil {
		return err
	}

	s.logger.Info("journal entry deleted", slog.Int64("id", id))
	return nil
}
