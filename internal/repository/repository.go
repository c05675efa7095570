// Package repository declares the storage interfaces the service layer
// programs against. The sqlite subpackage is the production implementation;
// tests substitute in-memory mocks.
package repository

import (
	"context"

	"github.com/mindwellhq/mindwell/internal/model"
)

// JournalPatch carries a partial journal-entry update. A nil field means
// "leave unchanged" — the repository must apply the provided fields as one
// atomic write so two concurrent patches with disjoint fields both land.
type JournalPatch struct {
	Title   *string
	Content *string
	Mood    *string
}

type UserRepository interface {
	// CreateUser assigns the id and stores the user with IsPremium false.
	// Returns apperror.ErrConflict if the username is already taken
	// (case-insensitive).
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	// GetUserByUsername matches case-insensitively.
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	UpdateUserPremiumStatus(ctx context.Context, id int64, premium bool) (*model.User, error)
	// UpdateUserStripeInfo records the billing references. It does NOT touch
	// the premium flag — premium is granted separately, on confirmed payment.
	UpdateUserStripeInfo(ctx context.Context, id int64, customerID, subscriptionID string) (*model.User, error)
}

type JournalRepository interface {
	// CreateJournalEntry assigns the id and creation timestamp and stores
	// the entry.
	CreateJournalEntry(ctx context.Context, entry *model.JournalEntry) error
	GetJournalEntry(ctx context.Context, id int64) (*model.JournalEntry, error)
	// GetJournalEntriesByUser returns the user's entries, most recent first.
	GetJournalEntriesByUser(ctx context.Context, userID int64) ([]model.JournalEntry, error)
	// UpdateJournalEntry merges only the provided fields and returns the
	// merged record. Ownership is the caller's responsibility, not the
	// repository's.
	UpdateJournalEntry(ctx context.Context, id int64, patch JournalPatch) (*model.JournalEntry, error)
	DeleteJournalEntry(ctx context.Context, id int64) error
}

type MoodRepository interface {
	CreateMoodEntry(ctx context.Context, entry *model.MoodEntry) error
	// GetMoodEntriesByUser returns the user's check-ins, most recent first.
	GetMoodEntriesByUser(ctx context.Context, userID int64) ([]model.MoodEntry, error)
}

// CatalogRepository reads the seeded mindfulness-session and
// reflection-prompt catalogs. Both come back unfiltered — premium gating is
// a presentation concern, not a storage concern.
type CatalogRepository interface {
	MindfulnessSessions(ctx context.Context) ([]model.MindfulnessSession, error)
	MindfulnessSession(ctx context.Context, id int64) (*model.MindfulnessSession, error)
	ReflectionPrompts(ctx context.Context) ([]model.ReflectionPrompt, error)
	ReflectionPrompt(ctx context.Context, id int64) (*model.ReflectionPrompt, error)
}
