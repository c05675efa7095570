package service

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/model"
	"github.com/mindwellhq/mindwell/internal/repository"
)

// Hand-written in-memory mocks for the repository interfaces. The services
// don't know or care whether they get these or the sqlite implementation —
// that's the point of programming against the interfaces.

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// ---------------------------------------------------------------------------
// users

type mockUserRepo struct {
	users  map[int64]*model.User
	nextID int64
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[int64]*model.User)}
}

func (m *mockUserRepo) CreateUser(_ context.Context, user *model.User) error {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, user.Username) {
			return apperror.Conflict("username " + user.Username + " is already taken")
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.IsPremium = false
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	result := *u
	return &result, nil
}

func (m *mockUserRepo) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Username, username) {
			result := *u
			return &result, nil
		}
	}
	return nil, apperror.NotFoundName("user", username)
}

func (m *mockUserRepo) UpdateUserPremiumStatus(_ context.Context, id int64, premium bool) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	u.IsPremium = premium
	result := *u
	return &result, nil
}

func (m *mockUserRepo) UpdateUserStripeInfo(_ context.Context, id int64, customerID, subscriptionID string) (*model.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperror.NotFound("user", id)
	}
	u.StripeCustomerID = customerID
	u.StripeSubscriptionID = subscriptionID
	result := *u
	return &result, nil
}

// addUser seeds the mock directly, bypassing CreateUser's rules.
func (m *mockUserRepo) addUser(t *testing.T, user *model.User) *model.User {
	t.Helper()
	m.nextID++
	user.ID = m.nextID
	stored := *user
	m.users[user.ID] = &stored
	return user
}

// ---------------------------------------------------------------------------
// journal entries

type mockJournalRepo struct {
	entries map[int64]*model.JournalEntry
	nextID  int64
}

func newMockJournalRepo() *mockJournalRepo {
	return &mockJournalRepo{entries: make(map[int64]*model.JournalEntry)}
}

func (m *mockJournalRepo) CreateJournalEntry(_ context.Context, entry *model.JournalEntry) error {
	m.nextID++
	entry.ID = m.nextID
	entry.CreatedAt = time.Now().UTC()
	stored := *entry
	m.entries[entry.ID] = &stored
	return nil
}

func (m *mockJournalRepo) GetJournalEntry(_ context.Context, id int64) (*model.JournalEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, apperror.NotFound("journal entry", id)
	}
	result := *e
	return &result, nil
}

func (m *mockJournalRepo) GetJournalEntriesByUser(_ context.Context, userID int64) ([]model.JournalEntry, error) {
	result := []model.JournalEntry{}
	for _, e := range m.entries {
		if e.UserID == userID {
			result = append(result, *e)
		}
	}
	return result, nil
}

func (m *mockJournalRepo) UpdateJournalEntry(_ context.Context, id int64, patch repository.JournalPatch) (*model.JournalEntry, error) {
	e, ok := m.entries[id]
	if !ok {
		return nil, apperror.NotFound("journal entry", id)
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	if patch.Content != nil {
		e.Content = *patch.Content
	}
	if patch.Mood != nil {
		e.Mood = *patch.Mood
	}
	result := *e
	return &result, nil
}

func (m *mockJournalRepo) DeleteJournalEntry(_ context.Context, id int64) error {
	if _, ok := m.entries[id]; !ok {
		return apperror.NotFound("journal entry", id)
	}
	delete(m.entries, id)
	return nil
}

// ---------------------------------------------------------------------------
// mood entries

type mockMoodRepo struct {
	entries []model.MoodEntry
	nextID  int64
}

func newMockMoodRepo() *mockMoodRepo {
	return &mockMoodRepo{}
}

func (m *mockMoodRepo) CreateMoodEntry(_ context.Context, entry *model.MoodEntry) error {
	m.nextID++
	entry.ID = m.nextID
	entry.CreatedAt = time.Now().UTC()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockMoodRepo) GetMoodEntriesByUser(_ context.Context, userID int64) ([]model.MoodEntry, error) {
	result := []model.MoodEntry{}
	// newest first, matching the sqlite implementation
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].UserID == userID {
			result = append(result, m.entries[i])
		}
	}
	return result, nil
}

// ---------------------------------------------------------------------------
// catalog

type mockCatalogRepo struct {
	sessions []model.MindfulnessSession
	prompts  []model.ReflectionPrompt
}

// newMockCatalogRepo returns a small fixed catalog with one premium item of
// each kind.
func newMockCatalogRepo() *mockCatalogRepo {
	return &mockCatalogRepo{
		sessions: []model.MindfulnessSession{
			{ID: 1, Title: "Morning Meditation", Duration: 10, AudioURL: "https://example.com/a.mp3"},
			{ID: 2, Title: "Deep Sleep Guide", Duration: 30, AudioURL: "https://example.com/b.mp3", IsPremium: true},
		},
		prompts: []model.ReflectionPrompt{
			{ID: 1, Prompt: "What made you smile today?"},
			{ID: 2, Prompt: "Explore a limiting belief.", IsPremium: true},
		},
	}
}

func (m *mockCatalogRepo) MindfulnessSessions(_ context.Context) ([]model.MindfulnessSession, error) {
	return append([]model.MindfulnessSession{}, m.sessions...), nil
}

func (m *mockCatalogRepo) MindfulnessSession(_ context.Context, id int64) (*model.MindfulnessSession, error) {
	for _, s := range m.sessions {
		if s.ID == id {
			result := s
			return &result, nil
		}
	}
	return nil, apperror.NotFound("mindfulness session", id)
}

func (m *mockCatalogRepo) ReflectionPrompts(_ context.Context) ([]model.ReflectionPrompt, error) {
	return append([]model.ReflectionPrompt{}, m.prompts...), nil
}

func (m *mockCatalogRepo) ReflectionPrompt(_ context.Context, id int64) (*model.ReflectionPrompt, error) {
	for _, p := range m.prompts {
		if p.ID == id {
			result := p
			return &result, nil
		}
	}
	return nil, apperror.NotFound("reflection prompt", id)
}
