package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/model"
	"github.com/mindwellhq/mindwell/internal/repository"
)

// CatalogService reads the seeded mindfulness and reflection catalogs and
// applies premium gating against the requesting user.
//
// Gating is always computed fresh from users.IsPremium — the catalog rows
// carry only their own premium flag, and nothing caches the comparison.
type CatalogService struct {
	catalog repository.CatalogRepository
	users   repository.UserRepository
	logger  *slog.Logger
}

func NewCatalogService(catalog repository.CatalogRepository, users repository.UserRepository, logger *slog.Logger) *CatalogService {
	return &CatalogService{catalog: catalog, users: users, logger: logger}
}

// Sessions returns the full session catalog, ungated. The premium flag on
// each item lets clients render locked items with an upgrade nudge.
func (s *CatalogService) Sessions(ctx context.Context) ([]model.MindfulnessSession, error) {
	sessions, err := s.catalog.MindfulnessSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing mindfulness sessions: %w", err)
	}
	return sessions, nil
}

// AvailableSessions returns only the sessions the requester may use.
// userID 0 means anonymous, which gates like a non-premium user.
func (s *CatalogService) AvailableSessions(ctx context.Context, userID int64) ([]model.MindfulnessSession, error) {
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return nil, err
	}
	premium, err := s.isPremium(ctx, userID)
	if err != nil {
		return nil, err
	}

	available := []model.MindfulnessSession{}
	for _, session := range sessions {
		if model.Available(session.IsPremium, premium) {
			available = append(available, session)
		}
	}
	return available, nil
}

// Session returns one session, enforcing the premium gate: a premium
// session requested by a non-premium (or anonymous) user is Forbidden.
func (s *CatalogService) Session(ctx context.Context, id, userID int64) (*model.MindfulnessSession, error) {
	session, err := s.catalog.MindfulnessSession(ctx, id)
	if err != nil {
		return nil, err
	}
	premium, err := s.isPremium(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !model.Available(session.IsPremium, premium) {
		return nil, apperror.Forbidden("this session requires a premium subscription")
	}
	return session, nil
}

// Prompts returns the full prompt catalog, ungated.
func (s *CatalogService) Prompts(ctx context.Context) ([]model.ReflectionPrompt, error) {
	prompts, err := s.catalog.ReflectionPrompts(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing reflection prompts: %w", err)
	}
	return prompts, nil
}

// AvailablePrompts returns only the prompts the requester may use.
func (s *CatalogService) AvailablePrompts(ctx context.Context, userID int64) ([]model.ReflectionPrompt, error) {
	prompts, err := s.Prompts(ctx)
	if err != nil {
		return nil, err
	}
	premium, err := s.isPremium(ctx, userID)
	if err != nil {
		return nil, err
	}

	available := []model.ReflectionPrompt{}
	for _, prompt := range prompts {
		if model.Available(prompt.IsPremium, premium) {
			available = append(available, prompt)
		}
	}
	return available, nil
}

// Prompt returns one prompt, enforcing the premium gate.
func (s *CatalogService) Prompt(ctx context.Context, id, userID int64) (*model.ReflectionPrompt, error) {
	prompt, err := s.catalog.ReflectionPrompt(ctx, id)
	if err != nil {
		return nil, err
	}
	premium, err := s.isPremium(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !model.Available(prompt.IsPremium, premium) {
		return nil, apperror.Forbidden("this prompt requires a premium subscription")
	}
	return prompt, nil
}

// isPremium resolves the requester's premium status. Anonymous requests
// (userID 0) and identities that no longer resolve are non-premium rather
// than errors — a stale session cookie shouldn't break the public catalog.
func (s *CatalogService) isPremium(ctx context.Context, userID int64) (bool, error) {
	if userID <= 0 {
		return false, nil
	}
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("resolving premium status for user %d: %w", userID, err)
	}
	return user.IsPremium, nil
}
