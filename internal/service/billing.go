package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/billing"
	"github.com/mindwellhq/mindwell/internal/model"
	"github.com/mindwellhq/mindwell/internal/repository"
)

// PremiumPriceCents is the one-off price of the premium upgrade: $4.99.
const PremiumPriceCents = 499

// BillingService is the bridge between upgrade requests and the external
// payment processor.
//
// The flow is deliberately split in two:
//
//  1. CreateSubscription opens a payment intent and records the processor
//     references on the user. The premium flag is NOT touched here — no
//     local state may commit an outcome the external call hasn't produced.
//  2. HandleEvent grants premium when the processor's signed webhook
//     confirms the payment succeeded.
//
// So a user's premium flag only ever reflects a confirmed payment.
type BillingService struct {
	users    repository.UserRepository
	provider billing.Provider // nil when no processor is configured
	logger   *slog.Logger
}

func NewBillingService(users repository.UserRepository, provider billing.Provider, logger *slog.Logger) *BillingService {
	return &BillingService{users: users, provider: provider, logger: logger}
}

// CreateSubscription opens a payment for the premium upgrade and returns the
// client secret the browser completes payment with.
func (s *BillingService) CreateSubscription(ctx context.Context, userID int64) (string, error) {
	if s.provider == nil {
		return "", apperror.External("Stripe is not configured")
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return "", err
	}

	// Reuse the processor customer across upgrade attempts.
	customerID := user.StripeCustomerID
	if customerID == "" {
		customerID, err = s.provider.CreateCustomer(ctx, user.Email, user.Username)
		if err != nil {
			s.logger.Error("payment processor customer creation failed",
				slog.Int64("userID", userID),
				slog.String("error", err.Error()),
			)
			return "", apperror.External("payment processor request failed")
		}
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, billing.IntentRequest{
		Amount:     PremiumPriceCents,
		Currency:   "usd",
		CustomerID: customerID,
		UserID:     userID,
	})
	if err != nil {
		s.logger.Error("payment intent creation failed",
			slog.Int64("userID", userID),
			slog.String("error", err.Error()),
		)
		return "", apperror.External("payment processor request failed")
	}

	// Record the references only after the external call succeeded.
	if _, err := s.users.UpdateUserStripeInfo(ctx, userID, customerID, intent.ID); err != nil {
		return "", fmt.Errorf("recording billing references for user %d: %w", userID, err)
	}

	s.logger.Info("subscription payment opened",
		slog.Int64("userID", userID),
		slog.String("intentID", intent.ID),
	)

	return intent.ClientSecret, nil
}

// HandleEvent processes a verified webhook event. Only a succeeded payment
// grants premium; every other event type is acknowledged and ignored.
func (s *BillingService) HandleEvent(ctx context.Context, event *billing.Event) error {
	if event.Type != billing.EventPaymentSucceeded {
		s.logger.Debug("ignoring webhook event", slog.String("type", event.Type))
		return nil
	}

	userID, err := event.UserID()
	if err != nil {
		return err
	}

	user, err := s.users.UpdateUserPremiumStatus(ctx, userID, true)
	if err != nil {
		return fmt.Errorf("granting premium to user %d: %w", userID, err)
	}

	s.logger.Info("premium granted on confirmed payment",
		slog.Int64("userID", user.ID),
		slog.String("intentID", event.Data.Object.ID),
	)

	return nil
}

// GrantPremium flips the premium flag directly. Exposed only on the dev-mode
// mock route for testing the premium experience without a processor.
func (s *BillingService) GrantPremium(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.UpdateUserPremiumStatus(ctx, userID, true)
	if err != nil {
		return nil, err
	}
	s.logger.Info("premium granted via mock route", slog.Int64("userID", userID))
	return user, nil
}
