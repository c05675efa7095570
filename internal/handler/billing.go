package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/auth"
	"github.com/mindwellhq/mindwell/internal/billing"
	"github.com/mindwellhq/mindwell/internal/service"
)

// maxWebhookBody bounds webhook payloads; real processor events are a few KB.
const maxWebhookBody = 64 * 1024

// BillingHandler serves the upgrade and webhook routes.
type BillingHandler struct {
	billing       *service.BillingService
	webhookSecret string
	logger        *slog.Logger
}

func NewBillingHandler(billingService *service.BillingService, webhookSecret string, logger *slog.Logger) *BillingHandler {
	return &BillingHandler{
		billing:       billingService,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleCreateSubscription opens a premium-upgrade payment and returns the
// client secret the browser uses to complete it. Premium is NOT granted
// here — that waits for the processor's webhook confirmation.
//
// HTTP: POST /api/create-subscription → 200 {"clientSecret": "..."}
func (h *BillingHandler) HandleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	clientSecret, err := h.billing.CreateSubscription(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"clientSecret": clientSecret})
}

// HandleWebhook receives payment notifications from the processor.
//
// This route is NOT behind the session gate — the caller is Stripe, not a
// browser. Authentication is the signature header instead: the payload must
// verify against the shared webhook secret before anything is acted on.
//
// HTTP: POST /api/billing/webhook
func (h *BillingHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBody))
	if err != nil {
		h.logger.Warn("webhook body read failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "invalid webhook payload",
		})
		return
	}

	event, err := billing.ConstructEvent(payload, r.Header.Get("Stripe-Signature"),
		h.webhookSecret, billing.DefaultTolerance)
	if errors.Is(err, billing.ErrSecretUnset) {
		// Without a secret nothing can be verified, so nothing is acted on.
		h.logger.Error("webhook received but STRIPE_WEBHOOK_SECRET is not set")
		writeError(w, apperror.External("Stripe webhooks are not configured"))
		return
	}
	if err != nil {
		h.logger.Warn("webhook verification failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "webhook signature verification failed",
		})
		return
	}

	if err := h.billing.HandleEvent(r.Context(), event); err != nil {
		h.logger.Error("webhook handling failed",
			slog.String("eventID", event.ID),
			slog.String("error", err.Error()),
		)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// HandleMockPremium grants premium without a processor. Registered only in
// dev mode, mirroring the upgrade path for local testing.
//
// HTTP: POST /api/mock-premium
func (h *BillingHandler) HandleMockPremium(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserIDFromContext(r.Context())

	user, err := h.billing.GrantPremium(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}
