// Package billing integrates the external payment processor (Stripe).
//
// The rest of the app programs against the Provider interface; the concrete
// Stripe client lives in stripe.go and webhook verification in webhook.go.
// Services inject a mock Provider in tests — the payment processor is the
// only cross-process call in the system and must be swappable.
package billing

import "context"

// Provider is the payment-processor abstraction the billing service uses.
type Provider interface {
	// CreateCustomer registers the user with the processor and returns the
	// processor's customer reference.
	CreateCustomer(ctx context.Context, email, username string) (string, error)
	// CreatePaymentIntent opens a payment for the given amount and returns
	// the intent handle the client completes payment with.
	CreatePaymentIntent(ctx context.Context, req IntentRequest) (*PaymentIntent, error)
}

// IntentRequest describes the payment to open.
type IntentRequest struct {
	Amount     int64  // minor units, e.g. 499 = $4.99
	Currency   string // ISO code, e.g. "usd"
	CustomerID string // processor customer reference, may be empty
	UserID     int64  // our user id, round-tripped through intent metadata
}

// PaymentIntent is the processor's handle for an opened payment. The
// ClientSecret goes back to the browser, which completes payment directly
// with the processor; our server only learns the outcome via webhook.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}
