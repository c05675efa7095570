package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/xid"
)

const defaultBaseURL = "https://api.stripe.com"

// StripeClient talks to the Stripe REST API. Stripe takes form-encoded
// requests authenticated with a bearer secret key and answers JSON.
//
// Every mutating call sends an Idempotency-Key header, so a retried request
// (network blip, timeout) can never open the same payment twice.
type StripeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// compile-time check that *StripeClient implements Provider
var _ Provider = (*StripeClient)(nil)

// NewStripeClient creates a client with the given secret key.
func NewStripeClient(apiKey string, logger *slog.Logger) *StripeClient {
	return &StripeClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: logger,
	}
}

// CreateCustomer creates a Stripe customer for the user and returns its id.
func (c *StripeClient) CreateCustomer(ctx context.Context, email, username string) (string, error) {
	form := url.Values{}
	form.Set("email", email)
	form.Set("name", username)

	var customer struct {
		ID string `json:"id"`
	}
	if err := c.postForm(ctx, "/v1/customers", form, &customer); err != nil {
		return "", fmt.Errorf("billing: creating customer: %w", err)
	}

	c.logger.Info("stripe customer created", slog.String("customerID", customer.ID))
	return customer.ID, nil
}

// CreatePaymentIntent opens a payment intent. Our user id rides along in the
// intent metadata so the webhook can attribute the confirmation.
func (c *StripeClient) CreatePaymentIntent(ctx context.Context, req IntentRequest) (*PaymentIntent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(req.Amount, 10))
	form.Set("currency", req.Currency)
	form.Set("automatic_payment_methods[enabled]", "true")
	form.Set("metadata[user_id]", strconv.FormatInt(req.UserID, 10))
	if req.CustomerID != "" {
		form.Set("customer", req.CustomerID)
	}

	var intent PaymentIntent
	if err := c.postForm(ctx, "/v1/payment_intents", form, &intent); err != nil {
		return nil, fmt.Errorf("billing: creating payment intent: %w", err)
	}

	c.logger.Info("stripe payment intent created",
		slog.String("intentID", intent.ID),
		slog.Int64("userID", req.UserID),
	)
	return &intent, nil
}

// stripeError is the error envelope Stripe returns on non-2xx responses.
type stripeError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// postForm sends a form-encoded POST and decodes the JSON response into out.
func (c *StripeClient) postForm(ctx context.Context, path string, form url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Idempotency-Key", xid.New().String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling stripe %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr stripeError
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("stripe %s returned %d: %s", path, resp.StatusCode, apiErr.Error.Message)
		}
		return fmt.Errorf("stripe %s returned status %d", path, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding stripe %s response: %w", path, err)
	}
	return nil
}
