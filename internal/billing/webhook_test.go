package billing

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"
	"time"
)

const testWebhookSecret = "whsec_test_secret"

// sign produces a Stripe-Signature header for payload, the same way the
// processor does: hex(HMAC-SHA256(secret, "<t>.<payload>")).
func sign(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.%s", ts.Unix(), payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func succeededPayload(userID string) []byte {
	return []byte(`{
		"id": "evt_123",
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_123",
				"status": "succeeded",
				"metadata": {"user_id": "` + userID + `"}
			}
		}
	}`)
}

// =========================================================================
// ConstructEvent TESTS
// =========================================================================

func TestConstructEvent_ValidSignature(t *testing.T) {
	payload := succeededPayload("42")
	header := sign(payload, testWebhookSecret, time.Now())

	event, err := ConstructEvent(payload, header, testWebhookSecret, DefaultTolerance)
	if err != nil {
		t.Fatalf("ConstructEvent() error = %v", err)
	}

	if event.Type != EventPaymentSucceeded {
		t.Errorf("Type = %q, want %q", event.Type, EventPaymentSucceeded)
	}
	userID, err := event.UserID()
	if err != nil {
		t.Fatalf("UserID() error = %v", err)
	}
	if userID != 42 {
		t.Errorf("UserID() = %d, want 42", userID)
	}
}

func TestConstructEvent_WrongSecret(t *testing.T) {
	payload := succeededPayload("42")
	header := sign(payload, "whsec_somebody_else", time.Now())

	_, err := ConstructEvent(payload, header, testWebhookSecret, DefaultTolerance)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("error = %v, want ErrInvalidSignature", err)
	}
}

func TestConstructEvent_TamperedPayload(t *testing.T) {
	payload := succeededPayload("42")
	header := sign(payload, testWebhookSecret, time.Now())

	// Sign user 42's payload, deliver user 43's
	tampered := succeededPayload("43")
	_, err := ConstructEvent(tampered, header, testWebhookSecret, DefaultTolerance)
	if !errors.Is(err, ErrInvalidSignature) {
		t.Errorf("error = %v, want ErrInvalidSignature", err)
	}
}

// With no secret configured the HMAC key would be empty and anyone could
// compute a matching signature, so verification must refuse entirely rather
// than accept an empty-key signature.
func TestConstructEvent_EmptySecret(t *testing.T) {
	payload := succeededPayload("42")
	header := sign(payload, "", time.Now())

	_, err := ConstructEvent(payload, header, "", DefaultTolerance)
	if !errors.Is(err, ErrSecretUnset) {
		t.Errorf("error = %v, want ErrSecretUnset", err)
	}
}

// The timestamp is part of the signed string, so an old capture can't be
// replayed after the tolerance window.
func TestConstructEvent_StaleTimestamp(t *testing.T) {
	payload := succeededPayload("42")
	header := sign(payload, testWebhookSecret, time.Now().Add(-time.Hour))

	_, err := ConstructEvent(payload, header, testWebhookSecret, DefaultTolerance)
	if !errors.Is(err, ErrStaleTimestamp) {
		t.Errorf("error = %v, want ErrStaleTimestamp", err)
	}
}

func TestConstructEvent_MalformedHeader(t *testing.T) {
	payload := succeededPayload("42")

	for _, header := range []string{
		"",
		"t=,v1=",
		"v1=abcdef", // no timestamp
		fmt.Sprintf("t=%d", time.Now().Unix()), // no signature
		"nonsense",
	} {
		if _, err := ConstructEvent(payload, header, testWebhookSecret, DefaultTolerance); err == nil {
			t.Errorf("ConstructEvent(header=%q) should fail", header)
		}
	}
}

// The processor may send several v1 candidates (during secret rotation);
// verification passes if any one matches.
func TestConstructEvent_MultipleSignatures(t *testing.T) {
	payload := succeededPayload("42")
	ts := time.Now()

	good := sign(payload, testWebhookSecret, ts)
	bad := sign(payload, "whsec_old_rotated_secret", ts)
	// bad's v1 first, then good's
	header := bad + "," + good[len(fmt.Sprintf("t=%d,", ts.Unix())):]

	if _, err := ConstructEvent(payload, header, testWebhookSecret, DefaultTolerance); err != nil {
		t.Errorf("ConstructEvent() with one valid of two signatures: %v", err)
	}
}

// =========================================================================
// Event.UserID TESTS
// =========================================================================

func TestEventUserID_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		metadata map[string]string
	}{
		{"missing metadata", nil},
		{"missing user_id key", map[string]string{"other": "1"}},
		{"non-numeric", map[string]string{"user_id": "abc"}},
		{"zero", map[string]string{"user_id": "0"}},
		{"negative", map[string]string{"user_id": "-5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Event{ID: "evt_x", Type: EventPaymentSucceeded}
			e.Data.Object.Metadata = tt.metadata
			if _, err := e.UserID(); err == nil {
				t.Error("UserID() should fail")
			}
		})
	}
}
