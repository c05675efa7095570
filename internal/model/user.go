// Package model defines the data structures used throughout the application.
package model

// User represents a registered account.
//
// Usernames are unique case-insensitively — "Alice" and "alice" are the same
// account. The repository enforces this with a COLLATE NOCASE unique index,
// and the auth service re-checks before creating (belt and braces: the check
// must hold even if a caller skips the service layer).
//
// IsPremium is the single source of truth for premium-content gating. Nothing
// else derives or caches it; catalog availability is always computed against
// this flag at read time.
//
// PasswordHash is the bcrypt hash of the user's password. The json:"-" tag
// means it is NEVER serialized — API responses carry the user record directly,
// so leaving the hash out of the JSON surface is load-bearing, not cosmetic.
type User struct {
	ID                   int64  `json:"id"`
	Username             string `json:"username"`
	PasswordHash         string `json:"-"`
	Email                string `json:"email"`
	IsPremium            bool   `json:"isPremium"`
	StripeCustomerID     string `json:"stripeCustomerId,omitempty"`
	StripeSubscriptionID string `json:"stripeSubscriptionId,omitempty"`
}
