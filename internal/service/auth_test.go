package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mindwellhq/mindwell/internal/apperror"
	"github.com/mindwellhq/mindwell/internal/auth"
)

func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()
	repo := newMockUserRepo()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!")
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	// bcrypt at minimum cost, otherwise every registration costs ~250ms
	passwords := auth.NewPasswordServiceForTest(4)
	return NewAuthService(repo, tokens, passwords, testLogger()), repo
}

func register(t *testing.T, svc *AuthService, username string) *AuthResult {
	t.Helper()
	result, err := svc.Register(context.Background(), username, "password123", username+"@example.com")
	if err != nil {
		t.Fatalf("Register(%q) error = %v", username, err)
	}
	return result
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result := register(t, svc, "alice")

	if result.User.ID == 0 {
		t.Error("expected user to have an ID")
	}
	if result.User.IsPremium {
		t.Error("new users must not be premium")
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
	// The stored hash must never be the plaintext
	if result.User.PasswordHash == "password123" {
		t.Error("password stored in plaintext")
	}
}

func TestRegister_TrimsUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "  alice  ", "password123", "alice@example.com")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.User.Username != "alice" {
		t.Errorf("Username = %q, want trimmed %q", result.User.Username, "alice")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)
	register(t, svc, "alice")

	_, err := svc.Register(context.Background(), "alice", "password456", "other@example.com")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestRegister_DuplicateUsernameDifferentCase(t *testing.T) {
	svc, _ := newTestAuthService(t)
	register(t, svc, "alice")

	_, err := svc.Register(context.Background(), "Alice", "password456", "other@example.com")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict for case-insensitive duplicate", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
		email    string
	}{
		{"empty username", "", "password123", "a@example.com"},
		{"username too long", strings.Repeat("a", MaxUsernameLength+1), "password123", "a@example.com"},
		{"password too short", "alice", "short", "a@example.com"},
		{"empty email", "alice", "password123", ""},
		{"email without @", "alice", "password123", "not-an-email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.password, tt.email)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registered := register(t, svc, "alice")

	result, err := svc.Login(context.Background(), "alice", "password123")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != registered.User.ID {
		t.Errorf("logged-in user ID = %d, want %d", result.User.ID, registered.User.ID)
	}
	if result.Token == "" {
		t.Error("expected a session token")
	}
}

func TestLogin_CaseInsensitiveUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)
	register(t, svc, "alice")

	if _, err := svc.Login(context.Background(), "ALICE", "password123"); err != nil {
		t.Errorf("Login() with different case error = %v", err)
	}
}

// A wrong password and an unknown username must be indistinguishable to the
// caller — same error category, same message.
func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	svc, _ := newTestAuthService(t)
	register(t, svc, "alice")

	_, errWrongPass := svc.Login(context.Background(), "alice", "not-the-password")
	_, errNoUser := svc.Login(context.Background(), "mallory", "whatever")

	if !errors.Is(errWrongPass, apperror.ErrUnauthorized) {
		t.Errorf("wrong password: error = %v, want ErrUnauthorized", errWrongPass)
	}
	if !errors.Is(errNoUser, apperror.ErrUnauthorized) {
		t.Errorf("unknown user: error = %v, want ErrUnauthorized", errNoUser)
	}
	if errWrongPass.Error() != errNoUser.Error() {
		t.Errorf("messages differ: %q vs %q — leaks which half failed",
			errWrongPass.Error(), errNoUser.Error())
	}
}

// =========================================================================
// GET USER TESTS
// =========================================================================

func TestGetUserByID(t *testing.T) {
	svc, _ := newTestAuthService(t)
	registered := register(t, svc, "alice")

	user, err := svc.GetUserByID(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("Username = %q, want %q", user.Username, "alice")
	}
}

func TestGetUserByID_NotFound(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.GetUserByID(context.Background(), 9999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
