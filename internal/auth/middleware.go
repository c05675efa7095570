package auth

import (
	"context"
	"net/http"
)

// contextKey is unexported so only this package can read or write the
// identity value in a request context — no other package can collide with
// or shadow the key.
type contextKey string

const userIDKey contextKey = "userID"

// CookieName is the session cookie carrying the JWT.
const CookieName = "token"

// RequireAuth is the access-control gate for protected routes.
//
// It reads the JWT from the session cookie, validates it, and stores the
// user id in the request context for downstream ownership checks. If the
// token is missing or invalid it responds 401 and stops the chain — no
// handler and no store access happens for unauthenticated requests.
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				// Same envelope the handlers write. http.Error is unusable
				// here: it forces Content-Type to text/plain.
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"unauthorized","message":"valid authentication required"}` + "\n"))
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth extracts the identity if a valid token is present but never
// blocks the request. Used on the public catalog routes, where anonymous
// users see the free tier and logged-in premium users see everything.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := extractUserID(r, tokens); err == nil && userID > 0 {
				ctx := context.WithValue(r.Context(), userIDKey, userID)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext retrieves the authenticated user's id from the request
// context. Returns (0, false) for anonymous requests.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// extractUserID reads the session cookie and validates the JWT inside it.
func extractUserID(r *http.Request, tokens *TokenService) (int64, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		// http.ErrNoCookie — not an error, just an anonymous request
		return 0, err
	}

	return tokens.Validate(cookie.Value)
}
