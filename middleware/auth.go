package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/soccer-mvp/soccer-api/services"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// CookieName is the auth cookie set on login and read by the guard.
const CookieName = "token"

// Authenticate returns a guard that verifies the bearer token before
// delegating to the wrapped handler. The token is taken from the auth
// cookie, or from the Authorization header as a fallback.
func Authenticate(tokens *services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := tokenFromRequest(r)
			if tokenString == "" {
				unauthorized(w, "auth token is required")
				return
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				if errors.Is(err, services.ErrTokenExpired) {
					unauthorized(w, "token has expired")
					return
				}
				unauthorized(w, "token is invalid")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// GetUserIDFromContext returns the authenticated user's id placed in the
// request context by Authenticate.
func GetUserIDFromContext(ctx context.Context) (int, error) {
	claims, ok := ctx.Value(claimsContextKey).(*services.TokenClaims)
	if !ok {
		return 0, errors.New("token claims not found in context")
	}
	return claims.UserID, nil
}

func GetUserEmailFromContext(ctx context.Context) (string, error) {
	claims, ok := ctx.Value(claimsContextKey).(*services.TokenClaims)
	if !ok {
		return "", errors.New("token claims not found in context")
	}
	return claims.Email, nil
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
