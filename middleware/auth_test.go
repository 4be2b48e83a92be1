package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccer-mvp/soccer-api/models"
	"github.com/soccer-mvp/soccer-api/services"
)

func newGuardedHandler(t *testing.T, tokens *services.TokenService) (http.Handler, *int) {
	t.Helper()

	var seenUserID int
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := GetUserIDFromContext(r.Context())
		require.NoError(t, err)
		seenUserID = userID
		w.WriteHeader(http.StatusOK)
	})
	return Authenticate(tokens)(next), &seenUserID
}

func TestAuthenticateWithCookie(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	token, err := tokens.Generate(&models.User{ID: 7, Email: "player@example.com"})
	require.NoError(t, err)

	guarded, seenUserID := newGuardedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/auth/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, *seenUserID)
}

func TestAuthenticateWithBearerHeader(t *testing.T) {
	tokens := services.NewTokenService("test-secret")
	token, err := tokens.Generate(&models.User{ID: 7, Email: "player@example.com"})
	require.NoError(t, err)

	guarded, seenUserID := newGuardedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/auth/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, *seenUserID)
}

func TestAuthenticateMissingToken(t *testing.T) {
	guarded, _ := newGuardedHandler(t, services.NewTokenService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/auth/protected", nil)
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"auth token is required"}`, rec.Body.String())
}

func TestAuthenticateExpiredToken(t *testing.T) {
	tokens := services.NewTokenService("test-secret")

	claims := services.TokenClaims{
		UserID: 7,
		Email:  "player@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	guarded, _ := newGuardedHandler(t, tokens)

	req := httptest.NewRequest(http.MethodGet, "/auth/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: expired})
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"token has expired"}`, rec.Body.String())
}

func TestAuthenticateTamperedToken(t *testing.T) {
	issuer := services.NewTokenService("other-secret")
	token, err := issuer.Generate(&models.User{ID: 7, Email: "player@example.com"})
	require.NoError(t, err)

	guarded, _ := newGuardedHandler(t, services.NewTokenService("test-secret"))

	req := httptest.NewRequest(http.MethodGet, "/auth/protected", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec := httptest.NewRecorder()
	guarded.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"token is invalid"}`, rec.Body.String())
}
