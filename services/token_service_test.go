package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soccer-mvp/soccer-api/models"
)

func TestTokenServiceGenerateAndParse(t *testing.T) {
	tokens := NewTokenService("test-secret")
	user := &models.User{ID: 7, Email: "player@example.com"}

	signed, err := tokens.Generate(user)
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "player@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(TokenTTL), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenServiceParseExpired(t *testing.T) {
	tokens := NewTokenService("test-secret")

	claims := TokenClaims{
		UserID: 7,
		Email:  "player@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-25 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenServiceParseWrongSecret(t *testing.T) {
	issuer := NewTokenService("issuer-secret")
	verifier := NewTokenService("other-secret")

	signed, err := issuer.Generate(&models.User{ID: 7, Email: "player@example.com"})
	require.NoError(t, err)

	_, err = verifier.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenServiceParseMalformed(t *testing.T) {
	tokens := NewTokenService("test-secret")

	_, err := tokens.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenServiceParseRejectsMissingUserID(t *testing.T) {
	tokens := NewTokenService("test-secret")

	claims := TokenClaims{
		Email: "player@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
