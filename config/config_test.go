package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/soccer_mvp?sslmode=disable")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("COOKIE_SECURE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.True(t, cfg.CookieSecure)
	assert.Contains(t, cfg.CORSAllowedOrigins, "http://localhost:3000")
	assert.Len(t, cfg.CORSAllowedOrigins, 4)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET_KEY", "test-secret")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/soccer_mvp")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err = Load()
	assert.ErrorContains(t, err, "JWT_SECRET_KEY")
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/soccer_mvp")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("SERVER_PORT", "99999")

	_, err := Load()
	assert.ErrorContains(t, err, "SERVER_PORT")
}

func TestLoadCustomOrigins(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/soccer_mvp")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, https://admin.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}
