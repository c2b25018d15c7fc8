package config_test

import (
	"testing"
	"time"

	"github.com/mingusapp/go-token-service/internal/config"
	"github.com/stretchr/testify/require"
)

func TestSecurityDefaults(t *testing.T) {
	c := config.New()

	require.Equal(t, "HS256", c.GetJWTAlgorithm())
	require.Equal(t, time.Hour, c.GetAccessTokenTTL())
	require.Equal(t, 7*24*time.Hour, c.GetRefreshTokenTTL())
	require.Equal(t, 5*time.Minute, c.GetRotationThreshold())
	require.Equal(t, 3, c.GetMaxSessionsPerUser())
}

func TestSecurityEnvOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "120")
	t.Setenv("REFRESH_TOKEN_TTL", "7200")
	t.Setenv("TOKEN_ROTATION_THRESHOLD", "30")
	t.Setenv("MAX_SESSIONS_PER_USER", "5")
	t.Setenv("JWT_SECRET_KEY", "test-secret")
	t.Setenv("JWT_ALGORITHM", "HS512")

	c := config.New()

	require.Equal(t, "test-secret", c.GetJWTSecret())
	require.Equal(t, "HS512", c.GetJWTAlgorithm())
	require.Equal(t, 2*time.Minute, c.GetAccessTokenTTL())
	require.Equal(t, 2*time.Hour, c.GetRefreshTokenTTL())
	require.Equal(t, 30*time.Second, c.GetRotationThreshold())
	require.Equal(t, 5, c.GetMaxSessionsPerUser())
}

func TestSecurityInvalidValuesFallBack(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "not-a-number")
	t.Setenv("MAX_SESSIONS_PER_USER", "0")

	c := config.New()

	require.Equal(t, time.Hour, c.GetAccessTokenTTL())
	require.Equal(t, 3, c.GetMaxSessionsPerUser())
}
