package token_test

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	apperrors "github.com/mingusapp/go-token-service/internal/errors"
	"github.com/mingusapp/go-token-service/token"
	"github.com/stretchr/testify/require"
)

func TestNewHMACSignerRequiresSecret(t *testing.T) {
	_, err := token.NewHMACSigner("", "HS256")
	require.ErrorIs(t, err, apperrors.ErrMissingSigningKey)
}

func TestNewHMACSignerAlgorithms(t *testing.T) {
	tests := []struct {
		algorithm string
		method    jwt.SigningMethod
	}{
		{"", jwt.SigningMethodHS256},
		{"HS256", jwt.SigningMethodHS256},
		{"HS384", jwt.SigningMethodHS384},
		{"HS512", jwt.SigningMethodHS512},
	}

	for _, tc := range tests {
		signer, err := token.NewHMACSigner(testSecret, tc.algorithm)
		require.NoError(t, err)
		require.Equal(t, tc.method, signer.GetSigningMethod())
	}
}

func TestNewHMACSignerRejectsUnknownAlgorithm(t *testing.T) {
	_, err := token.NewHMACSigner(testSecret, "RS256")
	require.ErrorIs(t, err, apperrors.ErrUnsupportedAlgorithm)
}

func TestHMACSignerRoundTrip(t *testing.T) {
	signer := newTestSigner(t)

	raw, err := signer.Sign(jwt.MapClaims{"sub": "user-1"})
	require.NoError(t, err)

	parsed, err := jwt.Parse(raw, signer.GetVerificationKey)
	require.NoError(t, err)
	require.True(t, parsed.Valid)
}
