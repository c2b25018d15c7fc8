package auth_test

import (
	"testing"

	"github.com/mingusapp/go-token-service/auth"
	apperrors "github.com/mingusapp/go-token-service/internal/errors"
	"github.com/mingusapp/go-token-service/sessions"
	"github.com/mingusapp/go-token-service/tiers"
	"github.com/mingusapp/go-token-service/token"
	"github.com/mingusapp/go-token-service/users"
	"github.com/stretchr/testify/require"
)

const (
	secretStr        = "test-signing-secret"
	testUserEmail    = "john.doe@example.com"
	testUserPassword = "Password123"
	maxSessions      = 3
)

// testFixture holds all test dependencies
type testFixture struct {
	userRepo    *users.InMemoryRepo
	sessionRepo *sessions.InMemoryRepo
	blacklist   *token.InMemoryBlacklist
	tokens      *token.Manager
	service     *auth.Service
}

// setupTestFixture creates a new test fixture with all dependencies
func setupTestFixture(t *testing.T) *testFixture {
	t.Helper()

	ur := users.NewInMemoryRepo()
	sr := sessions.NewInMemoryRepo(maxSessions)
	bl := token.NewInMemoryBlacklist()

	signer, err := token.NewHMACSigner(secretStr, "HS256")
	require.NoError(t, err)

	tokens := token.New(signer, token.WithBlacklist(bl))

	service, err := auth.NewService(auth.Repos{Users: ur, Sessions: sr}, tokens)
	require.NoError(t, err)

	return &testFixture{
		userRepo:    ur,
		sessionRepo: sr,
		blacklist:   bl,
		tokens:      tokens,
		service:     service,
	}
}

func (f *testFixture) registerTestUser(t *testing.T, tier tiers.Tier) *users.User {
	t.Helper()

	user, err := f.service.Register(testUserEmail, testUserPassword, tier)
	require.NoError(t, err)
	return user
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	ur := users.NewInMemoryRepo()
	sr := sessions.NewInMemoryRepo(maxSessions)

	signer, err := token.NewHMACSigner(secretStr, "HS256")
	require.NoError(t, err)
	tokens := token.New(signer)

	_, err = auth.NewService(auth.Repos{Users: nil, Sessions: sr}, tokens)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{Users: ur, Sessions: nil}, tokens)
	require.Error(t, err)

	_, err = auth.NewService(auth.Repos{Users: ur, Sessions: sr}, nil)
	require.Error(t, err)
}

func TestRegister(t *testing.T) {
	f := setupTestFixture(t)

	user := f.registerTestUser(t, tiers.TierBasic)
	require.NotEmpty(t, user.ID)
	require.Equal(t, testUserEmail, user.Email)
	require.Equal(t, tiers.TierBasic, user.Tier)
	require.NotEqual(t, testUserPassword, user.PasswordHash)
}

func TestRegisterDefaultsToFreeTier(t *testing.T) {
	f := setupTestFixture(t)

	user, err := f.service.Register(testUserEmail, testUserPassword, "")
	require.NoError(t, err)
	require.Equal(t, tiers.TierFree, user.Tier)
}

func TestRegisterRejectsBadInput(t *testing.T) {
	f := setupTestFixture(t)

	_, err := f.service.Register("not-an-email", testUserPassword, tiers.TierFree)
	require.ErrorIs(t, err, auth.InvalidEmailErr)

	_, err = f.service.Register(testUserEmail, "weak", tiers.TierFree)
	require.Error(t, err)

	_, err = f.service.Register(testUserEmail, testUserPassword, tiers.Tier("platinum"))
	require.ErrorIs(t, err, auth.UnknownTierErr)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t, tiers.TierFree)

	_, err := f.service.Register(testUserEmail, testUserPassword, tiers.TierFree)
	require.ErrorIs(t, err, apperrors.ErrUserExists)
}

func TestLoginIssuesTokenPairAndTracksSession(t *testing.T) {
	f := setupTestFixture(t)
	user := f.registerTestUser(t, tiers.TierPremium)

	pair, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEmpty(t, pair.SessionID)
	require.Equal(t, "bearer", pair.TokenType)
	require.Equal(t, 3600, pair.ExpiresIn)

	result := f.tokens.Validate(pair.AccessToken)
	require.True(t, result.Valid)
	require.Equal(t, user.ID, result.Claims.Subject)
	require.Equal(t, tiers.TierPremium, result.Claims.Tier)

	count, err := f.sessionRepo.CountByUser(user.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t, tiers.TierFree)

	_, err := f.service.Login(testUserEmail, "WrongPassword1")
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = f.service.Login("nobody@example.com", testUserPassword)
	require.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestRepeatedLoginsCappedBySessionLimit(t *testing.T) {
	f := setupTestFixture(t)
	user := f.registerTestUser(t, tiers.TierFree)

	for i := 0; i < maxSessions+2; i++ {
		_, err := f.service.Login(testUserEmail, testUserPassword)
		require.NoError(t, err)
	}

	count, err := f.sessionRepo.CountByUser(user.ID)
	require.NoError(t, err)
	require.Equal(t, maxSessions, count)
}

func TestRefresh(t *testing.T) {
	f := setupTestFixture(t)
	user := f.registerTestUser(t, tiers.TierBasic)

	pair, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)

	newAccess, err := f.service.Refresh(pair.RefreshToken)
	require.NoError(t, err)

	result := f.tokens.Validate(newAccess)
	require.True(t, result.Valid)
	require.Equal(t, user.ID, result.Claims.Subject)

	_, err = f.service.Refresh(pair.AccessToken)
	require.ErrorIs(t, err, apperrors.ErrInvalidRefreshToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	f := setupTestFixture(t)
	f.registerTestUser(t, tiers.TierFree)

	pair, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(pair.AccessToken))

	result := f.tokens.Validate(pair.AccessToken)
	require.False(t, result.Valid)
	require.Equal(t, token.ReasonBlacklisted, result.Reason)
}

func TestLogoutAllDropsSessionsButNotTokens(t *testing.T) {
	f := setupTestFixture(t)
	user := f.registerTestUser(t, tiers.TierFree)

	pair, err := f.service.Login(testUserEmail, testUserPassword)
	require.NoError(t, err)

	require.NoError(t, f.service.LogoutAll(user.ID))

	count, err := f.sessionRepo.CountByUser(user.ID)
	require.NoError(t, err)
	require.Equal(t, 0, count)

	// Outstanding tokens are not blacklisted by a session wipe
	result := f.tokens.Validate(pair.AccessToken)
	require.True(t, result.Valid)
}
