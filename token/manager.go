package token

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	apperrors "github.com/mingusapp/go-token-service/internal/errors"
	"github.com/mingusapp/go-token-service/tiers"
	"github.com/pkg/errors"
)

// Validation failure reasons returned in ValidationResult.Reason.
const (
	ReasonBlacklisted      = "blacklisted"
	ReasonExpired          = "expired"
	ReasonWrongTokenType   = "wrong token type"
	ReasonValidationFailed = "validation failed"
)

// ValidationResult is the structured outcome of validating a bearer token.
// Failures are reported here rather than as errors so callers always receive
// a result they can map to a response.
type ValidationResult struct {
	Valid          bool
	Claims         *Claims
	Reason         string
	RotationNeeded bool // Set when the token is valid but close to expiry
}

// Manager issues, validates, refreshes and revokes bearer tokens.
type Manager struct {
	signer             Signer
	blacklist          Blacklist
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
	rotationThreshold  time.Duration
	nowFunc            func() time.Time
}

type ManagerOption func(*Manager)

func WithTokenExpiry(accessTokenExpiry, refreshTokenExpiry time.Duration) ManagerOption {
	return func(m *Manager) {
		m.accessTokenExpiry = accessTokenExpiry
		m.refreshTokenExpiry = refreshTokenExpiry
	}
}

func WithRotationThreshold(threshold time.Duration) ManagerOption {
	return func(m *Manager) {
		m.rotationThreshold = threshold
	}
}

func WithNowFunc(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowFunc = now
	}
}

func WithBlacklist(blacklist Blacklist) ManagerOption {
	return func(m *Manager) {
		m.blacklist = blacklist
	}
}

func New(signer Signer, options ...ManagerOption) *Manager {
	m := &Manager{
		signer:    signer,
		blacklist: NewInMemoryBlacklist(), // Default implementation
	}

	for _, opt := range options {
		opt(m)
	}

	if m.accessTokenExpiry == 0 {
		m.accessTokenExpiry = time.Hour
	}
	if m.refreshTokenExpiry == 0 {
		m.refreshTokenExpiry = 7 * 24 * time.Hour
	}
	if m.rotationThreshold == 0 {
		m.rotationThreshold = 5 * time.Minute
	}
	if m.nowFunc == nil {
		m.nowFunc = time.Now
	}
	return m
}

// CreateAccessToken issues a short-lived access token for the user. An empty
// tier defaults to free.
func (m *Manager) CreateAccessToken(userID string, tier tiers.Tier) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("Manager.CreateAccessToken userID is required")
	}
	if tier == "" {
		tier = tiers.TierFree
	}

	now := m.nowFunc()
	claims := jwt.MapClaims{
		"sub":  userID,
		"tier": string(tier),
		"type": TypeAccess,
		"iat":  int64(now.Unix()),
		"exp":  int64(now.Add(m.accessTokenExpiry).Unix()), // Expiry is always issued-at plus the access lifetime
		"jti":  uuid.New().String(),
	}

	return m.signer.Sign(claims)
}

// CreateRefreshToken issues a long-lived refresh token. Refresh tokens carry
// no tier claim.
func (m *Manager) CreateRefreshToken(userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", errors.New("Manager.CreateRefreshToken userID is required")
	}

	now := m.nowFunc()
	claims := jwt.MapClaims{
		"sub":  userID,
		"type": TypeRefresh,
		"iat":  int64(now.Unix()),
		"exp":  int64(now.Add(m.refreshTokenExpiry).Unix()),
		"jti":  uuid.New().String(),
	}

	return m.signer.Sign(claims)
}

// Validate checks a raw access token and returns a structured result. The
// blacklist is consulted before signature verification, so a revoked token is
// rejected even if it would otherwise decode cleanly. A token whose remaining
// lifetime is below the rotation threshold is still valid but flagged so the
// caller can mint a replacement transparently.
func (m *Manager) Validate(rawToken string) (result *ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = &ValidationResult{Valid: false, Reason: ReasonValidationFailed}
		}
	}()

	if m.blacklist.Contains(rawToken) {
		return &ValidationResult{Valid: false, Reason: ReasonBlacklisted}
	}

	claims, err := m.decode(rawToken)
	if err != nil {
		if apperrors.Is(err, jwt.ErrTokenExpired) {
			return &ValidationResult{Valid: false, Reason: ReasonExpired}
		}
		return &ValidationResult{Valid: false, Reason: err.Error()}
	}

	if claims.Type != TypeAccess {
		return &ValidationResult{Valid: false, Reason: ReasonWrongTokenType}
	}

	result = &ValidationResult{Valid: true, Claims: claims}
	if claims.ExpiresAt.Sub(m.nowFunc()) < m.rotationThreshold {
		result.RotationNeeded = true
	}
	return result
}

// RefreshAccessToken exchanges a refresh token for a new access token issued
// to the same subject. The blacklist is not consulted for refresh tokens and
// the subject's current tier is not re-checked; the new access token carries
// the default tier.
func (m *Manager) RefreshAccessToken(rawRefreshToken string) (string, error) {
	claims, err := m.decode(rawRefreshToken)
	if err != nil {
		return "", apperrors.Wrapf(apperrors.ErrInvalidRefreshToken, "decode failed (%v)", err)
	}
	if claims.Type != TypeRefresh {
		return "", apperrors.ErrInvalidRefreshToken
	}

	return m.CreateAccessToken(claims.Subject, tiers.TierFree)
}

// Revoke adds the literal token value to the blacklist. Revoking an already
// revoked token is a no-op.
func (m *Manager) Revoke(rawToken string) error {
	if strings.TrimSpace(rawToken) == "" {
		return errors.New("Manager.Revoke token is required")
	}
	return m.blacklist.Add(rawToken)
}

// AccessTokenExpiry returns the configured access token lifetime.
func (m *Manager) AccessTokenExpiry() time.Duration {
	return m.accessTokenExpiry
}

func (m *Manager) decode(rawToken string) (*Claims, error) {
	parser := jwt.NewParser(jwt.WithTimeFunc(m.nowFunc))
	parsed, err := parser.Parse(rawToken, m.signer.GetVerificationKey)
	if err != nil {
		return nil, err
	}

	mc, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("error extracting claims from token")
	}

	return claimsFromMap(mc)
}
