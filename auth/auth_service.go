package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/mingusapp/go-token-service/internal/errors"
	"github.com/mingusapp/go-token-service/sessions"
	"github.com/mingusapp/go-token-service/tiers"
	"github.com/mingusapp/go-token-service/token"
	"github.com/mingusapp/go-token-service/users"
	"github.com/pkg/errors"
)

// Repos holds all repository dependencies for the Service
type Repos struct {
	Users    users.UserRepo // Repository for user accounts
	Sessions sessions.Repo  // Repository for active session tracking
}

// TokenPair is returned on successful login or registration.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	SessionID    string `json:"session_id"`
}

// Service provides registration, login, token refresh and logout for the
// Mingus platform, built on the token manager and session tracking.
type Service struct {
	repos   Repos            // All repository dependencies
	tokens  *token.Manager   // Token issuance, validation and revocation
	nowTime func() time.Time // nowTime function (injectable for testing)
}

// ServiceOption defines a function type to modify the Service instance.
type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// NewService initializes a new Service with required dependencies.
func NewService(repos Repos, tokens *token.Manager, options ...ServiceOption) (*Service, error) {
	if repos.Users == nil {
		return nil, errors.New("[NewService] Users repo is required")
	}
	if repos.Sessions == nil {
		return nil, errors.New("[NewService] Sessions repo is required")
	}
	if tokens == nil {
		return nil, errors.New("[NewService] token manager is required")
	}

	service := &Service{
		repos:   repos,
		tokens:  tokens,
		nowTime: time.Now,
	}

	for _, opt := range options {
		opt(service)
	}

	return service, nil
}

// Register creates a new user account. The tier defaults to free when empty
// and must otherwise be one of the recognised tiers.
func (s *Service) Register(email, password string, tier tiers.Tier) (*users.User, error) {
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, InvalidEmailErr
	}

	if err := users.ValidatePasswordStrength(password); err != nil {
		return nil, err
	}

	if tier == "" {
		tier = tiers.TierFree
	}
	if !tiers.Valid(tier) {
		return nil, UnknownTierErr
	}

	if _, err := s.repos.Users.GetByEmail(email); err == nil {
		return nil, apperrors.ErrUserExists
	}

	passwordHash, err := users.HashPassword(password)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Register] HashPassword")
	}

	user := &users.User{
		Email:        email,
		PasswordHash: passwordHash,
		Tier:         tier,
		DateJoined:   s.nowTime(),
	}
	if err := s.repos.Users.Upsert(user); err != nil {
		return nil, errors.Wrap(err, "[Service.Register] Upsert")
	}

	return user, nil
}

// Login checks the credentials, issues a token pair and tracks a new session
// for the user.
func (s *Service) Login(email, password string) (*TokenPair, error) {
	user, err := s.repos.Users.GetByEmail(strings.TrimSpace(email))
	if err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !users.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.tokens.CreateAccessToken(user.ID, user.Tier)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] CreateAccessToken")
	}

	refreshToken, err := s.tokens.CreateRefreshToken(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "[Service.Login] CreateRefreshToken")
	}

	sessionID := uuid.New().String()
	if err := s.repos.Sessions.Track(user.ID, sessionID); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] Sessions.Track")
	}

	user.LastLogin = s.nowTime()
	if err := s.repos.Users.Upsert(user); err != nil {
		return nil, errors.Wrap(err, "[Service.Login] Upsert")
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    int(s.tokens.AccessTokenExpiry().Seconds()),
		SessionID:    sessionID,
	}, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *Service) Refresh(refreshToken string) (string, error) {
	return s.tokens.RefreshAccessToken(refreshToken)
}

// Logout revokes the presented access token. Other tokens held by the same
// user stay valid until they expire or are revoked individually.
func (s *Service) Logout(rawAccessToken string) error {
	return s.tokens.Revoke(rawAccessToken)
}

// LogoutAll drops every tracked session for the user. Outstanding tokens are
// not blacklisted and remain valid until natural expiry.
func (s *Service) LogoutAll(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return errors.New("[Service.LogoutAll] userID is required")
	}
	return s.repos.Sessions.DeleteUser(userID)
}

// TrackSession records activity on a session, refreshing its last-activity
// timestamp.
func (s *Service) TrackSession(userID, sessionID string) error {
	return s.repos.Sessions.Track(userID, sessionID)
}
