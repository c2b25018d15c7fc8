package errors

import (
	"errors"
	"fmt"
)

// Common error types for the token authentication service
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")

	// Token errors
	ErrInvalidToken        = errors.New("invalid token")
	ErrTokenExpired        = errors.New("token expired")
	ErrTokenBlacklisted    = errors.New("token blacklisted")
	ErrWrongTokenType      = errors.New("wrong token type")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	// Authorization errors
	ErrInsufficientTier = errors.New("insufficient subscription tier")

	// Session errors
	ErrSessionNotFound = errors.New("session not found")

	// Configuration errors
	ErrMissingSigningKey    = errors.New("signing key is not configured")
	ErrUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
