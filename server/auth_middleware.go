package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/mingusapp/go-token-service/tiers"
	"github.com/rs/zerolog/log"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyUserID stores the authenticated user ID
	ContextKeyUserID ContextKey = "user_id"
	// ContextKeyTier stores the authenticated user's subscription tier
	ContextKeyTier ContextKey = "tier"
	// ContextKeyClaims stores parsed token claims
	ContextKeyClaims ContextKey = "claims"
	// ContextKeyRawToken stores the presented bearer token value
	ContextKeyRawToken ContextKey = "raw_token"
)

// RequireAuth is middleware that validates a Bearer access token and injects
// the caller's identity into the request context. A token close to expiry is
// still accepted; a replacement is minted and returned in the
// X-Refreshed-Token response header.
func (s *Server) RequireAuth() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			rawToken, ok := bearerToken(r)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authorization header required")
				return
			}

			result := s.tokens.Validate(rawToken)
			if !result.Valid {
				writeError(w, http.StatusUnauthorized, "unauthorized", result.Reason)
				return
			}

			if result.RotationNeeded {
				replacement, err := s.tokens.CreateAccessToken(result.Claims.Subject, result.Claims.Tier)
				if err != nil {
					log.Error().Err(err).Msg("failed to mint replacement token")
				} else {
					w.Header().Set(RotatedTokenHeader, replacement)
				}
			}

			ctx := context.WithValue(r.Context(), ContextKeyUserID, result.Claims.Subject)
			ctx = context.WithValue(ctx, ContextKeyTier, result.Claims.Tier)
			ctx = context.WithValue(ctx, ContextKeyClaims, result.Claims)
			ctx = context.WithValue(ctx, ContextKeyRawToken, rawToken)

			next(w, r.WithContext(ctx))
		}
	}
}

// RequireTier is middleware that checks the authenticated caller's
// subscription tier against a required minimum. Must be chained after
// RequireAuth. A tier failure is an authorization error (403), reported
// separately from authentication failures.
func (s *Server) RequireTier(minimum tiers.Tier) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			current, ok := r.Context().Value(ContextKeyTier).(tiers.Tier)
			if !ok {
				writeError(w, http.StatusForbidden, "forbidden", "no subscription tier found")
				return
			}

			if !tiers.Meets(current, minimum) {
				writeJSON(w, http.StatusForbidden, map[string]any{
					"error":             "insufficient_tier",
					"error_description": "insufficient subscription tier",
					"required_tier":     minimum,
					"current_tier":      current,
				})
				return
			}

			next(w, r)
		}
	}
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Absence or a malformed prefix is rejected before validation runs.
func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
