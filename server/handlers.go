package server

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/mingusapp/go-token-service/internal/errors"
	"github.com/mingusapp/go-token-service/tiers"
	"github.com/mingusapp/go-token-service/token"
	"github.com/rs/zerolog/log"
)

type registerRequest struct {
	Email    string     `json:"email"`
	Password string     `json:"password"`
	Tier     tiers.Tier `json:"tier,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type refreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// RegisterHandler creates a new user account and returns the issued token
// pair so registration doubles as a first login.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
			return
		}

		if _, err := s.auth.Register(req.Email, req.Password, req.Tier); err != nil {
			switch {
			case apperrors.Is(err, apperrors.ErrUserExists):
				writeError(w, http.StatusConflict, "user_exists", err.Error())
			default:
				writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			}
			return
		}

		pair, err := s.auth.Login(req.Email, req.Password)
		if err != nil {
			log.Error().Err(err).Msg("login after registration failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to issue tokens")
			return
		}

		writeJSON(w, http.StatusCreated, pair)
	}
}

func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
			return
		}

		pair, err := s.auth.Login(req.Email, req.Password)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
			return
		}

		writeJSON(w, http.StatusOK, pair)
	}
}

func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "malformed JSON body")
			return
		}

		accessToken, err := s.auth.Refresh(req.RefreshToken)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid refresh token")
			return
		}

		writeJSON(w, http.StatusOK, refreshResponse{
			AccessToken: accessToken,
			TokenType:   "bearer",
			ExpiresIn:   int(s.tokens.AccessTokenExpiry().Seconds()),
		})
	}
}

// LogoutHandler revokes the presented access token.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawToken, ok := r.Context().Value(ContextKeyRawToken).(string)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authorization header required")
			return
		}

		if err := s.auth.Logout(rawToken); err != nil {
			log.Error().Err(err).Msg("logout failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to revoke token")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// LogoutAllHandler drops every tracked session for the authenticated user.
func (s *Server) LogoutAllHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(ContextKeyUserID).(string)
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "authorization header required")
			return
		}

		if err := s.auth.LogoutAll(userID); err != nil {
			log.Error().Err(err).Msg("logout-all failed")
			writeError(w, http.StatusInternalServerError, "internal_error", "failed to drop sessions")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ProfileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(ContextKeyUserID).(string)

		user, err := s.repos.Users.GetByID(userID)
		if err != nil {
			writeError(w, http.StatusNotFound, "not_found", "user not found")
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}

// InsightsHandler serves premium financial insights. Reaching it requires
// passing RequireAuth and RequireTier(premium).
func (s *Server) InsightsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, _ := r.Context().Value(ContextKeyClaims).(*token.Claims)

		writeJSON(w, http.StatusOK, map[string]any{
			"user_id": claims.Subject,
			"tier":    claims.Tier,
			"insights": []string{
				"spending_trend",
				"savings_forecast",
				"job_security_outlook",
			},
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("failed to encode response body")
	}
}

func writeError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]string{
		"error":             code,
		"error_description": description,
	})
}
