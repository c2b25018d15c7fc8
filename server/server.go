package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/mingusapp/go-token-service/auth"
	"github.com/mingusapp/go-token-service/internal/config"
	"github.com/mingusapp/go-token-service/token"
	"github.com/rs/zerolog/log"
)

type Server struct {
	env    string // Environment (e.g., "DEV", "production")
	mux    *http.ServeMux
	routes []string
	config config.Config
	auth   *auth.Service
	tokens *token.Manager
	repos  auth.Repos
}

func New(cfg config.Config, repos auth.Repos) (*Server, error) {
	signer, err := token.NewHMACSigner(cfg.GetJWTSecret(), cfg.GetJWTAlgorithm())
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create signer: %w", err)
	}

	tokens := token.New(signer,
		token.WithTokenExpiry(cfg.GetAccessTokenTTL(), cfg.GetRefreshTokenTTL()),
		token.WithRotationThreshold(cfg.GetRotationThreshold()),
	)

	authService, err := auth.NewService(repos, tokens)
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to create auth service: %w", err)
	}

	s := &Server{
		mux:    http.NewServeMux(),
		config: cfg,
		auth:   authService,
		tokens: tokens,
		repos:  repos,
	}
	s.env = cfg.GetEnv()

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	var displayMethod string
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		displayMethod = color + paddedMethod + ResetColor
	} else {
		displayMethod = Gray + paddedMethod + ResetColor
	}
	log.Info().Msgf("[%-19s] %s", displayMethod, path)
}
