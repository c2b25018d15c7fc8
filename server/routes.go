package server

import "github.com/mingusapp/go-token-service/tiers"

func (s *Server) initRoutes() {
	s.RegisterRouteHandler("POST "+RouteAuthRegister, ChainMiddleware(s.RegisterHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), s.APIMiddleware()...))

	// Authenticated routes
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("POST "+RouteAuthLogoutAll, ChainMiddleware(s.LogoutAllHandler(), s.APIMiddleware(s.RequireAuth())...))
	s.RegisterRouteHandler("GET "+RouteAuthProfile, ChainMiddleware(s.ProfileHandler(), s.APIMiddleware(s.RequireAuth())...))

	// Tier-gated routes: authenticate first, then authorize by tier
	s.RegisterRouteHandler("GET "+RouteAPIInsights, ChainMiddleware(s.InsightsHandler(), s.APIMiddleware(s.RequireAuth(), s.RequireTier(tiers.TierPremium))...))
}
