package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Auth Routes
	RouteAuthRegister  = "/auth/register"
	RouteAuthLogin     = "/auth/login"
	RouteAuthRefresh   = "/auth/refresh"
	RouteAuthLogout    = "/auth/logout"
	RouteAuthLogoutAll = "/auth/logout-all"
	RouteAuthProfile   = "/auth/profile"

	// Tier-gated API Routes
	RouteAPIInsights = "/api/insights"
)

// RotatedTokenHeader carries a transparent replacement token when the
// presented one is close to expiry.
const RotatedTokenHeader = "X-Refreshed-Token"
