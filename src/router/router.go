package router

import (
	"sync"

	"risk-console/src/interfaces"
	"risk-console/src/logger"
)

// -----------------------------------------------------------------------------
// Routes
// -----------------------------------------------------------------------------

type Route struct {
	Path         string
	Name         string
	RequiresAuth bool
}

var (
	RouteLogin      = Route{Path: "/login", Name: "Login", RequiresAuth: false}
	RouteDashboard  = Route{Path: "/dashboard", Name: "Dashboard", RequiresAuth: true}
	RouteAccounts   = Route{Path: "/accounts", Name: "Accounts", RequiresAuth: true}
	RoutePositions  = Route{Path: "/positions", Name: "Positions", RequiresAuth: true}
	RouteRiskAlerts = Route{Path: "/risk-alerts", Name: "RiskAlerts", RequiresAuth: true}
	RouteSettings   = Route{Path: "/settings", Name: "Settings", RequiresAuth: true}
)

// DefaultRoute is the authenticated landing route; "/" resolves here.
var DefaultRoute = RouteDashboard

var routeTable = []Route{
	RouteLogin,
	RouteDashboard,
	RouteAccounts,
	RoutePositions,
	RouteRiskAlerts,
	RouteSettings,
}

// -----------------------------------------------------------------------------
// SessionSource exposes the live session token; the state store satisfies it.
// -----------------------------------------------------------------------------

type SessionSource interface {
	SessionToken() string
}

// -----------------------------------------------------------------------------
// Navigator - intercepts every route transition and gates it on session
// validity before any view work can happen.
// -----------------------------------------------------------------------------

type Navigator struct {
	Tokens interfaces.ITokenStore
	Logger *logger.Logger

	mu      sync.Mutex
	session SessionSource
	current Route
	routes  map[string]Route
}

// -----------------------------------------------------------------------------

func NewNavigator(tokens interfaces.ITokenStore, log *logger.Logger) *Navigator {
	routes := make(map[string]Route, len(routeTable))
	for _, r := range routeTable {
		routes[r.Path] = r
	}

	return &Navigator{
		Tokens:  tokens,
		Logger:  log,
		current: RouteLogin,
		routes:  routes,
	}
}

// -----------------------------------------------------------------------------

// BindSession attaches the live session source once the store exists. Until
// then the guard falls back to the durable token store alone.
func (n *Navigator) BindSession(src SessionSource) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.session = src
}

// -----------------------------------------------------------------------------

// Resolve maps a path to its route; "/" and unknown paths land on the
// default route (the guard still applies afterwards).
func (n *Navigator) Resolve(path string) Route {
	if r, ok := n.routes[path]; ok {
		return r
	}
	return DefaultRoute
}

// -----------------------------------------------------------------------------

// Navigate runs the guard against the target and commits the effective
// route, which may be a redirect. The check is synchronous; no protected
// content is ever current without a token.
func (n *Navigator) Navigate(path string) Route {
	target := n.Resolve(path)
	effective := n.guard(target)

	n.mu.Lock()
	n.current = effective
	n.mu.Unlock()

	if effective.Path != target.Path {
		n.Logger.Info("Redirected %s -> %s", target.Path, effective.Path)
	}
	return effective
}

// -----------------------------------------------------------------------------

// guard decides the effective route for a transition:
//   - protected target without a token redirects to login
//   - login target with a token redirects to the default landing route
//   - everything else passes through unchanged
func (n *Navigator) guard(target Route) Route {
	authenticated := n.hasToken()

	if target.RequiresAuth && !authenticated {
		return RouteLogin
	}
	if target.Path == RouteLogin.Path && authenticated {
		return DefaultRoute
	}
	return target
}

// -----------------------------------------------------------------------------

// hasToken reads the session state first and falls back to the durable
// token store (covers the boot window before the session is restored).
func (n *Navigator) hasToken() bool {
	n.mu.Lock()
	session := n.session
	n.mu.Unlock()

	if session != nil && session.SessionToken() != "" {
		return true
	}

	token, err := n.Tokens.Get()
	if err != nil {
		n.Logger.Warning("Token store read failed during guard check: %v", err)
		return false
	}
	return token != ""
}

// -----------------------------------------------------------------------------

// ForceLogin is the gateway's escape hatch on authentication failure: the
// user lands on the login route unconditionally.
func (n *Navigator) ForceLogin() {
	n.mu.Lock()
	n.current = RouteLogin
	n.mu.Unlock()
	n.Logger.Info("Session expired, routing to login")
}

// -----------------------------------------------------------------------------

func (n *Navigator) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
