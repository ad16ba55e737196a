package session

import (
	"context"
	"slices"
)

// Decision is the outcome of a route access check.
type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectForbidden
)

// Route declares a guarded view and the roles allowed to open it.
// An empty role set admits any authenticated role.
type Route struct {
	Name         string
	AllowedRoles []string
}

// Guard checks route access against the stored token.
type Guard struct {
	tokens *Manager
}

// NewGuard constructs a Guard.
func NewGuard(tokens *Manager) *Guard {
	return &Guard{tokens: tokens}
}

// Resolve decides where navigation to the route ends. A missing or
// undecodable token redirects to login; a decoded role outside a non-empty
// allow-list redirects to forbidden.
func (g *Guard) Resolve(ctx context.Context, route Route) Decision {
	role, err := g.tokens.Role(ctx)
	if err != nil {
		return RedirectLogin
	}
	if len(route.AllowedRoles) == 0 || slices.Contains(route.AllowedRoles, role) {
		return Allow
	}
	return RedirectForbidden
}
