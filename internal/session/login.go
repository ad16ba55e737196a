package session

import (
	"context"
	"fmt"
)

// Roles known to the client.
const (
	RoleAdmin            = "ADMIN"
	RoleWarehouseManager = "WAREHOUSE_MANAGER"
	RoleClient           = "CLIENT"
)

// View names the landing view chosen after login.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewHome      View = "home"
)

// Authenticator exchanges credentials for an access token.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// Login authenticates against the remote API, stores the token and returns
// the landing view for the decoded role. A failed login stores nothing.
func (m *Manager) Login(ctx context.Context, auth Authenticator, email, password string) (View, error) {
	token, err := auth.Login(ctx, email, password)
	if err != nil {
		return "", fmt.Errorf("session: login: %w", err)
	}
	role, err := DecodeRole(token)
	if err != nil {
		return "", err
	}
	if err := m.SetToken(ctx, token); err != nil {
		return "", err
	}
	return LandingFor(role), nil
}

// LandingFor maps the role claim to the post-login view.
func LandingFor(role string) View {
	switch role {
	case RoleAdmin, RoleWarehouseManager:
		return ViewDashboard
	default:
		return ViewHome
	}
}
