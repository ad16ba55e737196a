// Package session holds the auth token, decodes the role claim and gates
// access to role-restricted views.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/stockroom-erp/stockroom-cli/internal/statestore"
)

var (
	// ErrNoToken indicates no stored credential.
	ErrNoToken = errors.New("session: no token")
	// ErrBadToken indicates the stored token cannot be decoded.
	ErrBadToken = errors.New("session: undecodable token")
)

// TokenSource supplies the bearer token attached to outgoing requests.
// Injecting it keeps API clients free of any global session state.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Manager persists the token and exposes the decoded role claim.
type Manager struct {
	store statestore.Store
}

// NewManager constructs a Manager over the given store.
func NewManager(store statestore.Store) *Manager {
	return &Manager{store: store}
}

// Token returns the stored token, or ErrNoToken.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, err := m.store.Get(ctx, statestore.KeyToken)
	if errors.Is(err, statestore.ErrNotFound) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", fmt.Errorf("session: read token: %w", err)
	}
	return token, nil
}

// SetToken stores the token.
func (m *Manager) SetToken(ctx context.Context, token string) error {
	return m.store.Put(ctx, statestore.KeyToken, token)
}

// Clear removes the stored token.
func (m *Manager) Clear(ctx context.Context) error {
	return m.store.Delete(ctx, statestore.KeyToken)
}

// Role returns the role claim of the stored token. A missing or undecodable
// token yields ErrNoToken / ErrBadToken.
func (m *Manager) Role(ctx context.Context) (string, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	return DecodeRole(token)
}

// Subject returns the subject claim of the stored token.
func (m *Manager) Subject(ctx context.Context) (string, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return "", err
	}
	return decodeClaim(token, "sub")
}

// DecodeRole extracts the role claim without verifying the signature; the
// token only ever proves identity to the server, never to the client.
func DecodeRole(token string) (string, error) {
	return decodeClaim(token, "role")
}

func decodeClaim(token, name string) (string, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrBadToken
	}
	value, ok := claims[name].(string)
	if !ok {
		return "", fmt.Errorf("%w: missing %s claim", ErrBadToken, name)
	}
	return value, nil
}
