// Package statestore persists the small amount of client state that survives
// a restart: the auth token and the shopping cart.
package statestore

import (
	"context"
	"errors"
)

// Well-known keys.
const (
	KeyToken = "token"
	KeyCart  = "cart"
)

// ErrNotFound indicates the key has no stored value.
var ErrNotFound = errors.New("statestore: not found")

// Store is a minimal string key/value store.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
