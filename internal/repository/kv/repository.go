package kv

import (
	"context"
	"errors"

	"storefront/internal/domain"
)

// ErrNotFound is returned by Get when the key holds no value.
var ErrNotFound = domain.ErrNotFound

// Store is durable key-value storage for text values, the server-side
// counterpart of the browser's local storage.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IsNotFound reports whether err means the key is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
