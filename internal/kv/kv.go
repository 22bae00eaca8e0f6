// Package kv holds the durable string stores the token cache persists to.
package kv

import (
	"context"
	"errors"
)

var ErrClosed = errors.New("kv store is closed")

// Store is a durable string key/value store. Get reports false for absent keys.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}
