// Package cache holds the key-value cache used for unread-message badges.
package cache

import (
	"context"
	"errors"
	"time"
)

// Cache is the minimal contract the services rely on.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns ErrMiss when the key is absent.
	Get(ctx context.Context, key string) (string, error)

	// Set stores value with ttl; ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	// Del removes keys and returns how many existed.
	Del(ctx context.Context, keys ...string) (int64, error)

	Ping(ctx context.Context) error
	Close() error
}

var ErrMiss = errors.New("cache: miss")
