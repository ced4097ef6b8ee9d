package querycache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Store.Get when a key is absent or expired.
var ErrMiss = errors.New("querycache: miss")

// Store persists encoded entries. Keys are full cache keys.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// DeletePrefix removes key prefix and everything below it.
	DeletePrefix(ctx context.Context, prefix string) error

	Ping(ctx context.Context) error
}
