// Package store persists the CLI's client state: the session token and the
// page to return to after login.
package store

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("store: not found")

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so transactions cannot be nested by accident.
type Store interface {
	KV() KV

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// Entry is one stored value.
type Entry struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

type KV interface {
	// Get returns the entry for key or ErrNotFound.
	Get(ctx context.Context, key string) (Entry, error)

	// Set inserts or replaces the value of key.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// List returns every entry ordered by key.
	List(ctx context.Context) ([]Entry, error)
}
