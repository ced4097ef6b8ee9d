// Package state keeps the CLI session between invocations.
package state

import (
	"context"
	"errors"

	"github.com/zamanihq/dashboard/internal/cli/store"
)

const (
	KeyToken    = "token"
	KeyRedirect = "redirectAfterLogin"
)

// Session is a zamanisdk.SessionProvider and zamanisdk.RedirectStore backed by
// the local state store.
type Session struct {
	store store.Store
}

func NewSession(s store.Store) *Session {
	return &Session{store: s}
}

func (s *Session) Token(ctx context.Context) (string, error) {
	return get(ctx, s.store.KV(), KeyToken)
}

func (s *Session) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return s.store.KV().Delete(ctx, KeyToken)
	}
	return s.store.KV().Set(ctx, KeyToken, token)
}

// Clear forgets the token and any pending redirect.
func (s *Session) Clear(ctx context.Context) error {
	return s.store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.KV().Delete(ctx, KeyToken); err != nil {
			return err
		}
		return tx.KV().Delete(ctx, KeyRedirect)
	})
}

func (s *Session) SetRedirectAfterLogin(ctx context.Context, target string) error {
	return s.store.KV().Set(ctx, KeyRedirect, target)
}

// TakeRedirectAfterLogin reads and deletes the redirect in one transaction.
func (s *Session) TakeRedirectAfterLogin(ctx context.Context) (string, error) {
	var target string
	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		v, err := get(ctx, tx.KV(), KeyRedirect)
		if err != nil || v == "" {
			return err
		}
		target = v
		return tx.KV().Delete(ctx, KeyRedirect)
	})
	if err != nil {
		return "", err
	}
	return target, nil
}

func get(ctx context.Context, kv store.KV, key string) (string, error) {
	e, err := kv.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}
