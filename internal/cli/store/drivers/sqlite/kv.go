package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/zamanihq/dashboard/internal/cli/store"
)

type kvRepo struct {
	db dbtx
}

func (r *kvRepo) Get(ctx context.Context, key string) (store.Entry, error) {
	var value, updated string
	err := r.db.QueryRowContext(ctx,
		`SELECT value, updated_at FROM kv WHERE key = ?`, key,
	).Scan(&value, &updated)
	if err != nil {
		return store.Entry{}, mapNotFound(err)
	}
	return entry(key, value, updated)
}

func (r *kvRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(time.RFC3339Nano),
	)
	return err
}

func (r *kvRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	return err
}

func (r *kvRepo) List(ctx context.Context) ([]store.Entry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []store.Entry
	for rows.Next() {
		var key, value, updated string
		if err := rows.Scan(&key, &value, &updated); err != nil {
			return nil, err
		}
		e, err := entry(key, value, updated)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func entry(key, value, updated string) (store.Entry, error) {
	at, err := time.Parse(time.RFC3339Nano, updated)
	if err != nil {
		return store.Entry{}, fmt.Errorf("kv %q: parse updated_at: %w", key, err)
	}
	return store.Entry{Key: key, Value: value, UpdatedAt: at}, nil
}
