// Package resource wraps the Zamani SDK in cached queries and invalidating
// mutations, one family per backend resource. It performs no business
// validation; errors from the SDK are returned unchanged.
package resource

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zamanihq/dashboard/internal/dashboard/querycache"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"github.com/zamanihq/dashboard/pkg/zamanisdk"
)

// Hooks is the entry point to every resource family.
type Hooks struct {
	client *zamanisdk.Client
	cache  *querycache.Cache
}

// New binds client and cache. A nil cache gets a private in-memory one.
func New(client *zamanisdk.Client, cache *querycache.Cache) *Hooks {
	if cache == nil {
		cache = querycache.New(nil)
	}
	return &Hooks{client: client, cache: cache}
}

// Client returns the SDK client the hooks call through.
func (h *Hooks) Client() *zamanisdk.Client { return h.client }

// Cache returns the query cache.
func (h *Hooks) Cache() *querycache.Cache { return h.cache }

// Query is a cached read. It remembers the outcome of its last fetch.
type Query[T any] struct {
	key   querycache.Key
	cache *querycache.Cache
	fetch func(context.Context) (T, error)

	mu      sync.RWMutex
	data    T
	loading bool
	err     error
}

func newQuery[T any](h *Hooks, key querycache.Key, fetch func(context.Context) (T, error)) *Query[T] {
	return &Query[T]{key: key, cache: h.cache, fetch: fetch}
}

// Key returns the cache key of the query.
func (q *Query[T]) Key() querycache.Key { return q.key }

// Fetch returns the cached value when fresh, otherwise calls the backend.
func (q *Query[T]) Fetch(ctx context.Context) (T, error) {
	q.mu.Lock()
	q.loading = true
	q.mu.Unlock()

	v, err := querycache.Fetch(ctx, q.cache, q.key, q.fetch)

	q.mu.Lock()
	defer q.mu.Unlock()
	q.loading = false
	q.err = err
	if err == nil {
		q.data = v
	}
	return v, err
}

// Refetch drops the cached value and fetches again.
func (q *Query[T]) Refetch(ctx context.Context) (T, error) {
	if err := q.cache.Invalidate(ctx, q.key); err != nil {
		slogx.FromContext(ctx).Warn("refetch invalidation failed", "key", q.key.String(), "err", err)
	}
	return q.Fetch(ctx)
}

// Data returns the last successfully fetched value. A failed fetch keeps the
// previous data.
func (q *Query[T]) Data() T {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.data
}

func (q *Query[T]) IsLoading() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.loading
}

func (q *Query[T]) IsError() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.err != nil
}

// Err returns the error of the last fetch, nil after a success.
func (q *Query[T]) Err() error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.err
}

// Mutation is a write that invalidates related queries on success.
type Mutation[In, Out any] struct {
	cache       *querycache.Cache
	do          func(context.Context, In) (Out, error)
	invalidates func(In) []querycache.Key

	pending atomic.Int32
}

func newMutation[In, Out any](
	h *Hooks,
	do func(context.Context, In) (Out, error),
	invalidates ...querycache.Key,
) *Mutation[In, Out] {
	return &Mutation[In, Out]{
		cache:       h.cache,
		do:          do,
		invalidates: func(In) []querycache.Key { return invalidates },
	}
}

// Mutate performs the write. On success the related queries are invalidated;
// an invalidation failure is logged and does not fail the mutation.
func (m *Mutation[In, Out]) Mutate(ctx context.Context, in In) (Out, error) {
	m.pending.Add(1)
	defer m.pending.Add(-1)

	out, err := m.do(ctx, in)
	if err != nil {
		return out, err
	}

	if keys := m.invalidates(in); len(keys) > 0 {
		if err := m.cache.Invalidate(ctx, keys...); err != nil {
			slogx.FromContext(ctx).Warn("mutation invalidation failed", "err", err)
		}
	}
	return out, nil
}

// IsPending reports whether a Mutate call is in progress.
func (m *Mutation[In, Out]) IsPending() bool {
	return m.pending.Load() > 0
}

// Update carries the id and body of an update mutation.
type Update[T any] struct {
	ID  string
	Req T
}

// Nothing is the output of mutations with no response body.
type Nothing struct{}

func noContent[In any](fn func(context.Context, In) error) func(context.Context, In) (Nothing, error) {
	return func(ctx context.Context, in In) (Nothing, error) {
		return Nothing{}, fn(ctx, in)
	}
}
