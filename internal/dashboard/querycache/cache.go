// Package querycache caches query results by key. Concurrent fetches of one
// key are collapsed, entries go stale after a fixed time, and invalidation
// also discards responses that were still in flight.
package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/zamanihq/dashboard/pkg/cryptox"
	"github.com/zamanihq/dashboard/pkg/slogx"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultStaleTime = 30 * time.Second
	DefaultRetention = 5 * time.Minute
)

// entry is the encoded form kept in the Store.
type entry struct {
	Data     json.RawMessage `json:"data"`
	StoredAt time.Time       `json:"storedAt"`
}

// flight is one fetch in progress.
type flight struct {
	stale bool
}

type shared struct {
	store     Store
	staleTime time.Duration
	retention time.Duration
	now       func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	inflight map[string]*flight
}

// Cache is safe for concurrent use. Scoped views share the store and the
// in-flight registry of the Cache they came from.
type Cache struct {
	*shared
	scope string
}

type Option func(*shared)

// WithStaleTime sets how long an entry is served without refetching.
func WithStaleTime(d time.Duration) Option {
	return func(s *shared) { s.staleTime = d }
}

// WithRetention sets how long the store keeps an entry at all.
func WithRetention(d time.Duration) Option {
	return func(s *shared) { s.retention = d }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *shared) { s.now = now }
}

// New returns a cache over store, or over a fresh MemoryStore when store is nil.
func New(store Store, opts ...Option) *Cache {
	if store == nil {
		store = NewMemoryStore()
	}
	s := &shared{
		store:     store,
		staleTime: DefaultStaleTime,
		retention: DefaultRetention,
		now:       time.Now,
		inflight:  make(map[string]*flight),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.retention < s.staleTime {
		s.retention = s.staleTime
	}
	return &Cache{shared: s}
}

// Scoped returns a view whose keys live under scope. The gateway scopes by
// caller so that one user's results are never served to another.
func (c *Cache) Scoped(scope string) *Cache {
	return &Cache{shared: c.shared, scope: scope}
}

// ScopeForToken derives a scope from a bearer token without storing it.
func ScopeForToken(token string) string {
	if token == "" {
		return "anon"
	}
	return cryptox.ShortFingerprint(token, 16)
}

// Ping checks the backing store.
func (c *Cache) Ping(ctx context.Context) error {
	return c.store.Ping(ctx)
}

func (c *Cache) fullKey(k string) string {
	if c.scope == "" {
		return k
	}
	if k == "" {
		return c.scope
	}
	return c.scope + keySep + k
}

// Fetch returns the fresh cached value for key, or calls fn and caches its
// result. Concurrent callers for one key share a single fn call. That call
// keeps the first caller's values but not its cancellation, so one caller
// going away does not fail the others.
func Fetch[T any](ctx context.Context, c *Cache, key Key, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	full := c.fullKey(key.String())
	log := slogx.FromContext(ctx)

	if v, ok := lookup[T](ctx, c, full); ok {
		return v, nil
	}

	v, err, dup := c.group.Do(full, func() (any, error) {
		f := c.begin(full)
		defer c.end(full)

		val, err := fn(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}

		if c.isStale(f) {
			log.Debug("query invalidated in flight, not caching", "key", full)
			return val, nil
		}

		if err := c.put(ctx, full, val); err != nil {
			log.Warn("query cache write failed", "key", full, "err", err)
		}
		return val, nil
	})
	if err != nil {
		return zero, err
	}
	if dup {
		log.Debug("query fetch shared", "key", full)
	}

	out, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("querycache: key %q holds %T", full, v)
	}
	return out, nil
}

// Peek returns the cached value for key regardless of staleness.
func Peek[T any](ctx context.Context, c *Cache, key Key) (T, bool) {
	var zero T
	e, ok := c.get(ctx, c.fullKey(key.String()))
	if !ok {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, false
	}
	return v, true
}

// Invalidate drops every entry under each prefix and marks matching in-flight
// fetches stale so their results are not written back.
func (c *Cache) Invalidate(ctx context.Context, prefixes ...Key) error {
	var errs []error
	for _, p := range prefixes {
		full := c.fullKey(p.String())

		c.mu.Lock()
		for k, f := range c.inflight {
			if matchesPrefix(k, full) {
				f.stale = true
			}
		}
		c.mu.Unlock()

		if err := c.store.DeletePrefix(ctx, full); err != nil {
			errs = append(errs, fmt.Errorf("invalidate %q: %w", full, err))
		}
	}
	return errors.Join(errs...)
}

// Clear drops everything in this cache's scope.
func (c *Cache) Clear(ctx context.Context) error {
	return c.Invalidate(ctx, Key{})
}

func lookup[T any](ctx context.Context, c *Cache, full string) (T, bool) {
	var zero T
	e, ok := c.get(ctx, full)
	if !ok || c.now().Sub(e.StoredAt) >= c.staleTime {
		return zero, false
	}
	var v T
	if err := json.Unmarshal(e.Data, &v); err != nil {
		return zero, false
	}
	return v, true
}

func (c *Cache) get(ctx context.Context, full string) (entry, bool) {
	raw, err := c.store.Get(ctx, full)
	if err != nil {
		if !errors.Is(err, ErrMiss) {
			slogx.FromContext(ctx).Warn("query cache read failed", "key", full, "err", err)
		}
		return entry{}, false
	}
	var e entry
	if err := json.Unmarshal(raw, &e); err != nil {
		return entry{}, false
	}
	return e, true
}

func (c *Cache) put(ctx context.Context, full string, val any) error {
	data, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	raw, err := json.Marshal(entry{Data: data, StoredAt: c.now()})
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	return c.store.Set(ctx, full, raw, c.retention)
}

func (c *Cache) begin(full string) *flight {
	f := &flight{}
	c.mu.Lock()
	c.inflight[full] = f
	c.mu.Unlock()
	return f
}

func (c *Cache) end(full string) {
	c.mu.Lock()
	delete(c.inflight, full)
	c.mu.Unlock()
}

func (c *Cache) isStale(f *flight) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return f.stale
}
