package querycache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const scanBatch = 200

// RedisStore keeps entries in Redis under a namespace, so several gateway
// replicas share one cache.
type RedisStore struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisStore wraps client. Every key is stored as "<namespace>:<key>".
func NewRedisStore(client redis.UniversalClient, namespace string) *RedisStore {
	return &RedisStore{client: client, namespace: namespace}
}

// NewRedisClient builds a client for addrs, a cluster client when more than
// one address is given.
func NewRedisClient(addrs []string, password string) redis.UniversalClient {
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    addrs,
		Password: password,
	})
}

func (s *RedisStore) key(k string) string {
	return s.namespace + ":" + k
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// DeletePrefix scans for candidate keys and deletes those that match the
// prefix segment-wise. Cluster clients are scanned master by master.
func (s *RedisStore) DeletePrefix(ctx context.Context, prefix string) error {
	if cc, ok := s.client.(*redis.ClusterClient); ok {
		return cc.ForEachMaster(ctx, func(ctx context.Context, node *redis.Client) error {
			return s.deletePrefixOn(ctx, node, prefix)
		})
	}
	return s.deletePrefixOn(ctx, s.client, prefix)
}

func (s *RedisStore) deletePrefixOn(ctx context.Context, c redis.Cmdable, prefix string) error {
	pattern := s.key(escapeGlob(prefix)) + "*"
	full := s.key("")

	var cursor uint64
	for {
		keys, next, err := c.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}

		// One DEL per key keeps cluster slots apart
		pipe := c.Pipeline()
		queued := 0
		for _, k := range keys {
			if matchesPrefix(strings.TrimPrefix(k, full), prefix) {
				pipe.Del(ctx, k)
				queued++
			}
		}
		if queued > 0 {
			if _, err := pipe.Exec(ctx); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}

		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func escapeGlob(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)
	return r.Replace(s)
}
