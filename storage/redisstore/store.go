// Package redisstore is a Redis backed storage.Store, for deployments where the
// redirect may land on a different process than the one that built the request.
package redisstore

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jrsteele09/go-oauth2-client/storage"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultKeyPrefix namespaces state keys.
	DefaultKeyPrefix = "oauth2:state:"

	// DefaultTTL bounds how long an authorization attempt may stay pending.
	DefaultTTL = 15 * time.Minute
)

var _ storage.Store[struct{}] = (*Store[struct{}])(nil)

// Store keeps JSON encoded values in Redis. Drop uses GETDEL so concurrent drops of
// the same key are resolved by Redis and only one caller receives the value.
type Store[V any] struct {
	client    redis.UniversalClient
	keyPrefix string
	ttl       time.Duration
}

type Option[V any] func(*Store[V])

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix[V any](prefix string) Option[V] {
	return func(s *Store[V]) {
		s.keyPrefix = prefix
	}
}

// WithTTL overrides DefaultTTL. Zero disables expiry.
func WithTTL[V any](ttl time.Duration) Option[V] {
	return func(s *Store[V]) {
		s.ttl = ttl
	}
}

// New creates a store on an existing client. Passing a client connected to
// miniredis is how the store is tested.
func New[V any](client redis.UniversalClient, opts ...Option[V]) *Store[V] {
	s := &Store[V]{
		client:    client,
		keyPrefix: DefaultKeyPrefix,
		ttl:       DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Connect parses a redis:// URL and pings the server before returning the store.
func Connect[V any](ctx context.Context, redisURL string, opts ...Option[V]) (*Store[V], error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, errors.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "ping redis")
	}
	return New(client, opts...), nil
}

func (s *Store[V]) key(k string) string {
	return s.keyPrefix + k
}

func (s *Store[V]) Set(ctx context.Context, key string, value V) (V, bool, error) {
	var zero V
	if key == "" {
		return zero, false, storage.ErrEmptyKey
	}

	data, err := json.Marshal(value)
	if err != nil {
		return zero, false, errors.Wrap(err, "encode value")
	}

	prevRaw, err := s.client.SetArgs(ctx, s.key(key), data, redis.SetArgs{Get: true, TTL: s.ttl}).Result()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, errors.Wrapf(err, "redis set %s", key)
	}

	previous, err := decode[V](prevRaw)
	if err != nil {
		return zero, true, err
	}
	return previous, true, nil
}

func (s *Store[V]) Get(ctx context.Context, key string) (V, error) {
	var zero V
	if key == "" {
		return zero, storage.ErrEmptyKey
	}

	raw, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return zero, storage.ErrNotFound
	}
	if err != nil {
		return zero, errors.Wrapf(err, "redis get %s", key)
	}
	return decode[V](raw)
}

func (s *Store[V]) Drop(ctx context.Context, key string) (V, error) {
	var zero V
	if key == "" {
		return zero, storage.ErrEmptyKey
	}

	raw, err := s.client.GetDel(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return zero, storage.ErrNotFound
	}
	if err != nil {
		return zero, errors.Wrapf(err, "redis getdel %s", key)
	}
	return decode[V](raw)
}

func (s *Store[V]) Has(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, storage.ErrEmptyKey
	}

	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, errors.Wrapf(err, "redis exists %s", key)
	}
	return n > 0, nil
}

func decode[V any](raw string) (V, error) {
	var v V
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return v, errors.Wrap(err, "decode value")
	}
	return v, nil
}
