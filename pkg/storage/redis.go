package storage

import (
	"context"
	stderrors "errors"
	"slices"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/shelfplan/pkg/errors"
)

// RedisBackend stores values as plain Redis strings.
type RedisBackend struct {
	client *redis.Client
}

// NewRedisBackend connects to the Redis server at url
// (redis://[user:pass@]host:port/db) and pings it.
func NewRedisBackend(ctx context.Context, url string) (*RedisBackend, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect to redis at %s", opts.Addr)
	}
	return &RedisBackend{client: client}, nil
}

// NewRedisBackendFromClient wraps an existing client.
func NewRedisBackendFromClient(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

// Name returns "redis".
func (b *RedisBackend) Name() string { return "redis" }

// Get retrieves a value.
func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := b.client.Get(ctx, key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, transient(err)
	}
	return data, true, nil
}

// Set stores a value without expiry.
func (b *RedisBackend) Set(ctx context.Context, key string, data []byte) error {
	return transient(b.client.Set(ctx, key, data, 0).Err())
}

// Delete removes a key.
func (b *RedisBackend) Delete(ctx context.Context, key string) error {
	return transient(b.client.Del(ctx, key).Err())
}

// List scans for keys with the given prefix.
func (b *RedisBackend) List(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := b.client.Scan(ctx, 0, escapeGlob(prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, transient(err)
	}
	slices.Sort(keys)
	return keys, nil
}

// Close closes the client.
func (b *RedisBackend) Close() error { return b.client.Close() }

// escapeGlob quotes the characters Redis MATCH patterns treat specially.
func escapeGlob(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '*', '?', '[', ']', '\\':
			sb.WriteByte('\\')
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// transient marks driver errors as retryable unless the context ended.
func transient(err error) error {
	if err == nil || stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Retryable(err)
}

var _ Backend = (*RedisBackend)(nil)
