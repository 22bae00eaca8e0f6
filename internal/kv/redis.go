package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrEmptyRedisURL   = errors.New("redis url is required")
	ErrInvalidRedisURL = errors.New("redis url must use redis:// or rediss://")
)

const (
	redisConnectAttempts = 3
	redisRetryInterval   = time.Second
)

// Redis stores values in Redis without expiry.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// OpenRedis connects to url and pings it, retrying a few times with a growing
// delay before giving up.
func OpenRedis(ctx context.Context, url, prefix string) (*Redis, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, ErrEmptyRedisURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrInvalidRedisURL
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrInvalidRedisURL, err)
	}
	opts.ReadTimeout = 3 * time.Second
	opts.WriteTimeout = 3 * time.Second
	opts.DialTimeout = 5 * time.Second

	var lastErr error
	for attempt := range redisConnectAttempts {
		client := redis.NewClient(opts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return NewRedis(client, prefix), nil
		}
		_ = client.Close()

		delay, retry := redisRetryDelay(attempt)
		if !retry {
			break
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("connect redis: %w", ctx.Err())
		case <-time.After(delay):
		}
	}
	return nil, fmt.Errorf("connect redis: %w", lastErr)
}

// redisRetryDelay is the wait after failed attempt n. It reports false after
// the last attempt.
func redisRetryDelay(attempt int) (time.Duration, bool) {
	if attempt >= redisConnectAttempts-1 {
		return 0, false
	}
	return time.Duration(attempt+1) * redisRetryInterval, true
}

// NewRedis wraps an existing client. Keys are namespaced with prefix when set.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	return &Redis{
		client: client,
		prefix: strings.TrimSpace(prefix),
	}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping reports whether Redis is reachable.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}
