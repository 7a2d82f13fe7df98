package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Client wraps redis.Client but fails safe by swallowing connectivity errors.
// A nil *Client is valid and behaves as an always-empty cache.
type Client struct {
	client *redis.Client
}

// New creates a new Redis client from a redis:// URL. An empty URL yields a
// nil client, which disables caching.
func New(redisURL string) (*Client, error) {
	if redisURL == "" {
		return nil, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	return &Client{client: redis.NewClient(opts)}, nil
}

// Enabled reports whether a Redis connection is configured.
func (c *Client) Enabled() bool {
	return c != nil && c.client != nil
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Ping(ctx).Err()
}

// Get returns value or nil if missing or redis unavailable.
func (c *Client) Get(ctx context.Context, key string) ([]byte, error) {
	if !c.Enabled() {
		return nil, nil
	}
	res, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		// fail safe: behave like cache miss
		log.Debug().Err(err).Str("key", key).Msg("cache get failed")
		return nil, nil
	}
	return res, nil
}

// Set stores value with TTL, ignoring redis errors.
func (c *Client) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return nil
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		// fail safe: ignore redis errors
		log.Debug().Err(err).Str("key", key).Msg("cache set failed")
		return nil
	}
	return nil
}

// SetStrict stores value with TTL and reports redis errors. Use it for
// state that must not be silently lost.
func (c *Client) SetStrict(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !c.Enabled() {
		return errors.New("cache: redis not configured")
	}
	if err := c.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}

// Delete removes keys, ignoring redis errors.
func (c *Client) Delete(ctx context.Context, keys ...string) error {
	if !c.Enabled() || len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		log.Debug().Err(err).Strs("keys", keys).Msg("cache delete failed")
		return nil
	}
	return nil
}

// GetJSON decodes a cached JSON value into dst. It reports false on a miss or
// when the cached payload cannot be decoded.
func (c *Client) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	data, _ := c.Get(ctx, key)
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dst) == nil
}

// SetJSON encodes v as JSON and stores it with TTL.
func (c *Client) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if !c.Enabled() {
		return
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return
	}
	_ = c.Set(ctx, key, payload, ttl)
}

// Close releases the connection pool.
func (c *Client) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
