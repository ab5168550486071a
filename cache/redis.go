package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	redis redis.Cmdable
	ttl   time.Duration
}

// NewRedis keeps values in redis under "session:<id>:<key>". A ttl of 0
// means values do not expire.
func NewRedis(r redis.Cmdable, ttl time.Duration) Cache {
	return &redisCache{redis: r, ttl: ttl}
}

// Dial connects to the redis server at url (redis://host:port/db) and checks
// that it answers.
func Dial(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	return client, nil
}

func (c *redisCache) Get(ctx context.Context, session, key string) ([]byte, bool, error) {
	v, err := c.redis.Get(ctx, sessionKey(session, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("error reading %s from redis: %w", key, err)
	}
	return v, true, nil
}

func (c *redisCache) Set(ctx context.Context, session, key string, value []byte) error {
	if err := c.redis.Set(ctx, sessionKey(session, key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("error writing %s to redis: %w", key, err)
	}
	return nil
}
