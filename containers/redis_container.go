package containers

import (
	"context"
	"log"

	"github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:7.2-alpine"

// RedisContainer backs the session cache tests.
type RedisContainer struct {
	container *redis.RedisContainer
}

func NewRedisContainer() *RedisContainer {
	container, err := redis.Run(context.Background(), imageFromEnv("TEST_REDIS_IMAGE", redisImage))
	if err != nil {
		log.Fatalf("error starting redis container: %v", err)
	}
	return &RedisContainer{container: container}
}

func (c *RedisContainer) Shutdown() {
	terminate("redis", c.container)
}

// URL is a redis:// url suitable for redis.ParseURL.
func (c *RedisContainer) URL() string {
	u, err := c.container.ConnectionString(context.Background())
	if err != nil {
		log.Fatalf("error getting redis connection string: %v", err)
	}
	return u
}
