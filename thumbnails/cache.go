package thumbnails

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gebo/config"

	"github.com/redis/go-redis/v9"
)

// Cache stores generated image URLs by key
type Cache interface {
	Get(ctx context.Context, key string) ([]string, bool)
	Set(ctx context.Context, key string, urls []string)
}

// RedisCache is a Cache backed by Redis string keys with a TTL
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache wraps a connected client
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client, ttl: config.ThumbnailCacheTTL}
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]string, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Warning: thumbnail cache read failed: %v", err)
		}
		return nil, false
	}

	var urls []string
	if err := json.Unmarshal(raw, &urls); err != nil || len(urls) == 0 {
		return nil, false
	}
	return urls, true
}

func (c *RedisCache) Set(ctx context.Context, key string, urls []string) {
	b, err := json.Marshal(urls)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, b, c.ttl).Err(); err != nil {
		log.Printf("Warning: thumbnail cache write failed: %v", err)
	}
}
