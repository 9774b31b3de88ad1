package intelligence

import (
	"context"
	"time"

	"amedick/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const suggestionPrefix = "ai:suggest:"

// RedisSuggestionCache remembers completions for identical input. A nil cache
// or a Redis failure behaves like a miss.
type RedisSuggestionCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSuggestionCache(client *redis.Client, ttl time.Duration) *RedisSuggestionCache {
	return &RedisSuggestionCache{client: client, ttl: ttl}
}

func (c *RedisSuggestionCache) key(text string) string {
	return suggestionPrefix + utils.HashToken(text)
}

func (c *RedisSuggestionCache) Get(ctx context.Context, text string) (string, bool) {
	if c == nil || c.client == nil {
		return "", false
	}
	val, err := c.client.Get(ctx, c.key(text)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		utils.GetLogger().Warn("Suggestion cache read failed", zap.Error(err))
		return "", false
	}
	return val, true
}

func (c *RedisSuggestionCache) Set(ctx context.Context, text, suggestion string) {
	if c == nil || c.client == nil || suggestion == "" {
		return
	}
	if err := c.client.Set(ctx, c.key(text), suggestion, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("Suggestion cache write failed", zap.Error(err))
	}
}
