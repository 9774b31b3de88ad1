package directory

import (
	"context"
	"encoding/json"
	"time"

	"amedick/models"
	"amedick/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const cacheKey = "directory:doctors"

// Cache holds the public list of bookable doctors. Implementations treat
// failures as misses so the caller falls back to the database.
type Cache interface {
	Get(ctx context.Context) ([]models.DoctorSummary, bool)
	Set(ctx context.Context, doctors []models.DoctorSummary)
	Invalidate(ctx context.Context)
}

type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func (c *RedisCache) Get(ctx context.Context) ([]models.DoctorSummary, bool) {
	val, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		utils.GetLogger().Warn("Directory cache read failed", zap.Error(err))
		return nil, false
	}
	var doctors []models.DoctorSummary
	if err := json.Unmarshal(val, &doctors); err != nil {
		utils.GetLogger().Warn("Directory cache entry corrupt", zap.Error(err))
		return nil, false
	}
	return doctors, true
}

func (c *RedisCache) Set(ctx context.Context, doctors []models.DoctorSummary) {
	data, err := json.Marshal(doctors)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, cacheKey, data, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("Directory cache write failed", zap.Error(err))
	}
}

func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		utils.GetLogger().Warn("Directory cache invalidation failed", zap.Error(err))
	}
}
