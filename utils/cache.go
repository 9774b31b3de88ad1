// File: utils/cache.go
package utils

import (
	"context"
	"log"
	"time"

	"amedick/config"

	"github.com/go-redis/redis/v8"
)

var (
	// CacheClient is the generic cache client.
	CacheClient *redis.Client
	// AuthCacheClient holds the token denylist.
	AuthCacheClient *redis.Client
	// OTPCacheClient holds pending signups awaiting OTP verification.
	OTPCacheClient *redis.Client
)

func newRedisClient(db int, name string) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (%s): %v", name, err)
	}
	return client
}

// InitRedis connects every Redis client the server uses.
func InitRedis() {
	CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
	AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "Auth Cache")
	OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB, "OTP Cache")
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		CacheClient = newRedisClient(config.AppConfig.RedisCacheDB, "Cache")
	}
	return CacheClient
}

// GetAuthCacheClient returns the Redis client for the token denylist.
func GetAuthCacheClient() *redis.Client {
	if AuthCacheClient == nil {
		AuthCacheClient = newRedisClient(config.AppConfig.RedisAuthDB, "Auth Cache")
	}
	return AuthCacheClient
}

// GetOTPCacheClient returns the Redis client for pending signups.
func GetOTPCacheClient() *redis.Client {
	if OTPCacheClient == nil {
		OTPCacheClient = newRedisClient(config.AppConfig.RedisOTPDB, "OTP Cache")
	}
	return OTPCacheClient
}

// RedisClients lists the connected clients for the health monitor.
func RedisClients() []*redis.Client {
	var clients []*redis.Client
	for _, c := range []*redis.Client{CacheClient, AuthCacheClient, OTPCacheClient} {
		if c != nil {
			clients = append(clients, c)
		}
	}
	return clients
}
