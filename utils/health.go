package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Mongo     bool      `json:"mongo"`
	Redis     []bool    `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

func checkHealth(ctx context.Context, redisClients []*redis.Client, mongoClient *mongo.Client) HealthStatus {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	redisHealth := make([]bool, 0, len(redisClients))
	for _, client := range redisClients {
		redisHealth = append(redisHealth, client.Ping(ctx).Err() == nil)
	}
	return HealthStatus{
		Mongo:     mongoClient != nil && mongoClient.Ping(ctx, nil) == nil,
		Redis:     redisHealth,
		CheckedAt: time.Now(),
	}
}

// StartHealthMonitor takes a snapshot immediately and then every interval until ctx is done.
func StartHealthMonitor(ctx context.Context, interval time.Duration, redisClients []*redis.Client, mongoClient *mongo.Client) {
	update := func() {
		status := checkHealth(ctx, redisClients, mongoClient)
		mu.Lock()
		currentHealth = status
		mu.Unlock()
	}
	update()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				update()
			}
		}
	}()
}
