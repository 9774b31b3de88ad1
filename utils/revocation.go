package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const revokedPrefix = "revoked:"

// RedisRevocationStore is a denylist of logged-out tokens, keyed by token hash.
type RedisRevocationStore struct {
	Client *redis.Client
}

func NewRedisRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{Client: client}
}

// Revoke denylists the token until it would have expired anyway.
func (s *RedisRevocationStore) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.Client.Set(ctx, revokedPrefix+HashToken(token), 1, ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token was logged out.
func (s *RedisRevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.Client.Exists(ctx, revokedPrefix+HashToken(token)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check token revocation: %w", err)
	}
	return n > 0, nil
}
