package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"amedick/models"

	"github.com/go-redis/redis/v8"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	otpIssuer = "AmedicK"
	otpPeriod = 300
	otpKeyFmt = "otp:signup:%s"

	otpAttemptsKeyFmt = "otp:attempts:%s"
)

var otpOpts = totp.ValidateOpts{
	Period:    otpPeriod,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// NewOTPSecret generates a fresh TOTP secret bound to the account email.
func NewOTPSecret(email string) (string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      otpIssuer,
		AccountName: email,
		Period:      otpPeriod,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate otp secret: %w", err)
	}
	return key.Secret(), nil
}

// OTPCode returns the 6-digit code for secret at t.
func OTPCode(secret string, t time.Time) (string, error) {
	return totp.GenerateCodeCustom(secret, t, otpOpts)
}

// ValidOTP reports whether code matches secret at t, tolerating one period of drift.
func ValidOTP(code, secret string, t time.Time) bool {
	ok, err := totp.ValidateCustom(code, secret, t, otpOpts)
	return err == nil && ok
}

// RedisOTPStore keeps pending signups in Redis; expiry is the key TTL.
type RedisOTPStore struct {
	Client *redis.Client
}

func NewRedisOTPStore(client *redis.Client) *RedisOTPStore {
	return &RedisOTPStore{Client: client}
}

func otpKey(email string) string {
	return fmt.Sprintf(otpKeyFmt, email)
}

// Save stores (or replaces) the pending signup for ttl.
func (s *RedisOTPStore) Save(ctx context.Context, pending models.PendingSignup, ttl time.Duration) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending signup: %w", err)
	}
	if err := s.Client.Set(ctx, otpKey(pending.Email), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save pending signup: %w", err)
	}
	return nil
}

// Get returns the pending signup for email, or nil when none is stored.
func (s *RedisOTPStore) Get(ctx context.Context, email string) (*models.PendingSignup, error) {
	data, err := s.Client.Get(ctx, otpKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to retrieve pending signup: %w", err)
	}
	var pending models.PendingSignup
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending signup: %w", err)
	}
	return &pending, nil
}

// CountAttempt records one verification attempt for email and returns the running total.
// The counter expires after ttl, counted from the first attempt.
func (s *RedisOTPStore) CountAttempt(ctx context.Context, email string, ttl time.Duration) (int, error) {
	key := fmt.Sprintf(otpAttemptsKeyFmt, email)
	n, err := s.Client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count otp attempt: %w", err)
	}
	if n == 1 && ttl > 0 {
		if err := s.Client.Expire(ctx, key, ttl).Err(); err != nil {
			return 0, fmt.Errorf("failed to expire otp attempts: %w", err)
		}
	}
	return int(n), nil
}

// Delete removes the pending signup for email together with its attempt counter.
func (s *RedisOTPStore) Delete(ctx context.Context, email string) error {
	return s.Client.Del(ctx, otpKey(email), fmt.Sprintf(otpAttemptsKeyFmt, email)).Err()
}
