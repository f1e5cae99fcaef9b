package redis

import (
	"context"
	"errors"
	"time"

	"learnDesk/pkg/apperr"

	"github.com/redis/go-redis/v9"
)

const otpKeyPrefix = "otp:"

// OTPRepository stores one hashed one-time code per login identifier.
// Expiry is delegated to the key TTL, so an expired code simply stops
// existing; a fresh Save for the same identifier replaces any earlier
// code.
type OTPRepository struct {
	client *redis.Client
}

func NewOTPRepository(client *redis.Client) *OTPRepository {
	return &OTPRepository{
		client: client,
	}
}

func (r *OTPRepository) Save(ctx context.Context, identifier, codeHash string, ttl time.Duration) error {
	return r.client.Set(ctx, otpKeyPrefix+identifier, codeHash, ttl).Err()
}

func (r *OTPRepository) Get(ctx context.Context, identifier string) (string, error) {
	hash, err := r.client.Get(ctx, otpKeyPrefix+identifier).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("code not found or expired")
		}
		return "", err
	}

	return hash, nil
}

func (r *OTPRepository) Delete(ctx context.Context, identifier string) error {
	return r.client.Del(ctx, otpKeyPrefix+identifier).Err()
}
