// Copyright (c) 2026 Cat Café. All rights reserved.

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/catcafe/catcafe/internal/platform/constants"
)

// RedisThrottleRepository implements [ThrottleRepository] on Redis keys with
// a rolling TTL, so lockouts decay on their own without a cleanup job.
type RedisThrottleRepository struct {
	client *redis.Client
}

func NewRedisThrottleRepository(client *redis.Client) *RedisThrottleRepository {
	return &RedisThrottleRepository{client: client}
}

func (repository *RedisThrottleRepository) RecordFailure(ctx context.Context, username string) (int64, error) {
	key := constants.RedisPrefixLoginThrottle + username

	count, err := repository.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_login_throttle_incr_failed: %w", err)
	}

	// Refresh the window on every failure so a slow brute force does not
	// outlive the counter.
	if err := repository.client.Expire(ctx, key, constants.LoginThrottleTTL).Err(); err != nil {
		return 0, fmt.Errorf("redis_login_throttle_expire_failed: %w", err)
	}

	return count, nil
}

func (repository *RedisThrottleRepository) Failures(ctx context.Context, username string) (int64, error) {
	count, err := repository.client.Get(ctx, constants.RedisPrefixLoginThrottle+username).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_login_throttle_get_failed: %w", err)
	}
	return count, nil
}

func (repository *RedisThrottleRepository) Reset(ctx context.Context, username string) error {
	if err := repository.client.Del(ctx, constants.RedisPrefixLoginThrottle+username).Err(); err != nil {
		return fmt.Errorf("redis_login_throttle_reset_failed: %w", err)
	}
	return nil
}
