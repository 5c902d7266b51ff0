// Copyright (c) 2026 ArtDistrict. All rights reserved.
// Author: dmitry.mustk@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/DmitryMustk/artdistrict/internal/platform/apperr"
	"github.com/DmitryMustk/artdistrict/internal/platform/constants"
)

// RedisRefreshTokenRepository implements [RefreshTokenRepository] on Redis.
//
// Expiry is delegated to Redis TTLs, so there is no sweeping job: an
// expired refresh token simply stops resolving.
type RedisRefreshTokenRepository struct {
	client *redis.Client
}

func NewRedisRefreshTokenRepository(client *redis.Client) *RedisRefreshTokenRepository {
	return &RedisRefreshTokenRepository{client: client}
}

func (repository *RedisRefreshTokenRepository) Set(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixRefreshToken + tokenHash
	if err := repository.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("auth: failed to store refresh token: %w", err)
	}
	return nil
}

func (repository *RedisRefreshTokenRepository) Get(ctx context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixRefreshToken + tokenHash

	userID, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.Unauthorized("Invalid or expired refresh token")
		}
		return "", fmt.Errorf("auth: failed to resolve refresh token: %w", err)
	}
	return userID, nil
}

func (repository *RedisRefreshTokenRepository) Delete(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixRefreshToken + tokenHash
	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("auth: failed to delete refresh token: %w", err)
	}
	return nil
}
