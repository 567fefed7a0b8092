package repository

import (
	"context"
	"time"

	"dexboard/backend/pkg/redis"
)

// TokenRepository records revoked session tokens in Redis until they would have expired anyway
type TokenRepository struct {
	redis *redis.Client
}

// NewTokenRepository creates a new token repository
func NewTokenRepository(redisClient *redis.Client) *TokenRepository {
	return &TokenRepository{
		redis: redisClient,
	}
}

// Revoke blacklists a token id for ttl. A non positive ttl is a no-op since the token is already dead.
func (r *TokenRepository) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.redis.Set(ctx, redis.RevokedTokenKey(tokenID), "1", ttl)
}

// IsRevoked checks whether a token id was blacklisted
func (r *TokenRepository) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return r.redis.Exists(ctx, redis.RevokedTokenKey(tokenID))
}
