package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrRedisUnavailable = errors.New("redis unavailable")
	ErrExtendFailed     = errors.New("token extend failed")
)

const (
	sessionTokenPrefix = "session:user:token"
	sessionTokenTTL    = 30 * time.Minute
)

// TokenRepository keeps the latest issued token per user; one active
// session at a time.
type TokenRepository struct{}

func tokenKey(userID string) string {
	return fmt.Sprintf("%s:%s", sessionTokenPrefix, userID)
}

func (r *TokenRepository) Store(ctx context.Context, userID, token string) error {
	if err := Client.Set(ctx, tokenKey(userID), token, sessionTokenTTL).Err(); err != nil {
		return ErrRedisUnavailable
	}
	return nil
}

func (r *TokenRepository) Get(ctx context.Context, userID string) (string, error) {
	token, err := Client.Get(ctx, tokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", ErrRedisUnavailable
	}
	return token, nil
}

// Extend pushes the TTL forward after a successful auth check.
func (r *TokenRepository) Extend(ctx context.Context, userID string) error {
	if _, err := Client.Expire(ctx, tokenKey(userID), sessionTokenTTL).Result(); err != nil {
		return ErrExtendFailed
	}
	return nil
}
