package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	countKeyPrefix = "vote:cnt:post" // hash {likes, dislikes} per post
	lockKeyPrefix  = "lock:vote:post"
	countTTL       = 24 * time.Hour
	lockTTL        = 300 * time.Millisecond
)

// VoteCountRepository caches a post's like/dislike counters; the MySQL
// post row stays the source of truth and the cache is rebuilt lazily.
type VoteCountRepository struct {
	countTTL time.Duration
}

func NewVoteCountRepository() *VoteCountRepository {
	return &VoteCountRepository{countTTL: countTTL}
}

func countKey(postID string) string {
	return fmt.Sprintf("%s:%s", countKeyPrefix, postID)
}

// GetCached reads both counters; ok=false means cache miss.
func (r *VoteCountRepository) GetCached(ctx context.Context, postID string) (likes, dislikes int64, ok bool, err error) {
	vals, err := Client.HMGet(ctx, countKey(postID), "likes", "dislikes").Result()
	if err != nil {
		return 0, 0, false, err
	}
	if vals[0] == nil || vals[1] == nil {
		return 0, 0, false, nil
	}
	if _, err = fmt.Sscan(vals[0].(string), &likes); err != nil {
		return 0, 0, false, err
	}
	if _, err = fmt.Sscan(vals[1].(string), &dislikes); err != nil {
		return 0, 0, false, err
	}
	return likes, dislikes, true, nil
}

// Set overwrites both counters and refreshes the TTL.
func (r *VoteCountRepository) Set(ctx context.Context, postID string, likes, dislikes int64) error {
	k := countKey(postID)
	if err := Client.HSet(ctx, k, "likes", likes, "dislikes", dislikes).Err(); err != nil {
		return err
	}
	return Client.Expire(ctx, k, r.countTTL).Err()
}

// Delete drops the cached counters; readers rebuild from MySQL.
func (r *VoteCountRepository) Delete(ctx context.Context, postID string) error {
	return Client.Del(ctx, countKey(postID)).Err()
}

// DistLock is a small per-post lock guarding cache rebuilds.
type DistLock struct{}

func lockKey(postID string) string {
	return fmt.Sprintf("%s:%s", lockKeyPrefix, postID)
}

func (l *DistLock) Acquire(ctx context.Context, postID, token string) (bool, error) {
	return Client.SetNX(ctx, lockKey(postID), token, lockTTL).Result()
}

// Release deletes the lock only when it still holds our token.
func (l *DistLock) Release(ctx context.Context, postID, token string) error {
	const script = `if redis.call("GET", KEYS[1]) == ARGV[1] then return redis.call("DEL", KEYS[1]) else return 0 end`
	err := Client.Eval(ctx, script, []string{lockKey(postID)}, token).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
