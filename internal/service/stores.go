package service

import (
	"context"

	"Postbook/internal/model"
	"Postbook/internal/repository/mysql"
	"Postbook/internal/repository/redis"
)

// Store contracts consumed by the services; the mysql/redis repositories
// are the production implementations.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	FindAll(ctx context.Context) ([]model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	FindAll(ctx context.Context) ([]model.Post, error)
	FindByID(ctx context.Context, id string) (*model.Post, error)
	UpdateContent(ctx context.Context, post *model.Post) error
	UpdateCounters(ctx context.Context, id string, likes, dislikes int64) error
	Delete(ctx context.Context, id string) error
	ListCounters(ctx context.Context, limit int) ([]model.PostCounters, error)
}

type VoteStore interface {
	FindByUserAndPost(ctx context.Context, userID, postID string) (*model.Vote, error)
	FindAllByPost(ctx context.Context, postID string) ([]model.Vote, error)
	Create(ctx context.Context, vote *model.Vote) error
	Update(ctx context.Context, vote *model.Vote) error
	DeleteByUserAndPost(ctx context.Context, userID, postID string) error
	DeleteAllByPost(ctx context.Context, postID string) error
	CountByPost(ctx context.Context, postID string) (likes, dislikes int64, err error)
}

type OutboxStore interface {
	Append(ctx context.Context, event *model.EventOutbox) error
	ListPending(ctx context.Context, limit int) ([]model.EventOutbox, error)
	MarkSent(ctx context.Context, id uint64) error
	MarkRetry(ctx context.Context, id uint64, maxRetry int) error
}

// SessionStore keeps the latest issued token per user.
type SessionStore interface {
	Store(ctx context.Context, userID, token string) error
}

// CountCache holds the per-post counter cache; misses are rebuilt from
// the post row.
type CountCache interface {
	GetCached(ctx context.Context, postID string) (likes, dislikes int64, ok bool, err error)
	Set(ctx context.Context, postID string, likes, dislikes int64) error
	Delete(ctx context.Context, postID string) error
}

// CountLock serializes cache rebuilds per post.
type CountLock interface {
	Acquire(ctx context.Context, postID, token string) (bool, error)
	Release(ctx context.Context, postID, token string) error
}

var (
	_ UserStore    = (*mysql.UserRepository)(nil)
	_ PostStore    = (*mysql.PostRepository)(nil)
	_ VoteStore    = (*mysql.VoteRepository)(nil)
	_ OutboxStore  = (*mysql.OutboxRepository)(nil)
	_ CountCache   = (*redis.VoteCountRepository)(nil)
	_ CountLock    = (*redis.DistLock)(nil)
	_ SessionStore = (*redis.TokenRepository)(nil)
)
