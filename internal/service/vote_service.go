package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"Postbook/internal/model"
	"Postbook/internal/pkg"

	"go.uber.org/zap"
)

type voteOp int

const (
	voteOpCreate voteOp = iota
	voteOpRemove
	voteOpFlip
)

// VoteService reconciles a user's stance on a post with the post's
// aggregate counters.
type VoteService struct {
	posts  PostStore
	votes  VoteStore
	cache  CountCache
	lock   CountLock
	outbox OutboxStore
}

func NewVoteService(posts PostStore, votes VoteStore, cache CountCache, lock CountLock, outbox OutboxStore) *VoteService {
	return &VoteService{
		posts:  posts,
		votes:  votes,
		cache:  cache,
		lock:   lock,
		outbox: outbox,
	}
}

// voteDelta decides the vote-row mutation and the combined counter delta
// for a desired stance against the existing one.
//
//	no row            -> create, +1 to the matching counter
//	same value        -> remove (toggle-off), -1 to the matching counter
//	opposite value    -> flip in place, -1 old counter / +1 new counter
func voteDelta(existing *model.Vote, like bool) (op voteOp, dLikes, dDislikes int64) {
	switch {
	case existing == nil:
		if like {
			return voteOpCreate, 1, 0
		}
		return voteOpCreate, 0, 1
	case existing.Like == like:
		if like {
			return voteOpRemove, -1, 0
		}
		return voteOpRemove, 0, -1
	default:
		if like {
			return voteOpFlip, 1, -1
		}
		return voteOpFlip, -1, 1
	}
}

// Apply records actorID's like/dislike on a post and moves the post's
// counters by the matching delta. The vote write and the counter write
// are sequential, not transactional; drift from the race window between
// them is repaired by the count reconciler.
func (s *VoteService) Apply(ctx context.Context, actorID, postID string, like bool) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return pkg.NotFound("post not found")
	}
	if post.CreatorID == actorID {
		return pkg.BadRequest("cannot vote on own post")
	}

	existing, err := s.votes.FindByUserAndPost(ctx, actorID, postID)
	if err != nil {
		return err
	}

	op, dLikes, dDislikes := voteDelta(existing, like)
	switch op {
	case voteOpCreate:
		err = s.votes.Create(ctx, &model.Vote{UserID: actorID, PostID: postID, Like: like})
	case voteOpRemove:
		err = s.votes.DeleteByUserAndPost(ctx, actorID, postID)
	case voteOpFlip:
		err = s.votes.Update(ctx, &model.Vote{UserID: actorID, PostID: postID, Like: like})
	}
	if err != nil {
		return err
	}

	likes := post.Likes + dLikes
	dislikes := post.Dislikes + dDislikes
	if err := s.posts.UpdateCounters(ctx, postID, likes, dislikes); err != nil {
		return err
	}

	s.refreshCache(ctx, postID, likes, dislikes)
	s.appendEvent(ctx, op, actorID, postID, like, likes, dislikes)
	return nil
}

// refreshCache strongly updates the counter cache under the per-post
// lock; on contention the key is deleted and the read side rebuilds it.
func (s *VoteService) refreshCache(ctx context.Context, postID string, likes, dislikes int64) {
	token := fmt.Sprintf("%s-%d", postID, time.Now().UnixNano())
	got, _ := s.lock.Acquire(ctx, postID, token)
	if !got {
		_ = s.cache.Delete(ctx, postID)
		return
	}
	defer func() { _ = s.lock.Release(ctx, postID, token) }()

	if err := s.cache.Set(ctx, postID, likes, dislikes); err != nil {
		_ = s.cache.Delete(ctx, postID)
	}
}

func (s *VoteService) appendEvent(ctx context.Context, op voteOp, userID, postID string, like bool, likes, dislikes int64) {
	eventType := model.EventVoteCast
	switch op {
	case voteOpRemove:
		eventType = model.EventVoteRemoved
	case voteOpFlip:
		eventType = model.EventVoteFlipped
	}

	payload, _ := json.Marshal(map[string]any{
		"user_id":  userID,
		"post_id":  postID,
		"like":     like,
		"likes":    likes,
		"dislikes": dislikes,
	})

	err := s.outbox.Append(ctx, &model.EventOutbox{
		EventType: eventType,
		UserID:    userID,
		PostID:    postID,
		Payload:   string(payload),
	})
	if err != nil {
		pkg.L.Warn("outbox append failed",
			zap.String("event", eventType),
			zap.String("post_id", postID),
			zap.Error(err))
	}
}
