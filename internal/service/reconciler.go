package service

import (
	"context"
	"time"

	"Postbook/internal/pkg"

	"go.uber.org/zap"
)

// CountReconciler periodically audits post counters against the vote
// rows and repairs drift. The request hot path only ever applies
// incremental deltas; this loop is the bound on the accepted lost-update
// window between the vote write and the counter write.
type CountReconciler struct {
	posts     PostStore
	votes     VoteStore
	cache     CountCache
	batchSize int
	interval  time.Duration
}

func NewCountReconciler(posts PostStore, votes VoteStore, cache CountCache) *CountReconciler {
	return &CountReconciler{
		posts:     posts,
		votes:     votes,
		cache:     cache,
		batchSize: 500,
		interval:  5 * time.Minute,
	}
}

func (r *CountReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.reconcileOnce(ctx)
		}
	}
}

func (r *CountReconciler) reconcileOnce(ctx context.Context) {
	rows, err := r.posts.ListCounters(ctx, r.batchSize)
	if err != nil {
		pkg.L.Warn("reconcile list failed", zap.Error(err))
		return
	}

	for _, row := range rows {
		likes, dislikes, err := r.votes.CountByPost(ctx, row.ID)
		if err != nil {
			continue
		}
		if likes == row.Likes && dislikes == row.Dislikes {
			continue
		}

		pkg.L.Info("counter drift repaired",
			zap.String("post_id", row.ID),
			zap.Int64("stored_likes", row.Likes),
			zap.Int64("real_likes", likes),
			zap.Int64("stored_dislikes", row.Dislikes),
			zap.Int64("real_dislikes", dislikes))

		if err := r.posts.UpdateCounters(ctx, row.ID, likes, dislikes); err != nil {
			continue
		}
		_ = r.cache.Delete(ctx, row.ID)
	}
}
