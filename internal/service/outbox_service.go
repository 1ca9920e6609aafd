package service

import (
	"context"
	"time"

	"Postbook/internal/model"
	"Postbook/internal/pkg"

	"go.uber.org/zap"
)

// Sender delivers one outbox event to the transport.
type Sender func(ctx context.Context, event *model.EventOutbox) error

// OutboxRelayer drains pending events to the configured sender on a
// fixed interval.
type OutboxRelayer struct {
	repo      OutboxStore
	sender    Sender
	batchSize int
	maxRetry  int
	interval  time.Duration
}

func NewOutboxRelayer(repo OutboxStore, sender Sender) *OutboxRelayer {
	return &OutboxRelayer{
		repo:      repo,
		sender:    sender,
		batchSize: 200,
		maxRetry:  5,
		interval:  time.Second,
	}
}

func (r *OutboxRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *OutboxRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.ListPending(ctx, r.batchSize)
	if err != nil {
		pkg.L.Warn("outbox query failed", zap.Error(err))
		return
	}
	for i := range rows {
		event := rows[i]
		if err := r.sender(ctx, &event); err != nil {
			pkg.L.Warn("outbox send failed",
				zap.Uint64("id", event.ID),
				zap.String("event", event.EventType),
				zap.Error(err))
			_ = r.repo.MarkRetry(ctx, event.ID, r.maxRetry)
			continue
		}
		_ = r.repo.MarkSent(ctx, event.ID)
	}
}

// KafkaSender publishes events keyed by post id so per-post order holds.
func KafkaSender(producer *pkg.KafkaProducer) Sender {
	return func(ctx context.Context, event *model.EventOutbox) error {
		return producer.Send(ctx, event.PostID, []byte(event.Payload))
	}
}

// LogSender is the fallback when no broker is configured.
func LogSender(ctx context.Context, event *model.EventOutbox) error {
	pkg.L.Info("outbox event",
		zap.String("event", event.EventType),
		zap.String("user_id", event.UserID),
		zap.String("post_id", event.PostID))
	return nil
}
