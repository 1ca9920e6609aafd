package mysql

import (
	"context"

	"Postbook/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

func (r *OutboxRepository) Append(ctx context.Context, event *model.EventOutbox) error {
	return r.DB.WithContext(ctx).Create(event).Error
}

// ListPending returns the oldest undelivered events, at most limit.
func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]model.EventOutbox, error) {
	var rows []model.EventOutbox
	err := r.DB.WithContext(ctx).
		Where("status = ?", model.OutboxPending).
		Order("id").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EventOutbox{}).
		Where("id = ?", id).
		Update("status", model.OutboxSent).Error
}

// MarkRetry bumps the retry counter; after maxRetry the event is parked
// as failed so the relayer stops picking it up.
func (r *OutboxRepository) MarkRetry(ctx context.Context, id uint64, maxRetry int) error {
	return r.DB.WithContext(ctx).Model(&model.EventOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"retry":  gorm.Expr("retry + 1"),
			"status": gorm.Expr("CASE WHEN retry + 1 >= ? THEN ? ELSE ? END", maxRetry, model.OutboxFailed, model.OutboxPending),
		}).Error
}
