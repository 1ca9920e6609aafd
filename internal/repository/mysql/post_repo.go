package mysql

import (
	"context"
	"errors"

	"Postbook/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Create(post).Error
}

func (r *PostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	var list []model.Post
	err := r.DB.WithContext(ctx).Order("created_at DESC, id DESC").Find(&list).Error
	return list, err
}

// FindByID returns (nil, nil) when the post does not exist.
func (r *PostRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.WithContext(ctx).First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdateContent rewrites the content and bumps updated_at; counters and
// creator are untouched.
func (r *PostRepository) UpdateContent(ctx context.Context, post *model.Post) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"content":    post.Content,
			"updated_at": post.UpdatedAt,
		}).Error
}

// UpdateCounters persists the recomputed like/dislike counters.
// UpdateColumns skips GORM's managed updated_at: a vote must not alter
// post metadata.
func (r *PostRepository) UpdateCounters(ctx context.Context, id string, likes, dislikes int64) error {
	return r.DB.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		UpdateColumns(map[string]any{
			"likes":    likes,
			"dislikes": dislikes,
		}).Error
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	return r.DB.WithContext(ctx).Delete(&model.Post{}, "id = ?", id).Error
}

// ListCounters reads stored counters for the reconciler, oldest-touched
// posts first.
func (r *PostRepository) ListCounters(ctx context.Context, limit int) ([]model.PostCounters, error) {
	var rows []model.PostCounters
	err := r.DB.WithContext(ctx).Model(&model.Post{}).
		Select("id", "likes", "dislikes").
		Order("updated_at").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
