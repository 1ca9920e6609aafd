package mysql

import (
	"context"
	"errors"

	"Postbook/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct {
	DB *gorm.DB
}

// FindByUserAndPost returns (nil, nil) when the user has no stance on the
// post.
func (r *VoteRepository) FindByUserAndPost(ctx context.Context, userID, postID string) (*model.Vote, error) {
	var vote model.Vote
	err := r.DB.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *VoteRepository) FindAllByPost(ctx context.Context, postID string) ([]model.Vote, error) {
	var list []model.Vote
	err := r.DB.WithContext(ctx).Where("post_id = ?", postID).Find(&list).Error
	return list, err
}

func (r *VoteRepository) Create(ctx context.Context, vote *model.Vote) error {
	return r.DB.WithContext(ctx).Create(vote).Error
}

// Update flips the stored value in place for an existing (user, post) row.
func (r *VoteRepository) Update(ctx context.Context, vote *model.Vote) error {
	return r.DB.WithContext(ctx).Model(&model.Vote{}).
		Where("user_id = ? AND post_id = ?", vote.UserID, vote.PostID).
		Update("like", vote.Like).Error
}

func (r *VoteRepository) DeleteByUserAndPost(ctx context.Context, userID, postID string) error {
	return r.DB.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.Vote{}).Error
}

func (r *VoteRepository) DeleteAllByPost(ctx context.Context, postID string) error {
	return r.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&model.Vote{}).Error
}

// CountByPost returns the true like/dislike counts from the vote rows,
// used off the hot path by the reconciler.
func (r *VoteRepository) CountByPost(ctx context.Context, postID string) (likes, dislikes int64, err error) {
	err = r.DB.WithContext(ctx).Model(&model.Vote{}).
		Where("post_id = ? AND `like` = ?", postID, true).
		Count(&likes).Error
	if err != nil {
		return 0, 0, err
	}
	err = r.DB.WithContext(ctx).Model(&model.Vote{}).
		Where("post_id = ? AND `like` = ?", postID, false).
		Count(&dislikes).Error
	if err != nil {
		return 0, 0, err
	}
	return likes, dislikes, nil
}
