package model

import "time"

// Vote is the source of truth for one user's stance on one post.
// At most one row per (user, post) pair.
type Vote struct {
	UserID    string `gorm:"primaryKey;size:36"`
	PostID    string `gorm:"primaryKey;size:36;index"`
	Like      bool   `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Vote) TableName() string {
	return "post_votes"
}
