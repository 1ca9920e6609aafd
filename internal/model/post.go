package model

import "time"

type Post struct {
	ID        string `gorm:"primaryKey;size:36"`
	CreatorID string `gorm:"size:36;not null;index:idx_creator_time"`
	Content   string `gorm:"type:text"`
	// Counters are maintained incrementally by the vote service and must
	// always equal the number of votes rows with like=1 / like=0.
	Likes     int64     `gorm:"not null;default:0"`
	Dislikes  int64     `gorm:"not null;default:0"`
	CreatedAt time.Time `gorm:"index:idx_creator_time"`
	UpdatedAt time.Time
}

// PostCounters is the projection of a post's stored counters used by the
// count reconciler.
type PostCounters struct {
	ID       string
	Likes    int64
	Dislikes int64
}
