package model

import "time"

const (
	EventVoteCast    = "vote_cast"
	EventVoteFlipped = "vote_flipped"
	EventVoteRemoved = "vote_removed"
	EventPostDeleted = "post_deleted"
)

const (
	OutboxPending = int8(0)
	OutboxSent    = int8(1)
	OutboxFailed  = int8(2)
)

// EventOutbox buffers vote/post events for asynchronous delivery.
type EventOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"`
	UserID    string `gorm:"size:36;not null"`
	PostID    string `gorm:"size:36;not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;index"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EventOutbox) TableName() string { return "event_outbox" }
