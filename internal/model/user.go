package model

import "time"

const (
	RoleNormal = "NORMAL"
	RoleAdmin  = "ADMIN"
)

type User struct {
	ID        string `gorm:"primaryKey;size:36"`
	Name      string `gorm:"size:64;not null"`
	Email     string `gorm:"uniqueIndex;size:64;not null"`
	Password  string `gorm:"size:255;not null"` // bcrypt digest, never serialized
	Role      string `gorm:"size:16;not null;default:'NORMAL'"`
	CreatedAt time.Time
}
