package model

import "time"

type User struct {
	ID            uint64 `gorm:"primaryKey"`
	Email         string `gorm:"uniqueIndex;size:64;not null"`
	Password      string `gorm:"size:255;not null"`
	EmailVerified bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
