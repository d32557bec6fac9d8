package model

import "time"

type Session struct {
	ID         uint64 `gorm:"primaryKey"`
	GuildID    uint64 `gorm:"not null;index"`
	HostUserID uint64 `gorm:"not null;index"`
	HostName   string `gorm:"size:32;not null"`
	GameTitle  string `gorm:"size:200;not null"`
	// Date 按字面 ISO 日期串存储和分组，不做时区归一
	Date           string  `gorm:"size:10;not null;index"` // YYYY-MM-DD
	StartTime      string  `gorm:"size:5;not null"`        // HH:MM
	DurationHours  float64 `gorm:"not null;default:2"`
	MaxOpenings    int     `gorm:"not null;default:0"` // 除房主外的空位数
	IsStreaming    bool    `gorm:"not null;default:false"`
	StreamPlatform string  `gorm:"size:32"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type SessionParticipant struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	SessionID uint64 `gorm:"not null;index;uniqueIndex:uk_session_user"`
	UserID    uint64 `gorm:"not null;uniqueIndex:uk_session_user"`
	Name      string `gorm:"size:32;not null"`
	CreatedAt time.Time
}
