package model

import "time"

// ActivityOutbox 动态事件监控表
type ActivityOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"` // guild_join / guild_leave / session_create / session_join / session_leave
	ActorID   uint64 `gorm:"not null"`
	SubjectID uint64 `gorm:"not null"` // 事件对象 id（公会或场次）
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
