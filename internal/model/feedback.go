package model

import "time"

// Feedback 只追加，不支持用户修改或删除
type Feedback struct {
	ID         uint64 `gorm:"primaryKey"`
	Message    string `gorm:"type:text;not null"`
	SenderUID  uint64 `gorm:"not null;index"`
	SenderName string `gorm:"size:32"`
	CreatedAt  time.Time
}
