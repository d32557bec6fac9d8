package model

import "time"

type Guild struct {
	ID          uint64 `gorm:"primaryKey"`
	Name        string `gorm:"size:64;not null;index"`
	Description string `gorm:"type:text"`
	OwnerID     uint64 `gorm:"not null;index"`
	IsPrivate   bool   `gorm:"not null;default:false"`
	// InviteCode 私有公会的 6 位大写邀请码，公开公会为 NULL（唯一索引不允许多个空串）
	InviteCode *string `gorm:"size:6;uniqueIndex"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type GuildMember struct {
	ID         uint64 `gorm:"primaryKey"`
	GuildID    uint64 `gorm:"not null;index;uniqueIndex:uk_guild_user"`
	UserID     uint64 `gorm:"not null;index;uniqueIndex:uk_guild_user"`
	MemberName string `gorm:"size:32;not null"` // 冗余展示名，改名时统一扇出更新
	Role       int    `gorm:"not null;default:0"` // 0=member, 1=owner
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
