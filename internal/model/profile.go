package model

import "time"

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// MaxShowcaseGames 展示位上限
const MaxShowcaseGames = 5

type Profile struct {
	UserID        uint64 `gorm:"primaryKey"`
	DisplayName   string `gorm:"size:32;not null"`
	Theme         string `gorm:"size:8;not null;default:'light'"`
	Handles       string `gorm:"type:json"` // 平台名 -> 账号
	ShowcaseGames string `gorm:"type:json"` // 最多 MaxShowcaseGames 个
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DirectoryEntry 对外公开的资料副本，第一次保存资料时才创建
type DirectoryEntry struct {
	UserID        uint64 `gorm:"primaryKey"`
	DisplayName   string `gorm:"size:32;not null"`
	Theme         string `gorm:"size:8;not null"`
	Handles       string `gorm:"type:json"`
	ShowcaseGames string `gorm:"type:json"`
	UpdatedAt     time.Time
}
