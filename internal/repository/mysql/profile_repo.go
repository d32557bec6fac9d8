package mysql

import (
	"time"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository struct {
	DB *gorm.DB
}

func (r *ProfileRepository) Create(p *model.Profile) error {
	return r.DB.Create(p).Error
}

func (r *ProfileRepository) Get(userID uint64) (*model.Profile, error) {
	var p model.Profile
	err := r.DB.First(&p, "user_id = ?", userID).Error
	return &p, err
}

// SaveWithFanout 保存资料。资料本体、公开目录副本和三处冗余展示名
// （公会成员、场次房主、场次参与者）在同一事务里更新，要么全成要么全不成，
// 避免改名只扇出了一半。
func (r *ProfileRepository) SaveWithFanout(p *model.Profile) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		p.UpdatedAt = now
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"display_name", "theme", "handles", "showcase_games", "updated_at",
			}),
		}).Create(p).Error; err != nil {
			return err
		}

		// 公开目录副本在第一次保存时才出现，注册时不创建
		entry := &model.DirectoryEntry{
			UserID:        p.UserID,
			DisplayName:   p.DisplayName,
			Theme:         p.Theme,
			Handles:       p.Handles,
			ShowcaseGames: p.ShowcaseGames,
			UpdatedAt:     now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"display_name", "theme", "handles", "showcase_games", "updated_at",
			}),
		}).Create(entry).Error; err != nil {
			return err
		}

		// 改名扇出
		if err := tx.Model(&model.GuildMember{}).Where("user_id = ?", p.UserID).
			Update("member_name", p.DisplayName).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Session{}).Where("host_user_id = ?", p.UserID).
			Update("host_name", p.DisplayName).Error; err != nil {
			return err
		}
		return tx.Model(&model.SessionParticipant{}).Where("user_id = ?", p.UserID).
			Update("name", p.DisplayName).Error
	})
}

func (r *ProfileRepository) GetDirectory(userID uint64) (*model.DirectoryEntry, error) {
	var e model.DirectoryEntry
	err := r.DB.First(&e, "user_id = ?", userID).Error
	return &e, err
}
