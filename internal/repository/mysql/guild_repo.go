package mysql

import (
	"errors"
	"strings"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"gorm.io/gorm"
)

type GuildRepository struct {
	DB *gorm.DB
}

// Create 建会并让创建者成为 owner 成员，同一事务
func (r *GuildRepository) Create(g *model.Guild, ownerName string) (*model.Guild, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g).Error; err != nil {
			return err
		}
		return tx.Create(&model.GuildMember{
			GuildID:    g.ID,
			UserID:     g.OwnerID,
			MemberName: ownerName,
			Role:       1,
		}).Error
	})
	return g, err
}

func (r *GuildRepository) FindByID(id uint64) (*model.Guild, error) {
	var guild model.Guild
	err := r.DB.First(&guild, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &guild, err
}

// FindByInviteCode 邀请码统一大写存储，这里不区分大小写匹配
func (r *GuildRepository) FindByInviteCode(code string) (*model.Guild, error) {
	var guild model.Guild
	err := r.DB.Where("invite_code = ?", strings.ToUpper(code)).First(&guild).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrInvalidCode
	}
	return &guild, err
}

func (r *GuildRepository) List(offset, limit int) ([]model.Guild, error) {
	var list []model.Guild
	err := r.DB.Order("id desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

// Retire 退出公会。owner 在还有其他成员时不能退（回滚并返回
// ErrOwnerMustDisband）；最后一名成员退出时顺带解散：公会、场次、
// 报名记录在同一事务里一起删，不留孤儿场次。
func (r *GuildRepository) Retire(guildID, userID uint64) (changed, disbanded bool, err error) {
	err = r.DB.Transaction(func(tx *gorm.DB) error {
		var guild model.Guild
		if err := lockForUpdate(tx).First(&guild, guildID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}

		res := tx.Where("guild_id = ? AND user_id = ?", guildID, userID).
			Delete(&model.GuildMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// 本来就不是成员，幂等
			return nil
		}
		changed = true
		if err := insertActivity(tx, "guild_leave", userID, guildID); err != nil {
			return err
		}

		var remaining int64
		if err := tx.Model(&model.GuildMember{}).Where("guild_id = ?", guildID).
			Count(&remaining).Error; err != nil {
			return err
		}
		if remaining > 0 {
			// owner 必须走解散，不能把公会留给一群没有 owner 的成员
			if guild.OwnerID == userID {
				return model.ErrOwnerMustDisband
			}
			return nil
		}
		disbanded = true
		return deleteGuildCascade(tx, guildID)
	})
	return changed, disbanded, err
}

// Disband 解散公会（调用方先校验 owner），级联删除同 Retire
func (r *GuildRepository) Disband(guildID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return deleteGuildCascade(tx, guildID)
	})
}

func deleteGuildCascade(tx *gorm.DB, guildID uint64) error {
	var sessionIDs []uint64
	if err := tx.Model(&model.Session{}).Where("guild_id = ?", guildID).
		Pluck("id", &sessionIDs).Error; err != nil {
		return err
	}
	if len(sessionIDs) > 0 {
		if err := tx.Where("session_id IN ?", sessionIDs).
			Delete(&model.SessionParticipant{}).Error; err != nil {
			return err
		}
		if err := tx.Where("id IN ?", sessionIDs).
			Delete(&model.Session{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Where("guild_id = ?", guildID).
		Delete(&model.GuildMember{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Guild{}, guildID).Error
}
