package mysql

import (
	"github.com/PresidentDoug/my-game-sync/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GuildMemberRepository struct {
	DB *gorm.DB
}

// Join 幂等插入：若已存在 (guild_id, user_id) 则不报错
func (r *GuildMemberRepository) Join(member *model.GuildMember) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}, {Name: "user_id"}},
			DoNothing: true,
		}).Create(member)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return insertActivity(tx, "guild_join", member.UserID, member.GuildID)
	})
}

func (r *GuildMemberRepository) IsMember(guildID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.GuildMember{}).
		Where("guild_id = ? AND user_id = ?", guildID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *GuildMemberRepository) ListMembers(guildID uint64) ([]model.GuildMember, error) {
	var list []model.GuildMember
	err := r.DB.Where("guild_id = ?", guildID).Order("id asc").Find(&list).Error
	return list, err
}

// JoinedGuildIDs 用户加入的公会 id，由成员表派生，资料里不另存一份
func (r *GuildMemberRepository) JoinedGuildIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.GuildMember{}).Where("user_id = ?", userID).
		Order("guild_id asc").Pluck("guild_id", &ids).Error
	return ids, err
}
