package mysql

import (
	"context"
	"errors"
	"strings"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

// Create 创建场次并自动把房主写进第一条报名记录，同一事务
func (r *SessionRepository) Create(s *model.Session) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(s).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.SessionParticipant{
			SessionID: s.ID,
			UserID:    s.HostUserID,
			Name:      s.HostName,
		}).Error; err != nil {
			return err
		}
		return insertActivity(tx, "session_create", s.HostUserID, s.ID)
	})
}

func (r *SessionRepository) FindByID(id uint64) (*model.Session, error) {
	var s model.Session
	err := r.DB.First(&s, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	return &s, err
}

// Toggle 报名/退出开关。先锁场次行再数人数，避免两个人同时挤进最后一个空位。
// 已报名则退出（房主也可以退，不做特殊规则）；未报名且还有空位则加入。
func (r *SessionRepository) Toggle(ctx context.Context, sessionID, userID uint64, name string) (joined bool, err error) {
	err = r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var sess model.Session
		if err := lockForUpdate(tx).First(&sess, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}

		res := tx.Where("session_id = ? AND user_id = ?", sessionID, userID).
			Delete(&model.SessionParticipant{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			joined = false
			return insertActivity(tx, "session_leave", userID, sessionID)
		}

		var count int64
		if err := tx.Model(&model.SessionParticipant{}).
			Where("session_id = ?", sessionID).
			Count(&count).Error; err != nil {
			return err
		}
		// 人数上限 = 房主 1 人 + 空位数
		if count >= int64(sess.MaxOpenings)+1 {
			return model.ErrCapacityExceeded
		}
		if err := tx.Create(&model.SessionParticipant{
			SessionID: sessionID,
			UserID:    userID,
			Name:      name,
		}).Error; err != nil {
			return err
		}
		joined = true
		return insertActivity(tx, "session_join", userID, sessionID)
	})
	return joined, err
}

// DeleteByHost 仅房主可删，连同报名记录
func (r *SessionRepository) DeleteByHost(sessionID, userID uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var sess model.Session
		if err := lockForUpdate(tx).First(&sess, sessionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrNotFound
			}
			return err
		}
		if sess.HostUserID != userID {
			return model.ErrUnauthorized
		}
		if err := tx.Where("session_id = ?", sessionID).
			Delete(&model.SessionParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Session{}, sessionID).Error
	})
}

// ListVisible 可见场次：限定公会集合，按 gameTitle 子串过滤（不区分大小写），
// 按日期字面值升序（ISO 日期的字典序即时间序），同日保持插入顺序
func (r *SessionRepository) ListVisible(guildIDs []uint64, search string) ([]model.Session, error) {
	if len(guildIDs) == 0 {
		return nil, nil
	}
	q := r.DB.Where("guild_id IN ?", guildIDs)
	if search != "" {
		q = q.Where("LOWER(game_title) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	var list []model.Session
	err := q.Order("date ASC, id ASC").Find(&list).Error
	return list, err
}

// Participants 批量取报名名单，按报名先后
func (r *SessionRepository) Participants(sessionIDs []uint64) ([]model.SessionParticipant, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	var list []model.SessionParticipant
	err := r.DB.Where("session_id IN ?", sessionIDs).Order("id ASC").Find(&list).Error
	return list, err
}

func (r *SessionRepository) IsParticipant(sessionID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.SessionParticipant{}).
		Where("session_id = ? AND user_id = ?", sessionID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *SessionRepository) CountParticipants(ctx context.Context, sessionID uint64) (int64, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.SessionParticipant{}).
		Where("session_id = ?", sessionID).Count(&count).Error
	return count, err
}
