package mysql

import (
	"context"
	"encoding/json"
	"time"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// insertActivity 在业务事务内写动态事件，由 relayer 异步投递
func insertActivity(tx *gorm.DB, event string, actorID, subjectID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"actor":      actorID,
		"subject":    subjectID,
	})
	ob := &model.ActivityOutbox{
		EventType: event,
		ActorID:   actorID,
		SubjectID: subjectID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}

// List 取待投递事件
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.ActivityOutbox, error) {
	var list []model.ActivityOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败计数
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ActivityOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate 投递成功
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ActivityOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}

// OrphanReconcilerRepo 孤儿场次对账：场次引用的公会已不存在时清理掉。
// 正常路径删除都在一个事务里，这里兜底外部写入或历史脏数据。
type OrphanReconcilerRepo struct {
	DB *gorm.DB
}

// ListOrphanSessionIDs 查出公会已消失的场次
func (r *OrphanReconcilerRepo) ListOrphanSessionIDs(ctx context.Context, batchSize int) ([]uint64, error) {
	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.Session{}).
		Where("guild_id NOT IN (?)", r.DB.Model(&model.Guild{}).Select("id")).
		Order("id ASC").
		Limit(batchSize).
		Pluck("id", &ids).Error
	return ids, err
}

// DeleteSessions 连同报名记录一起删，幂等
func (r *OrphanReconcilerRepo) DeleteSessions(ctx context.Context, ids []uint64) error {
	if len(ids) == 0 {
		return nil
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id IN ?", ids).
			Delete(&model.SessionParticipant{}).Error; err != nil {
			return err
		}
		return tx.Where("id IN ?", ids).Delete(&model.Session{}).Error
	})
}
