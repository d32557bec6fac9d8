package service

import (
	"context"
	"time"

	"github.com/PresidentDoug/my-game-sync/internal/model"
	"github.com/PresidentDoug/my-game-sync/internal/pkg"
	"github.com/PresidentDoug/my-game-sync/internal/repository/mysql"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Sender func(ctx context.Context, ob *model.ActivityOutbox) error

// ActivityRelayer 定时把 outbox 里的动态事件投递出去
type ActivityRelayer struct {
	repo      *mysql.OutboxRepository
	batchSize int
	interval  time.Duration
	sender    Sender
}

func NewActivityRelayer(db *gorm.DB, sender Sender) *ActivityRelayer {
	return &ActivityRelayer{
		repo:      &mysql.OutboxRepository{DB: db},
		batchSize: 200,
		interval:  time.Second,
		sender:    sender,
	}
}

func (r *ActivityRelayer) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.drainOnce(ctx)
		}
	}
}

func (r *ActivityRelayer) drainOnce(ctx context.Context) {
	rows, err := r.repo.List(ctx, r.batchSize)
	if err != nil {
		log.Error().Err(err).Msg("outbox query failed")
		return
	}
	for i := range rows {
		ob := rows[i]
		if err = r.sender(ctx, &ob); err != nil {
			_ = r.repo.RetryUpdate(ctx, ob.ID)
			continue
		}
		_ = r.repo.SuccessUpdate(ctx, ob.ID)
	}
}

// LogSender 默认 sender：kafka 未配置时只打日志
func LogSender(ctx context.Context, ob *model.ActivityOutbox) error {
	log.Info().
		Str("type", ob.EventType).
		Uint64("actor", ob.ActorID).
		Uint64("subject", ob.SubjectID).
		Msg("activity event")
	return nil
}

// KafkaSender 投递到 kafka
func KafkaSender(p *pkg.ActivityProducer) Sender {
	return p.SendActivity
}

// OrphanSessionReconciler 孤儿场次对账。正常删除都在单事务里，
// 这里周期性兜底外部写入造成的脏数据。
type OrphanSessionReconciler struct {
	repo      *mysql.OrphanReconcilerRepo
	batchSize int
	interval  time.Duration
}

func NewOrphanSessionReconciler(db *gorm.DB) *OrphanSessionReconciler {
	return &OrphanSessionReconciler{
		repo:      &mysql.OrphanReconcilerRepo{DB: db},
		batchSize: 500,
		interval:  5 * time.Minute,
	}
}

func (r *OrphanSessionReconciler) Run(ctx context.Context) {
	t := time.NewTicker(r.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.sweepOnce(ctx)
		}
	}
}

func (r *OrphanSessionReconciler) sweepOnce(ctx context.Context) {
	ids, err := r.repo.ListOrphanSessionIDs(ctx, r.batchSize)
	if err != nil {
		log.Error().Err(err).Msg("orphan session query failed")
		return
	}
	if len(ids) == 0 {
		return
	}
	if err = r.repo.DeleteSessions(ctx, ids); err != nil {
		log.Error().Err(err).Msg("orphan session sweep failed")
		return
	}
	log.Info().Int("count", len(ids)).Msg("orphan sessions removed")
}
