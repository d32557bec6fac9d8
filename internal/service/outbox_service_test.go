package service

import (
	"context"
	"errors"
	"testing"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRelayerDrain(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	sessSvc := NewSessionService(db)
	ctx := context.Background()

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	sess := mustCreateSession(t, sessSvc, 1, guild.ID, draft("Valheim", "2026-09-01", 2))
	_, _, err := guildSvc.ToggleMembership(2, guild.ID)
	require.NoError(t, err)
	_, err = sessSvc.Toggle(ctx, 2, sess.ID)
	require.NoError(t, err)

	var delivered []string
	relayer := NewActivityRelayer(db, func(ctx context.Context, ob *model.ActivityOutbox) error {
		delivered = append(delivered, ob.EventType)
		return nil
	})
	relayer.drainOnce(ctx)

	assert.Equal(t, []string{"session_create", "guild_join", "session_join"}, delivered)

	var pending int64
	require.NoError(t, db.Model(&model.ActivityOutbox{}).Where("status = 0").Count(&pending).Error)
	assert.Zero(t, pending)

	// 没有新事件时不再投递
	relayer.drainOnce(ctx)
	assert.Len(t, delivered, 3)
}

func TestActivityRelayerMarksFailed(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	sessSvc := NewSessionService(db)
	ctx := context.Background()

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	mustCreateSession(t, sessSvc, 1, guild.ID, draft("Valheim", "2026-09-01", 2))

	relayer := NewActivityRelayer(db, func(ctx context.Context, ob *model.ActivityOutbox) error {
		return errors.New("broker down")
	})
	relayer.drainOnce(ctx)

	var ob model.ActivityOutbox
	require.NoError(t, db.First(&ob).Error)
	assert.Equal(t, int8(2), ob.Status)
	assert.Equal(t, 1, ob.Retry)
}

func TestOrphanReconcilerSweep(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	sessSvc := NewSessionService(db)
	ctx := context.Background()

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	sess := mustCreateSession(t, sessSvc, 1, guild.ID, draft("Valheim", "2026-09-01", 2))
	keepGuild := mustCreateGuild(t, guildSvc, 2, "Alive", false)
	keep := mustCreateSession(t, sessSvc, 2, keepGuild.ID, draft("Factorio", "2026-09-01", 2))

	// 模拟外部写入绕过级联删除，只删公会留下孤儿场次
	require.NoError(t, db.Delete(&model.Guild{}, guild.ID).Error)

	rec := NewOrphanSessionReconciler(db)
	rec.sweepOnce(ctx)

	var count int64
	require.NoError(t, db.Model(&model.Session{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var survivor model.Session
	require.NoError(t, db.First(&survivor).Error)
	assert.Equal(t, keep.ID, survivor.ID)

	var participants int64
	require.NoError(t, db.Model(&model.SessionParticipant{}).
		Where("session_id = ?", sess.ID).Count(&participants).Error)
	assert.Zero(t, participants)
}
