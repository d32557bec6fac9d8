package service

import (
	"context"
	"testing"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionRequiresGuild(t *testing.T) {
	db := openTestDB(t)
	svc := NewSessionService(db)

	_, err := svc.Create(1, 0, draft("Valheim", "2026-09-01", 2))
	assert.ErrorIs(t, err, model.ErrInvalidTarget)
}

func TestCreateSessionRequiresMembership(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	svc := NewSessionService(db)

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)

	_, err := svc.Create(2, guild.ID, draft("Valheim", "2026-09-01", 2))
	assert.ErrorIs(t, err, model.ErrNotMember)
}

func TestCreateSessionHostTakesFirstSeat(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	svc := NewSessionService(db)

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	sess := mustCreateSession(t, svc, 1, guild.ID, draft("Valheim", "2026-09-01", 2))

	count, capacity, err := svc.SeatCount(context.Background(), sess.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 3, capacity) // 房主 + 2 空位
}

func TestToggleCapacityLimit(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	svc := NewSessionService(db)
	ctx := context.Background()

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	sess := mustCreateSession(t, svc, 1, guild.ID, draft("Deep Rock", "2026-09-01", 1))
	for _, uid := range []uint64{2, 3} {
		_, _, err := guildSvc.ToggleMembership(uid, guild.ID)
		require.NoError(t, err)
	}

	joined, err := svc.Toggle(ctx, 2, sess.ID)
	require.NoError(t, err)
	assert.True(t, joined)

	// 满员
	_, err = svc.Toggle(ctx, 3, sess.ID)
	assert.ErrorIs(t, err, model.ErrCapacityExceeded)

	// 有人退出后空位恢复
	joined, err = svc.Toggle(ctx, 2, sess.ID)
	require.NoError(t, err)
	assert.False(t, joined)

	joined, err = svc.Toggle(ctx, 3, sess.ID)
	require.NoError(t, err)
	assert.True(t, joined)
}

func TestHostCanLeaveOwnSession(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	svc := NewSessionService(db)
	ctx := context.Background()

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	sess := mustCreateSession(t, svc, 1, guild.ID, draft("Valheim", "2026-09-01", 2))

	// 房主退出自己的场次，场次保留
	joined, err := svc.Toggle(ctx, 1, sess.ID)
	require.NoError(t, err)
	assert.False(t, joined)

	count, _, err := svc.SeatCount(ctx, sess.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestDeleteSessionHostOnly(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	svc := NewSessionService(db)

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	sess := mustCreateSession(t, svc, 1, guild.ID, draft("Valheim", "2026-09-01", 2))

	assert.ErrorIs(t, svc.Delete(2, sess.ID), model.ErrUnauthorized)
	require.NoError(t, svc.Delete(1, sess.ID))

	var participants int64
	require.NoError(t, db.Model(&model.SessionParticipant{}).
		Where("session_id = ?", sess.ID).Count(&participants).Error)
	assert.Zero(t, participants)

	assert.ErrorIs(t, svc.Delete(1, sess.ID), model.ErrNotFound)
}

func TestToggleRequiresGuildMembership(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	svc := NewSessionService(db)
	ctx := context.Background()

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", true)
	sess := mustCreateSession(t, svc, 1, guild.ID, draft("Valheim", "2026-09-01", 2))

	// 知道场次 id 也进不来
	_, err := svc.Toggle(ctx, 2, sess.ID)
	assert.ErrorIs(t, err, model.ErrNotMember)

	_, err = guildSvc.JoinByInvite(2, *guild.InviteCode)
	require.NoError(t, err)
	joined, err := svc.Toggle(ctx, 2, sess.ID)
	require.NoError(t, err)
	assert.True(t, joined)

	// 退会后仍挂在名单上：允许退出，不允许再加入
	_, _, err = guildSvc.ToggleMembership(2, guild.ID)
	require.NoError(t, err)
	joined, err = svc.Toggle(ctx, 2, sess.ID)
	require.NoError(t, err)
	assert.False(t, joined)

	_, err = svc.Toggle(ctx, 2, sess.ID)
	assert.ErrorIs(t, err, model.ErrNotMember)
}

func TestListGroupedByDate(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	svc := NewSessionService(db)

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	mustCreateSession(t, svc, 1, guild.ID, draft("Valheim", "2026-09-02", 2))
	mustCreateSession(t, svc, 1, guild.ID, draft("Deep Rock", "2026-09-01", 2))
	mustCreateSession(t, svc, 1, guild.ID, draft("Factorio", "2026-09-01", 2))

	groups, err := svc.ListGrouped(1, 0, "")
	require.NoError(t, err)
	require.Len(t, groups, 2)

	// 日期字面值升序，同日按创建先后
	assert.Equal(t, "2026-09-01", groups[0].Date)
	require.Len(t, groups[0].Sessions, 2)
	assert.Equal(t, "Deep Rock", groups[0].Sessions[0].GameTitle)
	assert.Equal(t, "Factorio", groups[0].Sessions[1].GameTitle)
	assert.Equal(t, "2026-09-02", groups[1].Date)

	// 每个场次都带报名名单
	require.Len(t, groups[1].Sessions, 1)
	require.Len(t, groups[1].Sessions[0].Participants, 1)
	assert.Equal(t, uint64(1), groups[1].Sessions[0].Participants[0].UserID)
}

func TestListGroupedSearchCaseInsensitive(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	svc := NewSessionService(db)

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	mustCreateSession(t, svc, 1, guild.ID, draft("Deep Rock Galactic", "2026-09-01", 2))
	mustCreateSession(t, svc, 1, guild.ID, draft("Valheim", "2026-09-01", 2))

	groups, err := svc.ListGrouped(1, 0, "ROCK")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Sessions, 1)
	assert.Equal(t, "Deep Rock Galactic", groups[0].Sessions[0].GameTitle)
}

func TestListGroupedScopedToGuilds(t *testing.T) {
	db := openTestDB(t)
	guildSvc := NewGuildService(db)
	svc := NewSessionService(db)

	mine := mustCreateGuild(t, guildSvc, 1, "Mine", false)
	other := mustCreateGuild(t, guildSvc, 2, "Other", false)
	mustCreateSession(t, svc, 1, mine.ID, draft("Valheim", "2026-09-01", 2))
	mustCreateSession(t, svc, 2, other.ID, draft("Factorio", "2026-09-01", 2))

	// 默认只看自己加入的公会
	groups, err := svc.ListGrouped(1, 0, "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].Sessions, 1)
	assert.Equal(t, "Valheim", groups[0].Sessions[0].GameTitle)

	// 指定某个公会就只看它
	_, _, err = guildSvc.ToggleMembership(1, other.ID)
	require.NoError(t, err)
	groups, err = svc.ListGrouped(1, other.ID, "")
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "Factorio", groups[0].Sessions[0].GameTitle)
}
