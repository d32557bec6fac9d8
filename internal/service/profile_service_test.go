package service

import (
	"testing"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetOwnDefaults(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)

	own, err := svc.GetOwn(7)
	require.NoError(t, err)
	assert.Equal(t, "Operator_7", own.DisplayName)
	assert.Equal(t, model.ThemeLight, own.Theme)
	assert.Empty(t, own.Handles)
	assert.Empty(t, own.ShowcaseGames)
	assert.Empty(t, own.JoinedGuildIDs)
}

func TestGetOwnDerivesJoinedGuilds(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)
	guildSvc := NewGuildService(db)

	a := mustCreateGuild(t, guildSvc, 1, "Alpha", false)
	b := mustCreateGuild(t, guildSvc, 2, "Beta", false)
	_, _, err := guildSvc.ToggleMembership(1, b.ID)
	require.NoError(t, err)

	own, err := svc.GetOwn(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint64{a.ID, b.ID}, own.JoinedGuildIDs)
}

func TestSaveValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)

	assert.Error(t, svc.Save(1, ProfilePatch{DisplayName: "", Theme: model.ThemeLight}))
	assert.Error(t, svc.Save(1, ProfilePatch{DisplayName: "Rook", Theme: "sepia"}))
	assert.Error(t, svc.Save(1, ProfilePatch{
		DisplayName:   "Rook",
		Theme:         model.ThemeDark,
		ShowcaseGames: []string{"a", "b", "c", "d", "e", "f"},
	}))

	require.NoError(t, svc.Save(1, ProfilePatch{
		DisplayName:   "Rook",
		Theme:         model.ThemeDark,
		Handles:       map[string]string{"steam": "rook77"},
		ShowcaseGames: []string{"a", "b", "c", "d", "e"},
	}))

	own, err := svc.GetOwn(1)
	require.NoError(t, err)
	assert.Equal(t, "Rook", own.DisplayName)
	assert.Equal(t, model.ThemeDark, own.Theme)
	assert.Equal(t, "rook77", own.Handles["steam"])
	assert.Len(t, own.ShowcaseGames, 5)
}

func TestPublicNotFoundBeforeFirstSave(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)

	_, err := svc.Public(42)
	assert.ErrorIs(t, err, model.ErrNotFound)

	require.NoError(t, svc.Save(42, ProfilePatch{DisplayName: "Ghost", Theme: model.ThemeLight}))

	pub, err := svc.Public(42)
	require.NoError(t, err)
	assert.Equal(t, "Ghost", pub.DisplayName)
}

func TestRenameFansOutEverywhere(t *testing.T) {
	db := openTestDB(t)
	svc := NewProfileService(db)
	guildSvc := NewGuildService(db)
	sessSvc := NewSessionService(db)

	require.NoError(t, svc.Save(1, ProfilePatch{DisplayName: "OldName", Theme: model.ThemeLight}))

	guild := mustCreateGuild(t, guildSvc, 1, "Raiders", false)
	hosted := mustCreateSession(t, sessSvc, 1, guild.ID, draft("Valheim", "2026-09-01", 2))

	// 以参与者身份报名别人的场次
	_, _, err := guildSvc.ToggleMembership(2, guild.ID)
	require.NoError(t, err)
	theirs := mustCreateSession(t, sessSvc, 2, guild.ID, draft("Factorio", "2026-09-02", 2))
	_, err = sessSvc.Toggle(t.Context(), 1, theirs.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Save(1, ProfilePatch{DisplayName: "NewName", Theme: model.ThemeLight}))

	var member model.GuildMember
	require.NoError(t, db.Where("guild_id = ? AND user_id = ?", guild.ID, 1).First(&member).Error)
	assert.Equal(t, "NewName", member.MemberName)

	var sess model.Session
	require.NoError(t, db.First(&sess, hosted.ID).Error)
	assert.Equal(t, "NewName", sess.HostName)

	var participants []model.SessionParticipant
	require.NoError(t, db.Where("user_id = ?", 1).Find(&participants).Error)
	require.NotEmpty(t, participants)
	for _, p := range participants {
		assert.Equal(t, "NewName", p.Name)
	}

	// 别人的名字不受影响
	var otherMember model.GuildMember
	require.NoError(t, db.Where("guild_id = ? AND user_id = ?", guild.ID, 2).First(&otherMember).Error)
	assert.NotEqual(t, "NewName", otherMember.MemberName)

	pub, err := svc.Public(1)
	require.NoError(t, err)
	assert.Equal(t, "NewName", pub.DisplayName)
}
