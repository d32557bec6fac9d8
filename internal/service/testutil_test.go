package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB 每个测试一个独立的内存库
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Profile{},
		&model.DirectoryEntry{},
		&model.Guild{},
		&model.GuildMember{},
		&model.Session{},
		&model.SessionParticipant{},
		&model.Feedback{},
		&model.ActivityOutbox{},
	))
	return db
}

func mustCreateGuild(t *testing.T, svc *GuildService, ownerID uint64, name string, private bool) *model.Guild {
	t.Helper()
	guild, err := svc.CreateGuild(ownerID, name, "", private)
	require.NoError(t, err)
	return guild
}

func mustCreateSession(t *testing.T, svc *SessionService, userID, guildID uint64, draft SessionDraft) *model.Session {
	t.Helper()
	sess, err := svc.Create(userID, guildID, draft)
	require.NoError(t, err)
	return sess
}

func draft(title, date string, openings int) SessionDraft {
	return SessionDraft{
		GameTitle:   title,
		Date:        date,
		StartTime:   "20:00",
		MaxOpenings: openings,
	}
}
