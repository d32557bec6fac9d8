package service

import (
	"testing"

	"github.com/PresidentDoug/my-game-sync/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, nil)

	assert.Error(t, svc.Register("a@b.com", "short", ""))

	require.NoError(t, svc.Register("a@b.com", "secret123", "Rook"))
	assert.Error(t, svc.Register("a@b.com", "secret123", "Rook"))
}

func TestRegisterCreatesProfile(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, nil)
	profSvc := NewProfileService(db)

	require.NoError(t, svc.Register("named@b.com", "secret123", "Rook"))
	require.NoError(t, svc.Register("anon@b.com", "secret123", ""))

	var named, anon model.User
	require.NoError(t, db.Where("email = ?", "named@b.com").First(&named).Error)
	require.NoError(t, db.Where("email = ?", "anon@b.com").First(&anon).Error)

	own, err := profSvc.GetOwn(named.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rook", own.DisplayName)

	own, err = profSvc.GetOwn(anon.ID)
	require.NoError(t, err)
	assert.Equal(t, fallbackName(anon.ID), own.DisplayName)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, nil)

	require.NoError(t, svc.Register("a@b.com", "secret123", ""))

	_, err := svc.Login("missing@b.com", "secret123")
	assert.Error(t, err)

	// 错误信息不区分账号不存在和密码不对
	_, err2 := svc.Login("a@b.com", "wrongpass")
	assert.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())
}

func TestLoginBlocksUnverifiedEmail(t *testing.T) {
	db := openTestDB(t)
	svc := NewUserService(db, nil)

	require.NoError(t, svc.Register("a@b.com", "secret123", ""))

	_, err := svc.Login("a@b.com", "secret123")
	assert.ErrorIs(t, err, model.ErrEmailNotVerified)
}
