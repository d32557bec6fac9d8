package service

import (
	"github.com/PresidentDoug/my-game-sync/internal/model"
	"github.com/PresidentDoug/my-game-sync/internal/pkg"
	"github.com/PresidentDoug/my-game-sync/internal/repository/mysql"

	"gorm.io/gorm"
)

type GuildService struct {
	repo        *mysql.GuildRepository
	memberRepo  *mysql.GuildMemberRepository
	profileRepo *mysql.ProfileRepository
}

func NewGuildService(db *gorm.DB) *GuildService {
	return &GuildService{
		repo:        &mysql.GuildRepository{DB: db},
		memberRepo:  &mysql.GuildMemberRepository{DB: db},
		profileRepo: &mysql.ProfileRepository{DB: db},
	}
}

const inviteCodeLen = 6

// CreateGuild 创建者自动成为 owner 和唯一成员；私有公会生成邀请码
func (s *GuildService) CreateGuild(userID uint64, name, desc string, isPrivate bool) (*model.Guild, error) {
	if name == "" {
		return nil, model.Invalid("guild name required")
	}

	guild := &model.Guild{
		Name:        name,
		Description: desc,
		OwnerID:     userID,
		IsPrivate:   isPrivate,
	}
	if isPrivate {
		code, err := pkg.RandInviteCode(inviteCodeLen)
		if err != nil {
			return nil, err
		}
		guild.InviteCode = &code
	}

	ownerName := displayNameOf(s.profileRepo, userID)
	if _, err := s.repo.Create(guild, ownerName); err != nil {
		return nil, err
	}
	return guild, nil
}

// JoinByInvite 邀请码入会，私有公会唯一的加入路径。匹配不区分大小写。
func (s *GuildService) JoinByInvite(userID uint64, code string) (*model.Guild, error) {
	if len(code) != inviteCodeLen {
		return nil, model.ErrInvalidCode
	}
	guild, err := s.repo.FindByInviteCode(code)
	if err != nil {
		return nil, err
	}

	isMember, err := s.memberRepo.IsMember(guild.ID, userID)
	if err != nil {
		return nil, err
	}
	if isMember {
		return nil, model.ErrAlreadyMember
	}

	if err := s.memberRepo.Join(&model.GuildMember{
		GuildID:    guild.ID,
		UserID:     userID,
		MemberName: displayNameOf(s.profileRepo, userID),
	}); err != nil {
		return nil, err
	}
	return guild, nil
}

// ToggleMembership 公开公会对称的加入/退出；私有公会只允许退出，
// 加入必须走邀请码。owner 只能以最后一名成员的身份退出（此时公会
// 连同场次一起解散），还有其他成员时必须走 Disband。
func (s *GuildService) ToggleMembership(userID, guildID uint64) (joined, disbanded bool, err error) {
	guild, err := s.repo.FindByID(guildID)
	if err != nil {
		return false, false, err
	}

	isMember, err := s.memberRepo.IsMember(guildID, userID)
	if err != nil {
		return false, false, err
	}
	if isMember {
		_, disbanded, err = s.repo.Retire(guildID, userID)
		return false, disbanded, err
	}

	if guild.IsPrivate {
		return false, false, model.ErrPrivateGuild
	}
	err = s.memberRepo.Join(&model.GuildMember{
		GuildID:    guildID,
		UserID:     userID,
		MemberName: displayNameOf(s.profileRepo, userID),
	})
	return err == nil, false, err
}

// Disband 仅 owner 可解散
func (s *GuildService) Disband(userID, guildID uint64) error {
	guild, err := s.repo.FindByID(guildID)
	if err != nil {
		return err
	}
	if guild.OwnerID != userID {
		return model.ErrUnauthorized
	}
	return s.repo.Disband(guildID)
}

func (s *GuildService) ListGuilds(page, size int) ([]model.Guild, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	offset := (page - 1) * size
	return s.repo.List(offset, size)
}

func (s *GuildService) Members(guildID uint64) ([]model.GuildMember, error) {
	if _, err := s.repo.FindByID(guildID); err != nil {
		return nil, err
	}
	return s.memberRepo.ListMembers(guildID)
}

func (s *GuildService) JoinedGuildIDs(userID uint64) ([]uint64, error) {
	return s.memberRepo.JoinedGuildIDs(userID)
}
