package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/PresidentDoug/my-game-sync/internal/model"
	"github.com/PresidentDoug/my-game-sync/internal/repository/mysql"

	"gorm.io/gorm"
)

type ProfileService struct {
	repo       *mysql.ProfileRepository
	memberRepo *mysql.GuildMemberRepository
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{
		repo:       &mysql.ProfileRepository{DB: db},
		memberRepo: &mysql.GuildMemberRepository{DB: db},
	}
}

type ProfilePatch struct {
	DisplayName   string
	Theme         string
	Handles       map[string]string
	ShowcaseGames []string
}

type OwnProfile struct {
	UserID         uint64            `json:"user_id"`
	DisplayName    string            `json:"display_name"`
	Theme          string            `json:"theme"`
	Handles        map[string]string `json:"handles"`
	ShowcaseGames  []string          `json:"showcase_games"`
	JoinedGuildIDs []uint64          `json:"joined_guild_ids"`
}

type PublicProfile struct {
	UserID        uint64            `json:"user_id"`
	DisplayName   string            `json:"display_name"`
	Theme         string            `json:"theme"`
	Handles       map[string]string `json:"handles"`
	ShowcaseGames []string          `json:"showcase_games"`
}

// GetOwn 自己的资料。还没保存过时给默认值，加入的公会列表由成员表派生。
func (s *ProfileService) GetOwn(userID uint64) (*OwnProfile, error) {
	own := &OwnProfile{
		UserID:        userID,
		DisplayName:   fallbackName(userID),
		Theme:         model.ThemeLight,
		Handles:       map[string]string{},
		ShowcaseGames: []string{},
	}
	p, err := s.repo.Get(userID)
	if err == nil {
		own.DisplayName = p.DisplayName
		own.Theme = p.Theme
		own.Handles = unmarshalHandles(p.Handles)
		own.ShowcaseGames = unmarshalGames(p.ShowcaseGames)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	ids, err := s.memberRepo.JoinedGuildIDs(userID)
	if err != nil {
		return nil, err
	}
	own.JoinedGuildIDs = ids
	return own, nil
}

// Save 保存资料，含公开目录副本和改名扇出（见仓储层，单事务）
func (s *ProfileService) Save(userID uint64, patch ProfilePatch) error {
	if patch.DisplayName == "" {
		return model.Invalid("display name required")
	}
	if patch.Theme != model.ThemeLight && patch.Theme != model.ThemeDark {
		return model.Invalid("unknown theme")
	}
	if len(patch.ShowcaseGames) > model.MaxShowcaseGames {
		return model.Invalid(fmt.Sprintf("at most %d showcase games", model.MaxShowcaseGames))
	}

	handles, err := json.Marshal(orEmptyMap(patch.Handles))
	if err != nil {
		return err
	}
	games, err := json.Marshal(orEmptyList(patch.ShowcaseGames))
	if err != nil {
		return err
	}

	return s.repo.SaveWithFanout(&model.Profile{
		UserID:        userID,
		DisplayName:   patch.DisplayName,
		Theme:         patch.Theme,
		Handles:       string(handles),
		ShowcaseGames: string(games),
	})
}

// Public 公开目录查询。从未保存过资料的用户没有目录项。
func (s *ProfileService) Public(userID uint64) (*PublicProfile, error) {
	entry, err := s.repo.GetDirectory(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		return nil, err
	}
	return &PublicProfile{
		UserID:        entry.UserID,
		DisplayName:   entry.DisplayName,
		Theme:         entry.Theme,
		Handles:       unmarshalHandles(entry.Handles),
		ShowcaseGames: unmarshalGames(entry.ShowcaseGames),
	}, nil
}

func fallbackName(userID uint64) string {
	return fmt.Sprintf("Operator_%d", userID)
}

// displayNameOf 查展示名，没保存过资料时用默认名
func displayNameOf(repo *mysql.ProfileRepository, userID uint64) string {
	p, err := repo.Get(userID)
	if err != nil || p.DisplayName == "" {
		return fallbackName(userID)
	}
	return p.DisplayName
}

func unmarshalHandles(raw string) map[string]string {
	m := map[string]string{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &m)
	}
	return m
}

func unmarshalGames(raw string) []string {
	list := []string{}
	if raw != "" {
		_ = json.Unmarshal([]byte(raw), &list)
	}
	return list
}

func orEmptyMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}

func orEmptyList(l []string) []string {
	if l == nil {
		return []string{}
	}
	return l
}
