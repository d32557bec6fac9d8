package service

import (
	"context"
	"time"

	"github.com/PresidentDoug/my-game-sync/internal/model"
	"github.com/PresidentDoug/my-game-sync/internal/repository/mysql"
	"github.com/PresidentDoug/my-game-sync/internal/repository/redis"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SessionService struct {
	repo        *mysql.SessionRepository
	memberRepo  *mysql.GuildMemberRepository
	profileRepo *mysql.ProfileRepository
	seats       *redis.SeatCacheRepository
	lock        *redis.DistLock
}

func NewSessionService(db *gorm.DB) *SessionService {
	s := &SessionService{
		repo:        &mysql.SessionRepository{DB: db},
		memberRepo:  &mysql.GuildMemberRepository{DB: db},
		profileRepo: &mysql.ProfileRepository{DB: db},
	}
	// redis 可选：测试里不接缓存和锁
	if redis.Client != nil {
		s.seats = redis.NewSeatCacheRepository()
		s.lock = &redis.DistLock{RDB: redis.Client}
	}
	return s
}

type SessionDraft struct {
	GameTitle      string
	Date           string // YYYY-MM-DD，按字面值处理
	StartTime      string // HH:MM
	DurationHours  float64
	MaxOpenings    int
	IsStreaming    bool
	StreamPlatform string
}

type SessionView struct {
	model.Session
	Participants []model.SessionParticipant `json:"participants"`
}

// DayGroup 按日期分组后的一天
type DayGroup struct {
	Date     string        `json:"date"`
	Sessions []SessionView `json:"sessions"`
}

// Create 建场次。必须落在某个公会里（显式传入），且创建者是该公会成员；
// 创建者自动成为第一个参与者。
func (s *SessionService) Create(userID, guildID uint64, draft SessionDraft) (*model.Session, error) {
	if guildID == 0 {
		return nil, model.ErrInvalidTarget
	}
	if draft.GameTitle == "" {
		return nil, model.Invalid("game title required")
	}
	if draft.Date == "" || draft.StartTime == "" {
		return nil, model.Invalid("date and start time required")
	}

	isMember, err := s.memberRepo.IsMember(guildID, userID)
	if err != nil {
		return nil, err
	}
	if !isMember {
		return nil, model.ErrNotMember
	}

	if draft.MaxOpenings < 0 {
		draft.MaxOpenings = 0
	}
	if draft.DurationHours <= 0 {
		draft.DurationHours = 2
	}

	sess := &model.Session{
		GuildID:        guildID,
		HostUserID:     userID,
		HostName:       displayNameOf(s.profileRepo, userID),
		GameTitle:      draft.GameTitle,
		Date:           draft.Date,
		StartTime:      draft.StartTime,
		DurationHours:  draft.DurationHours,
		MaxOpenings:    draft.MaxOpenings,
		IsStreaming:    draft.IsStreaming,
		StreamPlatform: draft.StreamPlatform,
	}
	if err := s.repo.Create(sess); err != nil {
		return nil, err
	}
	if s.seats != nil {
		_ = s.seats.SetCount(context.Background(), sess.ID, 1)
	}
	return sess, nil
}

// Toggle 已报名则退出，否则报名。报名只对场次所属公会的成员开放；
// 退会后还挂在名单上的人仍可退出。满员返回 ErrCapacityExceeded。
// 写库成功后更新座位缓存；抢不到锁就删缓存，交给读侧回填。
func (s *SessionService) Toggle(ctx context.Context, userID, sessionID uint64) (joined bool, err error) {
	sess, err := s.repo.FindByID(sessionID)
	if err != nil {
		return false, err
	}
	isMember, err := s.memberRepo.IsMember(sess.GuildID, userID)
	if err != nil {
		return false, err
	}
	if !isMember {
		isParticipant, err := s.repo.IsParticipant(sessionID, userID)
		if err != nil {
			return false, err
		}
		if !isParticipant {
			return false, model.ErrNotMember
		}
	}

	name := displayNameOf(s.profileRepo, userID)

	locked := false
	token := uuid.NewString()
	if s.lock != nil {
		locked, _ = s.lock.Acquire(ctx, sessionID, token)
		if locked {
			defer func() { _ = s.lock.Release(ctx, sessionID, token) }()
		}
	}

	joined, err = s.repo.Toggle(ctx, sessionID, userID, name)
	if err != nil {
		return false, err
	}

	if s.seats != nil {
		if !locked {
			_ = s.seats.DeleteCount(ctx, sessionID, 200*time.Millisecond)
		} else if joined {
			_ = s.seats.Incr(ctx, sessionID)
		} else {
			_ = s.seats.Decr(ctx, sessionID)
		}
	}
	return joined, nil
}

// Delete 仅房主可删
func (s *SessionService) Delete(userID, sessionID uint64) error {
	if err := s.repo.DeleteByHost(sessionID, userID); err != nil {
		return err
	}
	if s.seats != nil {
		_ = s.seats.DeleteCount(context.Background(), sessionID)
	}
	return nil
}

// ListGrouped 派生视图：先过滤（公会集合 + 标题搜索），再按日期字面值分组。
// ISO 日期的字典序就是时间序，分组顺序由 SQL 排序保证，同日按创建先后。
func (s *SessionService) ListGrouped(userID, activeGuildID uint64, search string) ([]DayGroup, error) {
	var guildIDs []uint64
	if activeGuildID != 0 {
		guildIDs = []uint64{activeGuildID}
	} else {
		ids, err := s.memberRepo.JoinedGuildIDs(userID)
		if err != nil {
			return nil, err
		}
		guildIDs = ids
	}

	sessions, err := s.repo.ListVisible(guildIDs, search)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return []DayGroup{}, nil
	}

	ids := make([]uint64, 0, len(sessions))
	for _, sess := range sessions {
		ids = append(ids, sess.ID)
	}
	participants, err := s.repo.Participants(ids)
	if err != nil {
		return nil, err
	}
	bySession := make(map[uint64][]model.SessionParticipant, len(sessions))
	for _, p := range participants {
		bySession[p.SessionID] = append(bySession[p.SessionID], p)
	}

	groups := []DayGroup{}
	for _, sess := range sessions {
		view := SessionView{Session: sess, Participants: bySession[sess.ID]}
		if n := len(groups); n > 0 && groups[n-1].Date == sess.Date {
			groups[n-1].Sessions = append(groups[n-1].Sessions, view)
			continue
		}
		groups = append(groups, DayGroup{Date: sess.Date, Sessions: []SessionView{view}})
	}
	return groups, nil
}

// SeatCount 已报名人数和总座位数，优先读缓存，miss 回填
func (s *SessionService) SeatCount(ctx context.Context, sessionID uint64) (count int64, capacity int, err error) {
	sess, err := s.repo.FindByID(sessionID)
	if err != nil {
		return 0, 0, err
	}
	capacity = sess.MaxOpenings + 1

	if s.seats != nil {
		if cached, hit, err := s.seats.GetCached(ctx, sessionID); err == nil && hit {
			return cached, capacity, nil
		}
	}
	count, err = s.repo.CountParticipants(ctx, sessionID)
	if err != nil {
		return 0, 0, err
	}
	if s.seats != nil {
		_ = s.seats.SetCount(ctx, sessionID, count)
	}
	return count, capacity, nil
}
