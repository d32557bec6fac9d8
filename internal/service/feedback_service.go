package service

import (
	"github.com/PresidentDoug/my-game-sync/internal/model"
	"github.com/PresidentDoug/my-game-sync/internal/repository/mysql"

	"gorm.io/gorm"
)

type FeedbackService struct {
	repo        *mysql.FeedbackRepository
	profileRepo *mysql.ProfileRepository
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{
		repo:        &mysql.FeedbackRepository{DB: db},
		profileRepo: &mysql.ProfileRepository{DB: db},
	}
}

// Submit 只追加，不提供修改和删除
func (s *FeedbackService) Submit(userID uint64, message string) error {
	if message == "" {
		return model.Invalid("message required")
	}
	return s.repo.Create(&model.Feedback{
		Message:    message,
		SenderUID:  userID,
		SenderName: displayNameOf(s.profileRepo, userID),
	})
}

func (s *FeedbackService) List(limit int) ([]model.Feedback, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.List(limit)
}
