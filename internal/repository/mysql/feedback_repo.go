package mysql

import (
	"github.com/PresidentDoug/my-game-sync/internal/model"

	"gorm.io/gorm"
)

type FeedbackRepository struct {
	DB *gorm.DB
}

func (r *FeedbackRepository) Create(fb *model.Feedback) error {
	return r.DB.Create(fb).Error
}

func (r *FeedbackRepository) List(limit int) ([]model.Feedback, error) {
	var list []model.Feedback
	err := r.DB.Order("id desc").Limit(limit).Find(&list).Error
	return list, err
}
