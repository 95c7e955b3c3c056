package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type OptionRepository struct {
	DB *gorm.DB
}

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{DB: db}
}

func (r *OptionRepository) ListByQuestion(questionID uint) ([]model.Option, error) {
	var options []model.Option
	err := r.DB.Where("question_id = ?", questionID).Order("id").Find(&options).Error
	return options, err
}

func (r *OptionRepository) ListByQuestionIDs(questionIDs []uint) ([]model.Option, error) {
	if len(questionIDs) == 0 {
		return nil, nil
	}
	var options []model.Option
	err := r.DB.Where("question_id IN ?", questionIDs).Order("id").Find(&options).Error
	return options, err
}
