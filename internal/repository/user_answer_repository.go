package repository

import (
	"quiz_backend/internal/model"

	"gorm.io/gorm"
)

type UserAnswerRepository struct {
	DB *gorm.DB
}

func NewUserAnswerRepository(db *gorm.DB) *UserAnswerRepository {
	return &UserAnswerRepository{DB: db}
}

func (r *UserAnswerRepository) CreateAll(tx *gorm.DB, answers []model.UserAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return tx.Create(&answers).Error
}

func (r *UserAnswerRepository) ListByAttempt(attemptID uint) ([]model.UserAnswer, error) {
	var answers []model.UserAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Order("question_id, chosen_option_id").Find(&answers).Error
	return answers, err
}

func (r *UserAnswerRepository) CountByQuestion(questionID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.UserAnswer{}).Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}
